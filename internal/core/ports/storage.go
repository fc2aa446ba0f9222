package ports

import (
	"context"
	"io"
)

// FileStore abstracts the object storage used for resume files and company
// logos. Save returns a stable retrievable URL; Delete is idempotent when
// the object is already gone.
type FileStore interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}
