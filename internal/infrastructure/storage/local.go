// Package storage provides the object store for uploaded resume files and
// company logos.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads to a directory on the local filesystem and
// serves them under a URL prefix (the router mounts the directory as a
// static route).
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates the root directory if needed. baseURL is the public
// path prefix uploads are served under, e.g. "/uploads".
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save streams the file to <root>/<folder>/<filename> and returns its URL.
func (s *LocalStore) Save(_ context.Context, folder, filename string, r io.Reader) (string, error) {
	// Strip any path components a client may have smuggled into the name.
	folder = path.Base(path.Clean("/" + folder))
	filename = path.Base(path.Clean("/" + filename))

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.baseURL + "/" + folder + "/" + filename, nil
}

// Delete removes the object behind a URL previously returned by Save.
// Deleting a missing object succeeds.
func (s *LocalStore) Delete(_ context.Context, url string) error {
	rel := strings.TrimPrefix(url, s.baseURL+"/")
	if rel == url || rel == "" {
		// Not one of ours; nothing to remove.
		return nil
	}
	parts := strings.SplitN(rel, "/", 2)
	if len(parts) != 2 {
		return nil
	}
	folder := path.Base(path.Clean("/" + parts[0]))
	filename := path.Base(path.Clean("/" + parts[1]))

	err := os.Remove(filepath.Join(s.root, folder, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
