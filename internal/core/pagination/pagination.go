// Package pagination converts page/limit request inputs into offset/limit
// values and computes response metadata. Non-positive or missing inputs are
// replaced by defaults, never propagated, so a negative skip can never reach
// the database.
package pagination

const (
	// DefaultLimit applies to application and company listings.
	DefaultLimit = 10
	// DirectoryLimit applies to the public company directory.
	DirectoryLimit = 12
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// Options are the raw page/limit values from the query string.
type Options struct {
	Page  int
	Limit int
}

// Params are the sanitised values the repository layer queries with.
type Params struct {
	Page  int
	Limit int
	Skip  int
}

// Normalize coerces opts into positive values, falling back to page 1 and
// defaultLimit. Limits above MaxLimit are capped.
func Normalize(opts Options, defaultLimit int) Params {
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// Meta is the pagination block returned alongside list responses.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta computes response metadata for a page. The total must come from a
// count query scoped with the same predicate as the data query.
func NewMeta(p Params, total int64) Meta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
