package pagination

const (
	// DefaultPage is used when no page is requested.
	DefaultPage = 1
	// DefaultPageSize applies when the deployment does not configure one.
	DefaultPageSize = 20
	// MaxPageSize is the fallback cap when the deployment does not configure one.
	MaxPageSize = 100
)

// Bounds holds the deployment's page-size default and cap. The zero value is
// not usable; construct through NewBounds so fallbacks apply.
type Bounds struct {
	DefaultPageSize int
	MaxPageSize     int
}

// NewBounds builds page-size bounds from configured values, falling back to
// the package defaults for anything non-positive. The default never exceeds
// the cap.
func NewBounds(defaultSize, maxSize int) Bounds {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if defaultSize > maxSize {
		defaultSize = maxSize
	}
	return Bounds{DefaultPageSize: defaultSize, MaxPageSize: maxSize}
}

// NormalizePageSize applies the bounds' default and cap.
func (b Bounds) NormalizePageSize(size int) int {
	if size <= 0 {
		return b.DefaultPageSize
	}
	if size > b.MaxPageSize {
		return b.MaxPageSize
	}
	return size
}

// Meta describes the page that was returned.
type Meta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// NormalizePage applies the default page.
func NormalizePage(page int) int {
	if page <= 0 {
		return DefaultPage
	}
	return page
}

// Offset converts a page/pageSize pair into a row offset. The pageSize is
// expected to be normalized already; a non-positive one falls back to the
// package default.
func Offset(page, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return (NormalizePage(page) - 1) * pageSize
}

// NewMeta builds the response metadata for a page of results. The pageSize is
// reported as used; callers normalize against their bounds before querying.
func NewMeta(page, pageSize int, totalCount int64) Meta {
	page = NormalizePage(page)
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	return Meta{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
