package domain

// QueryParams is the full parameter set of a list query against one index.
// Empty strings mean "not set". Filters that are set are all applied.
type QueryParams struct {
	Offset   int
	PageSize int
	Sort     string
	GenreID  string
	PersonID string
	Query    string
}

// PageRequest carries the pagination and ordering query parameters shared by
// every listing endpoint.
type PageRequest struct {
	PageNumber int    `form:"page_number" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1"`
	Sort       string `form:"sort"`
}

// Normalize fills defaults and clamps the page size to max.
func (p *PageRequest) Normalize(defaultSize, maxSize int) {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
}

// DefaultResultWindow is Elasticsearch's default index.max_result_window.
const DefaultResultWindow = 10000

// InWindow reports whether the normalised page ends within the first window
// results. It divides instead of multiplying, so no page number overflows.
func (p *PageRequest) InWindow(window int) bool {
	if window <= 0 {
		window = DefaultResultWindow
	}
	return p.PageNumber <= window/p.PageSize
}

// Offset returns the index of the first document of the page. Callers check
// InWindow first.
func (p *PageRequest) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}
