package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageInfo describes the slice of a collection returned by a list call.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Page is the paginated response envelope shared by every list endpoint.
type Page[T any] struct {
	Data       []T      `json:"data"`
	Pagination PageInfo `json:"pagination"`
}

// ListParams holds optional list filters. Zero values mean "not set".
type ListParams struct {
	Page           int
	Limit          int
	DaemonUsername string
}

// Normalized returns params with defaults applied to page and limit.
func (p ListParams) Normalized() ListParams {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Paginate slices items into the requested page. Pages past the end are empty; page
// and limit may be arbitrarily large without overflowing the offset.
func Paginate[T any](items []T, page, limit int) *Page[T] {
	p := ListParams{Page: page, Limit: limit}.Normalized()

	total := len(items)
	start := total
	if p.Page-1 <= total/p.Limit {
		start = min((p.Page-1)*p.Limit, total)
	}
	end := start + min(p.Limit, total-start)

	data := make([]T, end-start)
	copy(data, items[start:end])

	return &Page[T]{
		Data: data,
		Pagination: PageInfo{
			Page:       p.Page,
			Limit:      p.Limit,
			TotalItems: total,
			TotalPages: totalPages(total, p.Limit),
		},
	}
}

func totalPages(total, limit int) int {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
