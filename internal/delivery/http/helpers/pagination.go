package helpers

import (
	"net/http"
	"strconv"

	"projectledger/internal/domain"
	"projectledger/internal/pagination"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = pagination.DefaultItemsPerPage
	MaxPageSize     = 100
)

// Pager reads page and page_size query parameters with configurable limits.
// The zero value uses DefaultPageSize and MaxPageSize.
type Pager struct {
	DefaultPageSize int
	MaxPageSize     int
}

// NewPager returns a Pager, replacing non-positive limits with the package defaults.
// The default size never exceeds the maximum.
func NewPager(defaultPageSize, maxPageSize int) Pager {
	if maxPageSize <= 0 {
		maxPageSize = MaxPageSize
	}
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	return Pager{DefaultPageSize: min(defaultPageSize, maxPageSize), MaxPageSize: maxPageSize}
}

// Parse reads page and page_size from the request query string,
// clamps them to valid ranges, and returns domain.PaginationParams.
// Invalid or missing values fall back to defaults.
func (p Pager) Parse(r *http.Request) domain.PaginationParams {
	p = NewPager(p.DefaultPageSize, p.MaxPageSize)
	q := r.URL.Query()
	page := DefaultPage
	if s := q.Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	pageSize := p.DefaultPageSize
	if s := q.Get("page_size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = min(v, p.MaxPageSize)
		}
	}
	return domain.PaginationParams{Page: page, PageSize: pageSize}
}

// ParsePagination parses pagination parameters with the package defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	return Pager{}.Parse(r)
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// Pages is the page selector to render: page numbers with "…" where pages are skipped.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	Total       int                   `json:"total"`
	TotalPages  int                   `json:"total_pages"`
	HasNext     bool                  `json:"has_next"`
	HasPrevious bool                  `json:"has_previous"`
	Pages       []pagination.PageItem `json:"pages" swaggertype:"array,string"`
}

// NewPaginationMeta builds PaginationMeta from the current page, page size, and total count.
// The page is clamped into range; if pageSize is not positive, TotalPages is 0.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	w, err := pagination.NewWindow(total, pageSize)
	if err != nil {
		return PaginationMeta{Page: DefaultPage, PageSize: pageSize, Total: total, Pages: []pagination.PageItem{}}
	}
	w.GoToPage(page)
	return PaginationMeta{
		Page:        w.CurrentPage(),
		PageSize:    w.ItemsPerPage(),
		Total:       w.TotalItems(),
		TotalPages:  w.TotalPages(),
		HasNext:     w.HasNextPage(),
		HasPrevious: w.HasPreviousPage(),
		Pages:       w.PageNumbers(),
	}
}

// ListResponse is the data of every paginated list endpoint.
type ListResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewListResponse converts a service list result into its response shape.
func NewListResponse[T any](res *domain.ListResult[T]) ListResponse[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:      items,
		Pagination: NewPaginationMeta(res.Page, res.PageSize, res.Total),
	}
}
