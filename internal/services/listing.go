package services

import (
	"context"
	"errors"

	"projectledger/internal/domain"
	"projectledger/internal/pagination"
)

// newPageWindow builds the window for a list of total rows and moves it to the
// requested page, clamped to the pages that exist.
func newPageWindow(total int, params domain.PaginationParams) (*pagination.Window, error) {
	w, err := pagination.NewWindow(total, params.PageSize)
	if errors.Is(err, pagination.ErrInvalidItemsPerPage) {
		return nil, domain.NewValidationError("page_size must be greater than zero")
	}
	if err != nil {
		return nil, err
	}
	w.GoToPage(params.Page)
	return w, nil
}

func newListResult[T any](items []T, w *pagination.Window) *domain.ListResult[T] {
	return &domain.ListResult[T]{
		Items:      items,
		Page:       w.CurrentPage(),
		PageSize:   w.ItemsPerPage(),
		Total:      w.TotalItems(),
		TotalPages: w.TotalPages(),
	}
}

// listPage counts first, then fetches only the window's rows.
func listPage[T any](
	ctx context.Context,
	params domain.PaginationParams,
	count func(ctx context.Context) (int, error),
	list func(ctx context.Context, limit, offset int) ([]T, error),
) (*domain.ListResult[T], error) {
	total, err := count(ctx)
	if err != nil {
		return nil, err
	}
	w, err := newPageWindow(total, params)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return newListResult([]T{}, w), nil
	}
	items, err := list(ctx, w.ItemsPerPage(), w.StartIndex())
	if err != nil {
		return nil, err
	}
	return newListResult(items, w), nil
}

// paginateSlice serves one page of a list that is already in memory.
func paginateSlice[T any](items []T, params domain.PaginationParams) (*domain.ListResult[T], error) {
	p, err := pagination.New(items, params.PageSize)
	if errors.Is(err, pagination.ErrInvalidItemsPerPage) {
		return nil, domain.NewValidationError("page_size must be greater than zero")
	}
	if err != nil {
		return nil, err
	}
	p.GoToPage(params.Page)
	page := p.CurrentSlice()
	if page == nil {
		page = []T{}
	}
	return newListResult(page, &p.Window), nil
}

// filterSlice keeps the elements for which keep returns true.
func filterSlice[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
