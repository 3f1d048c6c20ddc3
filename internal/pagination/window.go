package pagination

import "errors"

// Policy defaults. Callers override them per list.
const (
	DefaultItemsPerPage    = 10
	DefaultMaxVisiblePages = 5
)

// ErrInvalidItemsPerPage is returned when a page size is not strictly positive.
var ErrInvalidItemsPerPage = errors.New("items per page must be greater than zero")

// Window tracks the current page over a collection of known size.
// All derived values are computed from (currentPage, itemsPerPage, totalItems),
// and currentPage is re-clamped to [1, max(TotalPages, 1)] after every mutation.
type Window struct {
	currentPage  int
	itemsPerPage int
	totalItems   int
}

// NewWindow returns a Window positioned on page 1.
// A negative totalItems is treated as zero.
func NewWindow(totalItems, itemsPerPage int) (*Window, error) {
	if itemsPerPage <= 0 {
		return nil, ErrInvalidItemsPerPage
	}
	w := &Window{currentPage: 1, itemsPerPage: itemsPerPage}
	w.SetTotalItems(totalItems)
	return w, nil
}

// CurrentPage returns the 1-based current page.
func (w *Window) CurrentPage() int { return w.currentPage }

// ItemsPerPage returns the page size.
func (w *Window) ItemsPerPage() int { return w.itemsPerPage }

// TotalItems returns the size of the underlying collection.
func (w *Window) TotalItems() int { return w.totalItems }

// TotalPages returns ceil(TotalItems / ItemsPerPage); zero for an empty collection.
func (w *Window) TotalPages() int {
	return (w.totalItems + w.itemsPerPage - 1) / w.itemsPerPage
}

// StartIndex returns the inclusive lower bound of the current page.
func (w *Window) StartIndex() int {
	return (w.currentPage - 1) * w.itemsPerPage
}

// EndIndex returns the exclusive upper bound of the current page.
func (w *Window) EndIndex() int {
	return min(w.StartIndex()+w.itemsPerPage, w.totalItems)
}

// HasNextPage reports whether NextPage would move.
func (w *Window) HasNextPage() bool { return w.currentPage < w.TotalPages() }

// HasPreviousPage reports whether PreviousPage would move.
func (w *Window) HasPreviousPage() bool { return w.currentPage > 1 }

// GoToPage moves to page, clamped to the valid range. It never fails.
func (w *Window) GoToPage(page int) {
	w.currentPage = w.clamp(page)
}

// NextPage advances one page, or does nothing on the last page.
func (w *Window) NextPage() {
	if w.HasNextPage() {
		w.currentPage++
	}
}

// PreviousPage goes back one page, or does nothing on the first page.
func (w *Window) PreviousPage() {
	if w.HasPreviousPage() {
		w.currentPage--
	}
}

// GoToFirstPage moves to page 1.
func (w *Window) GoToFirstPage() { w.currentPage = 1 }

// GoToLastPage moves to the last page (page 1 for an empty collection).
func (w *Window) GoToLastPage() { w.currentPage = w.clamp(w.TotalPages()) }

// SetItemsPerPage changes the page size and resets to page 1.
// A non-positive n is rejected and leaves the window unchanged.
func (w *Window) SetItemsPerPage(n int) error {
	if n <= 0 {
		return ErrInvalidItemsPerPage
	}
	w.itemsPerPage = n
	w.currentPage = 1
	return nil
}

// SetTotalItems replaces the collection size, keeping the current page when it
// is still in range.
func (w *Window) SetTotalItems(n int) {
	w.totalItems = max(n, 0)
	w.currentPage = w.clamp(w.currentPage)
}

// PageNumbers returns the selector entries for the current position.
func (w *Window) PageNumbers() []PageItem {
	return PageNumbers(w.currentPage, w.TotalPages())
}

func (w *Window) clamp(page int) int {
	return min(max(page, 1), max(w.TotalPages(), 1))
}
