package pagination

// Paginator windows an in-memory collection. The embedded Window provides the
// page bookkeeping and navigation.
type Paginator[T any] struct {
	Window
	data []T
}

// New returns a Paginator over data positioned on page 1.
func New[T any](data []T, itemsPerPage int) (*Paginator[T], error) {
	w, err := NewWindow(len(data), itemsPerPage)
	if err != nil {
		return nil, err
	}
	return &Paginator[T]{Window: *w, data: data}, nil
}

// NewDefault returns a Paginator using DefaultItemsPerPage.
func NewDefault[T any](data []T) *Paginator[T] {
	p, _ := New(data, DefaultItemsPerPage)
	return p
}

// SetData replaces the source collection. Current page and page size are kept,
// with the page re-clamped to the new bounds.
func (p *Paginator[T]) SetData(data []T) {
	p.data = data
	p.SetTotalItems(len(data))
}

// CurrentSlice returns the elements of the current page. The result aliases the
// source collection and is never longer than ItemsPerPage.
func (p *Paginator[T]) CurrentSlice() []T {
	return p.data[p.StartIndex():p.EndIndex()]
}
