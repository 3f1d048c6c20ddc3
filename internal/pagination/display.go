package pagination

import (
	"encoding/json"
	"strconv"
)

// EllipsisMarker is how an elided run of pages is rendered.
const EllipsisMarker = "…"

// PageItem is one entry of a page selector: a page number or an ellipsis.
type PageItem struct {
	Page     int
	Ellipsis bool
}

// Number returns a page entry.
func Number(page int) PageItem { return PageItem{Page: page} }

// Ellipsis returns an ellipsis entry.
func Ellipsis() PageItem { return PageItem{Ellipsis: true} }

func (i PageItem) String() string {
	if i.Ellipsis {
		return EllipsisMarker
	}
	return strconv.Itoa(i.Page)
}

// MarshalJSON encodes a page entry as its number and an ellipsis as "…".
func (i PageItem) MarshalJSON() ([]byte, error) {
	if i.Ellipsis {
		return json.Marshal(EllipsisMarker)
	}
	return json.Marshal(i.Page)
}

// UnmarshalJSON accepts the encoding produced by MarshalJSON.
func (i *PageItem) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*i = Ellipsis()
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*i = Number(n)
	return nil
}

// ShowSelector reports whether a page selector is worth rendering.
func ShowSelector(totalPages int) bool { return totalPages > 1 }

// PageNumbers computes selector entries with DefaultMaxVisiblePages.
func PageNumbers(currentPage, totalPages int) []PageItem {
	return PageNumbersWithLimit(currentPage, totalPages, DefaultMaxVisiblePages)
}

// PageNumbersWithLimit lists every page when totalPages fits in maxVisible.
// Otherwise it keeps the first and last pages plus the current page and its
// direct neighbours, replacing each elided run with an ellipsis. The result
// never exceeds seven entries regardless of totalPages.
func PageNumbersWithLimit(currentPage, totalPages, maxVisible int) []PageItem {
	if totalPages <= 0 {
		return []PageItem{}
	}
	if totalPages <= maxVisible {
		items := make([]PageItem, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			items = append(items, Number(p))
		}
		return items
	}

	c := min(max(currentPage, 1), totalPages)
	items := make([]PageItem, 0, 7)
	items = append(items, Number(1))
	if c > 3 {
		items = append(items, Ellipsis())
	}
	for p := max(2, c-1); p <= min(totalPages-1, c+1); p++ {
		items = append(items, Number(p))
	}
	if c < totalPages-2 {
		items = append(items, Ellipsis())
	}
	if totalPages > 1 {
		items = append(items, Number(totalPages))
	}
	return items
}
