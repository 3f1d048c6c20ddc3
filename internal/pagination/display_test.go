package pagination

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(items []PageItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []string
	}{
		{name: "no pages", current: 1, total: 0, want: []string{}},
		{name: "single page", current: 1, total: 1, want: []string{"1"}},
		{name: "small total", current: 2, total: 3, want: []string{"1", "2", "3"}},
		{name: "exactly max visible", current: 5, total: 5, want: []string{"1", "2", "3", "4", "5"}},
		{name: "first of ten", current: 1, total: 10, want: []string{"1", "2", "…", "10"}},
		{name: "second of ten", current: 2, total: 10, want: []string{"1", "2", "3", "…", "10"}},
		{name: "third of ten", current: 3, total: 10, want: []string{"1", "2", "3", "4", "…", "10"}},
		{name: "middle of ten", current: 5, total: 10, want: []string{"1", "…", "4", "5", "6", "…", "10"}},
		{name: "eighth of ten", current: 8, total: 10, want: []string{"1", "…", "7", "8", "9", "10"}},
		{name: "last of ten", current: 10, total: 10, want: []string{"1", "…", "9", "10"}},
		{name: "central of six", current: 3, total: 6, want: []string{"1", "2", "3", "4", "…", "6"}},
		{name: "fourth of six", current: 4, total: 6, want: []string{"1", "…", "3", "4", "5", "6"}},
		{name: "current past end is clamped", current: 99, total: 10, want: []string{"1", "…", "9", "10"}},
		{name: "current below one is clamped", current: 0, total: 10, want: []string{"1", "2", "…", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(PageNumbers(tt.current, tt.total)))
		})
	}
}

func TestPageNumbers_BoundedWidth(t *testing.T) {
	for _, total := range []int{6, 7, 50, 1000, 1_000_000} {
		for _, current := range []int{1, 2, 3, 4, total / 2, total - 3, total - 2, total - 1, total} {
			items := PageNumbers(current, total)
			require.LessOrEqual(t, len(items), 7, "current=%d total=%d", current, total)
			require.Equal(t, Number(1), items[0])
			require.Equal(t, Number(total), items[len(items)-1])
		}
	}
}

func TestPageNumbersWithLimit(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, render(PageNumbersWithLimit(4, 7, 7)))
	assert.Equal(t, []string{"1", "…", "3", "4", "5", "…", "7"}, render(PageNumbersWithLimit(4, 7, 5)))
}

func TestWindow_PageNumbers(t *testing.T) {
	w, err := NewWindow(100, 10)
	require.NoError(t, err)
	w.GoToPage(5)

	assert.Equal(t, PageNumbers(5, 10), w.PageNumbers())
}

func TestShowSelector(t *testing.T) {
	assert.False(t, ShowSelector(0))
	assert.False(t, ShowSelector(1))
	assert.True(t, ShowSelector(2))
}

func TestPageItem_JSON(t *testing.T) {
	b, err := json.Marshal(PageNumbers(5, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"…",4,5,6,"…",10]`, string(b))

	var decoded []PageItem
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, PageNumbers(5, 10), decoded)
}
