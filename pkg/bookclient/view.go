package bookclient

import "strings"

// PageSize is the fixed number of records shown per page.
const PageSize = 10

// AllCategories is the sentinel meaning "do not filter by category".
const AllCategories = "All"

// View holds the full in-memory copy of the book list plus the current
// search text, category filter and page index.  All derivations (category
// options, filtering, pagination) happen here; the server always returns
// the complete list.
type View struct {
	books    []Book
	search   string
	category string
	page     int
}

// NewView returns an empty view on page 1 with no filters applied.
func NewView() *View {
	return &View{category: AllCategories, page: 1}
}

// SetBooks replaces the in-memory list.  The page index is clamped into the
// new valid range so a shrinking list never leaves the view stranded on an
// empty page.
func (v *View) SetBooks(books []Book) {
	v.books = books
	if tp := v.TotalPages(); v.page > tp {
		v.page = tp
	}
	if v.page < 1 {
		v.page = 1
	}
}

// Books returns the unfiltered in-memory list.
func (v *View) Books() []Book { return v.books }

// Categories derives the dropdown options: the "All" sentinel followed by
// every distinct category in first-seen order.
func (v *View) Categories() []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, b := range v.books {
		if !seen[b.Category] {
			seen[b.Category] = true
			out = append(out, b.Category)
		}
	}
	return out
}

// SetSearch updates the free-text search and resets to page 1.
func (v *View) SetSearch(term string) {
	v.search = term
	v.page = 1
}

// SetCategory updates the category filter and resets to page 1.
func (v *View) SetCategory(category string) {
	v.category = category
	v.page = 1
}

func (v *View) Search() string   { return v.search }
func (v *View) Category() string { return v.category }

// matches implements the filter predicate: case-insensitive substring match
// of the search text against title, author or category, AND the category
// filter ("All" passes everything).
func (v *View) matches(b Book) bool {
	term := strings.ToLower(v.search)
	matchesSearch := term == "" ||
		strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term) ||
		strings.Contains(strings.ToLower(b.Category), term)
	matchesCategory := v.category == AllCategories || b.Category == v.category
	return matchesSearch && matchesCategory
}

// Filtered returns every record passing the current filters.
func (v *View) Filtered() []Book {
	out := []Book{}
	for _, b := range v.books {
		if v.matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// TotalPages reports the number of pages for the filtered list, never less
// than 1 so page arithmetic stays simple on an empty list.
func (v *View) TotalPages() int {
	n := (len(v.Filtered()) + PageSize - 1) / PageSize
	if n < 1 {
		n = 1
	}
	return n
}

// Page returns the current 1-based page index.
func (v *View) Page() int { return v.page }

// SetPage moves to page p.  Out-of-range requests are ignored, the page
// keeps its last valid value.
func (v *View) SetPage(p int) {
	if p >= 1 && p <= v.TotalPages() {
		v.page = p
	}
}

// NextPage advances one page; a no-op on the last page.
func (v *View) NextPage() { v.SetPage(v.page + 1) }

// PrevPage goes back one page; a no-op on the first page.
func (v *View) PrevPage() { v.SetPage(v.page - 1) }

// Visible returns the slice of the filtered list shown on the current page.
func (v *View) Visible() []Book {
	filtered := v.Filtered()
	start := (v.page - 1) * PageSize
	if start >= len(filtered) {
		return []Book{}
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}
