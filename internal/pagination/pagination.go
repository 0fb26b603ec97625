// Package pagination provides page-number based slicing for list endpoints.
package pagination

// Page is one page of results together with its position in the full list.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// TotalPages returns how many pages a list of total items spans with the
// given page size. An empty list still has one page.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Clamp normalizes a requested 1-based page number against the total. Values
// below 1 become 1 and values past the end become the last page.
func Clamp(page int, total int64, pageSize int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(total, pageSize); page > last {
		return last
	}
	return page
}

// Offset converts a clamped page number to a row offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// New assembles a Page from already-fetched items and the list totals.
func New[T any](items []T, page, pageSize int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: TotalPages(total, pageSize),
	}
}
