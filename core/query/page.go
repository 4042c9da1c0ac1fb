package query

// Page is one slice of a paginated collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// TotalPages returns max(1, ceil(count/size)).
func TotalPages(count, size int) int {
	if size <= 0 {
		panic("query: page size must be positive")
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// Paginate returns the 1-based page of items. Pages outside [1, TotalPages] are empty.
// A non-positive size is a programming error and panics.
func Paginate[T any](items []T, page, size int) Page[T] {
	total := TotalPages(len(items), size)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		TotalItems: len(items),
		TotalPages: total,
	}
	if page < 1 || page > total {
		return p
	}
	start := (page - 1) * size
	if start >= len(items) {
		return p
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	p.Items = items[start:end:end]
	return p
}
