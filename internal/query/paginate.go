package query

// DefaultPageSize matches the list views of the dashboard.
const DefaultPageSize = 10

// MaxPageSize bounds client-requested page sizes.
const MaxPageSize = 100

// Page is one slice of a filtered result set.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// TotalPages returns ceil(count/size), 0 for an empty set.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 0
	}
	return (count-1)/size + 1
}

// ClampPage keeps page inside [1, totalPages]. With no pages at all the result is 1.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate slices items into the requested 1-indexed page. Out of range pages
// clamp to the nearest valid page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := TotalPages(total, size)
	page = ClampPage(page, pages)

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	slice := make([]T, end-start)
	copy(slice, items[start:end])

	return Page[T]{
		Items:      slice,
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
	}
}
