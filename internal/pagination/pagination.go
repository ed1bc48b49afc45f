package pagination

// Window is the slice of rows a page covers.
type Window struct {
	Offset     int
	TotalPages int
}

// Paginate derives the offset and page count for a 1-indexed page. The page
// count is never below 1, so an empty result still reads as "page 1 of 1".
func Paginate(total int64, page, limit int) Window {
	pages := 1
	if total > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Window{
		Offset:     (page - 1) * limit,
		TotalPages: pages,
	}
}

// Page is the envelope returned by every paged listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: Paginate(total, page, limit).TotalPages,
	}
}

// Normalize clamps user supplied paging input: page to at least 1 and limit
// to [1, max], using def when limit is unset.
func Normalize(page, limit, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return page, limit
}
