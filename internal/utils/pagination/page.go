package pagination

import "math"

// Defaults applied when a list request omits paging parameters.
const (
	DefaultLimit = 10
	DefaultPage  = 1
	MaxLimit     = 100
)

// Page is a normalized offset window.
type Page struct {
	Limit  int
	Page   int
	Offset int
}

// Normalize clamps limit to [1, maxLimit] and page to at least 1, then derives the offset.
// A maxLimit <= 0 disables the upper bound. Page is capped so the offset never overflows.
func Normalize(limit, page, maxLimit int) Page {
	if limit < 1 {
		limit = 1
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if page < 1 {
		page = 1
	}
	if page-1 > math.MaxInt/limit {
		page = math.MaxInt/limit + 1
	}
	return Page{Limit: limit, Page: page, Offset: (page - 1) * limit}
}

// TotalPages returns how many pages of size limit cover total rows.
func TotalPages(total, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
