package domain

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

type PaginatedResult[T any] struct {
	Items      []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination computes the last page; an empty set still has one page.
func NewPagination(page, perPage int, total int64) Pagination {
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return Pagination{CurrentPage: page, LastPage: last, PerPage: perPage, Total: total}
}

// NormalizePage clamps page and perPage and returns the row offset.
func NormalizePage(page, perPage, defaultPerPage, maxPerPage int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage, (page - 1) * perPage
}
