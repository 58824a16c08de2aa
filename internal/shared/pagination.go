package shared

import "math"

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Window returns the half-open [from, to) slice bounds for a list of length
// total under this pagination.
func (p Pagination) Window(total int) (int, int) {
	from := (p.Page - 1) * p.PerPage
	if from > total {
		from = total
	}
	to := from + p.PerPage
	if to > total {
		to = total
	}
	return from, to
}
