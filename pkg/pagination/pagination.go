package pagination

import "math"

// DefaultPerPage is the page size used by listings when none is requested.
const DefaultPerPage = 50

const (
	// MaxPerPage caps the page size.
	MaxPerPage = 500
	// MaxPage caps the page number so offsets cannot overflow.
	MaxPage = 1_000_000
)

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// Params are the requested page and page size.
type Params struct {
	Page    int `query:"page" json:"page"`
	PerPage int `query:"per_page" json:"per_page"`
}

// DefaultParams returns the first page at the default size.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// Validate clamps the parameters into a usable range.
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
}

// Offset is the index of the first row of the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination builds page metadata for total rows.
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult is one page of items with its metadata.
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// Slice cuts the requested page out of rows that are already in memory. A
// page past the end yields no items.
func Slice[T any](rows []T, p Params) *PaginatedResult[T] {
	p.Validate()

	start := p.Offset()
	if start > len(rows) {
		start = len(rows)
	}
	end := start + p.PerPage
	if end > len(rows) {
		end = len(rows)
	}

	items := make([]T, end-start)
	copy(items, rows[start:end])
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: NewPagination(p.Page, p.PerPage, int64(len(rows))),
	}
}
