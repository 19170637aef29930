package core

// PageSize is the fixed number of rows per list page.
const PageSize = 20

// ListQuery is a paged, searched list request.
type ListQuery struct {
	Page   int
	Search string
}

// Normalize clamps the page to 1 when absent or out of range.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// Offset returns the SQL offset for the query.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * PageSize
}

// PageDescriptor describes one page of a larger result set.
// When TotalPages > 0, CurrentPage is within [1, TotalPages].
type PageDescriptor struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// NewPageDescriptor builds the descriptor for a query over total rows.
func NewPageDescriptor(q ListQuery, total int) PageDescriptor {
	totalPages := (total + PageSize - 1) / PageSize
	page := q.Page
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return PageDescriptor{CurrentPage: page, TotalPages: totalPages}
}
