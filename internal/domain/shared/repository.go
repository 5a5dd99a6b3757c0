package shared

import "time"

// Paging defaults applied by Pagination.Normalize
const (
	DefaultOffset = 0
	DefaultLimit  = 20
	MaxLimit      = 100
)

// Pagination represents client supplied offset/limit parameters
type Pagination struct {
	Offset int `form:"offset" json:"offset"`
	Limit  int `form:"limit" json:"limit"`
}

// DefaultPagination returns the pagination used when a client supplies none
func DefaultPagination() Pagination {
	return Pagination{Offset: DefaultOffset, Limit: DefaultLimit}
}

// Normalize clamps out of range values instead of rejecting them
func (p Pagination) Normalize() Pagination {
	out := p
	if out.Offset < 0 {
		out.Offset = DefaultOffset
	}
	switch {
	case out.Limit < 1:
		out.Limit = DefaultLimit
	case out.Limit > MaxLimit:
		out.Limit = MaxLimit
	}
	return out
}

// KeywordFilter narrows a listing to rows whose designated text field contains Keyword
type KeywordFilter struct {
	Keyword *string `form:"keyword" json:"keyword,omitempty"`
}

// DateRange selects timestamps within [Start 00:00:00, End 23:59:59.999].
// Both ends must be present for the range to apply.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Bounds returns the inclusive timestamp bounds and whether the range applies
func (r DateRange) Bounds() (time.Time, time.Time, bool) {
	if r.Start == nil || r.End == nil {
		return time.Time{}, time.Time{}, false
	}
	s := *r.Start
	e := *r.End
	start := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
	end := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, int(999*time.Millisecond), e.Location())
	return start, end, true
}

// Paginated represents one page of results plus the unpaged total
type Paginated[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page Pagination) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items:  items,
		Total:  total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}
}

// MapPaginated converts the items of a page while keeping its meta
func MapPaginated[T, R any](p Paginated[T], fn func(T) R) Paginated[R] {
	out := make([]R, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Paginated[R]{Items: out, Total: p.Total, Offset: p.Offset, Limit: p.Limit}
}
