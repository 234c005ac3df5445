package domain

import "time"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest selects one zero-based page of a listing.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalItems int
	TotalPages int
}

// NewPage builds a page from the fetched items and the total row count.
func NewPage[T any](items []T, req PageRequest, total int) Page[T] {
	req = req.Normalize()
	pages := 0
	if total > 0 {
		pages = (total + req.Size - 1) / req.Size
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}

// DateRange is an optional, inclusive range of calendar dates.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsValid reports whether From is not after To.
func (r DateRange) IsValid() bool {
	if r.From == nil || r.To == nil {
		return true
	}
	return !DateOf(*r.From).After(DateOf(*r.To))
}
