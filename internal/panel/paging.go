package panel

import "fmt"

// Pager is the list position. Page is zero-based.
type Pager struct {
	Page       int
	TotalPages int
}

// PrevDisabled reports whether there is no earlier page.
func (p Pager) PrevDisabled() bool {
	return p.Page <= 0
}

// NextDisabled reports whether there is no later page. An empty result
// (zero pages) disables it too.
func (p Pager) NextDisabled() bool {
	return p.Page >= p.TotalPages-1
}

// Next returns the following page, or the current one when disabled.
func (p Pager) Next() int {
	if p.NextDisabled() {
		return p.Page
	}
	return p.Page + 1
}

// Prev returns the preceding page, or the current one when disabled.
func (p Pager) Prev() int {
	if p.PrevDisabled() {
		return p.Page
	}
	return p.Page - 1
}

// Label renders "page X of Y" with a floor of one page.
func (p Pager) Label() string {
	total := p.TotalPages
	if total < 1 {
		total = 1
	}
	return fmt.Sprintf("Page %d of %d", p.Page+1, total)
}
