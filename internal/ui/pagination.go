package ui

import (
	"fmt"

	"shopkeeper/internal/core"
)

// PageControls is the prev/next pager rendered under a list. It exists
// only when there is more than one page; RenderPagination returns nil
// otherwise and surfaces render nothing.
type PageControls struct {
	current  int
	total    int
	onChange func(page int)
}

// RenderPagination builds the pager for a page descriptor. onChange is
// invoked with the new page number when an enabled control is used.
func RenderPagination(pd core.PageDescriptor, onChange func(page int)) *PageControls {
	if pd.TotalPages <= 1 {
		return nil
	}
	return &PageControls{current: pd.CurrentPage, total: pd.TotalPages, onChange: onChange}
}

// Label is the "Page X of Y" indicator between the buttons.
func (p *PageControls) Label() string {
	return fmt.Sprintf("Page %d of %d", p.current, p.total)
}

// PrevEnabled reports whether the previous-page button is active.
func (p *PageControls) PrevEnabled() bool { return p.current > 1 }

// NextEnabled reports whether the next-page button is active.
func (p *PageControls) NextEnabled() bool { return p.current < p.total }

// Prev moves one page back. Disabled controls ignore activation.
func (p *PageControls) Prev() {
	if !p.PrevEnabled() {
		return
	}
	p.onChange(p.current - 1)
}

// Next moves one page forward. Disabled controls ignore activation.
func (p *PageControls) Next() {
	if !p.NextEnabled() {
		return
	}
	p.onChange(p.current + 1)
}
