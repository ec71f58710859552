// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/carousel/carousel.go
// Summary: Bounded slide window over a fixed item list.

// Package carousel implements slider navigation with a fixed number of
// items per view. The slide index is always clamped so the last item is
// never scrolled past the right edge.
package carousel

import (
	"fmt"
	"strconv"
)

// Carousel tracks the first visible item of a row showing ItemsPerView
// items at a time. The selected item is tracked separately: selecting never
// moves the window, and moving the window never changes the selection.
type Carousel struct {
	current      int
	itemsPerView int
	itemCount    int
	selected     int
}

// New returns a carousel at slide 0 with nothing selected. itemsPerView
// below 1 is treated as 1 and a negative itemCount as 0.
func New(itemCount, itemsPerView int) *Carousel {
	return &Carousel{
		itemsPerView: max(itemsPerView, 1),
		itemCount:    max(itemCount, 0),
		selected:     -1,
	}
}

// MaxSlide is the last valid slide index.
func (c *Carousel) MaxSlide() int {
	return max(0, c.itemCount-c.itemsPerView)
}

func (c *Carousel) CurrentSlide() int { return c.current }
func (c *Carousel) ItemsPerView() int { return c.itemsPerView }
func (c *Carousel) ItemCount() int    { return c.itemCount }
func (c *Carousel) CanPrev() bool     { return c.current > 0 }
func (c *Carousel) CanNext() bool     { return c.current < c.MaxSlide() }

// Next moves the window one item to the right, stopping at MaxSlide.
func (c *Carousel) Next() { c.GoTo(c.current + 1) }

// Prev moves the window one item to the left, stopping at 0.
func (c *Carousel) Prev() { c.GoTo(c.current - 1) }

// GoTo sets the slide index, clamped into [0, MaxSlide].
func (c *Carousel) GoTo(index int) {
	c.current = min(max(index, 0), c.MaxSlide())
}

// SetItemCount replaces the item count. The slide is re-clamped and a
// selection that no longer exists is dropped.
func (c *Carousel) SetItemCount(n int) {
	c.itemCount = max(n, 0)
	c.GoTo(c.current)
	if c.selected >= c.itemCount {
		c.selected = -1
	}
}

// SetItemsPerView changes the window size. Values below 1 are treated as 1
// and the slide is re-clamped. The selection is kept.
func (c *Carousel) SetItemsPerView(n int) {
	c.itemsPerView = max(n, 1)
	c.GoTo(c.current)
}

// OffsetPercent is the horizontal translation of the item row as a
// percentage of the view width: -(current*100/itemsPerView).
func (c *Carousel) OffsetPercent() float64 {
	if c.current == 0 {
		return 0
	}
	return -(float64(c.current) * 100 / float64(c.itemsPerView))
}

// Transform formats OffsetPercent as a CSS-style translateX value, e.g.
// "translateX(-50%)".
func (c *Carousel) Transform() string {
	return fmt.Sprintf("translateX(%s%%)", strconv.FormatFloat(c.OffsetPercent(), 'f', -1, 64))
}

// ItemWidth is the width of one item when the view is viewWidth cells wide.
func (c *Carousel) ItemWidth(viewWidth int) int {
	if viewWidth <= 0 {
		return 0
	}
	return viewWidth / c.itemsPerView
}

// OffsetCells converts OffsetPercent into a column shift for a row whose
// items are ItemWidth(viewWidth) cells wide. The result is negative or zero.
func (c *Carousel) OffsetCells(viewWidth int) int {
	return -c.current * c.ItemWidth(viewWidth)
}

// Visible returns the first and last item indices in the window. last is
// -1 when there are no items.
func (c *Carousel) Visible() (first, last int) {
	if c.itemCount == 0 {
		return 0, -1
	}
	return c.current, min(c.current+c.itemsPerView, c.itemCount) - 1
}

// Select toggles the selection of item i. Selecting the selected item
// clears the selection. Out-of-range indices are ignored.
func (c *Carousel) Select(i int) {
	if i < 0 || i >= c.itemCount {
		return
	}
	if c.selected == i {
		c.selected = -1
		return
	}
	c.selected = i
}

// Selected returns the selected item.
func (c *Carousel) Selected() (int, bool) {
	return c.selected, c.selected >= 0
}

// ClearSelection drops the selection.
func (c *Carousel) ClearSelection() { c.selected = -1 }
