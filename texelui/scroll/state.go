// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/state.go
// Summary: Immutable scroll offset arithmetic shared by scrollable widgets.

package scroll

// State describes a vertical scroll position. All methods return a new State
// with Offset clamped to [0, MaxOffset()].
type State struct {
	Offset         int
	ContentHeight  int
	ViewportHeight int
}

// NewState returns a state at offset 0.
func NewState(contentHeight, viewportHeight int) State {
	return State{ContentHeight: max(contentHeight, 0), ViewportHeight: max(viewportHeight, 0)}
}

// MaxOffset is the largest offset that still fills the viewport.
func (s State) MaxOffset() int {
	return max(0, s.ContentHeight-s.ViewportHeight)
}

func (s State) clamp() State {
	if s.Offset > s.MaxOffset() {
		s.Offset = s.MaxOffset()
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
	return s
}

// WithContentHeight returns s with a new content height.
func (s State) WithContentHeight(h int) State {
	s.ContentHeight = max(h, 0)
	return s.clamp()
}

// WithViewportHeight returns s with a new viewport height.
func (s State) WithViewportHeight(h int) State {
	s.ViewportHeight = max(h, 0)
	return s.clamp()
}

// WithOffset returns s scrolled to an absolute offset.
func (s State) WithOffset(off int) State {
	s.Offset = off
	return s.clamp()
}

// ScrollBy moves the offset by delta rows (positive = down).
func (s State) ScrollBy(delta int) State {
	return s.WithOffset(s.Offset + delta)
}

// ScrollTo makes row visible with minimal movement.
func (s State) ScrollTo(row int) State {
	if s.IsRowVisible(row) {
		return s
	}
	if row < s.Offset {
		return s.WithOffset(row)
	}
	return s.WithOffset(row - s.ViewportHeight + 1)
}

// ScrollToCentered places row in the middle of the viewport.
func (s State) ScrollToCentered(row int) State {
	return s.WithOffset(row - s.ViewportHeight/2)
}

// ScrollToTop scrolls to the first row.
func (s State) ScrollToTop() State { return s.WithOffset(0) }

// ScrollToBottom scrolls so the last row is at the bottom of the viewport.
func (s State) ScrollToBottom() State { return s.WithOffset(s.MaxOffset()) }

// IsRowVisible reports whether content row lies inside the viewport.
func (s State) IsRowVisible(row int) bool {
	return row >= s.Offset && row < s.Offset+s.ViewportHeight
}

func (s State) CanScroll() bool     { return s.ContentHeight > s.ViewportHeight }
func (s State) CanScrollUp() bool   { return s.Offset > 0 }
func (s State) CanScrollDown() bool { return s.Offset < s.MaxOffset() }
