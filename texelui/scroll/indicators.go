// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/indicators.go
// Summary: Overflow arrows for scrolling viewports and the dot row used to
// show which panel of a block is active.

package scroll

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstore/texelui/core"
)

const (
	DefaultUpGlyph   = '▲'
	DefaultDownGlyph = '▼'
	DotActive        = '●'
	DotInactive      = '○'
)

// IndicatorConfig controls the overflow arrows. Zero glyphs fall back to
// the defaults.
type IndicatorConfig struct {
	Left      bool // draw in the first column instead of the last
	Style     tcell.Style
	UpGlyph   rune
	DownGlyph rune
}

// DefaultIndicatorConfig draws the default arrows in the right column.
func DefaultIndicatorConfig(style tcell.Style) IndicatorConfig {
	return IndicatorConfig{Style: style, UpGlyph: DefaultUpGlyph, DownGlyph: DefaultDownGlyph}
}

func (c IndicatorConfig) glyphs() (up, down rune) {
	up, down = c.UpGlyph, c.DownGlyph
	if up == 0 {
		up = DefaultUpGlyph
	}
	if down == 0 {
		down = DefaultDownGlyph
	}
	return up, down
}

// DrawIndicators marks the top row of rect when content lies above the
// viewport and the bottom row when content lies below it.
func DrawIndicators(painter *core.Painter, rect core.Rect, state State, config IndicatorConfig) {
	if rect.Empty() {
		return
	}
	x := rect.X + rect.W - 1
	if config.Left {
		x = rect.X
	}
	up, down := config.glyphs()
	if state.CanScrollUp() {
		painter.SetCell(x, rect.Y, up, config.Style)
	}
	if state.CanScrollDown() {
		painter.SetCell(x, rect.Bottom()-1, down, config.Style)
	}
}

// DrawDots renders one dot per item starting at (x, y), separated by a
// space, with the active item filled. It returns the hit rectangle of every
// dot so callers can map clicks back to an index. active may be -1.
func DrawDots(painter *core.Painter, x, y, count, active int, style, activeStyle tcell.Style) []core.Rect {
	hits := make([]core.Rect, 0, count)
	for i := 0; i < count; i++ {
		cx := x + i*2
		glyph, st := DotInactive, style
		if i == active {
			glyph, st = DotActive, activeStyle
		}
		painter.SetCell(cx, y, glyph, st)
		hits = append(hits, core.Rect{X: cx, Y: y, W: 1, H: 1})
	}
	return hits
}

// DotsWidth is the number of columns DrawDots uses for count items.
func DotsWidth(count int) int {
	if count <= 0 {
		return 0
	}
	return count*2 - 1
}
