// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/painter.go
// Summary: Clipped cell painter over a texel framebuffer.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelstore/texel"
)

// Painter writes cells into a framebuffer, dropping anything outside clip.
type Painter struct {
	buf  [][]texel.Cell
	clip Rect
}

// NewPainter returns a painter for buf restricted to clip. The clip is
// intersected with the buffer bounds.
func NewPainter(buf [][]texel.Cell, clip Rect) *Painter {
	bounds := Rect{}
	if len(buf) > 0 {
		bounds = Rect{W: len(buf[0]), H: len(buf)}
	}
	return &Painter{buf: buf, clip: clip.Intersect(bounds)}
}

// NewBuffer allocates a w×h framebuffer filled with blanks in style.
func NewBuffer(w, h int, style tcell.Style) [][]texel.Cell {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	buf := make([][]texel.Cell, h)
	for y := range buf {
		row := make([]texel.Cell, w)
		for x := range row {
			row[x] = texel.Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}

// Clip returns the active clip rectangle.
func (p *Painter) Clip() Rect { return p.clip }

// WithClip returns a painter sharing the buffer with a narrower clip.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// SetCell writes one cell if it lies inside the clip.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.buf[y][x] = texel.Cell{Ch: ch, Style: style}
}

// Fill paints every cell of r (clipped) with ch.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	r = r.Intersect(p.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.buf[y][x] = texel.Cell{Ch: ch, Style: style}
		}
	}
}

// DrawText writes s starting at (x, y) and stops after maxW columns. Wide
// runes occupy two columns; the trailing column is padded with a blank. It
// returns the number of columns consumed.
func (p *Painter) DrawText(x, y int, s string, maxW int, style tcell.Style) int {
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxW {
			break
		}
		p.SetCell(x+col, y, r, style)
		if w == 2 {
			p.SetCell(x+col+1, y, ' ', style)
		}
		col += w
	}
	return col
}

// Truncate shortens s to at most maxW columns, appending an ellipsis when
// something was cut.
func Truncate(s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxW {
		return s
	}
	return runewidth.Truncate(s, maxW, "…")
}
