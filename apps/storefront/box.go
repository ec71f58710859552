package storefront

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstore/texelui/core"
)

// drawBox paints a single-line border around r and clears its inside.
func drawBox(p *core.Painter, r core.Rect, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	p.Fill(core.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}, ' ', style)
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		p.SetCell(x, r.Y, tcell.RuneHLine, style)
		p.SetCell(x, bottom, tcell.RuneHLine, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		p.SetCell(r.X, y, tcell.RuneVLine, style)
		p.SetCell(right, y, tcell.RuneVLine, style)
	}
	p.SetCell(r.X, r.Y, tcell.RuneULCorner, style)
	p.SetCell(right, r.Y, tcell.RuneURCorner, style)
	p.SetCell(r.X, bottom, tcell.RuneLLCorner, style)
	p.SetCell(right, bottom, tcell.RuneLRCorner, style)
}

type hit struct {
	rect  core.Rect
	index int
}

func hitAt(hits []hit, x, y int) (int, bool) {
	for _, h := range hits {
		if h.rect.Contains(x, y) {
			return h.index, true
		}
	}
	return 0, false
}

func isPress(ev *tcell.EventMouse) bool {
	return ev.Buttons()&tcell.Button1 != 0
}
