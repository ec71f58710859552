package storefront

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstore/texelui/core"
)

type helpSection struct {
	title   string
	entries []helpEntry
}

type helpEntry struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Page",
		entries: []helpEntry{
			{"↑/↓ wheel", "Scroll the page"},
			{"PgUp/PgDn", "Scroll by a screen"},
			{"Home/End", "Jump to top or bottom"},
			{"Tab", "Focus next block"},
			{"r", "Reload settings"},
			{"q", "Quit"},
		},
	},
	{
		title: "Panels",
		entries: []helpEntry{
			{"j/k", "Next or previous panel"},
			{"Click dot", "Go to panel"},
		},
	},
	{
		title: "Offers",
		entries: []helpEntry{
			{"h/l", "Slide offers"},
			{"Enter", "Apply first visible offer"},
			{"Click", "Apply or remove offer"},
		},
	},
}

// helpSize returns the box size needed to show every section.
func helpSize() (w, h int) {
	keyW, descW := 0, 0
	h = 2 // borders
	for _, s := range helpSections {
		h += 2 + len(s.entries)
		for _, e := range s.entries {
			keyW = max(keyW, len([]rune(e.key)))
			descW = max(descW, len([]rune(e.desc)))
		}
	}
	return keyW + descW + 7, h - 1
}

// drawHelp draws the key reference centred in area. Sections that do not
// fit are cut at the bottom edge.
func drawHelp(p *core.Painter, area core.Rect, st Styles) {
	w, h := helpSize()
	w, h = min(w, area.W), min(h, area.H)
	if w < 4 || h < 3 {
		return
	}
	r := core.Rect{X: area.X + (area.W-w)/2, Y: area.Y + (area.H-h)/2, W: w, H: h}
	drawBox(p, r, st.Accent)
	p.DrawText(r.X+2, r.Y, " Keys · any key closes ", w-4, st.Accent)

	keyW := 0
	for _, s := range helpSections {
		for _, e := range s.entries {
			keyW = max(keyW, len([]rune(e.key)))
		}
	}
	inner := p.WithClip(core.Rect{X: r.X + 1, Y: r.Y + 1, W: w - 2, H: h - 2})
	y := r.Y + 1
	for i, s := range helpSections {
		if i > 0 {
			y++
		}
		inner.DrawText(r.X+2, y, s.title, w-4, st.Title)
		y++
		for _, e := range s.entries {
			kx := r.X + 2 + keyW - len([]rune(e.key))
			inner.DrawText(kx, y, e.key, keyW, st.Accent.Bold(false))
			inner.DrawText(r.X+4+keyW, y, e.desc, w-keyW-6, st.Dim)
			y++
		}
	}
}

func isHelpKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyRune && ev.Rune() == '?'
}
