// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/storefront/panelblock.go
// Summary: Scroll-synchronized panel list (ingredients, description, gallery).
// The three variants differ only in how they show the active panel; all of
// them share one panelview.Controller per block.

package storefront

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelstore/content"
	"github.com/framegrace/texelstore/texelui/core"
	"github.com/framegrace/texelstore/texelui/panelview"
	"github.com/framegrace/texelstore/texelui/scroll"
)

const (
	cardHeight     = 5
	cardMaxWidth   = 28
	cardMinLayout  = 40 // narrower blocks drop the sticky card
	thumbMaxTitle  = 12
	bodyIndent     = 2
	emptyPanelText = "nothing to show"
)

// PanelBlock renders one content block as a vertical list of panels.
type PanelBlock struct {
	core.BaseWidget
	block  *content.Block
	styles Styles
	ctrl   *panelview.Controller
	vp     panelview.Viewport
	inv    func(core.Rect)
	unsub  func()

	// Layout, in rows relative to the block top.
	laidOutWidth int
	textW        int
	cardW        int
	header       int
	tops         []int
	heights      []int
	bodies       [][]string
	height       int

	hits []hit
}

// NewPanelBlock creates the widget. Bind must be called once it has been
// added to its scroll pane.
func NewPanelBlock(b *content.Block, styles Styles) *PanelBlock {
	pb := &PanelBlock{block: b, styles: styles, laidOutWidth: -1}
	pb.SetFocusable(true)
	return pb
}

// Bind creates the block's controller against vp, mounts every panel and
// starts listening to src.
func (b *PanelBlock) Bind(vp panelview.Viewport, src *panelview.ScrollSource, cfg panelview.Config, sched panelview.Scheduler) {
	b.vp = vp
	b.ctrl = panelview.New(b.block.Panels(), cfg, vp, sched)
	b.mountAll()
	b.unsub = b.ctrl.Subscribe(func(int) { b.invalidate() })
	b.ctrl.Activate(src)
}

func (b *PanelBlock) mountAll() {
	for i := 0; i < b.ctrl.PanelCount(); i++ {
		b.ctrl.Mount(i, panelRef{b: b, i: i})
	}
}

// Controller exposes the block's controller.
func (b *PanelBlock) Controller() *panelview.Controller { return b.ctrl }

// Block returns the content the widget renders.
func (b *PanelBlock) Block() *content.Block { return b.block }

func (b *PanelBlock) setStyles(st Styles) { b.styles = st }

// Teardown releases the controller.
func (b *PanelBlock) Teardown() {
	if b.unsub != nil {
		b.unsub()
		b.unsub = nil
	}
	if b.ctrl != nil {
		b.ctrl.Teardown()
	}
}

type panelRef struct {
	b *PanelBlock
	i int
}

func (r panelRef) Span() (int, int, bool) {
	if r.i >= len(r.b.tops) {
		return 0, 0, false
	}
	top, _, ok := r.b.vp.ContainerSpan()
	if !ok {
		return 0, 0, false
	}
	t := top + r.b.tops[r.i]
	return t, t + r.b.heights[r.i], true
}

// PanelTop is the row of panel i relative to the block top.
func (b *PanelBlock) PanelTop(i int) (int, bool) {
	if i < 0 || i >= len(b.tops) {
		return 0, false
	}
	return b.tops[i], true
}

func (b *PanelBlock) layout(width int) {
	if width == b.laidOutWidth {
		return
	}
	b.laidOutWidth = width

	b.cardW = 0
	if b.block.Variant == content.VariantSticky && width >= cardMinLayout {
		b.cardW = min(cardMaxWidth, width/3)
	}
	b.textW = width
	if b.cardW > 0 {
		b.textW = width - b.cardW - 1
	}
	b.header = 1
	if b.block.Variant == content.VariantThumbnails {
		b.header = 2
	}

	n := len(b.block.Sections)
	b.tops = make([]int, n)
	b.heights = make([]int, n)
	b.bodies = make([][]string, n)
	y := b.header
	for i, s := range b.block.Sections {
		b.bodies[i] = content.Wrap(s.Body, max(b.textW-bodyIndent, 1))
		b.tops[i] = y
		b.heights[i] = 1 + len(b.bodies[i]) + 1
		y += b.heights[i]
	}
	if n == 0 {
		y++
	}
	if b.cardW > 0 {
		y = max(y, b.header+cardHeight)
	}
	b.height = y
}

// PreferredHeight implements core.Heighted.
func (b *PanelBlock) PreferredHeight(width int) int {
	b.layout(width)
	return b.height
}

// Resize lays the panels out for the new width.
func (b *PanelBlock) Resize(w, h int) {
	b.BaseWidget.Resize(w, h)
	b.layout(w)
}

// SetInvalidator implements core.InvalidationAware.
func (b *PanelBlock) SetInvalidator(fn func(core.Rect)) { b.inv = fn }

func (b *PanelBlock) invalidate() {
	if b.inv != nil {
		b.inv(b.Rect)
	}
}

func (b *PanelBlock) activeIndex() int {
	if b.ctrl == nil {
		return -1
	}
	return b.ctrl.ActiveIndex()
}

func (b *PanelBlock) title() string {
	if b.block.Title != "" {
		return b.block.Title
	}
	return strings.ToUpper(string(b.block.Kind[:1])) + string(b.block.Kind[1:])
}

// Draw renders the header, the panel list and the variant's indicator.
func (b *PanelBlock) Draw(p *core.Painter) {
	b.layout(b.Rect.W)
	b.hits = b.hits[:0]
	x, y := b.Rect.X, b.Rect.Y
	active := b.activeIndex()

	titleStyle := b.styles.Title
	marker := "  "
	if b.IsFocused() {
		titleStyle = b.styles.Accent
		marker = "» "
	}
	b.drawHeader(p, x, y, marker+b.title(), titleStyle, active)

	if len(b.block.Sections) == 0 {
		p.DrawText(x+bodyIndent, y+b.header, emptyPanelText, b.textW-bodyIndent, b.styles.Dim)
		return
	}

	clip := p.Clip()
	for i, s := range b.block.Sections {
		py := y + b.tops[i]
		if py >= clip.Bottom() || py+b.heights[i] <= clip.Y {
			continue
		}
		style, lead := b.styles.Title, "  "
		if i == active {
			style, lead = b.styles.Accent, "▌ "
		}
		p.DrawText(x, py, lead+s.Title, b.textW, style)
		b.hits = append(b.hits, hit{rect: core.Rect{X: x, Y: py, W: b.textW, H: 1}, index: i})
		for j, row := range b.bodies[i] {
			p.DrawText(x+bodyIndent, py+1+j, row, b.textW-bodyIndent, b.styles.Body)
		}
	}

	if b.cardW > 0 {
		b.drawCard(p)
	}
}

func (b *PanelBlock) drawHeader(p *core.Painter, x, y int, title string, style tcell.Style, active int) {
	n := len(b.block.Sections)
	switch b.block.Variant {
	case content.VariantDots:
		w := scroll.DotsWidth(n)
		titleW := b.Rect.W
		if w > 0 && w+2 < b.Rect.W {
			dx := x + b.Rect.W - w
			for i, r := range scroll.DrawDots(p, dx, y, n, active, b.styles.Dim, b.styles.Accent) {
				b.hits = append(b.hits, hit{rect: r, index: i})
			}
			titleW = b.Rect.W - w - 1
		}
		p.DrawText(x, y, title, titleW, style)
	case content.VariantThumbnails:
		p.DrawText(x, y, title, b.Rect.W, style)
		b.drawThumbnails(p, x, y+1, active)
	default:
		p.DrawText(x, y, title, b.Rect.W, style)
	}
}

func (b *PanelBlock) drawThumbnails(p *core.Painter, x, y, active int) {
	cx := x + bodyIndent
	right := x + b.Rect.W
	for i, s := range b.block.Sections {
		label := fmt.Sprintf(" %d %s ", i+1, core.Truncate(s.Title, thumbMaxTitle))
		w := runewidth.StringWidth(label)
		if cx+w > right {
			break
		}
		style := b.styles.Dim
		if i == active {
			style = b.styles.Selected
		}
		p.DrawText(cx, y, label, w, style)
		b.hits = append(b.hits, hit{rect: core.Rect{X: cx, Y: y, W: w, H: 1}, index: i})
		cx += w + 1
	}
}

// drawCard paints the media card of the active panel. It sticks to the top
// of the visible part of the block and never leaves the block.
func (b *PanelBlock) drawCard(p *core.Painter) {
	panel, ok := b.ctrl.ActivePanel()
	if !ok || !panel.HasMedia() {
		return
	}
	top := max(b.Rect.Y+b.header, p.Clip().Y)
	top = min(top, b.Rect.Y+b.Rect.H-cardHeight)
	top = max(top, b.Rect.Y+b.header)
	r := core.Rect{X: b.Rect.X + b.textW + 1, Y: top, W: b.cardW, H: cardHeight}
	drawBox(p, r, b.styles.Card)

	inner := r.W - 2
	alt := panel.Media.Alt
	if alt == "" {
		alt = panel.Title
	}
	lines := content.Wrap([]string{alt}, max(inner, 1))
	for j := 0; j < len(lines) && j < cardHeight-3; j++ {
		p.DrawText(r.X+1, r.Y+1+j, lines[j], inner, b.styles.Body)
	}
	p.DrawText(r.X+1, r.Y+r.H-2, core.Truncate(panel.Media.URL, inner), inner, b.styles.Dim)
}

// HandleMouse navigates to the panel whose title, dot or thumbnail was
// clicked.
func (b *PanelBlock) HandleMouse(ev *tcell.EventMouse) bool {
	if !isPress(ev) || b.ctrl == nil {
		return false
	}
	x, y := ev.Position()
	if i, ok := hitAt(b.hits, x, y); ok {
		b.ctrl.NavigateTo(i)
		return true
	}
	return b.HitTest(x, y)
}

// HandleKey moves the active panel with j and k.
func (b *PanelBlock) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune || b.ctrl == nil {
		return false
	}
	switch ev.Rune() {
	case 'j':
		b.ctrl.NavigateTo(b.ctrl.ActiveIndex() + 1)
		return true
	case 'k':
		b.ctrl.NavigateTo(b.ctrl.ActiveIndex() - 1)
		return true
	}
	return false
}

// Status describes the active panel for the status line.
func (b *PanelBlock) Status() string {
	panel, ok := b.ctrl.ActivePanel()
	if !ok {
		return b.title() + " · " + emptyPanelText
	}
	return fmt.Sprintf("%s · %s (%d/%d)", b.title(), panel.Title, b.ctrl.ActiveIndex()+1, b.ctrl.PanelCount())
}
