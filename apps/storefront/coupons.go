// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/storefront/coupons.go
// Summary: Coupon slider block backed by a bounded carousel.

package storefront

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstore/content"
	"github.com/framegrace/texelstore/texelui/carousel"
	"github.com/framegrace/texelstore/texelui/core"
)

const (
	couponCardHeight   = 5
	// Narrower cards cannot hold a border and a code, so the track falls
	// back to a line of codes.
	couponMinCardWidth = 6
	couponsEmptyText   = "no offers right now"

	hitPrev = -1
	hitNext = -2
)

// CouponBlock shows the coupons of a block a few at a time.
type CouponBlock struct {
	core.BaseWidget
	block    *content.Block
	car      *carousel.Carousel
	styles   Styles
	inv      func(core.Rect)
	onSelect func(c content.Coupon, selected bool)
	hits     []hit
}

// NewCouponBlock creates the slider. perView is used when the block does not
// set items_per_view.
func NewCouponBlock(b *content.Block, perView int, styles Styles) *CouponBlock {
	if b.ItemsPerView > 0 {
		perView = b.ItemsPerView
	}
	cb := &CouponBlock{block: b, car: carousel.New(len(b.Coupons), perView), styles: styles}
	cb.SetFocusable(true)
	return cb
}

// Carousel exposes the slide window.
func (b *CouponBlock) Carousel() *carousel.Carousel { return b.car }

// OnSelect registers the callback run after a coupon is toggled.
func (b *CouponBlock) OnSelect(fn func(c content.Coupon, selected bool)) { b.onSelect = fn }

// PreferredHeight implements core.Heighted.
func (b *CouponBlock) PreferredHeight(width int) int {
	return 1 + couponCardHeight + 1
}

// SetInvalidator implements core.InvalidationAware.
func (b *CouponBlock) SetInvalidator(fn func(core.Rect)) { b.inv = fn }

func (b *CouponBlock) invalidate() {
	if b.inv != nil {
		b.inv(b.Rect)
	}
}

// Next slides the window right.
func (b *CouponBlock) Next() {
	b.car.Next()
	b.invalidate()
}

// Prev slides the window left.
func (b *CouponBlock) Prev() {
	b.car.Prev()
	b.invalidate()
}

// Toggle flips the selection of coupon i and reports it.
func (b *CouponBlock) Toggle(i int) {
	if i < 0 || i >= len(b.block.Coupons) {
		return
	}
	b.car.Select(i)
	sel, ok := b.car.Selected()
	b.invalidate()
	if b.onSelect != nil {
		b.onSelect(b.block.Coupons[i], ok && sel == i)
	}
}

func (b *CouponBlock) title() string {
	if b.block.Title != "" {
		return b.block.Title
	}
	return "Offers"
}

// Draw renders the header with its arrows and the visible coupon cards.
func (b *CouponBlock) Draw(p *core.Painter) {
	b.hits = b.hits[:0]
	x, y, w := b.Rect.X, b.Rect.Y, b.Rect.W

	titleStyle, marker := b.styles.Title, "  "
	if b.IsFocused() {
		titleStyle, marker = b.styles.Accent, "» "
	}
	p.DrawText(x, y, marker+b.title(), max(w-4, 0), titleStyle)

	if len(b.block.Coupons) == 0 {
		p.DrawText(x+bodyIndent, y+1, couponsEmptyText, w-bodyIndent, b.styles.Dim)
		return
	}

	if w >= 4 {
		b.drawArrow(p, x+w-3, y, '◀', b.car.CanPrev(), hitPrev)
		b.drawArrow(p, x+w-1, y, '▶', b.car.CanNext(), hitNext)
	}

	track := core.Rect{X: x, Y: y + 1, W: w, H: couponCardHeight}
	cp := p.WithClip(track)
	itemW := b.car.ItemWidth(w)
	if itemW < couponMinCardWidth {
		b.drawCodes(cp, track)
		return
	}
	off := b.car.OffsetCells(w)
	sel, hasSel := b.car.Selected()
	for i, c := range b.block.Coupons {
		cx := x + off + i*itemW
		if cx+itemW <= x || cx >= x+w {
			continue
		}
		style := b.styles.Card
		if hasSel && sel == i {
			style = b.styles.Selected
		}
		r := core.Rect{X: cx, Y: track.Y, W: max(itemW-1, 2), H: couponCardHeight}
		drawBox(cp, r, style)
		inner := r.W - 2
		cp.DrawText(r.X+1, r.Y+1, c.Code, inner, style.Bold(true))
		cp.DrawText(r.X+1, r.Y+2, c.Title, inner, style)
		detail := c.Discount
		if c.Expires != "" {
			detail = fmt.Sprintf("%s · until %s", c.Discount, c.Expires)
		}
		cp.DrawText(r.X+1, r.Y+3, detail, inner, style)
		b.hits = append(b.hits, hit{rect: r.Intersect(track), index: i})
	}
}

// drawCodes lists the codes of the visible coupons on one line.
func (b *CouponBlock) drawCodes(p *core.Painter, track core.Rect) {
	first, last := b.car.Visible()
	sel, hasSel := b.car.Selected()
	cx := track.X
	for i := first; i <= last && cx < track.X+track.W; i++ {
		style := b.styles.Card
		if hasSel && sel == i {
			style = b.styles.Selected
		}
		code := b.block.Coupons[i].Code
		n := p.DrawText(cx, track.Y, code, track.X+track.W-cx, style)
		b.hits = append(b.hits, hit{rect: core.Rect{X: cx, Y: track.Y, W: n, H: 1}, index: i})
		cx += n + 1
	}
}

// SetItemsPerView changes how many coupons share the track, unless the
// block fixes items_per_view itself.
func (b *CouponBlock) SetItemsPerView(n int) {
	if b.block.ItemsPerView > 0 {
		return
	}
	b.car.SetItemsPerView(n)
	b.invalidate()
}

func (b *CouponBlock) setStyles(st Styles) { b.styles = st }

func (b *CouponBlock) drawArrow(p *core.Painter, x, y int, glyph rune, enabled bool, action int) {
	style := b.styles.Dim
	if enabled {
		style = b.styles.Accent
		b.hits = append(b.hits, hit{rect: core.Rect{X: x, Y: y, W: 1, H: 1}, index: action})
	}
	p.SetCell(x, y, glyph, style)
}

// HandleMouse handles arrow and card clicks.
func (b *CouponBlock) HandleMouse(ev *tcell.EventMouse) bool {
	if !isPress(ev) {
		return false
	}
	x, y := ev.Position()
	i, ok := hitAt(b.hits, x, y)
	if !ok {
		return b.HitTest(x, y)
	}
	switch i {
	case hitPrev:
		b.Prev()
	case hitNext:
		b.Next()
	default:
		b.Toggle(i)
	}
	return true
}

// HandleKey slides with h/l and the arrow keys; Enter and Space toggle the
// first visible coupon.
func (b *CouponBlock) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		b.Prev()
		return true
	case tcell.KeyRight:
		b.Next()
		return true
	case tcell.KeyEnter:
		b.toggleFirstVisible()
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			b.Prev()
			return true
		case 'l':
			b.Next()
			return true
		case ' ':
			b.toggleFirstVisible()
			return true
		}
	}
	return false
}

func (b *CouponBlock) toggleFirstVisible() {
	first, last := b.car.Visible()
	if last < first {
		return
	}
	b.Toggle(first)
}

// Status describes the slide window for the status line.
func (b *CouponBlock) Status() string {
	first, last := b.car.Visible()
	if last < first {
		return b.title() + " · " + couponsEmptyText
	}
	s := fmt.Sprintf("%s · %d-%d of %d", b.title(), first+1, last+1, b.car.ItemCount())
	if sel, ok := b.car.Selected(); ok {
		s += " · selected " + b.block.Coupons[sel].Code
	}
	return s
}
