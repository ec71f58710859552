// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/scrollpane.go
// Summary: Page viewport that stacks blocks vertically and scrolls them.
// Every offset or layout change is broadcast on a panelview.ScrollSource so
// the controllers of the stacked blocks can re-sample their panels.

package scroll

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstore/internal/effects"
	"github.com/framegrace/texelstore/texelui/core"
	"github.com/framegrace/texelstore/texelui/panelview"
)

// Default smooth-scroll parameters.
const (
	DefaultScrollDuration = 300 * time.Millisecond
	wheelStep             = 3
)

// ScrollPane is a container widget that stacks its children and scrolls them
// when their combined height exceeds the viewport.
type ScrollPane struct {
	core.BaseWidget
	Style           tcell.Style
	IndicatorStyle  tcell.Style
	children        []core.Widget
	tops            []int // content row of each child
	laidOut         bool
	state           State
	inv             func(core.Rect)
	showIndicators  bool
	indicatorConfig IndicatorConfig

	source   *panelview.ScrollSource
	sched    panelview.Scheduler
	frame    time.Duration
	duration time.Duration
	easing   effects.EasingFunc
	anim     *animation
}

type animation struct {
	tween       *effects.Tween
	done        func()
	cancelFrame func()
}

// NewScrollPane creates a new scroll pane with the given dimensions and style.
func NewScrollPane(x, y, w, h int, style tcell.Style) *ScrollPane {
	sp := &ScrollPane{
		Style:          style,
		IndicatorStyle: style.Dim(true),
		showIndicators: true,
		source:         panelview.NewScrollSource(),
		duration:       DefaultScrollDuration,
		frame:          panelview.DefaultFrameInterval,
		easing:         effects.EaseSmoothstep,
	}
	sp.indicatorConfig = DefaultIndicatorConfig(sp.IndicatorStyle)
	sp.BaseWidget.SetPosition(x, y)
	sp.BaseWidget.Resize(w, h)
	sp.state = NewState(0, h)
	sp.SetFocusable(true)
	return sp
}

// Source is the scroll source controllers attach to.
func (sp *ScrollPane) Source() *panelview.ScrollSource { return sp.source }

// SetScheduler enables smooth programmatic scrolling. Without a scheduler
// ScrollIntoView jumps straight to its target.
func (sp *ScrollPane) SetScheduler(s panelview.Scheduler, frame time.Duration) {
	sp.sched = s
	if frame > 0 {
		sp.frame = frame
	}
}

// SetScrollAnimation sets the duration and easing of programmatic scrolls.
// A zero duration makes them instant.
func (sp *ScrollPane) SetScrollAnimation(d time.Duration, easing effects.EasingFunc) {
	sp.duration = d
	if easing != nil {
		sp.easing = easing
	}
}

// AddChild appends a block below the existing ones.
func (sp *ScrollPane) AddChild(w core.Widget) {
	sp.children = append(sp.children, w)
	if sp.inv != nil {
		if ia, ok := w.(core.InvalidationAware); ok {
			ia.SetInvalidator(sp.inv)
		}
	}
	sp.Layout()
}

// Children returns the stacked blocks in order.
func (sp *ScrollPane) Children() []core.Widget {
	return append([]core.Widget(nil), sp.children...)
}

// ContentWidth is the width handed to children; one column is kept free for
// the overflow indicators.
func (sp *ScrollPane) ContentWidth() int {
	if sp.showIndicators && sp.Rect.W > 1 {
		return sp.Rect.W - 1
	}
	return sp.Rect.W
}

// Layout sizes every child at the content width and stacks them. Scroll
// listeners are notified because panel geometry may have moved.
func (sp *ScrollPane) Layout() {
	width := sp.ContentWidth()
	sp.tops = make([]int, len(sp.children))
	y := 0
	for i, child := range sp.children {
		h := 0
		if hc, ok := child.(core.Heighted); ok {
			h = hc.PreferredHeight(width)
		} else {
			_, h = child.Size()
		}
		child.Resize(width, h)
		sp.tops[i] = y
		y += h
	}
	sp.laidOut = true
	sp.state = sp.state.WithContentHeight(y).WithViewportHeight(sp.Rect.H)
	sp.positionChildren()
	sp.invalidate()
	sp.source.Notify()
}

func (sp *ScrollPane) positionChildren() {
	x := sp.Rect.X
	if sp.indicatorConfig.Left && sp.ContentWidth() < sp.Rect.W {
		x++
	}
	for i, child := range sp.children {
		child.SetPosition(x, sp.Rect.Y+sp.tops[i]-sp.state.Offset)
	}
}

// SetPosition moves the pane and its children.
func (sp *ScrollPane) SetPosition(x, y int) {
	sp.BaseWidget.SetPosition(x, y)
	sp.positionChildren()
}

// Resize updates the viewport dimensions and lays the children out again.
func (sp *ScrollPane) Resize(w, h int) {
	sp.BaseWidget.Resize(w, h)
	sp.Layout()
}

// ContentHeight returns the combined height of the children.
func (sp *ScrollPane) ContentHeight() int {
	return sp.state.ContentHeight
}

// ScrollOffset returns the current scroll offset.
func (sp *ScrollPane) ScrollOffset() int {
	return sp.state.Offset
}

// State returns the current scroll state.
func (sp *ScrollPane) State() State {
	return sp.state
}

// SetInvalidator sets the invalidation callback.
func (sp *ScrollPane) SetInvalidator(fn func(core.Rect)) {
	sp.inv = fn
	for _, child := range sp.children {
		if ia, ok := child.(core.InvalidationAware); ok {
			ia.SetInvalidator(fn)
		}
	}
}

func (sp *ScrollPane) invalidate() {
	if sp.inv != nil {
		sp.inv(sp.Rect)
	}
}

// ShowIndicators enables or disables scroll indicators.
func (sp *ScrollPane) ShowIndicators(show bool) {
	sp.showIndicators = show
	sp.Layout()
}

// SetIndicatorConfig sets the indicator configuration.
func (sp *ScrollPane) SetIndicatorConfig(config IndicatorConfig) {
	sp.indicatorConfig = config
	sp.positionChildren()
}

// Draw renders the visible children and the overflow indicators.
func (sp *ScrollPane) Draw(painter *core.Painter) {
	rect := sp.Rect
	painter.Fill(rect, ' ', sp.Style)
	clipped := painter.WithClip(rect)
	for _, child := range sp.children {
		x, y := child.Position()
		w, h := child.Size()
		if (core.Rect{X: x, Y: y, W: w, H: h}).Overlaps(rect) {
			child.Draw(clipped)
		}
	}
	if sp.showIndicators {
		DrawIndicators(painter, rect, sp.state, sp.indicatorConfig)
	}
}

// setOffset moves the page and notifies listeners when the offset changed.
func (sp *ScrollPane) setOffset(off int) bool {
	old := sp.state.Offset
	sp.state = sp.state.WithOffset(off)
	if sp.state.Offset == old {
		return false
	}
	sp.positionChildren()
	sp.invalidate()
	sp.source.Notify()
	return true
}

// ScrollBy scrolls by the given delta (positive = down). A user scroll
// interrupts any programmatic scroll in flight.
func (sp *ScrollPane) ScrollBy(delta int) {
	sp.interrupt()
	sp.setOffset(sp.state.Offset + delta)
}

// ScrollTo scrolls to make the given row visible with minimal movement.
func (sp *ScrollPane) ScrollTo(row int) {
	sp.interrupt()
	sp.setOffset(sp.state.ScrollTo(row).Offset)
}

// ScrollToCentered scrolls to center the given row in the viewport.
func (sp *ScrollPane) ScrollToCentered(row int) {
	sp.interrupt()
	sp.setOffset(sp.state.ScrollToCentered(row).Offset)
}

// ScrollToTop scrolls to the top of the content.
func (sp *ScrollPane) ScrollToTop() {
	sp.interrupt()
	sp.setOffset(0)
}

// ScrollToBottom scrolls to the bottom of the content.
func (sp *ScrollPane) ScrollToBottom() {
	sp.interrupt()
	sp.setOffset(sp.state.MaxOffset())
}

// AnimateTo scrolls smoothly to offset, one tween step per frame. done runs
// when the target is reached or when a user scroll interrupts the
// animation. The returned func aborts the animation without calling done.
func (sp *ScrollPane) AnimateTo(offset int, done func()) (cancel func()) {
	sp.interrupt()
	target := sp.state.WithOffset(offset).Offset
	if sp.sched == nil || sp.duration <= 0 || target == sp.state.Offset {
		sp.setOffset(target)
		if done != nil {
			done()
		}
		return func() {}
	}
	a := &animation{
		tween: effects.NewTween(sp.state.Offset, target, sp.duration, sp.frame, sp.easing),
		done:  done,
	}
	sp.anim = a
	a.cancelFrame = sp.sched.RequestFrame(func() { sp.step(a) })
	return func() {
		if sp.anim == a {
			sp.anim = nil
			a.cancelFrame()
		}
	}
}

func (sp *ScrollPane) step(a *animation) {
	if sp.anim != a {
		return
	}
	sp.setOffset(a.tween.Step())
	if !a.tween.Done() {
		a.cancelFrame = sp.sched.RequestFrame(func() { sp.step(a) })
		return
	}
	sp.anim = nil
	if a.done != nil {
		a.done()
	}
}

// interrupt stops a programmatic scroll and reports it as settled.
func (sp *ScrollPane) interrupt() {
	a := sp.anim
	if a == nil {
		return
	}
	sp.anim = nil
	a.cancelFrame()
	if a.done != nil {
		a.done()
	}
}

// Animating reports whether a programmatic scroll is in flight.
func (sp *ScrollPane) Animating() bool { return sp.anim != nil }

// HandleKey handles keyboard input for scrolling.
func (sp *ScrollPane) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		sp.ScrollBy(-1)
		return true
	case tcell.KeyDown:
		sp.ScrollBy(1)
		return true
	case tcell.KeyPgUp:
		sp.ScrollBy(-sp.Rect.H)
		return true
	case tcell.KeyPgDn:
		sp.ScrollBy(sp.Rect.H)
		return true
	case tcell.KeyHome:
		sp.ScrollToTop()
		return true
	case tcell.KeyEnd:
		sp.ScrollToBottom()
		return true
	}
	return false
}

// HandleMouse scrolls on wheel events and routes everything else to the
// child under the pointer.
func (sp *ScrollPane) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !sp.HitTest(x, y) {
		return false
	}
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		sp.ScrollBy(-wheelStep)
		return true
	case ev.Buttons()&tcell.WheelDown != 0:
		sp.ScrollBy(wheelStep)
		return true
	}
	if child := sp.WidgetAt(x, y); child != nil {
		if ma, ok := child.(core.MouseAware); ok {
			return ma.HandleMouse(ev)
		}
	}
	return true
}

// WidgetAt returns the child under (x, y).
func (sp *ScrollPane) WidgetAt(x, y int) core.Widget {
	if !sp.HitTest(x, y) {
		return nil
	}
	for _, child := range sp.children {
		if child.HitTest(x, y) {
			return child
		}
	}
	return nil
}

// VisitChildren calls f for every child.
func (sp *ScrollPane) VisitChildren(f func(core.Widget)) {
	for _, child := range sp.children {
		f(child)
	}
}

// CanScroll returns true if the content can be scrolled.
func (sp *ScrollPane) CanScroll() bool {
	return sp.state.CanScroll()
}

// CanScrollUp returns true if there is content above the viewport.
func (sp *ScrollPane) CanScrollUp() bool {
	return sp.state.CanScrollUp()
}

// CanScrollDown returns true if there is content below the viewport.
func (sp *ScrollPane) CanScrollDown() bool {
	return sp.state.CanScrollDown()
}

// ViewportFor returns the panelview.Viewport seen by child.
func (sp *ScrollPane) ViewportFor(child core.Widget) panelview.Viewport {
	return &blockViewport{sp: sp, child: child}
}

type blockViewport struct {
	sp    *ScrollPane
	child core.Widget
}

func (v *blockViewport) Height() int { return v.sp.Rect.H }

func (v *blockViewport) ContainerSpan() (int, int, bool) {
	if !v.sp.laidOut {
		return 0, 0, false
	}
	for i, child := range v.sp.children {
		if child == v.child {
			_, h := child.Size()
			top := v.sp.tops[i] - v.sp.state.Offset
			return top, top + h, true
		}
	}
	return 0, 0, false
}

func (v *blockViewport) ScrollIntoView(top int, done func()) func() {
	return v.sp.AnimateTo(v.sp.state.Offset+top, done)
}
