// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/storefront/app.go
// Summary: Full-screen storefront page viewer.
// Usage: Built by the devshell runner from a page file, or rendered headless
// with a ManualScheduler for plain-text dumps.

package storefront

import (
	"log"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstore/config"
	"github.com/framegrace/texelstore/content"
	"github.com/framegrace/texelstore/texel"
	"github.com/framegrace/texelstore/texelui/core"
	"github.com/framegrace/texelstore/texelui/panelview"
	"github.com/framegrace/texelstore/texelui/scroll"
)

const keyHints = "tab focus · j/k panels · h/l offers · ? keys"

// Options configures a storefront App.
type Options struct {
	Viewer     config.Viewer
	Storefront config.Storefront
	// Scheduler delivers frames and timers on the UI goroutine. A nil
	// scheduler selects a ManualScheduler.
	Scheduler panelview.Scheduler
	// Reload re-reads the settings from their source. A nil Reload leaves
	// the settings fixed.
	Reload func() (config.Viewer, config.Storefront, error)
}

// App renders a content.Page: a header row, the scrolling blocks and a
// status line.
type App struct {
	page   *content.Page
	opts   Options
	styles Styles

	pane      *scroll.ScrollPane
	panels    []*PanelBlock
	coupons   []*CouponBlock
	focusable []core.Widget
	focus     int
	toast     *Toast
	help      bool

	width, height int
	refreshChan   chan<- bool
	stop          chan struct{}
	stopOnce      sync.Once
}

var (
	_ texel.App          = (*App)(nil)
	_ texel.MouseHandler = (*App)(nil)
)

// Open loads the page at path and builds an App whose timers run on p.
// Viewer and storefront settings come from the config store.
func Open(path string, p texel.Poster) (*App, error) {
	page, err := content.Load(path)
	if err != nil {
		return nil, err
	}
	viewer := config.ViewerSettings(config.System())
	return New(page, Options{
		Viewer:     viewer,
		Storefront: config.StorefrontSettings(config.App("storefront")),
		Scheduler:  panelview.NewLoopScheduler(p, viewer.FrameInterval),
		Reload:     reloadSettings,
	}), nil
}

func reloadSettings() (config.Viewer, config.Storefront, error) {
	if err := config.Reload(); err != nil {
		return config.Viewer{}, config.Storefront{}, err
	}
	return config.ViewerSettings(config.System()), config.StorefrontSettings(config.App("storefront")), nil
}

// New builds the widget tree for page.
func New(page *content.Page, opts Options) *App {
	if opts.Scheduler == nil {
		opts.Scheduler = panelview.NewManualScheduler()
	}
	if opts.Storefront.ItemsPerView < 1 {
		opts.Storefront.ItemsPerView = 1
	}
	a := &App{
		page:   page,
		opts:   opts,
		styles: DefaultStyles().WithOverrides(opts.Storefront.Theme),
		stop:   make(chan struct{}),
	}
	a.toast = NewToast(opts.Scheduler, opts.Storefront.ToastDuration, a.requestRefresh)

	a.pane = scroll.NewScrollPane(0, 1, 0, 0, a.styles.Base)
	a.pane.SetScheduler(opts.Scheduler, opts.Viewer.FrameInterval)
	a.pane.SetScrollAnimation(opts.Viewer.ScrollDuration, opts.Viewer.Easing)
	a.pane.SetInvalidator(a.invalidate)

	for i := range page.Blocks {
		b := &page.Blocks[i]
		if b.Kind == content.KindCoupons {
			cb := NewCouponBlock(b, opts.Storefront.ItemsPerView, a.styles)
			cb.OnSelect(a.couponToggled)
			a.pane.AddChild(cb)
			a.coupons = append(a.coupons, cb)
			a.focusable = append(a.focusable, cb)
			continue
		}
		pb := NewPanelBlock(b, a.styles)
		a.pane.AddChild(pb)
		pb.Bind(a.pane.ViewportFor(pb), a.pane.Source(), a.controllerConfig(b), opts.Scheduler)
		a.panels = append(a.panels, pb)
		a.focusable = append(a.focusable, pb)
	}
	a.setFocus(0)
	return a
}

func (a *App) controllerConfig(b *content.Block) panelview.Config {
	cfg := a.opts.Viewer.Controller()
	if b.Band == nil {
		return cfg
	}
	band := b.Band.Over(cfg.Band)
	if band.Lower >= band.Upper {
		log.Printf("Storefront: block %q band lower %v not below upper %v, using viewer band", b.Title, band.Lower, band.Upper)
		return cfg
	}
	cfg.Band = band
	return cfg
}

// ReloadSettings re-reads the viewer and storefront settings and applies
// them to the running page. On failure the current settings stay.
func (a *App) ReloadSettings() {
	if a.opts.Reload == nil {
		a.toast.Show("Settings reload unavailable")
		return
	}
	viewer, sf, err := a.opts.Reload()
	if err != nil {
		log.Printf("Storefront: settings reload failed: %v", err)
		a.toast.Show("Settings reload failed: " + err.Error())
		return
	}
	a.applySettings(viewer, sf)
	a.toast.Show("Settings reloaded")
}

func (a *App) applySettings(viewer config.Viewer, sf config.Storefront) {
	if sf.ItemsPerView < 1 {
		sf.ItemsPerView = 1
	}
	a.opts.Viewer, a.opts.Storefront = viewer, sf
	a.styles = DefaultStyles().WithOverrides(sf.Theme)

	a.toast.SetDuration(sf.ToastDuration)
	a.pane.Style = a.styles.Base
	a.pane.IndicatorStyle = a.styles.Base.Dim(true)
	a.pane.SetIndicatorConfig(scroll.DefaultIndicatorConfig(a.pane.IndicatorStyle))
	a.pane.SetScheduler(a.opts.Scheduler, viewer.FrameInterval)
	a.pane.SetScrollAnimation(viewer.ScrollDuration, viewer.Easing)
	for _, pb := range a.panels {
		pb.setStyles(a.styles)
		pb.Controller().SetConfig(a.controllerConfig(pb.Block()))
	}
	for _, cb := range a.coupons {
		cb.setStyles(a.styles)
		cb.SetItemsPerView(sf.ItemsPerView)
	}
	a.Resize(a.width, a.height)
}

func (a *App) couponToggled(c content.Coupon, selected bool) {
	if selected {
		a.toast.Show("Coupon " + c.Code + " applied: " + c.Discount)
		return
	}
	a.toast.Show("Coupon " + c.Code + " removed")
}

// Run blocks until Stop. All work happens on the runner's event loop.
func (a *App) Run() error {
	<-a.stop
	return nil
}

// Stop tears down every controller and the toast timer. It is idempotent.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		for _, pb := range a.panels {
			pb.Teardown()
		}
		a.toast.Stop()
		close(a.stop)
	})
}

// Resize lays the page out for a cols×rows screen and re-classifies every
// panel list against the new geometry.
func (a *App) Resize(cols, rows int) {
	a.width, a.height = max(cols, 0), max(rows, 0)
	a.pane.SetPosition(0, 1)
	a.pane.Resize(a.width, max(a.height-2, 0))
	for _, pb := range a.panels {
		pb.Controller().Sync()
	}
}

func (a *App) GetTitle() string {
	if a.page.Title != "" {
		return a.page.Title
	}
	return "Storefront"
}

func (a *App) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
}

func (a *App) requestRefresh() {
	if a.refreshChan == nil {
		return
	}
	select {
	case a.refreshChan <- true:
	default:
	}
}

func (a *App) invalidate(core.Rect) { a.requestRefresh() }

func (a *App) setFocus(i int) {
	if len(a.focusable) == 0 {
		return
	}
	i = ((i % len(a.focusable)) + len(a.focusable)) % len(a.focusable)
	a.focusable[a.focus].Blur()
	a.focus = i
	a.focusable[i].Focus()
}

// Focused returns the block that receives block keys.
func (a *App) Focused() core.Widget {
	if len(a.focusable) == 0 {
		return nil
	}
	return a.focusable[a.focus]
}

// HandleKey routes keys to the focused block first and to the page second.
func (a *App) HandleKey(ev *tcell.EventKey) {
	if a.help {
		a.help = false
		a.requestRefresh()
		return
	}
	if isHelpKey(ev) {
		a.help = true
		a.requestRefresh()
		return
	}
	switch ev.Key() {
	case tcell.KeyTab:
		a.setFocus(a.focus + 1)
		return
	case tcell.KeyBacktab:
		a.setFocus(a.focus - 1)
		return
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.Stop()
			return
		case 'r':
			a.ReloadSettings()
			return
		}
	}
	if w := a.Focused(); w != nil && w.HandleKey(ev) {
		return
	}
	a.pane.HandleKey(ev)
}

// HandleMouse focuses the clicked block and forwards the event to the page.
func (a *App) HandleMouse(ev *tcell.EventMouse) {
	if a.help {
		if isPress(ev) {
			a.help = false
			a.requestRefresh()
		}
		return
	}
	if isPress(ev) {
		x, y := ev.Position()
		if w := a.pane.WidgetAt(x, y); w != nil {
			for i, f := range a.focusable {
				if f == w && i != a.focus {
					a.setFocus(i)
				}
			}
		}
	}
	a.pane.HandleMouse(ev)
}

// Render draws the whole screen.
func (a *App) Render() [][]texel.Cell {
	if a.width <= 0 || a.height <= 0 {
		return [][]texel.Cell{}
	}
	buf := core.NewBuffer(a.width, a.height, a.styles.Base)
	p := core.NewPainter(buf, core.Rect{W: a.width, H: a.height})

	p.Fill(core.Rect{W: a.width, H: 1}, ' ', a.styles.Header)
	used := p.DrawText(1, 0, a.GetTitle(), a.width-1, a.styles.Header)
	if hintX := a.width - len([]rune(keyHints)) - 1; hintX > used+2 {
		p.DrawText(hintX, 0, keyHints, a.width-hintX, a.styles.Header)
	}

	a.pane.Draw(p)
	if a.help {
		drawHelp(p, a.pane.Bounds(), a.styles)
	}

	if a.height > 1 {
		y := a.height - 1
		style, msg := a.styles.Status, a.status()
		if t := a.toast.Message(); t != "" {
			style, msg = a.styles.Toast, t
		}
		p.Fill(core.Rect{Y: y, W: a.width, H: 1}, ' ', style)
		p.DrawText(1, y, core.Truncate(msg, a.width-1), a.width-1, style)
	}
	return buf
}

func (a *App) status() string {
	switch w := a.Focused().(type) {
	case *PanelBlock:
		return w.Status()
	case *CouponBlock:
		return w.Status()
	}
	return ""
}

// RenderText renders the screen as plain text rows without styles.
func (a *App) RenderText() []string {
	buf := a.Render()
	rows := make([]string, len(buf))
	for y, row := range buf {
		var sb strings.Builder
		for _, c := range row {
			if c.Ch == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(c.Ch)
		}
		rows[y] = strings.TrimRight(sb.String(), " ")
	}
	return rows
}

// Pane exposes the page viewport.
func (a *App) Pane() *scroll.ScrollPane { return a.pane }

// PanelBlocks returns the synchronized panel lists in page order.
func (a *App) PanelBlocks() []*PanelBlock { return a.panels }

// CouponBlocks returns the coupon sliders in page order.
func (a *App) CouponBlocks() []*CouponBlock { return a.coupons }

// HelpVisible reports whether the key reference overlay is shown.
func (a *App) HelpVisible() bool { return a.help }

// Toast exposes the status-line toast.
func (a *App) Toast() *Toast { return a.toast }
