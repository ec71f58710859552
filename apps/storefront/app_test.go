// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package storefront

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstore/config"
	"github.com/framegrace/texelstore/content"
	"github.com/framegrace/texelstore/texel"
	"github.com/framegrace/texelstore/texelui/panelview"
	"github.com/framegrace/texelstore/texelui/scroll"
)

const testPage = `
title: Test Shop
blocks:
  - kind: ingredients
    title: Ingredients
    sections:
      - {id: p0, title: Flour, format: text, body: spelt, media: {url: "https://example.com/flour.png", alt: A bowl of flour}}
      - {id: p1, title: Lemon, format: text, body: zest}
      - {id: p2, title: Sugar, format: text, body: cane}
      - {id: p3, title: Eggs, format: text, body: free range}
      - {id: p4, title: Butter, format: text, body: salted}
      - {id: p5, title: Thyme, format: text, body: fresh}
  - kind: description
    variant: dots
    title: Method
    band: {upper: 0.9, lower: 0.1}
    sections:
      - {id: m0, title: Mix, format: text, body: whisk}
      - {id: m1, title: Bake, format: text, body: oven}
  - kind: coupons
    title: Offers
    coupons:
      - {code: SPRING10, title: Spring sale, discount: 10%}
      - {code: FREESHIP, title: Free shipping, discount: shipping}
      - {code: BAKE5, title: Bakers bonus, discount: 5 EUR}
  - kind: gallery
    title: Gallery
`

func newTestApp(t *testing.T) (*App, *panelview.ManualScheduler) {
	t.Helper()
	page, err := content.Parse([]byte(testPage))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sched := panelview.NewManualScheduler()
	app := New(page, Options{
		Viewer:     config.ViewerSettings(nil),
		Storefront: config.Storefront{ItemsPerView: 2, ToastDuration: 2 * time.Second},
		Scheduler:  sched,
	})
	app.Resize(60, 20)
	return app, sched
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func screenText(app *App) string {
	return strings.Join(app.RenderText(), "\n")
}

func TestLayoutAndInitialRender(t *testing.T) {
	app, _ := newTestApp(t)

	if got := len(app.PanelBlocks()); got != 3 {
		t.Fatalf("panel blocks = %d, want 3", got)
	}
	if got := len(app.CouponBlocks()); got != 1 {
		t.Fatalf("coupon blocks = %d, want 1", got)
	}

	ing := app.PanelBlocks()[0]
	if top, _ := ing.PanelTop(4); top != 13 {
		t.Errorf("PanelTop(4) = %d, want 13", top)
	}
	// Panel 2 spans rows 7..10 of an 18-row viewport, the only panel in the
	// 0.4..0.6 band.
	if got := ing.Controller().ActiveIndex(); got != 2 {
		t.Errorf("initial active = %d, want 2", got)
	}

	text := screenText(app)
	for _, want := range []string{"Test Shop", "Ingredients", "Flour", "spelt", keyHints} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(app.RenderText()[19], "Ingredients · Sugar (3/6)") {
		t.Errorf("status line = %q", app.RenderText()[19])
	}
}

func TestScrollUpdatesActiveOncePerFrame(t *testing.T) {
	app, sched := newTestApp(t)
	ctrl := app.PanelBlocks()[0].Controller()

	var seen []int
	ctrl.Subscribe(func(i int) { seen = append(seen, i) })

	// Three wheel-sized steps before the frame: one classification.
	app.Pane().ScrollBy(2)
	app.Pane().ScrollBy(2)
	app.Pane().ScrollBy(2)
	if got := ctrl.ActiveIndex(); got != 2 {
		t.Errorf("active before frame = %d, want 2", got)
	}
	sched.Frame()
	if got := ctrl.ActiveIndex(); got != 4 {
		t.Errorf("active after frame = %d, want 4", got)
	}
	if len(seen) != 1 || seen[0] != 4 {
		t.Errorf("notifications = %v, want [4]", seen)
	}
}

func TestKeyNavigationLocksUntilScrollSettles(t *testing.T) {
	app, sched := newTestApp(t)
	ctrl := app.PanelBlocks()[0].Controller()

	app.HandleKey(key('j'))
	if got := ctrl.ActiveIndex(); got != 3 {
		t.Fatalf("active after j = %d, want 3", got)
	}
	if !ctrl.Locked() || !app.Pane().Animating() {
		t.Fatal("navigation should lock and animate")
	}

	sched.Settle(100)
	if ctrl.Locked() {
		t.Error("lock still held after the scroll settled")
	}
	if got := ctrl.ActiveIndex(); got != 3 {
		t.Errorf("active after settle = %d, want 3", got)
	}
	// Panel 3 starts at page row 10; its top is parked on row 7, the first
	// row inside the 0.4..0.6 band of the 18-row viewport.
	if got := app.Pane().ScrollOffset(); got != 3 {
		t.Errorf("offset = %d, want 3", got)
	}
	if sched.PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d, want 0", sched.PendingTimers())
	}
}

func TestNavigatedPanelStaysActiveAtRest(t *testing.T) {
	app, sched := newTestApp(t)
	ctrl := app.PanelBlocks()[0].Controller()

	for _, want := range []int{3, 4, 5} {
		app.HandleKey(key('j'))
		sched.Settle(100)
		if got := ctrl.ActiveIndex(); got != want {
			t.Fatalf("active after j = %d, want %d", got, want)
		}

		// Re-classifying the unchanged page must agree with the navigation.
		app.Resize(60, 20)
		if got := ctrl.ActiveIndex(); got != want {
			t.Errorf("active after same-size resize = %d, want %d", got, want)
		}
		ctrl.OnScroll()
		sched.Frame()
		if got := ctrl.ActiveIndex(); got != want {
			t.Errorf("active after a still scroll tick = %d, want %d", got, want)
		}
	}

	app.HandleKey(key('k'))
	sched.Settle(100)
	app.Resize(60, 20)
	if got := ctrl.ActiveIndex(); got != 4 {
		t.Errorf("active after k and resize = %d, want 4", got)
	}
}

func TestWheelDuringNavigationReleasesLock(t *testing.T) {
	app, sched := newTestApp(t)
	ctrl := app.PanelBlocks()[0].Controller()

	app.HandleKey(key('j'))
	sched.Frame()
	app.HandleMouse(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	if ctrl.Locked() {
		t.Error("user scroll should end the navigation lock")
	}
	if app.Pane().Animating() {
		t.Error("user scroll should stop the animation")
	}
}

func TestDotClickNavigates(t *testing.T) {
	app, sched := newTestApp(t)
	app.Pane().ScrollToBottom()
	sched.Settle(10)
	app.Render()

	method := app.PanelBlocks()[1]
	x, y := method.Position()
	w, _ := method.Size()
	dx := x + w - scroll.DotsWidth(2)

	app.HandleMouse(tcell.NewEventMouse(dx+2, y, tcell.Button1, tcell.ModNone))
	if got := method.Controller().ActiveIndex(); got != 1 {
		t.Errorf("active after dot click = %d, want 1", got)
	}
	if app.Focused() != method {
		t.Error("clicked block should take focus")
	}
	want := panelview.Band{Upper: 0.9, Lower: 0.1, Hysteresis: panelview.DefaultHysteresis}
	if got := method.Controller().Config().Band; got != want {
		t.Errorf("band override = %+v, want %+v", got, want)
	}
}

func TestPartialBandOverride(t *testing.T) {
	page, err := content.Parse([]byte(`
blocks:
  - kind: ingredients
    band: {lower: 0.3}
    sections:
      - {id: a, title: A, format: text, body: a}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	viewer := config.ViewerSettings(nil)
	viewer.Band = panelview.Band{Upper: 0.7, Lower: 0.4, Hysteresis: 0.1}
	app := New(page, Options{Viewer: viewer, Storefront: config.Storefront{ItemsPerView: 1}})
	defer app.Stop()

	want := panelview.Band{Upper: 0.7, Lower: 0.3, Hysteresis: 0.1}
	if got := app.PanelBlocks()[0].Controller().Config().Band; got != want {
		t.Errorf("merged band = %+v, want %+v", got, want)
	}

	// A block band that only conflicts with these viewer settings falls back
	// to the viewer band.
	viewer.Band = panelview.Band{Upper: 0.25, Lower: 0.1}
	app2 := New(page, Options{Viewer: viewer, Storefront: config.Storefront{ItemsPerView: 1}})
	defer app2.Stop()
	if got := app2.PanelBlocks()[0].Controller().Config().Band; got != viewer.Band {
		t.Errorf("conflicting band = %+v, want viewer band %+v", got, viewer.Band)
	}
}

func TestStickyCardFollowsActivePanel(t *testing.T) {
	app, sched := newTestApp(t)
	ctrl := app.PanelBlocks()[0].Controller()

	ctrl.NavigateTo(0)
	sched.Settle(100)
	if text := screenText(app); !strings.Contains(text, "A bowl of flour") {
		t.Errorf("card missing for a panel with media:\n%s", text)
	}

	ctrl.NavigateTo(1)
	sched.Settle(100)
	if text := screenText(app); strings.Contains(text, "A bowl of flour") || strings.Contains(text, "example.com") {
		t.Errorf("card drawn for a panel without media:\n%s", text)
	}
}

func TestCouponSliderAndToast(t *testing.T) {
	app, sched := newTestApp(t)
	cb := app.CouponBlocks()[0]

	app.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	app.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if app.Focused() != cb {
		t.Fatal("two tabs should focus the coupon block")
	}

	app.HandleKey(key('l'))
	app.HandleKey(key('l'))
	if got := cb.Carousel().CurrentSlide(); got != 1 {
		t.Errorf("CurrentSlide = %d, want 1 (clamped)", got)
	}
	if got := cb.Carousel().Transform(); got != "translateX(-50%)" {
		t.Errorf("Transform = %q", got)
	}

	app.HandleKey(key(' '))
	if sel, ok := cb.Carousel().Selected(); !ok || sel != 1 {
		t.Errorf("Selected = (%d, %v), want (1, true)", sel, ok)
	}
	if got := cb.Carousel().CurrentSlide(); got != 1 {
		t.Errorf("selection moved the window to %d", got)
	}
	want := "Coupon FREESHIP applied: shipping"
	if got := app.Toast().Message(); got != want {
		t.Errorf("toast = %q, want %q", got, want)
	}
	if !strings.Contains(app.RenderText()[19], want) {
		t.Errorf("status line = %q, want the toast", app.RenderText()[19])
	}

	sched.Advance(2 * time.Second)
	if got := app.Toast().Message(); got != "" {
		t.Errorf("toast after timeout = %q, want empty", got)
	}

	app.HandleKey(key(' '))
	if _, ok := cb.Carousel().Selected(); ok {
		t.Error("second toggle should clear the selection")
	}
	if got := app.Toast().Message(); got != "Coupon FREESHIP removed" {
		t.Errorf("toast = %q", got)
	}
}

func TestEmptyBlock(t *testing.T) {
	app, _ := newTestApp(t)
	gallery := app.PanelBlocks()[2]
	if got := gallery.Controller().ActiveIndex(); got != -1 {
		t.Errorf("empty block active = %d, want -1", got)
	}
	gallery.HandleKey(key('j'))
	if got := gallery.Controller().ActiveIndex(); got != -1 {
		t.Errorf("j on empty block moved active to %d", got)
	}
	app.Pane().ScrollToBottom()
	if text := screenText(app); !strings.Contains(text, emptyPanelText) {
		t.Errorf("missing %q:\n%s", emptyPanelText, text)
	}
}

func TestStopTearsDownControllers(t *testing.T) {
	app, sched := newTestApp(t)
	app.HandleKey(key('j'))

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	app.HandleKey(key('q'))
	app.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}

	for i, pb := range app.PanelBlocks() {
		if !pb.Controller().TornDown() {
			t.Errorf("controller %d not torn down", i)
		}
	}
	if n := app.Pane().Source().Len(); n != 0 {
		t.Errorf("scroll listeners = %d, want 0", n)
	}
	if app.Pane().Animating() {
		t.Error("scroll animation survived Stop")
	}
	sched.Settle(100)
	sched.Advance(time.Minute)
}

func TestOpenUsesConfigStore(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	// Frames are never delivered; only construction is under test.
	p := texel.PosterFunc(func(func()) {})
	app, err := Open(filepath.Join("testdata", "page.yaml"), p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer app.Stop()
	if app.GetTitle() != "Lemon & Thyme Cake" {
		t.Errorf("GetTitle = %q", app.GetTitle())
	}
	if got := app.CouponBlocks()[0].Carousel().ItemsPerView(); got != 2 {
		t.Errorf("ItemsPerView = %d, want 2", got)
	}

	if _, err := Open(filepath.Join("testdata", "missing.yaml"), p); err == nil {
		t.Error("Open of a missing page should fail")
	}
}

func TestHelpOverlay(t *testing.T) {
	app, _ := newTestApp(t)
	ing := app.PanelBlocks()[0]

	app.HandleKey(key('?'))
	if !app.HelpVisible() {
		t.Fatal("? should open the key reference")
	}
	text := screenText(app)
	for _, want := range []string{"Keys", "Apply first visible offer", "Next or previous panel"} {
		if !strings.Contains(text, want) {
			t.Errorf("help missing %q:\n%s", want, text)
		}
	}

	// The closing key is swallowed.
	app.HandleKey(key('j'))
	if app.HelpVisible() {
		t.Error("any key should close the key reference")
	}
	if got := ing.Controller().ActiveIndex(); got != 2 {
		t.Errorf("active = %d after closing help, want 2", got)
	}
	if strings.Contains(screenText(app), "Apply first visible offer") {
		t.Error("help still drawn after closing")
	}
}

func TestReloadSettings(t *testing.T) {
	app, sched := newTestApp(t)
	app.HandleKey(key('r'))
	if got := app.Toast().Message(); got != "Settings reload unavailable" {
		t.Errorf("toast = %q without a reload source", got)
	}

	var reloadErr error
	viewer := config.ViewerSettings(nil)
	viewer.Band = panelview.Band{Upper: 0.5, Lower: 0.2}
	sf := config.Storefront{
		ItemsPerView:  3,
		ToastDuration: time.Second,
		Theme:         map[string]string{"header.bg": "navy"},
	}
	app.opts.Reload = func() (config.Viewer, config.Storefront, error) {
		return viewer, sf, reloadErr
	}

	app.HandleKey(key('r'))
	if got := app.Toast().Message(); got != "Settings reloaded" {
		t.Errorf("toast = %q, want Settings reloaded", got)
	}
	ing, method := app.PanelBlocks()[0], app.PanelBlocks()[1]
	if got := ing.Controller().Config().Band; got != viewer.Band {
		t.Errorf("ingredients band = %+v, want %+v", got, viewer.Band)
	}
	// The block's own fractions survive; hysteresis comes from the viewer.
	if got, want := method.Controller().Config().Band, (panelview.Band{Upper: 0.9, Lower: 0.1}); got != want {
		t.Errorf("method band = %+v, want %+v", got, want)
	}
	if got := app.CouponBlocks()[0].Carousel().ItemsPerView(); got != 3 {
		t.Errorf("ItemsPerView = %d, want 3", got)
	}
	if _, bg, _ := app.Render()[0][0].Style.Decompose(); bg != tcell.ColorNavy {
		t.Errorf("header bg = %v after reload, want navy", bg)
	}
	sched.Advance(time.Second)
	if got := app.Toast().Message(); got != "" {
		t.Errorf("toast = %q after the reloaded duration", got)
	}

	reloadErr = errors.New("boom")
	viewer.Band = panelview.Band{Upper: 0.8, Lower: 0.7}
	app.HandleKey(key('r'))
	if got := app.Toast().Message(); got != "Settings reload failed: boom" {
		t.Errorf("toast = %q", got)
	}
	if got := ing.Controller().Config().Band; got != (panelview.Band{Upper: 0.5, Lower: 0.2}) {
		t.Errorf("failed reload changed the band to %+v", got)
	}
}

func TestReloadSettingsFromConfigStore(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	p := texel.PosterFunc(func(func()) {})
	app, err := Open(filepath.Join("testdata", "page.yaml"), p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer app.Stop()
	app.Resize(60, 20)

	t.Cleanup(func() {
		config.App("storefront").Section("carousel")["items_per_view"] = 2
	})
	config.App("storefront").Section("carousel")["items_per_view"] = 3
	if err := config.SaveApp("storefront"); err != nil {
		t.Fatalf("SaveApp: %v", err)
	}
	app.HandleKey(key('r'))
	if got := app.Toast().Message(); got != "Settings reloaded" {
		t.Errorf("toast = %q", got)
	}
	if got := app.CouponBlocks()[0].Carousel().ItemsPerView(); got != 3 {
		t.Errorf("ItemsPerView = %d after reload, want 3", got)
	}
}

func TestStyleOverrides(t *testing.T) {
	def := DefaultStyles()
	got := def.WithOverrides(map[string]string{
		"header.bg": "navy",
		"toast.fg":  "#ff0000",
		"bogus.fg":  "red",
		"card.fg":   "notacolour",
		"title":     "red",
	})

	if _, bg, _ := got.Header.Decompose(); bg != tcell.ColorNavy {
		t.Errorf("header bg = %v, want navy", bg)
	}
	if fg, _, _ := got.Toast.Decompose(); fg != tcell.NewHexColor(0xff0000) {
		t.Errorf("toast fg = %v, want #ff0000", fg)
	}
	if got.Card != def.Card {
		t.Error("unknown colour should leave card unchanged")
	}
	if got.Title != def.Title {
		t.Error("key without attribute should be ignored")
	}
}
