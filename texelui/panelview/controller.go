package panelview

import (
	"math"
	"time"
)

// DefaultLockTimeout bounds how long a navigation lock may be held when the
// viewport never reports that its scroll settled.
const DefaultLockTimeout = time.Second

// Config is the per-controller configuration.
type Config struct {
	Band        Band
	LockTimeout time.Duration
}

// DefaultConfig returns the default band and lock timeout.
func DefaultConfig() Config {
	return Config{Band: DefaultBand(), LockTimeout: DefaultLockTimeout}
}

// Controller owns the active index of one panel list.
type Controller struct {
	cfg   Config
	vp    Viewport
	sched Scheduler

	panels []Panel
	reg    *Registry
	active int

	subs    []subscriber
	nextSub int

	framePending bool
	cancelFrame  func()

	locked      bool
	lockGen     int
	cancelTimer func()
	cancelMove  func()

	detach func()
	torn   bool
}

type subscriber struct {
	id int
	fn func(int)
}

// New creates a controller for panels. The viewport and scheduler are
// required; the panels' refs are mounted later, during layout.
func New(panels []Panel, cfg Config, vp Viewport, sched Scheduler) *Controller {
	c := &Controller{cfg: cfg.normalize(), vp: vp, sched: sched, reg: NewRegistry(0), active: -1}
	c.RegisterPanels(panels)
	return c
}

func (cfg Config) normalize() Config {
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = DefaultLockTimeout
	}
	cfg.Band = cfg.Band.Normalize()
	return cfg
}

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// SetConfig replaces the configuration. A lock already held keeps its
// timeout; the new band applies from the next classification. It is a
// no-op after Teardown.
func (c *Controller) SetConfig(cfg Config) {
	if c.torn {
		return
	}
	c.cfg = cfg.normalize()
}

// RegisterPanels replaces the panel list. Every mount is dropped and the
// active index resets to 0, or -1 for an empty list.
func (c *Controller) RegisterPanels(panels []Panel) {
	if c.torn {
		return
	}
	c.cancelPendingFrame()
	c.releaseLock()
	c.panels = append([]Panel(nil), panels...)
	c.reg.Reset(len(c.panels))
	next := -1
	if len(c.panels) > 0 {
		next = 0
	}
	c.setActive(next)
}

// Mount records the handle for panel i. Out-of-range indices are ignored.
func (c *Controller) Mount(i int, ref PanelRef) {
	if c.torn {
		return
	}
	c.reg.Mount(i, ref)
}

// Unmount forgets the handle for panel i.
func (c *Controller) Unmount(i int) {
	if c.torn {
		return
	}
	c.reg.Unmount(i)
}

// Activate attaches the controller to src. Teardown detaches it again.
func (c *Controller) Activate(src *ScrollSource) {
	if c.torn || c.detach != nil || src == nil {
		return
	}
	c.detach = src.Attach(c.OnScroll)
}

// OnScroll schedules a classification pass for the next frame. Bursts of
// calls before that frame share one pass. It does nothing while a navigation
// lock is held or after Teardown.
func (c *Controller) OnScroll() {
	if c.torn || c.locked || c.framePending {
		return
	}
	c.framePending = true
	c.cancelFrame = c.sched.RequestFrame(c.runFrame)
}

func (c *Controller) runFrame() {
	c.framePending = false
	c.cancelFrame = nil
	if c.torn || c.locked {
		return
	}
	c.classify()
}

// Sync classifies immediately instead of waiting for a frame. It is used
// after the first layout so the initial index reflects the page position.
func (c *Controller) Sync() {
	if c.torn || c.locked {
		return
	}
	c.cancelPendingFrame()
	c.classify()
}

func (c *Controller) classify() {
	geoms, ok := Sample(c.vp, c.reg)
	if !ok {
		return
	}
	c.setActive(c.cfg.Band.Classify(geoms, c.vp.Height(), c.active))
}

// NavigateTo makes panel index active and scrolls it into view. The index is
// clamped into range. The scroll parks the panel's top on the band's lower
// edge, so once settled the panel is the one the band classifies as active.
// A panel the page cannot scroll that far stops wherever the page ends. Scroll-driven updates are suppressed until the
// viewport reports the scroll settled or the lock timeout elapses.
func (c *Controller) NavigateTo(index int) {
	if c.torn || len(c.panels) == 0 {
		return
	}
	index = min(max(index, 0), len(c.panels)-1)
	c.releaseLock()
	c.setActive(index)

	ref, ok := c.reg.Ref(index)
	if !ok {
		return
	}
	top, _, ok := ref.Span()
	if !ok {
		return
	}
	c.locked = true
	c.lockGen++
	gen := c.lockGen
	c.cancelTimer = c.sched.AfterFunc(c.cfg.LockTimeout, func() {
		if gen == c.lockGen {
			c.cancelTimer = nil
		}
		c.unlock(gen)
	})
	cancel := c.vp.ScrollIntoView(top-c.anchorRow(), func() {
		if gen == c.lockGen {
			c.cancelMove = nil
		}
		c.unlock(gen)
	})
	if c.locked && gen == c.lockGen {
		c.cancelMove = cancel
	}
}

// anchorRow is the first viewport row at or below Lower*height. A panel whose
// top sits on it has top < Upper*height and bottom > Lower*height, and the
// panel above it ends at or before the row, outside the band.
func (c *Controller) anchorRow() int {
	return int(math.Floor(float64(c.vp.Height()) * c.cfg.Band.Lower))
}

func (c *Controller) unlock(gen int) {
	if gen != c.lockGen || !c.locked {
		return
	}
	c.locked = false
	if c.cancelTimer != nil {
		c.cancelTimer()
		c.cancelTimer = nil
	}
	// A scroll still in flight after a timeout keeps running and its scroll
	// events are classified normally. cancelMove stays set so Teardown or the
	// next NavigateTo can still abort it.
}

func (c *Controller) releaseLock() {
	c.lockGen++
	c.locked = false
	if c.cancelTimer != nil {
		c.cancelTimer()
		c.cancelTimer = nil
	}
	if c.cancelMove != nil {
		c.cancelMove()
		c.cancelMove = nil
	}
}

func (c *Controller) cancelPendingFrame() {
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
	c.framePending = false
}

func (c *Controller) setActive(i int) {
	if i == c.active {
		return
	}
	c.active = i
	subs := append([]subscriber(nil), c.subs...)
	for _, s := range subs {
		s.fn(i)
	}
}

// Subscribe registers fn for active-index changes. fn runs synchronously,
// once per distinct change, in subscription order.
func (c *Controller) Subscribe(fn func(active int)) (unsubscribe func()) {
	if c.torn || fn == nil {
		return func() {}
	}
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Teardown releases every resource the controller holds: the scroll
// listener, the pending frame, the lock timer and any scroll in flight.
// Later calls on the controller are no-ops.
func (c *Controller) Teardown() {
	if c.torn {
		return
	}
	c.torn = true
	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
	c.cancelPendingFrame()
	c.releaseLock()
	c.reg.Clear()
	c.subs = nil
}

// ActiveIndex is the focused panel, or -1 when there are no panels.
func (c *Controller) ActiveIndex() int { return c.active }

// ActivePanel returns the focused panel.
func (c *Controller) ActivePanel() (Panel, bool) {
	return c.Panel(c.active)
}

// Panel returns panel i.
func (c *Controller) Panel(i int) (Panel, bool) {
	if i < 0 || i >= len(c.panels) {
		return Panel{}, false
	}
	return c.panels[i], true
}

// PanelCount is the number of registered panels.
func (c *Controller) PanelCount() int { return len(c.panels) }

// Locked reports whether a navigation lock is held.
func (c *Controller) Locked() bool { return c.locked }

// TornDown reports whether Teardown has run.
func (c *Controller) TornDown() bool { return c.torn }

// Registry exposes the mount table, mainly for tests and diagnostics.
func (c *Controller) Registry() *Registry { return c.reg }
