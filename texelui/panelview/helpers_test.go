package panelview

// fakeRef is a panel handle with a fixed span.
type fakeRef struct {
	top, bottom int
	mounted     bool
	reads       int
}

func (r *fakeRef) Span() (int, int, bool) {
	r.reads++
	return r.top, r.bottom, r.mounted
}

// fakeViewport records scroll requests instead of animating them.
type fakeViewport struct {
	height       int
	top, bottom  int
	laidOut      bool
	scrolls      []int
	pendingDone  func()
	cancelled    int
	settleInline bool
}

func newFakeViewport(height int) *fakeViewport {
	return &fakeViewport{height: height, top: 0, bottom: height, laidOut: true}
}

func (v *fakeViewport) Height() int { return v.height }

func (v *fakeViewport) ContainerSpan() (int, int, bool) {
	return v.top, v.bottom, v.laidOut
}

func (v *fakeViewport) ScrollIntoView(top int, done func()) func() {
	v.scrolls = append(v.scrolls, top)
	if v.settleInline {
		done()
		return func() {}
	}
	v.pendingDone = done
	return func() {
		v.cancelled++
		v.pendingDone = nil
	}
}

// settle reports the in-flight scroll as finished.
func (v *fakeViewport) settle() {
	if done := v.pendingDone; done != nil {
		v.pendingDone = nil
		done()
	}
}

func testPanels(n int) []Panel {
	panels := make([]Panel, n)
	for i := range panels {
		panels[i] = Panel{ID: string(rune('a' + i)), Title: "panel", Order: i}
	}
	return panels
}

// stackRefs mounts n refs of equal height stacked from top.
func stackRefs(c *Controller, n, top, height int) []*fakeRef {
	refs := make([]*fakeRef, n)
	for i := range refs {
		refs[i] = &fakeRef{top: top + i*height, bottom: top + (i+1)*height, mounted: true}
		c.Mount(i, refs[i])
	}
	return refs
}

// scrollRefs shifts every ref up by delta rows, as a page scroll would.
func scrollRefs(refs []*fakeRef, delta int) {
	for _, r := range refs {
		r.top -= delta
		r.bottom -= delta
	}
}
