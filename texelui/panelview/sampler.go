package panelview

// Viewport is the scrolling surface a controller's panels live in.
type Viewport interface {
	// Height is the visible height in rows.
	Height() int
	// ContainerSpan reports the container's top and bottom relative to the
	// viewport top; ok is false when the container is not laid out.
	ContainerSpan() (top, bottom int, ok bool)
	// ScrollIntoView starts a smooth scroll that brings the content
	// currently at viewport row top to the top of the viewport. top may be
	// negative to scroll up; the viewport clamps to its scroll range. done is called once
	// the scroll settles or is interrupted. The returned func aborts the
	// scroll without calling done.
	ScrollIntoView(top int, done func()) (cancel func())
}

// Sample measures every mounted panel that is visible in vp. It reports false
// without reading any panel when the container does not intersect the
// viewport. Unmounted panels are skipped.
func Sample(vp Viewport, reg *Registry) ([]PanelGeometry, bool) {
	if vp == nil || reg == nil {
		return nil, false
	}
	height := vp.Height()
	if height <= 0 {
		return nil, false
	}
	top, bottom, ok := vp.ContainerSpan()
	if !ok || bottom <= 0 || top >= height {
		return nil, false
	}
	geoms := make([]PanelGeometry, 0, reg.Len())
	reg.Each(func(i int, ref PanelRef) {
		t, b, ok := ref.Span()
		if !ok || b <= 0 || t >= height {
			return
		}
		geoms = append(geoms, PanelGeometry{Index: i, Top: t, Bottom: b})
	})
	return geoms, true
}
