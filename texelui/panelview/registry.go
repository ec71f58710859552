package panelview

// PanelRef is a mounted panel handle. Span reports the panel's top and
// bottom rows relative to the viewport; ok is false while the panel has no
// layout.
type PanelRef interface {
	Span() (top, bottom int, ok bool)
}

// Registry holds panel handles keyed by panel index. Slots are filled during
// layout and cleared on teardown.
type Registry struct {
	refs []PanelRef
}

// NewRegistry returns a registry with n empty slots.
func NewRegistry(n int) *Registry {
	r := &Registry{}
	r.Reset(n)
	return r
}

// Reset drops every handle and resizes the registry to n slots.
func (r *Registry) Reset(n int) {
	if n < 0 {
		n = 0
	}
	r.refs = make([]PanelRef, n)
}

// Clear drops every handle and all slots.
func (r *Registry) Clear() {
	r.refs = nil
}

// Len is the number of slots.
func (r *Registry) Len() int { return len(r.refs) }

// Mount stores ref in slot i. It reports false when i is out of range.
// Mounting nil empties the slot.
func (r *Registry) Mount(i int, ref PanelRef) bool {
	if i < 0 || i >= len(r.refs) {
		return false
	}
	r.refs[i] = ref
	return true
}

// Unmount empties slot i.
func (r *Registry) Unmount(i int) {
	if i >= 0 && i < len(r.refs) {
		r.refs[i] = nil
	}
}

// Ref returns the handle in slot i.
func (r *Registry) Ref(i int) (PanelRef, bool) {
	if i < 0 || i >= len(r.refs) || r.refs[i] == nil {
		return nil, false
	}
	return r.refs[i], true
}

// Mounted counts filled slots.
func (r *Registry) Mounted() int {
	n := 0
	for _, ref := range r.refs {
		if ref != nil {
			n++
		}
	}
	return n
}

// Each calls fn for every mounted handle in index order.
func (r *Registry) Each(fn func(i int, ref PanelRef)) {
	for i, ref := range r.refs {
		if ref != nil {
			fn(i, ref)
		}
	}
}
