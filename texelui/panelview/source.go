package panelview

// ScrollSource fans scroll and resize notifications out to every attached
// controller. One source serves the whole page; each listener keeps its own
// state.
type ScrollSource struct {
	nextID    int
	listeners []sourceListener
}

type sourceListener struct {
	id int
	fn func()
}

// NewScrollSource returns an empty source.
func NewScrollSource() *ScrollSource {
	return &ScrollSource{}
}

// Attach registers fn and returns the func that removes it. Detaching twice
// is harmless.
func (s *ScrollSource) Attach(fn func()) (detach func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, sourceListener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every listener in attach order. Listeners may detach while
// being notified.
func (s *ScrollSource) Notify() {
	snapshot := append([]sourceListener(nil), s.listeners...)
	for _, l := range snapshot {
		l.fn()
	}
}

// Len is the number of attached listeners.
func (s *ScrollSource) Len() int { return len(s.listeners) }
