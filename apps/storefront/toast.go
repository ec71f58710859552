package storefront

import (
	"time"

	"github.com/framegrace/texelstore/texelui/panelview"
)

// Toast is a transient one-line message that clears itself after a fixed
// duration. The timer is delivered through the scheduler, so the message
// only changes on the UI goroutine.
type Toast struct {
	sched    panelview.Scheduler
	duration time.Duration
	msg      string
	cancel   func()
	onChange func()
}

// NewToast returns an empty toast. onChange may be nil.
func NewToast(sched panelview.Scheduler, d time.Duration, onChange func()) *Toast {
	return &Toast{sched: sched, duration: d, onChange: onChange}
}

// Show replaces the current message and restarts the timer.
func (t *Toast) Show(msg string) {
	t.Stop()
	t.msg = msg
	t.cancel = t.sched.AfterFunc(t.duration, func() {
		t.cancel = nil
		t.msg = ""
		t.changed()
	})
	t.changed()
}

// SetDuration changes how long later messages stay up. A message already
// shown keeps its timer.
func (t *Toast) SetDuration(d time.Duration) { t.duration = d }

// Message is the text currently shown, or "".
func (t *Toast) Message() string { return t.msg }

// Stop cancels the pending clear. The message stays until the next Show.
func (t *Toast) Stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Toast) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}
