package panelview

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/framegrace/texelstore/texel"
)

// DefaultFrameInterval is the frame period used when none is configured.
const DefaultFrameInterval = 16 * time.Millisecond

// Scheduler delivers deferred callbacks on the UI goroutine. Every returned
// cancel func is safe to call more than once.
type Scheduler interface {
	// RequestFrame runs fn on the next animation frame.
	RequestFrame(fn func()) (cancel func())
	// AfterFunc runs fn once d has elapsed.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// LoopScheduler runs timers on their own goroutines and hands the callbacks
// to a Poster, so they execute on the event loop.
type LoopScheduler struct {
	poster texel.Poster
	frame  time.Duration
}

// NewLoopScheduler returns a scheduler that posts to p. A non-positive frame
// interval selects DefaultFrameInterval.
func NewLoopScheduler(p texel.Poster, frame time.Duration) *LoopScheduler {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &LoopScheduler{poster: p, frame: frame}
}

// FrameInterval returns the configured frame period.
func (s *LoopScheduler) FrameInterval() time.Duration { return s.frame }

// RequestFrame implements Scheduler.
func (s *LoopScheduler) RequestFrame(fn func()) func() {
	return s.AfterFunc(s.frame, fn)
}

// AfterFunc implements Scheduler.
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) func() {
	var cancelled atomic.Bool
	t := time.AfterFunc(d, func() {
		s.poster.Post(func() {
			if cancelled.Load() {
				return
			}
			fn()
		})
	})
	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}

// ManualScheduler is a Scheduler driven by explicit Frame and Advance calls.
// Headless rendering and tests use it to step animations deterministically.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	frames []*manualTask
	timers []*manualTask
}

type manualTask struct {
	seq       int
	due       time.Duration
	fn        func()
	cancelled bool
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Now is the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// RequestFrame implements Scheduler.
func (s *ManualScheduler) RequestFrame(fn func()) func() {
	t := s.task(0, fn)
	s.frames = append(s.frames, t)
	return func() { t.cancelled = true }
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := s.task(s.now+max(d, 0), fn)
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

func (s *ManualScheduler) task(due time.Duration, fn func()) *manualTask {
	s.seq++
	return &manualTask{seq: s.seq, due: due, fn: fn}
}

// Frame runs the frame callbacks that were pending when it was called.
// Callbacks requested while it runs wait for the next Frame. It returns the
// number of callbacks run.
func (s *ManualScheduler) Frame() int {
	batch := s.frames
	s.frames = nil
	ran := 0
	for _, t := range batch {
		if t.cancelled {
			continue
		}
		t.cancelled = true
		t.fn()
		ran++
	}
	return ran
}

// Settle runs frames until none are pending or limit frames have run. It
// returns the number of frames run.
func (s *ManualScheduler) Settle(limit int) int {
	n := 0
	for n < limit && s.PendingFrames() > 0 {
		s.Frame()
		n++
	}
	return n
}

// Advance moves virtual time forward by d and fires due timers in deadline
// order.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + max(d, 0)
	for {
		next := s.nextTimer(target)
		if next == nil {
			break
		}
		s.now = next.due
		next.cancelled = true
		next.fn()
	}
	s.now = target
}

func (s *ManualScheduler) nextTimer(limit time.Duration) *manualTask {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due != s.timers[j].due {
			return s.timers[i].due < s.timers[j].due
		}
		return s.timers[i].seq < s.timers[j].seq
	})
	if len(s.timers) == 0 || s.timers[0].due > limit {
		return nil
	}
	return s.timers[0]
}

// PendingFrames counts frame callbacks that have not run or been cancelled.
func (s *ManualScheduler) PendingFrames() int {
	return countLive(s.frames)
}

// PendingTimers counts timers that have not fired or been cancelled.
func (s *ManualScheduler) PendingTimers() int {
	return countLive(s.timers)
}

func countLive(tasks []*manualTask) int {
	n := 0
	for _, t := range tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}
