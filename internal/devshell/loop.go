// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/loop.go
// Summary: Hands closures from timer goroutines to the runner's event loop.

package devshell

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

const loopBacklog = 1024

// Loop is a texel.Poster backed by the runner's event loop. Posted closures
// are queued and executed by Drain on the UI goroutine; the screen only gets
// an interrupt event to wake the loop up.
type Loop struct {
	calls chan func()
	done  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	screen tcell.Screen
}

// NewLoop returns a loop that is not yet attached to a screen. Closures
// posted before Attach run on the first Drain.
func NewLoop() *Loop {
	return &Loop{
		calls: make(chan func(), loopBacklog),
		done:  make(chan struct{}),
	}
}

// Post queues fn for the UI goroutine. Posts after Close are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.calls <- fn:
	case <-l.done:
		return
	}
	l.Wake()
}

// Wake interrupts the screen's event poll. A dropped interrupt is harmless:
// the queue is drained after every event.
func (l *Loop) Wake() {
	l.mu.Lock()
	s := l.screen
	l.mu.Unlock()
	if s != nil {
		_ = s.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// Attach directs wake-ups to s.
func (l *Loop) Attach(s tcell.Screen) {
	l.mu.Lock()
	l.screen = s
	l.mu.Unlock()
}

// Drain runs every queued closure and returns how many ran. It must only be
// called from the UI goroutine.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.calls:
			fn()
			n++
		default:
			return n
		}
	}
}

// Close stops accepting posts and detaches the screen.
func (l *Loop) Close() {
	l.once.Do(func() {
		close(l.done)
		l.Attach(nil)
	})
}
