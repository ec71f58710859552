// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/app.go
// Summary: App contract shared by the storefront app and the local runner.

package texel

import "github.com/gdamore/tcell/v2"

// Cell is one rendered terminal cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// App is a full-screen program hosted by the runner. Render is called on the
// UI goroutine after every handled event.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	GetTitle() string
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(refreshChan chan<- bool)
}

// MouseHandler is implemented by apps that consume mouse events.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}

// Poster runs closures on the UI goroutine. Timers and frame tickers use it so
// that widget state is only ever touched from the event loop.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a function to the Poster interface.
type PosterFunc func(fn func())

// Post calls f(fn).
func (f PosterFunc) Post(fn func()) { f(fn) }
