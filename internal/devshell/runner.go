// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Runs a single texel.App full-screen inside a local tcell screen.
// Usage: Used by cmd/texelstore and by tests through a simulation screen.

package devshell

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstore/apps/storefront"
	"github.com/framegrace/texelstore/texel"
)

// Builder constructs a texel.App, optionally using CLI args. Timers and
// animation frames of the app must be posted through p.
type Builder func(p texel.Poster, args []string) (texel.App, error)

var registry = map[string]Builder{
	"storefront": func(p texel.Poster, args []string) (texel.App, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("storefront: page file is required")
		}
		return storefront.Open(args[0], p)
	},
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run executes the provided builder inside a local tcell screen.
func Run(builder Builder, args []string) error {
	loop := NewLoop()
	defer loop.Close()

	app, err := builder(loop, args)
	if err != nil {
		return err
	}

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()
	loop.Attach(screen)

	width, height := screen.Size()
	app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	app.SetRefreshNotifier(refreshCh)

	draw := func() {
		screen.Clear()
		buffer := app.Render()
		for y := 0; y < len(buffer); y++ {
			row := buffer[y]
			for x := 0; x < len(row); x++ {
				cell := row[x]
				screen.SetContent(x, y, cell.Ch, nil, cell.Style)
			}
		}
		screen.Show()
	}

	loop.Drain()
	draw()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run()
		loop.Wake()
	}()
	defer app.Stop()

	stopRefresh := make(chan struct{})
	defer close(stopRefresh)
	go func() {
		for {
			select {
			case <-refreshCh:
				loop.Wake()
			case <-stopRefresh:
				return
			}
		}
	}()

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			// Screen finalized.
			return nil
		case *tcell.EventInterrupt:
		case *tcell.EventResize:
			w, h := tev.Size()
			app.Resize(w, h)
			screen.Sync()
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				return nil
			}
			app.HandleKey(tev)
		case *tcell.EventMouse:
			if mh, ok := app.(texel.MouseHandler); ok {
				mh.HandleMouse(tev)
			}
		}
		loop.Drain()
		draw()
	}
}

// RunApp finds a registered builder by name and runs it.
func RunApp(name string, args []string) error {
	buildApp, ok := registry[name]
	if !ok {
		return fmt.Errorf("unknown app %q", name)
	}
	return Run(buildApp, args)
}
