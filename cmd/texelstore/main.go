// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelstore/main.go
// Summary: Entry point for the terminal storefront viewer.
// Usage: texelstore -page page.yaml [-log file] [-dump]
//        texelstore -write-config

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/framegrace/texelstore/apps/storefront"
	"github.com/framegrace/texelstore/config"
	"github.com/framegrace/texelstore/content"
	"github.com/framegrace/texelstore/internal/devshell"
	"github.com/framegrace/texelstore/texelui/panelview"
)

const (
	defaultCols = 80
	defaultRows = 24
	settleLimit = 1000
)

func main() {
	pagePath := flag.String("page", "", "storefront page file (YAML)")
	logPath := flag.String("log", "", "write logs to this file")
	dumpMode := flag.Bool("dump", false, "render one frame as plain text and exit")
	cols := flag.Int("cols", 0, "dump width (default: terminal width or 80)")
	rows := flag.Int("rows", 0, "dump height (default: terminal height or 24)")
	writeCfg := flag.Bool("write-config", false, "write the config files with every default filled in and exit")
	flag.Parse()

	if *writeCfg {
		if err := writeConfigs(os.Stdout); err != nil {
			log.Fatalf("write config failed: %v", err)
		}
		return
	}

	if *pagePath == "" && flag.NArg() > 0 {
		*pagePath = flag.Arg(0)
	}
	if *pagePath == "" {
		log.Fatal("please specify -page")
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	closeLog, err := setupLogging(*logPath, interactive && !*dumpMode)
	if err != nil {
		log.Fatalf("log setup failed: %v", err)
	}
	defer closeLog()

	if *dumpMode || !interactive {
		w, h := dumpSize(*cols, *rows, interactive)
		if err := dump(os.Stdout, *pagePath, w, h); err != nil {
			log.Fatalf("dump failed: %v", err)
		}
		return
	}

	if err := devshell.RunApp("storefront", []string{*pagePath}); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

// setupLogging points the standard logger at path. Without a path, logs are
// discarded while the screen is owned by the UI.
func setupLogging(path string, quiet bool) (func(), error) {
	if path == "" {
		if quiet {
			log.SetOutput(io.Discard)
		}
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { _ = f.Close() }, nil
}

func dumpSize(cols, rows int, interactive bool) (int, int) {
	w, h := defaultCols, defaultRows
	if interactive {
		if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			w, h = tw, th
		}
	}
	if cols > 0 {
		w = cols
	}
	if rows > 0 {
		h = rows
	}
	return w, h
}

// writeConfigs re-reads the system and storefront configs and writes them
// back with the defaults they leave out. A file that does not parse is left
// alone and reported.
func writeConfigs(out io.Writer) error {
	if err := config.ReloadSystem(); err != nil {
		return fmt.Errorf("system config: %w", err)
	}
	if err := config.SaveSystem(); err != nil {
		return fmt.Errorf("save system config: %w", err)
	}
	if err := config.ReloadApp("storefront"); err != nil {
		return fmt.Errorf("storefront config: %w", err)
	}
	if err := config.SaveApp("storefront"); err != nil {
		return fmt.Errorf("save storefront config: %w", err)
	}
	_, err := fmt.Fprintln(out, "wrote system and storefront config")
	return err
}

// dump renders the page once, after every pending frame has run, and writes
// it to out as plain text.
func dump(out io.Writer, path string, cols, rows int) error {
	page, err := content.Load(path)
	if err != nil {
		return err
	}
	sched := panelview.NewManualScheduler()
	viewer := config.ViewerSettings(config.System())
	app := storefront.New(page, storefront.Options{
		Viewer:     viewer,
		Storefront: config.StorefrontSettings(config.App("storefront")),
		Scheduler:  sched,
	})
	defer app.Stop()

	app.Resize(cols, rows)
	sched.Settle(settleLimit)

	bw := bufio.NewWriter(out)
	for _, line := range app.RenderText() {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
