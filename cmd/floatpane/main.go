// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/floatpane/main.go
// Summary: Terminal demo that drives popups over a text file.
// Usage: floatpane [-theme name] [-presets dir] [-log path] [file]

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/floatpane/config"
	"github.com/framegrace/floatpane/host/tcellhost"
	"github.com/framegrace/floatpane/popup"
	"github.com/framegrace/floatpane/theme"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("floatpane", flag.ContinueOnError)
	themeName := fs.String("theme", "", "Chroma style name (overrides theme.style)")
	presetDir := fs.String("presets", "", "Directory of popup presets (default: <config>/floatpane/presets)")
	logPath := fs.String("log", filepath.Join(os.TempDir(), "floatpane.log"), "Log file")
	listThemes := fs.Bool("list-themes", false, "Print available theme names and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *listThemes {
		fmt.Println(strings.Join(theme.Available(), "\n"))
		return nil
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Println("Floatpane: starting")

	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Floatpane: config: %v", err)
	}
	table := loadTheme(cfg, *themeName)

	name, lines, err := loadBase(fs.Arg(0))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	h := tcellhost.New(screen, tcellhost.Options{
		CmdlineHeight: cfg.GetInt("screen", "cmdline_height", 1),
		TabBar:        cfg.GetBool("screen", "tab_bar", false),
		Theme:         table,
	})
	defer h.Stop()
	h.SetBase(name, lines)

	m := popup.NewManager(h, nil)
	defer m.Close()
	if err := m.ScanPresets(*presetDir); err != nil {
		log.Printf("Floatpane: presets: %v", err)
	}

	d := newDemo(m, h)
	d.announce()
	err = h.Run(d.handle)
	log.Println("Floatpane: stopped")
	return err
}

// loadTheme resolves the configured Chroma style and optional YAML overrides.
func loadTheme(cfg config.Config, override string) *theme.Table {
	name := cfg.GetString("theme", "style", theme.DefaultStyle)
	if override != "" {
		name = override
	}
	file := cfg.GetString("theme", "file", "")
	if file == "" {
		return theme.FromChroma(name)
	}
	path, err := config.ResolvePath(file)
	if err == nil {
		var t *theme.Table
		if t, err = theme.LoadFile(path, name); err == nil {
			return t
		}
	}
	log.Printf("Floatpane: theme file %s: %v", file, err)
	return theme.FromChroma(name)
}

// loadBase reads the text drawn underneath the popups.
func loadBase(path string) (string, []string, error) {
	if path == "" {
		return "help.md", helpLines, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(data), "\t", "    ")
	return filepath.Base(path), strings.Split(strings.TrimRight(text, "\n"), "\n"), nil
}
