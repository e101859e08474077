/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"hdxpiano/internal/config"
	"hdxpiano/internal/logger"
	"hdxpiano/internal/session"
	"hdxpiano/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const (
	version_major      = 1
	version_minor      = 0
	developer_title    = "Developer Hardiyanto"
	developer_subtitle = "Build 27/12/2025 Ebiet Version"
	app_name           = "HDX-Piano"
	log_file           = "hdx-piano.log"
)

func main() {
	cfgPath := flag.String("config", config.Path(), "YAML config file")
	samples := flag.String("samples", "", "sample directory (overrides config)")
	ext := flag.String("ext", "", "sample extension, .mp3 or .wav")
	keyMap := flag.String("keymap", "", "YAML key map (default: built-in C4..F5)")
	logPath := flag.String("log", "", "log file, the terminal belongs to the keyboard")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("[FAIL] %v\n", err)
		os.Exit(1)
	}
	if *samples != "" {
		cfg.SampleDir = *samples
	}
	if *ext != "" {
		cfg.SampleExt = *ext
	}
	if *keyMap != "" {
		cfg.KeyMap = *keyMap
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("[FAIL] %v\n", err)
		os.Exit(1)
	}

	lp := *logPath
	if lp == "" {
		lp = cfg.LogFile
	}
	if lp == "" {
		lp = filepath.Join(os.TempDir(), log_file)
	}
	log, closer, err := logger.OpenFile(lp, cfg.LogLevel)
	if err != nil {
		fmt.Printf("[FAIL] log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Println("[FAIL] stdin is not a terminal")
		os.Exit(1)
	}

	p, err := session.Open(cfg, log)
	if err != nil {
		fmt.Printf("[FAIL] %v\n", err)
		os.Exit(1)
	}

	log.Info().Str("log", lp).Msgf("%s V.%d.%d session start", app_name, version_major, version_minor)
	prog := tea.NewProgram(tui.New(p), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		log.Error().Err(err).Msg("terminal ui")
		fmt.Printf("[FAIL] %v\n", err)
	}
	p.Close()
	log.Info().Msg("session end")
	fmt.Printf("%s %s\n", developer_title, developer_subtitle)
}
