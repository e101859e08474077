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
	"os/signal"
	"syscall"

	"hdxpiano/internal/config"
	"hdxpiano/internal/ipc"
	"hdxpiano/internal/logger"
	"hdxpiano/internal/session"
)

const (
	version_major = 1
	version_minor = 0
	server_name   = "HDX-Piano-Server"
)

func main() {
	cfgPath := flag.String("config", config.Path(), "YAML config file")
	socket := flag.String("socket", "", "unix socket path (overrides config)")
	samples := flag.String("samples", "", "sample directory (overrides config)")
	keyMap := flag.String("keymap", "", "YAML key map")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("[FAIL] %v\n", err)
		os.Exit(1)
	}
	if *socket != "" {
		cfg.Socket = *socket
	}
	if *samples != "" {
		cfg.SampleDir = *samples
	}
	if *keyMap != "" {
		cfg.KeyMap = *keyMap
	}

	log, err := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Printf("[FAIL] %v\n", err)
		os.Exit(1)
	}
	log.Info().Msgf("%s V.%d.%d", server_name, version_major, version_minor)

	p, err := session.Open(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		os.Remove(cfg.Socket)
		log.Info().Msg("shutdown")
		os.Exit(0)
	}()

	srv := ipc.NewServer(p, logger.Component(log, "ipc"))
	if err := srv.ListenAndServe(cfg.Socket); err != nil {
		log.Fatal().Err(err).Str("socket", cfg.Socket).Msg("ipc")
	}
}
