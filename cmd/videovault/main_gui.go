//go:build !cli

package main

import (
	"fmt"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"VideoVault/internal/cli"
	"VideoVault/internal/config"
	"VideoVault/internal/log"
	"VideoVault/internal/ui"
)

// run is the GUI+CLI entry point.
// It first checks for CLI subcommands, and if none are found, launches the GUI.
func run() {
	if cli.Execute(version) {
		return
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Log.File != "" {
		if err := log.EnableFileLogging(cfg.Log.File, cfg.LogLevel()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		}
	}

	a := ui.NewApp(fyneapp.NewWithID("io.github.videovault"), ui.Options{
		Version: version,
		Config:  cfg,
	})
	a.Run()
}
