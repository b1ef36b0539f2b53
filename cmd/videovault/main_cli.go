//go:build cli

package main

import (
	"fmt"
	"os"

	"VideoVault/internal/cli"
)

// run is the CLI-only entry point.
// This build excludes all GUI dependencies (Fyne, OpenGL, etc.) and can run
// on headless systems without graphics hardware.
func run() {
	if !cli.Execute(version) {
		fmt.Fprintf(os.Stderr, "VideoVault %s (CLI-only build)\n", version)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: videovault <command> [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  encode            Hide files inside a video")
		fmt.Fprintln(os.Stderr, "  decode            Extract hidden files from a video")
		fmt.Fprintln(os.Stderr, "  suggest-password  Suggest a strong password")
		fmt.Fprintln(os.Stderr, "  peek              Ask the assistant what a video contains")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run 'videovault <command> --help' for more information.")
		os.Exit(0)
	}
}
