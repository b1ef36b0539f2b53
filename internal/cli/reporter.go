// Package cli provides the command-line interface for VideoVault.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const barWidth = 30

// Reporter implements session.Reporter for terminal output.
// It redraws a single progress line on every update.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	status   string
	percent  int
	quiet    bool
	lastLine int // Length of last printed line (for clearing)
}

// NewReporter creates a terminal reporter writing to out.
// If quiet is true, only errors are printed.
func NewReporter(out io.Writer, quiet bool) *Reporter {
	return &Reporter{out: out, quiet: quiet}
}

// SetStatus updates the status message and redraws.
func (r *Reporter) SetStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = text
	r.drawLocked()
}

// SetProgress updates the bar and redraws.
func (r *Reporter) SetProgress(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.percent = percent
	r.drawLocked()
}

// SetSubmitEnabled is a no-op; a terminal job is submitted once.
func (r *Reporter) SetSubmitEnabled(bool) {}

// Status returns the last status line.
func (r *Reporter) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Reporter) drawLocked() {
	if r.quiet {
		return
	}

	filled := min(r.percent*barWidth/100, barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	// Format: [████████░░░░░░░░░░░░░░░░░░░░░░] 25% | Embedding frame 120/480
	line := fmt.Sprintf("\r[%s] %3d%% | %s", bar, r.percent, r.status)

	// Clear previous line if it was longer
	if len(line) < r.lastLine {
		line += strings.Repeat(" ", r.lastLine-len(line))
	}
	r.lastLine = len(line)

	fmt.Fprint(r.out, line)
}

// Finish prints a newline to move past the progress line.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.quiet && r.lastLine > 0 {
		fmt.Fprintln(r.out)
		r.lastLine = 0
	}
}

// PrintError prints an error message.
func (r *Reporter) PrintError(format string, args ...any) {
	r.Finish()
	fmt.Fprintf(r.out, "Error: "+format+"\n", args...)
}

// PrintSuccess prints a success message.
func (r *Reporter) PrintSuccess(format string, args ...any) {
	if r.quiet {
		return
	}
	r.Finish()
	fmt.Fprintf(r.out, format+"\n", args...)
}
