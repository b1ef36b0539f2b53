package app

import (
	"fmt"
	"sync"

	"VideoVault/internal/session"
)

var _ session.Reporter = (*Reporter)(nil)

// Reporter holds the progress display of one page. It implements
// session.Reporter and calls updateFn after every change so the UI can
// redraw.
type Reporter struct {
	mu            sync.RWMutex
	status        string
	percent       int
	submitEnabled bool
	updateFn      func() // Called to trigger UI refresh
}

// NewReporter creates a new progress reporter.
func NewReporter(updateFn func()) *Reporter {
	return &Reporter{
		status:        session.IdleMessage,
		submitEnabled: true,
		updateFn:      updateFn,
	}
}

// SetStatus implements session.Reporter.
func (r *Reporter) SetStatus(text string) {
	r.mu.Lock()
	r.status = text
	r.mu.Unlock()
	r.update()
}

// SetProgress implements session.Reporter.
func (r *Reporter) SetProgress(percent int) {
	r.mu.Lock()
	r.percent = percent
	r.mu.Unlock()
	r.update()
}

// SetSubmitEnabled implements session.Reporter.
func (r *Reporter) SetSubmitEnabled(enabled bool) {
	r.mu.Lock()
	r.submitEnabled = enabled
	r.mu.Unlock()
	r.update()
}

func (r *Reporter) update() {
	if r.updateFn != nil {
		r.updateFn()
	}
}

// Status returns the current status line.
func (r *Reporter) Status() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Progress returns the current percentage and its "NN%" label.
func (r *Reporter) Progress() (int, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.percent, fmt.Sprintf("%d%%", r.percent)
}

// SubmitEnabled reports whether the submit control is enabled.
func (r *Reporter) SubmitEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.submitEnabled
}
