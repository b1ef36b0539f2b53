// Package session owns the lifecycle of a streaming engine job on one
// workflow page: Idle, Running, then Completed or Failed, and back to Idle
// on reset. At most one job is active per Manager.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"VideoVault/internal/engine"
	"VideoVault/internal/errors"
	"VideoVault/internal/launcher"
	"VideoVault/internal/log"
)

// Status texts shown by the progress display.
const (
	IdleMessage      = "Waiting to start..."
	CompletedMessage = "Process completed successfully!"
	FailureNotice    = " An error occurred. Check console for details."
)

// State is the phase of a job session.
type State int

const (
	Idle State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reporter is the display a Manager drives. Calls are made while the Manager
// holds its lock, so implementations must not call back into the Manager.
type Reporter interface {
	SetStatus(text string)
	SetProgress(percent int)
	SetSubmitEnabled(enabled bool)
}

// Stream is a running streaming job.
type Stream interface {
	Events() <-chan launcher.Event
	Detach()
	Terminate()
}

// Streamer starts streaming jobs.
type Streamer interface {
	Stream(ctx context.Context, inv engine.Invocation) (Stream, error)
}

type launcherStreamer struct {
	l *launcher.Launcher
}

// FromLauncher adapts a Launcher to the Streamer interface.
func FromLauncher(l *launcher.Launcher) Streamer {
	return launcherStreamer{l: l}
}

func (s launcherStreamer) Stream(ctx context.Context, inv engine.Invocation) (Stream, error) {
	h, err := s.l.Stream(ctx, inv)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// View is a read-only snapshot of the current session.
type View struct {
	ID         string
	State      State
	Percent    int // clamped to 0-100
	Status     string
	ExitCode   int
	Invocation engine.Invocation
	StartedAt  time.Time
}

// Options configures a Manager.
type Options struct {
	Name             string // page name used in logs
	StartMessage     string
	TerminateOnReset bool
	OnFinish         func(View) // called once per job that reaches Completed or Failed
}

// Manager runs at most one streaming job at a time.
type Manager struct {
	mu       sync.Mutex
	streamer Streamer
	reporter Reporter
	opts     Options

	gen    uint64
	view   View
	stream Stream
	done   chan struct{}
}

// NewManager creates an idle Manager.
func NewManager(streamer Streamer, reporter Reporter, opts Options) *Manager {
	m := &Manager{
		streamer: streamer,
		reporter: reporter,
		opts:     opts,
		view:     View{State: Idle, Status: IdleMessage},
	}
	return m
}

// View returns a snapshot of the current session.
func (m *Manager) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// Submit starts inv as a new job. It fails fast with ErrSessionActive while a
// job is Running. A job that cannot be launched moves straight to Failed and
// the LaunchError is returned.
func (m *Manager) Submit(ctx context.Context, inv engine.Invocation) error {
	m.mu.Lock()
	if m.view.State == Running {
		m.mu.Unlock()
		return errors.ErrSessionActive
	}
	m.gen++
	gen := m.gen
	m.closeDoneLocked()
	done := make(chan struct{})
	m.done = done
	m.view = View{
		ID:         uuid.NewString(),
		State:      Running,
		Status:     m.opts.StartMessage,
		Invocation: inv,
		StartedAt:  time.Now(),
	}
	id := m.view.ID
	m.reporter.SetSubmitEnabled(false)
	m.reporter.SetProgress(0)
	m.reporter.SetStatus(m.opts.StartMessage)
	m.mu.Unlock()

	logger := log.With(log.String("page", m.opts.Name), log.String("session", id))
	logger.Info("Session started", log.String("invocation", inv.String()))

	stream, err := m.streamer.Stream(ctx, inv)

	m.mu.Lock()
	if gen != m.gen {
		// reset while the process was starting
		m.mu.Unlock()
		if stream != nil {
			m.release(stream)
		}
		logger.Debug("Session superseded during launch")
		return nil
	}
	if err != nil {
		m.finishLocked(-1, "ERROR: "+err.Error())
		view := m.view
		m.mu.Unlock()
		logger.Error("Session failed to launch", log.Err(err))
		m.notifyFinish(view)
		m.closeDone(done)
		return err
	}
	m.stream = stream
	m.mu.Unlock()

	go m.consume(gen, done, stream, logger)
	return nil
}

func (m *Manager) consume(gen uint64, done chan struct{}, stream Stream, logger log.Logger) {
	dropped := 0
	for ev := range stream.Events() {
		view, finished, ok := m.apply(gen, ev)
		if !ok {
			dropped++
			continue
		}
		if finished {
			logger.Info("Session finished",
				log.String("state", view.State.String()),
				log.Int("code", view.ExitCode),
				log.Duration("elapsed", time.Since(view.StartedAt)))
			m.notifyFinish(view)
			m.closeDone(done)
		}
	}
	if dropped > 0 {
		logger.Debug("Dropped events from superseded session", log.Int("count", dropped))
	}
}

// apply folds one event into the session. ok is false for events from a
// superseded generation.
func (m *Manager) apply(gen uint64, ev launcher.Event) (view View, finished, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen || m.view.State != Running {
		return View{}, false, false
	}

	switch ev.Kind {
	case launcher.EventLine:
		switch line := engine.ParseLine(ev.Text).(type) {
		case engine.ProgressEvent:
			m.view.Percent = engine.ClampPercent(line.Percent)
			m.view.Status = line.Message
			m.reporter.SetProgress(m.view.Percent)
			m.reporter.SetStatus(line.Message)
		case engine.RawStatus:
			m.view.Status = string(line)
			m.reporter.SetStatus(string(line))
		}
		return m.view, false, true
	case launcher.EventExit:
		m.stream = nil
		m.finishLocked(ev.Code, m.view.Status)
		return m.view, true, true
	}
	return m.view, false, true
}

// finishLocked moves the session to its terminal state. status is the last
// displayed line, which receives the failure notice on a non-zero code.
func (m *Manager) finishLocked(code int, status string) {
	m.view.ExitCode = code
	if code == 0 {
		m.view.State = Completed
		m.view.Percent = 100
		m.view.Status = CompletedMessage
		m.reporter.SetProgress(100)
	} else {
		m.view.State = Failed
		m.view.Status = status + FailureNotice
	}
	m.reporter.SetStatus(m.view.Status)
	m.reporter.SetSubmitEnabled(true)
}

// closeDone releases waiters of the job that owns done, unless a reset
// already did.
func (m *Manager) closeDone(done chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done == done {
		m.closeDoneLocked()
	}
}

func (m *Manager) closeDoneLocked() {
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
}

func (m *Manager) notifyFinish(view View) {
	if m.opts.OnFinish != nil {
		m.opts.OnFinish(view)
	}
}

func (m *Manager) release(stream Stream) {
	if m.opts.TerminateOnReset {
		stream.Terminate()
	} else {
		stream.Detach()
	}
}

// Reset returns the session to Idle from any state. A running job is
// terminated or detached depending on Options.TerminateOnReset; its later
// events are dropped. Reset is idempotent.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	if m.stream != nil {
		log.Info("Releasing running job on reset",
			log.String("page", m.opts.Name),
			log.String("session", m.view.ID),
			log.Bool("terminate", m.opts.TerminateOnReset))
		m.release(m.stream)
		m.stream = nil
	}
	m.closeDoneLocked()
	m.view = View{State: Idle, Status: IdleMessage}
	m.reporter.SetProgress(0)
	m.reporter.SetStatus(IdleMessage)
	m.reporter.SetSubmitEnabled(true)
}

// Notice shows a neutral message without changing the session state. It is
// ignored while a job is Running.
func (m *Manager) Notice(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.view.State == Running {
		return
	}
	m.view.Status = text
	m.reporter.SetStatus(text)
}

// Wait blocks until the current job leaves Running or ctx is done.
func (m *Manager) Wait(ctx context.Context) error {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
