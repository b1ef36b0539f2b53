package launcher

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"VideoVault/internal/engine"
	"VideoVault/internal/log"
)

// EventKind distinguishes output lines from the terminal exit event.
type EventKind int

const (
	EventLine EventKind = iota
	EventExit
)

// Source identifies which pipe a line came from.
type Source int

const (
	Stdout Source = iota
	Stderr
)

// Event is delivered on a Handle's channel. Exactly one EventExit is sent,
// after every line from both pipes.
type Event struct {
	Kind   EventKind
	Source Source
	Text   string // line text; stderr lines carry ErrorPrefix
	Code   int    // exit code, EventExit only
}

// Handle is a running streaming engine process.
type Handle struct {
	events chan Event
	done   chan struct{}
	exited chan struct{}
	detach sync.Once

	proc  *process
	grace time.Duration
}

// Stream starts inv and delivers its output as events. Start failures are
// returned as a LaunchError and no Handle is created. Cancelling ctx
// terminates the process.
func (l *Launcher) Stream(ctx context.Context, inv engine.Invocation) (*Handle, error) {
	h := &Handle{
		events: make(chan Event, l.buffer),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		grace:  l.grace,
	}

	p, err := l.spawn(inv, h.scan(Stdout), h.scan(Stderr))
	if err != nil {
		return nil, err
	}
	h.proc = p

	go func() {
		code := p.wait()
		log.Info("Engine exited", log.Int("code", code), log.String("mode", inv.Mode().String()))
		h.send(Event{Kind: EventExit, Code: code})
		close(h.events)
		close(h.exited)
	}()
	go func() {
		select {
		case <-ctx.Done():
			h.Terminate()
		case <-h.exited:
		}
	}()
	return h, nil
}

func (h *Handle) scan(src Source) func(io.Reader) {
	return func(r io.Reader) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for sc.Scan() {
			text := sc.Text()
			if src == Stderr {
				text = ErrorPrefix + text
			}
			h.send(Event{Kind: EventLine, Source: src, Text: text})
		}
		if err := sc.Err(); err != nil {
			log.Warn("Engine output unreadable", log.Err(err))
			h.send(Event{Kind: EventLine, Source: Stderr, Text: ErrorPrefix + err.Error()})
		}
		// keep the child from blocking on a full pipe
		_, _ = io.Copy(io.Discard, r)
	}
}

// send delivers ev unless the handle has been detached.
func (h *Handle) send(ev Event) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.events <- ev:
		return true
	case <-h.done:
		return false
	}
}

// Events returns the event channel. It is closed after the exit event, or
// once the process has been reaped following Detach.
func (h *Handle) Events() <-chan Event {
	return h.events
}

// Detach stops event delivery. The process keeps running and is reaped in
// the background.
func (h *Handle) Detach() {
	h.detach.Do(func() { close(h.done) })
}

// Terminate detaches and kills the process group. It does not block.
func (h *Handle) Terminate() {
	h.Detach()
	select {
	case <-h.exited:
		return
	default:
	}
	log.Info("Terminating engine", log.Int("pid", h.PID()))
	go terminateProcess(h.proc.cmd, h.grace)
}

// Exited is closed once the process has been reaped.
func (h *Handle) Exited() <-chan struct{} {
	return h.exited
}

// PID returns the engine's process ID.
func (h *Handle) PID() int {
	return h.proc.cmd.Process.Pid
}
