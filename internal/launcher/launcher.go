// Package launcher starts the external engine process and collects its output
// in one of two ways: streamed line by line (Stream) for long encode/decode
// jobs, or accumulated until exit (RunBuffered) for assistant requests.
package launcher

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"VideoVault/internal/engine"
	"VideoVault/internal/errors"
	"VideoVault/internal/log"
)

// ErrorPrefix tags lines read from the engine's standard error.
const ErrorPrefix = "ERROR: "

const (
	defaultGrace      = 2 * time.Second
	defaultBufferSize = 64
	maxLineSize       = 1 << 20
)

// Options configures a Launcher.
type Options struct {
	Env        []string      // appended to the current environment
	Dir        string        // working directory; empty means current
	Grace      time.Duration // wait between SIGTERM and SIGKILL on terminate
	BufferSize int           // capacity of a streaming handle's event channel
}

// Launcher spawns engine processes.
type Launcher struct {
	env    []string
	dir    string
	grace  time.Duration
	buffer int
}

// New creates a Launcher.
func New(opts Options) *Launcher {
	l := &Launcher{
		env:    append([]string(nil), opts.Env...),
		dir:    opts.Dir,
		grace:  opts.Grace,
		buffer: opts.BufferSize,
	}
	if l.grace <= 0 {
		l.grace = defaultGrace
	}
	if l.buffer <= 0 {
		l.buffer = defaultBufferSize
	}
	return l
}

// process is a started engine with its output readers running.
type process struct {
	cmd     *exec.Cmd
	readers sync.WaitGroup
}

// spawn is the single launch primitive. onStdout and onStderr each own one
// pipe and must read it to EOF.
func (l *Launcher) spawn(inv engine.Invocation, onStdout, onStderr func(io.Reader)) (*process, error) {
	logger := log.With(log.String("executable", inv.Executable()), log.String("mode", inv.Mode().String()))

	cmd := exec.Command(inv.Executable(), inv.Args()...)
	cmd.Env = append(os.Environ(), l.env...)
	cmd.Dir = l.dir
	configureProcess(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.NewLaunchError(inv.Executable(), err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.NewLaunchError(inv.Executable(), err)
	}

	logger.Info("Starting engine", log.Strings("args", inv.Redacted()))
	if err := cmd.Start(); err != nil {
		logger.Error("Engine failed to start", log.Err(err))
		return nil, errors.NewLaunchError(inv.Executable(), err)
	}
	logger.Debug("Engine started", log.Int("pid", cmd.Process.Pid))

	p := &process{cmd: cmd}
	p.readers.Add(2)
	go func() {
		defer p.readers.Done()
		onStdout(stdout)
	}()
	go func() {
		defer p.readers.Done()
		onStderr(stderr)
	}()
	return p, nil
}

// wait drains both pipes, reaps the process and returns its exit code.
func (p *process) wait() int {
	p.readers.Wait()
	return exitCode(p.cmd.Wait())
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code != 0 {
			return code
		}
	}
	return -1
}

// RunBuffered runs an assistant request to completion. It resolves with the
// parsed stdout when the engine exits 0, and fails with an ExitError carrying
// the captured stderr otherwise. Cancelling ctx terminates the process.
func (l *Launcher) RunBuffered(ctx context.Context, inv engine.Invocation) (engine.Result, error) {
	var stdout, stderr bytes.Buffer
	p, err := l.spawn(inv, copyInto(&stdout), copyInto(&stderr))
	if err != nil {
		return engine.Result{}, err
	}

	stop := context.AfterFunc(ctx, func() {
		terminateProcess(p.cmd, 0)
	})
	code := p.wait()
	stop()

	logger := log.With(log.String("task", inv.Task().String()), log.Int("code", code))
	if err := ctx.Err(); err != nil {
		logger.Warn("Assistant request cancelled")
		return engine.Result{}, err
	}
	if code != 0 {
		logger.Warn("Assistant request failed", log.String("stderr", strings.TrimSpace(stderr.String())))
		return engine.Result{}, errors.NewExitError(code, stderr.String())
	}
	if stderr.Len() > 0 {
		logger.Debug("Assistant wrote to stderr", log.String("stderr", strings.TrimSpace(stderr.String())))
	}

	res := engine.ParseResult(stdout.String())
	for _, d := range res.Diagnostics {
		logger.Debug("Assistant diagnostic", log.String("line", d))
	}
	return res, nil
}

func copyInto(buf *bytes.Buffer) func(io.Reader) {
	return func(r io.Reader) {
		_, _ = io.Copy(buf, r)
	}
}
