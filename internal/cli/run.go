package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/oklog/run"

	"VideoVault/internal/app"
	"VideoVault/internal/errors"
	"VideoVault/internal/log"
	"VideoVault/internal/session"
	"VideoVault/internal/util"
)

var errInterrupted = stderrors.New("interrupted")

// fixedDialogs answers every prompt with the paths given on the command line.
type fixedDialogs struct {
	output string
}

func (d fixedDialogs) OpenFiles(_ app.OpenOptions, done func([]string)) { done(nil) }
func (d fixedDialogs) OpenFolder(_ string, done func(string))           { done(d.output) }
func (d fixedDialogs) SaveFile(_ app.SaveOptions, done func(string))    { done(d.output) }

// job is one engine run driven from the terminal.
type job struct {
	page   app.Page
	method string
	output string
	quiet  bool
	// prepare fills in the page selections after the method is chosen.
	prepare func(w *app.Workflow)
}

// jobResult is what a finished job left behind.
type jobResult struct {
	view        session.View
	fingerprint string
	elapsed     time.Duration
}

// newWorkflow wires a Workflow for terminal use.
func newWorkflow(rt runtime, dialogs app.Dialogs, rep session.Reporter) *app.Workflow {
	return app.NewWorkflow(app.Options{
		Builder:          rt.cfg.Builder(),
		Streamer:         rt.streamer,
		Runner:           rt.runner,
		Dialogs:          dialogs,
		EncodeReporter:   rep,
		DecodeReporter:   rep,
		TerminateOnReset: true,
	})
}

// runJob runs j until the engine exits or the process is signalled.
// A failed engine run is returned as an ExitError.
func runJob(ctx context.Context, rt runtime, j job, out io.Writer) (jobResult, error) {
	rep := NewReporter(out, j.quiet)
	w := newWorkflow(rt, fixedDialogs{output: j.output}, rep)

	var err error
	if j.page == app.PageDecode {
		err = w.SelectDecode(j.method)
	} else {
		err = w.SelectEncode(j.method)
	}
	if err != nil {
		return jobResult{}, err
	}
	if j.prepare != nil {
		j.prepare(w)
	}

	var res jobResult
	start := time.Now()
	mgr := w.Session(j.page)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()
		var stopped atomic.Bool
		g.Add(
			func() error {
				<-signalCtx.Done()
				if !stopped.Load() {
					log.Info("Signal received, stopping engine", log.String("page", j.page.String()))
				}
				return errInterrupted
			},
			func(_ error) {
				stopped.Store(true)
				signalCancel()
			},
		)
	}

	// Engine job.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		g.Add(
			func() error {
				var submitErr error
				w.Submit(ctx, func(err error) { submitErr = err })
				if submitErr != nil {
					res.view = mgr.View()
					return submitErr
				}
				if err := mgr.Wait(ctx); err != nil {
					return err
				}
				res.view = mgr.View()
				res.fingerprint = w.State().Fingerprint
				res.elapsed = time.Since(start)
				if res.view.State == session.Failed {
					return errors.NewExitError(res.view.ExitCode, "")
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	err = g.Run()
	rep.Finish()
	if stderrors.Is(err, context.Canceled) {
		err = errInterrupted
	}
	return res, err
}

// reportJob prints the outcome of runJob the way the terminal user expects.
func reportJob(out io.Writer, quiet bool, res jobResult, err error) error {
	rep := NewReporter(out, quiet)
	switch {
	case err == nil:
		rep.PrintSuccess("%s (%s)", session.CompletedMessage, util.Timeify(int(res.elapsed.Seconds())))
		if res.fingerprint != "" {
			rep.PrintSuccess("%s", res.fingerprint)
		}
	case stderrors.Is(err, errInterrupted):
		rep.PrintError("cancelled")
	case errors.ExitCode(err) > 0 || res.view.State == session.Failed:
		rep.PrintError("%s", res.view.Status)
	default:
		rep.PrintError("%v", err)
	}
	return err
}
