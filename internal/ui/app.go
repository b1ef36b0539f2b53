// Package ui is the VideoVault desktop window, built on fyne.
//
// The window shows one of three pages: Home lists the embedding methods, and
// the encode and decode pages collect a job's inputs and show its progress.
// All behavior lives in app.Workflow; this package renders its State through
// fyne data bindings and forwards button presses to it. Workflow callbacks
// arrive from worker goroutines and are marshalled onto the fyne thread with
// fyne.Do.
package ui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"

	"VideoVault/internal/app"
	"VideoVault/internal/config"
	"VideoVault/internal/errors"
	"VideoVault/internal/launcher"
	"VideoVault/internal/log"
	"VideoVault/internal/session"
)

// Options wires an App. Streamer and Runner default to a launcher built from
// Config; Dialogs defaults to fyne's pickers.
type Options struct {
	Version  string
	Config   config.Config
	Streamer session.Streamer
	Runner   app.BufferedRunner
	Dialogs  app.Dialogs
}

// App is the main window.
type App struct {
	Window  fyne.Window
	Version string

	ctx    context.Context
	cancel context.CancelFunc

	workflow *app.Workflow
	state    *app.BoundState

	encode jobView
	decode jobView

	pages map[app.Page]fyne.CanvasObject
	page  app.Page

	encodePassword *PasswordEntry
	decodePassword *PasswordEntry
	strength       *PasswordStrengthIndicator
}

// jobView is the progress display of one job page.
type jobView struct {
	reporter *app.Reporter
	bound    *app.BoundProgress
	status   *ColoredLabel
}

// NewApp creates the window on fa without showing it.
func NewApp(fa fyne.App, opts Options) *App {
	fa.Settings().SetTheme(NewCompactTheme())

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		Window:  fa.NewWindow("VideoVault " + strings.TrimPrefix(opts.Version, "v")),
		Version: opts.Version,
		ctx:     ctx,
		cancel:  cancel,
		state:   app.NewBoundState(),
		page:    -1,
	}
	a.encode = a.newJobView()
	a.decode = a.newJobView()

	if opts.Streamer == nil || opts.Runner == nil {
		l := launcher.New(opts.Config.LauncherOptions())
		if opts.Streamer == nil {
			opts.Streamer = session.FromLauncher(l)
		}
		if opts.Runner == nil {
			opts.Runner = l
		}
	}
	if opts.Dialogs == nil {
		opts.Dialogs = &fyneDialogs{win: a.Window}
	}

	a.workflow = app.NewWorkflow(app.Options{
		Builder:          opts.Config.Builder(),
		Streamer:         opts.Streamer,
		Runner:           opts.Runner,
		Dialogs:          opts.Dialogs,
		EncodeReporter:   a.encode.reporter,
		DecodeReporter:   a.decode.reporter,
		TerminateOnReset: opts.Config.Session.TerminateOnReset,
		OnChange:         func(st app.State) { fyne.Do(func() { a.render(st) }) },
		OnFinish:         a.onFinish,
	})

	a.pages = map[app.Page]fyne.CanvasObject{
		app.PageHome:   a.buildHome(),
		app.PageEncode: a.buildEncode(),
		app.PageDecode: a.buildDecode(),
	}
	a.Window.SetContent(container.NewStack(a.pages[app.PageHome], a.pages[app.PageEncode], a.pages[app.PageDecode]))
	a.Window.Resize(fyne.NewSize(460, 620))
	a.Window.SetCloseIntercept(a.onClose)
	a.render(a.workflow.State())
	return a
}

func (a *App) newJobView() jobView {
	v := jobView{
		bound:  app.NewBoundProgress(),
		status: NewColoredLabel(session.IdleMessage, theme.Color(theme.ColorNameForeground)),
	}
	var r *app.Reporter
	r = app.NewReporter(func() {
		fyne.Do(func() { v.bound.SyncFromReporter(r) })
	})
	v.reporter = r
	v.bound.Status.AddListener(statusListener(v.bound, v.status))
	return v
}

// Workflow exposes the state machine behind the window.
func (a *App) Workflow() *app.Workflow {
	return a.workflow
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.Window.ShowAndRun()
}

// render copies a State snapshot into the widgets. Runs on the fyne thread.
func (a *App) render(st app.State) {
	a.state.SyncFromState(st, a.workflow.Methods())
	a.showPage(st.Page)

	syncEntry(a.encodePassword, st.EncodePassword)
	syncEntry(a.decodePassword, st.DecodePassword)
	a.strength.SetStrength(st.Strength)
	a.strength.SetVisible(st.EncodePassword != "")
}

func (a *App) showPage(p app.Page) {
	if p == a.page {
		return
	}
	for page, obj := range a.pages {
		if page == p {
			obj.Show()
		} else {
			obj.Hide()
		}
	}
	a.page = p
}

// submit starts the current page's job. Validation problems are already on
// the page's status line; anything else gets a dialog.
func (a *App) submit() {
	a.workflow.Submit(a.ctx, func(err error) {
		switch {
		case err == nil, errors.IsValidation(err), errors.IsCancelled(err):
		case errors.Is(err, errors.ErrSessionActive):
			log.Debug("Submit ignored, job already running")
		default:
			fyne.Do(func() { dialog.ShowError(err, a.Window) })
		}
	})
}

func (a *App) onFinish(p app.Page, v session.View, st app.State) {
	log.Info("Job finished",
		log.String("page", p.String()),
		log.String("state", v.State.String()),
		log.Int("exit_code", v.ExitCode),
		log.String("fingerprint", st.Fingerprint))
}

// onClose asks before stopping a running job.
func (a *App) onClose() {
	running := false
	for _, p := range []app.Page{app.PageEncode, app.PageDecode} {
		if a.workflow.Session(p).View().State == session.Running {
			running = true
		}
	}
	if !running {
		a.quit()
		return
	}
	dialog.ShowConfirm("Quit VideoVault?", "A job is still running. Quit and stop it?", func(ok bool) {
		if ok {
			a.quit()
		}
	}, a.Window)
}

func (a *App) quit() {
	a.workflow.Back()
	a.cancel()
	a.Window.Close()
}

// syncEntry updates an entry only when the workflow changed the text, so the
// cursor is left alone while the user types.
func syncEntry(e *PasswordEntry, text string) {
	if e != nil && e.Text != text {
		e.SetText(text)
	}
}
