package ui

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VideoVault/internal/app"
	"VideoVault/internal/config"
	"VideoVault/internal/engine"
	"VideoVault/internal/launcher"
	"VideoVault/internal/session"
)

type replayStream struct {
	events chan launcher.Event
}

func (s *replayStream) Events() <-chan launcher.Event { return s.events }
func (s *replayStream) Detach()                       {}
func (s *replayStream) Terminate()                    {}

// replayEngine answers every job with the same lines and exit code.
type replayEngine struct {
	lines []string
	code  int
}

func (e *replayEngine) Stream(context.Context, engine.Invocation) (session.Stream, error) {
	s := &replayStream{events: make(chan launcher.Event, len(e.lines)+1)}
	for _, l := range e.lines {
		s.events <- launcher.Event{Kind: launcher.EventLine, Text: l}
	}
	s.events <- launcher.Event{Kind: launcher.EventExit, Code: e.code}
	close(s.events)
	return s, nil
}

func (e *replayEngine) RunBuffered(context.Context, engine.Invocation) (engine.Result, error) {
	return engine.Result{Text: "Contains: plan.pdf", Tagged: true}, nil
}

// stubDialogs picks fixed paths.
type stubDialogs struct {
	open   []string
	folder string
	save   string
}

func (d *stubDialogs) OpenFiles(_ app.OpenOptions, done func([]string)) { done(d.open) }
func (d *stubDialogs) OpenFolder(_ string, done func(string))           { done(d.folder) }
func (d *stubDialogs) SaveFile(_ app.SaveOptions, done func(string))    { done(d.save) }

func newTestApp(t *testing.T, eng *replayEngine, dialogs *stubDialogs) *App {
	t.Helper()
	fa := test.NewTempApp(t)
	cfg := config.Default()
	cfg.Engine.Executable = "engine"
	cfg.Engine.Script = ""
	a := NewApp(fa, Options{
		Version:  "v1.0.0",
		Config:   cfg,
		Streamer: eng,
		Runner:   eng,
		Dialogs:  dialogs,
	})
	t.Cleanup(a.cancel)
	return a
}

func TestPageNavigation(t *testing.T) {
	a := newTestApp(t, &replayEngine{}, &stubDialogs{})

	assert.True(t, a.pages[app.PageHome].Visible())
	assert.False(t, a.pages[app.PageEncode].Visible())

	a.selectPage(app.PageDecode, "append")
	assert.True(t, a.pages[app.PageDecode].Visible())
	assert.False(t, a.pages[app.PageHome].Visible())
	title, _ := a.state.Title.Get()
	assert.Equal(t, "Decode: Append Method", title)

	a.workflow.Back()
	assert.True(t, a.pages[app.PageHome].Visible())
}

func TestEncodeValidationShowsOnStatusLine(t *testing.T) {
	a := newTestApp(t, &replayEngine{}, &stubDialogs{})
	a.selectPage(app.PageEncode, "steganography")

	a.submit()
	status, _ := a.encode.bound.Status.Get()
	assert.Equal(t, app.MsgNeedVideoFiles, status)
	assert.Equal(t, theme.Color(theme.ColorNameError), a.encode.status.color)
}

func TestEncodeRunUpdatesProgress(t *testing.T) {
	dir := t.TempDir()
	dialogs := &stubDialogs{open: []string{dir + "/notes.txt"}, save: dir + "/out.mp4"}
	a := newTestApp(t, &replayEngine{lines: []string{"PROGRESS:50:Halfway", "PROGRESS:100:Done"}}, dialogs)
	a.selectPage(app.PageEncode, "datareel")

	a.workflow.ChoosePayloads()
	a.encodePassword.SetText("hunter2")
	assert.Equal(t, "hunter2", a.workflow.State().EncodePassword)

	a.submit()
	require.NoError(t, a.workflow.Session(app.PageEncode).Wait(context.Background()))

	assert.Eventually(t, func() bool {
		v, _ := a.encode.bound.Progress.Get()
		return v == 1
	}, testTimeout, testTick)
	status, _ := a.encode.bound.Status.Get()
	assert.Equal(t, session.CompletedMessage, status)
}

func TestResetClearsPasswordEntry(t *testing.T) {
	a := newTestApp(t, &replayEngine{}, &stubDialogs{})
	a.selectPage(app.PageEncode, "datareel")
	a.encodePassword.SetText("secret")

	a.workflow.Reset()
	assert.Empty(t, a.encodePassword.Text)
	assert.False(t, a.strength.visible)
}

func TestPeekFillsManifest(t *testing.T) {
	dialogs := &stubDialogs{open: []string{"/v/in.mp4"}}
	a := newTestApp(t, &replayEngine{}, dialogs)
	a.selectPage(app.PageDecode, "steganography")
	a.workflow.ChooseCarrier()

	_, err := a.workflow.Peek(context.Background())
	require.NoError(t, err)
	text, _ := a.state.Manifest.Get()
	assert.Equal(t, "Contains: plan.pdf", text)
	show, _ := a.state.ShowManifest.Get()
	assert.True(t, show)
}

func TestStatusColor(t *testing.T) {
	test.NewTempApp(t)
	assert.Equal(t, theme.Color(theme.ColorNameError), statusColor("ERROR: boom"))
	assert.Equal(t, theme.Color(theme.ColorNameSuccess), statusColor(session.CompletedMessage))
	assert.Equal(t, theme.Color(theme.ColorNameWarning), statusColor(app.MsgSaveCancelled))
	assert.Equal(t, theme.Color(theme.ColorNameForeground), statusColor("Embedding"))
}

func TestDotted(t *testing.T) {
	assert.Equal(t, []string{".mp4", ".avi"}, dotted([]string{"mp4", ".avi"}))
	assert.Equal(t, "Datareel", methodTitle("datareel"))
}

const (
	testTimeout = 5 * time.Second
	testTick    = 10 * time.Millisecond
)
