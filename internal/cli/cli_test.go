package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VideoVault/internal/config"
	"VideoVault/internal/engine"
	"VideoVault/internal/errors"
	"VideoVault/internal/launcher"
	"VideoVault/internal/session"
)

// scriptedStream replays a fixed engine run.
type scriptedStream struct {
	events chan launcher.Event
}

func (s *scriptedStream) Events() <-chan launcher.Event { return s.events }
func (s *scriptedStream) Detach()                       {}
func (s *scriptedStream) Terminate()                    {}

type fakeEngine struct {
	mu     sync.Mutex
	lines  []string
	code   int
	result engine.Result
	err    error
	calls  []engine.Invocation
}

func (f *fakeEngine) Stream(_ context.Context, inv engine.Invocation) (session.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, inv)
	s := &scriptedStream{events: make(chan launcher.Event, len(f.lines)+1)}
	for _, l := range f.lines {
		s.events <- launcher.Event{Kind: launcher.EventLine, Text: l}
	}
	s.events <- launcher.Event{Kind: launcher.EventExit, Code: f.code}
	close(s.events)
	return s, nil
}

func (f *fakeEngine) RunBuffered(_ context.Context, inv engine.Invocation) (engine.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, inv)
	return f.result, f.err
}

// useFakeEngine swaps the runtime for one backed by f and resets flags.
func useFakeEngine(t *testing.T, f *fakeEngine) {
	t.Helper()
	oldRuntime, oldTerminal := newRuntime, isTerminal
	newRuntime = func(cfg config.Config) runtime {
		return runtime{cfg: cfg, streamer: f, runner: f}
	}
	isTerminal = func() bool { return false }
	t.Cleanup(func() { newRuntime, isTerminal = oldRuntime, oldTerminal })

	encMethod, encOutput, encPassword, encPasswordStdin, encForce, encQuiet = "steganography", "", "", false, false, false
	decMethod, decOutput, decPassword, decPasswordStdin, decQuiet = "steganography", ".", "", false, false
	suggestOffline, suggestLength = false, 32
}

// execute runs the root command with args and captured output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReporter(t *testing.T) {
	t.Run("draws bar", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewReporter(&buf, false)
		r.SetProgress(50)
		r.SetStatus("Embedding")

		line := buf.String()
		assert.Contains(t, line, strings.Repeat("█", 15)+strings.Repeat("░", 15))
		assert.Contains(t, line, " 50% | Embedding")
		assert.Equal(t, "Embedding", r.Status())
	})

	t.Run("clamps overfull bar", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewReporter(&buf, false)
		r.SetProgress(250)
		assert.NotContains(t, buf.String(), "░")
	})

	t.Run("quiet mode suppresses output", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewReporter(&buf, true)
		r.SetStatus("test")
		r.SetProgress(50)
		r.Finish()
		r.PrintSuccess("done")
		assert.Zero(t, buf.Len())
	})

	t.Run("PrintError always outputs", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewReporter(&buf, true)
		r.PrintError("error %d", 7)
		assert.Equal(t, "Error: error 7\n", buf.String())
	})

	t.Run("Finish ends the progress line once", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewReporter(&buf, false)
		r.SetStatus("x")
		r.Finish()
		r.Finish()
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	})
}

func TestEncodeDatareel(t *testing.T) {
	f := &fakeEngine{lines: []string{"PROGRESS:10:Reading", "PROGRESS:100:Done"}}
	useFakeEngine(t, f)

	dir := t.TempDir()
	payload := writeFile(t, dir, "notes.txt", "secret")
	out := writeFile(t, dir, "reel.mp4", "video bytes")

	stdout, stderr, err := execute(t, "encode", "-m", "datareel", "-o", out, "-f", "-p", "correct horse battery staple", payload)
	require.NoError(t, err)

	require.Len(t, f.calls, 1)
	args := f.calls[0].Args()
	assert.Contains(t, args, "datareel")
	assert.Contains(t, args, payload)
	assert.Contains(t, args, "correct horse battery staple")
	assert.Equal(t, out+"\n", stdout)
	assert.Contains(t, stderr, session.CompletedMessage)
	assert.Contains(t, stderr, "BLAKE2b-256")
}

func TestEncodeValidation(t *testing.T) {
	dir := t.TempDir()
	video := writeFile(t, dir, "in.mp4", "v")
	payload := writeFile(t, dir, "a.txt", "a")
	existing := writeFile(t, dir, "out.avi", "old")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown method", []string{"encode", "-m", "morse", payload}, "unknown method"},
		{"carrier method needs two args", []string{"encode", "-m", "steganography", payload}, "needs a carrier"},
		{"missing input", []string{"encode", "-m", "datareel", "-o", filepath.Join(dir, "x.mp4"), filepath.Join(dir, "nope")}, "input"},
		{"existing output", []string{"encode", "-o", existing, video, payload}, "already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeEngine{}
			useFakeEngine(t, f)
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, f.calls)
		})
	}
}

func TestDecodeFailureExitCode(t *testing.T) {
	f := &fakeEngine{lines: []string{"PROGRESS:40:Scanning", "ERROR: wrong password"}, code: 2}
	useFakeEngine(t, f)

	dir := t.TempDir()
	video := writeFile(t, dir, "secret.avi", "v")

	_, stderr, err := execute(t, "decode", "-o", dir, "-p", "pw", video)
	require.Error(t, err)
	assert.Equal(t, 2, errors.ExitCode(err))
	assert.Contains(t, stderr, "ERROR: wrong password")

	require.Len(t, f.calls, 1)
	assert.Contains(t, f.calls[0].Args(), dir)
}

func TestDecodeOutputMustBeFolder(t *testing.T) {
	useFakeEngine(t, &fakeEngine{})
	dir := t.TempDir()
	video := writeFile(t, dir, "secret.avi", "v")

	_, _, err := execute(t, "decode", "-o", video, video)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a folder")
}

func TestSuggestPassword(t *testing.T) {
	t.Run("offline", func(t *testing.T) {
		f := &fakeEngine{}
		useFakeEngine(t, f)
		stdout, _, err := execute(t, "suggest-password", "--offline", "--length", "20")
		require.NoError(t, err)
		assert.Len(t, strings.TrimSpace(stdout), 20)
		assert.Empty(t, f.calls)
	})

	t.Run("engine", func(t *testing.T) {
		f := &fakeEngine{result: engine.Result{Text: "Tr0ub4dor&3", Tagged: true}}
		useFakeEngine(t, f)
		stdout, _, err := execute(t, "suggest-password")
		require.NoError(t, err)
		assert.Equal(t, "Tr0ub4dor&3\n", stdout)
	})

	t.Run("engine failure", func(t *testing.T) {
		f := &fakeEngine{err: errors.NewExitError(1, "no api key")}
		useFakeEngine(t, f)
		_, stderr, err := execute(t, "suggest-password")
		require.Error(t, err)
		assert.Contains(t, stderr, "Error:")
	})
}

func TestPeek(t *testing.T) {
	f := &fakeEngine{result: engine.Result{Text: "Contains: plan.pdf", Tagged: true}}
	useFakeEngine(t, f)
	video := writeFile(t, t.TempDir(), "in.mp4", "v")

	stdout, _, err := execute(t, "peek", video)
	require.NoError(t, err)
	assert.Equal(t, "Contains: plan.pdf\n", stdout)
	assert.Equal(t, []string{"--mode", "ai", "--ai-task", "peek", video}, f.calls[0].Args()[len(f.calls[0].Args())-5:])
}

func TestWeakPasswordWarning(t *testing.T) {
	assert.Empty(t, weakPasswordWarning(""))
	assert.Contains(t, weakPasswordWarning("password"), "weak password")
	assert.Empty(t, weakPasswordWarning("correct horse battery staple 9!"))
}

func TestResolvePassword(t *testing.T) {
	old := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = old }()

	pw, err := resolvePassword("flag", false, true)
	require.NoError(t, err)
	assert.Equal(t, "flag", pw)

	pw, err = resolvePassword("", false, true)
	require.NoError(t, err)
	assert.Empty(t, pw)
}

func TestExecuteFallsBackToGUI(t *testing.T) {
	old := os.Args
	defer func() { os.Args = old }()

	os.Args = []string{"videovault"}
	assert.False(t, Execute("v1.0.0"))

	os.Args = []string{"videovault", "some-file.mp4"}
	assert.False(t, Execute("v1.0.0"))
	assert.Equal(t, "v1.0.0", rootCmd.Version)
}
