package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VideoVault/internal/engine"
	"VideoVault/internal/errors"
)

// TestHelperProcess stands in for the engine when re-executed by the tests
// below. It is a no-op in a normal test run.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		os.Exit(2)
	}

	switch args[1] {
	case "progress":
		fmt.Println("PROGRESS:10:Reading carrier")
		fmt.Println("Loading codec")
		fmt.Println("PROGRESS:150:Overshoot")
		fmt.Println("PROGRESS:100:Done")
		os.Exit(0)
	case "fail":
		fmt.Println("PROGRESS:30:Embedding")
		fmt.Fprintln(os.Stderr, "Decoding requires exactly one input video file.")
		os.Exit(1)
	case "result":
		fmt.Println("loading model")
		fmt.Print("AI_RESULT:Tr0ub4dor&3\n")
		fmt.Fprintln(os.Stderr, "warning: slow tokenizer")
		os.Exit(0)
	case "result-fail":
		fmt.Fprintln(os.Stderr, "no model available")
		os.Exit(3)
	case "sleep":
		fmt.Println("PROGRESS:1:Waiting")
		time.Sleep(time.Minute)
		os.Exit(0)
	case "chatty":
		for i := 0; i < 500; i++ {
			fmt.Printf("PROGRESS:%d:frame %d\n", i%101, i)
		}
		os.Exit(0)
	}
	os.Exit(2)
}

func helper(mode engine.Mode, scenario string) engine.Invocation {
	return engine.NewInvocation(os.Args[0], mode, "-test.run=TestHelperProcess", "--", scenario)
}

func newTestLauncher() *Launcher {
	return New(Options{
		Env:        []string{"GO_WANT_HELPER_PROCESS=1"},
		Grace:      100 * time.Millisecond,
		BufferSize: 4,
	})
}

func collect(t *testing.T, h *Handle) []Event {
	t.Helper()
	var events []Event
	timeout := time.After(30 * time.Second)
	for {
		select {
		case ev, ok := <-h.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("timed out waiting for engine events")
		}
	}
}

func lines(events []Event) []string {
	var out []string
	for _, ev := range events {
		if ev.Kind == EventLine {
			out = append(out, ev.Text)
		}
	}
	return out
}

func TestStreamProgress(t *testing.T) {
	h, err := newTestLauncher().Stream(context.Background(), helper(engine.ModeEncode, "progress"))
	require.NoError(t, err)

	events := collect(t, h)
	require.NotEmpty(t, events)

	assert.Equal(t, []string{
		"PROGRESS:10:Reading carrier",
		"Loading codec",
		"PROGRESS:150:Overshoot",
		"PROGRESS:100:Done",
	}, lines(events))

	last := events[len(events)-1]
	assert.Equal(t, EventExit, last.Kind)
	assert.Equal(t, 0, last.Code)
}

func TestStreamStderrAndExitCode(t *testing.T) {
	h, err := newTestLauncher().Stream(context.Background(), helper(engine.ModeDecode, "fail"))
	require.NoError(t, err)

	events := collect(t, h)
	assert.Contains(t, lines(events), "PROGRESS:30:Embedding")
	assert.Contains(t, lines(events), "ERROR: Decoding requires exactly one input video file.")

	var exits int
	for _, ev := range events {
		if ev.Kind == EventExit {
			exits++
			assert.Equal(t, 1, ev.Code)
		}
	}
	assert.Equal(t, 1, exits)
	assert.Equal(t, EventExit, events[len(events)-1].Kind, "exit must follow every line")
}

// A slow consumer sees every line; the small buffer forces backpressure.
func TestStreamBackpressure(t *testing.T) {
	h, err := newTestLauncher().Stream(context.Background(), helper(engine.ModeEncode, "chatty"))
	require.NoError(t, err)

	events := collect(t, h)
	assert.Len(t, lines(events), 500)
	assert.Equal(t, 0, events[len(events)-1].Code)
}

func TestStreamLaunchError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-engine")
	h, err := newTestLauncher().Stream(context.Background(), engine.NewInvocation(missing, engine.ModeEncode))
	require.Error(t, err)
	assert.Nil(t, h)

	var le *errors.LaunchError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, missing, le.Executable)
}

func TestStreamTerminate(t *testing.T) {
	h, err := newTestLauncher().Stream(context.Background(), helper(engine.ModeEncode, "sleep"))
	require.NoError(t, err)

	select {
	case ev := <-h.Events():
		assert.Equal(t, "PROGRESS:1:Waiting", ev.Text)
	case <-time.After(30 * time.Second):
		t.Fatal("no first line")
	}

	h.Terminate()
	h.Terminate()

	select {
	case <-h.Exited():
	case <-time.After(30 * time.Second):
		t.Fatal("engine survived terminate")
	}
}

func TestStreamDetachDropsEvents(t *testing.T) {
	h, err := newTestLauncher().Stream(context.Background(), helper(engine.ModeEncode, "chatty"))
	require.NoError(t, err)
	h.Detach()

	select {
	case <-h.Exited():
	case <-time.After(30 * time.Second):
		t.Fatal("detached engine never reaped")
	}
	// channel is closed; at most the buffered events remain
	n := 0
	for range h.Events() {
		n++
	}
	assert.LessOrEqual(t, n, 4)
}

func TestStreamContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h, err := newTestLauncher().Stream(ctx, helper(engine.ModeEncode, "sleep"))
	require.NoError(t, err)
	cancel()

	select {
	case <-h.Exited():
	case <-time.After(30 * time.Second):
		t.Fatal("cancel did not stop the engine")
	}
}

func TestRunBuffered(t *testing.T) {
	res, err := newTestLauncher().RunBuffered(context.Background(), helper(engine.ModeAI, "result"))
	require.NoError(t, err)
	assert.Equal(t, "Tr0ub4dor&3", res.Text)
	assert.True(t, res.Tagged)
	assert.Equal(t, []string{"loading model"}, res.Diagnostics)
}

func TestRunBufferedExitError(t *testing.T) {
	_, err := newTestLauncher().RunBuffered(context.Background(), helper(engine.ModeAI, "result-fail"))
	require.Error(t, err)

	var ee *errors.ExitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 3, ee.Code)
	assert.Contains(t, ee.Stderr, "no model available")
	assert.Equal(t, 3, errors.ExitCode(err))
}

func TestRunBufferedLaunchError(t *testing.T) {
	_, err := newTestLauncher().RunBuffered(context.Background(), engine.NewInvocation(filepath.Join(t.TempDir(), "missing"), engine.ModeAI))
	var le *errors.LaunchError
	assert.ErrorAs(t, err, &le)
}

func TestRunBufferedCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := newTestLauncher().RunBuffered(ctx, helper(engine.ModeAI, "sleep"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 30*time.Second)
}
