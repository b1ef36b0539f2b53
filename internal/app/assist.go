package app

import (
	"context"
	"strings"

	"VideoVault/internal/engine"
	"VideoVault/internal/errors"
	"VideoVault/internal/log"
)

// BufferedRunner runs an assistant request to completion.
// *launcher.Launcher satisfies it.
type BufferedRunner interface {
	RunBuffered(ctx context.Context, inv engine.Invocation) (engine.Result, error)
}

// SuggestPassword asks the engine for a password and fills it into both the
// encode and decode password fields. It blocks until the engine exits; the
// suggest control is busy meanwhile and is released on every outcome.
func (w *Workflow) SuggestPassword(ctx context.Context) (string, error) {
	gen, ok := w.acquire(func(s *State) *bool { return &s.SuggestBusy })
	if !ok {
		return "", errors.ErrAssistBusy
	}
	defer w.update(func(s *State) { s.SuggestBusy = false })

	res, err := w.runAssist(ctx, engine.AIRequest(engine.TaskSuggestPassword, ""))
	if err == nil {
		switch {
		case res.Text == "":
			err = errors.ErrEmptyResult
		case strings.HasPrefix(res.Text, "Error:"):
			err = errors.Wrap(errors.ErrEngineResult, strings.TrimSpace(strings.TrimPrefix(res.Text, "Error:")))
		}
	}
	if err != nil {
		log.Warn("Password suggestion failed", log.Err(err))
		w.update(func(s *State) {
			if w.gen == gen {
				s.AssistError = "Error: " + err.Error()
			}
		})
		return "", errors.NewBufferedTaskError(engine.TaskSuggestPassword.String(), err)
	}

	password := res.Text
	strength := PasswordStrength(password)
	w.update(func(s *State) {
		if w.gen != gen {
			return
		}
		s.EncodePassword = password
		s.DecodePassword = password
		s.Strength = strength
		s.AssistError = ""
	})
	return password, nil
}

// Peek asks the engine to describe what is hidden in the decode carrier and
// shows the answer in the manifest area. Without a carrier nothing is
// launched.
func (w *Workflow) Peek(ctx context.Context) (string, error) {
	carrier := w.State().DecodeCarrier
	if carrier == "" {
		w.update(func(s *State) { s.AssistError = MsgPeekNeedsVideo })
		return "", errors.NewValidationError("carrier", MsgPeekNeedsVideo, errors.ErrNoCarrier)
	}

	gen, ok := w.acquire(func(s *State) *bool { return &s.PeekBusy })
	if !ok {
		return "", errors.ErrAssistBusy
	}
	defer w.update(func(s *State) { s.PeekBusy = false })
	w.update(func(s *State) {
		s.Manifest = MsgAnalyzing
		s.AssistError = ""
	})

	res, err := w.runAssist(ctx, engine.AIRequest(engine.TaskPeek, carrier))
	if err != nil {
		log.Warn("Peek failed", log.String("carrier", carrier), log.Err(err))
		w.update(func(s *State) {
			if w.gen == gen {
				s.Manifest = "Error: " + err.Error()
			}
		})
		return "", errors.NewBufferedTaskError(engine.TaskPeek.String(), err)
	}
	w.update(func(s *State) {
		if w.gen == gen {
			s.Manifest = res.Text
		}
	})
	return res.Text, nil
}

// acquire sets the busy flag chosen by field unless it is already set.
func (w *Workflow) acquire(field func(*State) *bool) (uint64, bool) {
	w.mu.Lock()
	busy := field(&w.state)
	if *busy {
		w.mu.Unlock()
		return 0, false
	}
	*busy = true
	gen := w.gen
	st := w.state.Clone()
	w.mu.Unlock()
	if w.onChange != nil {
		w.onChange(st)
	}
	return gen, true
}

func (w *Workflow) runAssist(ctx context.Context, req engine.TaskRequest) (res engine.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Assistant request panicked", log.String("panic", toString(r)))
			err = errors.NewBufferedTaskError(req.AITask.String(), errors.ErrEngineResult)
		}
	}()
	inv, err := w.builder.Build(req)
	if err != nil {
		return engine.Result{}, err
	}
	return w.runner.RunBuffered(ctx, inv)
}

func toString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown panic"
}
