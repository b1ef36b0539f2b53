package engine

import (
	"strings"

	"VideoVault/internal/errors"
)

// Invocation is a fully resolved engine command line. It is produced by
// Builder.Build and is not modified afterwards; accessors return copies.
type Invocation struct {
	executable string
	args       []string
	mode       Mode
	task       AITask
}

// NewInvocation creates an Invocation directly, bypassing request validation.
// Used for diagnostics and tests that drive a stand-in engine.
func NewInvocation(executable string, mode Mode, args ...string) Invocation {
	return Invocation{
		executable: executable,
		args:       append([]string(nil), args...),
		mode:       mode,
	}
}

// Executable returns the program to start.
func (inv Invocation) Executable() string { return inv.executable }

// Args returns a copy of the argument vector, script prefix included.
func (inv Invocation) Args() []string { return append([]string(nil), inv.args...) }

// Mode returns the engine mode this invocation runs.
func (inv Invocation) Mode() Mode { return inv.mode }

// Task returns the assistant task for ModeAI invocations.
func (inv Invocation) Task() AITask { return inv.task }

// Redacted returns the argument vector with the password value masked,
// for logging.
func (inv Invocation) Redacted() []string {
	out := inv.Args()
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "--password" {
			out[i+1] = "***"
			i++
		}
	}
	return out
}

// String renders the command line with the password masked.
func (inv Invocation) String() string {
	return strings.TrimSpace(inv.executable + " " + strings.Join(inv.Redacted(), " "))
}

// Builder maps TaskRequests to Invocations for one engine installation.
type Builder struct {
	Executable string  // engine binary or interpreter
	Script     string  // optional first argument, e.g. the engine script path
	Methods    Methods // method table; nil means DefaultMethods
}

func (b Builder) methods() Methods {
	if len(b.Methods) == 0 {
		return DefaultMethods()
	}
	return b.Methods
}

// Build validates req and produces its argument vector. Flags always precede
// positional paths because the engine reads trailing arguments as inputs.
func (b Builder) Build(req TaskRequest) (Invocation, error) {
	var args []string
	var err error

	switch req.Mode {
	case ModeEncode:
		args, err = b.encodeArgs(req)
	case ModeDecode:
		args, err = b.decodeArgs(req)
	case ModeAI:
		args, err = aiArgs(req)
	default:
		return Invocation{}, errors.NewValidationError("mode", "unknown mode", errors.ErrUnknownMode)
	}
	if err != nil {
		return Invocation{}, err
	}

	if b.Script != "" {
		args = append([]string{b.Script}, args...)
	}
	return Invocation{
		executable: b.Executable,
		args:       args,
		mode:       req.Mode,
		task:       req.AITask,
	}, nil
}

func (b Builder) checkMethod(req TaskRequest) (Method, error) {
	if req.AITask != TaskNone {
		return Method{}, errors.NewValidationError("ai-task", "only valid in ai mode", errors.ErrUnknownTask)
	}
	if req.Method == "" {
		return Method{}, errors.NewValidationError("method", "no method selected", errors.ErrNoMethod)
	}
	m, ok := b.methods().Lookup(req.Method)
	if !ok {
		return Method{}, errors.NewValidationError("method", "unknown method "+req.Method, errors.ErrNoMethod)
	}
	if req.OutputTarget == "" {
		return Method{}, errors.NewValidationError("output", "no output target selected", errors.ErrNoOutput)
	}
	return m, nil
}

func (b Builder) encodeArgs(req TaskRequest) ([]string, error) {
	m, err := b.checkMethod(req)
	if err != nil {
		return nil, err
	}
	if len(req.PayloadPaths) == 0 {
		return nil, errors.NewValidationError("payload", "select at least one file to hide", errors.ErrNoPayload)
	}
	for _, p := range req.PayloadPaths {
		if p == "" {
			return nil, errors.NewValidationError("payload", "empty payload path", errors.ErrNoPayload)
		}
	}
	if m.Carrier && req.CarrierPath == "" {
		return nil, errors.NewValidationError("carrier", "select a carrier video", errors.ErrNoCarrier)
	}

	args := flags(req.Method, ModeEncode, req.OutputTarget, req.Password)
	if m.Carrier {
		args = append(args, req.CarrierPath)
	}
	return append(args, req.PayloadPaths...), nil
}

func (b Builder) decodeArgs(req TaskRequest) ([]string, error) {
	if _, err := b.checkMethod(req); err != nil {
		return nil, err
	}
	if len(req.PayloadPaths) > 0 {
		return nil, errors.NewValidationError("payload", "decode takes no payload files", errors.ErrUnknownMode)
	}
	if req.CarrierPath == "" {
		return nil, errors.NewValidationError("carrier", "select a video to decode", errors.ErrNoCarrier)
	}

	args := flags(req.Method, ModeDecode, req.OutputTarget, req.Password)
	return append(args, req.CarrierPath), nil
}

func aiArgs(req TaskRequest) ([]string, error) {
	if req.Method != "" || len(req.PayloadPaths) > 0 || req.OutputTarget != "" || req.Password != "" {
		return nil, errors.NewValidationError("ai-task", "assistant requests take no method, payload, output or password", errors.ErrUnknownMode)
	}

	args := []string{"--mode", ModeAI.String(), "--ai-task"}
	switch req.AITask {
	case TaskSuggestPassword:
		if req.CarrierPath != "" {
			return nil, errors.NewValidationError("carrier", "suggest password takes no carrier", errors.ErrUnknownTask)
		}
		return append(args, req.AITask.Token()), nil
	case TaskPeek:
		if req.CarrierPath == "" {
			return nil, errors.NewValidationError("carrier", "select a video to peek into", errors.ErrNoCarrier)
		}
		return append(args, req.AITask.Token(), req.CarrierPath), nil
	default:
		return nil, errors.NewValidationError("ai-task", "unknown assistant task", errors.ErrUnknownTask)
	}
}

func flags(method string, mode Mode, output, password string) []string {
	args := []string{"--method", method, "--mode", mode.String(), "--output", output}
	if password != "" {
		args = append(args, "--password", password)
	}
	return args
}
