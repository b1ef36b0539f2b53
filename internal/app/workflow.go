package app

import (
	"context"
	"sync"

	"VideoVault/internal/digest"
	"VideoVault/internal/engine"
	"VideoVault/internal/errors"
	"VideoVault/internal/log"
	"VideoVault/internal/session"
)

// FileFilter restricts a file dialog to some extensions (without the dot).
type FileFilter struct {
	Name       string
	Extensions []string
}

// OpenOptions configures a file open prompt.
type OpenOptions struct {
	Title    string
	Multiple bool
	Filter   *FileFilter
}

// SaveOptions configures a save prompt.
type SaveOptions struct {
	Title       string
	DefaultName string
	Filter      *FileFilter
}

// Dialogs are the native pickers. Each reports its result through done,
// possibly before returning; an empty result means the user cancelled.
type Dialogs interface {
	OpenFiles(opts OpenOptions, done func(paths []string))
	OpenFolder(title string, done func(path string))
	SaveFile(opts SaveOptions, done func(path string))
}

var videoFilter = &FileFilter{Name: "Videos", Extensions: []string{"mp4", "mov", "avi"}}

// Options wires a Workflow.
type Options struct {
	Builder          engine.Builder
	Streamer         session.Streamer
	Runner           BufferedRunner
	Dialogs          Dialogs
	EncodeReporter   session.Reporter
	DecodeReporter   session.Reporter
	TerminateOnReset bool
	OnChange         func(State)                     // called after every state change
	OnFinish         func(Page, session.View, State) // called when a job ends
}

// Workflow is the page state machine: Home, then an encode or decode setup
// page bound to a method, and back to Home with a full reset.
type Workflow struct {
	mu      sync.Mutex
	state   State
	gen     uint64 // bumped on reset; stale assistant results are dropped
	builder engine.Builder
	methods engine.Methods
	dialogs Dialogs
	runner  BufferedRunner
	encode  *session.Manager
	decode  *session.Manager

	onChange func(State)
	onFinish func(Page, session.View, State)
}

// NewWorkflow creates a Workflow on the Home page.
func NewWorkflow(opts Options) *Workflow {
	methods := opts.Builder.Methods
	if len(methods) == 0 {
		methods = engine.DefaultMethods()
	}
	w := &Workflow{
		state:    NewState(),
		builder:  opts.Builder,
		methods:  methods,
		dialogs:  opts.Dialogs,
		runner:   opts.Runner,
		onChange: opts.OnChange,
		onFinish: opts.OnFinish,
	}
	w.encode = session.NewManager(opts.Streamer, opts.EncodeReporter, session.Options{
		Name:             PageEncode.String(),
		StartMessage:     MsgStartEncode,
		TerminateOnReset: opts.TerminateOnReset,
		OnFinish:         func(v session.View) { w.finished(PageEncode, v) },
	})
	w.decode = session.NewManager(opts.Streamer, opts.DecodeReporter, session.Options{
		Name:             PageDecode.String(),
		StartMessage:     MsgStartDecode,
		TerminateOnReset: opts.TerminateOnReset,
		OnFinish:         func(v session.View) { w.finished(PageDecode, v) },
	})
	return w
}

// State returns a copy of the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

// Methods returns the method table.
func (w *Workflow) Methods() engine.Methods {
	return w.methods
}

// Session returns the job session for page, or nil for Home.
func (w *Workflow) Session(p Page) *session.Manager {
	switch p {
	case PageEncode:
		return w.encode
	case PageDecode:
		return w.decode
	}
	return nil
}

// update applies fn to the state under the lock and notifies OnChange.
func (w *Workflow) update(fn func(s *State)) {
	w.mu.Lock()
	fn(&w.state)
	st := w.state.Clone()
	w.mu.Unlock()
	if w.onChange != nil {
		w.onChange(st)
	}
}

// SelectEncode opens the encode page for method.
func (w *Workflow) SelectEncode(method string) error {
	return w.selectPage(PageEncode, method)
}

// SelectDecode opens the decode page for method.
func (w *Workflow) SelectDecode(method string) error {
	return w.selectPage(PageDecode, method)
}

func (w *Workflow) selectPage(p Page, method string) error {
	if _, ok := w.methods.Lookup(method); !ok {
		return errors.NewValidationError("method", "unknown method "+method, errors.ErrNoMethod)
	}
	w.resetSessions()
	w.update(func(s *State) {
		w.gen++
		*s = s.cleared()
		s.Page = p
		s.Method = method
	})
	log.Info("Page selected", log.String("page", p.String()), log.String("method", method))
	return nil
}

// Reset clears every selection on the current page and returns its job
// session to Idle. Calling it twice has the same effect as once.
func (w *Workflow) Reset() {
	w.resetSessions()
	w.update(func(s *State) {
		w.gen++
		*s = s.cleared()
	})
}

// Back returns to Home with a full reset.
func (w *Workflow) Back() {
	w.resetSessions()
	w.update(func(s *State) {
		w.gen++
		*s = s.cleared()
		s.Page = PageHome
		s.Method = ""
	})
}

func (w *Workflow) resetSessions() {
	w.encode.Reset()
	w.decode.Reset()
}

// SetCarrier replaces the carrier of the current page.
func (w *Workflow) SetCarrier(path string) {
	w.update(func(s *State) {
		if s.Page == PageDecode {
			s.DecodeCarrier = path
		} else {
			s.EncodeCarrier = path
		}
	})
}

// AddPayloads appends files to hide. Duplicates are kept.
func (w *Workflow) AddPayloads(paths ...string) {
	if len(paths) == 0 {
		return
	}
	w.update(func(s *State) {
		s.Payloads = append(s.Payloads, paths...)
	})
}

// SetPassword sets the password of the current page.
func (w *Workflow) SetPassword(password string) {
	strength := PasswordStrength(password)
	w.update(func(s *State) {
		if s.Page == PageDecode {
			s.DecodePassword = password
		} else {
			s.EncodePassword = password
			s.Strength = strength
		}
	})
}

// SetDecodeOutput sets the folder decoded files are written to.
func (w *Workflow) SetDecodeOutput(dir string) {
	w.update(func(s *State) { s.DecodeOutput = dir })
}

// ChooseCarrier prompts for a carrier video. Cancelling changes nothing.
func (w *Workflow) ChooseCarrier() {
	title := "Select Carrier Video"
	if w.State().Page == PageDecode {
		title = "Select Video to Decode"
	}
	w.dialogs.OpenFiles(OpenOptions{Title: title, Filter: videoFilter}, func(paths []string) {
		if len(paths) > 0 {
			w.SetCarrier(paths[0])
		}
	})
}

// ChoosePayloads prompts for files to hide and appends them.
func (w *Workflow) ChoosePayloads() {
	w.dialogs.OpenFiles(OpenOptions{Title: "Add Files to Hide", Multiple: true}, func(paths []string) {
		w.AddPayloads(paths...)
	})
}

// ChooseDecodeOutput prompts for the decode output folder.
func (w *Workflow) ChooseDecodeOutput() {
	w.dialogs.OpenFolder("Select Output Folder", func(path string) {
		if path != "" {
			w.SetDecodeOutput(path)
		}
	})
}

// Submit validates the current page and starts its engine job. The outcome
// is reported once through done: nil when the job started, otherwise the
// ValidationError, ErrCancelledSelection, ErrSessionActive or LaunchError
// that stopped it. done may be nil.
func (w *Workflow) Submit(ctx context.Context, done func(error)) {
	if done == nil {
		done = func(error) {}
	}
	st := w.State()
	switch st.Page {
	case PageEncode:
		w.submitEncode(ctx, st, done)
	case PageDecode:
		w.submitDecode(ctx, st, done)
	default:
		done(errors.NewValidationError("page", "no workflow page selected", errors.ErrUnknownMode))
	}
}

func (w *Workflow) submitEncode(ctx context.Context, st State, done func(error)) {
	if w.encode.View().State == session.Running {
		done(errors.ErrSessionActive)
		return
	}
	m, _ := w.methods.Lookup(st.Method)
	if m.Carrier && st.EncodeCarrier == "" || len(st.Payloads) == 0 {
		msg, sentinel := MsgNeedVideoFiles, errors.ErrNoCarrier
		if !m.Carrier {
			msg = MsgNeedFiles
		}
		if len(st.Payloads) == 0 {
			sentinel = errors.ErrNoPayload
		}
		w.encode.Notice(msg)
		done(errors.NewValidationError("encode", msg, sentinel))
		return
	}

	opts := SaveOptions{Title: "Save Output File As", DefaultName: m.OutputName}
	if m.OutputExt != "" {
		opts.Filter = &FileFilter{Name: extFilterName(m.OutputExt), Extensions: []string{m.OutputExt}}
	}
	w.dialogs.SaveFile(opts, func(path string) {
		if path == "" {
			w.encode.Notice(MsgSaveCancelled)
			done(errors.ErrCancelledSelection)
			return
		}
		req := engine.EncodeRequest(st.Method, st.EncodePassword, st.EncodeCarrier, st.Payloads, path)
		w.launch(ctx, w.encode, req, func(s *State) {
			s.EncodeOutput = path
			s.Fingerprint = ""
		}, done)
	})
}

func (w *Workflow) submitDecode(ctx context.Context, st State, done func(error)) {
	if w.decode.View().State == session.Running {
		done(errors.ErrSessionActive)
		return
	}
	if st.DecodeCarrier == "" {
		w.decode.Notice(MsgNeedVideoFolder)
		done(errors.NewValidationError("decode", MsgNeedVideoFolder, errors.ErrNoCarrier))
		return
	}
	start := func(dir string) {
		req := engine.DecodeRequest(st.Method, st.DecodePassword, st.DecodeCarrier, dir)
		w.launch(ctx, w.decode, req, func(s *State) { s.DecodeOutput = dir }, done)
	}
	if st.DecodeOutput != "" {
		start(st.DecodeOutput)
		return
	}
	w.dialogs.OpenFolder("Select Output Folder", func(dir string) {
		if dir == "" {
			w.decode.Notice(MsgFolderCancelled)
			done(errors.ErrCancelledSelection)
			return
		}
		start(dir)
	})
}

func (w *Workflow) launch(ctx context.Context, mgr *session.Manager, req engine.TaskRequest, record func(*State), done func(error)) {
	inv, err := w.builder.Build(req)
	if err != nil {
		var ve *errors.ValidationError
		if errors.As(err, &ve) {
			mgr.Notice("Error: " + ve.Message)
		}
		done(err)
		return
	}
	w.update(record)
	done(mgr.Submit(ctx, inv))
}

// finished runs when a job session ends. A completed encode gets its output
// fingerprinted.
func (w *Workflow) finished(p Page, v session.View) {
	if p == PageEncode && v.State == session.Completed {
		st := w.State()
		if st.EncodeOutput != "" {
			sum, err := digest.File(context.Background(), st.EncodeOutput)
			if err != nil {
				log.Warn("Could not fingerprint output", log.String("path", st.EncodeOutput), log.Err(err))
			} else {
				log.Info("Output fingerprinted", log.String("path", sum.Path), log.String("blake2b", sum.Hex))
				w.update(func(s *State) {
					if s.EncodeOutput == sum.Path {
						s.Fingerprint = sum.String()
					}
				})
			}
		}
	}
	if w.onFinish != nil {
		w.onFinish(p, v, w.State())
	}
}

func extFilterName(ext string) string {
	switch ext {
	case "avi":
		return "AVI Video"
	case "mp4":
		return "MP4 Video"
	}
	return ext
}
