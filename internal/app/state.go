// Package app holds the VideoVault workflow: which page is open, what the
// user has selected on it, and how a submission turns into an engine job.
//
// State is a plain value. The Workflow owns the live copy behind a mutex and
// hands out clones, so the state machine can be driven and inspected without
// a GUI. Progress of running jobs flows through session.Manager into a
// Reporter; data bindings for fyne widgets live in binding.go.
package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Picocrypt/zxcvbn-go"

	"VideoVault/internal/engine"
	"VideoVault/internal/util"
)

// Version is the application version string.
const Version = "v1.0.0"

// User-visible status texts.
const (
	MsgStartEncode     = "Starting encoding..."
	MsgStartDecode     = "Starting decoding..."
	MsgSaveCancelled   = "Save cancelled."
	MsgFolderCancelled = "Output folder selection cancelled."
	MsgNeedVideoFiles  = "Error: Please select a video and files to hide."
	MsgNeedFiles       = "Error: Please select files to hide."
	MsgNeedVideoFolder = "Error: Please select a video and an output folder."
	MsgAnalyzing       = "Analyzing... please wait."
	MsgPeekNeedsVideo  = "Please select a video file first."
	MsgNoVideo         = "No video selected."
	MsgNoFolder        = "No folder selected."
)

// Page is a workflow screen.
type Page int

const (
	PageHome Page = iota
	PageEncode
	PageDecode
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageEncode:
		return "encode"
	case PageDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// State is everything the user has selected. Zero value is the Home page.
type State struct {
	Page   Page   `json:"page"`
	Method string `json:"method,omitempty"`

	// Encode page
	EncodeCarrier  string   `json:"encode_carrier,omitempty"`
	Payloads       []string `json:"payloads,omitempty"`
	EncodePassword string   `json:"encode_password,omitempty"`
	Strength       int      `json:"strength"` // zxcvbn score 0-4 of EncodePassword
	EncodeOutput   string   `json:"encode_output,omitempty"`
	Fingerprint    string   `json:"fingerprint,omitempty"`

	// Decode page
	DecodeCarrier  string `json:"decode_carrier,omitempty"`
	DecodeOutput   string `json:"decode_output,omitempty"`
	DecodePassword string `json:"decode_password,omitempty"`

	// Assistant controls. Busy flags survive a reset so a control is always
	// re-enabled by the request that disabled it.
	SuggestBusy bool   `json:"suggest_busy"`
	PeekBusy    bool   `json:"peek_busy"`
	Manifest    string `json:"manifest,omitempty"`
	AssistError string `json:"assist_error,omitempty"`
}

// NewState returns the initial Home state.
func NewState() State {
	return State{Page: PageHome}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.Payloads = append([]string(nil), s.Payloads...)
	if len(s.Payloads) == 0 {
		s.Payloads = nil
	}
	return s
}

// cleared returns s with every selection dropped, keeping page, method and
// assistant busy flags.
func (s State) cleared() State {
	return State{
		Page:        s.Page,
		Method:      s.Method,
		SuggestBusy: s.SuggestBusy,
		PeekBusy:    s.PeekBusy,
	}
}

// Carrier is the carrier selected on the current page.
func (s State) Carrier() string {
	if s.Page == PageDecode {
		return s.DecodeCarrier
	}
	return s.EncodeCarrier
}

// Password is the password entered on the current page.
func (s State) Password() string {
	if s.Page == PageDecode {
		return s.DecodePassword
	}
	return s.EncodePassword
}

// Title is the page heading, e.g. "Encode: Steganography Method".
func (s State) Title() string {
	name := s.Method
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	switch s.Page {
	case PageEncode:
		return "Encode: " + name + " Method"
	case PageDecode:
		return "Decode: " + name + " Method"
	}
	return "VideoVault"
}

// ShowCarrier reports whether the current page needs a carrier control.
func (s State) ShowCarrier(methods engine.Methods) bool {
	if s.Page == PageDecode {
		return true
	}
	return methods.RequiresCarrier(s.Method)
}

// CarrierLabel is the base name of the current carrier.
func (s State) CarrierLabel() string {
	if c := s.Carrier(); c != "" {
		return filepath.Base(c)
	}
	return MsgNoVideo
}

// OutputLabel is the chosen decode folder.
func (s State) OutputLabel() string {
	if s.DecodeOutput != "" {
		return s.DecodeOutput
	}
	return MsgNoFolder
}

// PayloadLabels lists payloads by base name with their size when readable.
func (s State) PayloadLabels() []string {
	labels := make([]string, 0, len(s.Payloads))
	for _, p := range s.Payloads {
		labels = append(labels, PayloadLabel(p))
	}
	return labels
}

// PayloadLabel renders one payload path for display.
func PayloadLabel(path string) string {
	name := filepath.Base(path)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return name + " (" + util.Sizeify(info.Size()) + ")"
	}
	return name
}

// PasswordStrength scores a password 0-4 with zxcvbn. Empty scores 0.
func PasswordStrength(password string) int {
	if password == "" {
		return 0
	}
	return zxcvbn.PasswordStrength(password, nil).Score
}
