package app

import (
	"strings"

	"fyne.io/fyne/v2/data/binding"

	"VideoVault/internal/engine"
)

// BoundProgress provides Fyne data bindings for one page's progress display.
type BoundProgress struct {
	// Progress bar value (0.0 to 1.0)
	Progress binding.Float

	// Percentage label, e.g. "42%"
	ProgressInfo binding.String

	// Status line under the bar
	Status binding.String

	// Whether the page's start button is enabled
	SubmitEnabled binding.Bool
}

// NewBoundProgress creates a new BoundProgress with default values.
func NewBoundProgress() *BoundProgress {
	b := &BoundProgress{
		Progress:      binding.NewFloat(),
		ProgressInfo:  binding.NewString(),
		Status:        binding.NewString(),
		SubmitEnabled: binding.NewBool(),
	}
	_ = b.SubmitEnabled.Set(true)
	return b
}

// SyncFromReporter copies a Reporter's display into the bindings.
func (b *BoundProgress) SyncFromReporter(r *Reporter) {
	percent, info := r.Progress()
	_ = b.Progress.Set(float64(percent) / 100)
	_ = b.ProgressInfo.Set(info)
	_ = b.Status.Set(r.Status())
	_ = b.SubmitEnabled.Set(r.SubmitEnabled())
}

// BoundState provides Fyne data bindings for the workflow selections.
type BoundState struct {
	Title        binding.String
	CarrierLabel binding.String
	OutputLabel  binding.String
	Payloads     binding.StringList
	Strength     binding.Int
	Fingerprint  binding.String
	Manifest     binding.String
	AssistError  binding.String
	SuggestBusy  binding.Bool
	PeekBusy     binding.Bool
	ShowCarrier  binding.Bool
	ShowManifest binding.Bool
}

// NewBoundState creates a new BoundState with all bindings initialized.
func NewBoundState() *BoundState {
	return &BoundState{
		Title:        binding.NewString(),
		CarrierLabel: binding.NewString(),
		OutputLabel:  binding.NewString(),
		Payloads:     binding.NewStringList(),
		Strength:     binding.NewInt(),
		Fingerprint:  binding.NewString(),
		Manifest:     binding.NewString(),
		AssistError:  binding.NewString(),
		SuggestBusy:  binding.NewBool(),
		PeekBusy:     binding.NewBool(),
		ShowCarrier:  binding.NewBool(),
		ShowManifest: binding.NewBool(),
	}
}

// SyncFromState copies a State snapshot into the bindings.
// Password fields are not bound; the entries own their text.
func (b *BoundState) SyncFromState(s State, methods engine.Methods) {
	_ = b.Title.Set(s.Title())
	_ = b.CarrierLabel.Set(s.CarrierLabel())
	_ = b.OutputLabel.Set(s.OutputLabel())
	_ = b.Payloads.Set(s.PayloadLabels())
	_ = b.Strength.Set(s.Strength)
	_ = b.Fingerprint.Set(s.Fingerprint)
	_ = b.Manifest.Set(s.Manifest)
	_ = b.AssistError.Set(s.AssistError)
	_ = b.SuggestBusy.Set(s.SuggestBusy)
	_ = b.PeekBusy.Set(s.PeekBusy)
	_ = b.ShowCarrier.Set(s.ShowCarrier(methods))
	_ = b.ShowManifest.Set(strings.TrimSpace(s.Manifest) != "")
}
