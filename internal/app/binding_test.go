package app

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"VideoVault/internal/engine"
)

func TestBoundProgressSync(t *testing.T) {
	test.NewTempApp(t)

	r := NewReporter(nil)
	r.SetProgress(42)
	r.SetStatus("Embedding frame 10/20")
	r.SetSubmitEnabled(false)

	b := NewBoundProgress()
	b.SyncFromReporter(r)

	if v, _ := b.Progress.Get(); v != 0.42 {
		t.Errorf("Progress = %v; want 0.42", v)
	}
	if v, _ := b.ProgressInfo.Get(); v != "42%" {
		t.Errorf("ProgressInfo = %q", v)
	}
	if v, _ := b.Status.Get(); v != "Embedding frame 10/20" {
		t.Errorf("Status = %q", v)
	}
	if v, _ := b.SubmitEnabled.Get(); v {
		t.Error("SubmitEnabled should be false")
	}
}

func TestBoundStateSync(t *testing.T) {
	test.NewTempApp(t)

	s := State{
		Page:          PageEncode,
		Method:        "datareel",
		EncodeCarrier: "/v/clip.mp4",
		Payloads:      []string{"/f/a.txt", "/f/b.txt"},
		Manifest:      "notes.txt",
		PeekBusy:      true,
	}
	b := NewBoundState()
	b.SyncFromState(s, engine.DefaultMethods())

	if v, _ := b.Title.Get(); v != "Encode: Datareel Method" {
		t.Errorf("Title = %q", v)
	}
	if v, _ := b.CarrierLabel.Get(); v != "clip.mp4" {
		t.Errorf("CarrierLabel = %q", v)
	}
	if v, _ := b.Payloads.Get(); len(v) != 2 || v[0] != "a.txt" {
		t.Errorf("Payloads = %v", v)
	}
	if v, _ := b.ShowCarrier.Get(); v {
		t.Error("datareel hides the carrier control")
	}
	if v, _ := b.ShowManifest.Get(); !v {
		t.Error("manifest should be shown")
	}
	if v, _ := b.PeekBusy.Get(); !v {
		t.Error("PeekBusy should be true")
	}
}
