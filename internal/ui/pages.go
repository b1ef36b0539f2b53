package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"VideoVault/internal/app"
	"VideoVault/internal/log"
	"VideoVault/internal/session"
)

func (a *App) buildHome() fyne.CanvasObject {
	heading := widget.NewLabelWithStyle("VideoVault", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	heading.SizeName = theme.SizeNameHeadingText
	intro := widget.NewLabel("Hide files inside videos, or get them back out. Pick a method to begin.")
	intro.Wrapping = fyne.TextWrapWord

	cards := container.NewVBox()
	for _, m := range a.workflow.Methods() {
		name := m.Name
		about := "Builds a new video from your files."
		if m.Carrier {
			about = "Hides your files inside a video you choose."
		}
		encode := widget.NewButtonWithIcon("Encode", theme.UploadIcon(), func() { a.selectPage(app.PageEncode, name) })
		encode.Importance = widget.HighImportance
		decode := widget.NewButtonWithIcon("Decode", theme.DownloadIcon(), func() { a.selectPage(app.PageDecode, name) })
		cards.Add(widget.NewCard(methodTitle(name), about, container.NewGridWithColumns(2, encode, decode)))
	}

	footer := widget.NewLabelWithStyle(a.Version, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	return container.NewBorder(container.NewVBox(heading, intro), footer, nil, nil, container.NewVScroll(cards))
}

func (a *App) selectPage(p app.Page, method string) {
	var err error
	if p == app.PageDecode {
		err = a.workflow.SelectDecode(method)
	} else {
		err = a.workflow.SelectEncode(method)
	}
	if err != nil {
		log.Error("Page not opened", log.String("method", method), log.Err(err))
	}
}

func (a *App) buildEncode() fyne.CanvasObject {
	carrier := a.carrierRow("Select Video")
	carrierRow := container.NewVBox(carrier)
	a.state.ShowCarrier.AddListener(visibleWhen(a.state.ShowCarrier, carrierRow))

	payloads := widget.NewListWithData(a.state.Payloads,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(item binding.DataItem, o fyne.CanvasObject) {
			o.(*widget.Label).Bind(item.(binding.String))
		})
	addFiles := widget.NewButtonWithIcon("Add Files", theme.ContentAddIcon(), a.workflow.ChoosePayloads)
	payloadBox := container.NewBorder(
		container.NewBorder(nil, nil, widget.NewLabel("Files to hide:"), addFiles),
		nil, nil, nil, payloads)

	a.encodePassword = NewPasswordEntry()
	a.encodePassword.SetPlaceHolder("Password (optional)")
	a.encodePassword.OnChanged = a.workflow.SetPassword
	a.strength = NewPasswordStrengthIndicator()
	suggest := NewTooltipButton("Suggest", "Ask the assistant for a strong password", func() {
		go func() { _, _ = a.workflow.SuggestPassword(a.ctx) }()
	})
	a.state.SuggestBusy.AddListener(enabledUnless(a.state.SuggestBusy, suggest))
	password := container.NewBorder(nil, nil, nil,
		container.NewHBox(a.strength, a.visibilityToggle(a.encodePassword), suggest),
		a.encodePassword)

	assistError := widget.NewLabelWithData(a.state.AssistError)
	assistError.Wrapping = fyne.TextWrapWord
	assistError.Importance = widget.DangerImportance

	fingerprint := widget.NewLabelWithData(a.state.Fingerprint)
	fingerprint.Wrapping = fyne.TextWrapBreak
	fingerprint.TextStyle = fyne.TextStyle{Monospace: true}

	top := container.NewVBox(
		a.titleLabel(),
		carrierRow,
		widget.NewSeparator(),
	)
	bottom := container.NewVBox(
		widget.NewSeparator(),
		widget.NewLabel("Password:"),
		password,
		assistError,
		a.jobControls(a.encode, "Start Encoding"),
		fingerprint,
	)
	return container.NewBorder(top, bottom, nil, nil, payloadBox)
}

func (a *App) buildDecode() fyne.CanvasObject {
	output := widget.NewLabelWithData(a.state.OutputLabel)
	output.Truncation = fyne.TextTruncateEllipsis
	outputRow := container.NewBorder(nil, nil, nil,
		widget.NewButtonWithIcon("Select Output Folder", theme.FolderOpenIcon(), a.workflow.ChooseDecodeOutput),
		output)

	a.decodePassword = NewPasswordEntry()
	a.decodePassword.SetPlaceHolder("Password (if one was used)")
	a.decodePassword.OnChanged = a.workflow.SetPassword
	password := container.NewBorder(nil, nil, nil, a.visibilityToggle(a.decodePassword), a.decodePassword)

	peek := NewTooltipButton("Peek", "Ask the assistant what this video appears to contain", func() {
		go func() { _, _ = a.workflow.Peek(a.ctx) }()
	})
	a.state.PeekBusy.AddListener(enabledUnless(a.state.PeekBusy, peek))
	manifest := widget.NewLabelWithData(a.state.Manifest)
	manifest.Wrapping = fyne.TextWrapWord
	manifestCard := widget.NewCard("", "Assistant", manifest)
	a.state.ShowManifest.AddListener(visibleWhen(a.state.ShowManifest, manifestCard))

	assistError := widget.NewLabelWithData(a.state.AssistError)
	assistError.Wrapping = fyne.TextWrapWord
	assistError.Importance = widget.DangerImportance

	return container.NewVBox(
		a.titleLabel(),
		a.carrierRow("Select Video"),
		container.NewHBox(peek),
		manifestCard,
		assistError,
		widget.NewSeparator(),
		widget.NewLabel("Extract to:"),
		outputRow,
		widget.NewLabel("Password:"),
		password,
		a.jobControls(a.decode, "Start Decoding"),
	)
}

func (a *App) titleLabel() fyne.CanvasObject {
	title := widget.NewLabelWithData(a.state.Title)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.SizeName = theme.SizeNameSubHeadingText
	return title
}

func (a *App) carrierRow(label string) fyne.CanvasObject {
	name := widget.NewLabelWithData(a.state.CarrierLabel)
	name.Truncation = fyne.TextTruncateEllipsis
	return container.NewBorder(nil, nil, nil,
		widget.NewButtonWithIcon(label, theme.MediaVideoIcon(), a.workflow.ChooseCarrier),
		name)
}

func (a *App) visibilityToggle(e *PasswordEntry) *widget.Button {
	var b *widget.Button
	b = widget.NewButtonWithIcon("", theme.VisibilityIcon(), func() {
		e.SetHidden(!e.IsHidden())
		if e.IsHidden() {
			b.SetIcon(theme.VisibilityIcon())
		} else {
			b.SetIcon(theme.VisibilityOffIcon())
		}
	})
	return b
}

// jobControls is the progress bar, status line and buttons of a job page.
func (a *App) jobControls(v jobView, startLabel string) fyne.CanvasObject {
	bar := widget.NewProgressBarWithData(v.bound.Progress)
	bar.TextFormatter = func() string {
		s, _ := v.bound.ProgressInfo.Get()
		return s
	}

	start := widget.NewButtonWithIcon(startLabel, theme.MediaPlayIcon(), a.submit)
	start.Importance = widget.HighImportance
	v.bound.SubmitEnabled.AddListener(enabledWhen(v.bound.SubmitEnabled, start))

	reset := widget.NewButtonWithIcon("Reset", theme.ContentClearIcon(), a.workflow.Reset)
	back := widget.NewButtonWithIcon("Back", theme.NavigateBackIcon(), a.workflow.Back)

	return container.NewVBox(
		start,
		bar,
		v.status,
		container.NewGridWithColumns(2, back, reset),
	)
}

// statusListener recolors the status line: red for engine errors, green on
// completion, amber for cancelled prompts.
func statusListener(b *app.BoundProgress, l *ColoredLabel) binding.DataListener {
	return binding.NewDataListener(func() {
		text, _ := b.Status.Get()
		l.SetText(text)
		l.SetColor(statusColor(text))
	})
}

func statusColor(text string) color.Color {
	switch {
	case strings.HasPrefix(strings.ToUpper(text), "ERROR"):
		return theme.Color(theme.ColorNameError)
	case text == session.CompletedMessage:
		return theme.Color(theme.ColorNameSuccess)
	case strings.HasSuffix(text, "cancelled."):
		return theme.Color(theme.ColorNameWarning)
	}
	return theme.Color(theme.ColorNameForeground)
}

func enabledWhen(b binding.Bool, w fyne.Disableable) binding.DataListener {
	return binding.NewDataListener(func() {
		if on, _ := b.Get(); on {
			w.Enable()
		} else {
			w.Disable()
		}
	})
}

func enabledUnless(b binding.Bool, w fyne.Disableable) binding.DataListener {
	return binding.NewDataListener(func() {
		if busy, _ := b.Get(); busy {
			w.Disable()
		} else {
			w.Enable()
		}
	})
}

func visibleWhen(b binding.Bool, o fyne.CanvasObject) binding.DataListener {
	return binding.NewDataListener(func() {
		if on, _ := b.Get(); on {
			o.Show()
		} else {
			o.Hide()
		}
	})
}

// methodTitle turns "datareel" into "Datareel".
func methodTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
