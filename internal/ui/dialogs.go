package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"VideoVault/internal/app"
	"VideoVault/internal/log"
)

var _ app.Dialogs = (*fyneDialogs)(nil)

// fileDialogSize is large enough to show full paths in the fyne picker.
var fileDialogSize = fyne.NewSize(600, 450)

// fyneDialogs implements app.Dialogs with fyne's built-in pickers. They are
// single-select, so OpenFiles reports at most one path per prompt.
type fyneDialogs struct {
	win fyne.Window
}

func (d *fyneDialogs) OpenFiles(opts app.OpenOptions, done func([]string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			log.Warn("Open dialog failed", log.String("title", opts.Title), log.Err(err))
			done(nil)
			return
		}
		if reader == nil {
			done(nil)
			return
		}
		defer reader.Close()
		done([]string{reader.URI().Path()})
	}, d.win)
	if opts.Filter != nil {
		fd.SetFilter(storage.NewExtensionFileFilter(dotted(opts.Filter.Extensions)))
	}
	fd.SetConfirmText("Select")
	d.show(fd)
}

func (d *fyneDialogs) OpenFolder(title string, done func(string)) {
	fd := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			log.Warn("Folder dialog failed", log.String("title", title), log.Err(err))
			done("")
			return
		}
		if dir == nil {
			done("")
			return
		}
		done(dir.Path())
	}, d.win)
	d.show(fd)
}

func (d *fyneDialogs) SaveFile(opts app.SaveOptions, done func(string)) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			log.Warn("Save dialog failed", log.String("title", opts.Title), log.Err(err))
			done("")
			return
		}
		if writer == nil {
			done("")
			return
		}
		// Only the path is needed; the engine writes the file.
		writer.Close()
		done(writer.URI().Path())
	}, d.win)
	fd.SetFileName(opts.DefaultName)
	if opts.Filter != nil {
		fd.SetFilter(storage.NewExtensionFileFilter(dotted(opts.Filter.Extensions)))
	}
	d.show(fd)
}

func (d *fyneDialogs) show(fd *dialog.FileDialog) {
	fd.Resize(fileDialogSize)
	fd.Show()
}

// dotted turns "mp4" into ".mp4" for fyne's extension filter.
func dotted(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
