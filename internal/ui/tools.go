package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewToolbar builds the bar above the board: mode switch and file actions.
func NewToolbar(b *Board) fyne.CanvasObject {
	mode := widget.NewButtonWithIcon("Edit", theme.DocumentCreateIcon(), nil)
	mode.OnTapped = func() {
		b.ToggleEditing()
		if b.Editing() {
			mode.SetText("Practice")
			mode.SetIcon(theme.MediaPlayIcon())
		} else {
			mode.SetText("Edit")
			mode.SetIcon(theme.DocumentCreateIcon())
		}
	}

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), b.SaveDialog),
		widget.NewToolbarAction(theme.FolderOpenIcon(), b.LoadDialog),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), b.ExportDialog),
	)

	return container.NewHBox(
		widget.NewLabel("Trace practice"),
		mode,
		widget.NewSeparator(),
		tb,
		layout.NewSpacer(),
	)
}
