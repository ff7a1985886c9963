package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"TraceBoard/internal/state"
)

// Board is the main window: a practice view and an edit view over one
// picture library.
type Board struct {
	app      fyne.App
	win      fyne.Window
	lib      *state.Library
	practice *PracticeWidget
	edit     *EditView
	views    *fyne.Container
	status   *widget.Label
	editing  bool
}

func NewBoard(lib *state.Library, cfg state.TrackerConfig) *Board {
	b := &Board{lib: lib, status: widget.NewLabel("Ready")}
	b.app = app.NewWithID("io.traceboard")
	b.win = b.app.NewWindow("TraceBoard")
	b.win.Resize(fyne.NewSize(720, 820))

	b.practice = NewPracticeWidget(lib.Pictures(), cfg)
	b.practice.OnPictureChange = func(index, count int) {
		b.SetStatus(pictureStatus(index, count))
	}
	b.edit = NewEditView(lib)
	b.edit.OnStatus = b.SetStatus

	b.views = container.NewStack(b.practice)
	content := container.NewBorder(NewToolbar(b), b.status, nil, nil, b.views)
	b.win.SetContent(content)
	return b
}

func pictureStatus(index, count int) string {
	if count == 0 || index < 0 {
		return "No pictures yet: draw some in edit mode"
	}
	return fmt.Sprintf("Picture %d of %d", index+1, count)
}

func (b *Board) Editing() bool { return b.editing }

// ToggleEditing switches between the practice and edit views.
func (b *Board) ToggleEditing() {
	b.editing = !b.editing
	if b.editing {
		b.views.Objects = []fyne.CanvasObject{b.edit.Content()}
	} else {
		b.views.Objects = []fyne.CanvasObject{b.practice}
	}
	b.views.Refresh()
}

// LibraryChanged refreshes both views after the library changed locally or
// through a peer. Safe to call from any goroutine.
func (b *Board) LibraryChanged() {
	fyne.Do(func() {
		b.practice.SetPictures(b.lib.Pictures())
		b.edit.Reload()
	})
}

// SetStatus shows text in the status bar. Safe to call from any goroutine.
func (b *Board) SetStatus(text string) {
	fyne.Do(func() {
		b.status.SetText(text)
	})
}

// Run shows the window and blocks until it is closed. shareLink, when set,
// is shown so other boards can join.
func (b *Board) Run(shareLink string) {
	if shareLink != "" {
		b.SetStatus("Share link: " + shareLink)
	}
	b.win.ShowAndRun()
}
