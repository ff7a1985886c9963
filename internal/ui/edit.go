package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"TraceBoard/internal/state"
)

const editStroke = 10

// EditWidget is the drawing canvas of the edit view. It records strokes in
// normalized coordinates: (0,0) top-left, (1,1) bottom-right.
type EditWidget struct {
	widget.BaseWidget
	rec  state.Recorder
	last fyne.Position
}

var _ fyne.Widget = (*EditWidget)(nil)
var _ fyne.Draggable = (*EditWidget)(nil)
var _ desktop.Mouseable = (*EditWidget)(nil)

func NewEditWidget() *EditWidget {
	e := &EditWidget{}
	e.ExtendBaseWidget(e)
	return e
}

func (e *EditWidget) side() float32 {
	s := e.Size()
	return min(s.Width, s.Height)
}

func (e *EditWidget) toNormalized(pos fyne.Position) state.Point {
	side := e.side()
	if side <= 0 {
		return state.Point{}
	}
	return state.Point{X: float64(pos.X / side), Y: float64(pos.Y / side)}
}

func (e *EditWidget) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	e.last = ev.Position
	e.rec.Down(e.toNormalized(ev.Position))
	e.Refresh()
}

func (e *EditWidget) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || !e.rec.IsDrawing() {
		return
	}
	e.rec.Up(e.toNormalized(ev.Position))
	e.Refresh()
}

func (e *EditWidget) Dragged(ev *fyne.DragEvent) {
	e.last = ev.Position
	if e.rec.Move(e.toNormalized(ev.Position)) {
		e.Refresh()
	}
}

func (e *EditWidget) DragEnd() {
	if !e.rec.IsDrawing() {
		return
	}
	e.rec.Up(e.toNormalized(e.last))
	e.Refresh()
}

func (e *EditWidget) Undo() {
	e.rec.Undo()
	e.Refresh()
}

func (e *EditWidget) Clear() {
	e.rec.Clear()
	e.Refresh()
}

// Load replaces the canvas content with lines.
func (e *EditWidget) Load(lines []state.Line) {
	e.rec.Load(lines)
	e.Refresh()
}

func (e *EditWidget) Lines() []state.Line { return e.rec.Lines() }

func (e *EditWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &editRenderer{edit: e}
	r.background = canvas.NewRectangle(color.White)
	r.background.StrokeColor = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 255}
	r.background.StrokeWidth = 1
	r.rebuild()
	return r
}

type editRenderer struct {
	edit       *EditWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *editRenderer) rebuild() {
	side := r.edit.side()
	objects := []fyne.CanvasObject{r.background}
	for _, line := range r.edit.rec.Lines() {
		objects = appendLine(objects, line, doneColor, side)
	}
	objects = appendLine(objects, r.edit.rec.Drawing(), doneColor, side)
	for _, o := range objects[1:] {
		o.(*canvas.Line).StrokeWidth = editStroke
	}
	r.objects = objects
}

func (r *editRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *editRenderer) Refresh() {
	r.Layout(r.edit.Size())
	canvas.Refresh(r.edit)
}

func (r *editRenderer) Layout(size fyne.Size) {
	r.rebuild()
	side := min(size.Width, size.Height)
	r.background.Resize(fyne.NewSize(side, side))
}

func (r *editRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *editRenderer) Destroy() {}

// EditView is the edit screen: thumbnails of the library, the drawing
// canvas and the undo / clear / done buttons.
type EditView struct {
	lib      *state.Library
	canvas   *EditWidget
	previews *fyne.Container
	editing  string // ID of the picture being edited, "" for a new one

	// OnStatus reports user-visible results.
	OnStatus func(string)

	content fyne.CanvasObject
}

func NewEditView(lib *state.Library) *EditView {
	v := &EditView{lib: lib, canvas: NewEditWidget()}
	v.previews = container.NewHBox()

	buttons := container.NewHBox(
		widget.NewButtonWithIcon("undo", theme.ContentUndoIcon(), v.canvas.Undo),
		widget.NewButtonWithIcon("clear", theme.ContentClearIcon(), v.canvas.Clear),
		widget.NewButtonWithIcon("done", theme.ConfirmIcon(), v.Done),
	)
	v.content = container.NewBorder(container.NewHScroll(v.previews), buttons, nil, nil, v.canvas)
	v.Reload()
	return v
}

func (v *EditView) Content() fyne.CanvasObject { return v.content }

// Reload rebuilds the thumbnails from the library. If the picture being
// edited was deleted on another board, the canvas is kept as a new picture.
func (v *EditView) Reload() {
	pictures := v.lib.Pictures()
	found := false
	objects := make([]fyne.CanvasObject, 0, len(pictures))
	for i, pic := range pictures {
		i := i
		selected := v.editing != "" && pic.ID == v.editing
		found = found || selected
		objects = append(objects, newPreview(pic, selected, func() { v.StartEditing(i) }))
	}
	if v.editing != "" && !found {
		v.editing = ""
		v.status("Picture was removed elsewhere; done will add it again")
	}
	v.previews.Objects = objects
	v.previews.Refresh()
}

// StartEditing loads library picture i onto the canvas.
func (v *EditView) StartEditing(i int) {
	pictures := v.lib.Pictures()
	if i < 0 || i >= len(pictures) {
		return
	}
	v.editing = pictures[i].ID
	v.canvas.Load(pictures[i].Lines)
	v.Reload()
}

// Done stores the canvas in the library: a new picture, or a replacement
// for the one being edited. Finishing an edited picture with no strokes
// deletes it.
func (v *EditView) Done() {
	lines := v.canvas.Lines()
	switch {
	case v.editing == "" && len(lines) == 0:
		return
	case v.editing == "":
		v.lib.Add(lines)
		v.status("Picture added")
	case len(lines) == 0:
		v.lib.Remove(v.editing)
		v.status("Picture deleted")
	case v.lib.Replace(v.editing, lines):
		v.status("Picture updated")
	default:
		// Deleted elsewhere since the last reload.
		v.lib.Add(lines)
		v.status("Picture added")
	}
	v.editing = ""
	v.canvas.Load(nil)
	v.Reload()
}

func (v *EditView) status(text string) {
	if v.OnStatus != nil {
		v.OnStatus(text)
	}
}
