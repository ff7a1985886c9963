package ui

import (
	"image/color"
	"math/rand"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"TraceBoard/internal/state"
)

var (
	doneColor    = color.NRGBA{A: 255}
	pendingColor = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 255}
	activeColor  = color.NRGBA{R: 0xff, G: 0x44, B: 0x44, A: 255}
	tracedColor  = color.NRGBA{B: 0xff, A: 255}
	cursorActive = color.NRGBA{R: 0x33, G: 0x33, B: 0xff, A: 255}
	cursorIdle   = color.NRGBA{R: 0x66, G: 0x66, B: 0xff, A: 255}
)

const (
	practiceStroke = 10 // in logical canvas units
	cursorTouching = 18
	cursorRadius   = 10
)

// PracticeWidget lets the user retrace pictures. Pointer positions are
// mapped into the tracker's square logical canvas.
type PracticeWidget struct {
	widget.BaseWidget
	tracker *state.Tracker
	frame   state.RenderState
	last    fyne.Position

	// OnPictureChange is called when practice moves to another picture or
	// starts over.
	OnPictureChange func(index, count int)
}

var _ fyne.Widget = (*PracticeWidget)(nil)
var _ fyne.Draggable = (*PracticeWidget)(nil)
var _ desktop.Mouseable = (*PracticeWidget)(nil)
var _ desktop.Hoverable = (*PracticeWidget)(nil)

func NewPracticeWidget(pictures []state.Picture, cfg state.TrackerConfig) *PracticeWidget {
	p := &PracticeWidget{}
	p.tracker = state.NewTracker(pictures, cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	p.tracker.OnRender = func(rs state.RenderState) {
		p.frame = rs
		p.Refresh()
	}
	p.tracker.OnPicture = func(_, next int, _ bool) {
		if p.OnPictureChange != nil {
			p.OnPictureChange(next, p.tracker.Session().Len())
		}
	}
	p.frame = p.tracker.Render()
	p.ExtendBaseWidget(p)
	return p
}

// SetPictures restarts practice on a new picture set.
func (p *PracticeWidget) SetPictures(pictures []state.Picture) {
	p.tracker.SetPictures(pictures)
}

// scale is the number of widget units per logical canvas unit.
func (p *PracticeWidget) scale() float32 {
	size := p.tracker.Session().Config().Size
	if size <= 0 {
		size = 1
	}
	s := p.Size()
	return min(s.Width, s.Height) / float32(size)
}

func (p *PracticeWidget) toLogical(pos fyne.Position) state.Point {
	k := p.scale()
	if k <= 0 {
		return state.Point{}
	}
	return state.Point{X: float64(pos.X / k), Y: float64(pos.Y / k)}
}

func (p *PracticeWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.last = e.Position
	p.tracker.Down(p.toLogical(e.Position))
}

func (p *PracticeWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.tracker.Up(p.toLogical(e.Position))
}

func (p *PracticeWidget) Dragged(e *fyne.DragEvent) {
	p.last = e.Position
	p.tracker.Move(p.toLogical(e.Position))
}

// DragEnd finishes touch drags, which have no mouse-up. After a mouse-up
// the tracker is no longer touching and this is a no-op.
func (p *PracticeWidget) DragEnd() {
	p.tracker.Up(p.toLogical(p.last))
}

func (p *PracticeWidget) MouseIn(*desktop.MouseEvent)    {}
func (p *PracticeWidget) MouseMoved(*desktop.MouseEvent) {}

// MouseOut interrupts the gesture when the pointer leaves the canvas.
func (p *PracticeWidget) MouseOut() {
	p.tracker.Cancel()
}

func (p *PracticeWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &practiceRenderer{practice: p}
	r.background = canvas.NewRectangle(color.White)
	r.background.StrokeColor = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 255}
	r.background.StrokeWidth = 1
	r.empty = canvas.NewText("no pictures", color.Black)
	r.empty.Alignment = fyne.TextAlignCenter
	r.rebuild()
	return r
}

type practiceRenderer struct {
	practice   *PracticeWidget
	background *canvas.Rectangle
	empty      *canvas.Text
	objects    []fyne.CanvasObject
}

func (r *practiceRenderer) rebuild() {
	p := r.practice
	frame := p.frame
	k := p.scale()

	objects := []fyne.CanvasObject{r.background}
	if frame.Empty {
		r.objects = append(objects, r.empty)
		return
	}

	for _, line := range frame.Done {
		objects = appendLine(objects, line, doneColor, k)
	}
	for _, line := range frame.Pending {
		objects = appendLine(objects, line, pendingColor, k)
	}
	objects = appendLine(objects, frame.Active, activeColor, k)
	objects = appendLine(objects, frame.Traced, tracedColor, k)

	radius, fill := float32(cursorRadius), cursorIdle
	if frame.Touching {
		radius, fill = cursorTouching, cursorActive
	}
	radius *= k
	c := canvas.NewCircle(fill)
	cx, cy := float32(frame.Cursor.X)*k, float32(frame.Cursor.Y)*k
	c.Position1 = fyne.NewPos(cx-radius, cy-radius)
	c.Position2 = fyne.NewPos(cx+radius, cy+radius)
	r.objects = append(objects, c)
}

// appendLine adds one canvas.Line per segment of line, scaled by k.
func appendLine(objects []fyne.CanvasObject, line state.Line, c color.Color, k float32) []fyne.CanvasObject {
	for i := 1; i < len(line); i++ {
		seg := canvas.NewLine(c)
		seg.StrokeWidth = practiceStroke * k
		seg.Position1 = fyne.NewPos(float32(line[i-1].X)*k, float32(line[i-1].Y)*k)
		seg.Position2 = fyne.NewPos(float32(line[i].X)*k, float32(line[i].Y)*k)
		objects = append(objects, seg)
	}
	return objects
}

func (r *practiceRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *practiceRenderer) Refresh() {
	r.Layout(r.practice.Size())
	canvas.Refresh(r.practice)
}

// Layout rebuilds the strokes too, since they are positioned in widget
// units.
func (r *practiceRenderer) Layout(size fyne.Size) {
	r.rebuild()
	side := min(size.Width, size.Height)
	r.background.Resize(fyne.NewSize(side, side))
	r.empty.Resize(fyne.NewSize(side, side))
}

func (r *practiceRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *practiceRenderer) Destroy() {}
