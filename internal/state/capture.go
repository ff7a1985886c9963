package state

// Recorder captures freehand strokes for one picture being edited.
// Coordinates are whatever the caller feeds it; the edit canvas feeds
// normalized ones.
type Recorder struct {
	lines   []Line
	drawing Line
	active  bool
}

// Load starts editing a copy of lines.
func (r *Recorder) Load(lines []Line) {
	r.lines = cloneLines(lines)
	r.drawing = nil
	r.active = false
}

// Down starts a stroke. It is ignored while a stroke is in progress.
func (r *Recorder) Down(p Point) {
	if r.active {
		return
	}
	r.active = true
	r.drawing = Line{p}
}

// Move extends the stroke in progress and reports whether it grew.
func (r *Recorder) Move(p Point) bool {
	if !r.active {
		return false
	}
	n := len(r.drawing)
	r.drawing = AppendPoint(r.drawing, p)
	return len(r.drawing) != n
}

// Up finishes the stroke in progress at p and commits it.
func (r *Recorder) Up(p Point) {
	if !r.active {
		return
	}
	r.lines = append(r.lines, AppendPoint(r.drawing, p))
	r.drawing = nil
	r.active = false
}

// Cancel drops the stroke in progress.
func (r *Recorder) Cancel() {
	r.drawing = nil
	r.active = false
}

// Undo removes the most recently committed stroke.
func (r *Recorder) Undo() {
	if len(r.lines) > 0 {
		r.lines = r.lines[:len(r.lines)-1]
	}
}

func (r *Recorder) Clear() {
	r.lines = nil
}

func (r *Recorder) Drawing() Line { return r.drawing }

func (r *Recorder) IsDrawing() bool { return r.active }

// Lines returns a copy of the committed strokes.
func (r *Recorder) Lines() []Line {
	return cloneLines(r.lines)
}
