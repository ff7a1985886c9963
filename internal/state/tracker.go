package state

import "log"

type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	}
	return "unknown"
}

// Event is one pointer sample in the tracker's logical coordinate space.
type Event struct {
	Kind  EventKind
	Point Point
}

// TrackerConfig tunes the path tracker.
type TrackerConfig struct {
	// Threshold is the maximum pointer-to-path distance that still counts
	// as on track.
	Threshold float64
	// Lookahead is how many segments past the current one a single move
	// event may search.
	Lookahead int
	// Size scales normalized pictures into the logical canvas. Values <= 0
	// leave coordinates as given.
	Size float64
}

func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{Threshold: 40, Lookahead: 6, Size: 500}
}

// TrackerState is the position of one practice session.
type TrackerState struct {
	PictureIndex int
	LineIndex    int
	PointIndex   int
	CurrentPoint Point
	Touching     bool
}

// Transition describes the observable effects of one Step.
type Transition struct {
	Redraw         bool
	StrokeDone     bool
	PictureChanged bool
	// Restarted is set when the only picture was completed and practice
	// starts over on it.
	Restarted bool
}

// Session holds the immutable inputs of a practice session: the scaled
// pictures, the configuration and the random source used when a picture is
// completed.
type Session struct {
	pictures []Picture
	cfg      TrackerConfig
	rnd      Rand
}

// NewSession copies pictures, scaled by cfg.Size.
func NewSession(pictures []Picture, cfg TrackerConfig, r Rand) *Session {
	if cfg.Lookahead < 0 {
		cfg.Lookahead = 0
	}
	factor := cfg.Size
	if factor <= 0 {
		factor = 1
	}
	scaled := make([]Picture, len(pictures))
	for i, p := range pictures {
		scaled[i] = p.Scale(factor)
	}
	return &Session{pictures: scaled, cfg: cfg, rnd: r}
}

func (s *Session) Empty() bool { return len(s.pictures) == 0 }

func (s *Session) Len() int { return len(s.pictures) }

func (s *Session) Config() TrackerConfig { return s.cfg }

// Picture returns the scaled picture at i.
func (s *Session) Picture(i int) Picture { return s.pictures[i] }

// Start picks a random picture and positions the cursor on its first point.
func (s *Session) Start() TrackerState {
	if s.Empty() {
		return TrackerState{PictureIndex: -1}
	}
	i := PickPictureIndex(s.rnd, len(s.pictures), -1)
	return TrackerState{PictureIndex: i, CurrentPoint: s.pictures[i].Start()}
}

// Step applies ev to st and returns the new state. st is not modified.
func (s *Session) Step(st TrackerState, ev Event) (TrackerState, Transition) {
	if s.Empty() {
		return st, Transition{}
	}
	switch ev.Kind {
	case PointerDown:
		return s.down(st, ev.Point)
	case PointerMove:
		return s.move(st, ev.Point)
	case PointerUp:
		return s.up(st)
	case PointerCancel:
		if !st.Touching {
			return st, Transition{}
		}
		st.Touching = false
		return st, Transition{Redraw: true}
	}
	return st, Transition{}
}

func (s *Session) down(st TrackerState, p Point) (TrackerState, Transition) {
	if !Within(p, st.CurrentPoint, s.cfg.Threshold) {
		return st, Transition{}
	}
	changed := !st.Touching
	st.Touching = true
	return st, Transition{Redraw: changed}
}

func (s *Session) move(st TrackerState, p Point) (TrackerState, Transition) {
	if !st.Touching {
		return st, Transition{}
	}
	line := s.line(st)
	if len(line) < 2 {
		return st, Transition{}
	}

	seg, nearest, dist, ok := s.nearest(line, st.PointIndex, p)
	if !ok || dist >= s.cfg.Threshold {
		st.Touching = false
		st.PointIndex = 0
		st.CurrentPoint = line[0]
		return st, Transition{Redraw: true}
	}

	changed := seg != st.PointIndex || nearest != st.CurrentPoint
	st.PointIndex = seg
	st.CurrentPoint = nearest
	return st, Transition{Redraw: changed}
}

// nearest searches the segments from..from+Lookahead of line for the
// projection of p closest to p. Ties keep the earlier segment.
func (s *Session) nearest(line Line, from int, p Point) (seg int, nearest Point, dist float64, ok bool) {
	last := len(line) - 2
	end := min(from+s.cfg.Lookahead, last)
	for i := from; i <= end; i++ {
		d, q := DistanceToSegment(p, line[i], line[i+1])
		if !ok || d < dist {
			seg, nearest, dist, ok = i, q, d, true
		}
	}
	return seg, nearest, dist, ok
}

func (s *Session) up(st TrackerState) (TrackerState, Transition) {
	if !st.Touching {
		return st, Transition{}
	}
	st.Touching = false
	tr := Transition{Redraw: true}

	pic := s.pictures[st.PictureIndex]
	if !s.strokeComplete(pic, st) {
		return st, tr
	}
	tr.StrokeDone = true
	st.PointIndex = 0
	st.LineIndex++

	if st.LineIndex < len(pic.Lines) {
		st.CurrentPoint = pic.lineStart(st.LineIndex)
		return st, tr
	}

	st.LineIndex = 0
	if len(s.pictures) > 1 {
		st.PictureIndex = PickPictureIndex(s.rnd, len(s.pictures), st.PictureIndex)
		tr.PictureChanged = true
	} else {
		tr.Restarted = true
	}
	st.CurrentPoint = s.pictures[st.PictureIndex].Start()
	return st, tr
}

// strokeComplete reports whether releasing the pointer finishes the current
// line. Lines without segments, and pictures without lines, complete on any
// release.
func (s *Session) strokeComplete(pic Picture, st TrackerState) bool {
	if st.LineIndex >= len(pic.Lines) {
		return true
	}
	line := pic.Lines[st.LineIndex]
	if len(line) < 2 {
		return true
	}
	return st.PointIndex == len(line)-2 ||
		Within(st.CurrentPoint, line[len(line)-1], s.cfg.Threshold)
}

func (s *Session) line(st TrackerState) Line {
	pic := s.pictures[st.PictureIndex]
	if st.LineIndex >= len(pic.Lines) {
		return nil
	}
	return pic.Lines[st.LineIndex]
}

// Tracker owns a Session and its current state and turns pointer events
// into render and picture notifications. It is driven from a single event
// goroutine and is not safe for concurrent use.
type Tracker struct {
	cfg     TrackerConfig
	rnd     Rand
	session *Session
	state   TrackerState

	OnRender  func(RenderState)
	OnPicture func(prev, next int, restarted bool)
}

func NewTracker(pictures []Picture, cfg TrackerConfig, r Rand) *Tracker {
	t := &Tracker{cfg: cfg, rnd: r}
	t.reset(pictures)
	return t
}

// SetPictures replaces the picture set and restarts the session.
func (t *Tracker) SetPictures(pictures []Picture) {
	prev := t.state.PictureIndex
	t.reset(pictures)
	if t.OnPicture != nil {
		t.OnPicture(prev, t.state.PictureIndex, true)
	}
	t.redraw()
}

func (t *Tracker) reset(pictures []Picture) {
	t.session = NewSession(pictures, t.cfg, t.rnd)
	t.state = t.session.Start()
	if t.session.Empty() {
		log.Println("[TRACKER] No pictures, nothing to trace")
		return
	}
	log.Printf("[TRACKER] Session started on picture %d of %d", t.state.PictureIndex+1, t.session.Len())
}

func (t *Tracker) Down(p Point) { t.apply(Event{Kind: PointerDown, Point: p}) }
func (t *Tracker) Move(p Point) { t.apply(Event{Kind: PointerMove, Point: p}) }
func (t *Tracker) Up(p Point)   { t.apply(Event{Kind: PointerUp, Point: p}) }
func (t *Tracker) Cancel()      { t.apply(Event{Kind: PointerCancel}) }

func (t *Tracker) State() TrackerState { return t.state }

func (t *Tracker) Session() *Session { return t.session }

func (t *Tracker) Render() RenderState { return t.session.Render(t.state) }

func (t *Tracker) apply(ev Event) {
	prev := t.state
	next, tr := t.session.Step(prev, ev)
	t.state = next

	if tr.PictureChanged || tr.Restarted {
		log.Printf("[TRACKER] Picture %d completed, now tracing %d", prev.PictureIndex+1, next.PictureIndex+1)
		if t.OnPicture != nil {
			t.OnPicture(prev.PictureIndex, next.PictureIndex, tr.Restarted)
		}
	}
	if tr.Redraw {
		t.redraw()
	}
}

func (t *Tracker) redraw() {
	if t.OnRender != nil {
		t.OnRender(t.Render())
	}
}
