package state

// Point is a coordinate in picture-local units. Stored pictures use
// normalized [0,1] coordinates; the tracker works on a scaled copy.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is one continuous stroke. Consecutive points are never equal.
type Line []Point

// Picture is an ordered set of strokes. Order is the required trace order.
type Picture struct {
	ID    string `json:"id,omitempty"`
	Lines []Line `json:"lines"`
}

// Clone returns a deep copy of p.
func (p Picture) Clone() Picture {
	return Picture{ID: p.ID, Lines: cloneLines(p.Lines)}
}

// Scale returns a copy of p with every coordinate multiplied by factor.
func (p Picture) Scale(factor float64) Picture {
	out := Picture{ID: p.ID, Lines: make([]Line, len(p.Lines))}
	for i, line := range p.Lines {
		scaled := make(Line, len(line))
		for j, pt := range line {
			scaled[j] = Scale(pt, factor)
		}
		out.Lines[i] = scaled
	}
	return out
}

// Start returns the first point of the first line, or the origin when the
// picture has nothing to trace.
func (p Picture) Start() Point {
	return p.lineStart(0)
}

func (p Picture) lineStart(i int) Point {
	if i < 0 || i >= len(p.Lines) || len(p.Lines[i]) == 0 {
		return Point{}
	}
	return p.Lines[i][0]
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, line := range lines {
		out[i] = append(Line(nil), line...)
	}
	return out
}

func clonePictures(pictures []Picture) []Picture {
	out := make([]Picture, len(pictures))
	for i, p := range pictures {
		out[i] = p.Clone()
	}
	return out
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min, Max Point
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Bounds returns the bounding box of every point in p. ok is false when p
// has no points.
func (p Picture) Bounds() (r Rect, ok bool) {
	for _, line := range p.Lines {
		for _, pt := range line {
			if !ok {
				r = Rect{Min: pt, Max: pt}
				ok = true
				continue
			}
			r.Min.X = min(r.Min.X, pt.X)
			r.Min.Y = min(r.Min.Y, pt.Y)
			r.Max.X = max(r.Max.X, pt.X)
			r.Max.Y = max(r.Max.Y, pt.Y)
		}
	}
	return r, ok
}

// Union returns the smallest Rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: min(r.Min.X, o.Min.X), Y: min(r.Min.Y, o.Min.Y)},
		Max: Point{X: max(r.Max.X, o.Max.X), Y: max(r.Max.Y, o.Max.Y)},
	}
}
