package state

// RenderState is everything a canvas needs to draw one frame of practice.
type RenderState struct {
	Empty        bool
	PictureIndex int
	PictureCount int
	LineIndex    int

	Done    []Line
	Active  Line
	Pending []Line
	// Traced is the part of Active reached so far, ending at Cursor.
	Traced Line

	Cursor   Point
	Touching bool
}

// Render derives the frame for st without modifying anything.
func (s *Session) Render(st TrackerState) RenderState {
	rs := RenderState{
		Empty:        s.Empty(),
		PictureIndex: st.PictureIndex,
		PictureCount: len(s.pictures),
		LineIndex:    st.LineIndex,
		Cursor:       st.CurrentPoint,
		Touching:     st.Touching,
	}
	if rs.Empty {
		return rs
	}

	lines := s.pictures[st.PictureIndex].Lines
	li := min(st.LineIndex, len(lines))
	rs.Done = lines[:li]
	if li < len(lines) {
		rs.Active = lines[li]
		rs.Pending = lines[li+1:]
	}

	reached := min(st.PointIndex+1, len(rs.Active))
	rs.Traced = AppendPoint(rs.Active[:reached:reached], st.CurrentPoint)
	return rs
}
