package state

// DistanceToSegment projects p onto the segment a→b and returns the distance
// from p to the projection together with the projected point. A zero-length
// segment projects everything onto a.
func DistanceToSegment(p, a, b Point) (float64, Point) {
	ab := Sub(b, a)
	var t float64
	if l2 := Dot(ab, ab); l2 > 0 {
		t = Dot(Sub(p, a), ab) / l2
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	nearest := Add(a, Scale(ab, t))
	return Dist(p, nearest), nearest
}

// AppendPoint returns line unchanged if p repeats its last point, otherwise
// a new line with p appended. The input's backing array is never written.
func AppendPoint(line Line, p Point) Line {
	if n := len(line); n > 0 && line[n-1] == p {
		return line
	}
	out := make(Line, len(line), len(line)+1)
	copy(out, line)
	return append(out, p)
}
