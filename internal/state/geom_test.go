package state

import (
	"math"
	"math/rand"
	"testing"
)

func TestDistanceToSegment(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		dist    float64
		nearest Point
	}{
		{"interior", Point{5, 3}, Point{0, 0}, Point{10, 0}, 3, Point{5, 0}},
		{"before start", Point{-4, 3}, Point{0, 0}, Point{10, 0}, 5, Point{0, 0}},
		{"past end", Point{13, -4}, Point{0, 0}, Point{10, 0}, 5, Point{10, 0}},
		{"on segment", Point{2, 2}, Point{0, 0}, Point{4, 4}, 0, Point{2, 2}},
		{"degenerate", Point{3, 4}, Point{0, 0}, Point{0, 0}, 5, Point{0, 0}},
		{"degenerate offset", Point{1, 1}, Point{1, 1}, Point{1, 1}, 0, Point{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, q := DistanceToSegment(tt.p, tt.a, tt.b)
			if math.Abs(d-tt.dist) > 1e-9 {
				t.Errorf("dist=%v want %v", d, tt.dist)
			}
			if Dist(q, tt.nearest) > 1e-9 {
				t.Errorf("nearest=%v want %v", q, tt.nearest)
			}
			if math.IsNaN(d) || math.IsNaN(q.X) || math.IsNaN(q.Y) {
				t.Errorf("NaN result: %v %v", d, q)
			}
		})
	}
}

func TestDistanceToSegmentIsMinimum(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	pt := func() Point { return Point{r.Float64()*200 - 100, r.Float64()*200 - 100} }

	for i := 0; i < 500; i++ {
		p, a, b := pt(), pt(), pt()
		d, q := DistanceToSegment(p, a, b)

		// q lies on the closed segment.
		ab := Sub(b, a)
		cross := ab.X*(q.Y-a.Y) - ab.Y*(q.X-a.X)
		if math.Abs(cross) > 1e-6*Dot(ab, ab)+1e-9 {
			t.Fatalf("case %d: nearest %v is off the line through %v %v", i, q, a, b)
		}
		if tq := Dot(Sub(q, a), ab) / Dot(ab, ab); tq < -1e-9 || tq > 1+1e-9 {
			t.Fatalf("case %d: nearest %v outside segment (t=%v)", i, q, tq)
		}

		// No sampled point of the segment is closer.
		for k := 0; k <= 50; k++ {
			s := Add(a, Scale(ab, float64(k)/50))
			if Dist(p, s) < d-1e-9 {
				t.Fatalf("case %d: sample %v at %v is closer than %v", i, s, Dist(p, s), d)
			}
		}
	}
}

func TestAppendPoint(t *testing.T) {
	line := Line{{0, 0}, {1, 1}}

	same := AppendPoint(line, Point{1, 1})
	if len(same) != 2 || &same[0] != &line[0] {
		t.Fatalf("appending the last point changed the line: %v", same)
	}

	grown := AppendPoint(line, Point{2, 2})
	if len(grown) != 3 || grown[2] != (Point{2, 2}) {
		t.Fatalf("grown=%v", grown)
	}
	if len(line) != 2 {
		t.Fatalf("input modified: %v", line)
	}

	// Appending to a prefix must not clobber the rest of the original.
	prefix := line[:1]
	_ = AppendPoint(prefix, Point{9, 9})
	if line[1] != (Point{1, 1}) {
		t.Fatalf("AppendPoint wrote through a shared backing array: %v", line)
	}

	if got := AppendPoint(nil, Point{3, 4}); len(got) != 1 || got[0] != (Point{3, 4}) {
		t.Fatalf("append to empty=%v", got)
	}
}

func TestWithin(t *testing.T) {
	if !Within(Point{0, 0}, Point{3, 4}, 5.0001) {
		t.Fatal("expected within")
	}
	if Within(Point{0, 0}, Point{3, 4}, 5) {
		t.Fatal("distance equal to threshold must not count as within")
	}
}
