package state

import "math"

func Sub(a, b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}

func Add(a, b Point) Point {
	return Point{X: a.X + b.X, Y: a.Y + b.Y}
}

func Dot(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

func Scale(v Point, s float64) Point {
	return Point{X: v.X * s, Y: v.Y * s}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Within reports whether a and b are strictly closer than d.
func Within(a, b Point, d float64) bool {
	v := Sub(a, b)
	return Dot(v, v) < d*d
}
