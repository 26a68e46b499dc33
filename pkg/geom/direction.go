package geom

import "math"

// Cardinal is one of the four compass buckets an arbitrary direction is
// quantized to.
type Cardinal int

const (
	North Cardinal = iota
	East
	South
	West
)

// Cardinals lists the buckets in declaration order.
var Cardinals = [4]Cardinal{North, East, South, West}

// String returns the name of the cardinal direction.
func (c Cardinal) String() string {
	switch c {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Opposite returns the opposite cardinal direction.
func (c Cardinal) Opposite() Cardinal {
	switch c {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return c
	}
}

// Vertical reports whether c points along the Y axis (North or South).
// Edges travelling vertically attach to a horizontal side of a box.
func (c Cardinal) Vertical() bool { return c == North || c == South }

// Direction returns the unit vector of c.
func (c Cardinal) Direction() Direction {
	switch c {
	case North:
		return Direction{X: 0, Y: -1}
	case East:
		return Direction{X: 1, Y: 0}
	case South:
		return Direction{X: 0, Y: 1}
	case West:
		return Direction{X: -1, Y: 0}
	default:
		return Direction{}
	}
}

// Direction is a free 2D vector. Its length carries no meaning for
// classification; the raw components are used as secondary sort keys.
type Direction struct {
	X, Y float64
}

// DirectionBetween returns the vector pointing from 'from' to 'to'.
func DirectionBetween(from, to Point) Direction {
	return Direction{X: to.X - from.X, Y: to.Y - from.Y}
}

// IsZero reports whether d has no direction (both components zero or not
// finite).
func (d Direction) IsZero() bool {
	if math.IsNaN(d.X) || math.IsNaN(d.Y) {
		return true
	}
	return d.X == 0 && d.Y == 0
}

// Length returns the Euclidean length of d.
func (d Direction) Length() float64 { return math.Hypot(d.X, d.Y) }

// Normalize returns d scaled to unit length. The zero vector is returned
// unchanged.
func (d Direction) Normalize() Direction {
	l := d.Length()
	if l == 0 || math.IsNaN(l) {
		return d
	}
	return Direction{X: d.X / l, Y: d.Y / l}
}

// Reverse returns the vector pointing the other way.
func (d Direction) Reverse() Direction { return Direction{X: -d.X, Y: -d.Y} }

// NearestCardinal returns the cardinal bucket closest in angle to d.
// The second result is false for the zero vector, which has no direction.
//
// Ties at exact diagonals go to the vertical bucket (North or South).
func (d Direction) NearestCardinal() (Cardinal, bool) {
	if d.IsZero() {
		return North, false
	}
	ax, ay := math.Abs(d.X), math.Abs(d.Y)
	if ax > ay {
		if d.X > 0 {
			return East, true
		}
		return West, true
	}
	if d.Y < 0 {
		return North, true
	}
	return South, true
}
