package scene

import "github.com/matzehuels/scenegraph/pkg/geom"

// Edge is a relation between two nodes. Start and End may be the same node
// (a self-loop).
type Edge interface {
	Start() Node
	End() Node

	// Direction returns the vector along which the edge arrives at n. The
	// second result is false when n is not an endpoint or the direction is
	// indeterminate.
	Direction(n Node) (geom.Direction, bool)
}

// selfLoopDirection is the arrival vector of a Line that starts and ends on
// the same node; loops hang off the right side.
var selfLoopDirection = geom.West.Direction()

// Line is a straight edge between the bounds centres of its endpoints.
type Line struct {
	Label string

	start, end Node
}

// NewLine creates a straight edge from start to end.
func NewLine(start, end Node) *Line {
	return &Line{start: start, end: end}
}

func (l *Line) Start() Node { return l.start }

func (l *Line) End() Node { return l.end }

// IsSelfLoop reports whether the line starts and ends on the same node.
func (l *Line) IsSelfLoop() bool { return l.start != nil && l.start == l.end }

// Direction returns the vector from the opposite endpoint's centre to n's
// centre. Self-loops arrive heading West, i.e. on the right side.
func (l *Line) Direction(n Node) (geom.Direction, bool) {
	if n == nil || l.start == nil || l.end == nil {
		return geom.Direction{}, false
	}
	var from, to Node
	switch {
	case l.IsSelfLoop() && n == l.start:
		return selfLoopDirection, true
	case n == l.start:
		from, to = l.end, l.start
	case n == l.end:
		from, to = l.start, l.end
	default:
		return geom.Direction{}, false
	}
	d := geom.DirectionBetween(from.Bounds().Center(), to.Bounds().Center())
	if d.IsZero() {
		return geom.Direction{}, false
	}
	return d, true
}
