package scene

import (
	"cmp"
	"slices"

	"github.com/matzehuels/scenegraph/pkg/geom"
)

// ConnectedEdges returns every edge of g with n as its start or end, in
// the graph's edge order. Self-loops appear once. A nil graph is treated as
// EmptyGraph.
func ConnectedEdges(g Graph, n Node) []Edge {
	if g == nil || isNilNode(n) {
		return nil
	}
	var out []Edge
	for _, e := range g.Edges() {
		if e.Start() == n || e.End() == n {
			out = append(out, e)
		}
	}
	return out
}

// Side returns the cardinal side of n that e attaches to. The second result
// is false when e has no defined direction at n.
func Side(n Node, e Edge) (geom.Cardinal, bool) {
	if n == nil || e == nil {
		return geom.North, false
	}
	d, ok := e.Direction(n)
	if !ok {
		return geom.North, false
	}
	return d.NearestCardinal()
}

// IsSelfLoop reports whether e starts and ends on n.
func IsSelfLoop(e Edge, n Node) bool {
	return e.Start() == n && e.End() == n
}

// EdgesOnSameSide lists the edges of n that attach to the same side as e,
// in visual order.
//
// An edge is listed when its nearest cardinal direction at n matches e's.
// Self-loops on n are listed for every side. The result is sorted by the
// x component of each edge's direction at n for North and South, by the y
// component for East and West; ties keep discovery order.
//
// The result is empty when e has no defined direction at n.
func EdgesOnSameSide(g Graph, n Node, e Edge) []Edge {
	target, ok := Side(n, e)
	if !ok {
		return nil
	}

	var out []Edge
	for _, ce := range ConnectedEdges(g, n) {
		if IsSelfLoop(ce, n) {
			out = append(out, ce)
			continue
		}
		if side, ok := Side(n, ce); ok && side == target {
			out = append(out, ce)
		}
	}

	key := func(x Edge) float64 {
		d, _ := x.Direction(n)
		if target.Vertical() {
			return d.X
		}
		return d.Y
	}
	slices.SortStableFunc(out, func(a, b Edge) int {
		return cmp.Compare(key(a), key(b))
	})
	return out
}

// ConnectionPoint returns the point of n's boundary where e attaches.
//
// The k edges sharing e's side split that side into k+1 equal segments;
// e takes the division point matching its position in [EdgesOnSameSide],
// counted from the max-coordinate end. The orthogonal coordinate is the side
// the edge arrives at:
//
//	North → bottom (max Y)    South → top (min Y)
//	East  → left (min X)      West  → right (max X)
//
// When e does not attach to n the bounds centre is returned.
func ConnectionPoint(g Graph, n Node, e Edge) geom.Point {
	if isNilNode(n) {
		return geom.Point{}
	}
	b := n.Bounds()
	center := b.Center()

	ordered := EdgesOnSameSide(g, n, e)
	pos := slices.Index(ordered, e)
	if pos < 0 {
		return center
	}
	side, _ := Side(n, e)
	slots := float64(len(ordered) + 1)
	step := float64(pos + 1)

	switch side {
	case geom.North:
		return geom.Pt(b.MaxX()-b.Width/slots*step, b.MaxY())
	case geom.South:
		return geom.Pt(b.MaxX()-b.Width/slots*step, b.MinY())
	case geom.East:
		return geom.Pt(b.MinX(), b.MaxY()-b.Height/slots*step)
	case geom.West:
		return geom.Pt(b.MaxX(), b.MaxY()-b.Height/slots*step)
	}
	return center
}
