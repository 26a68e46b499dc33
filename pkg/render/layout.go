package render

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/scenegraph/pkg/geom"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

// Margin is the blank border added around the union of node boxes.
const Margin = 20.0

// Layout is the resolved geometry of one diagram revision.
type Layout struct {
	DiagramID string  `json:"diagram_id"`
	Revision  int     `json:"revision"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	// OriginX and OriginY map diagram space to output space: an output
	// coordinate is the diagram coordinate minus the origin.
	OriginX float64     `json:"origin_x"`
	OriginY float64     `json:"origin_y"`
	Nodes   []NodeBox   `json:"nodes"`
	Edges   []EdgeRoute `json:"edges,omitempty"`
}

// NodeBox is a node's absolute box. Boxes are listed in draw order:
// parents before children, siblings by ascending z.
type NodeBox struct {
	ID      string     `json:"id"`
	Kind    scene.Kind `json:"kind"`
	Label   string     `json:"label,omitempty"`
	ToolTip string     `json:"tooltip,omitempty"`
	Parent  string     `json:"parent,omitempty"`
	Depth   int        `json:"depth"`
	Z       int        `json:"z"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
}

// Rect returns the box as a rectangle in diagram space.
func (b NodeBox) Rect() geom.Rect { return geom.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height} }

// EdgeRoute is an edge with both attachment points resolved.
// A side is empty when the edge has no defined direction at that end; the
// point is then the node's centre.
type EdgeRoute struct {
	Label     string `json:"label,omitempty"`
	From      string `json:"from"`
	To        string `json:"to"`
	FromSide  string `json:"from_side,omitempty"`
	ToSide    string `json:"to_side,omitempty"`
	Start     Point  `json:"start"`
	End       Point  `json:"end"`
	SelfLoop  bool   `json:"self_loop,omitempty"`
	FromIndex int    `json:"from_index"`
	ToIndex   int    `json:"to_index"`
}

// Point is a JSON-friendly geom.Point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func pointOf(p geom.Point) Point { return Point{X: p.X, Y: p.Y} }

// Geom converts back to a geom.Point.
func (p Point) Geom() geom.Point { return geom.Pt(p.X, p.Y) }

// Compute resolves the geometry of d. It does not modify d.
func Compute(d *scene.Diagram) Layout {
	l := Layout{DiagramID: d.ID().String(), Revision: d.Revision()}

	index := map[scene.Node]int{}
	var walk func(ns []scene.Node, parent string, depth int)
	walk = func(ns []scene.Node, parent string, depth int) {
		slices.SortStableFunc(ns, func(a, b scene.Node) int { return cmp.Compare(a.Z(), b.Z()) })
		for _, n := range ns {
			b := n.Bounds()
			index[n] = len(l.Nodes)
			l.Nodes = append(l.Nodes, NodeBox{
				ID:      n.ID().String(),
				Kind:    n.Kind(),
				Label:   n.Label(),
				ToolTip: n.ToolTip(),
				Parent:  parent,
				Depth:   depth,
				Z:       n.Z(),
				X:       b.X,
				Y:       b.Y,
				Width:   b.Width,
				Height:  b.Height,
			})
			walk(n.Children(), n.ID().String(), depth+1)
		}
	}
	walk(d.Nodes(), "", 0)

	for _, e := range d.Edges() {
		start, end := e.Start(), e.End()
		r := EdgeRoute{
			From:      start.ID().String(),
			To:        end.ID().String(),
			Start:     pointOf(scene.ConnectionPoint(d, start, e)),
			End:       pointOf(scene.ConnectionPoint(d, end, e)),
			SelfLoop:  scene.IsSelfLoop(e, start),
			FromIndex: index[start],
			ToIndex:   index[end],
		}
		if line, ok := e.(*scene.Line); ok {
			r.Label = line.Label
		}
		if s, ok := scene.Side(start, e); ok {
			r.FromSide = s.String()
		}
		if s, ok := scene.Side(end, e); ok {
			r.ToSide = s.String()
		}
		l.Edges = append(l.Edges, r)
	}

	var ext geom.Rect
	for _, b := range l.Nodes {
		ext = ext.Union(b.Rect())
	}
	l.OriginX = ext.MinX() - Margin
	l.OriginY = ext.MinY() - Margin
	l.Width = ext.Width + 2*Margin
	l.Height = ext.Height + 2*Margin
	return l
}

// Node returns the box with the given ID.
func (l Layout) Node(id string) (NodeBox, bool) {
	for _, b := range l.Nodes {
		if b.ID == id {
			return b, true
		}
	}
	return NodeBox{}, false
}

// Fingerprint hashes the geometry and labels of l. The diagram revision is
// not part of the hash.
func (l Layout) Fingerprint() uint64 {
	h := xxhash.New()
	fmt.Fprintf(h, "%g %g %g %g\n", l.OriginX, l.OriginY, l.Width, l.Height)
	for _, b := range l.Nodes {
		fmt.Fprintf(h, "n %s %s %q %q %s %d %g %g %g %g\n",
			b.ID, b.Kind, b.Label, b.ToolTip, b.Parent, b.Z, b.X, b.Y, b.Width, b.Height)
	}
	for _, e := range l.Edges {
		fmt.Fprintf(h, "e %s %s %q %s %s %g %g %g %g\n",
			e.From, e.To, e.Label, e.FromSide, e.ToSide, e.Start.X, e.Start.Y, e.End.X, e.End.Y)
	}
	return h.Sum64()
}

// WriteJSON encodes l as indented JSON.
func (l Layout) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// ReadJSON decodes a layout written by [Layout.WriteJSON].
func ReadJSON(r io.Reader) (Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}
