package scene

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/scenegraph/pkg/geom"
)

// fixedEdge reports a preset arrival direction at its endpoints.
type fixedEdge struct {
	name       string
	start, end Node
	dir        geom.Direction
}

func (e *fixedEdge) Start() Node { return e.start }
func (e *fixedEdge) End() Node   { return e.end }

func (e *fixedEdge) Direction(n Node) (geom.Direction, bool) {
	if n != e.start && n != e.end {
		return geom.Direction{}, false
	}
	if e.dir.IsZero() {
		return geom.Direction{}, false
	}
	return e.dir, true
}

func (e *fixedEdge) String() string { return e.name }

// edgeList is a bare Graph over a fixed edge slice.
type edgeList []Edge

func (l edgeList) Nodes() []Node { return nil }
func (l edgeList) Edges() []Edge { return l }

func names(es []Edge) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = fmt.Sprint(e)
	}
	return out
}

func placedBox(t *testing.T, d *Diagram, x, y float64) *Box {
	t.Helper()
	n := NewBox("")
	if err := d.AddNode(n, geom.Pt(x, y)); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	return n
}

func connect(t *testing.T, d *Diagram, from, to Node) *Line {
	t.Helper()
	l := NewLine(from, to)
	if err := d.Connect(l); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return l
}

func TestConnectedEdges(t *testing.T) {
	n, a := NewBox("n"), NewBox("a")
	e1 := &fixedEdge{name: "e1", start: n, end: a}
	e2 := &fixedEdge{name: "e2", start: a, end: a}
	loop := &fixedEdge{name: "loop", start: n, end: n}
	e3 := &fixedEdge{name: "e3", start: a, end: n}
	g := edgeList{e1, e2, loop, e3}

	got := names(ConnectedEdges(g, n))
	want := []string{"e1", "loop", "e3"}
	if !slices.Equal(got, want) {
		t.Errorf("ConnectedEdges() = %v, want %v", got, want)
	}

	if got := ConnectedEdges(nil, n); got != nil {
		t.Errorf("ConnectedEdges(nil graph) = %v, want nil", got)
	}
	if got := ConnectedEdges(EmptyGraph, n); len(got) != 0 {
		t.Errorf("ConnectedEdges(EmptyGraph) = %v, want empty", got)
	}
}

func TestEdgesOnSameSide(t *testing.T) {
	n, a := NewBox("n"), NewBox("a")
	north := func(name string, x float64) *fixedEdge {
		return &fixedEdge{name: name, start: a, end: n, dir: geom.Direction{X: x, Y: -10}}
	}
	e1 := north("e1", 5)
	e2 := north("e2", -3)
	e3 := north("e3", 0)
	e4 := north("e4", 0)
	east := &fixedEdge{name: "east", start: a, end: n, dir: geom.Direction{X: 10, Y: 1}}
	loop := &fixedEdge{name: "loop", start: n, end: n, dir: geom.Direction{X: -1, Y: 0}}
	g := edgeList{e1, east, e2, loop, e3, e4}

	tests := []struct {
		name  string
		query Edge
		want  []string
	}{
		{"north sorted by x, ties stable", e3, []string{"e2", "loop", "e3", "e4", "e1"}},
		{"east", east, []string{"loop", "east"}},
		{"loop side", loop, []string{"loop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(EdgesOnSameSide(g, n, tt.query))
			if !slices.Equal(got, tt.want) {
				t.Errorf("EdgesOnSameSide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelfLoopListedOnEverySide(t *testing.T) {
	n, a := NewBox("n"), NewBox("a")
	loop := &fixedEdge{name: "loop", start: n, end: n, dir: geom.Direction{X: -1}}

	for _, side := range geom.Cardinals {
		t.Run(side.String(), func(t *testing.T) {
			q := &fixedEdge{name: "q", start: a, end: n, dir: side.Direction()}
			got := EdgesOnSameSide(edgeList{loop, q}, n, q)
			count := 0
			for _, e := range got {
				if e == Edge(loop) {
					count++
				}
			}
			if count != 1 {
				t.Errorf("self-loop listed %d times, want 1 (got %v)", count, names(got))
			}
			if !slices.Contains(got, Edge(q)) {
				t.Errorf("query edge missing from %v", names(got))
			}
		})
	}
}

func TestEdgesOnSameSideUndefinedDirection(t *testing.T) {
	n, a := NewBox("n"), NewBox("a")
	flat := &fixedEdge{name: "flat", start: a, end: n}
	other := &fixedEdge{name: "other", start: a, end: n, dir: geom.Direction{Y: -1}}
	g := edgeList{flat, other}

	if got := EdgesOnSameSide(g, n, flat); len(got) != 0 {
		t.Errorf("EdgesOnSameSide() = %v, want empty", names(got))
	}
	if got := ConnectionPoint(g, n, flat); got != n.Bounds().Center() {
		t.Errorf("ConnectionPoint() = %v, want centre %v", got, n.Bounds().Center())
	}
	if got := names(EdgesOnSameSide(g, n, other)); !slices.Equal(got, []string{"other"}) {
		t.Errorf("undefined edges must not be listed, got %v", got)
	}
}

func TestConnectionPointSingleNorth(t *testing.T) {
	d := NewDiagram()
	n := placedBox(t, d, 100, 0)
	below := placedBox(t, d, 100, 200)
	e := connect(t, d, below, n)

	b := n.Bounds()
	want := geom.Pt(b.MaxX()-b.Width/2, b.MaxY())
	if got := n.ConnectionPoint(e); got != want {
		t.Errorf("ConnectionPoint() = %v, want %v", got, want)
	}
}

func TestConnectionPointThreeEast(t *testing.T) {
	d := NewDiagram()
	n := placedBox(t, d, 300, 100)
	a := placedBox(t, d, 0, 40)
	b := placedBox(t, d, 0, 100)
	c := placedBox(t, d, 0, 160)
	ea := connect(t, d, a, n)
	eb := connect(t, d, b, n)
	ec := connect(t, d, c, n)

	bounds := n.Bounds()
	step := bounds.Height / 4
	tests := []struct {
		name string
		e    Edge
		want geom.Point
	}{
		{"lowest source", ec, geom.Pt(bounds.MinX(), bounds.MaxY()-step)},
		{"level source", eb, geom.Pt(bounds.MinX(), bounds.MaxY()-2*step)},
		{"highest source", ea, geom.Pt(bounds.MinX(), bounds.MaxY()-3*step)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConnectionPoint(d, n, tt.e)
			if got != tt.want {
				t.Errorf("ConnectionPoint() = %v, want %v", got, tt.want)
			}
			if got.Y == bounds.MinY() || got.Y == bounds.MaxY() {
				t.Errorf("ConnectionPoint() %v touches a corner", got)
			}
		})
	}
}

func TestConnectionPointLineOrdering(t *testing.T) {
	d := NewDiagram()
	n := placedBox(t, d, 100, 100)
	left := placedBox(t, d, 160, 300)
	mid := placedBox(t, d, 100, 300)
	right := placedBox(t, d, 40, 300)

	e2 := connect(t, d, mid, n)
	e3 := connect(t, d, right, n)
	loop := connect(t, d, n, n)
	e1 := connect(t, d, left, n)

	got := EdgesOnSameSide(d, n, e2)
	want := []Edge{e1, loop, e2, e3}
	if !slices.Equal(got, want) {
		t.Fatalf("EdgesOnSameSide() returned %d edges in the wrong order", len(got))
	}

	b := n.Bounds()
	if got, want := n.ConnectionPoint(e2), geom.Pt(b.MaxX()-b.Width/5*3, b.MaxY()); got != want {
		t.Errorf("ConnectionPoint(e2) = %v, want %v", got, want)
	}
	// The loop is alone on the right side.
	if got, want := n.ConnectionPoint(loop), geom.Pt(b.MaxX(), b.MaxY()-b.Height/2); got != want {
		t.Errorf("ConnectionPoint(loop) = %v, want %v", got, want)
	}
}

func TestConnectionPointsStayOnSide(t *testing.T) {
	n, a := NewBox("n"), NewBox("a")
	_ = n.SetLocation(geom.Pt(10, 20))
	b := n.Bounds()

	for _, side := range geom.Cardinals {
		for k := 1; k <= 6; k++ {
			var g edgeList
			for i := 0; i < k; i++ {
				dir := side.Direction()
				if side.Vertical() {
					dir.X = float64(i) * 0.1
				} else {
					dir.Y = float64(i) * 0.1
				}
				g = append(g, &fixedEdge{name: fmt.Sprint(i), start: a, end: n, dir: dir})
			}

			seen := map[geom.Point]bool{}
			for _, e := range g {
				p := ConnectionPoint(g, n, e)
				if seen[p] {
					t.Errorf("%v k=%d: duplicate point %v", side, k, p)
				}
				seen[p] = true

				var onSide, strict bool
				switch side {
				case geom.North, geom.South:
					wantY := b.MaxY()
					if side == geom.South {
						wantY = b.MinY()
					}
					onSide = p.Y == wantY
					strict = p.X > b.MinX() && p.X < b.MaxX()
				default:
					wantX := b.MinX()
					if side == geom.West {
						wantX = b.MaxX()
					}
					onSide = p.X == wantX
					strict = p.Y > b.MinY() && p.Y < b.MaxY()
				}
				if !onSide || !strict {
					t.Errorf("%v k=%d: point %v not inside side of %+v", side, k, p, b)
				}
			}
		}
	}
}

func TestConnectionPointForeignEdge(t *testing.T) {
	n, a, z := NewBox("n"), NewBox("a"), NewBox("z")
	foreign := &fixedEdge{name: "foreign", start: a, end: z, dir: geom.Direction{Y: -1}}
	if got := ConnectionPoint(edgeList{foreign}, n, foreign); got != n.Bounds().Center() {
		t.Errorf("ConnectionPoint() = %v, want centre", got)
	}
}

func TestNodeQueriesUseOwnGraph(t *testing.T) {
	d := NewDiagram()
	hub := placedBox(t, d, 0, 0)
	left := placedBox(t, d, -50, 300)
	right := placedBox(t, d, 50, 300)
	l1 := connect(t, d, hub, left)
	l2 := connect(t, d, hub, right)

	if got := hub.ConnectedEdges(); len(got) != 2 {
		t.Fatalf("ConnectedEdges() = %d edges, want 2", len(got))
	}
	same := hub.EdgesOnSameSide(l1)
	// Both arrive heading North; l2 comes from the right, so its x component
	// is the smaller one.
	if !slices.Equal(same, []Edge{l2, l1}) {
		t.Errorf("EdgesOnSameSide() = %v, want [l2 l1]", same)
	}
	if got, want := hub.ConnectionPoint(l1), ConnectionPoint(d, hub, l1); got != want {
		t.Errorf("ConnectionPoint() = %v, want %v", got, want)
	}

	loose := NewBox("loose")
	if got := loose.ConnectedEdges(); len(got) != 0 {
		t.Errorf("unattached ConnectedEdges() = %v, want empty", got)
	}
}
