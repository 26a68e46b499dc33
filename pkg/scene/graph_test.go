package scene

import (
	"math"
	"testing"

	"github.com/matzehuels/scenegraph/pkg/errors"
	"github.com/matzehuels/scenegraph/pkg/geom"
)

func TestDiagramAddNode(t *testing.T) {
	d := NewDiagram()
	n := NewBox("a")

	if err := d.AddNode(n, geom.Pt(10, 20)); err != nil {
		t.Fatal(err)
	}
	if n.Location() != geom.Pt(10, 20) {
		t.Errorf("Location() = %v, want (10, 20)", n.Location())
	}
	if n.Graph() != Graph(d) {
		t.Error("Graph() is not the diagram")
	}
	if got := d.Nodes(); len(got) != 1 || got[0] != Node(n) {
		t.Errorf("Nodes() = %v", got)
	}
	if d.Revision() != 1 {
		t.Errorf("Revision() = %d, want 1", d.Revision())
	}

	// Re-adding moves the node without duplicating it.
	if err := d.AddNode(n, geom.Pt(1, 1)); err != nil {
		t.Fatal(err)
	}
	if len(d.Nodes()) != 1 {
		t.Errorf("Nodes() has %d entries after re-add", len(d.Nodes()))
	}
}

func TestDiagramAddNodeErrors(t *testing.T) {
	d := NewDiagram()
	tests := []struct {
		name string
		n    Node
		p    geom.Point
	}{
		{"nil", nil, geom.Pt(0, 0)},
		{"typed nil", (*Box)(nil), geom.Pt(0, 0)},
		{"absent point", NewBox(""), geom.Pt(0, math.Inf(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.AddNode(tt.n, tt.p)
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("AddNode() error = %v, want INVALID_ARGUMENT", err)
			}
		})
	}
	if d.Revision() != 0 {
		t.Errorf("failed mutations changed the revision to %d", d.Revision())
	}
}

func TestDiagramAddChild(t *testing.T) {
	d := NewDiagram()
	pkg := NewContainer("pkg")
	cls := NewBox("cls")
	_ = d.AddNode(pkg, geom.Pt(0, 0))
	_ = d.AddNode(cls, geom.Pt(300, 300))

	if err := d.AddChild(pkg, cls, geom.Pt(20, 40)); err != nil {
		t.Fatal(err)
	}
	if len(d.Nodes()) != 1 {
		t.Errorf("child still listed as a root: %v", d.Nodes())
	}
	if cls.Parent() != Node(pkg) || cls.Graph() != Graph(d) {
		t.Error("child not attached under the container")
	}
	if got, ok := d.NodeByID(cls.ID()); !ok || got != Node(cls) {
		t.Error("NodeByID() did not find the nested node")
	}
	if all := d.AllNodes(); len(all) != 2 || all[0] != Node(pkg) || all[1] != Node(cls) {
		t.Errorf("AllNodes() = %v", all)
	}

	stranger := NewContainer("elsewhere")
	err := d.AddChild(stranger, NewBox("x"), geom.Pt(0, 0))
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("AddChild(foreign parent) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestDiagramAddChildRejectsWithoutChanges(t *testing.T) {
	tests := []struct {
		name  string
		build func(d *Diagram, root, inner *Container, other *Box) error
	}{
		{"root under its own child", func(d *Diagram, root, inner *Container, other *Box) error {
			return d.AddChild(inner, root, geom.Pt(10, 10))
		}},
		{"node under itself", func(d *Diagram, root, inner *Container, other *Box) error {
			return d.AddChild(root, root, geom.Pt(10, 10))
		}},
		{"absent location", func(d *Diagram, root, inner *Container, other *Box) error {
			return d.AddChild(root, NewBox("late"), geom.Pt(math.NaN(), 0))
		}},
		{"absent location for a root", func(d *Diagram, root, inner *Container, other *Box) error {
			return d.AddChild(inner, other, geom.Pt(0, math.Inf(-1)))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiagram()
			root := NewContainer("root")
			inner := NewContainer("inner")
			if err := d.AddNode(root, geom.Pt(0, 0)); err != nil {
				t.Fatal(err)
			}
			if err := d.AddChild(root, inner, geom.Pt(20, 40)); err != nil {
				t.Fatal(err)
			}
			other := NewBox("other")
			if err := d.AddNode(other, geom.Pt(300, 0)); err != nil {
				t.Fatal(err)
			}
			roots, all, rev := len(d.Nodes()), len(d.AllNodes()), d.Revision()

			err := tt.build(d, root, inner, other)
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Fatalf("AddChild() error = %v, want INVALID_ARGUMENT", err)
			}
			if got := len(d.Nodes()); got != roots {
				t.Errorf("Nodes() = %d roots, want %d", got, roots)
			}
			if got := len(d.AllNodes()); got != all {
				t.Errorf("AllNodes() = %d, want %d", got, all)
			}
			if d.Revision() != rev {
				t.Errorf("Revision() = %d, want %d", d.Revision(), rev)
			}
			if root.Parent() != nil || inner.Parent() != Node(root) || other.Parent() != nil {
				t.Error("tree links changed by a rejected AddChild")
			}
			if got := len(inner.Children()); got != 0 {
				t.Errorf("inner has %d children, want 0", got)
			}
		})
	}
}

func TestDiagramConnect(t *testing.T) {
	d := NewDiagram()
	a, b := NewBox("a"), NewBox("b")
	_ = d.AddNode(a, geom.Pt(0, 0))

	if err := d.Connect(NewLine(a, b)); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Connect(foreign end) error = %v, want INVALID_ARGUMENT", err)
	}
	if err := d.Connect(NewLine(a, nil)); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Connect(no end) error = %v, want INVALID_ARGUMENT", err)
	}

	_ = d.AddNode(b, geom.Pt(100, 0))
	e := NewLine(a, b)
	if err := d.Connect(e); err != nil {
		t.Fatal(err)
	}
	if got := d.Edges(); len(got) != 1 || got[0] != Edge(e) {
		t.Errorf("Edges() = %v", got)
	}

	d.Disconnect(e)
	if len(d.Edges()) != 0 {
		t.Errorf("Edges() has %d entries after Disconnect", len(d.Edges()))
	}
	d.Disconnect(e)
}

func TestDiagramRemoveNode(t *testing.T) {
	d := NewDiagram()
	pkg := NewContainer("pkg")
	inner := NewBox("inner")
	outer := NewBox("outer")
	_ = d.AddNode(pkg, geom.Pt(0, 0))
	_ = d.AddNode(outer, geom.Pt(400, 0))
	_ = d.AddChild(pkg, inner, geom.Pt(20, 40))
	keep := NewLine(outer, outer)
	_ = d.Connect(NewLine(inner, outer))
	_ = d.Connect(keep)

	d.RemoveNode(pkg)

	if got := d.Nodes(); len(got) != 1 || got[0] != Node(outer) {
		t.Errorf("Nodes() = %v, want [outer]", got)
	}
	if got := d.Edges(); len(got) != 1 || got[0] != Edge(keep) {
		t.Errorf("Edges() = %v, want only the loop on outer", got)
	}
	if pkg.Graph() != EmptyGraph || inner.Graph() != EmptyGraph {
		t.Error("removed subtree still reports the diagram")
	}
	if inner.Parent() != Node(pkg) {
		t.Error("RemoveNode() must keep the removed subtree intact")
	}
}

func TestDiagramSetters(t *testing.T) {
	d := NewDiagram()
	if err := d.SetID(NilID); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("SetID(NilID) error = %v", err)
	}
	if err := d.SetRevision(-2); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("SetRevision(-2) error = %v", err)
	}
	if err := d.SetRevision(12); err != nil || d.Revision() != 12 {
		t.Errorf("SetRevision(12) = %v, Revision() = %d", err, d.Revision())
	}
}

func TestLineDirection(t *testing.T) {
	a, b, c := NewBox(""), NewBox(""), NewBox("")
	_ = a.SetLocation(geom.Pt(0, 0))
	_ = b.SetLocation(geom.Pt(100, 0))
	l := NewLine(a, b)

	tests := []struct {
		name   string
		at     Node
		want   geom.Direction
		wantOK bool
	}{
		{"arrives at end", b, geom.Direction{X: 100}, true},
		{"arrives at start", a, geom.Direction{X: -100}, true},
		{"not an endpoint", c, geom.Direction{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.Direction(tt.at)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Direction() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	loop := NewLine(a, a)
	if got, ok := loop.Direction(a); !ok || got != geom.West.Direction() {
		t.Errorf("self-loop Direction() = %v, %v, want West", got, ok)
	}

	stacked := NewLine(a, c)
	if _, ok := stacked.Direction(a); ok {
		t.Error("coincident centres should have no direction")
	}
}

func TestCloneFunc(t *testing.T) {
	tests := []struct {
		name string
		n    Node
	}{
		{"nil", nil},
		{"typed nil box", (*Box)(nil)},
		{"typed nil container", (*Container)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clone(tt.n)
			if !errors.Is(err, errors.ErrCodeCloneFailure) {
				t.Errorf("Clone() error = %v, want CLONE_FAILURE", err)
			}
			if got != nil {
				t.Errorf("Clone() = %v, want nil", got)
			}
		})
	}
}

func TestCloneSubtree(t *testing.T) {
	for k := 0; k <= 4; k++ {
		src := NewContainer("src")
		_ = src.SetLocation(geom.Pt(7, 9))
		src.SetToolTip("tip")
		src.SetZ(2)
		src.IncrementRevision()
		for i := 0; i < k; i++ {
			c := NewBox("child")
			c.IncrementRevision()
			src.AddChild(c, i)
		}

		got, err := Clone(src)
		if err != nil {
			t.Fatalf("k=%d: Clone() error = %v", k, err)
		}
		if got == Node(src) {
			t.Fatalf("k=%d: Clone() returned the source", k)
		}
		if got.ID() != src.ID() {
			t.Errorf("k=%d: clone ID = %s, want %s", k, got.ID(), src.ID())
		}
		if got.Revision() != 0 {
			t.Errorf("k=%d: clone Revision() = %d, want 0", k, got.Revision())
		}
		if got.Location() != src.Location() || got.ToolTip() != "tip" || got.Z() != 2 {
			t.Errorf("k=%d: clone lost location, tooltip or z", k)
		}

		kids, srcKids := got.Children(), src.Children()
		if len(kids) != k {
			t.Fatalf("k=%d: clone has %d children", k, len(kids))
		}
		for i := range kids {
			if kids[i] == srcKids[i] {
				t.Errorf("k=%d: child %d shared with source", k, i)
			}
			if kids[i].Parent() != got {
				t.Errorf("k=%d: child %d parent is not the clone", k, i)
			}
			if kids[i].ID() != srcKids[i].ID() || kids[i].Revision() != 0 {
				t.Errorf("k=%d: child %d identity or revision wrong", k, i)
			}
			if srcKids[i].Parent() != Node(src) {
				t.Errorf("k=%d: source child %d was reparented", k, i)
			}
		}
	}
}
