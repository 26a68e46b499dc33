package scene

import (
	"slices"

	"github.com/matzehuels/scenegraph/pkg/errors"
	"github.com/matzehuels/scenegraph/pkg/geom"
)

var errCloneNil = errors.New(errors.ErrCodeCloneFailure, "node can't be nil")

// Graph is the container of a diagram's nodes and edges.
type Graph interface {
	// Nodes returns the root-level nodes in insertion order.
	Nodes() []Node
	// Edges returns every edge in insertion order.
	Edges() []Edge
}

// EmptyGraph is the graph reported by nodes that are not attached to one.
// It has no nodes and no edges.
var EmptyGraph Graph = emptyGraph{}

type emptyGraph struct{}

func (emptyGraph) Nodes() []Node { return nil }
func (emptyGraph) Edges() []Edge { return nil }

// =============================================================================
// Diagram
// =============================================================================

// Diagram is the concrete Graph used by loaders and renderers. It owns the
// root nodes, which in turn own their subtrees, and the edge list.
//
// Every successful mutation through the Diagram increments its revision.
// A Diagram is not safe for concurrent use.
type Diagram struct {
	id       ID
	revision int
	nodes    []Node
	edges    []Edge
}

// NewDiagram creates an empty diagram with a fresh identity.
func NewDiagram() *Diagram {
	return &Diagram{id: NewID()}
}

// ID returns the diagram identity.
func (d *Diagram) ID() ID { return d.id }

// SetID replaces the diagram identity. The zero ID is rejected.
func (d *Diagram) SetID(id ID) error {
	if id.IsZero() {
		return errors.InvalidArgument("id can't be nil")
	}
	d.id = id
	return nil
}

// Revision returns the number of mutations applied so far.
func (d *Diagram) Revision() int { return d.revision }

// SetRevision restores a revision counter, e.g. after loading a snapshot.
func (d *Diagram) SetRevision(rev int) error {
	if rev < 0 {
		return errors.InvalidArgument("revision can't be negative: %d", rev)
	}
	d.revision = rev
	return nil
}

func (d *Diagram) Nodes() []Node { return slices.Clone(d.nodes) }

func (d *Diagram) Edges() []Edge { return slices.Clone(d.edges) }

// AllNodes returns every node of the diagram, parents before children, in
// depth-first insertion order.
func (d *Diagram) AllNodes() []Node {
	var out []Node
	var walk func(ns []Node)
	walk = func(ns []Node) {
		for _, n := range ns {
			out = append(out, n)
			walk(n.node().children)
		}
	}
	walk(d.nodes)
	return out
}

// NodeByID finds a node anywhere in the tree.
func (d *Diagram) NodeByID(id ID) (Node, bool) {
	for _, n := range d.AllNodes() {
		if n.ID() == id {
			return n, true
		}
	}
	return nil, false
}

// AddNode places n at p as a root-level node. A node that still has a parent
// is detached from it first.
func (d *Diagram) AddNode(n Node, p geom.Point) error {
	if isNilNode(n) {
		return errors.InvalidArgument("node can't be nil")
	}
	if !p.IsFinite() {
		return errors.InvalidArgument("location can't be absent: %v", p)
	}
	if parent := n.Parent(); parent != nil {
		parent.RemoveChild(n)
	}
	if err := n.SetLocation(p); err != nil {
		return err
	}
	if !slices.Contains(d.nodes, n) {
		d.nodes = append(d.nodes, n)
	}
	if err := n.SetGraph(d); err != nil {
		return err
	}
	d.revision++
	return nil
}

// AddChild places child inside parent at the local point p. Both must
// belong to the diagram already, or child must be new.
func (d *Diagram) AddChild(parent, child Node, p geom.Point) error {
	if isNilNode(parent) || isNilNode(child) {
		return errors.InvalidArgument("parent and child can't be nil")
	}
	if parent.Graph() != Graph(d) {
		return errors.InvalidArgument("parent %s is not part of this diagram", parent.ID())
	}
	if !p.IsFinite() {
		return errors.InvalidArgument("location can't be absent: %v", p)
	}
	if parent.node().isSelfOrAncestor(child) {
		return errors.InvalidArgument("can't add %s under its own descendant %s", child.ID(), parent.ID())
	}

	root := slices.Index(d.nodes, child)
	if !parent.AddChild(child, len(parent.Children())) {
		return errors.InvalidArgument("can't add %s under %s", child.ID(), parent.ID())
	}
	if root >= 0 {
		d.nodes = slices.Delete(d.nodes, root, root+1)
	}
	if err := child.SetLocation(p); err != nil {
		return err
	}
	d.revision++
	return nil
}

// RemoveNode detaches n from its parent (or from the root list) and drops
// every edge touching n or one of its descendants.
func (d *Diagram) RemoveNode(n Node) {
	if isNilNode(n) {
		return
	}
	if parent := n.Parent(); parent != nil {
		parent.RemoveChild(n)
	} else if i := slices.Index(d.nodes, n); i >= 0 {
		d.nodes = slices.Delete(d.nodes, i, i+1)
	} else {
		return
	}

	gone := map[Node]bool{}
	var mark func(Node)
	mark = func(x Node) {
		gone[x] = true
		for _, c := range x.node().children {
			mark(c)
		}
	}
	mark(n)

	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool {
		if gone[e.Start()] || gone[e.End()] {
			e.Start().RemoveConnection(e)
			if e.End() != nil {
				e.End().RemoveConnection(e)
			}
			return true
		}
		return false
	})
	n.node().assignGraph(nil)
	d.revision++
}

// Connect adds e to the diagram. Both endpoints must belong to the diagram
// and accept the connection.
func (d *Diagram) Connect(e Edge) error {
	if e == nil || isNilNode(e.Start()) || isNilNode(e.End()) {
		return errors.InvalidArgument("edge needs a start and an end node")
	}
	start, end := e.Start(), e.End()
	if start.Graph() != Graph(d) || end.Graph() != Graph(d) {
		return errors.InvalidArgument("edge endpoints must belong to this diagram")
	}
	if !start.AddConnection(e) || !end.AddConnection(e) {
		return errors.InvalidArgument("connection refused by %s", start.ID())
	}
	d.edges = append(d.edges, e)
	start.OnConnectedEdge(e)
	if end != start {
		end.OnConnectedEdge(e)
	}
	d.revision++
	return nil
}

// Disconnect removes e. Unknown edges are ignored.
func (d *Diagram) Disconnect(e Edge) {
	i := slices.Index(d.edges, e)
	if i < 0 {
		return
	}
	d.edges = slices.Delete(d.edges, i, i+1)
	e.Start().RemoveConnection(e)
	e.End().RemoveConnection(e)
	d.revision++
}
