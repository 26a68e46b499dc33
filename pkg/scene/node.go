package scene

import (
	"slices"

	"github.com/matzehuels/scenegraph/pkg/content"
	"github.com/matzehuels/scenegraph/pkg/errors"
	"github.com/matzehuels/scenegraph/pkg/geom"
)

// Kind names a node variant.
type Kind string

// Node variants.
const (
	KindBox       Kind = "box"
	KindCircle    Kind = "circle"
	KindContainer Kind = "container"
)

// Node is a positioned, containment-capable entity of a diagram.
//
// The set of implementations is closed: [Box], [Circle] and [Container].
// All share the tree, identity and attachment behaviour; they differ in the
// content they draw and in how they react to their children moving.
//
// Nodes are not safe for concurrent use. A diagram is mutated by a single
// editing session at a time.
type Node interface {
	Kind() Kind
	Label() string
	SetLabel(label string)

	ID() ID
	// SetID fails with INVALID_ARGUMENT for the zero ID.
	SetID(id ID) error
	Revision() int
	// SetRevision fails with INVALID_ARGUMENT for a negative revision.
	SetRevision(rev int) error
	IncrementRevision()

	// Location is relative to the parent, or to the diagram origin for
	// root nodes.
	Location() geom.Point
	// SetLocation fails with INVALID_ARGUMENT for a non-finite point and
	// otherwise notifies the parent through OnChildLocationChanged.
	SetLocation(p geom.Point) error
	AbsoluteLocation() geom.Point
	// Translate moves the node through SetLocation and fails the same way
	// when the result is not finite.
	Translate(dx, dy float64) error

	// Bounds is the content box placed at the absolute location.
	Bounds() geom.Rect
	// Shape is the outline used for drop shadows.
	Shape() geom.Rect
	// Contains reports whether the absolute point p hits the node.
	Contains(p geom.Point) bool
	// Draw paints the node's content at its absolute location.
	Draw(c content.Canvas)

	Parent() Node
	Children() []Node
	AddChild(child Node, index int) bool
	RemoveChild(child Node)
	OnChildLocationChanged(child Node)

	Z() int
	SetZ(z int)

	// Graph never returns nil; unattached nodes report EmptyGraph.
	Graph() Graph
	// SetGraph fails with INVALID_ARGUMENT for a nil graph and propagates
	// to every descendant.
	SetGraph(g Graph) error

	ToolTip() string
	SetToolTip(label string)

	Content() content.Content
	EnsureInitialized()
	FinishDeserializing()

	AddConnection(e Edge) bool
	RemoveConnection(e Edge)
	OnConnectedEdge(e Edge)
	ConnectedEdges() []Edge
	EdgesOnSameSide(e Edge) []Edge
	ConnectionPoint(e Edge) geom.Point

	Clone() Node

	node() *base
}

// base carries the state and behaviour shared by every variant. Variants
// embed it and pass themselves as self so that links stored in other nodes
// always hold the outer value.
type base struct {
	self     Node
	id       ID
	revision int
	location geom.Point
	z        int
	toolTip  string

	// parent is a relation only; the parent owns the child, never the
	// reverse.
	parent   Node
	children []Node

	graph Graph

	content content.Content
	build   func() content.Content
}

func (b *base) init(self Node, build func() content.Content) {
	b.self = self
	b.id = NewID()
	b.build = build
	b.EnsureInitialized()
}

func (b *base) node() *base { return b }

// =============================================================================
// Identity & Revision
// =============================================================================

func (b *base) ID() ID { return b.id }

func (b *base) SetID(id ID) error {
	if id.IsZero() {
		return errors.InvalidArgument("id can't be nil")
	}
	b.id = id
	return nil
}

func (b *base) Revision() int { return b.revision }

func (b *base) SetRevision(rev int) error {
	if rev < 0 {
		return errors.InvalidArgument("revision can't be negative: %d", rev)
	}
	b.revision = rev
	return nil
}

func (b *base) IncrementRevision() { b.revision++ }

// =============================================================================
// Geometry
// =============================================================================

func (b *base) Location() geom.Point { return b.location }

func (b *base) SetLocation(p geom.Point) error {
	if !p.IsFinite() {
		return errors.InvalidArgument("location can't be absent: %v", p)
	}
	b.location = p
	if b.parent != nil {
		b.parent.OnChildLocationChanged(b.self)
	}
	return nil
}

func (b *base) AbsoluteLocation() geom.Point {
	if b.parent == nil {
		return b.location
	}
	return b.parent.AbsoluteLocation().Add(b.location)
}

func (b *base) Translate(dx, dy float64) error {
	return b.SetLocation(b.location.Translate(dx, dy))
}

func (b *base) Bounds() geom.Rect {
	size := b.Content().Bounds()
	return geom.RectAt(b.AbsoluteLocation(), size.Width, size.Height)
}

func (b *base) Shape() geom.Rect { return b.Bounds() }

func (b *base) Contains(p geom.Point) bool {
	return b.Content().Contains(p.Sub(b.AbsoluteLocation()))
}

func (b *base) Draw(c content.Canvas) {
	b.Content().Draw(c, b.AbsoluteLocation())
}

// =============================================================================
// Tree
// =============================================================================

func (b *base) Parent() Node { return b.parent }

// Children returns a copy of the child sequence in z/insertion order.
func (b *base) Children() []Node { return slices.Clone(b.children) }

// AddChild detaches child from its current parent, inserts it at index and
// gives it this node's graph. Out-of-range indexes are clamped. It returns
// false for a nil child or when the insertion would create a cycle.
func (b *base) AddChild(child Node, index int) bool {
	if child == nil || b.isSelfOrAncestor(child) {
		return false
	}
	if old := child.Parent(); old != nil {
		old.RemoveChild(child)
	}
	index = min(max(index, 0), len(b.children))
	b.children = slices.Insert(b.children, index, child)
	child.node().parent = b.self
	child.node().assignGraph(b.graph)
	return true
}

// RemoveChild is a no-op unless child's parent is this node. The removed
// child's parent link is cleared.
func (b *base) RemoveChild(child Node) {
	if child == nil || child.Parent() != b.self {
		return
	}
	i := slices.Index(b.children, child)
	if i < 0 {
		return
	}
	b.children = slices.Delete(b.children, i, i+1)
	child.node().parent = nil
}

// OnChildLocationChanged is the reflow hook; the default does nothing.
func (b *base) OnChildLocationChanged(Node) {}

func (b *base) isSelfOrAncestor(n Node) bool {
	for cur := b.self; cur != nil; cur = cur.Parent() {
		if cur == n {
			return true
		}
	}
	return false
}

func (b *base) Z() int { return b.z }

func (b *base) SetZ(z int) { b.z = z }

// =============================================================================
// Graph
// =============================================================================

func (b *base) Graph() Graph {
	if b.graph == nil {
		return EmptyGraph
	}
	return b.graph
}

func (b *base) SetGraph(g Graph) error {
	if g == nil {
		return errors.InvalidArgument("graph can't be nil")
	}
	b.assignGraph(g)
	return nil
}

// assignGraph propagates g (possibly nil) through the subtree.
func (b *base) assignGraph(g Graph) {
	b.graph = g
	for _, c := range b.children {
		c.node().assignGraph(g)
	}
}

// =============================================================================
// Cosmetics
// =============================================================================

func (b *base) ToolTip() string { return b.toolTip }

func (b *base) SetToolTip(label string) { b.toolTip = label }

// =============================================================================
// Content
// =============================================================================

// Content returns the node's drawable shape, building it on first use.
func (b *base) Content() content.Content {
	b.EnsureInitialized()
	return b.content
}

// EnsureInitialized builds the content once. Calling it again is a no-op.
func (b *base) EnsureInitialized() {
	if b.content == nil && b.build != nil {
		b.content = b.build()
	}
}

// FinishDeserializing rebuilds the content structure from the node's
// persisted fields and refreshes it. Loaders call it once per node, children
// first.
func (b *base) FinishDeserializing() {
	if b.build == nil {
		return
	}
	b.content = b.build()
	b.content.Refresh()
}

// =============================================================================
// Connections
// =============================================================================

// AddConnection accepts any edge that has an end node.
func (b *base) AddConnection(e Edge) bool { return e != nil && e.End() != nil }

func (b *base) RemoveConnection(Edge) {}

func (b *base) OnConnectedEdge(Edge) {}

// ConnectedEdges is the package-level ConnectedEdges over the node's own
// graph.
func (b *base) ConnectedEdges() []Edge { return ConnectedEdges(b.Graph(), b.self) }

// EdgesOnSameSide is the package-level EdgesOnSameSide over the node's own
// graph.
func (b *base) EdgesOnSameSide(e Edge) []Edge { return EdgesOnSameSide(b.Graph(), b.self, e) }

// ConnectionPoint resolves where e attaches to this node within the node's
// own graph. See the package-level ConnectionPoint.
func (b *base) ConnectionPoint(e Edge) geom.Point {
	return ConnectionPoint(b.Graph(), b.self, e)
}

// =============================================================================
// Cloning
// =============================================================================

// cloneFrom copies identity, location and cosmetics from src, resets the
// revision, and recursively clones src's children under b.self.
func (b *base) cloneFrom(src *base) {
	b.id = src.id.Clone()
	b.revision = 0
	b.location = src.location
	b.z = src.z
	b.toolTip = src.toolTip
	b.children = make([]Node, 0, len(src.children))
	for _, c := range src.children {
		cc := c.Clone()
		cc.node().parent = b.self
		b.children = append(b.children, cc)
	}
}
