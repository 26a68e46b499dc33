package scene

import (
	"github.com/matzehuels/scenegraph/pkg/content"
	"github.com/matzehuels/scenegraph/pkg/geom"
)

// =============================================================================
// Box
// =============================================================================

// Box is a labelled rectangle, the common class/entity node.
type Box struct {
	base
	label string
}

// NewBox creates a box at the origin with a fresh identity.
func NewBox(label string) *Box {
	n := &Box{label: label}
	n.init(n, n.newContent)
	return n
}

func (n *Box) newContent() content.Content { return content.NewBox(n.label) }

func (n *Box) Kind() Kind { return KindBox }

func (n *Box) Label() string { return n.label }

func (n *Box) SetLabel(label string) {
	n.label = label
	n.FinishDeserializing()
}

// Clone returns a deep copy with revision 0.
func (n *Box) Clone() Node {
	c := &Box{label: n.label}
	c.init(c, c.newContent)
	c.cloneFrom(&n.base)
	return c
}

// =============================================================================
// Circle
// =============================================================================

// Circle is a labelled ellipse, used for states and use cases.
type Circle struct {
	base
	label string
}

// NewCircle creates a circle at the origin with a fresh identity.
func NewCircle(label string) *Circle {
	n := &Circle{label: label}
	n.init(n, n.newContent)
	return n
}

func (n *Circle) newContent() content.Content { return content.NewEllipse(n.label) }

func (n *Circle) Kind() Kind { return KindCircle }

func (n *Circle) Label() string { return n.label }

func (n *Circle) SetLabel(label string) {
	n.label = label
	n.FinishDeserializing()
}

// Clone returns a deep copy with revision 0.
func (n *Circle) Clone() Node {
	c := &Circle{label: n.label}
	c.init(c, c.newContent)
	c.cloneFrom(&n.base)
	return c
}

// =============================================================================
// Container
// =============================================================================

// Container is a labelled frame that grows to enclose its children, like a
// UML package. Children are kept below the label band: a child moved above
// it, or left of the frame, is pushed back inside.
type Container struct {
	base
	label string
}

// NewContainer creates an empty container at the origin.
func NewContainer(label string) *Container {
	n := &Container{label: label}
	n.init(n, n.newContent)
	return n
}

func (n *Container) newContent() content.Content {
	return content.NewFrame(n.label, n.childExtent)
}

// childExtent is the union of the children's boxes in this node's frame.
func (n *Container) childExtent() geom.Rect {
	var ext geom.Rect
	for _, c := range n.children {
		size := c.Content().Bounds()
		ext = ext.Union(geom.RectAt(c.Location(), size.Width, size.Height))
	}
	return ext
}

func (n *Container) Kind() Kind { return KindContainer }

func (n *Container) Label() string { return n.label }

func (n *Container) SetLabel(label string) {
	n.label = label
	n.FinishDeserializing()
}

// AddChild inserts child and reflows the frame around it.
func (n *Container) AddChild(child Node, index int) bool {
	if !n.base.AddChild(child, index) {
		return false
	}
	n.OnChildLocationChanged(child)
	return true
}

// RemoveChild removes child and shrinks the frame.
func (n *Container) RemoveChild(child Node) {
	n.base.RemoveChild(child)
	n.reflow()
}

// reflow resizes the frame and lets an enclosing container follow.
func (n *Container) reflow() {
	n.Content().Refresh()
	if p := n.parent; p != nil {
		p.OnChildLocationChanged(n.self)
	}
}

// OnChildLocationChanged pushes child back inside the content area if
// needed, then resizes the frame.
func (n *Container) OnChildLocationChanged(child Node) {
	var header float64
	if f, ok := n.Content().(*content.Frame); ok {
		header = f.Header()
	}
	loc := child.Location()
	inside := geom.Pt(max(loc.X, content.Padding), max(loc.Y, header+content.Padding))
	if inside != loc {
		// SetLocation re-enters this hook with an in-bounds location.
		_ = child.SetLocation(inside)
		return
	}
	n.reflow()
}

// Clone returns a deep copy with revision 0.
func (n *Container) Clone() Node {
	c := &Container{label: n.label}
	c.init(c, c.newContent)
	c.cloneFrom(&n.base)
	c.Content().Refresh()
	return c
}

// =============================================================================
// Construction helpers
// =============================================================================

// New creates a node of the given kind. Unknown kinds yield nil.
func New(kind Kind, label string) Node {
	switch kind {
	case KindBox:
		return NewBox(label)
	case KindCircle:
		return NewCircle(label)
	case KindContainer:
		return NewContainer(label)
	default:
		return nil
	}
}

// Clone duplicates n and its subtree. It fails with CLONE_FAILURE when n is
// nil; callers that cannot tolerate a failed clone must stop on error.
func Clone(n Node) (Node, error) {
	if isNilNode(n) {
		return nil, errCloneNil
	}
	return n.Clone(), nil
}

func isNilNode(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Box:
		return v == nil
	case *Circle:
		return v == nil
	case *Container:
		return v == nil
	default:
		return false
	}
}
