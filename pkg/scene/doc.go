// Package scene is the diagram scene graph: nodes in a containment tree,
// the edges between them, and the layout of edge attachment points.
//
// # Nodes
//
// A [Node] has an identity ([ID]), a revision counter, a location relative
// to its parent, an ordered list of children and a back-link to its parent.
// Absolute positions compose up the tree:
//
//	abs(n) = loc(n)                  if n has no parent
//	abs(n) = abs(parent(n)) + loc(n) otherwise
//
// Reparenting is atomic: [Node.AddChild] first detaches the child from its
// old parent. [Node.RemoveChild] ignores children it does not own and clears
// the back-link of the ones it removes.
//
// The variants are [Box], [Circle] and [Container]. Each draws a shape from
// package content; a Container also grows around its children and keeps
// them below its label.
//
// # Graphs and edges
//
// A [Graph] enumerates nodes and edges. [Diagram] is the concrete graph;
// nodes attached to one report it from [Node.Graph], unattached nodes report
// [EmptyGraph]. An [Edge] exposes its endpoints and the direction along
// which it arrives at a node; [Line] is the straight-line edge.
//
// # Attachment layout
//
// [ConnectionPoint] decides where an edge meets a node's boundary:
//
//  1. The arrival direction is quantized to North, East, South or West.
//  2. [EdgesOnSameSide] collects the node's edges on that side, plus every
//     self-loop, sorted left-to-right or top-to-bottom.
//  3. The side is divided evenly and each edge takes one division point,
//     so k edges never share a point nor touch a corner.
//
// The layout functions take the graph explicitly; the Node methods of the
// same name use the node's own graph.
//
// # Errors
//
// Rejected mutations return an INVALID_ARGUMENT error from package errors
// and leave the node unchanged. [Clone] returns CLONE_FAILURE for a nil
// source. Layout queries never fail: disconnected or indeterminate edges
// yield empty lists and centre points.
package scene
