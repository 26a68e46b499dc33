// Package content supplies the drawable shapes a scene node is rendered with.
//
// A [Content] knows its own size and how to paint itself onto a [Canvas] at
// a given absolute location. It never knows where the node sits in the tree:
// the scene package composes content with node position.
//
// Three shapes are provided:
//
//   - [Box]: a labelled rectangle sized to its text
//   - [Ellipse]: a labelled ellipse sized to its text
//   - [Frame]: a labelled rectangle that grows to enclose an extent supplied
//     by its owner (used by container nodes to wrap their children)
//
// Text is measured in terminal cells with go-runewidth, so wide glyphs take
// two cells. One cell is [CellWidth] units wide.
package content
