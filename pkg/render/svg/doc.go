// Package svg renders diagrams as standalone SVG documents.
//
// [Canvas] implements the content drawing primitives on top of SVG
// elements, so every node paints itself exactly as its content describes.
// [Render] walks a resolved [render.Layout], draws the nodes in order and
// adds the edges with arrow heads at their attachment points.
//
//	l := render.Compute(d)
//	out := svg.Render(d, l, svg.WithShadows(), svg.WithEdgeLabels())
//
// [render.Layout]: github.com/matzehuels/scenegraph/pkg/render.Layout
package svg
