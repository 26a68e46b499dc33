// Package nodelink exports diagrams as Graphviz node-link graphs.
//
// # Overview
//
// [ToDOT] writes a resolved [render.Layout] as DOT source. Each node keeps
// its diagram size and is pinned to its diagram position; each edge leaves
// and enters through the compass port matching the side the attachment
// layout picked for it. The DOT can be:
//
//   - Rendered in-process via [RenderSVG] (neato engine)
//   - Saved and processed with external Graphviz tools
//
// Usage:
//
//	l := render.Compute(d)
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels include the kind and z order
//   - Unpinned: drop positions and let Graphviz lay the graph out itself
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], a WebAssembly build of
// Graphviz, so no system installation is needed.
//
// [render.Layout]: github.com/matzehuels/scenegraph/pkg/render.Layout
package nodelink
