// Package render turns a diagram into output geometry and artifacts.
//
// # Overview
//
// [Compute] resolves a [scene.Diagram] into a [Layout]: every node's
// absolute box in draw order, and every edge's two attachment points with
// the side each one sits on. The layout is the single input of the output
// formats:
//
//   - JSON (this package, [Layout.WriteJSON])
//   - SVG drawn through each node's content (in [svg] subpackage)
//   - DOT with pinned positions, rendered by Graphviz (in [nodelink])
//
// A typical render:
//
//	d, _ := io.Import("billing.toml")
//	l := render.Compute(d)
//	out := svg.Render(d, l)
//
// # Fingerprints
//
// [Layout.Fingerprint] hashes the resolved geometry. Two layouts with the
// same fingerprint draw identically, which lets caches skip re-rendering
// when an edit did not move anything.
//
// [svg]: github.com/matzehuels/scenegraph/pkg/render/svg
// [nodelink]: github.com/matzehuels/scenegraph/pkg/render/nodelink
package render
