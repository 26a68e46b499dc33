// Package pkg provides the core libraries for Scenegraph diagram layout.
//
// # Overview
//
// Scenegraph models a diagram as a scene graph of nodes and edges and
// computes where each edge meets the boundary of its endpoints. The pkg
// directory is organized into four main areas:
//
//  1. Model - the scene graph and its geometry ([scene], [geom], [content])
//  2. Output - layouts and rendered artifacts ([render], [io])
//  3. Infrastructure - caching, persistence, and hooks ([cache], [store], [observability])
//  4. Orchestration - load, layout, render ([pipeline])
//
// # Architecture
//
// The typical data flow through Scenegraph:
//
//	Scene document (TOML or JSON)
//	         ↓
//	    [io] package (decode into a diagram)
//	         ↓
//	    [scene] package (nodes, containment, edges, connection points)
//	         ↓
//	    [render] package (node boxes + edge attachments)
//	         ↓
//	    SVG/DOT/JSON output
//
// # Quick Start
//
//	import (
//	    "os"
//
//	    sio "github.com/matzehuels/scenegraph/pkg/io"
//	    "github.com/matzehuels/scenegraph/pkg/render"
//	    "github.com/matzehuels/scenegraph/pkg/render/svg"
//	)
//
//	d, err := sio.Import("services.toml")
//	if err != nil {
//	    return err
//	}
//	l := render.Compute(d)
//	os.WriteFile("services.svg", svg.Render(d, l), 0o644)
//
// # Package Organization
//
// ## Model
//
// [scene] - Diagrams, nodes, and edges. A node owns its children, answers
// containment queries, and assigns every attached edge a point on one of
// its four sides so that edges sharing a side are spread evenly along it.
//
// [geom] - Points, rectangles, directions, and the [geom.Cardinal] used to
// pick a side.
//
// [content] - What a node draws inside its bounds: text, shapes, and
// layouts of other content.
//
// ## Output
//
// [render] - [render.Compute] resolves a diagram into a [render.Layout].
//
//   - [render/svg]: SVG drawn through node content
//   - [render/nodelink]: Graphviz DOT with compass ports, and Graphviz SVG
//
// [io] - Scene documents in TOML and JSON.
//
// ## Infrastructure
//
// [cache] - Layout and artifact caching with file, Redis, and null backends.
//
// [store] - Diagram revision snapshots in memory or MongoDB.
//
// [observability] - Hooks for metrics and tracing backends.
//
// [pipeline] - The load, layout, render pipeline shared by the CLI and the
// HTTP server.
//
// [errors] - Coded errors with user-facing messages.
//
// [buildinfo] - Version information injected at build time.
//
// [scene]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/scene
// [geom]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/geom
// [content]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/content
// [render]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/scenegraph/pkg/buildinfo
package pkg
