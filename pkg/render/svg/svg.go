package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/scenegraph/pkg/content"
	"github.com/matzehuels/scenegraph/pkg/geom"
	"github.com/matzehuels/scenegraph/pkg/render"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

const arrowDefs = `  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="black"/>
    </marker>
  </defs>
`

// loopSize is how far a self-loop bulges out of its node.
const loopSize = 24.0

type Option func(*renderer)

type renderer struct {
	shadows    bool
	toolTips   bool
	edgeLabels bool
}

// WithShadows draws a drop shadow under each node's outline.
func WithShadows() Option { return func(r *renderer) { r.shadows = true } }

// WithToolTips emits node tool tips as SVG titles.
func WithToolTips() Option { return func(r *renderer) { r.toolTips = true } }

// WithEdgeLabels writes edge labels at the middle of each edge.
func WithEdgeLabels() Option { return func(r *renderer) { r.edgeLabels = true } }

// Render draws d using the geometry resolved in l. Nodes are painted
// through their own content in the layout's draw order; edges run between
// their attachment points on top.
func Render(d *scene.Diagram, l render.Layout, opts ...Option) []byte {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}

	byID := make(map[string]scene.Node)
	for _, n := range d.AllNodes() {
		byID[n.ID().String()] = n
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	buf.WriteString(arrowDefs)
	fmt.Fprintf(&buf, `<g transform="translate(%.2f %.2f)">`+"\n", -l.OriginX, -l.OriginY)

	c := NewCanvas(&buf)
	for _, b := range l.Nodes {
		n, ok := byID[b.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, `<g id="node-%s" class="node %s">`+"\n", b.ID, b.Kind)
		if r.toolTips && b.ToolTip != "" {
			fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(b.ToolTip))
		}
		if r.shadows {
			c.Rect(n.Shape().Translate(3, 3), content.Style{Fill: "#00000022"})
		}
		n.Draw(c)
		buf.WriteString("</g>\n")
	}

	edgeStyle := content.Style{Stroke: "black", StrokeWidth: 1, FontSize: 10}
	for _, e := range l.Edges {
		renderEdge(&buf, e)
		if r.edgeLabels && e.Label != "" {
			mid := midpoint(e)
			c.Text(geom.Pt(mid.X+4, mid.Y-4), e.Label, edgeStyle)
		}
	}

	buf.WriteString("</g>\n</svg>\n")
	return buf.Bytes()
}

func renderEdge(buf *bytes.Buffer, e render.EdgeRoute) {
	if e.SelfLoop {
		s := e.Start
		fmt.Fprintf(buf, `<path class="edge" d="M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f" fill="none" stroke="black" marker-end="url(#arrow)"/>`+"\n",
			s.X, s.Y-loopSize/4, s.X+loopSize, s.Y-loopSize, s.X+loopSize, s.Y+loopSize, s.X, s.Y+loopSize/4)
		return
	}
	fmt.Fprintf(buf, `<line class="edge" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" marker-end="url(#arrow)"/>`+"\n",
		e.Start.X, e.Start.Y, e.End.X, e.End.Y)
}

func midpoint(e render.EdgeRoute) geom.Point {
	if e.SelfLoop {
		return geom.Pt(e.Start.X+loopSize, e.Start.Y)
	}
	return geom.Pt((e.Start.X+e.End.X)/2, (e.Start.Y+e.End.Y)/2)
}
