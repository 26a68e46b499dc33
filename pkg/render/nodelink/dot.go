package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/scenegraph/pkg/render"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

// Options configures DOT generation.
type Options struct {
	// Detailed appends the node kind and z to each label.
	Detailed bool
	// Unpinned lets Graphviz place nodes freely instead of pinning them to
	// their diagram positions.
	Unpinned bool
}

// compass maps an attachment side to the Graphviz port on that side of
// the box: an edge arriving heading North sits on the bottom edge.
var compass = map[string]string{
	"North": "s",
	"South": "n",
	"East":  "w",
	"West":  "e",
}

// ToDOT converts a resolved layout to Graphviz DOT. Nodes carry their
// diagram size and, unless [Options.Unpinned] is set, a pinned position so
// that a neato render reproduces the diagram. Edge ports follow the sides
// chosen by the attachment layout.
func ToDOT(l render.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [fixedsize=true, style=filled, fillcolor=white, fontname=monospace, fontsize=12];\n")
	buf.WriteString("\n")

	for _, b := range l.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(fmtAttrs(l, b, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		var attrs []string
		if e.SelfLoop {
			attrs = append(attrs, "tailport=e", "headport=e")
		} else {
			if p, ok := compass[e.FromSide]; ok {
				attrs = append(attrs, "tailport="+p)
			}
			if p, ok := compass[e.ToSide]; ok {
				attrs = append(attrs, "headport="+p)
			}
		}
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		fmt.Fprintf(&buf, "  %q -> %q", e.From, e.To)
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b render.NodeBox, detailed bool) string {
	if !detailed {
		return b.Label
	}
	return fmt.Sprintf("%s\n%s z=%d", b.Label, b.Kind, b.Z)
}

func fmtAttrs(l render.Layout, b render.NodeBox, opts Options) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(b, opts.Detailed)),
		fmt.Sprintf("width=%.3f", b.Width/72),
		fmt.Sprintf("height=%.3f", b.Height/72),
	}
	switch b.Kind {
	case scene.KindCircle:
		attrs = append(attrs, "shape=ellipse")
	case scene.KindContainer:
		attrs = append(attrs, "shape=box", "labelloc=t", "style=\"filled,dashed\"")
	default:
		attrs = append(attrs, "shape=box")
	}
	if b.ToolTip != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", b.ToolTip))
	}
	if !opts.Unpinned {
		// Graphviz's y axis points up.
		x := b.X + b.Width/2 - l.OriginX
		y := l.Height - (b.Y + b.Height/2 - l.OriginY)
		attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", x, y))
	}
	return attrs
}

// RenderSVG renders DOT source to SVG with Graphviz's neato engine, which
// honours pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
