package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/scenegraph/pkg/content"
	"github.com/matzehuels/scenegraph/pkg/geom"
)

// Canvas writes content drawing primitives as SVG elements.
type Canvas struct {
	buf    *bytes.Buffer
	indent string
}

// NewCanvas returns a canvas appending to buf.
func NewCanvas(buf *bytes.Buffer) *Canvas {
	return &Canvas{buf: buf, indent: "  "}
}

func (c *Canvas) Rect(r geom.Rect, s content.Style) {
	fmt.Fprintf(c.buf, `%s<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s/>`+"\n",
		c.indent, r.X, r.Y, r.Width, r.Height, paint(s))
}

func (c *Canvas) Ellipse(r geom.Rect, s content.Style) {
	fmt.Fprintf(c.buf, `%s<ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f"%s/>`+"\n",
		c.indent, r.CenterX(), r.CenterY(), r.Width/2, r.Height/2, paint(s))
}

func (c *Canvas) Line(from, to geom.Point, s content.Style) {
	s.Fill = ""
	fmt.Fprintf(c.buf, `%s<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
		c.indent, from.X, from.Y, to.X, to.Y, paint(s))
}

func (c *Canvas) Text(at geom.Point, text string, s content.Style) {
	fmt.Fprintf(c.buf, `%s<text x="%.2f" y="%.2f" font-family="monospace" font-size="%.0f" fill="%s">%s</text>`+"\n",
		c.indent, at.X, at.Y, s.FontSize, orDefault(s.Stroke, "black"), EscapeXML(text))
}

func paint(s content.Style) string {
	var b strings.Builder
	fmt.Fprintf(&b, ` fill="%s" stroke="%s"`, orDefault(s.Fill, "none"), orDefault(s.Stroke, "none"))
	if s.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke-width="%g"`, s.StrokeWidth)
	}
	if s.Dashed {
		b.WriteString(` stroke-dasharray="6,4"`)
	}
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
