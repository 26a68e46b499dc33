package content

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/scenegraph/pkg/geom"
)

// Layout constants shared by all shapes.
const (
	CellWidth  = 8.0  // width of one text cell
	LineHeight = 16.0 // height of one text line
	Padding    = 8.0  // inner margin around text

	MinWidth  = 40.0
	MinHeight = 24.0
)

// Style carries the paint attributes handed to a Canvas.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Dashed      bool
	FontSize    float64
}

// DefaultStyle is the style new shapes start with.
var DefaultStyle = Style{
	Fill:        "white",
	Stroke:      "black",
	StrokeWidth: 1,
	FontSize:    12,
}

// Canvas is the set of drawing primitives a renderer provides. All
// coordinates are absolute.
type Canvas interface {
	Rect(r geom.Rect, s Style)
	Ellipse(r geom.Rect, s Style)
	Line(from, to geom.Point, s Style)
	Text(at geom.Point, text string, s Style)
}

// Content is a drawable shape with a size but no position of its own.
type Content interface {
	// Bounds returns the shape's box in local coordinates; the origin is
	// always (0, 0).
	Bounds() geom.Rect

	// Contains reports whether the local point p lies inside the shape.
	Contains(p geom.Point) bool

	// Draw paints the shape with its top-left corner at the absolute point at.
	Draw(c Canvas, at geom.Point)

	// Refresh recomputes cached geometry after the shape's inputs changed.
	Refresh()
}

// measure returns the size a block of text needs, padding included.
func measure(label string) (w, h float64) {
	lines := strings.Split(label, "\n")
	cells := 0
	for _, l := range lines {
		cells = max(cells, runewidth.StringWidth(l))
	}
	w = float64(cells)*CellWidth + 2*Padding
	h = float64(len(lines))*LineHeight + 2*Padding
	return max(w, MinWidth), max(h, MinHeight)
}

// drawLabel writes each line of label centred horizontally in r, starting
// at top.
func drawLabel(c Canvas, r geom.Rect, top float64, label string, s Style) {
	if label == "" {
		return
	}
	for i, line := range strings.Split(label, "\n") {
		w := float64(runewidth.StringWidth(line)) * CellWidth
		at := geom.Pt(r.CenterX()-w/2, top+Padding+float64(i+1)*LineHeight-4)
		c.Text(at, line, s)
	}
}
