package content

import "github.com/matzehuels/scenegraph/pkg/geom"

// Box is a labelled rectangle. Its size follows the label unless a larger
// fixed size is requested.
type Box struct {
	Label  string
	Style  Style
	Width  float64 // minimum width; 0 means "fit the label"
	Height float64 // minimum height; 0 means "fit the label"

	size geom.Rect
}

// NewBox returns a box sized to label.
func NewBox(label string) *Box {
	b := &Box{Label: label, Style: DefaultStyle}
	b.Refresh()
	return b
}

func (b *Box) Bounds() geom.Rect { return b.size }

func (b *Box) Contains(p geom.Point) bool { return b.size.Contains(p) }

func (b *Box) Draw(c Canvas, at geom.Point) {
	r := b.size.Translate(at.X, at.Y)
	c.Rect(r, b.Style)
	drawLabel(c, r, r.Y, b.Label, b.Style)
}

func (b *Box) Refresh() {
	w, h := measure(b.Label)
	b.size = geom.Rect{Width: max(w, b.Width), Height: max(h, b.Height)}
}
