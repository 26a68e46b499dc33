package content

import "github.com/matzehuels/scenegraph/pkg/geom"

// Ellipse is a labelled ellipse inscribed in a box sized to its label.
type Ellipse struct {
	Label string
	Style Style

	size geom.Rect
}

// NewEllipse returns an ellipse sized to label.
func NewEllipse(label string) *Ellipse {
	e := &Ellipse{Label: label, Style: DefaultStyle}
	e.Refresh()
	return e
}

func (e *Ellipse) Bounds() geom.Rect { return e.size }

// Contains uses the ellipse equation rather than the bounding box.
func (e *Ellipse) Contains(p geom.Point) bool {
	rx, ry := e.size.Width/2, e.size.Height/2
	if rx == 0 || ry == 0 {
		return false
	}
	dx := (p.X - e.size.CenterX()) / rx
	dy := (p.Y - e.size.CenterY()) / ry
	return dx*dx+dy*dy <= 1
}

func (e *Ellipse) Draw(c Canvas, at geom.Point) {
	r := e.size.Translate(at.X, at.Y)
	c.Ellipse(r, e.Style)
	drawLabel(c, r, r.CenterY()-LineHeight/2-Padding, e.Label, e.Style)
}

func (e *Ellipse) Refresh() {
	w, h := measure(e.Label)
	// An ellipse needs about sqrt(2) times the text box to enclose it.
	e.size = geom.Rect{Width: w * 1.4, Height: h * 1.4}
}
