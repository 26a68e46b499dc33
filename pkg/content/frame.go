package content

import "github.com/matzehuels/scenegraph/pkg/geom"

// Frame is a labelled rectangle that encloses an extent computed by its
// owner. The label sits in a header band above the extent.
type Frame struct {
	Label string
	Style Style

	// Extent returns the local box the frame must enclose, or an empty
	// rectangle when there is nothing to wrap. It may be nil.
	Extent func() geom.Rect

	size   geom.Rect
	header float64
}

// NewFrame returns a frame around extent.
func NewFrame(label string, extent func() geom.Rect) *Frame {
	f := &Frame{Label: label, Style: DefaultStyle, Extent: extent}
	f.Refresh()
	return f
}

func (f *Frame) Bounds() geom.Rect { return f.size }

func (f *Frame) Contains(p geom.Point) bool { return f.size.Contains(p) }

// Header returns the height of the label band.
func (f *Frame) Header() float64 { return f.header }

func (f *Frame) Draw(c Canvas, at geom.Point) {
	r := f.size.Translate(at.X, at.Y)
	c.Rect(r, f.Style)
	if f.Label == "" {
		return
	}
	c.Line(geom.Pt(r.MinX(), r.MinY()+f.header), geom.Pt(r.MaxX(), r.MinY()+f.header), f.Style)
	drawLabel(c, r, r.MinY(), f.Label, f.Style)
}

func (f *Frame) Refresh() {
	w, h := measure(f.Label)
	f.header = h
	if f.Label == "" {
		f.header = 0
	}
	f.size = geom.Rect{Width: w, Height: h}

	if f.Extent == nil {
		return
	}
	ext := f.Extent()
	if ext.IsEmpty() {
		return
	}
	f.size.Width = max(f.size.Width, ext.MaxX()+Padding)
	f.size.Height = max(f.size.Height, ext.MaxY()+Padding)
}
