package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/scenegraph/pkg/content"
	"github.com/matzehuels/scenegraph/pkg/geom"
	"github.com/matzehuels/scenegraph/pkg/render"
	"github.com/matzehuels/scenegraph/pkg/scene"
)

func TestCanvas(t *testing.T) {
	tests := []struct {
		name string
		draw func(c *Canvas)
		want string
	}{
		{
			name: "rect",
			draw: func(c *Canvas) { c.Rect(geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}, content.DefaultStyle) },
			want: `<rect x="1.00" y="2.00" width="3.00" height="4.00" fill="white" stroke="black" stroke-width="1"/>`,
		},
		{
			name: "dashed ellipse",
			draw: func(c *Canvas) {
				c.Ellipse(geom.Rect{Width: 10, Height: 4}, content.Style{Stroke: "red", Dashed: true})
			},
			want: `<ellipse cx="5.00" cy="2.00" rx="5.00" ry="2.00" fill="none" stroke="red" stroke-dasharray="6,4"/>`,
		},
		{
			name: "line ignores fill",
			draw: func(c *Canvas) { c.Line(geom.Pt(0, 0), geom.Pt(5, 5), content.DefaultStyle) },
			want: `<line x1="0.00" y1="0.00" x2="5.00" y2="5.00" fill="none" stroke="black" stroke-width="1"/>`,
		},
		{
			name: "escaped text",
			draw: func(c *Canvas) { c.Text(geom.Pt(1, 1), "a<b & c", content.DefaultStyle) },
			want: `>a&lt;b &amp; c</text>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.draw(NewCanvas(&buf))
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want to contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	d := scene.NewDiagram()
	a := scene.NewBox("Order")
	b := scene.NewCircle("Paid")
	a.SetToolTip("an order")
	_ = d.AddNode(a, geom.Pt(0, 0))
	_ = d.AddNode(b, geom.Pt(200, 0))
	l := scene.NewLine(a, b)
	l.Label = "pay"
	_ = d.Connect(l)
	_ = d.Connect(scene.NewLine(b, b))

	out := string(Render(d, render.Compute(d), WithShadows(), WithToolTips(), WithEdgeLabels()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`id="node-` + a.ID().String() + `"`,
		`<title>an order</title>`,
		`<ellipse`,
		`>Order</text>`,
		`>pay</text>`,
		`<path class="edge"`,
		`marker-end="url(#arrow)"`,
		`fill="#00000022"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
	if got := strings.Count(out, `class="edge"`); got != 2 {
		t.Errorf("rendered %d edges, want 2", got)
	}
}

func TestRenderPlain(t *testing.T) {
	d := scene.NewDiagram()
	n := scene.NewBox("x")
	n.SetToolTip("hidden")
	_ = d.AddNode(n, geom.Pt(0, 0))

	out := string(Render(d, render.Compute(d)))
	if strings.Contains(out, "<title>") || strings.Contains(out, "#00000022") {
		t.Error("options leaked into a plain render")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("document not closed")
	}
}
