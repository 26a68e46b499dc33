package geom

import (
	"math"
	"testing"
)

func TestNearestCardinal(t *testing.T) {
	tests := []struct {
		name   string
		d      Direction
		want   Cardinal
		wantOK bool
	}{
		{"north", Direction{0, -1}, North, true},
		{"south", Direction{0, 1}, South, true},
		{"east", Direction{1, 0}, East, true},
		{"west", Direction{-1, 0}, West, true},
		{"mostly east", Direction{5, -2}, East, true},
		{"mostly north", Direction{2, -5}, North, true},
		{"mostly west", Direction{-3, 1}, West, true},
		{"diagonal up-right ties to north", Direction{1, -1}, North, true},
		{"diagonal down-right ties to south", Direction{1, 1}, South, true},
		{"diagonal up-left ties to north", Direction{-2, -2}, North, true},
		{"diagonal down-left ties to south", Direction{-2, 2}, South, true},
		{"zero", Direction{}, North, false},
		{"nan", Direction{math.NaN(), 1}, North, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.d.NearestCardinal()
			if ok != tt.wantOK {
				t.Fatalf("NearestCardinal() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("NearestCardinal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCardinalRoundTrip(t *testing.T) {
	for _, c := range Cardinals {
		got, ok := c.Direction().NearestCardinal()
		if !ok || got != c {
			t.Errorf("%v.Direction().NearestCardinal() = %v, %v", c, got, ok)
		}
		if c.Opposite().Opposite() != c {
			t.Errorf("%v.Opposite().Opposite() != %v", c, c)
		}
		if c.Vertical() == c.Opposite().Vertical() {
			continue
		}
		t.Errorf("%v and its opposite disagree on Vertical()", c)
	}
}

func TestCardinalString(t *testing.T) {
	if North.String() != "North" || West.String() != "West" {
		t.Errorf("unexpected names: %s %s", North, West)
	}
	if Cardinal(9).String() != "Unknown" {
		t.Errorf("Cardinal(9).String() = %s, want Unknown", Cardinal(9))
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 40}

	if r.MinX() != 10 || r.MaxX() != 110 {
		t.Errorf("X edges = %v..%v, want 10..110", r.MinX(), r.MaxX())
	}
	if r.MinY() != 20 || r.MaxY() != 60 {
		t.Errorf("Y edges = %v..%v, want 20..60", r.MinY(), r.MaxY())
	}
	if got := r.Center(); got != Pt(60, 40) {
		t.Errorf("Center() = %v, want (60, 40)", got)
	}
	if !r.Contains(Pt(110, 60)) {
		t.Error("Contains() should include the boundary")
	}
	if r.Contains(Pt(111, 60)) {
		t.Error("Contains() should exclude points outside")
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 5, Width: 10, Height: 20}

	got := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 30, Height: 25}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty.Union(b) = %+v, want %+v", got, b)
	}
}

func TestPointIsFinite(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(-3.5, 1e9), true},
		{Pt(math.NaN(), 0), false},
		{Pt(0, math.Inf(1)), false},
	}
	for _, tt := range tests {
		if got := tt.p.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestDirectionBetween(t *testing.T) {
	d := DirectionBetween(Pt(0, 100), Pt(0, 0))
	if c, _ := d.NearestCardinal(); c != North {
		t.Errorf("upward vector classified as %v, want North", c)
	}
	if n := (Direction{X: 3, Y: 4}).Normalize(); math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize() length = %v, want 1", n.Length())
	}
}
