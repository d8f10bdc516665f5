package expression

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestConvertFlipsVerticalAxis(t *testing.T) {
	identity := func(p NormalizedPoint) RenderPoint {
		return RenderPoint{X: p.X, Y: p.Y}
	}

	tests := []struct {
		name string
		in   NormalizedPoint
		want RenderPoint
	}{
		{"bottom-left maps to top-left", NormalizedPoint{0, 0}, RenderPoint{0, 1}},
		{"top-right maps to bottom-right", NormalizedPoint{1, 1}, RenderPoint{1, 0}},
		{"center is fixed", NormalizedPoint{0.5, 0.5}, RenderPoint{0.5, 0.5}},
		{"x is untouched", NormalizedPoint{0.25, 0.75}, RenderPoint{0.25, 0.25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.in, identity)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Convert(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertFlipsBeforeTransform(t *testing.T) {
	// A transform sensitive to ordering: scale y by 100. If the flip
	// ran after the transform the result would be 1-80 = -79.
	tr := func(p NormalizedPoint) RenderPoint {
		return RenderPoint{X: p.X, Y: p.Y * 100}
	}
	got := Convert(NormalizedPoint{X: 0, Y: 0.2}, tr)
	if !near(got.Y, 80) {
		t.Errorf("Convert y = %v, want 80", got.Y)
	}
}

func TestViewportTransform(t *testing.T) {
	tr := ViewportTransform(640, 480, 10, 20)

	got := Convert(NormalizedPoint{X: 0.5, Y: 1}, tr)
	want := RenderPoint{X: 10 + 320, Y: 20 + 0}
	if !near(got.X, want.X) || !near(got.Y, want.Y) {
		t.Errorf("Convert = %v, want %v", got, want)
	}

	got = Convert(NormalizedPoint{X: 0, Y: 0}, tr)
	want = RenderPoint{X: 10, Y: 20 + 480}
	if !near(got.X, want.X) || !near(got.Y, want.Y) {
		t.Errorf("Convert = %v, want %v", got, want)
	}
}

func TestConvertAll(t *testing.T) {
	tr := ViewportTransform(100, 100, 0, 0)

	if got := ConvertAll(nil, tr); got != nil {
		t.Errorf("ConvertAll(nil) = %v, want nil", got)
	}

	got := ConvertAll([]NormalizedPoint{{0.1, 0.9}, {0.5, 0.5}}, tr)
	want := []RenderPoint{{10, 10}, {50, 50}}
	if len(got) != len(want) {
		t.Fatalf("ConvertAll returned %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if !near(got[i].X, want[i].X) || !near(got[i].Y, want[i].Y) {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestConvertRectKeepsCornersOrdered(t *testing.T) {
	tr := ViewportTransform(100, 100, 0, 0)

	// The flip swaps the vertical extent, so Min/Max must be
	// re-normalized.
	r := ConvertRect(NormRect{
		Min: NormalizedPoint{0.2, 0.3},
		Max: NormalizedPoint{0.6, 0.8},
	}, tr)

	if r.Min.X > r.Max.X || r.Min.Y > r.Max.Y {
		t.Fatalf("corners not ordered: %+v", r)
	}
	if !near(r.Min.X, 20) || !near(r.Max.X, 60) {
		t.Errorf("horizontal extent [%v,%v], want [20,60]", r.Min.X, r.Max.X)
	}
	if !near(r.Min.Y, 20) || !near(r.Max.Y, 70) {
		t.Errorf("vertical extent [%v,%v], want [20,70]", r.Min.Y, r.Max.Y)
	}
	if !near(r.Width(), 40) || !near(r.Height(), 50) {
		t.Errorf("size %vx%v, want 40x50", r.Width(), r.Height())
	}
}
