package expression

import "testing"

func TestExtractMouthEmpty(t *testing.T) {
	if _, ok := ExtractMouth(nil, 0.15, 5, 20); ok {
		t.Error("ok = true for empty lips, want false")
	}
}

func TestExtractMouthOpenness(t *testing.T) {
	tests := []struct {
		name       string
		points     []RenderPoint
		baseline   float64
		multiplier float64
		want       float64
	}{
		{
			// 50x10 box: aspect 0.2, adjusted 0.05, openness 0.25.
			name:       "slightly open",
			points:     []RenderPoint{{0, 0}, {50, 10}},
			baseline:   0.15,
			multiplier: 5,
			want:       0.25,
		},
		{
			name:       "below baseline clamps to zero",
			points:     []RenderPoint{{0, 0}, {50, 5}},
			baseline:   0.15,
			multiplier: 5,
			want:       0,
		},
		{
			name:       "wide open saturates at one",
			points:     []RenderPoint{{0, 0}, {50, 200}},
			baseline:   0.15,
			multiplier: 5,
			want:       1,
		},
		{
			name:       "zero width box reads closed",
			points:     []RenderPoint{{5, 0}, {5, 40}},
			baseline:   0.15,
			multiplier: 5,
			want:       0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ExtractMouth(tt.points, tt.baseline, tt.multiplier, 20)
			if !ok {
				t.Fatal("ok = false")
			}
			if !near(m.Openness, tt.want) {
				t.Errorf("openness = %v, want %v", m.Openness, tt.want)
			}
			if m.Openness < 0 || m.Openness > 1 {
				t.Errorf("openness %v out of [0,1]", m.Openness)
			}
		})
	}
}

func TestExtractMouthSmileFactor(t *testing.T) {
	tests := []struct {
		name    string
		points  []RenderPoint
		divisor float64
		want    float64
	}{
		{
			// Corners at (0,0) and (50,0), centroid y = -5 (above the
			// line in render coordinates): delta 5, factor 0.25.
			name:    "smile",
			points:  []RenderPoint{{0, 0}, {50, 0}, {10, -10}, {40, -10}},
			divisor: 20,
			want:    0.25,
		},
		{
			name:    "frown mirrors the sign",
			points:  []RenderPoint{{0, 0}, {50, 0}, {10, 10}, {40, 10}},
			divisor: 20,
			want:    -0.25,
		},
		{
			name:    "deep smile clamps to one",
			points:  []RenderPoint{{0, 0}, {50, 0}, {10, -200}, {40, -200}},
			divisor: 20,
			want:    1,
		},
		{
			name:    "deep frown clamps to minus one",
			points:  []RenderPoint{{0, 0}, {50, 0}, {10, 200}, {40, 200}},
			divisor: 20,
			want:    -1,
		},
		{
			// Sloped corner line: corners (0,0)-(40,20), centroid x=20
			// expects y=10; centroid y=5 gives delta 5.
			name:    "sloped corner line",
			points:  []RenderPoint{{0, 0}, {40, 20}, {10, 0}, {30, 0}},
			divisor: 20,
			want:    0.25,
		},
		{
			name:    "coincident corner x skips the regression",
			points:  []RenderPoint{{5, 0}, {5, 10}, {5, 20}},
			divisor: 20,
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ExtractMouth(tt.points, 0.15, 5, tt.divisor)
			if !ok {
				t.Fatal("ok = false")
			}
			if !near(m.SmileFactor, tt.want) {
				t.Errorf("smile factor = %v, want %v", m.SmileFactor, tt.want)
			}
			if m.SmileFactor < -1 || m.SmileFactor > 1 {
				t.Errorf("smile factor %v out of [-1,1]", m.SmileFactor)
			}
		})
	}
}

func TestExtractMouthCenter(t *testing.T) {
	m, ok := ExtractMouth([]RenderPoint{{0, 0}, {50, 0}, {10, -10}, {40, -10}}, 0.15, 5, 20)
	if !ok {
		t.Fatal("ok = false")
	}
	if !near(m.Center.X, 25) || !near(m.Center.Y, -5) {
		t.Errorf("center = %v, want (25,-5)", m.Center)
	}
}

func TestExtractMouthCornerTieIsStable(t *testing.T) {
	// Two candidates share the extremal x; the first in input order
	// wins, so the corner line stays at y=0 and the centroid (y=4)
	// reads as a slight frown.
	points := []RenderPoint{
		{0, 0}, {50, 0}, // corners
		{0, 8}, {50, 8}, // tied duplicates, later in order
	}
	m, ok := ExtractMouth(points, 0.15, 5, 20)
	if !ok {
		t.Fatal("ok = false")
	}
	if !near(m.SmileFactor, -0.2) {
		t.Errorf("smile factor = %v, want -0.2 with first-wins corners", m.SmileFactor)
	}
}
