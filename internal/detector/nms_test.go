package detector

import "testing"

func TestSuppressKeepsHighestScored(t *testing.T) {
	candidates := []Detection{
		{BoundingBox: BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100}, Score: 0.6},
		{BoundingBox: BoundingBox{X1: 5, Y1: 5, X2: 105, Y2: 105}, Score: 0.9},
		{BoundingBox: BoundingBox{X1: 300, Y1: 300, X2: 400, Y2: 400}, Score: 0.7},
	}

	kept := suppress(candidates, 0.4)
	if len(kept) != 2 {
		t.Fatalf("kept %d candidates, want 2", len(kept))
	}
	if kept[0].Score != 0.9 {
		t.Errorf("first kept score = %v, want 0.9 (sorted descending)", kept[0].Score)
	}
	if kept[1].Score != 0.7 {
		t.Errorf("second kept score = %v, want the disjoint box", kept[1].Score)
	}
}

func TestSuppressEmpty(t *testing.T) {
	if kept := suppress(nil, 0.4); len(kept) != 0 {
		t.Errorf("suppress(nil) = %v, want empty", kept)
	}
}

func TestIOU(t *testing.T) {
	tests := []struct {
		name string
		a, b BoundingBox
		want float32
	}{
		{
			"identical boxes",
			BoundingBox{0, 0, 10, 10}, BoundingBox{0, 0, 10, 10},
			1,
		},
		{
			"disjoint boxes",
			BoundingBox{0, 0, 10, 10}, BoundingBox{20, 20, 30, 30},
			0,
		},
		{
			"half overlap",
			BoundingBox{0, 0, 10, 10}, BoundingBox{5, 0, 15, 10},
			50.0 / 150.0,
		},
		{
			"touching edges do not overlap",
			BoundingBox{0, 0, 10, 10}, BoundingBox{10, 0, 20, 10},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := iou(tt.a, tt.b); got != tt.want {
				t.Errorf("iou = %v, want %v", got, tt.want)
			}
		})
	}
}
