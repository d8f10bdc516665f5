// Package expression converts raw per-frame facial landmark clusters into
// a compact expression state: eye centers, blink flags, mouth center,
// mouth openness and a signed smile factor. Every computation is a pure
// per-frame transform; no state survives between frames.
package expression

// NormalizedPoint is a detector-space point on the unit square.
// The detector's vertical origin is at the bottom.
type NormalizedPoint struct {
	X, Y float64
}

// RenderPoint is a point in the consumer's render space (pixels or
// layout points).
type RenderPoint struct {
	X, Y float64
}

// Add returns the point translated by the given offset.
func (p RenderPoint) Add(q RenderPoint) RenderPoint {
	return RenderPoint{X: p.X + q.X, Y: p.Y + q.Y}
}

// NormRect is an axis-aligned rectangle in detector-normalized space.
type NormRect struct {
	Min, Max NormalizedPoint
}

// RenderRect is an axis-aligned rectangle in render space.
type RenderRect struct {
	Min, Max RenderPoint
}

// Width returns rect width
func (r RenderRect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns rect height
func (r RenderRect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// RegionName identifies one facial landmark region.
type RegionName string

const (
	RegionLeftEye   RegionName = "leftEye"
	RegionRightEye  RegionName = "rightEye"
	RegionOuterLips RegionName = "outerLips"
)

// ClusterMetrics describes one converted landmark region: its centroid
// and the bounding-box aspect ratio (height/width, 0 for a zero-width
// box).
type ClusterMetrics struct {
	Center      RenderPoint
	AspectRatio float64
}

// MouthMetrics is the output of the mouth expression extractor.
type MouthMetrics struct {
	Center      RenderPoint
	Openness    float64 // in [0,1]
	SmileFactor float64 // in [-1,1]; positive = smile, negative = frown
}

// Observation is one frame's detector output. A zero FaceFound marks a
// detection failure or an empty frame; Regions may omit any region.
type Observation struct {
	FaceFound bool
	FaceRect  *NormRect
	Regions   map[RegionName][]NormalizedPoint
	Transform Transform
}

// NoFace returns the observation published when detection fails.
func NoFace() Observation {
	return Observation{}
}

// FaceExpressionState is the per-frame expression state handed to the
// rendering consumer. It is built fresh every frame and never mutated
// after being published.
type FaceExpressionState struct {
	LeftEyeCenter  RenderPoint
	RightEyeCenter RenderPoint
	MouthCenter    RenderPoint
	LeftEyeBlink   bool
	RightEyeBlink  bool
	MouthOpen      float64 // in [0,1]
	SmileFactor    float64 // in [-1,1]
	FaceRect       *RenderRect
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
