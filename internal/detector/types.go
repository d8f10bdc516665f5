// Package detector finds a face and its landmarks in a camera frame and
// reports them as a normalized observation for the expression pipeline.
package detector

// Point is a 2D pixel-space point
type Point struct {
	X, Y float32
}

// BoundingBox is a pixel-space face box
type BoundingBox struct {
	X1, Y1 float32 // top-left
	X2, Y2 float32 // bottom-right
}

// Width returns box width
func (b BoundingBox) Width() float32 {
	return b.X2 - b.X1
}

// Height returns box height
func (b BoundingBox) Height() float32 {
	return b.Y2 - b.Y1
}

// Center returns box center point
func (b BoundingBox) Center() Point {
	return Point{
		X: (b.X1 + b.X2) / 2,
		Y: (b.Y1 + b.Y2) / 2,
	}
}

// Area returns box area
func (b BoundingBox) Area() float32 {
	return b.Width() * b.Height()
}

// Detection is one face candidate from the face finder
type Detection struct {
	BoundingBox BoundingBox
	Score       float32
}

// Landmarks106 holds the 106 facial landmark points of the insightface
// 2d106det layout, in pixel coordinates of the source frame.
type Landmarks106 [106]Point

// Index groups of the 106-point layout for the regions the expression
// pipeline consumes.
var (
	leftEyeIndices   = []int{87, 88, 89, 90, 91, 92, 93, 94, 95, 96}
	rightEyeIndices  = []int{33, 34, 35, 36, 37, 38, 39, 40, 41, 42}
	outerLipsIndices = []int{52, 53, 54, 55, 56, 57, 58, 59, 60, 61, 62, 63, 64, 65, 66, 67, 68, 69, 70, 71}
)

// points returns the landmark points at the given indices.
func (l *Landmarks106) points(indices []int) []Point {
	out := make([]Point, len(indices))
	for i, idx := range indices {
		out[i] = l[idx]
	}
	return out
}

// LeftEye returns the left-eye landmark cluster.
func (l *Landmarks106) LeftEye() []Point {
	return l.points(leftEyeIndices)
}

// RightEye returns the right-eye landmark cluster.
func (l *Landmarks106) RightEye() []Point {
	return l.points(rightEyeIndices)
}

// OuterLips returns the outer-lip landmark cluster.
func (l *Landmarks106) OuterLips() []Point {
	return l.points(outerLipsIndices)
}
