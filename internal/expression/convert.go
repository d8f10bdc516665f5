package expression

// Transform maps a detector-space point (already flipped to top-origin)
// into render space. The caller derives it from the current viewport or
// layer geometry.
type Transform func(p NormalizedPoint) RenderPoint

// Convert maps a detector-space point into render space. The detector's
// vertical axis is inverted relative to render space, so the y
// coordinate is flipped before the transform is applied.
func Convert(p NormalizedPoint, t Transform) RenderPoint {
	return t(NormalizedPoint{X: p.X, Y: 1 - p.Y})
}

// ConvertAll converts a whole region. Returns nil for a nil or empty
// input.
func ConvertAll(points []NormalizedPoint, t Transform) []RenderPoint {
	if len(points) == 0 {
		return nil
	}
	out := make([]RenderPoint, len(points))
	for i, p := range points {
		out[i] = Convert(p, t)
	}
	return out
}

// ConvertRect converts a detector-space rectangle, re-normalizing the
// corners so Min/Max stay ordered after the vertical flip.
func ConvertRect(r NormRect, t Transform) RenderRect {
	a := Convert(r.Min, t)
	b := Convert(r.Max, t)
	if a.X > b.X {
		a.X, b.X = b.X, a.X
	}
	if a.Y > b.Y {
		a.Y, b.Y = b.Y, a.Y
	}
	return RenderRect{Min: a, Max: b}
}

// ViewportTransform builds the common transform: the unit square scaled
// to a width×height viewport at the given offset.
func ViewportTransform(width, height, offsetX, offsetY float64) Transform {
	return func(p NormalizedPoint) RenderPoint {
		return RenderPoint{
			X: offsetX + p.X*width,
			Y: offsetY + p.Y*height,
		}
	}
}
