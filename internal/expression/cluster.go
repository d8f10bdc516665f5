package expression

// Analyze computes the centroid and bounding-box aspect ratio of one
// converted landmark region. ok is false for an empty region; the
// aspect ratio of a zero-width box is 0.
func Analyze(points []RenderPoint) (ClusterMetrics, bool) {
	if len(points) == 0 {
		return ClusterMetrics{}, false
	}

	var sumX, sumY float64
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	n := float64(len(points))
	m := ClusterMetrics{
		Center: RenderPoint{X: sumX / n, Y: sumY / n},
	}
	if width := maxX - minX; width > 0 {
		m.AspectRatio = (maxY - minY) / width
	}
	return m, true
}
