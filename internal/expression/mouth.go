package expression

// ExtractMouth derives the mouth expression metrics from the converted
// outer-lip points. ok is false for an empty region.
//
// Openness comes from the lips' bounding-box aspect ratio: the baseline
// is subtracted (closed lips are not a flat line), the remainder scaled
// by the multiplier and clamped to [0,1].
//
// The smile factor is the centroid's signed deviation from the line
// through the two mouth corners (leftmost and rightmost point; ties on
// x resolve to the first point in input order), scaled by divisor and
// clamped to [-1,1]. A centroid above the corner line reads as a smile.
// When both corners share an x coordinate the line is vertical and the
// factor is 0.
func ExtractMouth(points []RenderPoint, baseline, multiplier, divisor float64) (MouthMetrics, bool) {
	metrics, ok := Analyze(points)
	if !ok {
		return MouthMetrics{}, false
	}

	m := MouthMetrics{Center: metrics.Center}

	adjusted := metrics.AspectRatio - baseline
	if adjusted < 0 {
		adjusted = 0
	}
	m.Openness = clamp(adjusted*multiplier, 0, 1)

	left, right := points[0], points[0]
	for _, p := range points {
		if p.X < left.X {
			left = p
		}
		if p.X > right.X {
			right = p
		}
	}
	if right.X != left.X && divisor != 0 {
		slope := (right.Y - left.Y) / (right.X - left.X)
		intercept := left.Y - slope*left.X
		expectedY := slope*m.Center.X + intercept
		m.SmileFactor = clamp((expectedY-m.Center.Y)/divisor, -1, 1)
	}

	return m, true
}
