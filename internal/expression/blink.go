package expression

// IsBlinking classifies an eye region as closed when its bounding-box
// aspect ratio falls below the threshold. The threshold is the single
// knob controlling blink sensitivity; useful values sit around 0.2-0.3.
func IsBlinking(aspectRatio, threshold float64) bool {
	return aspectRatio < threshold
}
