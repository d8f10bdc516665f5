package detector

import (
	"fmt"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/dudu/facetrack/internal/expression"
)

// Observer runs the face finder and landmarker on a frame and reports
// the result in the detector-space convention the expression pipeline
// consumes: unit square, vertical origin at the bottom.
type Observer struct {
	finder     *FaceFinder
	landmarker *Landmarker
	log        *zap.Logger
}

// ObserverConfig holds model paths and detection tunables.
type ObserverConfig struct {
	FaceModelPath     string
	LandmarkModelPath string
	DetectionSize     int
	ConfThreshold     float32
	NMSThreshold      float32
}

// NewObserver creates the detector pair behind a single Observe call.
func NewObserver(config ObserverConfig, log *zap.Logger) (*Observer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	finder, err := NewFaceFinder(config.FaceModelPath, config.DetectionSize,
		config.ConfThreshold, config.NMSThreshold, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create face finder: %w", err)
	}

	landmarker, err := NewLandmarker(config.LandmarkModelPath, log)
	if err != nil {
		finder.Close()
		return nil, fmt.Errorf("failed to create landmarker: %w", err)
	}

	return &Observer{
		finder:     finder,
		landmarker: landmarker,
		log:        log,
	}, nil
}

// Observe detects the dominant face in the frame and returns its
// landmark regions as a normalized observation carrying the given
// render transform. A frame without a face yields a no-face
// observation, not an error; errors are reserved for inference
// failures.
func (o *Observer) Observe(frame gocv.Mat, t expression.Transform) (expression.Observation, error) {
	face, found, err := o.finder.FindBest(frame)
	if err != nil {
		return expression.NoFace(), fmt.Errorf("face detection failed: %w", err)
	}
	if !found {
		return expression.NoFace(), nil
	}

	landmarks, err := o.landmarker.Extract(frame, face.BoundingBox)
	if err != nil {
		return expression.NoFace(), fmt.Errorf("landmark extraction failed: %w", err)
	}

	obs := buildObservation(face.BoundingBox, &landmarks, frame.Cols(), frame.Rows())
	obs.Transform = t
	return obs, nil
}

// Close releases both models.
func (o *Observer) Close() error {
	var errs []error
	if o.finder != nil {
		if err := o.finder.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if o.landmarker != nil {
		if err := o.landmarker.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// buildObservation maps pixel-space detection output into the
// normalized bottom-origin detector space. Frames with degenerate
// dimensions produce a no-face observation.
func buildObservation(box BoundingBox, landmarks *Landmarks106, frameWidth, frameHeight int) expression.Observation {
	if frameWidth <= 0 || frameHeight <= 0 {
		return expression.NoFace()
	}

	rect := normalizeRect(box, frameWidth, frameHeight)
	return expression.Observation{
		FaceFound: true,
		FaceRect:  &rect,
		Regions: map[expression.RegionName][]expression.NormalizedPoint{
			expression.RegionLeftEye:   normalizePoints(landmarks.LeftEye(), frameWidth, frameHeight),
			expression.RegionRightEye:  normalizePoints(landmarks.RightEye(), frameWidth, frameHeight),
			expression.RegionOuterLips: normalizePoints(landmarks.OuterLips(), frameWidth, frameHeight),
		},
	}
}

// normalizePoint maps a top-origin pixel point onto the bottom-origin
// unit square.
func normalizePoint(p Point, frameWidth, frameHeight int) expression.NormalizedPoint {
	return expression.NormalizedPoint{
		X: float64(p.X) / float64(frameWidth),
		Y: 1 - float64(p.Y)/float64(frameHeight),
	}
}

func normalizePoints(points []Point, frameWidth, frameHeight int) []expression.NormalizedPoint {
	out := make([]expression.NormalizedPoint, len(points))
	for i, p := range points {
		out[i] = normalizePoint(p, frameWidth, frameHeight)
	}
	return out
}

func normalizeRect(box BoundingBox, frameWidth, frameHeight int) expression.NormRect {
	a := normalizePoint(Point{X: box.X1, Y: box.Y1}, frameWidth, frameHeight)
	b := normalizePoint(Point{X: box.X2, Y: box.Y2}, frameWidth, frameHeight)
	if a.Y > b.Y {
		a.Y, b.Y = b.Y, a.Y
	}
	return expression.NormRect{Min: a, Max: b}
}
