package detector

import (
	"fmt"
	"image"

	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/dudu/facetrack/internal/inference"
)

// Landmarker extracts 106 facial landmarks with insightface's 2d106det
// model, cropped around a detected face box.
type Landmarker struct {
	session   *inference.Session
	inputSize int
	inputMean float32
	inputStd  float32
}

// NewLandmarker creates a 106-point landmark extractor
func NewLandmarker(modelPath string, log *zap.Logger) (*Landmarker, error) {
	inputNames := []string{"data"}
	outputNames := []string{"fc1"}

	session, err := inference.NewSession(modelPath, inputNames, outputNames, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create landmark session: %w", err)
	}

	return &Landmarker{
		session:   session,
		inputSize: 192,
		inputMean: 127.5,
		inputStd:  128.0,
	}, nil
}

// Extract returns the 106 landmark points for a face, in pixel
// coordinates of the source frame.
func (l *Landmarker) Extract(img gocv.Mat, box BoundingBox) (Landmarks106, error) {
	// Crop parameters: 1.5x expansion around the box, insightface style
	w := box.Width()
	h := box.Height()
	center := box.Center()
	maxDim := w
	if h > w {
		maxDim = h
	}
	scale := float32(l.inputSize) / (maxDim * 1.5)

	M := l.cropMatrix(center, scale)

	aligned := gocv.NewMat()
	defer aligned.Close()
	gocv.WarpAffine(img, &aligned, M, image.Pt(l.inputSize, l.inputSize))
	M.Close()

	rgb := gocv.NewMat()
	gocv.CvtColor(aligned, &rgb, gocv.ColorBGRToRGB)
	defer rgb.Close()

	floatMat := gocv.NewMat()
	rgb.ConvertTo(&floatMat, gocv.MatTypeCV32FC3)
	defer floatMat.Close()

	// Normalize: (x - mean) / std
	gocv.AddWeighted(floatMat, 1.0/float64(l.inputStd), floatMat, 0, -float64(l.inputMean)/float64(l.inputStd), &floatMat)

	blob := gocv.BlobFromImage(floatMat, 1.0, image.Pt(l.inputSize, l.inputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	blobData := blob.ToBytes()
	floatData := bytesToFloat32(blobData)

	inputTensor, err := ort.NewTensor(
		ort.NewShape(1, 3, int64(l.inputSize), int64(l.inputSize)),
		floatData,
	)
	if err != nil {
		return Landmarks106{}, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	// (1, 212) = 106 landmarks * 2 coords
	outputTensor, err := inference.CreateEmptyTensor[float32]([]int64{1, 212})
	if err != nil {
		return Landmarks106{}, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := l.session.Run([]ort.Value{inputTensor}, []ort.Value{outputTensor}); err != nil {
		return Landmarks106{}, fmt.Errorf("landmark inference failed: %w", err)
	}

	return l.postprocess(outputTensor.GetData(), center, scale), nil
}

// cropMatrix creates the affine transform for the face crop
func (l *Landmarker) cropMatrix(center Point, scale float32) gocv.Mat {
	M := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)

	M.SetDoubleAt(0, 0, float64(scale))
	M.SetDoubleAt(0, 1, 0)
	M.SetDoubleAt(0, 2, float64(l.inputSize)/2-float64(center.X*scale))
	M.SetDoubleAt(1, 0, 0)
	M.SetDoubleAt(1, 1, float64(scale))
	M.SetDoubleAt(1, 2, float64(l.inputSize)/2-float64(center.Y*scale))

	return M
}

// postprocess maps model output back to source frame coordinates
func (l *Landmarker) postprocess(output []float32, center Point, scale float32) Landmarks106 {
	var landmarks Landmarks106

	halfSize := float32(l.inputSize) / 2

	for i := 0; i < 106; i++ {
		// Model output is in [-1, 1], map to [0, inputSize] and back
		// through the crop transform.
		x := (output[i*2] + 1) * halfSize
		y := (output[i*2+1] + 1) * halfSize

		landmarks[i] = Point{
			X: (x-halfSize)/scale + center.X,
			Y: (y-halfSize)/scale + center.Y,
		}
	}

	return landmarks
}

// Close releases detector resources
func (l *Landmarker) Close() error {
	return l.session.Destroy()
}
