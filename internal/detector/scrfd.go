package detector

import (
	"fmt"
	"image"
	"math"

	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/dudu/facetrack/internal/inference"
)

// FaceFinder locates face boxes with the SCRFD detector. Only the boxes
// are decoded; the landmark model supplies all the points the
// expression pipeline needs.
type FaceFinder struct {
	session        *inference.Session
	inputSize      int
	confThreshold  float32
	nmsThreshold   float32
	featureStrides []int
	numAnchors     int
}

// NewFaceFinder creates an SCRFD face finder
func NewFaceFinder(modelPath string, inputSize int, confThreshold, nmsThreshold float32, log *zap.Logger) (*FaceFinder, error) {
	// SCRFD has 1 input and 9 outputs (3 levels × 3 outputs each: score, bbox, kps)
	inputNames := []string{"input.1"}
	outputNames := []string{
		"score_8", "score_16", "score_32",
		"bbox_8", "bbox_16", "bbox_32",
		"kps_8", "kps_16", "kps_32",
	}

	session, err := inference.NewSession(modelPath, inputNames, outputNames, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create SCRFD session: %w", err)
	}

	return &FaceFinder{
		session:        session,
		inputSize:      inputSize,
		confThreshold:  confThreshold,
		nmsThreshold:   nmsThreshold,
		featureStrides: []int{8, 16, 32},
		numAnchors:     2, // anchors per position
	}, nil
}

// FindBest returns the dominant face in the frame, or ok=false when the
// frame has none. The largest surviving box wins; the expression
// pipeline tracks a single externally-selected face.
func (f *FaceFinder) FindBest(img gocv.Mat) (Detection, bool, error) {
	faces, err := f.detect(img)
	if err != nil {
		return Detection{}, false, err
	}
	if len(faces) == 0 {
		return Detection{}, false, nil
	}

	best := faces[0]
	for _, face := range faces[1:] {
		if face.BoundingBox.Area() > best.BoundingBox.Area() {
			best = face
		}
	}
	return best, true, nil
}

// detect finds all face candidates in an image
func (f *FaceFinder) detect(img gocv.Mat) ([]Detection, error) {
	origHeight := img.Rows()
	origWidth := img.Cols()

	inputBlob, scale := f.preprocess(img)
	defer inputBlob.Close()

	blobData := inputBlob.ToBytes()
	floatData := bytesToFloat32(blobData)

	inputTensor, err := ort.NewTensor(
		ort.NewShape(1, 3, int64(f.inputSize), int64(f.inputSize)),
		floatData,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	// Output tensors; the kps outputs must exist for the session but
	// their data is never decoded.
	fmSizes := []int{f.inputSize / 8, f.inputSize / 16, f.inputSize / 32}

	outputs := make([]ort.Value, 9)
	outputTensors := make([]*ort.Tensor[float32], 9)
	for i := 0; i < 3; i++ {
		numAnchors := fmSizes[i] * fmSizes[i] * f.numAnchors

		scoreTensor, _ := inference.CreateEmptyTensor[float32]([]int64{int64(numAnchors), 1})
		outputs[i] = scoreTensor
		outputTensors[i] = scoreTensor

		bboxTensor, _ := inference.CreateEmptyTensor[float32]([]int64{int64(numAnchors), 4})
		outputs[i+3] = bboxTensor
		outputTensors[i+3] = bboxTensor

		kpsTensor, _ := inference.CreateEmptyTensor[float32]([]int64{int64(numAnchors), 10})
		outputs[i+6] = kpsTensor
		outputTensors[i+6] = kpsTensor
	}
	defer func() {
		for _, t := range outputTensors {
			t.Destroy()
		}
	}()

	if err := f.session.Run([]ort.Value{inputTensor}, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	faces := f.postprocess(outputTensors, scale, origWidth, origHeight)
	return suppress(faces, f.nmsThreshold), nil
}

// preprocess resizes and normalizes the image
func (f *FaceFinder) preprocess(img gocv.Mat) (gocv.Mat, float32) {
	height := img.Rows()
	width := img.Cols()

	scale := float32(f.inputSize) / float32(max(height, width))

	newWidth := int(float32(width) * scale)
	newHeight := int(float32(height) * scale)

	resized := gocv.NewMat()
	gocv.Resize(img, &resized, image.Pt(newWidth, newHeight), 0, 0, gocv.InterpolationLinear)

	// Letterbox pad to a square input
	padded := gocv.NewMatWithSize(f.inputSize, f.inputSize, gocv.MatTypeCV8UC3)
	padded.SetTo(gocv.NewScalar(0, 0, 0, 0))

	roi := padded.Region(image.Rect(0, 0, newWidth, newHeight))
	resized.CopyTo(&roi)
	roi.Close()
	resized.Close()

	rgb := gocv.NewMat()
	gocv.CvtColor(padded, &rgb, gocv.ColorBGRToRGB)
	padded.Close()

	// Normalize: (x - 127.5) / 128.0
	blob := gocv.NewMat()
	rgb.ConvertTo(&blob, gocv.MatTypeCV32FC3)
	rgb.Close()
	gocv.AddWeighted(blob, 1.0/128.0, blob, 0, -127.5/128.0, &blob)

	blobNCHW := gocv.BlobFromImage(blob, 1.0, image.Pt(f.inputSize, f.inputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	blob.Close()

	return blobNCHW, scale
}

// postprocess decodes score and box outputs into face candidates
func (f *FaceFinder) postprocess(outputs []*ort.Tensor[float32], scale float32, origWidth, origHeight int) []Detection {
	var faces []Detection

	for level := 0; level < 3; level++ {
		stride := f.featureStrides[level]
		fmHeight := f.inputSize / stride
		fmWidth := f.inputSize / stride

		scoreData := outputs[level].GetData()
		bboxData := outputs[level+3].GetData()

		anchorIdx := 0
		for y := 0; y < fmHeight; y++ {
			for x := 0; x < fmWidth; x++ {
				for a := 0; a < f.numAnchors; a++ {
					score := sigmoid(scoreData[anchorIdx])

					if score > f.confThreshold {
						// Anchor center
						cx := (float32(x) + 0.5) * float32(stride)
						cy := (float32(y) + 0.5) * float32(stride)

						// Decode bbox (distance to edges)
						bboxIdx := anchorIdx * 4
						x1 := (cx - bboxData[bboxIdx]*float32(stride)) / scale
						y1 := (cy - bboxData[bboxIdx+1]*float32(stride)) / scale
						x2 := (cx + bboxData[bboxIdx+2]*float32(stride)) / scale
						y2 := (cy + bboxData[bboxIdx+3]*float32(stride)) / scale

						faces = append(faces, Detection{
							BoundingBox: BoundingBox{
								X1: clamp32(x1, 0, float32(origWidth)),
								Y1: clamp32(y1, 0, float32(origHeight)),
								X2: clamp32(x2, 0, float32(origWidth)),
								Y2: clamp32(y2, 0, float32(origHeight)),
							},
							Score: score,
						})
					}
					anchorIdx++
				}
			}
		}
	}

	return faces
}

// Close releases detector resources
func (f *FaceFinder) Close() error {
	return f.session.Destroy()
}

func sigmoid(x float32) float32 {
	return 1.0 / (1.0 + float32(math.Exp(float64(-x))))
}

func clamp32(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

func bytesToFloat32(data []byte) []float32 {
	result := make([]float32, len(data)/4)
	for i := range result {
		bits := uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
		result[i] = math.Float32frombits(bits)
	}
	return result
}
