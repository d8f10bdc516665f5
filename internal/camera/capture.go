// Package camera delivers webcam frames to the expression pipeline.
package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Capture manages webcam capture. The capture loop is the frame
// producer: it owns the admission policy, so a frame is only read when
// the previous one has finished processing and the pipeline is never
// invoked reentrantly.
type Capture struct {
	webcam   *gocv.VideoCapture
	deviceID int
	width    int
	height   int
	mirror   bool
	mu       sync.Mutex
}

// Config holds capture settings.
type Config struct {
	DeviceID  int
	Width     int
	Height    int
	TargetFPS int
	// Mirror flips frames horizontally for a selfie view.
	Mirror bool
}

// New opens the webcam with the requested settings. The reported
// dimensions are what the device actually granted.
func New(config Config) (*Capture, error) {
	webcam, err := gocv.OpenVideoCapture(config.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", config.DeviceID, err)
	}

	webcam.Set(gocv.VideoCaptureFrameWidth, float64(config.Width))
	webcam.Set(gocv.VideoCaptureFrameHeight, float64(config.Height))
	webcam.Set(gocv.VideoCaptureFPS, float64(config.TargetFPS))

	// The device may not support the requested resolution
	actualWidth := int(webcam.Get(gocv.VideoCaptureFrameWidth))
	actualHeight := int(webcam.Get(gocv.VideoCaptureFrameHeight))

	return &Capture{
		webcam:   webcam,
		deviceID: config.DeviceID,
		width:    actualWidth,
		height:   actualHeight,
		mirror:   config.Mirror,
	}, nil
}

// Read captures the next frame into the provided Mat, mirroring it when
// configured. Returns false when no frame is available.
func (c *Capture) Read(frame *gocv.Mat) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil {
		return false
	}
	if !c.webcam.Read(frame) || frame.Empty() {
		return false
	}
	if c.mirror {
		gocv.Flip(*frame, frame, 1)
	}
	return true
}

// Width returns frame width
func (c *Capture) Width() int {
	return c.width
}

// Height returns frame height
func (c *Capture) Height() int {
	return c.height
}

// Close releases the camera
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam != nil {
		err := c.webcam.Close()
		c.webcam = nil
		return err
	}
	return nil
}
