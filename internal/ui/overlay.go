// Package ui renders the published expression state over the camera
// preview. It is a passive consumer: it polls the store on its own
// schedule and never writes back.
package ui

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/dudu/facetrack/internal/expression"
)

var (
	green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Overlay is the preview window drawing expression state onto frames.
type Overlay struct {
	window     *gocv.Window
	store      *expression.Store
	lastSeq    uint64
	lastFrame  time.Time
	frameCount int
	fps        float64
}

// NewOverlay creates the preview window reading from the given store.
func NewOverlay(name string, store *expression.Store) *Overlay {
	window := gocv.NewWindow(name)
	window.ResizeWindow(1280, 720)
	window.MoveWindow(100, 100)
	return &Overlay{
		window:    window,
		store:     store,
		lastFrame: time.Now(),
	}
}

// Show draws the latest published state over the frame and displays it.
func (o *Overlay) Show(frame *gocv.Mat) {
	o.frameCount++
	now := time.Now()
	if elapsed := now.Sub(o.lastFrame); elapsed >= time.Second {
		o.fps = float64(o.frameCount) / elapsed.Seconds()
		o.frameCount = 0
		o.lastFrame = now
	}

	state, seq := o.store.Latest()
	stale := seq == o.lastSeq
	o.lastSeq = seq

	if state != nil {
		o.drawState(frame, state)
	}

	status := fmt.Sprintf("FPS: %.1f", o.fps)
	if state == nil {
		status += "  no face"
	} else if stale {
		status += "  (stale)"
	}
	gocv.PutText(frame, status, image.Pt(10, 30),
		gocv.FontHersheyPlain, 2, green, 2)

	o.window.IMShow(*frame)
}

func (o *Overlay) drawState(frame *gocv.Mat, state *expression.FaceExpressionState) {
	if state.FaceRect != nil {
		r := state.FaceRect
		gocv.Rectangle(frame, image.Rect(int(r.Min.X), int(r.Min.Y), int(r.Max.X), int(r.Max.Y)), green, 1)
	}

	drawEye(frame, state.LeftEyeCenter, state.LeftEyeBlink)
	drawEye(frame, state.RightEyeCenter, state.RightEyeBlink)

	mouth := image.Pt(int(state.MouthCenter.X), int(state.MouthCenter.Y))
	gocv.Circle(frame, mouth, 4, red, 2)

	// Openness bar grows downward from the mouth center
	barHeight := int(state.MouthOpen * 60)
	if barHeight > 0 {
		gocv.Line(frame, mouth, image.Pt(mouth.X, mouth.Y+barHeight), red, 3)
	}

	label := fmt.Sprintf("open %.2f  smile %+.2f", state.MouthOpen, state.SmileFactor)
	gocv.PutText(frame, label, image.Pt(mouth.X-60, mouth.Y+80),
		gocv.FontHersheyPlain, 1.2, yellow, 1)
}

func drawEye(frame *gocv.Mat, center expression.RenderPoint, blink bool) {
	pt := image.Pt(int(center.X), int(center.Y))
	if blink {
		// Closed eye: filled marker
		gocv.Circle(frame, pt, 6, yellow, -1)
	} else {
		gocv.Circle(frame, pt, 6, green, 2)
	}
}

// WaitKey pumps window events, returning the pressed key or -1.
func (o *Overlay) WaitKey(delayMs int) int {
	return o.window.WaitKey(delayMs)
}

// FPS returns the current display rate.
func (o *Overlay) FPS() float64 {
	return o.fps
}

// Close closes the window
func (o *Overlay) Close() error {
	if o.window != nil {
		return o.window.Close()
	}
	return nil
}
