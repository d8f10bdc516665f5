package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/dudu/facetrack/internal/camera"
	"github.com/dudu/facetrack/internal/config"
	"github.com/dudu/facetrack/internal/detector"
	"github.com/dudu/facetrack/internal/expression"
	"github.com/dudu/facetrack/internal/inference"
	"github.com/dudu/facetrack/internal/ui"
)

func init() {
	// Lock the main goroutine to the main OS thread.
	// Required on macOS for OpenCV's highgui (window creation).
	runtime.LockOSThread()
}

func main() {
	cfg := config.Load()

	preview := flag.Bool("preview", true, "Show preview window")
	flag.IntVar(&cfg.CameraIndex, "camera", cfg.CameraIndex, "Camera device index")
	flag.IntVar(&cfg.TargetFPS, "fps", cfg.TargetFPS, "Target frames per second")
	flag.StringVar(&cfg.FaceModelPath, "face-model", cfg.FaceModelPath, "SCRFD face detection model")
	flag.StringVar(&cfg.LandmarkModelPath, "landmark-model", cfg.LandmarkModelPath, "2d106det landmark model")
	flag.BoolVar(&cfg.MirrorFrames, "mirror", cfg.MirrorFrames, "Mirror frames for selfie view")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "facetrack - real-time facial expression tracking\n\n")
		fmt.Fprintf(os.Stderr, "Usage: facetrack [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nTunables are read from the environment (see .env.example).\n")
	}
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, *preview, log); err != nil {
		log.Fatal("facetrack failed", zap.Error(err))
	}
}

func run(cfg config.Config, preview bool, log *zap.Logger) error {
	if err := inference.Initialize(cfg.ORTLibraryPath); err != nil {
		return fmt.Errorf("failed to initialize inference: %w", err)
	}
	defer inference.Shutdown()

	log.Info("loading detector models",
		zap.String("face_model", cfg.FaceModelPath),
		zap.String("landmark_model", cfg.LandmarkModelPath))

	observer, err := detector.NewObserver(detector.ObserverConfig{
		FaceModelPath:     cfg.FaceModelPath,
		LandmarkModelPath: cfg.LandmarkModelPath,
		DetectionSize:     cfg.DetectionSize,
		ConfThreshold:     float32(cfg.ConfThreshold),
		NMSThreshold:      float32(cfg.NMSThreshold),
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create observer: %w", err)
	}
	defer observer.Close()

	cam, err := camera.New(camera.Config{
		DeviceID:  cfg.CameraIndex,
		Width:     cfg.FrameWidth,
		Height:    cfg.FrameHeight,
		TargetFPS: cfg.TargetFPS,
		Mirror:    cfg.MirrorFrames,
	})
	if err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer cam.Close()
	log.Info("camera opened", zap.Int("width", cam.Width()), zap.Int("height", cam.Height()))

	store := expression.NewStore()
	pipeline := expression.New(cfg.Expression(), store, log)

	// Render space is the camera frame itself
	transform := expression.ViewportTransform(float64(cam.Width()), float64(cam.Height()), 0, 0)

	var overlay *ui.Overlay
	if preview {
		overlay = ui.NewOverlay("facetrack", store)
		defer overlay.Close()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	frame := gocv.NewMat()
	defer frame.Close()

	log.Info("running, press q to quit")

	for {
		select {
		case <-sigChan:
			log.Info("shutting down")
			return nil
		default:
		}

		// One frame in flight at a time: the next read happens only
		// after the previous frame completes.
		if !cam.Read(&frame) {
			continue
		}

		obs, err := observer.Observe(frame, transform)
		if err != nil {
			log.Warn("frame skipped", zap.Error(err))
			pipeline.OnFrame(expression.NoFace())
		} else {
			pipeline.OnFrame(obs)
		}

		if overlay != nil {
			overlay.Show(&frame)
			// WaitKey pumps window events on macOS
			key := overlay.WaitKey(10)
			if key == 'q' || key == 27 {
				log.Info("quitting")
				return nil
			}
		}
	}
}
