// Package config loads the runtime configuration from the environment.
// Every expression tunable is an env var with a working default, so a
// .env file (or the shell) is the single place to retune the tracker.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dudu/facetrack/internal/expression"
)

// Config is the full runtime configuration.
type Config struct {
	// Expression tunables
	BlinkThreshold      float64
	MouthOpenBaseline   float64
	MouthOpenMultiplier float64
	SmileDivisor        float64
	EyeOffsetX          float64
	EyeOffsetY          float64
	MouthOffsetX        float64
	MouthOffsetY        float64

	// Detector
	FaceModelPath     string
	LandmarkModelPath string
	DetectionSize     int
	ConfThreshold     float64
	NMSThreshold      float64
	ORTLibraryPath    string

	// Camera
	CameraIndex  int
	FrameWidth   int
	FrameHeight  int
	TargetFPS    int
	MirrorFrames bool
}

// Load reads an optional .env file and resolves the configuration.
// Missing variables fall back to defaults; a missing .env file is not
// an error.
func Load() Config {
	_ = godotenv.Load()

	defaults := expression.DefaultConfig()

	return Config{
		BlinkThreshold:      envFloat("FACETRACK_BLINK_THRESHOLD", defaults.BlinkThreshold),
		MouthOpenBaseline:   envFloat("FACETRACK_MOUTH_OPEN_BASELINE", defaults.MouthOpenBaseline),
		MouthOpenMultiplier: envFloat("FACETRACK_MOUTH_OPEN_MULTIPLIER", defaults.MouthOpenMultiplier),
		SmileDivisor:        envFloat("FACETRACK_SMILE_DIVISOR", defaults.SmileDivisor),
		EyeOffsetX:          envFloat("FACETRACK_EYE_OFFSET_X", 0),
		EyeOffsetY:          envFloat("FACETRACK_EYE_OFFSET_Y", 0),
		MouthOffsetX:        envFloat("FACETRACK_MOUTH_OFFSET_X", 0),
		MouthOffsetY:        envFloat("FACETRACK_MOUTH_OFFSET_Y", 0),

		FaceModelPath:     envString("FACETRACK_FACE_MODEL", "models/scrfd_10g.onnx"),
		LandmarkModelPath: envString("FACETRACK_LANDMARK_MODEL", "models/2d106det.onnx"),
		DetectionSize:     envInt("FACETRACK_DETECTION_SIZE", 640),
		ConfThreshold:     envFloat("FACETRACK_CONF_THRESHOLD", 0.5),
		NMSThreshold:      envFloat("FACETRACK_NMS_THRESHOLD", 0.4),
		ORTLibraryPath:    envString("FACETRACK_ORT_LIBRARY", ""),

		CameraIndex:  envInt("FACETRACK_CAMERA_INDEX", 0),
		FrameWidth:   envInt("FACETRACK_FRAME_WIDTH", 1280),
		FrameHeight:  envInt("FACETRACK_FRAME_HEIGHT", 720),
		TargetFPS:    envInt("FACETRACK_TARGET_FPS", 30),
		MirrorFrames: envBool("FACETRACK_MIRROR", true),
	}
}

// Expression maps the tunables onto the pipeline configuration.
func (c Config) Expression() expression.Config {
	return expression.Config{
		BlinkThreshold:      c.BlinkThreshold,
		MouthOpenBaseline:   c.MouthOpenBaseline,
		MouthOpenMultiplier: c.MouthOpenMultiplier,
		SmileDivisor:        c.SmileDivisor,
		EyeOffset:           expression.RenderPoint{X: c.EyeOffsetX, Y: c.EyeOffsetY},
		MouthOffset:         expression.RenderPoint{X: c.MouthOffsetX, Y: c.MouthOffsetY},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
