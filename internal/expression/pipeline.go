package expression

import (
	"go.uber.org/zap"
)

// Config holds the expression tunables
type Config struct {
	// BlinkThreshold is the eye aspect ratio below which the eye
	// counts as closed.
	BlinkThreshold float64
	// MouthOpenBaseline is subtracted from the lip aspect ratio
	// before scaling into openness.
	MouthOpenBaseline float64
	// MouthOpenMultiplier scales the adjusted aspect ratio into [0,1].
	MouthOpenMultiplier float64
	// SmileDivisor scales the corner-line deviation into [-1,1].
	SmileDivisor float64
	// EyeOffset and MouthOffset are optional fixed cosmetic
	// adjustments added to the feature centers after metric
	// computation.
	EyeOffset   RenderPoint
	MouthOffset RenderPoint
}

// DefaultConfig returns the tunables at their usual working points.
func DefaultConfig() Config {
	return Config{
		BlinkThreshold:      0.25,
		MouthOpenBaseline:   0.12,
		MouthOpenMultiplier: 6.0,
		SmileDivisor:        20.0,
	}
}

// Pipeline turns one frame's detector observation into a published
// FaceExpressionState. Each OnFrame call is independent and
// run-to-completion; callers must not invoke it concurrently for the
// same stream.
type Pipeline struct {
	config Config
	store  *Store
	log    *zap.Logger
}

// New creates a pipeline publishing into the given store.
func New(config Config, store *Store, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		config: config,
		store:  store,
		log:    log,
	}
}

// Store returns the slot this pipeline publishes into.
func (p *Pipeline) Store() *Store {
	return p.store
}

// OnFrame processes one detector observation and publishes the
// resulting state. A no-face observation publishes nil.
func (p *Pipeline) OnFrame(obs Observation) *FaceExpressionState {
	if !obs.FaceFound {
		p.store.Publish(nil)
		return nil
	}

	state := &FaceExpressionState{}

	if obs.FaceRect != nil {
		rect := ConvertRect(*obs.FaceRect, obs.Transform)
		state.FaceRect = &rect
	}

	if m, ok := p.analyzeRegion(obs, RegionLeftEye); ok {
		state.LeftEyeCenter = m.Center.Add(p.config.EyeOffset)
		state.LeftEyeBlink = IsBlinking(m.AspectRatio, p.config.BlinkThreshold)
	}
	if m, ok := p.analyzeRegion(obs, RegionRightEye); ok {
		state.RightEyeCenter = m.Center.Add(p.config.EyeOffset)
		state.RightEyeBlink = IsBlinking(m.AspectRatio, p.config.BlinkThreshold)
	}

	lips := ConvertAll(obs.Regions[RegionOuterLips], obs.Transform)
	if m, ok := ExtractMouth(lips, p.config.MouthOpenBaseline, p.config.MouthOpenMultiplier, p.config.SmileDivisor); ok {
		state.MouthCenter = m.Center.Add(p.config.MouthOffset)
		state.MouthOpen = m.Openness
		state.SmileFactor = m.SmileFactor
	} else {
		p.log.Debug("no lip landmarks in frame")
	}

	p.store.Publish(state)
	return state
}

func (p *Pipeline) analyzeRegion(obs Observation, name RegionName) (ClusterMetrics, bool) {
	points := ConvertAll(obs.Regions[name], obs.Transform)
	return Analyze(points)
}
