package ptz

import (
	"sync"

	"go.uber.org/zap"
)

// Pan/tilt drive speed bounds. Speeds above TiltSpeedCap are valid only for
// panning.
const (
	MinSpeed     = 0x01
	MaxSpeed     = 0x18
	DefaultSpeed = 0x0c
	TiltSpeedCap = 0x14
)

// PanTiltSpeed is the pair of speeds placed in a pan/tilt drive command.
type PanTiltSpeed struct {
	Pan  int
	Tilt int
}

// Speed holds the current pan/tilt drive speed.
type Speed struct {
	mu    sync.Mutex
	value int
	log   *zap.Logger
}

func NewSpeed(log *zap.Logger) *Speed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speed{value: DefaultSpeed, log: log}
}

// Current returns the pan speed and the tilt speed derived from it.
func (s *Speed) Current() PanTiltSpeed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PanTiltSpeed{Pan: s.value, Tilt: min(s.value, TiltSpeedCap)}
}

// Set replaces the speed. Values outside [MinSpeed, MaxSpeed] reset it to
// DefaultSpeed.
func (s *Speed) Set(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v < MinSpeed || v > MaxSpeed {
		s.log.Debug("speed out of range, using default",
			zap.Int("speed", v),
			zap.Int("min", MinSpeed),
			zap.Int("max", MaxSpeed),
			zap.Int("default", DefaultSpeed),
		)
		v = DefaultSpeed
	}
	s.value = v
}

func (s *Speed) Increase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value < MaxSpeed {
		s.value++
	}
}

func (s *Speed) Decrease() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value > MinSpeed {
		s.value--
	}
}
