package ptz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSpeedDefault(t *testing.T) {
	s := NewSpeed(nil)
	assert.Equal(t, PanTiltSpeed{Pan: 0x0c, Tilt: 0x0c}, s.Current())
}

func TestSpeedSetOutOfRangeResetsToDefault(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewSpeed(zap.New(core))

	for _, v := range []int{0x00, 0x19, -1} {
		s.Set(0x05)
		s.Set(v)
		assert.Equal(t, DefaultSpeed, s.Current().Pan, "set 0x%02x", v)
	}
	assert.Equal(t, 3, logs.FilterMessage("speed out of range, using default").Len())
}

func TestSpeedSetInRange(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewSpeed(zap.New(core))

	s.Set(0x01)
	assert.Equal(t, 0x01, s.Current().Pan)
	s.Set(0x18)
	assert.Equal(t, 0x18, s.Current().Pan)
	assert.Equal(t, 0, logs.Len())
}

func TestTiltCap(t *testing.T) {
	s := NewSpeed(nil)

	for p := MinSpeed; p <= MaxSpeed; p++ {
		s.Set(p)
		got := s.Current()
		assert.Equal(t, p, got.Pan)
		assert.Equal(t, min(p, TiltSpeedCap), got.Tilt)
		assert.LessOrEqual(t, got.Tilt, TiltSpeedCap)
	}

	s.Set(0x18)
	assert.Equal(t, 0x14, s.Current().Tilt)
	s.Set(0x05)
	assert.Equal(t, 0x05, s.Current().Tilt)
}

func TestSpeedSaturates(t *testing.T) {
	s := NewSpeed(nil)

	s.Set(MaxSpeed)
	s.Increase()
	assert.Equal(t, MaxSpeed, s.Current().Pan)
	s.Decrease()
	assert.Equal(t, MaxSpeed-1, s.Current().Pan)

	s.Set(MinSpeed)
	s.Decrease()
	assert.Equal(t, MinSpeed, s.Current().Pan)
	s.Increase()
	assert.Equal(t, MinSpeed+1, s.Current().Pan)
}
