package ptz

import (
	"context"

	"visca-remote/internal/config"
	"visca-remote/internal/visca"
)

// Controller is what a control surface drives.
type Controller interface {
	// SendCommand sends the named command with the given option values and
	// waits for its completion. Commands resolve with nil options.
	SendCommand(ctx context.Context, name string, opts visca.Options) (visca.Options, error)

	// SendInquiry sends the named inquiry and returns the reported values.
	SendInquiry(ctx context.Context, name string) (visca.Options, error)

	// SendCustomCommand sends raw command bytes given as hex text.
	SendCustomCommand(ctx context.Context, hex string) error

	// PanTilt drives in a direction at the current speed; "stop" stops.
	PanTilt(ctx context.Context, direction string) error

	// SetOSD opens, closes or toggles the on-screen menu.
	SetOSD(ctx context.Context, mode string) error

	SetSpeed(v int)
	IncreaseSpeed()
	DecreaseSpeed()
	CurrentSpeed() PanTiltSpeed

	// Config returns the camera settings in effect.
	Config() config.CameraConfig

	// Reconfigure applies new connection settings, reconnecting if needed.
	Reconfigure(ctx context.Context, cfg config.CameraConfig) error

	Open(ctx context.Context) error
	Closed() bool
	Close() error
}
