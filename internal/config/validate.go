package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	return ValidateCamera(cfg.Camera)
}

// ValidateCamera checks one camera section. Zero values are allowed; they
// are replaced by Normalize.
func ValidateCamera(c CameraConfig) error {
	switch c.Transport {
	case "", TransportTCP, TransportSerial:
	default:
		return fmt.Errorf("camera: unknown transport %q (want %q or %q)", c.Transport, TransportTCP, TransportSerial)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("camera: port %d out of range 1-65535", c.Port)
	}

	if c.Transport == TransportSerial && c.Host == "" {
		return fmt.Errorf("camera: serial transport requires host to name the serial device")
	}

	if c.Baud < 0 {
		return fmt.Errorf("camera: baud must be > 0")
	}

	if c.TimeoutMs < 0 {
		return fmt.Errorf("camera: timeout_ms must be > 0")
	}

	return nil
}
