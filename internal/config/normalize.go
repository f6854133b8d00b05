package config

const (
	TransportTCP    = "tcp"
	TransportSerial = "serial"

	DefaultPort      = 5678
	DefaultBaud      = 9600
	DefaultTimeoutMs = 5000
	DefaultListen    = ":8080"
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	NormalizeCamera(&cfg.Camera)

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}
}

func NormalizeCamera(c *CameraConfig) {
	if c.Transport == "" {
		c.Transport = TransportTCP
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = DefaultTimeoutMs
	}

	// Configs written before debug logging existed lack the key.
	if c.DebugLogging == nil {
		off := false
		c.DebugLogging = &off
	}
}
