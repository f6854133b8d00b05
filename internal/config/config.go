package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Camera CameraConfig `yaml:"camera"`
	Server ServerConfig `yaml:"server"`
}

// ---- CAMERA ----

type CameraConfig struct {
	// Host is the camera address, or the device path for serial transport.
	// Empty means "do not connect".
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Transport string `yaml:"transport"` // "tcp" or "serial"
	Baud      int    `yaml:"baud"`      // serial only
	TimeoutMs int    `yaml:"timeout_ms"`

	// DebugLogging logs every message exchanged with the camera.
	// Nil until Normalize fills in the default.
	DebugLogging *bool `yaml:"debug_logging"`
}

// Timeout is the per-exchange reply deadline.
func (c CameraConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c CameraConfig) Debug() bool {
	return c.DebugLogging != nil && *c.DebugLogging
}

// ---- SERVER ----

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// Load reads a YAML config file. The result is neither validated nor
// normalized.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns a normalized config with no camera host.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}
