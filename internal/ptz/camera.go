package ptz

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"visca-remote/internal/config"
	"visca-remote/internal/port"
	"visca-remote/internal/visca"
)

// Camera drives one VISCA camera. It implements Controller.
type Camera struct {
	log   *zap.Logger
	speed *Speed

	mu   sync.Mutex
	cfg  config.CameraConfig
	port *port.Port
}

var _ Controller = (*Camera)(nil)

// NewCamera creates a camera for a normalized config. It does not connect;
// call Open.
func NewCamera(cfg config.CameraConfig, log *zap.Logger) *Camera {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("ptz")
	return &Camera{
		log:   log,
		speed: NewSpeed(log),
		cfg:   cfg,
		port:  newPort(cfg, log),
	}
}

func newPort(cfg config.CameraConfig, log *zap.Logger) *port.Port {
	pc := port.Config{
		Timeout: cfg.Timeout(),
		Debug:   cfg.Debug(),
	}
	if cfg.Transport == config.TransportSerial {
		pc.Dial = port.SerialDialer(cfg.Baud)
	}
	return port.New(pc, log)
}

func (c *Camera) current() (*port.Port, config.CameraConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.port, c.cfg
}

// Open (re)connects to the configured camera. With no host configured the
// connection is left closed.
func (c *Camera) Open(ctx context.Context) error {
	p, cfg := c.current()
	if cfg.Host == "" {
		p.Close()
		return nil
	}
	return p.Open(ctx, cfg.Host, cfg.Port)
}

func (c *Camera) Config() config.CameraConfig {
	_, cfg := c.current()
	return cfg
}

func (c *Camera) Closed() bool {
	p, _ := c.current()
	return p.Closed()
}

func (c *Camera) Close() error {
	p, _ := c.current()
	p.Close()
	return nil
}

// Reconfigure applies new settings. The connection is reopened when the
// endpoint changed or it is currently closed.
func (c *Camera) Reconfigure(ctx context.Context, cfg config.CameraConfig) error {
	if err := config.ValidateCamera(cfg); err != nil {
		return err
	}
	config.NormalizeCamera(&cfg)

	c.mu.Lock()
	old := c.cfg
	c.cfg = cfg
	reset := old.Host != cfg.Host || old.Port != cfg.Port

	// transport settings are fixed per port
	if old.Transport != cfg.Transport || old.Baud != cfg.Baud ||
		old.TimeoutMs != cfg.TimeoutMs || old.Debug() != cfg.Debug() {
		c.port.Close()
		c.port = newPort(cfg, c.log)
		reset = true
	}
	closed := c.port.Closed()
	c.mu.Unlock()

	if reset || closed {
		c.log.Info("reconnecting", zap.String("host", cfg.Host), zap.Int("port", cfg.Port))
		return c.Open(ctx)
	}
	return nil
}

func lookup(name string, kind visca.Kind) (visca.Template, error) {
	t, ok := visca.Lookup(name)
	if !ok {
		return visca.Template{}, &visca.EncodingError{Template: name, Reason: "unknown " + kind.String()}
	}
	if t.Kind != kind {
		return visca.Template{}, &visca.EncodingError{Template: name, Reason: fmt.Sprintf("is a %s template, want %s", t.Kind, kind)}
	}
	return t, nil
}

func (c *Camera) SendCommand(ctx context.Context, name string, opts visca.Options) (visca.Options, error) {
	t, err := lookup(name, visca.KindCommand)
	if err != nil {
		return nil, err
	}
	p, _ := c.current()
	return p.Send(ctx, t, opts)
}

func (c *Camera) SendInquiry(ctx context.Context, name string) (visca.Options, error) {
	t, err := lookup(name, visca.KindInquiry)
	if err != nil {
		return nil, err
	}
	p, _ := c.current()
	return p.Send(ctx, t, nil)
}

func (c *Camera) SendCustomCommand(ctx context.Context, hex string) error {
	t, err := visca.ParseCustomCommand(hex)
	if err != nil {
		return err
	}
	p, _ := c.current()
	_, err = p.Send(ctx, t, nil)
	return err
}

func (c *Camera) PanTilt(ctx context.Context, direction string) error {
	s := c.speed.Current()
	_, err := c.SendCommand(ctx, "PanTilt", visca.Options{
		visca.OptDirection: direction,
		visca.OptPanSpeed:  strconv.Itoa(s.Pan),
		visca.OptTiltSpeed: strconv.Itoa(s.Tilt),
	})
	return err
}

// OSD modes accepted by SetOSD.
const (
	OSDOpen   = "open"
	OSDClose  = "close"
	OSDToggle = "toggle"
)

// SetOSD drives the on-screen menu. The camera only offers a toggle for
// opening, so "open" asks for the current state first.
func (c *Camera) SetOSD(ctx context.Context, mode string) error {
	switch mode {
	case OSDClose:
		_, err := c.SendCommand(ctx, "OnScreenDisplayClose", nil)
		return err
	case OSDToggle:
	case OSDOpen:
		opts, err := c.SendInquiry(ctx, "OnScreenDisplayInquiry")
		if err != nil {
			return err
		}
		if opts[visca.OptOSD] == OSDOpen {
			return nil
		}
	default:
		return &visca.EncodingError{Template: "OnScreenDisplay", Param: visca.OptOSD, Value: mode, Reason: "want open, close or toggle"}
	}
	_, err := c.SendCommand(ctx, "OnScreenDisplayToggle", nil)
	return err
}

func (c *Camera) SetSpeed(v int)             { c.speed.Set(v) }
func (c *Camera) IncreaseSpeed()             { c.speed.Increase() }
func (c *Camera) DecreaseSpeed()             { c.speed.Decrease() }
func (c *Camera) CurrentSpeed() PanTiltSpeed { return c.speed.Current() }
