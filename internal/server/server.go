package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"visca-remote/internal/protocol"
	"visca-remote/internal/ptz"
	"visca-remote/internal/visca"
)

// Config for the server
type Config struct {
	ListenAddr string
}

// Server exposes a camera controller over WebSocket.
type Server struct {
	cfg       Config
	log       *zap.Logger
	ctrl      ptz.Controller
	clients   map[*Client]bool
	clientsMu sync.RWMutex
	upgrader  websocket.Upgrader
	http      *http.Server
}

// Client represents a connected WebSocket client
type Client struct {
	conn   *websocket.Conn
	server *Server
	log    *zap.Logger
	send   chan []byte
	// requests feeds requestLoop in arrival order
	requests chan protocol.Message
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	closed   bool
}

// New creates a new server instance
func New(cfg Config, ctrl ptz.Controller, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		log:     log.Named("server"),
		ctrl:    ctrl,
		clients: make(map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for local use
			},
		},
	}
	s.http = &http.Server{Addr: cfg.ListenAddr, Handler: s.Handler()}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.log.Info("server starting", zap.String("listen", s.cfg.ListenAddr))
	return s.http.ListenAndServe()
}

// Stop disconnects every client, closes the camera connection and shuts the
// HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.clientsMu.Lock()
	for client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if err := s.ctrl.Close(); err != nil {
		s.log.Warn("closing camera", zap.Error(err))
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		conn:     conn,
		server:   s,
		log:      s.log.With(zap.String("remote", conn.RemoteAddr().String())),
		send:     make(chan []byte, 256),
		requests: make(chan protocol.Message, 64),
		ctx:      ctx,
		cancel:   cancel,
	}

	s.clientsMu.Lock()
	s.clients[client] = true
	s.clientsMu.Unlock()

	go client.writePump()
	go client.requestLoop()
	go client.readPump()

	client.sendMessage(protocol.TypeStatus, "", s.status())
}

func (s *Server) status() protocol.StatusPayload {
	speed := s.ctrl.CurrentSpeed()
	return protocol.StatusPayload{
		Connected: !s.ctrl.Closed(),
		PanSpeed:  speed.Pan,
		TiltSpeed: speed.Tilt,
	}
}

// broadcastStatus tells every client other than origin about a state change.
// origin gets its own reply carrying the request id.
func (s *Server) broadcastStatus(origin *Client) {
	status := s.status()
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for client := range s.clients {
		if client != origin {
			client.sendMessage(protocol.TypeStatus, "", status)
		}
	}
}

func (c *Client) sendMessage(msgType, id string, payload any) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		c.log.Error("failed to create message", zap.Error(err))
		return
	}
	msg.ID = id

	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("failed to marshal message", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("client send buffer full, dropping message", zap.String("type", msgType))
	}
}

func (c *Client) sendError(id, code string, err error) {
	c.sendMessage(protocol.TypeError, id, protocol.ErrorPayload{
		Code:    code,
		Message: err.Error(),
	})
}

func (c *Client) readPump() {
	defer func() {
		close(c.requests)
		c.server.clientsMu.Lock()
		delete(c.server.clients, c)
		c.server.clientsMu.Unlock()
		c.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket error", zap.Error(err))
			}
			return
		}

		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("", protocol.ErrInvalidMessage, errors.New("failed to parse message"))
			continue
		}

		if msg.Type == protocol.TypePing {
			c.handleMessage(msg)
			continue
		}
		select {
		case c.requests <- msg:
		case <-c.ctx.Done():
			return
		}
	}
}

// requestLoop handles one request at a time so the camera sees a client's
// requests in the order it sent them. Pings skip the line.
func (c *Client) requestLoop() {
	for msg := range c.requests {
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg protocol.Message) {
	ctrl := c.server.ctrl
	ctx := c.ctx

	switch msg.Type {
	case protocol.TypePing:
		var payload protocol.PingPayload
		if err := msg.ParsePayload(&payload); err != nil {
			c.sendError(msg.ID, protocol.ErrInvalidMessage, err)
			return
		}
		c.sendMessage(protocol.TypePong, msg.ID, protocol.PongPayload{
			ClientTimestamp: payload.Timestamp,
			ServerTimestamp: time.Now().UnixMilli(),
		})

	case protocol.TypeCommand:
		var payload protocol.CommandPayload
		if err := msg.ParsePayload(&payload); err != nil {
			c.sendError(msg.ID, protocol.ErrInvalidMessage, err)
			return
		}
		_, err := ctrl.SendCommand(ctx, payload.Name, payload.Options)
		c.reply(msg.ID, nil, err)

	case protocol.TypeInquiry:
		var payload protocol.InquiryPayload
		if err := msg.ParsePayload(&payload); err != nil {
			c.sendError(msg.ID, protocol.ErrInvalidMessage, err)
			return
		}
		opts, err := ctrl.SendInquiry(ctx, payload.Name)
		c.reply(msg.ID, opts, err)

	case protocol.TypePanTilt:
		var payload protocol.PanTiltPayload
		if err := msg.ParsePayload(&payload); err != nil {
			c.sendError(msg.ID, protocol.ErrInvalidMessage, err)
			return
		}
		c.reply(msg.ID, nil, ctrl.PanTilt(ctx, payload.Direction))

	case protocol.TypeCustom:
		var payload protocol.CustomPayload
		if err := msg.ParsePayload(&payload); err != nil {
			c.sendError(msg.ID, protocol.ErrInvalidMessage, err)
			return
		}
		c.reply(msg.ID, nil, ctrl.SendCustomCommand(ctx, payload.Hex))

	case protocol.TypeOSD:
		var payload protocol.OSDPayload
		if err := msg.ParsePayload(&payload); err != nil {
			c.sendError(msg.ID, protocol.ErrInvalidMessage, err)
			return
		}
		c.reply(msg.ID, nil, ctrl.SetOSD(ctx, payload.Mode))

	case protocol.TypeSpeed:
		var payload protocol.SpeedPayload
		if err := msg.ParsePayload(&payload); err != nil {
			c.sendError(msg.ID, protocol.ErrInvalidMessage, err)
			return
		}
		switch payload.Action {
		case protocol.SpeedSet:
			ctrl.SetSpeed(payload.Value)
		case protocol.SpeedUp:
			ctrl.IncreaseSpeed()
		case protocol.SpeedDown:
			ctrl.DecreaseSpeed()
		default:
			c.sendError(msg.ID, protocol.ErrInvalidRequest, errors.New("unknown speed action "+payload.Action))
			return
		}
		c.statusChanged(msg.ID)

	case protocol.TypeConnect:
		var payload protocol.ConnectPayload
		if err := msg.ParsePayload(&payload); err != nil {
			c.sendError(msg.ID, protocol.ErrInvalidMessage, err)
			return
		}
		c.handleConnect(msg.ID, payload)

	case protocol.TypeDisconnect:
		if err := ctrl.Close(); err != nil {
			c.sendError(msg.ID, protocol.ErrInternal, err)
			return
		}
		c.statusChanged(msg.ID)

	default:
		c.log.Warn("unknown message type", zap.String("type", msg.Type))
		c.sendError(msg.ID, protocol.ErrInvalidMessage, errors.New("unknown message type "+msg.Type))
	}
}

func (c *Client) handleConnect(id string, p protocol.ConnectPayload) {
	ctrl := c.server.ctrl
	cfg := ctrl.Config()
	if p.Host != "" {
		cfg.Host = p.Host
	}
	if p.Port != 0 {
		cfg.Port = p.Port
	}
	if p.Transport != "" {
		cfg.Transport = p.Transport
	}
	if p.Baud != 0 {
		cfg.Baud = p.Baud
	}
	if p.TimeoutMs != 0 {
		cfg.TimeoutMs = p.TimeoutMs
	}

	err := ctrl.Reconfigure(c.ctx, cfg)
	if err == nil && ctrl.Closed() {
		err = ctrl.Open(c.ctx)
	}
	if err != nil {
		var ce *visca.ConnectionError
		if errors.As(err, &ce) {
			c.sendError(id, protocol.ErrCameraDisconnected, err)
		} else {
			c.sendError(id, protocol.ErrInvalidConfig, err)
		}
		c.server.broadcastStatus(c)
		return
	}
	c.statusChanged(id)
}

func (c *Client) statusChanged(id string) {
	c.sendMessage(protocol.TypeStatus, id, c.server.status())
	c.server.broadcastStatus(c)
}

func (c *Client) reply(id string, opts visca.Options, err error) {
	if err != nil {
		c.sendError(id, errorCode(err), err)
		return
	}
	c.sendMessage(protocol.TypeResult, id, protocol.ResultPayload{Options: opts})
}

func errorCode(err error) string {
	var (
		ce *visca.ConnectionError
		te *visca.TimeoutError
		de *visca.DeviceError
		pe *visca.ProtocolError
		ee *visca.EncodingError
	)
	switch {
	case errors.As(err, &ce):
		return protocol.ErrCameraDisconnected
	case errors.As(err, &te):
		return protocol.ErrTimeout
	case errors.As(err, &de):
		return protocol.ErrDevice
	case errors.As(err, &pe):
		return protocol.ErrProtocol
	case errors.As(err, &ee):
		return protocol.ErrInvalidRequest
	default:
		return protocol.ErrInternal
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close closes the client connection. Requests still running for this client
// stop waiting; their exchanges stay queued on the camera.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	close(c.send)
}
