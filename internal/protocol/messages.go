package protocol

import "encoding/json"

// Request types
const (
	TypePing       = "ping"
	TypeCommand    = "command"
	TypeInquiry    = "inquiry"
	TypePanTilt    = "pan_tilt"
	TypeSpeed      = "speed"
	TypeCustom     = "custom"
	TypeOSD        = "osd"
	TypeConnect    = "connect"
	TypeDisconnect = "disconnect"
)

// Response types
const (
	TypePong   = "pong"
	TypeResult = "result"
	TypeStatus = "status"
	TypeError  = "error"
)

// Error codes
const (
	ErrCameraDisconnected = "CAMERA_DISCONNECTED"
	ErrTimeout            = "TIMEOUT"
	ErrDevice             = "DEVICE_ERROR"
	ErrProtocol           = "PROTOCOL_ERROR"
	ErrInvalidRequest     = "INVALID_REQUEST"
	ErrInvalidConfig      = "INVALID_CONFIG"
	ErrInvalidMessage     = "INVALID_MESSAGE"
	ErrInternal           = "INTERNAL_ERROR"
)

// Speed actions
const (
	SpeedSet  = "set"
	SpeedUp   = "up"
	SpeedDown = "down"
)

// Message is the base envelope for all WebSocket messages. ID is chosen by
// the client and echoed on the response to that request.
type Message struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PingPayload for ping messages
type PingPayload struct {
	Timestamp int64 `json:"timestamp"`
}

// PongPayload for pong messages
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// CommandPayload names a catalog command and its parameter values.
type CommandPayload struct {
	Name    string            `json:"name"`
	Options map[string]string `json:"options,omitempty"`
}

// InquiryPayload names a catalog inquiry.
type InquiryPayload struct {
	Name string `json:"name"`
}

// PanTiltPayload moves the head in a direction at the current speed.
type PanTiltPayload struct {
	Direction string `json:"direction"`
}

// SpeedPayload changes the pan/tilt speed. Value is used by "set" only.
type SpeedPayload struct {
	Action string `json:"action"`
	Value  int    `json:"value,omitempty"`
}

// CustomPayload carries a raw command as hex.
type CustomPayload struct {
	Hex string `json:"hex"`
}

// OSDPayload opens, closes or toggles the on-screen menu.
type OSDPayload struct {
	Mode string `json:"mode"`
}

// ConnectPayload optionally replaces the camera endpoint before connecting.
// Zero fields keep the current setting.
type ConnectPayload struct {
	Host      string `json:"host,omitempty"`
	Port      int    `json:"port,omitempty"`
	Transport string `json:"transport,omitempty"`
	Baud      int    `json:"baud,omitempty"`
	TimeoutMs int    `json:"timeout_ms,omitempty"`
}

// ResultPayload answers a successful request. Options is set for inquiries.
type ResultPayload struct {
	Options map[string]string `json:"options,omitempty"`
}

// StatusPayload for status messages
type StatusPayload struct {
	Connected bool `json:"connected"`
	PanSpeed  int  `json:"pan_speed"`
	TiltSpeed int  `json:"tilt_speed"`
}

// ErrorPayload for error messages
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewMessage creates a new message with the given type and payload
func NewMessage(msgType string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:    msgType,
		Payload: data,
	}, nil
}

// ParsePayload unmarshals the payload into the given struct. A missing
// payload leaves v untouched.
func (m *Message) ParsePayload(v any) error {
	if len(m.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}
