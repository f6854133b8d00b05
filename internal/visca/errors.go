package visca

import (
	"errors"
	"fmt"
	"time"
)

// ErrClosed reports that the connection was closed, or never opened, while an
// exchange was outstanding.
var ErrClosed = errors.New("connection closed")

// ErrorCode is the code byte of a device error reply (y0 6z cc FF).
type ErrorCode byte

const (
	CodeSyntax        ErrorCode = 0x02
	CodeBufferFull    ErrorCode = 0x03
	CodeCanceled      ErrorCode = 0x04
	CodeNoSocket      ErrorCode = 0x05
	CodeNotExecutable ErrorCode = 0x41
)

func (c ErrorCode) String() string {
	switch c {
	case CodeSyntax:
		return "syntax error"
	case CodeBufferFull:
		return "command buffer full"
	case CodeCanceled:
		return "command canceled"
	case CodeNoSocket:
		return "no such socket"
	case CodeNotExecutable:
		return "command not executable"
	default:
		return fmt.Sprintf("error 0x%02x", byte(c))
	}
}

// Sentinels for errors.Is against a *DeviceError.
var (
	ErrSyntax        = &DeviceError{Code: CodeSyntax}
	ErrBufferFull    = &DeviceError{Code: CodeBufferFull}
	ErrCanceled      = &DeviceError{Code: CodeCanceled}
	ErrNoSocket      = &DeviceError{Code: CodeNoSocket}
	ErrNotExecutable = &DeviceError{Code: CodeNotExecutable}
)

// EncodingError means the caller supplied a value outside a slot's domain.
type EncodingError struct {
	Template string
	Param    string
	Value    string
	Reason   string
}

func (e *EncodingError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("visca: %s: %s", e.Template, e.Reason)
	}
	return fmt.Sprintf("visca: %s: parameter %s: %s", e.Template, e.Param, e.Reason)
}

// ProtocolError means a reply could not be interpreted.
type ProtocolError struct {
	Template string
	Reply    []byte
	Reason   string
}

func (e *ProtocolError) Error() string {
	name := e.Template
	if name == "" {
		name = "reply"
	}
	return fmt.Sprintf("visca: %s: %s (% X)", name, e.Reason, e.Reply)
}

// DeviceError carries an explicit error code reported by the device.
type DeviceError struct {
	Template string
	Code     ErrorCode
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("visca: %s: device reported %s", e.Template, e.Code)
}

// Is matches any *DeviceError with the same code.
func (e *DeviceError) Is(target error) bool {
	t, ok := target.(*DeviceError)
	return ok && t.Code == e.Code
}

// TimeoutError means no reply arrived before the exchange's deadline.
type TimeoutError struct {
	Template string
	After    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("visca: %s: no reply within %s", e.Template, e.After)
}

func (e *TimeoutError) Timeout() bool { return true }

// ConnectionError means the socket was unavailable or failed.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("visca: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
