package port

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"go.bug.st/serial"
)

// DialFunc opens the byte stream to the device at address ("host:port").
type DialFunc func(ctx context.Context, address string) (io.ReadWriteCloser, error)

// TCPDialer connects over TCP, the usual VISCA over IP transport.
func TCPDialer(timeout time.Duration) DialFunc {
	d := net.Dialer{Timeout: timeout}
	return func(ctx context.Context, address string) (io.ReadWriteCloser, error) {
		conn, err := d.DialContext(ctx, "tcp", address)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// SerialDialer opens the host part of address as a serial device, for
// cameras on RS-232/RS-422. The port number is ignored.
func SerialDialer(baud int) DialFunc {
	return func(ctx context.Context, address string) (io.ReadWriteCloser, error) {
		device, _, err := net.SplitHostPort(address)
		if err != nil {
			device = address
		}

		mode := &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}

		p, err := serial.Open(device, mode)
		if err != nil {
			return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
		}
		return p, nil
	}
}
