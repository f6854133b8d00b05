// Package port owns the connection to a VISCA device and sequences
// request/reply exchanges over it, one at a time, in submission order.
package port

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"visca-remote/internal/visca"
)

// DefaultTimeout bounds how long an exchange may wait for its reply.
const DefaultTimeout = 5 * time.Second

// State of the connection.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// Config for a Port.
type Config struct {
	// Timeout per exchange, measured from the moment its bytes are written.
	Timeout time.Duration
	// Debug logs every message sent and received.
	Debug bool
	// Dial opens the byte stream. Defaults to TCPDialer.
	Dial DialFunc
}

// Port is the single logical channel to one device.
type Port struct {
	cfg Config
	log *zap.Logger

	mu         sync.Mutex
	state      State
	conn       io.ReadWriteCloser
	gen        uint64 // bumped on every open and close; stale readers and dials check it
	cancelDial context.CancelFunc
	seq        uint64
	queue      []*Exchange
	inFlight   *Exchange
	inbound    []byte
	writes     chan *Exchange
	// sockets of exchanges that timed out after their ACK; a late
	// completion or error on one of them is not credited to the next exchange
	stale map[byte]bool
}

// writeBacklog bounds exchanges handed to the writer but not yet written.
// Only one exchange is in flight, so more than one is pending only when
// replies resolve exchanges the writer has not reached.
const writeBacklog = 8

var errWriteBacklog = errors.New("write backlog full")

// New creates a closed Port.
func New(cfg Config, log *zap.Logger) *Port {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Dial == nil {
		cfg.Dial = TCPDialer(cfg.Timeout)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Port{cfg: cfg, log: log.Named("port")}
}

// State returns the current connection state.
func (p *Port) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Closed reports whether the port is closed (neither open nor opening).
func (p *Port) Closed() bool {
	return p.State() == StateClosed
}

// Pending returns the number of unresolved exchanges, in flight or queued.
func (p *Port) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.queue)
	if p.inFlight != nil {
		n++
	}
	return n
}

// Open connects to host:port, closing any previous connection first.
// Exchanges submitted while opening are sent once connected, or failed if the
// connection cannot be made. There is no automatic retry.
func (p *Port) Open(ctx context.Context, host string, port int) error {
	address := net.JoinHostPort(host, strconv.Itoa(port))

	p.mu.Lock()
	if p.state != StateClosed {
		p.log.Info("closing previous connection")
		p.closeLocked(visca.ErrClosed)
	}
	p.gen++
	gen := p.gen
	p.state = StateOpening
	dialCtx, cancel := context.WithCancel(ctx)
	p.cancelDial = cancel
	p.mu.Unlock()

	p.log.Info("connecting", zap.String("address", address))
	conn, err := p.cfg.Dial(dialCtx, address)
	cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		if conn != nil {
			conn.Close()
		}
		return &visca.ConnectionError{Op: "open " + address, Err: visca.ErrClosed}
	}
	p.cancelDial = nil

	if err != nil {
		p.log.Warn("connect failed", zap.String("address", address), zap.Error(err))
		p.closeLocked(err)
		return &visca.ConnectionError{Op: "open " + address, Err: err}
	}

	p.conn = conn
	p.state = StateOpen
	p.writes = make(chan *Exchange, writeBacklog)
	p.log.Info("connected", zap.String("address", address))

	go p.readLoop(conn, gen)
	go p.writeLoop(conn, gen, p.writes)
	p.advanceLocked()
	return nil
}

// Close tears down the connection and fails every pending exchange before
// returning. Closing a closed port is a no-op.
func (p *Port) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateClosed {
		return
	}
	p.log.Info("closing connection")
	p.closeLocked(visca.ErrClosed)
}

// Submit encodes and queues a request. It never blocks; the returned
// exchange resolves when the reply, a timeout or a connection loss arrives.
func (p *Port) Submit(t visca.Template, opts visca.Options) *Exchange {
	msg, err := visca.Encode(t, opts)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	ex := newExchange(p.seq, t, msg)

	if err != nil {
		p.log.Error("cannot encode request", zap.String("template", t.Name), zap.Error(err))
		ex.resolve(nil, err)
		return ex
	}
	if p.state == StateClosed {
		ex.resolve(nil, &visca.ConnectionError{Op: t.Name, Err: visca.ErrClosed})
		return ex
	}

	p.queue = append(p.queue, ex)
	p.advanceLocked()
	return ex
}

// Send submits a request and waits for its resolution.
func (p *Port) Send(ctx context.Context, t visca.Template, opts visca.Options) (visca.Options, error) {
	return p.Submit(t, opts).Wait(ctx)
}

// advanceLocked hands the head of the queue to the writer when nothing is in
// flight.
func (p *Port) advanceLocked() {
	if p.inFlight != nil || len(p.queue) == 0 || p.state != StateOpen {
		return
	}

	ex := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	p.inFlight = ex

	if ex.tmpl.ExpectsAck() {
		ex.phase = phaseAwaitingAck
	} else {
		ex.phase = phaseAwaitingCompletion
	}

	select {
	case p.writes <- ex:
	default:
		p.log.Error("writer stalled", zap.String("template", ex.tmpl.Name))
		p.closeLocked(errWriteBacklog)
	}
}

// writeLoop writes exchanges outside the port lock so a stalled device
// cannot hold up Close. The deadline is armed once the bytes are out.
func (p *Port) writeLoop(conn io.ReadWriteCloser, gen uint64, writes <-chan *Exchange) {
	for ex := range writes {
		if d, ok := conn.(interface{ SetWriteDeadline(time.Time) error }); ok {
			d.SetWriteDeadline(time.Now().Add(p.cfg.Timeout))
		}
		if p.cfg.Debug {
			p.log.Debug("sent", zap.String("bytes", hexBytes(ex.msg)))
		}
		_, err := conn.Write(ex.msg)
		p.written(ex, gen, err)
	}
}

func (p *Port) written(ex *Exchange, gen uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		return
	}
	if err != nil {
		p.log.Warn("write failed", zap.String("template", ex.tmpl.Name), zap.Error(err))
		p.closeLocked(err)
		return
	}
	// the reply may already have resolved it
	if p.inFlight == ex {
		ex.timer = time.AfterFunc(p.cfg.Timeout, func() { p.expire(ex) })
	}
}

// finishLocked resolves the in-flight exchange and moves on to the next one.
func (p *Port) finishLocked(opts visca.Options, err error) {
	ex := p.inFlight
	p.inFlight = nil
	ex.resolve(opts, err)
	p.advanceLocked()
}

func (p *Port) expire(ex *Exchange) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inFlight != ex {
		return
	}
	p.log.Warn("exchange timed out",
		zap.String("template", ex.tmpl.Name),
		zap.Uint64("seq", ex.seq),
		zap.Duration("after", p.cfg.Timeout),
	)
	// a partial reply belongs to the expired exchange
	p.inbound = nil
	if ex.acked {
		if p.stale == nil {
			p.stale = make(map[byte]bool)
		}
		p.stale[ex.socket] = true
	}
	p.finishLocked(nil, &visca.TimeoutError{Template: ex.tmpl.Name, After: p.cfg.Timeout})
}

// closeLocked fails every pending exchange with a connection error wrapping
// cause.
func (p *Port) closeLocked(cause error) {
	p.gen++
	if p.cancelDial != nil {
		p.cancelDial()
		p.cancelDial = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
	if p.writes != nil {
		close(p.writes)
		p.writes = nil
	}
	p.state = StateClosed
	p.inbound = nil
	p.stale = nil

	pending := p.queue
	p.queue = nil
	if p.inFlight != nil {
		pending = append([]*Exchange{p.inFlight}, pending...)
		p.inFlight = nil
	}
	for _, ex := range pending {
		ex.resolve(nil, &visca.ConnectionError{Op: ex.tmpl.Name, Err: cause})
	}
	if len(pending) > 0 {
		p.log.Info("failed pending exchanges", zap.Int("count", len(pending)), zap.Error(cause))
	}
}

func (p *Port) readLoop(conn io.ReadWriteCloser, gen uint64) {
	buf := make([]byte, 64)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			p.receive(gen, buf[:n])
		}
		if err != nil {
			p.mu.Lock()
			if p.gen == gen {
				p.log.Warn("connection lost", zap.Error(err))
				if errors.Is(err, io.EOF) {
					p.closeLocked(visca.ErrClosed)
				} else {
					p.closeLocked(fmt.Errorf("%w: %w", visca.ErrClosed, err))
				}
			}
			p.mu.Unlock()
			return
		}
	}
}

func (p *Port) receive(gen uint64, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		return
	}
	if p.cfg.Debug {
		p.log.Debug("received", zap.String("bytes", hexBytes(data)))
	}

	p.inbound = append(p.inbound, data...)
	for p.state == StateOpen {
		frame, rest, ok := visca.NextFrame(p.inbound)
		if !ok {
			break
		}
		p.inbound = rest
		p.handleFrameLocked(bytes.Clone(frame))
	}

	if len(p.inbound) >= visca.MaxMessageLen {
		err := &visca.ProtocolError{Reply: bytes.Clone(p.inbound), Reason: "unterminated reply"}
		p.inbound = nil
		p.log.Error("discarding inbound bytes", zap.Error(err))
		if p.inFlight != nil {
			err.Template = p.inFlight.tmpl.Name
			p.finishLocked(nil, err)
		}
	}
	if len(p.inbound) == 0 {
		p.inbound = nil
	}
}

func (p *Port) handleFrameLocked(frame []byte) {
	ex := p.inFlight
	if ex == nil {
		p.log.Warn("discarding unsolicited reply", zap.String("bytes", hexBytes(frame)))
		return
	}

	reply, err := visca.Classify(frame)
	if err != nil {
		var pe *visca.ProtocolError
		if errors.As(err, &pe) {
			pe.Template = ex.tmpl.Name
		}
		p.log.Error("malformed reply", zap.String("template", ex.tmpl.Name), zap.Error(err))
		p.finishLocked(nil, err)
		return
	}

	if p.staleLocked(ex, reply) {
		p.log.Warn("discarding reply for another socket",
			zap.String("template", ex.tmpl.Name),
			zap.String("bytes", hexBytes(frame)),
		)
		return
	}

	switch reply.Kind {
	case visca.ReplyAck:
		if ex.phase != phaseAwaitingAck {
			err := &visca.ProtocolError{Template: ex.tmpl.Name, Reply: frame, Reason: "unexpected acknowledgement"}
			p.log.Error("unexpected reply", zap.Error(err))
			p.finishLocked(nil, err)
			return
		}
		ex.phase = phaseAwaitingCompletion
		ex.acked = true
		ex.socket = reply.Socket
		delete(p.stale, reply.Socket)

	case visca.ReplyCompletion:
		opts, err := visca.Decode(ex.tmpl, frame)
		if err != nil {
			p.log.Error("cannot decode completion", zap.String("template", ex.tmpl.Name), zap.Error(err))
		}
		p.finishLocked(opts, err)

	case visca.ReplyError:
		err := &visca.DeviceError{Template: ex.tmpl.Name, Code: reply.Code}
		p.log.Warn("device error", zap.String("template", ex.tmpl.Name), zap.Stringer("code", reply.Code))
		p.finishLocked(nil, err)
	}
}

// staleLocked reports whether a completion or error on a socket belongs to
// some other exchange: the in-flight one was acknowledged on a different
// socket, or it was not acknowledged yet and the socket is held by an
// exchange that timed out.
func (p *Port) staleLocked(ex *Exchange, reply visca.Reply) bool {
	if reply.Kind == visca.ReplyAck || reply.Socket == 0 {
		return false
	}
	if ex.acked {
		return reply.Socket != ex.socket
	}
	if p.stale[reply.Socket] {
		delete(p.stale, reply.Socket)
		return true
	}
	return false
}

func hexBytes(b []byte) string {
	return fmt.Sprintf("% X", b)
}
