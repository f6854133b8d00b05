package port

import (
	"context"
	"time"

	"visca-remote/internal/visca"
)

type phase int

const (
	phaseQueued phase = iota
	phaseAwaitingAck
	phaseAwaitingCompletion
	phaseResolved
)

// Exchange is one request/reply transaction. It resolves exactly once, with
// decoded options (nil for no value) or an error.
type Exchange struct {
	seq   uint64
	tmpl  visca.Template
	msg   []byte
	phase phase
	timer *time.Timer
	done  chan struct{}

	// socket named by the ACK
	acked  bool
	socket byte

	opts visca.Options
	err  error
}

func newExchange(seq uint64, t visca.Template, msg []byte) *Exchange {
	return &Exchange{seq: seq, tmpl: t, msg: msg, done: make(chan struct{})}
}

// Seq is the exchange's position in submission order.
func (e *Exchange) Seq() uint64 { return e.seq }

func (e *Exchange) Template() visca.Template { return e.tmpl }

// Bytes returns the encoded request, or nil if encoding failed.
func (e *Exchange) Bytes() []byte { return e.msg }

// Done is closed once the exchange is resolved.
func (e *Exchange) Done() <-chan struct{} { return e.done }

// Result returns the resolution. Only meaningful after Done is closed.
func (e *Exchange) Result() (visca.Options, error) {
	return e.opts, e.err
}

// Wait blocks until the exchange resolves or ctx ends. A canceled wait leaves
// the exchange queued; only closing the port cancels it.
func (e *Exchange) Wait(ctx context.Context) (visca.Options, error) {
	select {
	case <-e.done:
		return e.opts, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// resolve must be called with the port lock held.
func (e *Exchange) resolve(opts visca.Options, err error) {
	if e.phase == phaseResolved {
		return
	}
	e.phase = phaseResolved
	if e.timer != nil {
		e.timer.Stop()
	}
	e.opts = opts
	e.err = err
	close(e.done)
}
