package visca

import "bytes"

// MaxMessageLen is the longest message the protocol defines, terminator
// included.
const MaxMessageLen = 16

// ReplyKind is the type discriminator of a device reply.
type ReplyKind int

const (
	ReplyAck ReplyKind = iota + 1
	ReplyCompletion
	ReplyError
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyAck:
		return "ack"
	case ReplyCompletion:
		return "completion"
	case ReplyError:
		return "error"
	default:
		return "unknown"
	}
}

// Reply is a classified device reply.
type Reply struct {
	Kind   ReplyKind
	Socket byte
	// Data holds the bytes between the discriminator and the terminator of a
	// completion.
	Data []byte
	Code ErrorCode
}

// Classify inspects one complete reply message.
//
//	y0 4z FF       acknowledgement
//	y0 5z ... FF   completion, optionally with data
//	y0 6z cc FF    error with code cc
func Classify(msg []byte) (Reply, error) {
	if len(msg) < 3 {
		return Reply{}, &ProtocolError{Reply: msg, Reason: "reply too short"}
	}
	if msg[len(msg)-1] != Terminator {
		return Reply{}, &ProtocolError{Reply: msg, Reason: "reply not terminated"}
	}
	if msg[0] < 0x90 || msg[0]&0x0F != 0 {
		return Reply{}, &ProtocolError{Reply: msg, Reason: "bad reply address"}
	}

	socket := msg[1] & 0x0F
	switch msg[1] >> 4 {
	case 0x4:
		if len(msg) != 3 {
			return Reply{}, &ProtocolError{Reply: msg, Reason: "acknowledgement carries data"}
		}
		return Reply{Kind: ReplyAck, Socket: socket}, nil
	case 0x5:
		return Reply{Kind: ReplyCompletion, Socket: socket, Data: msg[2 : len(msg)-1]}, nil
	case 0x6:
		if len(msg) != 4 {
			return Reply{}, &ProtocolError{Reply: msg, Reason: "malformed error reply"}
		}
		return Reply{Kind: ReplyError, Socket: socket, Code: ErrorCode(msg[2])}, nil
	default:
		return Reply{}, &ProtocolError{Reply: msg, Reason: "unknown reply type"}
	}
}

// NextFrame splits the first terminated message off buf.
func NextFrame(buf []byte) (frame, rest []byte, ok bool) {
	i := bytes.IndexByte(buf, Terminator)
	if i < 0 {
		return nil, buf, false
	}
	return buf[:i+1], buf[i+1:], true
}
