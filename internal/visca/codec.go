package visca

import (
	"bytes"
	"errors"
	"fmt"
)

// Encode renders a template's request with the given option values.
func Encode(t Template, opts Options) ([]byte, error) {
	return encodeInto(t.Name, t.Bytes, t.Params, opts)
}

// EncodeReply renders the completion reply an inquiry expects. It is the
// inverse of Decode and is what a device (or a fake one) sends back.
func EncodeReply(t Template, opts Options) ([]byte, error) {
	if t.Response == nil {
		return []byte{0x90, 0x50, Terminator}, nil
	}
	return encodeInto(t.Name, t.Response.Bytes, t.Response.Params, opts)
}

func encodeInto(name string, skeleton []byte, params []Param, opts Options) ([]byte, error) {
	out := bytes.Clone(skeleton)
	for _, p := range params {
		value, ok := opts[p.Name]
		if !ok {
			return nil, &EncodingError{Template: name, Param: p.Name, Reason: "missing value"}
		}
		n, err := p.Domain.Encode(value)
		if err != nil {
			return nil, &EncodingError{Template: name, Param: p.Name, Value: value, Reason: err.Error()}
		}
		if bits := 4 * len(p.Nibbles); bits < 32 && n >= 1<<bits {
			return nil, &EncodingError{
				Template: name,
				Param:    p.Name,
				Value:    value,
				Reason:   fmt.Sprintf("0x%x does not fit in %d nibbles", n, len(p.Nibbles)),
			}
		}
		putNibbles(out, p.Nibbles, n)
	}
	return out, nil
}

// Decode interprets a completion reply against the template's response
// shape. Templates without reply slots decode to nil.
func Decode(t Template, reply []byte) (Options, error) {
	r, err := Classify(reply)
	if err != nil {
		var pe *ProtocolError
		if errors.As(err, &pe) {
			pe.Template = t.Name
		}
		return nil, err
	}
	switch r.Kind {
	case ReplyError:
		return nil, &DeviceError{Template: t.Name, Code: r.Code}
	case ReplyAck:
		return nil, &ProtocolError{Template: t.Name, Reply: reply, Reason: "acknowledgement is not a completion"}
	}

	params := t.ReplyParams()
	if len(params) == 0 {
		if len(r.Data) != 0 {
			return nil, &ProtocolError{Template: t.Name, Reply: reply, Reason: "unexpected completion data"}
		}
		return nil, nil
	}

	want := t.Response.Bytes
	if len(reply) != len(want) {
		return nil, &ProtocolError{
			Template: t.Name,
			Reply:    reply,
			Reason:   fmt.Sprintf("completion is %d bytes, want %d", len(reply), len(want)),
		}
	}

	slots := make(map[int]bool)
	for _, p := range params {
		for _, n := range p.Nibbles {
			slots[n] = true
		}
	}
	for i := 0; i < 2*len(want); i++ {
		// nibble 3 is the socket number
		if slots[i] || i == 3 {
			continue
		}
		if nibble(reply, i) != nibble(want, i) {
			return nil, &ProtocolError{Template: t.Name, Reply: reply, Reason: fmt.Sprintf("unexpected byte at offset %d", i/2)}
		}
	}

	opts := make(Options, len(params))
	for _, p := range params {
		v, err := p.Domain.Decode(getNibbles(reply, p.Nibbles))
		if err != nil {
			return nil, &ProtocolError{Template: t.Name, Reply: reply, Reason: fmt.Sprintf("parameter %s: %v", p.Name, err)}
		}
		opts[p.Name] = v
	}
	return opts, nil
}

func nibble(msg []byte, pos int) byte {
	b := msg[pos/2]
	if pos%2 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

func setNibble(msg []byte, pos int, v byte) {
	i := pos / 2
	if pos%2 == 0 {
		msg[i] = msg[i]&0x0F | v<<4
	} else {
		msg[i] = msg[i]&0xF0 | v&0x0F
	}
}

func putNibbles(msg []byte, nibbles []int, v uint32) {
	for i := len(nibbles) - 1; i >= 0; i-- {
		setNibble(msg, nibbles[i], byte(v&0x0F))
		v >>= 4
	}
}

func getNibbles(msg []byte, nibbles []int) uint32 {
	var v uint32
	for _, n := range nibbles {
		v = v<<4 | uint32(nibble(msg, n))
	}
	return v
}
