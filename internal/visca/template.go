// Package visca describes VISCA commands and inquiries as data and converts
// between symbolic option values and wire bytes.
package visca

// Terminator ends every VISCA message.
const Terminator = 0xFF

// Kind distinguishes commands, which change device state, from inquiries,
// which report it.
type Kind int

const (
	KindCommand Kind = iota
	KindInquiry
)

func (k Kind) String() string {
	if k == KindInquiry {
		return "inquiry"
	}
	return "command"
}

// Options holds symbolic parameter values keyed by parameter name.
// A nil Options means "no value".
type Options map[string]string

// Param is a named parameter slot inside a message.
//
// Nibbles lists the nibble positions the value occupies, most significant
// first. Nibble 2n is the high half of byte n, nibble 2n+1 the low half, so a
// whole byte at offset n is Nibbles{2n, 2n+1}.
type Param struct {
	Name    string
	Nibbles []int
	Domain  Domain
}

// Response is the expected shape of an inquiry's completion reply.
type Response struct {
	Bytes  []byte
	Params []Param
}

// Template is the immutable definition of one command or inquiry.
type Template struct {
	Name     string
	Kind     Kind
	Bytes    []byte
	Params   []Param
	Response *Response
}

// ExpectsAck reports whether the device acknowledges the request before
// completing it. Inquiries complete directly.
func (t Template) ExpectsAck() bool {
	return t.Kind == KindCommand
}

// ReplyParams returns the slots decoded from the completion reply.
func (t Template) ReplyParams() []Param {
	if t.Response == nil {
		return nil
	}
	return t.Response.Params
}

func byteParam(name string, offset int, d Domain) Param {
	return Param{Name: name, Nibbles: []int{2 * offset, 2*offset + 1}, Domain: d}
}

func nibbleParam(name string, d Domain, nibbles ...int) Param {
	return Param{Name: name, Nibbles: nibbles, Domain: d}
}

func command(name string, b []byte, params ...Param) Template {
	return Template{Name: name, Kind: KindCommand, Bytes: b, Params: params}
}

func inquiry(name string, b []byte, reply []byte, params ...Param) Template {
	return Template{
		Name:     name,
		Kind:     KindInquiry,
		Bytes:    b,
		Response: &Response{Bytes: reply, Params: params},
	}
}
