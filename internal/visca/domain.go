package visca

import (
	"fmt"
	"strconv"
	"strings"
)

// Domain maps symbolic option values to the integers placed in a slot.
type Domain interface {
	Encode(value string) (uint32, error)
	Decode(v uint32) (string, error)
}

// Choice is one member of a closed mapping.
type Choice struct {
	ID    string
	Label string
	Value uint32
}

// Choices is a closed, ordered mapping from symbolic ids to encodings.
type Choices []Choice

func (c Choices) Encode(value string) (uint32, error) {
	for _, ch := range c {
		if ch.ID == value {
			return ch.Value, nil
		}
	}
	return 0, fmt.Errorf("%q is not one of %s", value, strings.Join(c.IDs(), ", "))
}

func (c Choices) Decode(v uint32) (string, error) {
	for _, ch := range c {
		if ch.Value == v {
			return ch.ID, nil
		}
	}
	return "", fmt.Errorf("value 0x%02x has no matching choice", v)
}

// IDs returns the symbolic ids in declaration order.
func (c Choices) IDs() []string {
	ids := make([]string, 0, len(c))
	for _, ch := range c {
		ids = append(ids, ch.ID)
	}
	return ids
}

// Range is an inclusive numeric domain encoded directly. Symbolic values are
// decimal integers; values outside [Min, Max] are clamped when encoding.
type Range struct {
	Min int
	Max int
}

func (r Range) Encode(value string) (uint32, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", value)
	}
	return uint32(r.Clamp(n)), nil
}

func (r Range) Decode(v uint32) (string, error) {
	return strconv.Itoa(int(v)), nil
}

// Clamp limits n to the range boundaries.
func (r Range) Clamp(n int) int {
	if n < r.Min {
		return r.Min
	}
	if n > r.Max {
		return r.Max
	}
	return n
}
