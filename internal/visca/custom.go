package visca

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// CustomCommandName names templates built by ParseCustomCommand.
const CustomCommandName = "CustomCommand"

// ParseCustomCommand builds a parameterless command from hex text such as
// "81 01 04 07 00 FF".
func ParseCustomCommand(s string) (Template, error) {
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return Template{}, &EncodingError{Template: CustomCommandName, Value: s, Reason: fmt.Sprintf("invalid hex: %v", err)}
	}
	if len(b) < 3 || len(b) > MaxMessageLen {
		return Template{}, &EncodingError{Template: CustomCommandName, Value: s, Reason: fmt.Sprintf("length %d outside 3..%d", len(b), MaxMessageLen)}
	}
	if b[0]&0xF0 != 0x80 {
		return Template{}, &EncodingError{Template: CustomCommandName, Value: s, Reason: "header must be 8x"}
	}
	if i := bytes.IndexByte(b, Terminator); i != len(b)-1 {
		return Template{}, &EncodingError{Template: CustomCommandName, Value: s, Reason: "FF must appear only as the final byte"}
	}
	if b[1] == 0x09 {
		return Template{}, &EncodingError{Template: CustomCommandName, Value: s, Reason: "inquiries are not supported"}
	}
	return command(CustomCommandName, b), nil
}
