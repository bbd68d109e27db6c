// Package codec holds the reversible encoders: Base64 (standard and URL-safe),
// URI component escaping and HTML entities, plus a JWT inspector.
//
// Decoders never return partial output; malformed input yields an
// *operr.Error of kind CodecError with the offset of the first bad byte.
package codec

import (
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Mode selects the direction of a codec
type Mode string

const (
	Encode Mode = "encode"
	Decode Mode = "decode"
)

// ParseMode accepts "encode" and "decode" in any case. The empty string is
// treated as encode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "encode":
		return Encode, nil
	case "decode":
		return Decode, nil
	}
	return "", operr.Config("", "Unknown mode %q. Use encode or decode.", s)
}

func (m Mode) verb() string {
	if m == Decode {
		return "decode"
	}
	return "encode"
}

// failure builds the user-facing codec error. expectDecoded names what a
// decoder expected to receive; encoders always expect plain text.
func failure(op string, mode Mode, subject, expectDecoded string, input string, offset int, cause error) *operr.Error {
	expect := "text"
	if mode == Decode {
		expect = expectDecoded
	}
	e := operr.Wrap(operr.CodecError, op,
		"Failed to "+mode.verb()+" the "+subject+". Please check that your input is valid "+expect+".", cause)
	if offset >= 0 {
		e.WithPosition(operr.PositionAt(input, offset))
	}
	return e
}
