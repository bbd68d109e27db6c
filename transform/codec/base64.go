package codec

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Variant selects the Base64 alphabet
type Variant string

const (
	Standard Variant = "standard"
	URLSafe  Variant = "url"
)

// ParseVariant accepts "standard" and "url" (also "base64url", "url-safe")
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "std", "base64":
		return Standard, nil
	case "url", "urlsafe", "url-safe", "base64url":
		return URLSafe, nil
	}
	return "", operr.Config("base64", "Unknown Base64 variant %q. Use standard or url.", s)
}

// Base64 encodes or decodes input. The input is taken as its UTF-8 byte
// sequence. Decoded bytes that form valid UTF-8 are returned as text; any
// other byte string maps each byte to the code point of the same value.
func Base64(input string, mode Mode, variant Variant) (string, error) {
	if variant == URLSafe {
		if mode == Decode {
			return decodeBase64URL(input)
		}
		s := base64.StdEncoding.EncodeToString([]byte(input))
		s = strings.NewReplacer("+", "-", "/", "_").Replace(s)
		return strings.TrimRight(s, "="), nil
	}

	if mode == Decode {
		out, offset, err := decodeForgiving(input)
		if err != nil {
			return "", failure("base64", mode, "input", "Base64", input, offset, err)
		}
		return out, nil
	}
	return base64.StdEncoding.EncodeToString([]byte(input)), nil
}

func decodeBase64URL(input string) (string, error) {
	s := strings.NewReplacer("-", "+", "_", "/").Replace(input)
	for len(s)%4 != 0 {
		s += "="
	}
	out, offset, err := decodeForgiving(s)
	if err != nil {
		e := operr.Wrap(operr.CodecError, "base64",
			"Failed to decode the Base64 URL input. Please check that your input is valid.", err)
		if offset >= 0 && offset < len(input) {
			e.WithPosition(operr.PositionAt(input, offset))
		}
		return "", e
	}
	return out, nil
}

// decodeForgiving follows the lenient browser decoder: ASCII whitespace is
// ignored and up to two padding characters may be omitted. The returned
// offset points into the original input, or is -1 when unknown.
func decodeForgiving(input string) (string, int, error) {
	kept := make([]byte, 0, len(input))
	pos := make([]int, 0, len(input))
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case ' ', '\t', '\n', '\f', '\r':
			continue
		}
		kept = append(kept, input[i])
		pos = append(pos, i)
	}

	data := kept
	if len(data)%4 == 0 {
		for n := 0; n < 2 && len(data) > 0 && data[len(data)-1] == '='; n++ {
			data = data[:len(data)-1]
		}
	}

	out, err := base64.RawStdEncoding.DecodeString(string(data))
	if err != nil {
		var ce base64.CorruptInputError
		if errors.As(err, &ce) {
			at := int(ce)
			if at >= len(pos) {
				return "", len(input), err
			}
			return "", pos[at], err
		}
		return "", -1, err
	}
	return decodedText(out), -1, nil
}

// decodedText keeps valid UTF-8 and otherwise reads b as Latin-1
func decodedText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}
