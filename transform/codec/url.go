package codec

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"
)

const upperHex = "0123456789ABCDEF"

// URL escapes or unescapes a URI component. Encoding leaves only
// A-Z a-z 0-9 and - _ . ! ~ * ' ( ) untouched; decoding does not turn '+'
// into a space.
func URL(input string, mode Mode) (string, error) {
	if mode == Decode {
		return unescapeComponent(input)
	}
	return escapeComponent(input)
}

func escapeComponent(s string) (string, error) {
	if !utf8.ValidString(s) {
		at := firstInvalidUTF8(s)
		return "", failure("url-encode", Encode, "URL", "", s, at, errors.New("invalid UTF-8"))
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&15])
	}
	return b.String(), nil
}

func unescapeComponent(s string) (string, error) {
	out, err := url.PathUnescape(s)
	if err != nil {
		return "", failure("url-encode", Decode, "URL", "URL-encoded text", s, escapeOffset(s, err), err)
	}
	if !utf8.ValidString(out) {
		// The decoded bytes are not text; report the first escape that broke it.
		return "", failure("url-encode", Decode, "URL", "URL-encoded text", s, firstBadEscape(s), errors.New("decoded bytes are not valid UTF-8"))
	}
	return out, nil
}

func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// escapeOffset locates the escape reported by url.PathUnescape
func escapeOffset(s string, err error) int {
	var ee url.EscapeError
	if !errors.As(err, &ee) {
		return -1
	}
	bad := string(ee)
	if len(bad) < 3 {
		// Truncated escape at the very end of the input.
		return strings.LastIndex(s, bad)
	}
	return strings.Index(s, bad)
}

func firstInvalidUTF8(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// firstBadEscape returns the offset of the first percent escape whose byte
// does not start or continue a valid UTF-8 sequence.
func firstBadEscape(s string) int {
	var buf []byte
	var starts []int
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) {
			v, err := url.PathUnescape(s[i : i+3])
			if err == nil {
				buf = append(buf, v[0])
				starts = append(starts, i)
				i += 3
				continue
			}
		}
		buf = append(buf, s[i])
		starts = append(starts, i)
		i++
	}
	for i := 0; i < len(buf); {
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			return starts[i]
		}
		i += size
	}
	return -1
}
