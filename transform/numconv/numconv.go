// Package numconv converts integers between decimal, binary, octal and
// hexadecimal notation.
package numconv

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Base names a supported notation
type Base string

const (
	Decimal Base = "decimal"
	Binary  Base = "binary"
	Octal   Base = "octal"
	Hex     Base = "hex"
)

type baseInfo struct {
	radix   int
	pattern *regexp.Regexp
	allowed string
}

var bases = map[Base]baseInfo{
	Decimal: {10, regexp.MustCompile(`^-?\d+$`), "0-9 and - (at start)"},
	Binary:  {2, regexp.MustCompile(`^[01]+$`), "0 and 1"},
	Octal:   {8, regexp.MustCompile(`^[0-7]+$`), "0-7"},
	Hex:     {16, regexp.MustCompile(`^[0-9A-Fa-f]+$`), "0-9 and A-F"},
}

// Bases lists the supported notations
func Bases() []Base {
	return []Base{Decimal, Binary, Octal, Hex}
}

// ParseBase accepts the base names plus the radix ("16") and the common
// short forms ("dec", "bin", "oct", "hexadecimal").
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "decimal", "dec", "10":
		return Decimal, nil
	case "binary", "bin", "2":
		return Binary, nil
	case "octal", "oct", "8":
		return Octal, nil
	case "hex", "hexadecimal", "16":
		return Hex, nil
	}
	return "", operr.Config("number-conversion", "Unknown number base %q. Use decimal, binary, octal or hex.", s)
}

// Convert parses input in base from and renders it in base to. Whitespace
// around the number is ignored; blank input gives blank output. Values must
// fit in a signed 64-bit integer.
func Convert(input string, from, to Base) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", nil
	}

	in, ok := bases[from]
	if !ok {
		return "", operr.Config("number-conversion", "Unknown number base %q.", from)
	}
	out, ok := bases[to]
	if !ok {
		return "", operr.Config("number-conversion", "Unknown number base %q.", to)
	}

	if !in.pattern.MatchString(s) {
		e := operr.Invalid("number-conversion", "Invalid %s number. Only %s are allowed.", from, in.allowed)
		return "", e.WithPosition(operr.PositionAt(input, firstInvalid(input, from)))
	}

	n, err := strconv.ParseInt(s, in.radix, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return "", operr.Wrap(operr.InvalidInputFormat, "number-conversion",
				"The "+string(from)+" number "+s+" exceeds the supported 64-bit range.", err)
		}
		return "", operr.Wrap(operr.InvalidInputFormat, "number-conversion", "Invalid "+string(from)+" number", err)
	}

	result := strconv.FormatInt(n, out.radix)
	if to == Hex {
		result = strings.ToUpper(result)
	}
	return result, nil
}

// firstInvalid returns the byte offset of the first character that cannot
// appear in a number of the given base.
func firstInvalid(input string, base Base) int {
	start := len(input) - len(strings.TrimLeft(input, " \t\n\r\v\f"))
	body := strings.TrimSpace(input)
	for i, r := range body {
		if i == 0 && r == '-' && base == Decimal && len(body) > 1 {
			continue
		}
		if !validDigit(r, base) {
			return start + i
		}
	}
	return start
}

func validDigit(r rune, base Base) bool {
	switch base {
	case Binary:
		return r == '0' || r == '1'
	case Octal:
		return r >= '0' && r <= '7'
	case Hex:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		return r >= '0' && r <= '9'
	}
}
