// Package jsonfmt re-serialises JSON documents and converts between JSON,
// YAML, TOML and CSV.
//
// Documents are parsed into an order-preserving tree so that formatting never
// reorders members unless key sorting is requested, and numbers are written
// back exactly as they were read.
package jsonfmt

import (
	"strings"
	"unicode/utf8"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Style selects the output layout
type Style string

const (
	Pretty  Style = "pretty"
	Compact Style = "compact"
	NDJSON  Style = "ndjson"
)

// Options configures Format. Indent must be 1 to 8 whatever the style;
// DefaultOptions gives a valid starting point.
type Options struct {
	Style    Style
	Indent   int
	SortKeys bool
}

// DefaultOptions is pretty output with two-space indentation
func DefaultOptions() Options {
	return Options{Style: Pretty, Indent: 2}
}

// Format parses input and writes it back in the requested style
func Format(input string, opts Options) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	if opts.Style == "" {
		opts.Style = Pretty
	}
	if opts.Indent < 1 || opts.Indent > 8 {
		return "", operr.Config("json-formatter", "Indent must be between 1 and 8, got %d.", opts.Indent)
	}

	v, err := Parse(input)
	if err != nil {
		return "", err
	}
	if opts.SortKeys {
		SortKeys(v)
	}

	switch opts.Style {
	case Pretty:
		return Marshal(v, opts.Indent), nil
	case Compact:
		return Marshal(v, 0), nil
	case NDJSON:
		if v.Kind != Array {
			return "", operr.Unsupported("json-formatter", "NDJSON format requires an array input")
		}
		lines := make([]string, len(v.Items))
		for i, item := range v.Items {
			lines[i] = Marshal(item, 0)
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", operr.Config("json-formatter", "Unknown JSON style %q. Use pretty, compact or ndjson.", opts.Style)
}

// Marshal serialises v. An indent of zero produces compact output.
func Marshal(v *Value, indent int) string {
	var b strings.Builder
	writeValue(&b, v, indent, 0)
	return b.String()
}

func writeValue(b *strings.Builder, v *Value, indent, depth int) {
	switch v.Kind {
	case Null:
		b.WriteString("null")
	case Bool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Number:
		b.WriteString(v.Text)
	case String:
		writeString(b, v.Text)
	case Array:
		if len(v.Items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, indent, depth+1)
			writeValue(b, item, indent, depth+1)
		}
		newline(b, indent, depth)
		b.WriteByte(']')
	case Object:
		if len(v.Members) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, indent, depth+1)
			writeString(b, m.Key)
			b.WriteByte(':')
			if indent > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, m.Value, indent, depth+1)
		}
		newline(b, indent, depth)
		b.WriteByte('}')
	}
}

func newline(b *strings.Builder, indent, depth int) {
	if indent == 0 {
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", indent*depth))
}

// writeString quotes s the way browsers serialise JSON strings: only the
// quote, the backslash and control characters are escaped.
func writeString(b *strings.Builder, s string) {
	const hex = "0123456789abcdef"
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				b.WriteString("\uFFFD")
			} else {
				b.WriteString(s[i : i+size])
			}
			i += size
			continue
		}
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&15])
			} else {
				b.WriteByte(c)
			}
		}
		i++
	}
	b.WriteByte('"')
}
