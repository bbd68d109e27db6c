package dateconv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// DefaultPattern is used when a custom format has no pattern
const DefaultPattern = "yyyy-MM-dd HH:mm:ss"

type token struct {
	field   string // pattern letters such as "yyyy"; empty for literals
	literal string
}

// Pattern is a compiled date pattern in the yyyy-MM-dd token syntax. Letters
// are pattern fields, text inside single quotes is literal and '' is a quote.
type Pattern struct {
	source string
	tokens []token
}

// fields maps each supported field to its Go layout element
var fields = map[string]string{
	"yyyy": "2006",
	"y":    "2006",
	"yy":   "06",
	"MMMM": "January",
	"MMM":  "Jan",
	"MM":   "01",
	"M":    "1",
	"dd":   "02",
	"d":    "2",
	"EEEE": "Monday",
	"EEE":  "Mon",
	"EE":   "Mon",
	"E":    "Mon",
	"HH":   "15",
	"H":    "15",
	"hh":   "03",
	"h":    "3",
	"mm":   "04",
	"m":    "4",
	"ss":   "05",
	"s":    "5",
	"SSS":  "000",
	"a":    "PM",
	"XXX":  "Z07:00",
	"xxx":  "-07:00",
}

// CompilePattern tokenises a pattern. Unknown fields and unterminated quotes
// are ConfigurationErrors.
func CompilePattern(src string) (*Pattern, error) {
	p := &Pattern{source: src}
	rs := []rune(src)
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			p.tokens = append(p.tokens, token{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == '\'':
			if i+1 < len(rs) && rs[i+1] == '\'' {
				lit.WriteRune('\'')
				i += 2
				continue
			}
			j := i + 1
			closed := false
			for j < len(rs) {
				if rs[j] == '\'' {
					if j+1 < len(rs) && rs[j+1] == '\'' {
						lit.WriteRune('\'')
						j += 2
						continue
					}
					closed = true
					break
				}
				lit.WriteRune(rs[j])
				j++
			}
			if !closed {
				return nil, operr.Config("date-conversion", "Unterminated quote in pattern %q", src)
			}
			i = j + 1
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			j := i
			for j < len(rs) && rs[j] == r {
				j++
			}
			field := string(rs[i:j])
			if _, ok := fields[field]; !ok {
				return nil, operr.Config("date-conversion", "Unsupported token %q in pattern %q", field, src)
			}
			flush()
			p.tokens = append(p.tokens, token{field: field})
			i = j
		default:
			lit.WriteRune(r)
			i++
		}
	}
	flush()
	return p, nil
}

// String returns the source pattern
func (p *Pattern) String() string {
	return p.source
}

// Format renders t field by field
func (p *Pattern) Format(t time.Time) string {
	var b strings.Builder
	for _, tok := range p.tokens {
		if tok.field == "" {
			b.WriteString(tok.literal)
			continue
		}
		b.WriteString(formatField(tok.field, t))
	}
	return b.String()
}

func formatField(field string, t time.Time) string {
	switch field {
	case "yyyy":
		return pad(t.Year(), 4)
	case "y":
		return strconv.Itoa(t.Year())
	case "yy":
		return pad(((t.Year()%100)+100)%100, 2)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return pad(int(t.Month()), 2)
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "dd":
		return pad(t.Day(), 2)
	case "d":
		return strconv.Itoa(t.Day())
	case "EEEE":
		return t.Weekday().String()
	case "EEE", "EE", "E":
		return t.Weekday().String()[:3]
	case "HH":
		return pad(t.Hour(), 2)
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return pad(hour12(t), 2)
	case "h":
		return strconv.Itoa(hour12(t))
	case "mm":
		return pad(t.Minute(), 2)
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return pad(t.Second(), 2)
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return pad(t.Nanosecond()/int(time.Millisecond), 3)
	case "a":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "XXX":
		return t.Format("Z07:00")
	case "xxx":
		return t.Format("-07:00")
	}
	return ""
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func pad(n, width int) string {
	if n < 0 {
		return "-" + pad(-n, width)
	}
	return fmt.Sprintf("%0*d", width, n)
}

// layout translates the pattern into a Go reference layout for parsing.
// Literal text that Go would read as a layout element is rejected.
func (p *Pattern) layout() (string, error) {
	var b strings.Builder
	for i, tok := range p.tokens {
		if tok.field == "" {
			if reference.Format(tok.literal) != tok.literal {
				return "", operr.Config("date-conversion", "Literal %q in pattern %q cannot be used for parsing", tok.literal, p.source)
			}
			b.WriteString(tok.literal)
			continue
		}
		if tok.field == "SSS" {
			prev := ""
			if i > 0 {
				prev = p.tokens[i-1].literal
			}
			if !strings.HasSuffix(prev, ".") && !strings.HasSuffix(prev, ",") {
				return "", operr.Config("date-conversion", "Milliseconds must follow a '.' or ',' in pattern %q", p.source)
			}
		}
		b.WriteString(fields[tok.field])
	}
	return b.String(), nil
}

// reference is an instant whose formatting exposes any layout elements
var reference = time.Date(1999, time.December, 31, 23, 59, 58, 0, time.FixedZone("ZZZ", 0))

// Parse reads value according to the pattern. Fields the pattern does not
// mention start at their zero value (year 0, January 1, midnight).
func (p *Pattern) Parse(value string, loc *time.Location) (time.Time, error) {
	layout, err := p.layout()
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(layout, value, loc)
}
