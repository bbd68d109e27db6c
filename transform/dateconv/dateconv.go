// Package dateconv converts timestamps between ISO-8601, Unix seconds, Unix
// milliseconds, RFC 2822 and custom patterns.
//
// Every conversion parses into a single instant and formats that instant, so
// the output depends only on the instant, the target format and the location.
package dateconv

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Format names a timestamp notation
type Format string

const (
	ISO     Format = "iso"
	Unix    Format = "unix"
	UnixMS  Format = "unix_ms"
	RFC2822 Format = "rfc2822"
	Custom  Format = "custom"
)

// Formats lists the supported notations
func Formats() []Format {
	return []Format{ISO, Unix, UnixMS, RFC2822, Custom}
}

// Request describes one conversion
type Request struct {
	From          Format
	To            Format
	InputPattern  string
	OutputPattern string
	// Location applies to input without a zone and to custom output.
	// Nil means UTC.
	Location *time.Location
}

// maxMillis bounds the representable range to ±100,000,000 days around the
// epoch, the same range browsers accept.
const maxMillis = 8.64e15

// ErrInvalidDate is wrapped by conversions of out-of-range or unparsable input
var ErrInvalidDate = errors.New("Invalid date")

// ParseLocation resolves an IANA zone name. The empty string is UTC.
func ParseLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utc") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, operr.Wrap(operr.ConfigurationError, "date-conversion", "Unknown time zone "+strconv.Quote(name), err)
	}
	return loc, nil
}

// Convert parses input in req.From and renders it in req.To. Blank input
// gives blank output.
func Convert(input string, req Request) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	if req.Location == nil {
		req.Location = time.UTC
	}

	t, err := Parse(input, req.From, req.InputPattern, req.Location)
	if err != nil {
		return "", err
	}
	return Render(t, req.To, req.OutputPattern, req.Location)
}

// Parse reads input in the given format
func Parse(input string, f Format, pattern string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := strings.TrimSpace(input)

	var (
		t   time.Time
		err error
	)
	switch f {
	case ISO, "":
		t, err = parseISO(s, loc)
	case Unix:
		t, err = parseEpoch(s, 1000)
	case UnixMS:
		t, err = parseEpoch(s, 1)
	case RFC2822:
		t, err = parseRFC2822(s)
	case Custom:
		var p *Pattern
		if p, err = compileOrDefault(pattern); err != nil {
			return time.Time{}, err
		}
		t, err = p.Parse(s, loc)
	default:
		return time.Time{}, operr.Config("date-conversion", "Date conversion failed: Invalid input format")
	}
	if err != nil {
		if e, ok := operr.As(err); ok {
			return time.Time{}, e
		}
		return time.Time{}, invalidDate(err)
	}
	if !inRange(t) {
		return time.Time{}, invalidDate(ErrInvalidDate)
	}
	return t, nil
}

// Render formats t in the given format
func Render(t time.Time, f Format, pattern string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	switch f {
	case ISO, "":
		return isoString(t), nil
	case Unix:
		return strconv.FormatInt(floorDiv(t.UnixMilli(), 1000), 10), nil
	case UnixMS:
		return strconv.FormatInt(t.UnixMilli(), 10), nil
	case RFC2822:
		return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT"), nil
	case Custom:
		p, err := compileOrDefault(pattern)
		if err != nil {
			return "", err
		}
		return p.Format(t.In(loc)), nil
	}
	return "", operr.Config("date-conversion", "Date conversion failed: Invalid output format")
}

// isoString renders t in UTC with millisecond precision. Years outside 0-9999
// use the signed six digit expanded form.
func isoString(t time.Time) string {
	t = t.UTC()
	rest := "-" + t.Format("01-02T15:04:05.000Z")
	switch y := t.Year(); {
	case y < 0:
		return fmt.Sprintf("-%06d", -y) + rest
	case y > 9999:
		return fmt.Sprintf("+%06d", y) + rest
	default:
		return fmt.Sprintf("%04d", y) + rest
	}
}

func compileOrDefault(pattern string) (*Pattern, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	return CompilePattern(pattern)
}

func invalidDate(cause error) *operr.Error {
	msg := "Date conversion failed: " + ErrInvalidDate.Error()
	if !errors.Is(cause, ErrInvalidDate) {
		cause = errors.Join(ErrInvalidDate, cause)
	}
	return operr.Wrap(operr.InvalidInputFormat, "date-conversion", msg, cause)
}

func inRange(t time.Time) bool {
	ms := t.UnixMilli()
	return math.Abs(float64(ms)) <= maxMillis
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

var (
	isoDateTimeRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[T ](\d{2}:\d{2}(?::\d{2}(?:[.,]\d+)?)?)(Z|[+-]\d{2}(?::?\d{2})?)?$`)
	isoDateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	epochRe       = regexp.MustCompile(`^[+-]?\d+$`)
)

// parseISO accepts a calendar date, optionally followed by a time with
// minutes, seconds, fraction and zone. Input without a zone is read in loc.
func parseISO(s string, loc *time.Location) (time.Time, error) {
	if isoDateRe.MatchString(s) {
		return time.ParseInLocation("2006-01-02", s, loc)
	}
	m := isoDateTimeRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, errors.New("not an ISO-8601 date")
	}

	clock := strings.Replace(m[2], ",", ".", 1)
	if strings.Count(clock, ":") == 1 {
		clock += ":00"
	}
	zone := m[3]
	switch {
	case zone == "":
		return time.ParseInLocation("2006-01-02T15:04:05", m[1]+"T"+clock, loc)
	case zone == "Z":
		zone = "+00:00"
	case len(zone) == 3:
		zone += ":00"
	case len(zone) == 5:
		zone = zone[:3] + ":" + zone[3:]
	}
	return time.Parse("2006-01-02T15:04:05-07:00", m[1]+"T"+clock+zone)
}

// parseEpoch reads a signed integer count of units, scale milliseconds each
func parseEpoch(s string, scale int64) (time.Time, error) {
	if !epochRe.MatchString(s) {
		return time.Time{}, errors.New("not an integer timestamp")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	if math.Abs(float64(n)*float64(scale)) > maxMillis {
		return time.Time{}, ErrInvalidDate
	}
	return time.UnixMilli(n * scale).UTC(), nil
}

var rfc2822Layouts = []string{
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04 -0700",
	"Mon, 2 Jan 2006 15:04 MST",
	"2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 06 15:04:05 -0700",
	"Mon, 2 Jan 06 15:04:05 MST",
	"Mon Jan 2 2006 15:04:05 GMT-0700",
}

// parseRFC2822 uses the mail header date parser and falls back to a few
// looser layouts seen in the wild.
func parseRFC2822(s string) (time.Time, error) {
	t, err := mail.ParseDate(s)
	if err == nil {
		return t, nil
	}
	for _, layout := range rfc2822Layouts {
		if t, lerr := time.Parse(layout, s); lerr == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
