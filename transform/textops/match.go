package textops

import (
	"regexp"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// compile builds a pattern with flag letters: i for case-insensitive, s to
// let . match newlines. ^ and $ always match at line boundaries.
func compile(op, pattern, flags string) (*regexp.Regexp, error) {
	prefix := "(?m"
	for _, f := range flags {
		switch f {
		case 'i', 's':
			prefix += string(f)
		case 'm', 'g':
		default:
			return nil, operr.Config(op, "Unknown regex flag %q. Use i or s.", f)
		}
	}
	re, err := regexp.Compile(prefix + ")" + pattern)
	if err != nil {
		return nil, operr.Wrap(operr.ConfigurationError, op, "Invalid regular expression: "+err.Error(), err)
	}
	return re, nil
}

// FilterOptions configures FilterLines
type FilterOptions struct {
	Pattern string
	Flags   string
	// Invert drops the matching lines instead of keeping them
	Invert bool
}

// FilterLines keeps the lines that match the pattern
func FilterLines(input string, opts FilterOptions) (string, error) {
	if opts.Pattern == "" {
		return input, nil
	}
	re, err := compile("filter-lines", opts.Pattern, opts.Flags)
	if err != nil {
		return "", err
	}

	var kept []string
	for _, line := range strings.Split(input, "\n") {
		if re.MatchString(line) != opts.Invert {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// ExtractMatches lists every match of the pattern, one per line. With group
// > 0 the numbered capture group is listed instead of the whole match.
func ExtractMatches(input, pattern, flags string, group int) (string, error) {
	const op = "extract-matches"
	if pattern == "" {
		return "", operr.Config(op, "A pattern is required.")
	}
	re, err := compile(op, pattern, flags)
	if err != nil {
		return "", err
	}
	if group < 0 || group > re.NumSubexp() {
		return "", operr.Config(op, "The pattern has no group %d.", group)
	}

	var out []string
	for _, m := range re.FindAllStringSubmatch(input, -1) {
		out = append(out, m[group])
	}
	return strings.Join(out, "\n"), nil
}
