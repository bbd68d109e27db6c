// Package textops holds the general purpose editing operations: trimming,
// replacing, affixes, substrings, regex line filters, markup and JSON
// selection, and inline arithmetic.
//
// Operations that take free-form arguments accept the usual backslash escapes
// (see Unescape) so that a newline or tab can be typed as \n or \t.
package textops

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// TrimMode selects which side Trim cuts
type TrimMode string

const (
	TrimBoth  TrimMode = "both"
	TrimLeft  TrimMode = "left"
	TrimRight TrimMode = "right"
)

// Trim removes surrounding whitespace from the text, or from every line when
// perLine is set
func Trim(input string, mode TrimMode, perLine bool) (string, error) {
	var fn func(string) string
	switch mode {
	case TrimBoth, "":
		fn = strings.TrimSpace
	case TrimLeft:
		fn = func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }
	case TrimRight:
		fn = func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }
	default:
		return "", operr.Config("trim-text", "Unknown trim mode %q. Use both, left or right.", mode)
	}
	return eachLine(input, perLine, fn), nil
}

// eachLine applies fn to the whole input, or to each line of it
func eachLine(input string, perLine bool, fn func(string) string) string {
	if !perLine {
		return fn(input)
	}
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = fn(line)
	}
	return strings.Join(lines, "\n")
}

// ReplaceOptions configures Replace
type ReplaceOptions struct {
	Find    string
	Replace string
	// Regex treats Find as a regular expression; Replace may then use $1
	Regex bool
	Flags string
}

// Replace substitutes every occurrence of opts.Find
func Replace(input string, opts ReplaceOptions) (string, error) {
	if opts.Find == "" {
		return input, nil
	}
	replacement := Unescape(opts.Replace)
	if !opts.Regex {
		return strings.ReplaceAll(input, Unescape(opts.Find), replacement), nil
	}
	re, err := compile("replace-text", opts.Find, opts.Flags)
	if err != nil {
		return "", err
	}
	return re.ReplaceAllString(input, replacement), nil
}

// AffixOptions configures AddAffix and RemoveAffix
type AffixOptions struct {
	Prefix  string
	Suffix  string
	PerLine bool
}

// AddAffix puts prefix and suffix around the text or around every line
func AddAffix(input string, opts AffixOptions) string {
	prefix, suffix := Unescape(opts.Prefix), Unescape(opts.Suffix)
	return eachLine(input, opts.PerLine, func(s string) string {
		return prefix + s + suffix
	})
}

// RemoveAffix strips prefix and suffix where present
func RemoveAffix(input string, opts AffixOptions) string {
	prefix, suffix := Unescape(opts.Prefix), Unescape(opts.Suffix)
	return eachLine(input, opts.PerLine, func(s string) string {
		return strings.TrimSuffix(strings.TrimPrefix(s, prefix), suffix)
	})
}

// SubstringOptions configures Substring. Start counts characters from the
// left, or from the right when negative. A negative Count keeps everything
// from Start to the end.
type SubstringOptions struct {
	Start   int
	Count   int
	PerLine bool
}

// Substring cuts a character range out of the text or out of every line
func Substring(input string, opts SubstringOptions) string {
	return eachLine(input, opts.PerLine, func(s string) string {
		runes := []rune(s)
		start := opts.Start
		if start < 0 {
			start += len(runes)
			if start < 0 {
				start = 0
			}
		}
		if start >= len(runes) {
			return ""
		}
		end := len(runes)
		if opts.Count >= 0 && start+opts.Count < end {
			end = start + opts.Count
		}
		return string(runes[start:end])
	})
}

var placeholderRe = regexp.MustCompile(`\{(\d+)\}`)

// SplitFormat splits each line on sep and renders template with the parts,
// where {1} is the first part. Placeholders past the last part become empty.
func SplitFormat(input, sep, template string) (string, error) {
	if sep == "" {
		return "", operr.Config("split-format", "The separator must not be empty.")
	}
	sep, template = Unescape(sep), Unescape(template)
	return eachLine(input, true, func(line string) string {
		parts := strings.Split(line, sep)
		return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
			n, _ := strconv.Atoi(m[1 : len(m)-1])
			if n < 1 || n > len(parts) {
				return ""
			}
			return parts[n-1]
		})
	}), nil
}

// Unescape converts backslash escapes: \n \r \t \f \v \b \a \\, \xHH,
// \uHHHH and \UHHHHHHHH. Unknown escapes are kept as written.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	runes := []rune(s)
	simple := map[rune]rune{'n': '\n', 'r': '\r', 't': '\t', 'f': '\f', 'v': '\v', 'b': '\b', 'a': '\a', '\\': '\\'}
	hexLen := map[rune]int{'x': 2, 'u': 4, 'U': 8}

	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			b.WriteRune(runes[i])
			continue
		}
		next := runes[i+1]
		if r, ok := simple[next]; ok {
			b.WriteRune(r)
			i++
			continue
		}
		if n, ok := hexLen[next]; ok && i+1+n < len(runes) {
			if v, err := strconv.ParseUint(string(runes[i+2:i+2+n]), 16, 32); err == nil {
				b.WriteRune(rune(v))
				i += 1 + n
				continue
			}
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
