// Package casing converts text between the twelve supported case styles.
package casing

import (
	"regexp"
	"strings"
	"unicode"
)

// Kind names a case style
type Kind string

const (
	Upper       Kind = "upper"
	Lower       Kind = "lower"
	Title       Kind = "title"
	Sentence    Kind = "sentence"
	Camel       Kind = "camel"
	Pascal      Kind = "pascal"
	Snake       Kind = "snake"
	Kebab       Kind = "kebab"
	Constant    Kind = "constant"
	Capitalized Kind = "capitalized"
	Alternating Kind = "alternating"
	Inverse     Kind = "inverse"
)

// Kinds lists every supported kind in display order
func Kinds() []Kind {
	return []Kind{Upper, Lower, Title, Sentence, Camel, Pascal, Snake, Kebab, Constant, Capitalized, Alternating, Inverse}
}

// ParseKind accepts the short names ("camel") as well as the form values used
// by the web catalog ("camelcase", "camel-case", "camel_case").
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	s = strings.TrimSuffix(s, "case")
	for _, k := range Kinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// space mirrors the whitespace class of ECMAScript regular expressions, which
// is wider than RE2's ASCII-only \s.
const space = `[\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

var (
	sentenceStartRe = regexp.MustCompile(`(^` + space + `*\w|[.!?]` + space + `*\w)`)
	camelBoundaryRe = regexp.MustCompile(`[^a-zA-Z0-9]+(.)`)
	pascalBoundary  = regexp.MustCompile(`(^|[^a-zA-Z0-9]+)(.)`)
	spaceRunRe      = regexp.MustCompile(space + `+`)
	notSnakeRe      = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	notKebabRe      = regexp.MustCompile(`[^a-zA-Z0-9-]`)
)

// Convert transforms input to the given case kind. Unknown kinds return the
// input unchanged.
func Convert(input string, kind Kind) string {
	switch kind {
	case Upper:
		return strings.ToUpper(input)
	case Lower:
		return strings.ToLower(input)
	case Title, Capitalized:
		return capitalizeWords(strings.ToLower(input))
	case Sentence:
		return sentenceStartRe.ReplaceAllStringFunc(strings.ToLower(input), strings.ToUpper)
	case Camel:
		return upperGroup(camelBoundaryRe, strings.ToLower(input), 1)
	case Pascal:
		return upperGroup(pascalBoundary, strings.ToLower(input), 2)
	case Snake:
		s := spaceRunRe.ReplaceAllString(strings.ToLower(input), "_")
		return notSnakeRe.ReplaceAllString(s, "")
	case Kebab:
		s := spaceRunRe.ReplaceAllString(strings.ToLower(input), "-")
		return notKebabRe.ReplaceAllString(s, "")
	case Constant:
		s := spaceRunRe.ReplaceAllString(strings.ToUpper(input), "_")
		return notSnakeRe.ReplaceAllString(s, "")
	case Alternating:
		return alternate(input)
	case Inverse:
		return invert(input)
	default:
		return input
	}
}

// capitalizeWords splits on single spaces only, so runs of spaces survive as
// empty words.
func capitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		for _, r := range w {
			words[i] = strings.ToUpper(string(r)) + w[len(string(r)):]
			break
		}
	}
	return strings.Join(words, " ")
}

// upperGroup replaces every match of re with the upper-cased text of the
// given capture group, dropping the rest of the match.
func upperGroup(re *regexp.Regexp, s string, group int) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		b.WriteString(strings.ToUpper(s[m[2*group]:m[2*group+1]]))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func alternate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for _, r := range s {
		if i%2 == 0 {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		i++
	}
	return b.String()
}

func invert(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.ToUpper(r) == r {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
