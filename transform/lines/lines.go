// Package lines implements sorting and de-duplication of newline-delimited text.
//
// Both operations share a fixed preparation pipeline: the input is split on
// "\n", optionally trimmed line by line, optionally stripped of empty lines, and
// only then sorted or de-duplicated before being joined back with "\n".
package lines

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the comparison used by Sort
type SortKey string

const (
	Alphabetical SortKey = "alphabetical"
	Numeric      SortKey = "numeric"
	Length       SortKey = "length"
)

// Order selects ascending or descending output
type Order string

const (
	Ascending  Order = "ascending"
	Descending Order = "descending"
)

// Prepare controls the shared trimming and filtering steps
type Prepare struct {
	TrimLines        bool
	RemoveEmptyLines bool
}

// SortOptions configures Sort
type SortOptions struct {
	Prepare
	IgnoreCase bool
	Key        SortKey
	Order      Order
}

// DedupOptions configures Dedup
type DedupOptions struct {
	Prepare
	IgnoreCase       bool
	IgnoreWhitespace bool
	KeepFirst        bool
}

// DefaultDedupOptions keeps the first occurrence, which is what the catalog
// has always done.
func DefaultDedupOptions() DedupOptions {
	return DedupOptions{KeepFirst: true}
}

// Split splits input and applies the preparation steps
func Split(input string, p Prepare) []string {
	lines := strings.Split(input, "\n")
	if p.TrimLines {
		for i, line := range lines {
			lines[i] = trimJS(line)
		}
	}
	if p.RemoveEmptyLines {
		kept := lines[:0]
		for _, line := range lines {
			if trimJS(line) != "" {
				kept = append(kept, line)
			}
		}
		lines = kept
	}
	return lines
}

// Sort orders the lines of input. Descending output is the ascending result
// reversed. Lines with equal keys fall back to byte order of the whole line,
// so the ascending order is total and sorting a sorted result is a no-op in
// either direction.
func Sort(input string, opts SortOptions) string {
	lines := Split(input, opts.Prepare)

	keys := make([]string, len(lines))
	for i, line := range lines {
		if opts.IgnoreCase {
			keys[i] = strings.ToLower(line)
		} else {
			keys[i] = line
		}
	}

	idx := make([]int, len(lines))
	for i := range idx {
		idx[i] = i
	}

	switch opts.Key {
	case Numeric:
		nums := make([]float64, len(keys))
		for i, k := range keys {
			nums[i] = leadingFloat(k)
		}
		sort.SliceStable(idx, func(a, b int) bool {
			x, y := nums[idx[a]], nums[idx[b]]
			if x != y {
				return x < y
			}
			return lines[idx[a]] < lines[idx[b]]
		})
	case Length:
		sort.SliceStable(idx, func(a, b int) bool {
			x, y := utf8.RuneCountInString(keys[idx[a]]), utf8.RuneCountInString(keys[idx[b]])
			if x != y {
				return x < y
			}
			return lines[idx[a]] < lines[idx[b]]
		})
	case Alphabetical, "":
		// Collator buffers are not safe to share, so one per call.
		c := collate.New(language.Und)
		sort.SliceStable(idx, func(a, b int) bool {
			if r := c.CompareString(keys[idx[a]], keys[idx[b]]); r != 0 {
				return r < 0
			}
			return lines[idx[a]] < lines[idx[b]]
		})
	}

	sorted := make([]string, len(lines))
	for i, j := range idx {
		sorted[i] = lines[j]
	}
	if opts.Order == Descending {
		reverse(sorted)
	}
	return strings.Join(sorted, "\n")
}

// Dedup removes duplicate lines, comparing normalised forms.
//
// With KeepFirst unset the filter lets repeated lines through and the result
// is reversed. That only approximates "keep last occurrence" and is kept for
// compatibility with existing output.
func Dedup(input string, opts DedupOptions) string {
	lines := Split(input, opts.Prepare)

	seen := make(map[string]struct{}, len(lines))
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		key := line
		if opts.IgnoreCase {
			key = strings.ToLower(key)
		}
		if opts.IgnoreWhitespace {
			key = collapseSpace(key)
		}
		if _, dup := seen[key]; dup {
			if !opts.KeepFirst {
				result = append(result, line)
			}
			continue
		}
		seen[key] = struct{}{}
		result = append(result, line)
	}

	if !opts.KeepFirst {
		reverse(result)
	}
	return strings.Join(result, "\n")
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// isJSSpace reports whitespace the way String.prototype.trim sees it
func isJSSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trimJS(s string) string {
	return strings.TrimFunc(s, isJSSpace)
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isJSSpace), " ")
}

var floatPrefixRe = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// leadingFloat parses the longest numeric prefix like parseFloat. Lines
// without one count as zero.
func leadingFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, isJSSpace)
	m := floatPrefixRe.FindString(s)
	if m == "" {
		return 0
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Out of range prefixes saturate the way JavaScript does.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return 0
	}
	return f
}
