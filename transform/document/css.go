package document

import (
	"regexp"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

const cssOp = "css-formatter"

// CSSStyle selects the CSS output layout
type CSSStyle string

const (
	// CSSPretty puts every declaration on its own indented line
	CSSPretty CSSStyle = "pretty"
	// CSSCompact strips the whitespace around punctuation
	CSSCompact CSSStyle = "compact"
)

// CSSOptions configures FormatCSS
type CSSOptions struct {
	Style  CSSStyle
	Indent int
}

// DefaultCSSOptions is pretty output with two-space indent
func DefaultCSSOptions() CSSOptions {
	return CSSOptions{Style: CSSPretty, Indent: 2}
}

// FormatCSS lays out a style sheet
func FormatCSS(input string, opts CSSOptions) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	switch opts.Style {
	case CSSCompact:
		return compactCSS(input), nil
	case CSSPretty, "":
		if opts.Indent < 1 || opts.Indent > 8 {
			return "", operr.Config(cssOp, "Indent must be between 1 and 8, got %d.", opts.Indent)
		}
		return prettyCSS(input, strings.Repeat(" ", opts.Indent))
	}
	return "", operr.Config(cssOp, "Unknown CSS style %q. Use pretty or compact.", opts.Style)
}

var compactSteps = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\s*{\s*`), " {\n  "},
	{regexp.MustCompile(`;\s*`), ";\n  "},
	{regexp.MustCompile(`}\s*`), "\n}\n"},
	{regexp.MustCompile(`\n\s*\n`), "\n"},
	{regexp.MustCompile(`\s*([:;,{}])\s*`), "$1"},
	{regexp.MustCompile(`([;,])\n\s*`), "$1\n  "},
	{regexp.MustCompile(`{\n\s*}`), "{}"},
}

// compactCSS runs the catalog's historical replacement chain. The
// punctuation step removes the line breaks the earlier steps insert, so the
// result is a minified sheet.
func compactCSS(input string) string {
	out := input
	for _, step := range compactSteps {
		out = step.re.ReplaceAllString(out, step.repl)
	}
	return strings.TrimSpace(out)
}

// cssWriter accumulates output lines for prettyCSS
type cssWriter struct {
	pad   string
	depth int
	lines []string
}

func (w *cssWriter) line(s string) {
	w.lines = append(w.lines, strings.Repeat(w.pad, w.depth)+s)
}

func prettyCSS(input, pad string) (string, error) {
	w := &cssWriter{pad: pad}
	var cur strings.Builder

	flushDecl := func() {
		text := strings.TrimSpace(cur.String())
		cur.Reset()
		if text == "" {
			return
		}
		if w.depth > 0 && !strings.HasPrefix(text, "@") {
			if i := strings.IndexByte(text, ':'); i > 0 {
				text = strings.TrimSpace(text[:i]) + ": " + strings.TrimSpace(text[i+1:])
			}
		}
		w.line(text + ";")
	}

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '/' && i+1 < len(input) && input[i+1] == '*':
			end := strings.Index(input[i+2:], "*/")
			if end < 0 {
				return "", unclosedCSS(input, i, "comment")
			}
			comment := input[i : i+2+end+2]
			if strings.TrimSpace(cur.String()) == "" {
				cur.Reset()
				w.line(comment)
			} else {
				cur.WriteString(comment)
			}
			i += 2 + end + 1
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(input) && input[j] != c {
				if input[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(input) {
				return "", unclosedCSS(input, i, "string")
			}
			cur.WriteString(input[i : j+1])
			i = j
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			if s := cur.String(); s != "" && !strings.HasSuffix(s, " ") {
				cur.WriteByte(' ')
			}
		case c == '{':
			selector := strings.TrimSpace(cur.String())
			cur.Reset()
			w.line(joinSelectors(selector) + " {")
			w.depth++
		case c == ';':
			flushDecl()
		case c == '}':
			flushDecl()
			if w.depth == 0 {
				pos := operr.PositionAt(input, i)
				return "", operr.Invalid(cssOp, "Unexpected } at line %d.", pos.Line).WithPosition(pos)
			}
			w.depth--
			if last := len(w.lines) - 1; strings.HasSuffix(w.lines[last], " {") {
				w.lines[last] = strings.TrimSuffix(w.lines[last], " {") + " {}"
			} else {
				w.line("}")
			}
			if w.depth == 0 {
				w.lines = append(w.lines, "")
			}
		default:
			cur.WriteByte(c)
		}
	}
	if w.depth > 0 {
		return "", unclosedCSS(input, len(input), "block")
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		w.line(rest)
	}
	return strings.TrimRight(strings.Join(w.lines, "\n"), "\n"), nil
}

func joinSelectors(selector string) string {
	if strings.HasPrefix(selector, "@") {
		return selector
	}
	parts := strings.Split(selector, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func unclosedCSS(input string, offset int, what string) *operr.Error {
	pos := operr.PositionAt(input, offset)
	return operr.Invalid(cssOp, "Unclosed %s at line %d.", what, pos.Line).WithPosition(pos)
}
