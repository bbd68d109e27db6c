package document

import (
	"bytes"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

const sqlOp = "sql-formatter"

// KeywordCase selects how FormatSQL writes keywords
type KeywordCase string

const (
	KeywordsPreserve KeywordCase = "preserve"
	KeywordsUpper    KeywordCase = "upper"
	KeywordsLower    KeywordCase = "lower"
)

// SQLOptions configures FormatSQL
type SQLOptions struct {
	Indent      int
	KeywordCase KeywordCase
}

// DefaultSQLOptions indents by two and leaves keyword case alone
func DefaultSQLOptions() SQLOptions {
	return SQLOptions{Indent: 2, KeywordCase: KeywordsPreserve}
}

type sqlKind int

const (
	sqlWord sqlKind = iota
	sqlString
	sqlNumber
	sqlPunct
	sqlComment
	sqlLineComment
)

type sqlToken struct {
	kind   sqlKind
	text   string
	offset int
	// spaced is set when whitespace preceded the token in the input
	spaced bool
}

// clauses start a new line at the clause level and indent their body
var sqlClauses = map[string]bool{
	"SELECT": true, "SELECT DISTINCT": true, "FROM": true, "WHERE": true,
	"GROUP BY": true, "ORDER BY": true, "HAVING": true, "LIMIT": true, "OFFSET": true,
	"INSERT INTO": true, "VALUES": true, "UPDATE": true, "SET": true, "DELETE FROM": true,
	"UNION": true, "UNION ALL": true, "INTERSECT": true, "EXCEPT": true, "WITH": true,
	"RETURNING": true, "WINDOW": true,
}

// breaks start a new line inside a clause body
var sqlBreaks = map[string]bool{
	"AND": true, "OR": true, "JOIN": true, "INNER JOIN": true, "LEFT JOIN": true,
	"RIGHT JOIN": true, "FULL JOIN": true, "CROSS JOIN": true, "LEFT OUTER JOIN": true,
	"RIGHT OUTER JOIN": true, "FULL OUTER JOIN": true,
}

var sqlKeywords = func() map[string]bool {
	m := map[string]bool{}
	for _, w := range strings.Fields(`ALL ALTER AND AS ASC BETWEEN BY CASE CREATE CROSS DEFAULT DELETE DESC DISTINCT
		DROP ELSE END EXCEPT EXISTS FROM FULL GROUP HAVING IN INNER INSERT INTERSECT INTO IS JOIN KEY LEFT LIKE
		LIMIT NOT NULL OFFSET ON OR ORDER OUTER PRIMARY RETURNING RIGHT SELECT SET TABLE THEN UNION UPDATE
		USING VALUES WHEN WHERE WINDOW WITH`) {
		m[w] = true
	}
	return m
}()

// FormatSQL lays out SQL with one clause per line and the clause body
// indented beneath it. Subqueries are indented one level further.
func FormatSQL(input string, opts SQLOptions) (string, error) {
	if opts.Indent < 1 || opts.Indent > 8 {
		return "", operr.Config(sqlOp, "Indent must be between 1 and 8, got %d.", opts.Indent)
	}
	switch opts.KeywordCase {
	case KeywordsPreserve, KeywordsUpper, KeywordsLower, "":
	default:
		return "", operr.Config(sqlOp, "Unknown keyword case %q. Use preserve, upper or lower.", opts.KeywordCase)
	}
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	toks, err := scanSQL(input)
	if err != nil {
		return "", err
	}

	w := &sqlWriter{pad: strings.Repeat(" ", opts.Indent), fresh: true}
	level := 0
	// each open parenthesis remembers whether it holds a subquery and the
	// clause level to return to
	type paren struct {
		subquery bool
		level    int
	}
	var parens []paren
	inList := func() bool {
		return len(parens) > 0 && !parens[len(parens)-1].subquery
	}
	between := false

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.kind {
		case sqlWord:
			phrase, n := sqlPhrase(toks, i)
			upper := strings.ToUpper(phrase)
			text := applyCase(phrase, upper, opts.KeywordCase)
			i += n - 1
			switch {
			case sqlClauses[upper] && !inList():
				w.newline(level)
				w.token(text, true)
				w.newline(level + 1)
			case sqlBreaks[upper] && !inList() && !(upper == "AND" && between):
				w.newline(level + 1)
				w.token(text, true)
			default:
				w.token(text, true)
			}
			if upper == "BETWEEN" {
				between = true
			} else if upper == "AND" {
				between = false
			}
		case sqlPunct:
			switch t.text {
			case "(":
				sub := i+1 < len(toks) && toks[i+1].kind == sqlWord && strings.EqualFold(toks[i+1].text, "SELECT")
				prev := toks[max(i-1, 0)]
				glued := i > 0 && !t.spaced && prev.kind == sqlWord
				w.token("(", !glued)
				w.glue = true
				parens = append(parens, paren{subquery: sub, level: level})
				if sub {
					level += 2
				}
			case ")":
				if len(parens) == 0 {
					pos := operr.PositionAt(input, t.offset)
					return "", operr.Invalid(sqlOp, "Unbalanced ) at line %d.", pos.Line).WithPosition(pos)
				}
				p := parens[len(parens)-1]
				parens = parens[:len(parens)-1]
				if p.subquery {
					level = p.level
					w.newline(level + 1)
				}
				w.token(")", false)
			case ",":
				w.token(",", false)
				if !inList() {
					w.newline(level + 1)
				}
			case ";":
				w.token(";", false)
				w.buf.WriteString("\n")
				w.fresh = false
				w.newline(0)
				level, parens, between = 0, nil, false
			case ".":
				w.token(".", false)
				w.glue = true
			default:
				w.token(t.text, true)
			}
		case sqlLineComment:
			w.token(t.text, true)
			w.newline(level + 1)
		default:
			w.token(t.text, true)
		}
	}
	if len(parens) > 0 {
		return "", operr.Invalid(sqlOp, "Unclosed ( in the query.").WithPosition(operr.PositionAt(input, len(input)))
	}
	return strings.TrimRight(w.buf.String(), " \n"), nil
}

// sqlPhrase joins a multi-word keyword starting at toks[i] and returns it
// with the number of tokens used
func sqlPhrase(toks []sqlToken, i int) (string, int) {
	best, n := toks[i].text, 1
	words := []string{toks[i].text}
	for j := i + 1; j < len(toks) && j < i+3 && toks[j].kind == sqlWord; j++ {
		words = append(words, toks[j].text)
		candidate := strings.ToUpper(strings.Join(words, " "))
		if sqlClauses[candidate] || sqlBreaks[candidate] {
			best, n = strings.Join(words, " "), len(words)
		}
	}
	return best, n
}

func applyCase(text, upper string, c KeywordCase) string {
	for _, w := range strings.Fields(upper) {
		if !sqlKeywords[w] {
			return text
		}
	}
	switch c {
	case KeywordsUpper:
		return upper
	case KeywordsLower:
		return strings.ToLower(text)
	}
	return text
}

type sqlWriter struct {
	buf       bytes.Buffer
	pad       string
	lineStart int
	fresh     bool
	glue      bool
}

// newline moves to a new line at level; repeated calls only re-indent
func (w *sqlWriter) newline(level int) {
	if w.fresh {
		w.buf.Truncate(w.lineStart)
	} else {
		w.buf.WriteByte('\n')
	}
	w.lineStart = w.buf.Len()
	w.buf.WriteString(strings.Repeat(w.pad, level))
	w.fresh = true
	w.glue = false
}

func (w *sqlWriter) token(s string, space bool) {
	if space && !w.fresh && !w.glue {
		w.buf.WriteByte(' ')
	}
	w.buf.WriteString(s)
	w.fresh = false
	w.glue = false
}

func isSQLWordByte(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c >= 0x80:
		return true
	case c >= '0' && c <= '9', c == '$':
		return !first
	}
	return false
}

// scanSQL splits a query into tokens
func scanSQL(input string) ([]sqlToken, error) {
	var toks []sqlToken
	spaced := false
	for i := 0; i < len(input); {
		c := input[i]
		start := i
		var kind sqlKind
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			spaced = true
			i++
			continue
		case c == '-' && strings.HasPrefix(input[i:], "--"):
			kind = sqlLineComment
			end := strings.IndexByte(input[i:], '\n')
			if end < 0 {
				end = len(input) - i
			}
			i += end
		case c == '/' && strings.HasPrefix(input[i:], "/*"):
			kind = sqlComment
			end := strings.Index(input[i+2:], "*/")
			if end < 0 {
				return nil, sqlUnclosed(input, i, "comment")
			}
			i += 2 + end + 2
		case c == '\'' || c == '"' || c == '`':
			kind = sqlString
			if c != '\'' {
				kind = sqlWord
			}
			i++
			for {
				if i >= len(input) {
					return nil, sqlUnclosed(input, start, "quoted text")
				}
				if input[i] == c {
					// a doubled quote is an escaped quote
					if i+1 < len(input) && input[i+1] == c {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
		case c >= '0' && c <= '9':
			kind = sqlNumber
			for i < len(input) && (isSQLWordByte(input[i], false) || input[i] == '.') {
				i++
			}
		case isSQLWordByte(c, true) || c == '@' || c == ':' && i+1 < len(input) && isSQLWordByte(input[i+1], true):
			kind = sqlWord
			i++
			for i < len(input) && isSQLWordByte(input[i], false) {
				i++
			}
		default:
			kind = sqlPunct
			i++
			for _, op := range []string{"<=", ">=", "<>", "!=", "||", "::", "->>", "->"} {
				if strings.HasPrefix(input[start:], op) {
					i = start + len(op)
					break
				}
			}
		}
		toks = append(toks, sqlToken{kind: kind, text: strings.TrimRight(input[start:i], "\r"), offset: start, spaced: spaced})
		spaced = false
	}
	return toks, nil
}

func sqlUnclosed(input string, offset int, what string) *operr.Error {
	pos := operr.PositionAt(input, offset)
	return operr.Invalid(sqlOp, "Unclosed %s at line %d.", what, pos.Line).WithPosition(pos)
}
