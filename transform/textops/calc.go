package textops

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// exprRe matches arithmetic embedded in text: numbers joined by + - * /
var exprRe = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:\s*[+\-*/]\s*-?\d+(?:\.\d+)?)*`)

// Calculate replaces every arithmetic expression in the text by its value.
// Expressions that cannot be evaluated, such as a division by zero, are left
// as written.
func Calculate(input string) string {
	return exprRe.ReplaceAllStringFunc(input, func(match string) string {
		if value, err := Evaluate(match); err == nil {
			return FormatNumber(value)
		}
		return match
	})
}

// Evaluate computes an expression of numbers and + - * / with the usual
// precedence
func Evaluate(expr string) (float64, error) {
	p := newParser(expr)
	if p.current.kind == tokEOF {
		return 0, errors.New("empty expression")
	}
	result, err := p.parseAddSub()
	if err != nil {
		return 0, err
	}
	if p.current.kind != tokEOF {
		return 0, errors.New("unexpected token after expression")
	}
	return result, nil
}

// FormatNumber prints whole numbers without a fraction and others with at
// most ten decimals
func FormatNumber(num float64) string {
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return strconv.FormatFloat(num, 'g', -1, 64)
	}
	if math.Floor(num) == num {
		return strconv.FormatFloat(num, 'f', 0, 64)
	}
	formatted := strconv.FormatFloat(num, 'f', 10, 64)
	formatted = strings.TrimRight(formatted, "0")
	return strings.TrimRight(formatted, ".")
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokOperator
)

type token struct {
	kind  tokenKind
	value float64
	op    byte
}

// tokenizer splits an expression; a "-" after an operator or at the start
// begins a negative number
type tokenizer struct {
	expr string
	pos  int
	last token
}

func (t *tokenizer) peek(off int) byte {
	if t.pos+off < len(t.expr) {
		return t.expr[t.pos+off]
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (t *tokenizer) next() token {
	for t.pos < len(t.expr) && unicode.IsSpace(rune(t.expr[t.pos])) {
		t.pos++
	}
	if t.pos >= len(t.expr) {
		return token{kind: tokEOF}
	}

	c := t.peek(0)
	sign := c == '-' && t.last.kind != tokNumber && (isDigit(t.peek(1)) || t.peek(1) == '.')
	if isDigit(c) || sign || (c == '.' && isDigit(t.peek(1))) {
		return t.number()
	}

	t.pos++
	switch c {
	case '+', '-', '*', '/':
		t.last = token{kind: tokOperator, op: c}
		return t.last
	}
	// anything else is skipped
	return t.next()
}

func (t *tokenizer) number() token {
	start := t.pos
	if t.peek(0) == '-' {
		t.pos++
	}
	for isDigit(t.peek(0)) {
		t.pos++
	}
	if t.peek(0) == '.' {
		t.pos++
		for isDigit(t.peek(0)) {
			t.pos++
		}
	}
	num, _ := strconv.ParseFloat(t.expr[start:t.pos], 64)
	t.last = token{kind: tokNumber, value: num}
	return t.last
}

type parser struct {
	tokens  *tokenizer
	current token
}

func newParser(expr string) *parser {
	p := &parser{tokens: &tokenizer{expr: strings.TrimSpace(expr)}}
	p.current = p.tokens.next()
	return p
}

func (p *parser) advance() {
	p.current = p.tokens.next()
}

func (p *parser) parseAddSub() (float64, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return 0, err
	}
	for p.current.kind == tokOperator && (p.current.op == '+' || p.current.op == '-') {
		op := p.current.op
		p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *parser) parseMulDiv() (float64, error) {
	left, err := p.parseNumber()
	if err != nil {
		return 0, err
	}
	for p.current.kind == tokOperator && (p.current.op == '*' || p.current.op == '/') {
		op := p.current.op
		p.advance()
		right, err := p.parseNumber()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
			continue
		}
		if right == 0 {
			return 0, errors.New("division by zero")
		}
		left /= right
	}
	return left, nil
}

func (p *parser) parseNumber() (float64, error) {
	switch {
	case p.current.kind == tokNumber:
		num := p.current.value
		p.advance()
		return num, nil
	case p.current.kind == tokOperator && p.current.op == '-':
		p.advance()
		num, err := p.parseNumber()
		return -num, err
	}
	return 0, errors.New("expected number")
}
