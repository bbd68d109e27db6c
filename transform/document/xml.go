package document

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

const xmlOp = "xml-formatter"

var (
	xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;", "\n", "&#xA;", "\t", "&#x9;")
)

// FormatXML re-indents an XML document with indent spaces per level. The
// document must be well-formed and have a single root element. Whitespace-only
// text is dropped; other text is trimmed and kept on the line of its element
// when it is the element's only child.
func FormatXML(input string, indent int) (string, error) {
	if indent < 1 || indent > 8 {
		return "", operr.Config(xmlOp, "Indent must be between 1 and 8, got %d.", indent)
	}
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	toks, err := readXML(input)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	pad := strings.Repeat(" ", indent)
	depth := 0
	line := func(s string) {
		b.WriteString(strings.Repeat(pad, depth))
		b.WriteString(s)
		b.WriteByte('\n')
	}

	for i := 0; i < len(toks); i++ {
		switch t := toks[i].(type) {
		case xml.StartElement:
			open := startTag(t)
			if i+1 < len(toks) {
				if _, ok := toks[i+1].(xml.EndElement); ok {
					line(open + "/>")
					i++
					continue
				}
			}
			if i+2 < len(toks) {
				text, isText := toks[i+1].(xml.CharData)
				_, closes := toks[i+2].(xml.EndElement)
				if isText && closes {
					line(open + ">" + xmlTextEscaper.Replace(string(text)) + "</" + qname(t.Name) + ">")
					i += 2
					continue
				}
			}
			line(open + ">")
			depth++
		case xml.EndElement:
			depth--
			line("</" + qname(t.Name) + ">")
		case xml.CharData:
			line(xmlTextEscaper.Replace(string(t)))
		case xml.Comment:
			line("<!--" + string(t) + "-->")
		case xml.ProcInst:
			if len(t.Inst) == 0 {
				line("<?" + t.Target + "?>")
			} else {
				line("<?" + t.Target + " " + string(t.Inst) + "?>")
			}
		case xml.Directive:
			line("<!" + string(t) + ">")
		}
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// readXML tokenizes input, trimming text and checking nesting and the
// single root
func readXML(input string) ([]xml.Token, error) {
	d := xml.NewDecoder(strings.NewReader(input))
	d.Strict = true

	var (
		toks  []xml.Token
		stack []xml.Name
		roots int
	)
	for {
		start := d.InputOffset()
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, xmlError(input, int(d.InputOffset()), err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				roots++
				if roots > 1 {
					return nil, xmlFailure(input, int(start), "extra content after the root element")
				}
			}
			stack = append(stack, t.Name)
		case xml.EndElement:
			if len(stack) == 0 || stack[len(stack)-1] != t.Name {
				return nil, xmlFailure(input, int(start), fmt.Sprintf("unexpected end element </%s>", qname(t.Name)))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			if len(stack) == 0 {
				return nil, xmlFailure(input, int(start), "text outside the root element")
			}
			tok = xml.CharData(text)
		}
		toks = append(toks, xml.CopyToken(tok))
	}

	if len(stack) > 0 {
		return nil, xmlFailure(input, len(input), fmt.Sprintf("element <%s> is not closed", qname(stack[len(stack)-1])))
	}
	if roots == 0 {
		return nil, xmlFailure(input, len(input), "no root element")
	}
	return toks, nil
}

func xmlError(input string, offset int, err error) *operr.Error {
	msg := err.Error()
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		msg = se.Msg
	}
	e := xmlFailure(input, offset, msg)
	e.Err = err
	return e
}

func xmlFailure(input string, offset int, msg string) *operr.Error {
	pos := operr.PositionAt(input, offset)
	return operr.Invalid(xmlOp, "Invalid XML at line %d: %s", pos.Line, msg).WithPosition(pos)
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func startTag(t xml.StartElement) string {
	var b strings.Builder
	b.WriteString("<" + qname(t.Name))
	for _, a := range t.Attr {
		fmt.Fprintf(&b, ` %s="%s"`, qname(a.Name), xmlAttrEscaper.Replace(a.Value))
	}
	return b.String()
}
