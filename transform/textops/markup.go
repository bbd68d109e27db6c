package textops

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

var spaceRunRe = regexp.MustCompile(`\s+`)

func parseHTML(op, input string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, operr.Wrap(operr.InvalidInputFormat, op, "Could not read the HTML: "+err.Error(), err)
	}
	return doc, nil
}

// Links lists the anchors of an HTML document. The template may use {text}
// and {href}; an empty template prints the text and the href on separate
// lines.
func Links(input, template string) (string, error) {
	doc, err := parseHTML("html-links", input)
	if err != nil {
		return "", err
	}
	template = Unescape(template)

	var out []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		text := spaceRunRe.ReplaceAllString(strings.TrimSpace(s.Text()), " ")
		if template == "" {
			out = append(out, text, href)
			return
		}
		out = append(out, strings.NewReplacer("{text}", text, "{href}", href).Replace(template))
	})
	return strings.Join(out, "\n"), nil
}

// Select lists the elements matching a CSS selector. Each output item is one
// of text, inner, outer or attr:NAME; several can be joined with "|".
func Select(input, selector, output string) (string, error) {
	const op = "html-select"
	if strings.TrimSpace(selector) == "" {
		return "", operr.Config(op, "A selector is required.")
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return "", operr.Wrap(operr.ConfigurationError, op, "Invalid selector: "+err.Error(), err)
	}
	doc, err := parseHTML(op, input)
	if err != nil {
		return "", err
	}

	items := strings.Split(output, "|")
	if strings.TrimSpace(output) == "" {
		items = []string{"text"}
	}
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
		switch {
		case items[i] == "text", items[i] == "inner", items[i] == "outer":
		case strings.HasPrefix(items[i], "attr:"):
		default:
			return "", operr.Config(op, "Unknown output %q. Use text, inner, outer or attr:NAME.", items[i])
		}
	}

	var out []string
	var firstErr error
	doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
		for _, item := range items {
			switch {
			case item == "text":
				out = append(out, s.Text())
			case item == "inner":
				h, err := s.Html()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				out = append(out, h)
			case item == "outer":
				h, err := goquery.OuterHtml(s)
				if err != nil && firstErr == nil {
					firstErr = err
				}
				out = append(out, h)
			default:
				if v, ok := s.Attr(strings.TrimPrefix(item, "attr:")); ok {
					out = append(out, v)
				}
			}
		}
	})
	if firstErr != nil {
		return "", operr.Wrap(operr.UnsupportedOperation, op, "Could not render the selection: "+firstErr.Error(), firstErr)
	}
	return strings.Join(out, "\n"), nil
}
