package document

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

var (
	markupRe     = regexp.MustCompile(`<[A-Za-z!/?]`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// ExtractText returns the readable text of an HTML document. Script, style
// and template contents are dropped, trailing spaces are removed from each
// line and runs of blank lines are collapsed to one. Input without markup is
// returned unchanged.
func ExtractText(input string) (string, error) {
	if !markupRe.MatchString(input) {
		return input, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return "", operr.Wrap(operr.InvalidInputFormat, "text-extractor", "Could not read the document: "+err.Error(), err)
	}
	doc.Find("script, style, noscript, template").Remove()

	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	text := blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text), nil
}
