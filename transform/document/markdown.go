package document

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// markdown renders GitHub flavoured Markdown. Raw HTML in the source is
// omitted from the output.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// MarkdownToHTML renders Markdown source as an HTML fragment
func MarkdownToHTML(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(input), &buf); err != nil {
		return "", operr.Wrap(operr.InvalidInputFormat, "markdown-preview", "Could not render the Markdown: "+err.Error(), err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
