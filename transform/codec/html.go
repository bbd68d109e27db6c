package codec

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML converts text to entity-escaped markup, or markup back to its text
// content. Decoding parses the input as a fragment inside a <div> and only
// reads text nodes, so scripts and event handlers are never run.
func HTML(input string, mode Mode) (string, error) {
	if mode == Decode {
		return htmlText(input)
	}
	return strings.ReplaceAll(html.EscapeString(input), "\u00a0", "&nbsp;"), nil
}

func htmlText(input string) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(input), context)
	if err != nil {
		return "", failure("html-encode", Decode, "HTML", "HTML-encoded text", input, -1, err)
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(root).Text(), nil
}
