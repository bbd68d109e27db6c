package generate

import (
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

const loremIpsum = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."

// LoremUnit selects paragraphs or sentences
type LoremUnit string

const (
	Paragraphs LoremUnit = "paragraphs"
	Sentences  LoremUnit = "sentences"
)

var loremSentences = func() []string {
	parts := strings.Split(loremIpsum, ". ")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, ".")
	}
	return parts
}()

// Lorem returns count paragraphs separated by blank lines, or count
// sentences cycling through the classic passage.
func Lorem(count int, unit LoremUnit) (string, error) {
	if err := checkCount("lorem-ipsum", count); err != nil {
		return "", err
	}
	switch unit {
	case Paragraphs, "":
		paras := make([]string, count)
		for i := range paras {
			paras[i] = loremIpsum
		}
		return strings.Join(paras, "\n\n"), nil
	case Sentences:
		out := make([]string, count)
		for i := range out {
			out[i] = loremSentences[i%len(loremSentences)] + "."
		}
		return strings.Join(out, " "), nil
	}
	return "", operr.Config("lorem-ipsum", "Unknown unit %q. Use paragraphs or sentences.", unit)
}
