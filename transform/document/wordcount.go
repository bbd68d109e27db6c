// Package document holds the whole-document tools: word statistics, text
// extraction from markup, and XML and CSS re-formatting.
package document

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// WordCount is one row of the frequency table
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Stats is the result of counting a text
type Stats struct {
	Words              int         `json:"wordCount"`
	Characters         int         `json:"charCount"`
	CharactersNoSpaces int         `json:"charCountNoSpaces"`
	Lines              int         `json:"lineCount"`
	Sentences          int         `json:"sentenceCount"`
	Paragraphs         int         `json:"paragraphCount"`
	Frequency          []WordCount `json:"wordFrequency"`
}

var (
	sentenceEndRe = regexp.MustCompile(`[.!?]+`)
	nonWordRe     = regexp.MustCompile(`[^a-z0-9]`)
)

// Count computes the statistics of text. Characters are counted in runes.
func Count(text string) Stats {
	var s Stats

	words := strings.Fields(text)
	s.Words = len(words)
	s.Characters = utf8.RuneCountInString(text)
	for _, r := range text {
		if !unicode.IsSpace(r) {
			s.CharactersNoSpaces++
		}
	}
	s.Lines = strings.Count(text, "\n") + 1

	// a run of terminators counts when whitespace or the end follows it
	for _, m := range sentenceEndRe.FindAllStringIndex(text, -1) {
		if m[1] == len(text) {
			s.Sentences++
			continue
		}
		r, _ := utf8.DecodeRuneInString(text[m[1]:])
		if unicode.IsSpace(r) {
			s.Sentences++
		}
	}

	for _, p := range strings.Split(text, "\n\n") {
		if p != "" {
			s.Paragraphs++
		}
	}

	index := map[string]int{}
	s.Frequency = []WordCount{}
	for _, w := range words {
		clean := nonWordRe.ReplaceAllString(strings.ToLower(w), "")
		if clean == "" {
			continue
		}
		if i, ok := index[clean]; ok {
			s.Frequency[i].Count++
			continue
		}
		index[clean] = len(s.Frequency)
		s.Frequency = append(s.Frequency, WordCount{Word: clean, Count: 1})
	}
	sort.SliceStable(s.Frequency, func(i, j int) bool {
		return s.Frequency[i].Count > s.Frequency[j].Count
	})
	return s
}

// ReportFormat selects how WordReport renders Stats
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportJSON ReportFormat = "json"
)

// WordReport counts text and renders the statistics
func WordReport(text string, format ReportFormat) (string, error) {
	s := Count(text)
	switch format {
	case ReportText, "":
		return s.String(), nil
	case ReportJSON:
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", operr.Wrap(operr.UnsupportedOperation, "word-counter", err.Error(), err)
		}
		return string(b), nil
	}
	return "", operr.Config("word-counter", "Unknown report format %q. Use text or json.", format)
}

// String renders the statistics as a plain text report
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Words: %d\n", s.Words)
	fmt.Fprintf(&b, "Characters: %d\n", s.Characters)
	fmt.Fprintf(&b, "Characters (no spaces): %d\n", s.CharactersNoSpaces)
	fmt.Fprintf(&b, "Lines: %d\n", s.Lines)
	fmt.Fprintf(&b, "Sentences: %d\n", s.Sentences)
	fmt.Fprintf(&b, "Paragraphs: %d", s.Paragraphs)
	if len(s.Frequency) > 0 {
		b.WriteString("\n\nWord frequency:")
		for _, wc := range s.Frequency {
			fmt.Fprintf(&b, "\n%s: %d", wc.Word, wc.Count)
		}
	}
	return b.String()
}
