package textops

import (
	"fmt"
	"testing"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

func TestTrim(t *testing.T) {
	tests := []struct {
		input    string
		mode     TrimMode
		perLine  bool
		expected string
		desc     string
	}{
		{"  a  \n  b  ", TrimBoth, false, "a  \n  b", "Whole text"},
		{"  a  \n  b  ", TrimBoth, true, "a\nb", "Per line"},
		{"  a  \n  b  ", TrimLeft, true, "a  \nb  ", "Left per line"},
		{"  a  \n  b  ", TrimRight, true, "  a\n  b", "Right per line"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result, err := Trim(test.input, test.mode, test.perLine)
			if err != nil {
				t.Fatal(err)
			}
			if result != test.expected {
				t.Errorf("Expected: %q, Got: %q", test.expected, result)
			}
		})
	}

	if _, err := Trim("x", "middle", false); operr.KindOf(err) != operr.ConfigurationError {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		input    string
		opts     ReplaceOptions
		expected string
		desc     string
	}{
		{"a,b,c", ReplaceOptions{Find: ",", Replace: `\n`}, "a\nb\nc", "Escapes in replacement"},
		{"a.b", ReplaceOptions{Find: ".", Replace: "-"}, "a-b", "Literal dot"},
		{"2024-01-31", ReplaceOptions{Find: `(\d+)-(\d+)-(\d+)`, Replace: "$3/$2/$1", Regex: true}, "31/01/2024", "Regex groups"},
		{"Cat cat", ReplaceOptions{Find: "cat", Replace: "dog", Regex: true, Flags: "i"}, "dog dog", "Case-insensitive"},
		{"same", ReplaceOptions{}, "same", "Empty find"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result, err := Replace(test.input, test.opts)
			if err != nil {
				t.Fatal(err)
			}
			if result != test.expected {
				t.Errorf("Expected: %q, Got: %q", test.expected, result)
			}
		})
	}

	_, err := Replace("x", ReplaceOptions{Find: "(", Regex: true})
	if operr.KindOf(err) != operr.ConfigurationError {
		t.Errorf("expected ConfigurationError for bad pattern, got %v", err)
	}
}

func TestAffix(t *testing.T) {
	opts := AffixOptions{Prefix: "- ", Suffix: ";", PerLine: true}
	added := AddAffix("a\nb", opts)
	if added != "- a;\n- b;" {
		t.Errorf("AddAffix = %q", added)
	}
	if removed := RemoveAffix(added, opts); removed != "a\nb" {
		t.Errorf("RemoveAffix = %q", removed)
	}
	if got := AddAffix("x\ny", AffixOptions{Prefix: "[", Suffix: "]"}); got != "[x\ny]" {
		t.Errorf("AddAffix whole text = %q", got)
	}
}

func TestSubstring(t *testing.T) {
	tests := []struct {
		input    string
		opts     SubstringOptions
		expected string
		desc     string
	}{
		{"Hello World", SubstringOptions{Start: 0, Count: 5}, "Hello", "Left"},
		{"Hello World", SubstringOptions{Start: -5, Count: -1}, "World", "Right"},
		{"Hello World", SubstringOptions{Start: 6, Count: 3}, "Wor", "Mid"},
		{"Hello", SubstringOptions{Start: 10, Count: 2}, "", "Start past end"},
		{"héllo\nwörld", SubstringOptions{Start: 1, Count: 2, PerLine: true}, "él\nör", "Runes per line"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			if result := Substring(test.input, test.opts); result != test.expected {
				t.Errorf("Expected: %q, Got: %q", test.expected, result)
			}
		})
	}
}

func TestSplitFormat(t *testing.T) {
	result, err := SplitFormat("john,doe\njane,roe,x", ",", "{2}, {1}{4}")
	if err != nil {
		t.Fatal(err)
	}
	if result != "doe, john\nroe, jane" {
		t.Errorf("got %q", result)
	}
	if _, err := SplitFormat("x", "", "{1}"); operr.KindOf(err) != operr.ConfigurationError {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`a\nb`, "a\nb"},
		{`\t`, "\t"},
		{`\\n`, `\n`},
		{`\x41`, "A"},
		{`é`, "é"},
		{`\U0001F600`, "\U0001F600"},
		{`\q`, `\q`},
		{`\x4`, `\x4`},
		{`end\`, `end\`},
	}
	for _, test := range tests {
		if got := Unescape(test.input); got != test.expected {
			t.Errorf("Unescape(%q) = %q, want %q", test.input, got, test.expected)
		}
	}
}

func TestFilterLines(t *testing.T) {
	input := "apple\nBanana\ncherry\nblueberry"
	tests := []struct {
		opts     FilterOptions
		expected string
		desc     string
	}{
		{FilterOptions{Pattern: "^b"}, "blueberry", "Keep"},
		{FilterOptions{Pattern: "^b", Flags: "i"}, "Banana\nblueberry", "Keep ignoring case"},
		{FilterOptions{Pattern: "^b", Flags: "i", Invert: true}, "apple\ncherry", "Remove"},
		{FilterOptions{}, input, "No pattern"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result, err := FilterLines(input, test.opts)
			if err != nil {
				t.Fatal(err)
			}
			if result != test.expected {
				t.Errorf("Expected: %q, Got: %q", test.expected, result)
			}
		})
	}

	if _, err := FilterLines(input, FilterOptions{Pattern: "a", Flags: "x"}); operr.KindOf(err) != operr.ConfigurationError {
		t.Errorf("expected ConfigurationError for unknown flag, got %v", err)
	}
}

func TestExtractMatches(t *testing.T) {
	input := "mail bob@example.com or amy@test.org"
	all, err := ExtractMatches(input, `(\w+)@[\w.]+`, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if all != "bob@example.com\namy@test.org" {
		t.Errorf("whole matches = %q", all)
	}
	users, err := ExtractMatches(input, `(\w+)@[\w.]+`, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if users != "bob\namy" {
		t.Errorf("group matches = %q", users)
	}
	if _, err := ExtractMatches(input, `\w+`, "", 2); operr.KindOf(err) != operr.ConfigurationError {
		t.Errorf("expected ConfigurationError for missing group, got %v", err)
	}
}

func TestLinks(t *testing.T) {
	input := `<p><a href="/a">First
	link</a> and <a href="https://x.org">X</a><a name="top">no href</a></p>`

	result, err := Links(input, "")
	if err != nil {
		t.Fatal(err)
	}
	if result != "First link\n/a\nX\nhttps://x.org" {
		t.Errorf("default format = %q", result)
	}

	result, err = Links(input, "[{text}]({href})")
	if err != nil {
		t.Fatal(err)
	}
	if result != "[First link](/a)\n[X](https://x.org)" {
		t.Errorf("template = %q", result)
	}
}

func TestSelect(t *testing.T) {
	input := `<ul><li class="x" data-id="1">One</li><li data-id="2"><b>Two</b></li></ul>`
	tests := []struct {
		selector string
		output   string
		expected string
		desc     string
	}{
		{"li", "", "One\nTwo", "Text by default"},
		{"li", "attr:data-id", "1\n2", "Attribute"},
		{"li.x", "outer", `<li class="x" data-id="1">One</li>`, "Outer HTML"},
		{"li:nth-child(2)", "inner|attr:data-id", "<b>Two</b>\n2", "Several outputs"},
		{"p", "", "", "No match"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result, err := Select(input, test.selector, test.output)
			if err != nil {
				t.Fatal(err)
			}
			if result != test.expected {
				t.Errorf("Expected: %q, Got: %q", test.expected, result)
			}
		})
	}

	for _, bad := range []struct{ selector, output string }{{"li[", ""}, {"", ""}, {"li", "json"}} {
		if _, err := Select(input, bad.selector, bad.output); operr.KindOf(err) != operr.ConfigurationError {
			t.Errorf("Select(%q, %q): expected ConfigurationError, got %v", bad.selector, bad.output, err)
		}
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		desc     string
	}{
		// Simple operations
		{"6 + 5", "11", "Simple addition"},
		{"10 - 3", "7", "Simple subtraction"},
		{"4 * 5", "20", "Simple multiplication"},
		{"20 / 4", "5", "Simple division"},

		// Operator precedence
		{"2 + 3 * 4", "14", "Multiplication before addition"},
		{"10 - 2 * 3", "4", "Multiplication before subtraction"},
		{"3 + 4 * 2 - 1", "10", "Complex expression"},

		// Floats
		{"5.5 + 2.5", "8", "Float addition"},
		{"10.5 - 3.2", "7.3", "Float subtraction"},
		{"7.5 / 2.5", "3", "Float division"},

		// Negative numbers
		{"-5 + 10", "5", "Negative number addition"},
		{"-10 * 2", "-20", "Negative number multiplication"},
		{"2-3", "-1", "Subtraction without spaces"},

		// Text with calculations
		{"Item 1 = 6 + 5", "Item 1 = 11", "Calculation in text"},
		{"Price: 5 * 55 + 3", "Price: 278", "Embedded calculation"},
		{"5 + 3 and 4 * 2", "8 and 8", "Multiple expressions"},
		{"ratio 1 / 0", "ratio 1 / 0", "Division by zero left alone"},

		{"3.14", "3.14", "Single float"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result := Calculate(test.input)
			if result != test.expected {
				t.Errorf("Input: %q", test.input)
				t.Errorf("Expected: %q", test.expected)
				t.Errorf("Got: %q", result)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input     string
		expected  float64
		shouldErr bool
	}{
		{"5", 5, false},
		{"-5", -5, false},
		{"2 - 3", -1, false},
		{"5 - -3", 8, false},
		{"2 + 3 * 4", 14, false},
		{"20 / 0", 0, true},
		{"", 0, true},
		{"5 +", 0, true},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%q", test.input), func(t *testing.T) {
			result, err := Evaluate(test.input)
			if test.shouldErr && err == nil {
				t.Errorf("Expected error for %q", test.input)
			}
			if !test.shouldErr && err != nil {
				t.Errorf("Unexpected error for %q: %v", test.input, err)
			}
			if !test.shouldErr && result != test.expected {
				t.Errorf("Input: %q, Expected: %f, Got: %f", test.input, test.expected, result)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{5, "5"},
		{5.5, "5.5"},
		{3.14159, "3.14159"},
		{-5.5, "-5.5"},
		{0, "0"},
		{0.1, "0.1"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.input), func(t *testing.T) {
			if result := FormatNumber(test.input); result != test.expected {
				t.Errorf("Input: %v, Expected: %q, Got: %q", test.input, test.expected, result)
			}
		})
	}
}
