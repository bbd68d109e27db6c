// Package transform is the catalog of text utilities. It holds the static
// registry of categories and utilities, decodes options and dispatches calls
// to the operation packages, and runs pipelines of several utilities.
//
// Every utility is a pure function from an input string and its options to
// an output string or an *operr.Error.
package transform

import (
	"encoding/json"

	"github.com/pstuifzand/go-textutils/transform/casing"
	"github.com/pstuifzand/go-textutils/transform/codec"
	"github.com/pstuifzand/go-textutils/transform/dateconv"
	"github.com/pstuifzand/go-textutils/transform/document"
	"github.com/pstuifzand/go-textutils/transform/generate"
	"github.com/pstuifzand/go-textutils/transform/jsonfmt"
	"github.com/pstuifzand/go-textutils/transform/linediff"
	"github.com/pstuifzand/go-textutils/transform/lines"
	"github.com/pstuifzand/go-textutils/transform/numconv"
	"github.com/pstuifzand/go-textutils/transform/operr"
	"github.com/pstuifzand/go-textutils/transform/textops"
)

// Utility is one entry of the catalog
type Utility struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	Options     []Option `json:"options"`
	// Supported is false for utilities that are listed but cannot run
	Supported bool `json:"supported"`
	// AcceptsEmpty marks utilities that produce output without input
	AcceptsEmpty bool `json:"accepts_empty"`

	run func(c call) (string, error)
}

// Option returns the named option schema, or nil
func (u *Utility) Option(name string) *Option {
	for i := range u.Options {
		if u.Options[i].Name == name {
			return &u.Options[i]
		}
	}
	return nil
}

// Category groups related utilities
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Utilities   []*Utility `json:"utilities"`
}

type call struct {
	input string
	opts  Values
	gen   *generate.Generator
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func str(name string, def string, desc string, choices ...string) Option {
	return Option{Name: name, Type: StringOption, Default: def, Choices: choices, Description: desc}
}

func text(name, desc string) Option {
	return Option{Name: name, Type: TextOption, Default: "", Description: desc}
}

func flag(name string, def bool, desc string) Option {
	return Option{Name: name, Type: BoolOption, Default: def, Description: desc}
}

func number(name string, def int, desc string) Option {
	return Option{Name: name, Type: IntOption, Default: def, Description: desc}
}

func modeOption() Option {
	return str("mode", string(codec.Encode), "Encode or decode the input", string(codec.Encode), string(codec.Decode))
}

var caseOption = Option{
	Name:        "case",
	Type:        StringOption,
	Default:     string(casing.Lower),
	Choices:     names(casing.Kinds()),
	Description: "Target case style",
	// unknown styles pass through and leave the input unchanged
	normalize: func(s string) (string, error) {
		if k, ok := casing.ParseKind(s); ok {
			return string(k), nil
		}
		return s, nil
	},
}

var algorithmOption = Option{
	Name:        "algorithm",
	Type:        StringOption,
	Default:     string(generate.SHA256),
	Choices:     names(generate.Algorithms()),
	Description: "Digest algorithm",
	normalize: func(s string) (string, error) {
		a, err := generate.ParseAlgorithm(s)
		if err != nil {
			return "", err
		}
		return string(a), nil
	},
}

var lineOptions = []Option{
	flag("ignoreCase", false, "Compare lines without regard to case"),
	flag("trimLines", false, "Trim whitespace from every line first"),
	flag("removeEmptyLines", false, "Drop lines that are empty after trimming"),
}

func prepare(o Values) lines.Prepare {
	return lines.Prepare{TrimLines: o.Bool("trimLines"), RemoveEmptyLines: o.Bool("removeEmptyLines")}
}

var categories = []*Category{
	{
		ID:          "text-manipulation",
		Name:        "Text Manipulation",
		Description: "Tools for manipulating and transforming text",
		Utilities: []*Utility{
			{
				ID:          "case-converter",
				Name:        "Text Case Converter",
				Description: "Convert text between different cases: uppercase, lowercase, title case, etc.",
				Keywords:    []string{"case", "uppercase", "lowercase", "title case", "camel case", "snake case"},
				Options:     []Option{caseOption},
				run: func(c call) (string, error) {
					return casing.Convert(c.input, casing.Kind(c.opts.String("case"))), nil
				},
			},
			{
				ID:          "sort-text",
				Name:        "Sort Text",
				Description: "Sort lines of text alphabetically, numerically, or by length",
				Keywords:    []string{"sort", "order", "alphabetical", "numeric", "lines"},
				Options: append([]Option{
					str("sortBy", string(lines.Alphabetical), "Comparison key",
						string(lines.Alphabetical), string(lines.Numeric), string(lines.Length)),
					str("order", string(lines.Ascending), "Sort direction",
						string(lines.Ascending), string(lines.Descending)),
				}, lineOptions...),
				run: func(c call) (string, error) {
					return lines.Sort(c.input, lines.SortOptions{
						Prepare:    prepare(c.opts),
						IgnoreCase: c.opts.Bool("ignoreCase"),
						Key:        lines.SortKey(c.opts.String("sortBy")),
						Order:      lines.Order(c.opts.String("order")),
					}), nil
				},
			},
			{
				ID:          "remove-duplicates",
				Name:        "Remove Duplicates",
				Description: "Remove duplicate lines from text",
				Keywords:    []string{"duplicate", "unique", "dedupe", "lines"},
				Options: append([]Option{
					flag("ignoreWhitespace", false, "Treat runs of whitespace as one space"),
					flag("keepFirst", true, "Keep the first occurrence of each line"),
				}, lineOptions...),
				run: func(c call) (string, error) {
					return lines.Dedup(c.input, lines.DedupOptions{
						Prepare:          prepare(c.opts),
						IgnoreCase:       c.opts.Bool("ignoreCase"),
						IgnoreWhitespace: c.opts.Bool("ignoreWhitespace"),
						KeepFirst:        c.opts.Bool("keepFirst"),
					}), nil
				},
			},
			{
				ID:           "text-diff",
				Name:         "Text Diff",
				Description:  "Compare two texts and highlight differences",
				Keywords:     []string{"diff", "compare", "difference", "changes"},
				AcceptsEmpty: true,
				Options: []Option{
					text("other", "The text to compare the input with"),
					str("format", "json", "Result layout", "json", "unified", "summary"),
					number("context", 3, "Unchanged lines around each change in unified output; negative for all"),
				},
				run: runDiff,
			},
		},
	},
	{
		ID:          "encoding",
		Name:        "Encoding & Decoding",
		Description: "Tools for encoding and decoding text",
		Utilities: []*Utility{
			{
				ID:          "base64",
				Name:        "Base64 Encode/Decode",
				Description: "Encode text to Base64 or decode Base64 to text",
				Keywords:    []string{"base64", "encode", "decode", "base64url"},
				Options: []Option{
					modeOption(),
					str("variant", string(codec.Standard), "Alphabet", string(codec.Standard), string(codec.URLSafe)),
				},
				run: func(c call) (string, error) {
					return codec.Base64(c.input, codec.Mode(c.opts.String("mode")), codec.Variant(c.opts.String("variant")))
				},
			},
			{
				ID:          "url-encode",
				Name:        "URL Encode/Decode",
				Description: "Encode text for URLs or decode URL-encoded text",
				Keywords:    []string{"url", "uri", "percent", "encode", "decode"},
				Options:     []Option{modeOption()},
				run: func(c call) (string, error) {
					return codec.URL(c.input, codec.Mode(c.opts.String("mode")))
				},
			},
			{
				ID:          "html-encode",
				Name:        "HTML Encode/Decode",
				Description: "Encode text for HTML or decode HTML entities",
				Keywords:    []string{"html", "entities", "escape", "encode", "decode"},
				Options:     []Option{modeOption()},
				run: func(c call) (string, error) {
					return codec.HTML(c.input, codec.Mode(c.opts.String("mode")))
				},
			},
			{
				ID:          "jwt-decoder",
				Name:        "JWT Decoder",
				Description: "Decode and inspect JWT tokens",
				Keywords:    []string{"jwt", "token", "json web token", "decode"},
				run: func(c call) (string, error) {
					return codec.DecodeJWT(c.input)
				},
			},
		},
	},
	{
		ID:          "formatting",
		Name:        "Formatting",
		Description: "Tools for formatting and beautifying code and text",
		Utilities: []*Utility{
			{
				ID:          "json-formatter",
				Name:        "JSON Formatter",
				Description: "Format and validate JSON data",
				Keywords:    []string{"json", "format", "validate", "pretty print", "minify", "ndjson"},
				Options: []Option{
					str("style", string(jsonfmt.Pretty), "Output layout",
						string(jsonfmt.Pretty), string(jsonfmt.Compact), string(jsonfmt.NDJSON)),
					number("indent", 2, "Spaces per level, 1 to 8"),
					flag("sortKeys", false, "Sort object keys"),
				},
				run: func(c call) (string, error) {
					return jsonfmt.Format(c.input, jsonfmt.Options{
						Style:    jsonfmt.Style(c.opts.String("style")),
						Indent:   c.opts.Int("indent"),
						SortKeys: c.opts.Bool("sortKeys"),
					})
				},
			},
			{
				ID:          "xml-formatter",
				Name:        "XML Formatter",
				Description: "Format and validate XML data",
				Keywords:    []string{"xml", "format", "validate", "pretty print"},
				Options:     []Option{number("indent", 2, "Spaces per level, 1 to 8")},
				run: func(c call) (string, error) {
					return document.FormatXML(c.input, c.opts.Int("indent"))
				},
			},
			{
				ID:          "sql-formatter",
				Name:        "SQL Formatter",
				Description: "Format SQL queries",
				Keywords:    []string{"sql", "query", "format", "database"},
				Options: []Option{
					number("indent", 2, "Spaces per level, 1 to 8"),
					str("keywordCase", string(document.KeywordsPreserve), "How keywords are written",
						string(document.KeywordsPreserve), string(document.KeywordsUpper), string(document.KeywordsLower)),
				},
				run: func(c call) (string, error) {
					return document.FormatSQL(c.input, document.SQLOptions{
						Indent:      c.opts.Int("indent"),
						KeywordCase: document.KeywordCase(c.opts.String("keywordCase")),
					})
				},
			},
			{
				ID:          "css-formatter",
				Name:        "CSS Formatter",
				Description: "Format and beautify CSS code",
				Keywords:    []string{"css", "stylesheet", "format", "minify"},
				Options: []Option{
					str("style", string(document.CSSPretty), "Output layout",
						string(document.CSSPretty), string(document.CSSCompact)),
					number("indent", 2, "Spaces per level, 1 to 8"),
				},
				run: func(c call) (string, error) {
					return document.FormatCSS(c.input, document.CSSOptions{
						Style:  document.CSSStyle(c.opts.String("style")),
						Indent: c.opts.Int("indent"),
					})
				},
			},
		},
	},
	{
		ID:          "conversion",
		Name:        "Conversion",
		Description: "Tools for converting between different formats",
		Utilities: []*Utility{
			{
				ID:          "date-conversion",
				Name:        "Date Conversion",
				Description: "Convert between different date formats and timezones",
				Keywords:    []string{"date", "time", "timestamp", "unix", "iso", "convert"},
				Options: []Option{
					str("from", string(dateconv.ISO), "Input notation", names(dateconv.Formats())...),
					str("to", string(dateconv.ISO), "Output notation", names(dateconv.Formats())...),
					str("inputPattern", "yyyy-MM-dd HH:mm:ss", "Pattern for custom input"),
					str("outputPattern", "yyyy-MM-dd HH:mm:ss", "Pattern for custom output"),
					str("timezone", "", "IANA zone for zone-less input and custom output; empty is UTC"),
				},
				run: func(c call) (string, error) {
					loc, err := dateconv.ParseLocation(c.opts.String("timezone"))
					if err != nil {
						return "", err
					}
					return dateconv.Convert(c.input, dateconv.Request{
						From:          dateconv.Format(c.opts.String("from")),
						To:            dateconv.Format(c.opts.String("to")),
						InputPattern:  c.opts.String("inputPattern"),
						OutputPattern: c.opts.String("outputPattern"),
						Location:      loc,
					})
				},
			},
			{
				ID:          "number-conversion",
				Name:        "Number Conversion",
				Description: "Convert between decimal, binary, octal, and hexadecimal",
				Keywords:    []string{"number", "binary", "hex", "hexadecimal", "octal", "decimal", "base"},
				Options: []Option{
					str("from", string(numconv.Decimal), "Input base", names(numconv.Bases())...),
					str("to", string(numconv.Binary), "Output base", names(numconv.Bases())...),
				},
				run: func(c call) (string, error) {
					return numconv.Convert(c.input, numconv.Base(c.opts.String("from")), numconv.Base(c.opts.String("to")))
				},
			},
			{
				ID:          "csv-to-json",
				Name:        "CSV to JSON",
				Description: "Convert CSV data to JSON format",
				Keywords:    []string{"csv", "json", "convert", "table"},
				run: func(c call) (string, error) {
					return jsonfmt.FromCSV(c.input)
				},
			},
			{
				ID:          "json-to-yaml",
				Name:        "JSON to YAML",
				Description: "Convert JSON data to YAML format",
				Keywords:    []string{"json", "yaml", "convert"},
				run: func(c call) (string, error) {
					return jsonfmt.ToYAML(c.input)
				},
			},
			{
				ID:          "json-to-toml",
				Name:        "JSON to TOML",
				Description: "Convert JSON data to TOML format",
				Keywords:    []string{"json", "toml", "convert", "config"},
				run: func(c call) (string, error) {
					return jsonfmt.ToTOML(c.input)
				},
			},
		},
	},
	{
		ID:          "generators",
		Name:        "Generators",
		Description: "Tools for generating various types of data",
		Utilities: []*Utility{
			{
				ID:           "uuid-generator",
				Name:         "UUID Generator",
				Description:  "Generate random UUIDs",
				Keywords:     []string{"uuid", "guid", "unique", "identifier", "random"},
				AcceptsEmpty: true,
				Options:      []Option{number("count", 1, "How many to generate, 1 to 100")},
				run: func(c call) (string, error) {
					return c.gen.UUIDs(c.opts.Int("count"))
				},
			},
			{
				ID:           "password-generator",
				Name:         "Password Generator",
				Description:  "Generate secure random passwords",
				Keywords:     []string{"password", "passphrase", "secure", "random", "generate"},
				AcceptsEmpty: true,
				Options: []Option{
					number("length", 16, "Password length, 4 to 128"),
					flag("uppercase", true, "Include upper-case letters"),
					flag("numbers", true, "Include digits"),
					flag("symbols", true, "Include symbols"),
					flag("excludeSimilar", false, "Leave out characters that look alike (il1Lo0O)"),
					flag("excludeAmbiguous", false, "Leave out symbols that are easy to mistype"),
					str("charset", "", "Draw from these characters only"),
					number("count", 1, "How many to generate, 1 to 100"),
					flag("passphrase", false, "Generate passphrases of dictionary words instead"),
					number("words", 4, "Words per passphrase, 2 to 12"),
					str("separator", "-", "Text between passphrase words"),
				},
				run: runPassword,
			},
			{
				ID:           "lorem-ipsum",
				Name:         "Lorem Ipsum Generator",
				Description:  "Generate lorem ipsum placeholder text",
				Keywords:     []string{"lorem", "ipsum", "placeholder", "dummy text"},
				AcceptsEmpty: true,
				Options: []Option{
					number("count", 5, "How many units, 1 to 100"),
					str("unit", string(generate.Paragraphs), "Paragraphs or sentences",
						string(generate.Paragraphs), string(generate.Sentences)),
				},
				run: func(c call) (string, error) {
					return generate.Lorem(c.opts.Int("count"), generate.LoremUnit(c.opts.String("unit")))
				},
			},
			{
				ID:          "hash-generator",
				Name:        "Hash Generator",
				Description: "Generate MD5, SHA-1, SHA-256 hashes from text",
				Keywords:    []string{"hash", "md5", "sha", "sha256", "checksum", "digest"},
				Options:     []Option{algorithmOption},
				run: func(c call) (string, error) {
					return generate.Hash(c.input, generate.Algorithm(c.opts.String("algorithm")))
				},
			},
			{
				ID:           "credit-card-generator",
				Name:         "Credit Card Generator",
				Description:  "Generate valid test credit card numbers",
				Keywords:     []string{"credit card", "luhn", "test data", "visa", "mastercard", "amex"},
				AcceptsEmpty: true,
				Options: []Option{
					str("type", string(generate.Visa), "Card issuer",
						string(generate.Visa), string(generate.Mastercard), string(generate.Amex)),
					flag("cvv", true, "Append a CVV"),
					flag("expiry", true, "Append an expiry month/year"),
					number("count", 1, "How many to generate, 1 to 100"),
				},
				run: func(c call) (string, error) {
					return c.gen.Cards(generate.CardOptions{
						Type:   generate.CardType(c.opts.String("type")),
						CVV:    c.opts.Bool("cvv"),
						Expiry: c.opts.Bool("expiry"),
						Count:  c.opts.Int("count"),
					})
				},
			},
			{
				ID:           "data-set-generator",
				Name:         "Data Set Generator",
				Description:  "Generate random data sets from a schema",
				Keywords:     []string{"data", "dataset", "mock", "fake", "test data", "schema"},
				AcceptsEmpty: true,
				Options: []Option{
					str("schema", generate.DefaultDatasetOptions().Schema, "Comma separated name:type fields"),
					number("count", 10, "How many records, 1 to 100"),
					str("format", string(generate.DatasetJSON), "Output format",
						string(generate.DatasetJSON), string(generate.DatasetCSV), string(generate.DatasetSQL)),
					str("table", "my_table", "Table name for SQL output"),
				},
				run: func(c call) (string, error) {
					return c.gen.Dataset(generate.DatasetOptions{
						Schema: c.opts.String("schema"),
						Count:  c.opts.Int("count"),
						Format: generate.DatasetFormat(c.opts.String("format")),
						Table:  c.opts.String("table"),
					})
				},
			},
		},
	},
	{
		ID:          "document",
		Name:        "Document Tools",
		Description: "Tools for working with documents",
		Utilities: []*Utility{
			{
				ID:          "word-counter",
				Name:        "Word Counter",
				Description: "Count words, characters, and paragraphs in text",
				Keywords:    []string{"word count", "character count", "statistics", "frequency"},
				Options: []Option{
					str("format", string(document.ReportText), "Report layout",
						string(document.ReportText), string(document.ReportJSON)),
				},
				run: func(c call) (string, error) {
					return document.WordReport(c.input, document.ReportFormat(c.opts.String("format")))
				},
			},
			{
				ID:          "pdf-conversion",
				Name:        "PDF Conversion",
				Description: "Convert between PDF and other formats",
				Keywords:    []string{"pdf", "convert", "pdf-conversion"},
			},
			{
				ID:          "markdown-preview",
				Name:        "Markdown Preview",
				Description: "Preview Markdown text as HTML",
				Keywords:    []string{"markdown", "md", "preview", "html"},
				run: func(c call) (string, error) {
					return document.MarkdownToHTML(c.input)
				},
			},
			{
				ID:          "text-extractor",
				Name:        "Text Extractor",
				Description: "Extract text from various file formats",
				Keywords:    []string{"extract", "text", "file", "html", "strip tags"},
				run: func(c call) (string, error) {
					return document.ExtractText(c.input)
				},
			},
		},
	},
	{
		ID:          "text-tools",
		Name:        "Text Tools",
		Description: "General purpose editing, filtering and extraction",
		Utilities: []*Utility{
			{
				ID:          "trim-text",
				Name:        "Trim Whitespace",
				Description: "Remove leading and trailing whitespace",
				Keywords:    []string{"trim", "whitespace", "strip"},
				Options: []Option{
					str("side", string(textops.TrimBoth), "Which side to trim",
						string(textops.TrimBoth), string(textops.TrimLeft), string(textops.TrimRight)),
					flag("perLine", false, "Trim every line"),
				},
				run: func(c call) (string, error) {
					return textops.Trim(c.input, textops.TrimMode(c.opts.String("side")), c.opts.Bool("perLine"))
				},
			},
			{
				ID:          "replace-text",
				Name:        "Find and Replace",
				Description: "Replace text or regular expression matches",
				Keywords:    []string{"replace", "find", "substitute", "regex"},
				Options: []Option{
					str("find", "", "Text or pattern to find"),
					str("replace", "", "Replacement; $1 refers to a group when regex is set"),
					flag("regex", false, "Treat find as a regular expression"),
					str("flags", "", "Regex flags: i ignores case, s lets . match newlines"),
				},
				run: func(c call) (string, error) {
					return textops.Replace(c.input, textops.ReplaceOptions{
						Find:    c.opts.String("find"),
						Replace: c.opts.String("replace"),
						Regex:   c.opts.Bool("regex"),
						Flags:   c.opts.String("flags"),
					})
				},
			},
			{
				ID:          "add-affix",
				Name:        "Add Prefix/Suffix",
				Description: "Put text before and after the input or every line",
				Keywords:    []string{"prefix", "suffix", "wrap", "lines"},
				Options:     affixOptions(),
				run: func(c call) (string, error) {
					return textops.AddAffix(c.input, affix(c.opts)), nil
				},
			},
			{
				ID:          "remove-affix",
				Name:        "Remove Prefix/Suffix",
				Description: "Strip text from the start and end of the input or every line",
				Keywords:    []string{"prefix", "suffix", "strip", "lines"},
				Options:     affixOptions(),
				run: func(c call) (string, error) {
					return textops.RemoveAffix(c.input, affix(c.opts)), nil
				},
			},
			{
				ID:          "substring",
				Name:        "Substring",
				Description: "Cut a character range out of the text or every line",
				Keywords:    []string{"substring", "slice", "cut", "characters"},
				Options: []Option{
					number("start", 0, "First character, counted from the right when negative"),
					number("count", -1, "Number of characters; negative keeps the rest"),
					flag("perLine", false, "Cut every line"),
				},
				run: func(c call) (string, error) {
					return textops.Substring(c.input, textops.SubstringOptions{
						Start:   c.opts.Int("start"),
						Count:   c.opts.Int("count"),
						PerLine: c.opts.Bool("perLine"),
					}), nil
				},
			},
			{
				ID:          "split-format",
				Name:        "Split and Format",
				Description: "Split every line and rebuild it from a template",
				Keywords:    []string{"split", "columns", "template", "format"},
				Options: []Option{
					str("separator", ",", "Field separator"),
					str("template", "{1}", "Output template; {1} is the first field"),
				},
				run: func(c call) (string, error) {
					return textops.SplitFormat(c.input, c.opts.String("separator"), c.opts.String("template"))
				},
			},
			{
				ID:          "filter-lines",
				Name:        "Filter Lines",
				Description: "Keep or drop the lines matching a regular expression",
				Keywords:    []string{"filter", "grep", "regex", "lines"},
				Options: []Option{
					str("pattern", "", "Regular expression"),
					str("flags", "", "Regex flags: i ignores case, s lets . match newlines"),
					flag("invert", false, "Drop the matching lines instead"),
				},
				run: func(c call) (string, error) {
					return textops.FilterLines(c.input, textops.FilterOptions{
						Pattern: c.opts.String("pattern"),
						Flags:   c.opts.String("flags"),
						Invert:  c.opts.Bool("invert"),
					})
				},
			},
			{
				ID:          "extract-matches",
				Name:        "Extract Matches",
				Description: "List every match of a regular expression",
				Keywords:    []string{"extract", "regex", "match", "grep"},
				Options: []Option{
					str("pattern", "", "Regular expression"),
					str("flags", "", "Regex flags: i ignores case, s lets . match newlines"),
					number("group", 0, "Capture group to list; 0 is the whole match"),
				},
				run: func(c call) (string, error) {
					return textops.ExtractMatches(c.input, c.opts.String("pattern"), c.opts.String("flags"), c.opts.Int("group"))
				},
			},
			{
				ID:          "html-links",
				Name:        "HTML Links",
				Description: "List the links of an HTML document",
				Keywords:    []string{"html", "links", "anchors", "href"},
				Options:     []Option{str("template", "", "Line template with {text} and {href}")},
				run: func(c call) (string, error) {
					return textops.Links(c.input, c.opts.String("template"))
				},
			},
			{
				ID:          "html-select",
				Name:        "HTML Select",
				Description: "List the elements matching a CSS selector",
				Keywords:    []string{"html", "css selector", "query", "scrape"},
				Options: []Option{
					str("selector", "", "CSS selector"),
					str("output", "text", "text, inner, outer or attr:NAME, joined with |"),
				},
				run: func(c call) (string, error) {
					return textops.Select(c.input, c.opts.String("selector"), c.opts.String("output"))
				},
			},
			{
				ID:          "json-select",
				Name:        "JSON Select",
				Description: "Pick a value out of a JSON document by path",
				Keywords:    []string{"json", "path", "query", "select"},
				Options:     []Option{str("path", "$", "Path such as items[0].name")},
				run: func(c call) (string, error) {
					return jsonfmt.Select(c.input, c.opts.String("path"))
				},
			},
			{
				ID:          "calculate",
				Name:        "Calculate",
				Description: "Replace arithmetic expressions in the text by their value",
				Keywords:    []string{"calculate", "math", "arithmetic", "sum"},
				run: func(c call) (string, error) {
					return textops.Calculate(c.input), nil
				},
			},
		},
	},
}

func affixOptions() []Option {
	return []Option{
		str("prefix", "", "Text at the start"),
		str("suffix", "", "Text at the end"),
		flag("perLine", false, "Apply to every line"),
	}
}

func affix(o Values) textops.AffixOptions {
	return textops.AffixOptions{Prefix: o.String("prefix"), Suffix: o.String("suffix"), PerLine: o.Bool("perLine")}
}

var index = func() map[string]*Utility {
	m := map[string]*Utility{}
	for _, cat := range categories {
		for _, u := range cat.Utilities {
			u.Category = cat.ID
			u.Supported = u.run != nil
			if u.Options == nil {
				u.Options = []Option{}
			}
			m[u.ID] = u
		}
	}
	return m
}()

// Categories returns the catalog in display order
func Categories() []*Category {
	return categories
}

// CategoryByID returns the category with the given id, or nil
func CategoryByID(id string) *Category {
	for _, cat := range categories {
		if cat.ID == id {
			return cat
		}
	}
	return nil
}

// Lookup returns the utility with the given id
func Lookup(id string) (*Utility, bool) {
	u, ok := index[id]
	return u, ok
}

// All returns every utility in display order
func All() []*Utility {
	var out []*Utility
	for _, cat := range categories {
		out = append(out, cat.Utilities...)
	}
	return out
}

func runDiff(c call) (string, error) {
	other := c.opts.String("other")
	switch c.opts.String("format") {
	case "unified":
		opts := linediff.DefaultUnifiedOptions()
		opts.Context = c.opts.Int("context")
		return linediff.Unified(c.input, other, opts)
	case "summary":
		return linediff.Summary(linediff.Lines(c.input, other)), nil
	}
	b, err := json.MarshalIndent(linediff.Lines(c.input, other), "", "  ")
	if err != nil {
		return "", operr.Wrap(operr.CodecError, "text-diff", err.Error(), err)
	}
	return string(b), nil
}

func runPassword(c call) (string, error) {
	if c.opts.Bool("passphrase") {
		return c.gen.Passphrase(generate.PassphraseOptions{
			Words:     c.opts.Int("words"),
			Separator: c.opts.String("separator"),
			Count:     c.opts.Int("count"),
		})
	}
	return c.gen.Password(generate.PasswordOptions{
		Length:           c.opts.Int("length"),
		Uppercase:        c.opts.Bool("uppercase"),
		Numbers:          c.opts.Bool("numbers"),
		Symbols:          c.opts.Bool("symbols"),
		ExcludeSimilar:   c.opts.Bool("excludeSimilar"),
		ExcludeAmbiguous: c.opts.Bool("excludeAmbiguous"),
		Charset:          c.opts.String("charset"),
		Count:            c.opts.Int("count"),
	})
}

// unsupported is the error for listed utilities that cannot run
func unsupported(u *Utility) error {
	return operr.Unsupported(u.ID, "%s is not available.", u.Name)
}
