package codec

import (
	"strings"
	"testing"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

func TestBase64(t *testing.T) {
	tests := []struct {
		input    string
		mode     Mode
		variant  Variant
		expected string
		desc     string
	}{
		{"hello", Encode, Standard, "aGVsbG8=", "Encode standard"},
		{"aGVsbG8=", Decode, Standard, "hello", "Decode standard"},
		{"aGVsbG8", Decode, Standard, "hello", "Decode without padding"},
		{"YW J j\n", Decode, Standard, "abc", "Decode ignores whitespace"},
		{"?>?", Encode, Standard, "Pz4/", "Standard alphabet"},
		{"?>?", Encode, URLSafe, "Pz4_", "URL alphabet"},
		{"a", Encode, URLSafe, "YQ", "URL strips padding"},
		{"YQ", Decode, URLSafe, "a", "URL restores padding"},
		{"Pz4_", Decode, URLSafe, "?>?", "URL decode"},
		{"w6k=", Decode, Standard, "é", "Decode UTF-8 text"},
		{"/w==", Decode, Standard, "\u00ff", "Non UTF-8 bytes read as Latin-1"},
		{"aGn/", Decode, Standard, "hi\u00ff", "Mixed bytes read as Latin-1"},
		{"_w", Decode, URLSafe, "\u00ff", "URL decode non UTF-8 bytes"},
		{"", Encode, Standard, "", "Empty input"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result, err := Base64(test.input, test.mode, test.variant)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != test.expected {
				t.Errorf("Input: %q", test.input)
				t.Errorf("Expected: %q", test.expected)
				t.Errorf("Got: %q", result)
			}
		})
	}
}

func TestBase64DecodeErrors(t *testing.T) {
	tests := []struct {
		input   string
		variant Variant
		offset  int
		message string
		desc    string
	}{
		{"abc$", Standard, 3, "Failed to decode the input. Please check that your input is valid Base64.", "Bad character"},
		{"ab c$", Standard, 4, "Failed to decode the input. Please check that your input is valid Base64.", "Offset skips whitespace"},
		{"ab*d", URLSafe, 2, "Failed to decode the Base64 URL input. Please check that your input is valid.", "URL variant"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result, err := Base64(test.input, Decode, test.variant)
			if err == nil {
				t.Fatalf("expected error, got %q", result)
			}
			e, ok := operr.As(err)
			if !ok || e.Kind != operr.CodecError {
				t.Fatalf("expected CodecError, got %v", err)
			}
			if e.Message != test.message {
				t.Errorf("message = %q", e.Message)
			}
			if e.Pos == nil || e.Pos.Offset != test.offset {
				t.Errorf("position = %+v, want offset %d", e.Pos, test.offset)
			}
		})
	}
}

var roundTripInputs = []string{
	"hello world",
	"",
	"héllo wörld ✓ 中文",
	"line1\nline2\ttab",
	"symbols: +/=?&%#<>\"'",
}

func TestBase64RoundTrip(t *testing.T) {
	for _, variant := range []Variant{Standard, URLSafe} {
		for _, in := range roundTripInputs {
			enc, err := Base64(in, Encode, variant)
			if err != nil {
				t.Fatal(err)
			}
			dec, err := Base64(enc, Decode, variant)
			if err != nil {
				t.Fatalf("%s decode of %q: %v", variant, enc, err)
			}
			if dec != in {
				t.Errorf("%s round trip: %q -> %q -> %q", variant, in, enc, dec)
			}
		}
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		input    string
		mode     Mode
		expected string
		desc     string
	}{
		{"a b&c=d/é", Encode, "a%20b%26c%3Dd%2F%C3%A9", "Encode reserved and non-ASCII"},
		{"!'()*-._~", Encode, "!'()*-._~", "Unreserved marks stay"},
		{"a%20b+c", Decode, "a b+c", "Plus is not a space"},
		{"%E4%b8%AD", Decode, "中", "Mixed case escapes"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result, err := URL(test.input, test.mode)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != test.expected {
				t.Errorf("Expected: %q, Got: %q", test.expected, result)
			}
		})
	}
}

func TestURLErrors(t *testing.T) {
	tests := []struct {
		input  string
		mode   Mode
		offset int
		desc   string
	}{
		{"abc%zz", Decode, 3, "Bad hex digits"},
		{"abc%4", Decode, 3, "Truncated escape"},
		{"%41%4", Decode, 3, "Truncated escape after a good one"},
		{"%FF", Decode, 0, "Not UTF-8"},
		{"ok%C3", Decode, 2, "Incomplete UTF-8 sequence"},
		{"a\xffb", Encode, 1, "Encode invalid UTF-8"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := URL(test.input, test.mode)
			e, ok := operr.As(err)
			if !ok || e.Kind != operr.CodecError {
				t.Fatalf("expected CodecError, got %v", err)
			}
			if e.Pos == nil || e.Pos.Offset != test.offset {
				t.Errorf("position = %+v, want offset %d", e.Pos, test.offset)
			}
		})
	}
}

func TestURLRoundTrip(t *testing.T) {
	for _, in := range roundTripInputs {
		enc, err := URL(in, Encode)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := URL(enc, Decode)
		if err != nil {
			t.Fatal(err)
		}
		if dec != in {
			t.Errorf("round trip: %q -> %q -> %q", in, enc, dec)
		}
	}
}

func TestHTML(t *testing.T) {
	tests := []struct {
		input    string
		mode     Mode
		expected string
		desc     string
	}{
		{`<a href="x">Tom & 'Jerry'</a>`, Encode, "&lt;a href=&#34;x&#34;&gt;Tom &amp; &#39;Jerry&#39;&lt;/a&gt;", "Encode reserved characters"},
		{"a\u00a0b", Encode, "a&nbsp;b", "Encode no-break space"},
		{"&lt;b&gt; &amp; &quot;hi&quot; &#39;x&#39;", Decode, `<b> & "hi" 'x'`, "Decode entities"},
		{"<b>bold</b> text", Decode, "bold text", "Decode drops markup"},
		{`<img src=x onerror="alert(1)">caption`, Decode, "caption", "Attributes are never evaluated"},
		{"<script>alert(1)</script>after", Decode, "alert(1)after", "Script bodies are plain text"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result, err := HTML(test.input, test.mode)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != test.expected {
				t.Errorf("Expected: %q, Got: %q", test.expected, result)
			}
		})
	}
}

func TestHTMLRoundTrip(t *testing.T) {
	inputs := []string{`&<>"'`, "a\u00a0b", "plain text", `<p class="x">5 > 3 & 2 < 4</p>`}
	for _, in := range inputs {
		enc, _ := HTML(in, Encode)
		dec, err := HTML(enc, Decode)
		if err != nil {
			t.Fatal(err)
		}
		if dec != in {
			t.Errorf("round trip: %q -> %q -> %q", in, enc, dec)
		}
	}
}

func TestDecodeJWT(t *testing.T) {
	token := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiIxMjM0NTY3ODkwIiwibmFtZSI6IkpvaG4gRG9lIiwiaWF0IjoxNTE2MjM5MDIyfQ." +
		"SflKxwRJSMeKKF2QT4fwpMeJf36POk6yJV_adQssw5c"

	got, err := DecodeJWT(token)
	if err != nil {
		t.Fatalf("DecodeJWT: %v", err)
	}
	expected := strings.Join([]string{
		`{`,
		`  "header": {`,
		`    "alg": "HS256",`,
		`    "typ": "JWT"`,
		`  },`,
		`  "payload": {`,
		`    "sub": "1234567890",`,
		`    "name": "John Doe",`,
		`    "iat": 1516239022`,
		`  }`,
		`}`,
	}, "\n")
	if got != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestDecodeJWTErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"abc", "Invalid token specified: missing part #2"},
		{"abc.e30", "Invalid token specified: invalid json for part #1"},
		{"e30.!!", "Invalid token specified: invalid base64 for part #2"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, err := DecodeJWT(test.input)
			e, ok := operr.As(err)
			if !ok || e.Kind != operr.CodecError {
				t.Fatalf("expected CodecError, got %v", err)
			}
			if !strings.HasPrefix(e.Message, test.message) {
				t.Errorf("message = %q, want prefix %q", e.Message, test.message)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("Decode"); err != nil || m != Decode {
		t.Errorf("ParseMode(Decode) = %q, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != Encode {
		t.Errorf("ParseMode(\"\") = %q, %v", m, err)
	}
	if _, err := ParseMode("sideways"); operr.KindOf(err) != operr.ConfigurationError {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}
