package numconv

import (
	"testing"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		input    string
		from, to Base
		expected string
		desc     string
	}{
		{"FF", Hex, Decimal, "255", "Hex to decimal"},
		{"255", Decimal, Binary, "11111111", "Decimal to binary"},
		{"255", Decimal, Hex, "FF", "Hex output is upper case"},
		{"ff", Hex, Binary, "11111111", "Lower case hex input"},
		{"777", Octal, Decimal, "511", "Octal to decimal"},
		{"-10", Decimal, Binary, "-1010", "Negative keeps its sign"},
		{"-255", Decimal, Hex, "-FF", "Negative hex"},
		{"  42 \n", Decimal, Octal, "52", "Surrounding whitespace"},
		{"0007", Octal, Decimal, "7", "Leading zeros dropped"},
		{"9223372036854775807", Decimal, Hex, "7FFFFFFFFFFFFFFF", "Largest value"},
		{"", Decimal, Binary, "", "Empty input"},
		{"   ", Hex, Binary, "", "Blank input"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			result, err := Convert(test.input, test.from, test.to)
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

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		input   string
		from    Base
		message string
		offset  int
	}{
		{"102", Binary, "Invalid binary number. Only 0 and 1 are allowed.", 2},
		{"89", Octal, "Invalid octal number. Only 0-7 are allowed.", 0},
		{"12G4", Hex, "Invalid hex number. Only 0-9 and A-F are allowed.", 2},
		{"1-2", Decimal, "Invalid decimal number. Only 0-9 and - (at start) are allowed.", 1},
		{" 3.5", Decimal, "Invalid decimal number. Only 0-9 and - (at start) are allowed.", 2},
		{"-", Decimal, "Invalid decimal number. Only 0-9 and - (at start) are allowed.", 0},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, err := Convert(test.input, test.from, Decimal)
			e, ok := operr.As(err)
			if !ok || e.Kind != operr.InvalidInputFormat {
				t.Fatalf("expected InvalidInputFormat, got %v", err)
			}
			if e.Message != test.message {
				t.Errorf("message = %q, want %q", e.Message, test.message)
			}
			if e.Pos == nil || e.Pos.Offset != test.offset {
				t.Errorf("position = %+v, want offset %d", e.Pos, test.offset)
			}
		})
	}
}

func TestConvertOverflow(t *testing.T) {
	inputs := []struct {
		input string
		from  Base
	}{
		{"9223372036854775808", Decimal},
		{"FFFFFFFFFFFFFFFFF", Hex},
	}
	for _, in := range inputs {
		_, err := Convert(in.input, in.from, Binary)
		if operr.KindOf(err) != operr.InvalidInputFormat {
			t.Errorf("%s: expected InvalidInputFormat, got %v", in.input, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	values := map[Base][]string{
		Decimal: {"0", "1", "255", "4096", "9007199254740993"},
		Binary:  {"0", "1", "101010", "1111111111111111"},
		Octal:   {"0", "17", "7654321"},
		Hex:     {"0", "FF", "DEADBEEF", "7FFFFFFFFFFFFFFF"},
	}

	for from, inputs := range values {
		for _, to := range Bases() {
			for _, n := range inputs {
				there, err := Convert(n, from, to)
				if err != nil {
					t.Fatalf("%s -> %s of %q: %v", from, to, n, err)
				}
				back, err := Convert(there, to, from)
				if err != nil {
					t.Fatalf("%s -> %s of %q: %v", to, from, there, err)
				}
				if back != n {
					t.Errorf("%s -> %s -> %s: %q -> %q -> %q", from, to, from, n, there, back)
				}
			}
		}
	}
}

func TestParseBase(t *testing.T) {
	for in, want := range map[string]Base{"hex": Hex, "Hexadecimal": Hex, "2": Binary, "oct": Octal, "decimal": Decimal} {
		if got, err := ParseBase(in); err != nil || got != want {
			t.Errorf("ParseBase(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseBase("base64"); operr.KindOf(err) != operr.ConfigurationError {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}
