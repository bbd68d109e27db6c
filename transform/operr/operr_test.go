package operr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageIsUserFacing(t *testing.T) {
	err := Invalid("number-conversion", "Invalid %s number. Only %s are allowed.", "binary", "0 and 1")
	if got := err.Error(); got != "Invalid binary number. Only 0 and 1 are allowed." {
		t.Errorf("Error() = %q", got)
	}
	if err.Kind != InvalidInputFormat {
		t.Errorf("Kind = %s", err.Kind)
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	base := Codec("base64", "Failed to decode base64")
	wrapped := fmt.Errorf("step 2: %w", base)

	if got := KindOf(wrapped); got != CodecError {
		t.Errorf("KindOf = %q, want %q", got, CodecError)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(foreign) = %q, want empty", got)
	}

	e, ok := As(wrapped)
	if !ok || e != base {
		t.Errorf("As did not return the original error")
	}
}

func TestIsMatchesKindAndOp(t *testing.T) {
	err := Unsupported("json-formatter", "NDJSON format requires an array input")

	tests := []struct {
		target   error
		expected bool
		desc     string
	}{
		{&Error{Kind: UnsupportedOperation}, true, "Kind only"},
		{&Error{Kind: UnsupportedOperation, Op: "json-formatter"}, true, "Kind and op"},
		{&Error{Kind: UnsupportedOperation, Op: "base64"}, false, "Other op"},
		{&Error{Kind: CodecError}, false, "Other kind"},
		{errors.New("NDJSON format requires an array input"), false, "Foreign error"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			if got := errors.Is(err, test.target); got != test.expected {
				t.Errorf("errors.Is = %v, want %v", got, test.expected)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(InvalidInputFormat, "json-formatter", "Invalid JSON", cause)
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestWithOpKeepsExisting(t *testing.T) {
	err := New(ConfigurationError, "lorem-ipsum", "count out of range").WithOp("pipeline")
	if err.Op != "lorem-ipsum" {
		t.Errorf("Op = %q, want lorem-ipsum", err.Op)
	}
	err = New(ConfigurationError, "", "count out of range").WithOp("pipeline")
	if err.Op != "pipeline" {
		t.Errorf("Op = %q, want pipeline", err.Op)
	}
}

func TestPositionAt(t *testing.T) {
	input := "ab\ncde\n\nf"
	tests := []struct {
		offset   int
		expected Position
	}{
		{0, Position{Offset: 0, Line: 1, Column: 1}},
		{2, Position{Offset: 2, Line: 1, Column: 3}},
		{3, Position{Offset: 3, Line: 2, Column: 1}},
		{5, Position{Offset: 5, Line: 2, Column: 3}},
		{8, Position{Offset: 8, Line: 4, Column: 1}},
		{-4, Position{Offset: 0, Line: 1, Column: 1}},
		{100, Position{Offset: 9, Line: 4, Column: 2}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprint(test.offset), func(t *testing.T) {
			if got := PositionAt(input, test.offset); got != test.expected {
				t.Errorf("PositionAt(%d) = %+v, want %+v", test.offset, got, test.expected)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Offset: 4, Line: 2, Column: 1}).String(); got != "line 2, column 1" {
		t.Errorf("got %q", got)
	}
	if got := (Position{Offset: 4}).String(); got != "offset 4" {
		t.Errorf("got %q", got)
	}
}
