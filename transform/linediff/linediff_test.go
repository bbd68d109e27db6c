package linediff

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

func TestLines(t *testing.T) {
	tests := []struct {
		a, b     string
		expected Result
		desc     string
	}{
		{
			"a\nb\nc", "a\nx\nc",
			Result{Added: []string{"x"}, Removed: []string{"b"}, Unchanged: []string{"a", "c"}},
			"Single replaced line",
		},
		{
			"a\nb", "a\nb\nc\nd",
			Result{Added: []string{"c", "d"}, Removed: []string{}, Unchanged: []string{"a", "b"}},
			"Appended lines",
		},
		{
			"a\nb\nc", "a",
			Result{Added: []string{}, Removed: []string{"b", "c"}, Unchanged: []string{"a"}},
			"Truncated text",
		},
		{
			"a\nb\nc", "x\na\nb\nc",
			Result{Added: []string{"x", "a", "b", "c"}, Removed: []string{"a", "b", "c"}, Unchanged: []string{}},
			"Insertion shifts every following line",
		},
		{
			"same", "same",
			Result{Added: []string{}, Removed: []string{}, Unchanged: []string{"same"}},
			"Identical",
		},
		{
			"", "",
			Result{Added: []string{}, Removed: []string{}, Unchanged: []string{""}},
			"Both empty",
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got := Lines(test.a, test.b)
			if !reflect.DeepEqual(got, test.expected) {
				t.Errorf("Lines(%q, %q)\nexpected: %+v\ngot:      %+v", test.a, test.b, test.expected, got)
			}
		})
	}
}

func TestLinesAgainstItself(t *testing.T) {
	text := "one\ntwo\n\nthree"
	got := Lines(text, text)
	if !got.Identical() {
		t.Fatalf("expected identical result, got %+v", got)
	}
	if strings.Join(got.Unchanged, "\n") != text {
		t.Errorf("unchanged lines %q do not rebuild the input", got.Unchanged)
	}
}

func TestSummary(t *testing.T) {
	r := Lines("a\nb\nc", "a\nx\nc")
	expected := "Removed (1):\n- b\nAdded (1):\n+ x\nUnchanged (2):\n  a\n  c"
	if got := Summary(r); got != expected {
		t.Errorf("Expected: %q\nGot: %q", expected, got)
	}
}

func TestUnified(t *testing.T) {
	out, err := Unified("a\nb\nc", "a\nx\nc", DefaultUnifiedOptions())
	if err != nil {
		t.Fatalf("Unified: %v", err)
	}

	for _, want := range []string{"--- a\n", "+++ b\n", "@@ -1,3 +1,3 @@", "\n a\n-b\n+x\n c"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestUnifiedIdentical(t *testing.T) {
	out, err := Unified("a\nb", "a\nb", DefaultUnifiedOptions())
	if err != nil {
		t.Fatalf("Unified: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty diff, got %q", out)
	}
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		cause error
		desc  string
	}{
		{io.ErrShortWrite, "Writer failure"},
		{errors.New("bad hunk"), "Printer failure"},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			err := renderError(test.cause)
			e, ok := operr.As(err)
			if !ok || e.Kind != operr.CodecError || e.Op != "text-diff" {
				t.Fatalf("expected text-diff CodecError, got %v", err)
			}
			if !errors.Is(err, test.cause) {
				t.Errorf("cause %v not wrapped", test.cause)
			}
		})
	}
}

func TestBuildHunksSplitsDistantChanges(t *testing.T) {
	a := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10"
	b := "X\n2\n3\n4\n5\n6\n7\n8\n9\nY"
	hunks := buildHunks(Align(a, b), 1)
	if len(hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(hunks))
	}
	if hunks[0].OrigStartLine != 1 || hunks[0].OrigLines != 2 || hunks[0].NewLines != 2 {
		t.Errorf("first hunk: %+v", hunks[0])
	}
	if hunks[1].OrigStartLine != 9 || hunks[1].NewStartLine != 9 || hunks[1].OrigLines != 2 {
		t.Errorf("second hunk: %+v", hunks[1])
	}
	if got := string(hunks[1].Body); got != " 9\n-10\n+Y\n" {
		t.Errorf("second hunk body = %q", got)
	}
}

func TestBuildHunksWholeFile(t *testing.T) {
	hunks := buildHunks(Align("a\nb\nc\nd\ne", "a\nb\nc\nd\nE"), -1)
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	if hunks[0].OrigLines != 5 || hunks[0].NewLines != 5 {
		t.Errorf("whole-file hunk covers %d/%d lines", hunks[0].OrigLines, hunks[0].NewLines)
	}
}
