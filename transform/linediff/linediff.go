// Package linediff compares two texts line by line.
//
// The comparison is positional: line i of the first text is compared with line
// i of the second. It is not a longest-common-subsequence diff, so a single
// inserted line shows up as a cascade of removed/added pairs.
package linediff

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Result holds the classified lines of a comparison
type Result struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
}

// Identical reports whether nothing was added or removed
func (r Result) Identical() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}

// OpKind classifies a single aligned line
type OpKind int

const (
	OpEqual OpKind = iota
	OpRemove
	OpAdd
)

// Op is one line of the aligned comparison, in output order
type Op struct {
	Kind OpKind
	Text string
	// OrigLine and NewLine count the lines of each side consumed before this op
	OrigLine int
	NewLine  int
}

// Align walks both texts positionally and returns the ops in order. When one
// side runs out, the rest of the other side is reported and the walk stops.
func Align(a, b string) []Op {
	la := strings.Split(a, "\n")
	lb := strings.Split(b, "\n")

	n := len(la)
	if len(lb) > n {
		n = len(lb)
	}

	ops := make([]Op, 0, n)
	oi, ni := 0, 0
	for i := 0; i < n; i++ {
		if i >= len(la) {
			for _, line := range lb[i:] {
				ops = append(ops, Op{Kind: OpAdd, Text: line, OrigLine: oi, NewLine: ni})
				ni++
			}
			break
		}
		if i >= len(lb) {
			for _, line := range la[i:] {
				ops = append(ops, Op{Kind: OpRemove, Text: line, OrigLine: oi, NewLine: ni})
				oi++
			}
			break
		}
		if la[i] == lb[i] {
			ops = append(ops, Op{Kind: OpEqual, Text: la[i], OrigLine: oi, NewLine: ni})
			oi++
			ni++
			continue
		}
		ops = append(ops, Op{Kind: OpRemove, Text: la[i], OrigLine: oi, NewLine: ni})
		oi++
		ops = append(ops, Op{Kind: OpAdd, Text: lb[i], OrigLine: oi, NewLine: ni})
		ni++
	}
	return ops
}

// Lines classifies the lines of a and b as added, removed or unchanged
func Lines(a, b string) Result {
	res := Result{
		Added:     []string{},
		Removed:   []string{},
		Unchanged: []string{},
	}
	for _, op := range Align(a, b) {
		switch op.Kind {
		case OpEqual:
			res.Unchanged = append(res.Unchanged, op.Text)
		case OpRemove:
			res.Removed = append(res.Removed, op.Text)
		case OpAdd:
			res.Added = append(res.Added, op.Text)
		}
	}
	return res
}

// Summary renders a Result as three plain-text sections
func Summary(r Result) string {
	var b strings.Builder
	section := func(title, marker string, lines []string) {
		fmt.Fprintf(&b, "%s (%d):\n", title, len(lines))
		for _, line := range lines {
			b.WriteString(marker)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	section("Removed", "- ", r.Removed)
	section("Added", "+ ", r.Added)
	section("Unchanged", "  ", r.Unchanged)
	return strings.TrimSuffix(b.String(), "\n")
}

// UnifiedOptions configures Unified
type UnifiedOptions struct {
	OrigName string
	NewName  string
	// Context is the number of unchanged lines kept around each change.
	// Negative means the whole file.
	Context int
}

// DefaultUnifiedOptions mirrors the usual diff -u defaults
func DefaultUnifiedOptions() UnifiedOptions {
	return UnifiedOptions{OrigName: "a", NewName: "b", Context: 3}
}

// Unified renders the positional alignment of a and b as a unified diff.
// Identical inputs produce an empty string.
func Unified(a, b string, opts UnifiedOptions) (string, error) {
	ops := Align(a, b)
	hunks := buildHunks(ops, opts.Context)
	if len(hunks) == 0 {
		return "", nil
	}

	if opts.OrigName == "" {
		opts.OrigName = "a"
	}
	if opts.NewName == "" {
		opts.NewName = "b"
	}

	out, err := godiff.PrintFileDiff(&godiff.FileDiff{
		OrigName: opts.OrigName,
		NewName:  opts.NewName,
		Hunks:    hunks,
	})
	if err != nil {
		return "", renderError(err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// renderError classifies a failure of the diff printer
func renderError(err error) error {
	return operr.Wrap(operr.CodecError, "text-diff", "Cannot render unified diff: "+err.Error(), err)
}

// buildHunks groups changed ops with their surrounding context
func buildHunks(ops []Op, context int) []*godiff.Hunk {
	var changed []int
	for i, op := range ops {
		if op.Kind != OpEqual {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	type span struct{ from, to int }
	var spans []span
	if context < 0 {
		spans = []span{{0, len(ops)}}
	} else {
		for _, i := range changed {
			from := i - context
			if from < 0 {
				from = 0
			}
			to := i + context + 1
			if to > len(ops) {
				to = len(ops)
			}
			if len(spans) > 0 && from <= spans[len(spans)-1].to {
				spans[len(spans)-1].to = to
				continue
			}
			spans = append(spans, span{from, to})
		}
	}

	hunks := make([]*godiff.Hunk, 0, len(spans))
	for _, s := range spans {
		h := &godiff.Hunk{}
		var body strings.Builder
		for _, op := range ops[s.from:s.to] {
			switch op.Kind {
			case OpEqual:
				body.WriteByte(' ')
				h.OrigLines++
				h.NewLines++
			case OpRemove:
				body.WriteByte('-')
				h.OrigLines++
			case OpAdd:
				body.WriteByte('+')
				h.NewLines++
			}
			body.WriteString(op.Text)
			body.WriteByte('\n')
		}
		first := ops[s.from]
		h.OrigStartLine = int32(first.OrigLine)
		if h.OrigLines > 0 {
			h.OrigStartLine++
		}
		h.NewStartLine = int32(first.NewLine)
		if h.NewLines > 0 {
			h.NewStartLine++
		}
		h.Body = []byte(body.String())
		hunks = append(hunks, h)
	}
	return hunks
}
