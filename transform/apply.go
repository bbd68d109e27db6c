package transform

import (
	"github.com/pstuifzand/go-textutils/transform/generate"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Runner applies utilities. Generator supplies randomness and time to the
// generators; nil means crypto/rand and the wall clock. Defaults holds
// per-utility options that are used where a call does not set them.
type Runner struct {
	Generator *generate.Generator
	Defaults  map[string]map[string]any
}

var defaultRunner = &Runner{}

// Apply runs a utility with the default runner
func Apply(id, input string, options map[string]any) (string, error) {
	return defaultRunner.Apply(id, input, options)
}

// Apply runs the utility id on input. Options are checked against the
// utility's schema; unknown or mistyped options are a ConfigurationError.
// Empty input gives empty output, except for utilities that generate without
// input.
func (r *Runner) Apply(id, input string, options map[string]any) (string, error) {
	u, ok := Lookup(id)
	if !ok {
		return "", operr.Unsupported(id, "Unknown operation %q.", id)
	}
	if !u.Supported {
		return "", unsupported(u)
	}

	values, err := decodeOptions(u, r.merge(id, options))
	if err != nil {
		return "", err
	}
	if input == "" && !u.AcceptsEmpty {
		return "", nil
	}

	out, err := u.run(call{input: input, opts: values, gen: r.Generator})
	if err != nil {
		if e, ok := operr.As(err); ok {
			return "", e.WithOp(id)
		}
		return "", operr.Wrap(operr.UnsupportedOperation, id, err.Error(), err)
	}
	return out, nil
}

// merge lays options over the configured defaults for id
func (r *Runner) merge(id string, options map[string]any) map[string]any {
	defaults := r.Defaults[id]
	if len(defaults) == 0 {
		return options
	}
	merged := make(map[string]any, len(defaults)+len(options))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range options {
		merged[k] = v
	}
	return merged
}
