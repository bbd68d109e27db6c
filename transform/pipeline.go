package transform

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Step is one utility call of a pipeline
type Step struct {
	Operation string         `json:"operation"`
	Options   map[string]any `json:"options,omitempty"`
}

// Pipeline is an ordered list of steps. The output of each step is the
// input of the next.
type Pipeline []Step

// StepError reports which step of a pipeline failed. Step is one-based.
type StepError struct {
	Step      int
	Operation string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("Step %d (%s): %s", e.Step, e.Operation, e.Err.Error())
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ParsePipeline reads a pipeline from its JSON form, a list of
// {"operation": ..., "options": {...}} objects. Every operation must exist.
func ParsePipeline(data string) (Pipeline, error) {
	var p Pipeline
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, operr.Wrap(operr.InvalidInputFormat, "pipeline", "Invalid pipeline: "+err.Error(), err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that every step names a known, runnable utility
func (p Pipeline) Validate() error {
	for i, step := range p {
		id := strings.TrimSpace(step.Operation)
		if id == "" {
			return &StepError{Step: i + 1, Err: operr.Config("pipeline", "The step has no operation.")}
		}
		u, ok := Lookup(id)
		if !ok {
			return &StepError{Step: i + 1, Operation: id, Err: operr.Unsupported(id, "Unknown operation %q.", id)}
		}
		if !u.Supported {
			return &StepError{Step: i + 1, Operation: id, Err: unsupported(u)}
		}
	}
	return nil
}

// Export returns the pipeline as indented JSON
func (p Pipeline) Export() (string, error) {
	if p == nil {
		p = Pipeline{}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RunPipeline runs p with the default runner
func RunPipeline(p Pipeline, input string) (string, error) {
	return defaultRunner.Run(p, input)
}

// Run feeds input through every step in order. The first failing step stops
// the run; its error is wrapped in a *StepError.
func (r *Runner) Run(p Pipeline, input string) (string, error) {
	output := input
	for i, step := range p {
		out, err := r.Apply(step.Operation, output, step.Options)
		if err != nil {
			return "", &StepError{Step: i + 1, Operation: step.Operation, Err: err}
		}
		output = out
	}
	return output, nil
}
