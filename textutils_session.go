package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pstuifzand/go-textutils/transform"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

// SessionStep is one step of the pipeline being edited
type SessionStep struct {
	ID string
	transform.Step
}

// Session is the client-side editing state of the REPL: an input text and
// a draft pipeline. Running it goes through a TextUtilsCommands, so the same
// session works against a local core or a socket server.
type Session struct {
	cmds        TextUtilsCommands
	steps       []SessionStep
	selectedID  string
	inputText   string
	outputText  string
	lastErr     error
	stepCounter int // For generating unique IDs
}

// NewSession creates an empty session
func NewSession(cmds TextUtilsCommands) *Session {
	return &Session{
		cmds:  cmds,
		steps: []SessionStep{},
	}
}

// ============================================================================
// Step Management Methods
// ============================================================================

// AddStep appends a step and returns its ID
func (s *Session) AddStep(operation string, options map[string]any) (string, error) {
	if _, err := s.cmds.GetOperation(operation); err != nil {
		return "", err
	}

	id := s.generateStepID()
	s.steps = append(s.steps, SessionStep{
		ID:   id,
		Step: transform.Step{Operation: operation, Options: copyOptions(options)},
	})
	s.selectedID = id
	s.process()
	return id, nil
}

// UpdateStep merges options into an existing step. A nil value removes the
// option so that its default applies again.
func (s *Session) UpdateStep(stepID string, options map[string]any) error {
	idx := s.findStepIndexByID(stepID)
	if idx < 0 {
		return fmt.Errorf("step not found: %s", stepID)
	}

	step := &s.steps[idx]
	if step.Options == nil {
		step.Options = map[string]any{}
	}
	for k, v := range options {
		if v == nil {
			delete(step.Options, k)
			continue
		}
		step.Options[k] = v
	}
	s.process()
	return nil
}

// RemoveStep deletes a step
func (s *Session) RemoveStep(stepID string) error {
	idx := s.findStepIndexByID(stepID)
	if idx < 0 {
		return fmt.Errorf("step not found: %s", stepID)
	}

	s.steps = append(s.steps[:idx], s.steps[idx+1:]...)
	if s.selectedID == stepID {
		s.selectedID = ""
	}
	s.process()
	return nil
}

// CanMoveUp reports whether the step can move one place earlier
func (s *Session) CanMoveUp(stepID string) bool {
	return s.findStepIndexByID(stepID) > 0
}

// CanMoveDown reports whether the step can move one place later
func (s *Session) CanMoveDown(stepID string) bool {
	idx := s.findStepIndexByID(stepID)
	return idx >= 0 && idx < len(s.steps)-1
}

// MoveUp swaps a step with the one before it
func (s *Session) MoveUp(stepID string) error {
	if !s.CanMoveUp(stepID) {
		return fmt.Errorf("cannot move %s up", stepID)
	}
	idx := s.findStepIndexByID(stepID)
	s.steps[idx-1], s.steps[idx] = s.steps[idx], s.steps[idx-1]
	s.process()
	return nil
}

// MoveDown swaps a step with the one after it
func (s *Session) MoveDown(stepID string) error {
	if !s.CanMoveDown(stepID) {
		return fmt.Errorf("cannot move %s down", stepID)
	}
	idx := s.findStepIndexByID(stepID)
	s.steps[idx], s.steps[idx+1] = s.steps[idx+1], s.steps[idx]
	s.process()
	return nil
}

// SelectStep sets the currently selected step
func (s *Session) SelectStep(stepID string) error {
	if s.findStepIndexByID(stepID) < 0 {
		return fmt.Errorf("step not found: %s", stepID)
	}
	s.selectedID = stepID
	return nil
}

// Clear removes every step
func (s *Session) Clear() {
	s.steps = []SessionStep{}
	s.selectedID = ""
	s.process()
}

// ============================================================================
// Text Processing Methods
// ============================================================================

// SetInputText sets the input text and processes it through the pipeline
func (s *Session) SetInputText(text string) {
	s.inputText = text
	s.process()
}

// GetInputText returns the current input text
func (s *Session) GetInputText() string {
	return s.inputText
}

// GetOutputText returns the output of the last run. It is empty when the
// run failed.
func (s *Session) GetOutputText() string {
	return s.outputText
}

// Err returns the error of the last run, if any
func (s *Session) Err() error {
	return s.lastErr
}

// process runs the pipeline over the input text and keeps the result
func (s *Session) process() {
	output, err := s.cmds.RunPipeline(s.inputText, s.Pipeline())
	s.outputText = output
	s.lastErr = err
}

// ============================================================================
// Query Methods
// ============================================================================

// GetStep returns a step by ID, or nil if not found
func (s *Session) GetStep(stepID string) *SessionStep {
	idx := s.findStepIndexByID(stepID)
	if idx < 0 {
		return nil
	}
	return &s.steps[idx]
}

// GetSelectedStepID returns the ID of the currently selected step
func (s *Session) GetSelectedStepID() string {
	return s.selectedID
}

// GetSteps returns a copy of the steps
func (s *Session) GetSteps() []SessionStep {
	return append([]SessionStep{}, s.steps...)
}

// Pipeline returns the steps as a pipeline
func (s *Session) Pipeline() transform.Pipeline {
	p := make(transform.Pipeline, len(s.steps))
	for i, step := range s.steps {
		p[i] = step.Step
	}
	return p
}

// ResolveStep accepts a step ID or a one-based step number
func (s *Session) ResolveStep(ref string) (string, error) {
	if s.findStepIndexByID(ref) >= 0 {
		return ref, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.steps) {
		return s.steps[n-1].ID, nil
	}
	return "", fmt.Errorf("step not found: %s", ref)
}

// ============================================================================
// Import/Export Methods
// ============================================================================

// ExportPipeline exports the pipeline as a JSON string
func (s *Session) ExportPipeline() (string, error) {
	return s.Pipeline().Export()
}

// ImportPipeline replaces the steps with a pipeline read from JSON. Step IDs
// are assigned anew.
func (s *Session) ImportPipeline(jsonStr string) error {
	p, err := transform.ParsePipeline(jsonStr)
	if err != nil {
		return err
	}

	s.steps = make([]SessionStep, 0, len(p))
	s.stepCounter = 0
	for _, step := range p {
		step.Operation = strings.TrimSpace(step.Operation)
		s.steps = append(s.steps, SessionStep{ID: s.generateStepID(), Step: step})
	}
	s.selectedID = ""
	s.process()
	return nil
}

// ============================================================================
// Helper Methods (Private)
// ============================================================================

// generateStepID generates a unique step ID
func (s *Session) generateStepID() string {
	id := fmt.Sprintf("step_%d", s.stepCounter)
	s.stepCounter++
	return id
}

// findStepIndexByID finds the index of a step by ID
func (s *Session) findStepIndexByID(stepID string) int {
	for i := range s.steps {
		if s.steps[i].ID == stepID {
			return i
		}
	}
	return -1
}

// copyOptions copies an options map so later edits do not alias the caller's
func copyOptions(options map[string]any) map[string]any {
	if len(options) == 0 {
		return nil
	}
	out := make(map[string]any, len(options))
	for k, v := range options {
		out[k] = v
	}
	return out
}

// sessionError formats an error for display, naming the kind when known
func sessionError(err error) string {
	if e, ok := operr.As(err); ok {
		msg := fmt.Sprintf("%s: %s", e.Kind, err.Error())
		if e.Pos != nil {
			msg += " (at " + e.Pos.String() + ")"
		}
		return msg
	}
	return err.Error()
}
