package main

import (
	"strings"
	"testing"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// ============================================================================
// Step Management Tests
// ============================================================================

// TestAddStep tests basic step creation
func TestAddStep(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))

	stepID, err := s.AddStep("case-converter", map[string]any{"case": "upper"})
	if err != nil {
		t.Fatalf("AddStep failed: %v", err)
	}
	if stepID != "step_0" {
		t.Errorf("Expected stepID 'step_0', got '%s'", stepID)
	}

	step := s.GetStep(stepID)
	if step == nil {
		t.Fatal("Step should exist")
	}
	if step.Operation != "case-converter" {
		t.Errorf("Expected operation 'case-converter', got '%s'", step.Operation)
	}
	if s.GetSelectedStepID() != stepID {
		t.Errorf("Expected new step to be selected, got '%s'", s.GetSelectedStepID())
	}
}

// TestAddMultipleSteps tests creating multiple steps
func TestAddMultipleSteps(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))

	id1, _ := s.AddStep("case-converter", nil)
	id2, _ := s.AddStep("sort-text", nil)
	id3, _ := s.AddStep("trim-text", nil)

	if id1 != "step_0" || id2 != "step_1" || id3 != "step_2" {
		t.Errorf("Expected sequential IDs, got %s, %s, %s", id1, id2, id3)
	}
	if steps := s.GetSteps(); len(steps) != 3 {
		t.Errorf("Expected 3 steps, got %d", len(steps))
	}
}

// TestAddUnknownStep tests that unknown operations are rejected
func TestAddUnknownStep(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))

	_, err := s.AddStep("no-such-tool", nil)
	if operr.KindOf(err) != operr.UnsupportedOperation {
		t.Errorf("Expected UNSUPPORTED_OPERATION, got %v", err)
	}
	if len(s.GetSteps()) != 0 {
		t.Error("Pipeline should stay empty")
	}
}

// TestAddStepCopiesOptions tests that the caller's map is not aliased
func TestAddStepCopiesOptions(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))
	opts := map[string]any{"case": "upper"}

	id, _ := s.AddStep("case-converter", opts)
	opts["case"] = "lower"

	if got := s.GetStep(id).Options["case"]; got != "upper" {
		t.Errorf("Expected option to stay 'upper', got %v", got)
	}
}

// TestUpdateStep tests updating an existing step
func TestUpdateStep(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))
	s.SetInputText("b\na")
	id, _ := s.AddStep("sort-text", map[string]any{"order": "ascending"})

	if err := s.UpdateStep(id, map[string]any{"order": "descending"}); err != nil {
		t.Fatalf("Update should succeed, got error: %v", err)
	}
	if got := s.GetOutputText(); got != "b\na" {
		t.Errorf("Expected output to follow the update, got %q", got)
	}

	if err := s.UpdateStep(id, map[string]any{"order": nil}); err != nil {
		t.Fatalf("Update should succeed, got error: %v", err)
	}
	if _, ok := s.GetStep(id).Options["order"]; ok {
		t.Error("Expected nil to remove the option")
	}
	if got := s.GetOutputText(); got != "a\nb" {
		t.Errorf("Expected default order after removal, got %q", got)
	}
}

// TestUpdateNonexistentStep tests updating a step that doesn't exist
func TestUpdateNonexistentStep(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))

	if err := s.UpdateStep("nonexistent", map[string]any{"a": 1}); err == nil {
		t.Error("Expected error when updating nonexistent step")
	}
}

// TestRemoveStep tests removing a step
func TestRemoveStep(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))
	id1, _ := s.AddStep("case-converter", nil)
	id2, _ := s.AddStep("sort-text", nil)

	if err := s.RemoveStep(id2); err != nil {
		t.Fatalf("Remove should succeed, got error: %v", err)
	}
	if s.GetStep(id2) != nil {
		t.Error("Step should be gone")
	}
	if s.GetSelectedStepID() != "" {
		t.Error("Selection should be cleared when the selected step is removed")
	}
	if s.GetStep(id1) == nil {
		t.Error("Other steps should remain")
	}
	if err := s.RemoveStep(id2); err == nil {
		t.Error("Expected error when removing twice")
	}
}

// ============================================================================
// Move Tests
// ============================================================================

// TestMoveSteps tests reordering steps
func TestMoveSteps(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))
	s.SetInputText("Hello World")
	a, _ := s.AddStep("case-converter", map[string]any{"case": "upper"})
	b, _ := s.AddStep("case-converter", map[string]any{"case": "snake"})

	if got := s.GetOutputText(); got != "hello_world" {
		t.Errorf("Expected 'hello_world', got %q", got)
	}

	if s.CanMoveUp(a) || !s.CanMoveDown(a) {
		t.Error("First step can only move down")
	}
	if !s.CanMoveUp(b) || s.CanMoveDown(b) {
		t.Error("Last step can only move up")
	}
	if err := s.MoveUp(a); err == nil {
		t.Error("Expected error moving the first step up")
	}

	if err := s.MoveDown(a); err != nil {
		t.Fatalf("MoveDown failed: %v", err)
	}
	steps := s.GetSteps()
	if steps[0].ID != b || steps[1].ID != a {
		t.Errorf("Expected order %s, %s; got %s, %s", b, a, steps[0].ID, steps[1].ID)
	}
	if got := s.GetOutputText(); got != "HELLO_WORLD" {
		t.Errorf("Expected 'HELLO_WORLD' after reorder, got %q", got)
	}

	if err := s.MoveUp(a); err != nil {
		t.Fatalf("MoveUp failed: %v", err)
	}
	if s.GetSteps()[0].ID != a {
		t.Error("Expected original order after moving back")
	}
}

// ============================================================================
// Text Processing Tests
// ============================================================================

// TestSessionProcessing tests that input runs through the pipeline
func TestSessionProcessing(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))

	s.SetInputText("pear\napple\npear")
	if got := s.GetOutputText(); got != "pear\napple\npear" {
		t.Errorf("Empty pipeline should pass input through, got %q", got)
	}

	s.AddStep("remove-duplicates", nil)
	s.AddStep("sort-text", nil)
	if got := s.GetOutputText(); got != "apple\npear" {
		t.Errorf("Expected 'apple\\npear', got %q", got)
	}
	if s.GetInputText() != "pear\napple\npear" {
		t.Error("Input should be unchanged")
	}

	s.Clear()
	if len(s.GetSteps()) != 0 || s.GetOutputText() != s.GetInputText() {
		t.Error("Clear should empty the pipeline")
	}
}

// TestSessionError tests that a failing step keeps its error and no output
func TestSessionError(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))
	s.SetInputText("not base64!")
	s.AddStep("base64", map[string]any{"mode": "decode"})

	if s.Err() == nil {
		t.Fatal("Expected an error")
	}
	if s.GetOutputText() != "" {
		t.Errorf("Expected no output on error, got %q", s.GetOutputText())
	}
	msg := sessionError(s.Err())
	if !strings.HasPrefix(msg, "CODEC_ERROR: Step 1 (base64): ") {
		t.Errorf("Unexpected message %q", msg)
	}
}

// TestResolveStep tests step references by ID and by position
func TestResolveStep(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))
	s.AddStep("case-converter", nil)
	id, _ := s.AddStep("sort-text", nil)

	tests := []struct {
		input    string
		expected string
		desc     string
	}{
		{"step_1", id, "by ID"},
		{"2", id, "by position"},
		{"1", "step_0", "first position"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := s.ResolveStep(tt.input)
			if err != nil {
				t.Fatalf("ResolveStep failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}

	for _, bad := range []string{"0", "3", "step_9", ""} {
		if _, err := s.ResolveStep(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

// ============================================================================
// Import/Export Tests
// ============================================================================

// TestExportImport tests the pipeline round trip
func TestExportImport(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))
	s.AddStep("case-converter", map[string]any{"case": "upper"})
	s.AddStep("base64", nil)

	exported, err := s.ExportPipeline()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	other := NewSession(NewTextUtilsCore(nil))
	other.SetInputText("hi")
	if err := other.ImportPipeline(exported); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if got := other.GetOutputText(); got != "SEk=" {
		t.Errorf("Expected 'SEk=', got %q", got)
	}

	steps := other.GetSteps()
	if len(steps) != 2 || steps[0].ID != "step_0" || steps[1].ID != "step_1" {
		t.Errorf("Expected fresh step IDs, got %+v", steps)
	}
	id, _ := other.AddStep("trim-text", nil)
	if id != "step_2" {
		t.Errorf("Expected counter to continue after import, got %s", id)
	}
}

// TestImportInvalid tests that a bad pipeline leaves the session unchanged
func TestImportInvalid(t *testing.T) {
	s := NewSession(NewTextUtilsCore(nil))
	s.AddStep("case-converter", nil)

	tests := []struct {
		input string
		kind  operr.Kind
		desc  string
	}{
		{`{not json`, operr.InvalidInputFormat, "invalid JSON"},
		{`[{"operation":"nope"}]`, operr.UnsupportedOperation, "unknown operation"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := s.ImportPipeline(tt.input)
			if operr.KindOf(err) != tt.kind {
				t.Errorf("Expected %s, got %v", tt.kind, err)
			}
			if len(s.GetSteps()) != 1 {
				t.Error("Session should be unchanged")
			}
		})
	}
}
