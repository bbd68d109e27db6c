package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// decodeResponse parses a JSON response produced by ExecuteCommand
func decodeResponse(t *testing.T, data string) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v\n%s", err, data)
	}
	return resp
}

// resultField returns one field of a successful result
func resultField(t *testing.T, resp Response, key string) interface{} {
	t.Helper()
	if !resp.Success {
		t.Fatalf("Expected success, got error %q", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected result object, got %T", resp.Result)
	}
	return result[key]
}

// ============================================================================
// Processing Tests
// ============================================================================

func TestExecuteApply(t *testing.T) {
	core := NewTextUtilsCore(nil)

	tests := []struct {
		command  string
		expected string
		desc     string
	}{
		{
			`{"action":"apply","params":{"operation":"case-converter","input":"hello world","options":{"case":"upper"}}}`,
			"HELLO WORLD",
			"case converter with options",
		},
		{
			`{"action":"apply","params":{"operation":"case-converter","input":"Hello World"}}`,
			"hello world",
			"default options",
		},
		{
			`{"action":"apply","params":{"operation":"number-conversion","input":"255","options":{"to":"hex"}}}`,
			"FF",
			"number conversion",
		},
		{
			`{"action":"apply","params":{"operation":"json-formatter","input":"[1]","options":{"indent":4}}}`,
			"[\n    1\n]",
			"integer option from a JSON number",
		},
		{
			`{"action":"apply","params":{"operation":"sort-text","input":"","options":{}}}`,
			"",
			"empty input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			resp := decodeResponse(t, core.ExecuteCommand(tt.command))
			if got := resultField(t, resp, "output"); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestExecuteApplyErrors(t *testing.T) {
	core := NewTextUtilsCore(nil)

	tests := []struct {
		command   string
		kind      operr.Kind
		operation string
		desc      string
	}{
		{
			`{"action":"apply","params":{"operation":"number-conversion","input":"12z"}}`,
			operr.InvalidInputFormat, "number-conversion", "invalid number",
		},
		{
			`{"action":"apply","params":{"operation":"base64","input":"@@","options":{"mode":"decode"}}}`,
			operr.CodecError, "base64", "bad base64",
		},
		{
			`{"action":"apply","params":{"operation":"no-such-tool","input":"x"}}`,
			operr.UnsupportedOperation, "no-such-tool", "unknown operation",
		},
		{
			`{"action":"apply","params":{"operation":"pdf-conversion","input":"x"}}`,
			operr.UnsupportedOperation, "pdf-conversion", "unavailable operation",
		},
		{
			`{"action":"apply","params":{"operation":"case-converter","input":"x","options":{"bogus":1}}}`,
			operr.ConfigurationError, "case-converter", "unknown option",
		},
		{
			`{"action":"apply","params":{"operation":"case-converter","input":"x","options":"upper"}}`,
			operr.ConfigurationError, "", "options not an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			resp := decodeResponse(t, core.ExecuteCommand(tt.command))
			if resp.Success {
				t.Fatal("Expected failure")
			}
			if resp.ErrorKind != tt.kind {
				t.Errorf("Expected kind %s, got %s (%s)", tt.kind, resp.ErrorKind, resp.Error)
			}
			if resp.Operation != tt.operation {
				t.Errorf("Expected operation %q, got %q", tt.operation, resp.Operation)
			}
			if resp.Error == "" {
				t.Error("Expected an error message")
			}
		})
	}
}

func TestExecuteApplyPosition(t *testing.T) {
	core := NewTextUtilsCore(nil)

	resp := decodeResponse(t, core.ExecuteCommand(
		`{"action":"apply","params":{"operation":"number-conversion","input":"12z"}}`))
	if resp.Position == nil {
		t.Fatal("Expected a position")
	}
	if resp.Position.Offset != 2 || resp.Position.Line != 1 || resp.Position.Column != 3 {
		t.Errorf("Expected offset 2 at 1:3, got %+v", *resp.Position)
	}
}

func TestExecuteRunPipeline(t *testing.T) {
	core := NewTextUtilsCore(nil)

	resp := decodeResponse(t, core.ExecuteCommand(`{"action":"run_pipeline","params":{
		"input":"b\na\nb",
		"steps":[
			{"operation":"remove-duplicates"},
			{"operation":"sort-text"},
			{"operation":"case-converter","options":{"case":"upper"}}
		]}}`))
	if got := resultField(t, resp, "output"); got != "A\nB" {
		t.Errorf("Expected %q, got %q", "A\nB", got)
	}
}

func TestExecuteRunPipelineErrors(t *testing.T) {
	core := NewTextUtilsCore(nil)

	tests := []struct {
		command string
		kind    operr.Kind
		step    int
		desc    string
	}{
		{
			`{"action":"run_pipeline","params":{"input":"a@b","steps":[{"operation":"case-converter"},{"operation":"base64","options":{"mode":"decode"}}]}}`,
			operr.CodecError, 2, "failing second step",
		},
		{
			`{"action":"run_pipeline","params":{"input":"hi","steps":[{"operation":"nope"}]}}`,
			operr.UnsupportedOperation, 1, "unknown operation",
		},
		{
			`{"action":"run_pipeline","params":{"input":"hi","steps":{"operation":"nope"}}}`,
			operr.InvalidInputFormat, 0, "steps not a list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			resp := decodeResponse(t, core.ExecuteCommand(tt.command))
			if resp.Success {
				t.Fatal("Expected failure")
			}
			if resp.ErrorKind != tt.kind {
				t.Errorf("Expected kind %s, got %s (%s)", tt.kind, resp.ErrorKind, resp.Error)
			}
			if resp.Step != tt.step {
				t.Errorf("Expected step %d, got %d", tt.step, resp.Step)
			}
		})
	}
}

func TestExecuteMissingSteps(t *testing.T) {
	core := NewTextUtilsCore(nil)

	resp := decodeResponse(t, core.ExecuteCommand(`{"action":"run_pipeline","params":{"input":"x"}}`))
	if resp.Success || !strings.Contains(resp.Error, "steps") {
		t.Errorf("Expected missing steps error, got %+v", resp)
	}
}

// ============================================================================
// Catalog Tests
// ============================================================================

func TestExecuteListCategories(t *testing.T) {
	core := NewTextUtilsCore(nil)

	resp := decodeResponse(t, core.ExecuteCommand(`{"action":"list_categories"}`))
	categories, ok := resultField(t, resp, "categories").([]interface{})
	if !ok || len(categories) == 0 {
		t.Fatalf("Expected categories, got %v", resp.Result)
	}
	first := categories[0].(map[string]interface{})
	if first["id"] != "text-manipulation" {
		t.Errorf("Expected text-manipulation first, got %v", first["id"])
	}
}

func TestExecuteListOperations(t *testing.T) {
	core := NewTextUtilsCore(nil)

	resp := decodeResponse(t, core.ExecuteCommand(`{"action":"list_operations","params":{"category":"encoding"}}`))
	ops, ok := resultField(t, resp, "operations").([]interface{})
	if !ok || len(ops) == 0 {
		t.Fatalf("Expected operations, got %v", resp.Result)
	}
	for _, op := range ops {
		if cat := op.(map[string]interface{})["category"]; cat != "encoding" {
			t.Errorf("Expected only encoding utilities, got %v", cat)
		}
	}

	resp = decodeResponse(t, core.ExecuteCommand(`{"action":"list_operations","params":{"category":"nope"}}`))
	if resp.Success || resp.ErrorKind != operr.ConfigurationError {
		t.Errorf("Expected configuration error for unknown category, got %+v", resp)
	}
}

func TestExecuteGetOperation(t *testing.T) {
	core := NewTextUtilsCore(nil)

	resp := decodeResponse(t, core.ExecuteCommand(`{"action":"get_operation","params":{"operation":"base64"}}`))
	op, ok := resultField(t, resp, "operation").(map[string]interface{})
	if !ok {
		t.Fatalf("Expected operation object, got %v", resp.Result)
	}
	if op["id"] != "base64" || op["supported"] != true {
		t.Errorf("Unexpected operation: %v", op)
	}

	resp = decodeResponse(t, core.ExecuteCommand(`{"action":"get_operation","params":{}}`))
	if resp.Success {
		t.Error("Expected failure without operation")
	}
}

func TestExecuteSearchOperations(t *testing.T) {
	core := NewTextUtilsCore(nil)

	resp := decodeResponse(t, core.ExecuteCommand(`{"action":"search_operations","params":{"query":"json"}}`))
	ops, ok := resultField(t, resp, "operations").([]interface{})
	if !ok || len(ops) == 0 {
		t.Fatalf("Expected results, got %v", resp.Result)
	}
	if id := ops[0].(map[string]interface{})["id"]; id != "json-formatter" {
		t.Errorf("Expected json-formatter first, got %v", id)
	}

	resp = decodeResponse(t, core.ExecuteCommand(`{"action":"search_operations","params":{"query":""}}`))
	if ops, _ := resultField(t, resp, "operations").([]interface{}); len(ops) != 0 {
		t.Errorf("Expected no results for empty query, got %d", len(ops))
	}
}

// ============================================================================
// Protocol Tests
// ============================================================================

func TestExecuteInvalidJSON(t *testing.T) {
	core := NewTextUtilsCore(nil)

	resp := decodeResponse(t, core.ExecuteCommand(`{not json`))
	if resp.Success || !strings.HasPrefix(resp.Error, "Invalid JSON") {
		t.Errorf("Expected invalid JSON error, got %+v", resp)
	}
}

func TestExecuteUnknownAction(t *testing.T) {
	core := NewTextUtilsCore(nil)

	resp := decodeResponse(t, core.ExecuteCommand(`{"action":"create_node","params":{}}`))
	if resp.Success || resp.Error != "Unknown action: create_node" {
		t.Errorf("Expected unknown action error, got %+v", resp)
	}
}

func TestCoreDefaults(t *testing.T) {
	core := NewTextUtilsCore(map[string]map[string]any{
		"case-converter": {"case": "upper"},
	})

	got, err := core.Apply("case-converter", "abc", nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got != "ABC" {
		t.Errorf("Expected configured default to apply, got %q", got)
	}

	got, err = core.Apply("case-converter", "abc", map[string]any{"case": "title"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got != "Abc" {
		t.Errorf("Expected explicit option to win, got %q", got)
	}
}
