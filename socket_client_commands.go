package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pstuifzand/go-textutils/transform"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

// SocketClientCommands wraps a SocketClient to implement the TextUtilsCommands interface.
// This allows the REPL to use the same interface whether connected to a socket server
// or using TextUtilsCore directly.
type SocketClientCommands struct {
	client *SocketClient
}

// NewSocketClientCommands creates a new socket client wrapper
func NewSocketClientCommands(client *SocketClient) *SocketClientCommands {
	return &SocketClientCommands{client: client}
}

// ============================================================================
// Processing Methods
// ============================================================================

// Apply implements TextUtilsCommands.Apply
func (s *SocketClientCommands) Apply(operation, input string, options map[string]any) (string, error) {
	var result struct {
		Output string `json:"output"`
	}
	err := s.call("apply", map[string]interface{}{
		"operation": operation,
		"input":     input,
		"options":   options,
	}, &result)
	return result.Output, err
}

// RunPipeline implements TextUtilsCommands.RunPipeline
func (s *SocketClientCommands) RunPipeline(input string, steps transform.Pipeline) (string, error) {
	if steps == nil {
		steps = transform.Pipeline{}
	}
	var result struct {
		Output string `json:"output"`
	}
	err := s.call("run_pipeline", map[string]interface{}{
		"input": input,
		"steps": steps,
	}, &result)
	return result.Output, err
}

// ============================================================================
// Catalog Methods
// ============================================================================

// ListCategories implements TextUtilsCommands.ListCategories
func (s *SocketClientCommands) ListCategories() ([]CategoryInfo, error) {
	var result struct {
		Categories []CategoryInfo `json:"categories"`
	}
	err := s.call("list_categories", nil, &result)
	return result.Categories, err
}

// ListOperations implements TextUtilsCommands.ListOperations
func (s *SocketClientCommands) ListOperations(category string) ([]*transform.Utility, error) {
	var result struct {
		Operations []*transform.Utility `json:"operations"`
	}
	err := s.call("list_operations", map[string]interface{}{
		"category": category,
	}, &result)
	return result.Operations, err
}

// GetOperation implements TextUtilsCommands.GetOperation
func (s *SocketClientCommands) GetOperation(operation string) (*transform.Utility, error) {
	var result struct {
		Operation *transform.Utility `json:"operation"`
	}
	err := s.call("get_operation", map[string]interface{}{
		"operation": operation,
	}, &result)
	return result.Operation, err
}

// SearchOperations implements TextUtilsCommands.SearchOperations
func (s *SocketClientCommands) SearchOperations(query string) ([]*transform.Utility, error) {
	var result struct {
		Operations []*transform.Utility `json:"operations"`
	}
	err := s.call("search_operations", map[string]interface{}{
		"query": query,
	}, &result)
	return result.Operations, err
}

// ============================================================================
// Helper Functions
// ============================================================================

// call sends one command and decodes the result into out
func (s *SocketClientCommands) call(action string, params map[string]interface{}, out interface{}) error {
	if params == nil {
		params = map[string]interface{}{}
	}
	resp, err := s.client.Execute(Command{Action: action, Params: params})
	if err != nil {
		return fmt.Errorf("socket error: %w", err)
	}
	if !resp.Success {
		return responseError(action, resp)
	}

	// The result arrives as generic JSON; round-trip it into the typed value
	data, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: failed to parse result: %w", action, err)
	}
	return nil
}

// responseError rebuilds the error carried by a failed response, so that
// callers see the same error kinds as with a local core
func responseError(action string, resp *Response) error {
	if resp.ErrorKind == "" {
		if resp.Error == "" {
			return fmt.Errorf("%s failed with unknown error", action)
		}
		return fmt.Errorf("%s", resp.Error)
	}

	e := operr.New(resp.ErrorKind, resp.Operation, resp.Error)
	e.Pos = resp.Position
	if resp.Step > 0 {
		// The server renders "Step N (op): message"; split it back so the
		// step error reads the same on both sides
		stepOp, msg := splitStepMessage(resp.Error, resp.Step)
		e.Message = msg
		return &transform.StepError{Step: resp.Step, Operation: stepOp, Err: e}
	}
	return e
}

// splitStepMessage separates the step operation and the inner message of a
// rendered StepError
func splitStepMessage(msg string, step int) (string, string) {
	prefix := fmt.Sprintf("Step %d (", step)
	if !strings.HasPrefix(msg, prefix) {
		return "", msg
	}
	rest := msg[len(prefix):]
	end := strings.Index(rest, "): ")
	if end < 0 {
		return "", msg
	}
	return rest[:end], rest[end+3:]
}
