package main

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/pstuifzand/go-textutils/transform"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Command represents a JSON command sent by a client
type Command struct {
	Action string                 `json:"action"`
	Params map[string]interface{} `json:"params"`
}

// Response represents a JSON response from command execution. Failed
// operations carry the error kind, and the input position when known.
type Response struct {
	Success   bool            `json:"success"`
	Result    interface{}     `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	ErrorKind operr.Kind      `json:"error_kind,omitempty"`
	Operation string          `json:"operation,omitempty"`
	Position  *operr.Position `json:"position,omitempty"`
	// Step is the one-based pipeline step that failed
	Step int `json:"step,omitempty"`
}

// DecodeCommand parses a command. Numbers in params are kept as json.Number
// so that integer options keep their exact value.
func DecodeCommand(data []byte) (Command, error) {
	var cmd Command
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&cmd); err != nil {
		return cmd, err
	}
	if cmd.Params == nil {
		cmd.Params = map[string]interface{}{}
	}
	return cmd, nil
}

// ExecuteCommand executes a JSON command and returns a JSON response
func (tc *TextUtilsCore) ExecuteCommand(cmdJSON string) string {
	cmd, err := DecodeCommand([]byte(cmdJSON))
	if err != nil {
		return toJSON(Response{Error: "Invalid JSON: " + err.Error()})
	}
	return toJSON(tc.Dispatch(cmd))
}

// Dispatch runs a decoded command
func (tc *TextUtilsCore) Dispatch(cmd Command) Response {
	switch cmd.Action {
	case "apply":
		return tc.cmdApply(cmd.Params)
	case "run_pipeline":
		return tc.cmdRunPipeline(cmd.Params)
	case "list_operations":
		return tc.cmdListOperations(cmd.Params)
	case "get_operation":
		return tc.cmdGetOperation(cmd.Params)
	case "list_categories":
		return tc.cmdListCategories(cmd.Params)
	case "search_operations":
		return tc.cmdSearchOperations(cmd.Params)
	default:
		return errorResponse(errors.New("Unknown action: " + cmd.Action))
	}
}

// ============================================================================
// Command Handlers
// ============================================================================

// cmdApply runs one utility
func (tc *TextUtilsCore) cmdApply(params map[string]interface{}) Response {
	operation := getStr(params, "operation", "")
	if operation == "" {
		return errorResponse(errors.New("Missing required parameter: operation"))
	}
	options, err := getMap(params, "options")
	if err != nil {
		return errorResponse(err)
	}

	output, err := tc.Apply(operation, getStr(params, "input", ""), options)
	if err != nil {
		return errorResponse(err)
	}
	return successResponse(map[string]interface{}{
		"output": output,
	})
}

// cmdRunPipeline runs a list of steps
func (tc *TextUtilsCore) cmdRunPipeline(params map[string]interface{}) Response {
	raw, ok := params["steps"]
	if !ok {
		return errorResponse(errors.New("Missing required parameter: steps"))
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return errorResponse(err)
	}
	steps, err := transform.ParsePipeline(string(data))
	if err != nil {
		return errorResponse(err)
	}

	output, err := tc.RunPipeline(getStr(params, "input", ""), steps)
	if err != nil {
		return errorResponse(err)
	}
	return successResponse(map[string]interface{}{
		"output": output,
	})
}

// cmdListOperations lists the utilities of a category or of the catalog
func (tc *TextUtilsCore) cmdListOperations(params map[string]interface{}) Response {
	utilities, err := tc.ListOperations(getStr(params, "category", ""))
	if err != nil {
		return errorResponse(err)
	}
	return successResponse(map[string]interface{}{
		"operations": utilities,
	})
}

// cmdGetOperation describes one utility
func (tc *TextUtilsCore) cmdGetOperation(params map[string]interface{}) Response {
	operation := getStr(params, "operation", "")
	if operation == "" {
		return errorResponse(errors.New("Missing required parameter: operation"))
	}
	u, err := tc.GetOperation(operation)
	if err != nil {
		return errorResponse(err)
	}
	return successResponse(map[string]interface{}{
		"operation": u,
	})
}

// cmdListCategories lists the categories
func (tc *TextUtilsCore) cmdListCategories(params map[string]interface{}) Response {
	categories, _ := tc.ListCategories()
	return successResponse(map[string]interface{}{
		"categories": categories,
	})
}

// cmdSearchOperations searches the catalog
func (tc *TextUtilsCore) cmdSearchOperations(params map[string]interface{}) Response {
	results, _ := tc.SearchOperations(getStr(params, "query", ""))
	return successResponse(map[string]interface{}{
		"operations": results,
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

// getStr safely extracts a string parameter, with a default value
func getStr(params map[string]interface{}, key, defaultValue string) string {
	if val, ok := params[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// getMap extracts an object parameter. A missing or null value is nil.
func getMap(params map[string]interface{}, key string) (map[string]interface{}, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return nil, nil
	}
	m, ok := val.(map[string]interface{})
	if !ok {
		return nil, operr.Config("", "Parameter %s must be an object.", key)
	}
	return m, nil
}

// toJSON converts a value to JSON string
func toJSON(v interface{}) string {
	data, _ := json.Marshal(v)
	return string(data)
}

// successResponse creates a successful response
func successResponse(result interface{}) Response {
	return Response{
		Success: true,
		Result:  result,
	}
}

// errorResponse creates an error response, copying kind, operation and
// position from operation errors
func errorResponse(err error) Response {
	resp := Response{
		Success: false,
		Error:   err.Error(),
	}
	var stepErr *transform.StepError
	if errors.As(err, &stepErr) {
		resp.Step = stepErr.Step
	}
	if e, ok := operr.As(err); ok {
		resp.ErrorKind = e.Kind
		resp.Operation = e.Op
		resp.Position = e.Pos
	}
	return resp
}
