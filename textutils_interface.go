package main

import "github.com/pstuifzand/go-textutils/transform"

// TextUtilsCommands defines the interface for all catalog operations.
// Both TextUtilsCore (direct implementation) and SocketClientCommands (socket wrapper)
// implement this interface, so the REPL works the same against either.
type TextUtilsCommands interface {
	// =========================================================================
	// Processing - Run utilities over text
	// =========================================================================

	// Apply runs one utility over input with the given options
	Apply(operation, input string, options map[string]any) (string, error)

	// RunPipeline feeds input through every step in order
	RunPipeline(input string, steps transform.Pipeline) (string, error)

	// =========================================================================
	// Catalog - Browse and search the available utilities
	// =========================================================================

	// ListCategories returns the categories with their utility ids
	ListCategories() ([]CategoryInfo, error)

	// ListOperations returns the utilities of one category, or all of them
	// when category is empty
	ListOperations(category string) ([]*transform.Utility, error)

	// GetOperation returns the full description of a utility
	GetOperation(operation string) (*transform.Utility, error)

	// SearchOperations finds utilities by name, description and keywords
	SearchOperations(query string) ([]*transform.Utility, error)
}

// CategoryInfo is the summary of a category sent over the wire
type CategoryInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Utilities   []string `json:"utilities"`
}
