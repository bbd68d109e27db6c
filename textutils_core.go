package main

import (
	"github.com/pstuifzand/go-textutils/transform"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

// TextUtilsCore is the headless core that serves the catalog. It holds no
// per-call state, so one core can serve any number of clients at once.
type TextUtilsCore struct {
	runner *transform.Runner
}

// NewTextUtilsCore creates a core. defaults holds per-utility options from
// the configuration and may be nil.
func NewTextUtilsCore(defaults map[string]map[string]any) *TextUtilsCore {
	return &TextUtilsCore{
		runner: &transform.Runner{Defaults: defaults},
	}
}

// ============================================================================
// Processing Methods
// ============================================================================

// Apply runs one utility over input
func (tc *TextUtilsCore) Apply(operation, input string, options map[string]any) (string, error) {
	return tc.runner.Apply(operation, input, options)
}

// RunPipeline feeds input through every step of the pipeline
func (tc *TextUtilsCore) RunPipeline(input string, steps transform.Pipeline) (string, error) {
	if err := steps.Validate(); err != nil {
		return "", err
	}
	return tc.runner.Run(steps, input)
}

// ============================================================================
// Catalog Methods
// ============================================================================

// ListCategories returns every category in display order
func (tc *TextUtilsCore) ListCategories() ([]CategoryInfo, error) {
	cats := transform.Categories()
	infos := make([]CategoryInfo, len(cats))
	for i, cat := range cats {
		ids := make([]string, len(cat.Utilities))
		for j, u := range cat.Utilities {
			ids[j] = u.ID
		}
		infos[i] = CategoryInfo{ID: cat.ID, Name: cat.Name, Description: cat.Description, Utilities: ids}
	}
	return infos, nil
}

// ListOperations returns the utilities of a category, or all of them
func (tc *TextUtilsCore) ListOperations(category string) ([]*transform.Utility, error) {
	if category == "" {
		return transform.All(), nil
	}
	cat := transform.CategoryByID(category)
	if cat == nil {
		return nil, operr.Config("", "Unknown category %q.", category)
	}
	return cat.Utilities, nil
}

// GetOperation returns one utility
func (tc *TextUtilsCore) GetOperation(operation string) (*transform.Utility, error) {
	u, ok := transform.Lookup(operation)
	if !ok {
		return nil, operr.Unsupported(operation, "Unknown operation %q.", operation)
	}
	return u, nil
}

// SearchOperations finds utilities matching query
func (tc *TextUtilsCore) SearchOperations(query string) ([]*transform.Utility, error) {
	return transform.Search(query), nil
}
