package transform_test

import (
	"fmt"

	"github.com/pstuifzand/go-textutils/transform"
	"github.com/pstuifzand/go-textutils/transform/operr"
)

func ExampleApply() {
	out, err := transform.Apply("case-converter", "hello world", map[string]any{"case": "pascal"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)

	_, err = transform.Apply("number-conversion", "12z", map[string]any{"from": "decimal", "to": "hex"})
	fmt.Println(operr.KindOf(err))
	// Output:
	// HelloWorld
	// INVALID_INPUT_FORMAT
}

func ExampleRunPipeline() {
	p := transform.Pipeline{
		{Operation: "remove-duplicates"},
		{Operation: "sort-text", Options: map[string]any{"order": "descending"}},
		{Operation: "case-converter", Options: map[string]any{"case": "upper"}},
	}
	out, err := transform.RunPipeline(p, "pear\napple\npear\nfig")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)
	// Output:
	// PEAR
	// FIG
	// APPLE
}

func ExampleSearch() {
	for _, u := range transform.Search("yaml") {
		fmt.Println(u.ID)
	}
	// Output:
	// json-to-yaml
}
