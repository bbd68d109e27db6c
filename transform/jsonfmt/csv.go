package jsonfmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// FromCSV turns comma-separated text into a JSON array of objects. The first
// record names the fields; records with a different number of fields are
// skipped. Every value is a string.
func FromCSV(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	r := csv.NewReader(strings.NewReader(input))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return "", csvError(err)
	}

	out := &Value{Kind: Array, Items: []*Value{}}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", csvError(err)
		}
		if len(record) != len(header) {
			continue
		}
		obj := &Value{Kind: Object}
		index := make(map[string]int, len(header))
		for i, name := range header {
			obj.set(name, &Value{Kind: String, Text: record[i]}, index)
		}
		out.Items = append(out.Items, obj)
	}
	return Marshal(out, 2), nil
}

func csvError(err error) *operr.Error {
	e := operr.Wrap(operr.InvalidInputFormat, "csv-to-json", fmt.Sprintf("Invalid CSV: %v", err), err)
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		e.WithPosition(operr.Position{Line: pe.Line, Column: pe.Column})
	}
	return e
}
