package jsonfmt

import (
	"strconv"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

const selectOp = "json-select"

// Select returns the value at path inside the JSON input. The path uses dot
// notation with numeric array indexes, either as a segment ("items.0.name")
// or in brackets ("items[0].name"). An empty path selects the whole
// document. Strings are returned without quotes, containers are pretty
// printed, and a path that leads nowhere gives empty output.
func Select(input, path string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	v, err := parse(input, selectOp)
	if err != nil {
		return "", err
	}
	segments, err := splitPath(path)
	if err != nil {
		return "", err
	}

	for _, seg := range segments {
		switch v.Kind {
		case Object:
			v = v.Get(seg)
		case Array:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(v.Items) {
				return "", nil
			}
			v = v.Items[i]
		default:
			v = nil
		}
		if v == nil {
			return "", nil
		}
	}

	if v.Kind == String {
		return v.Text, nil
	}
	return Marshal(v, 2), nil
}

func splitPath(path string) ([]string, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "$")
	var segments []string
	for _, part := range strings.Split(path, ".") {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				segments = append(segments, part)
				break
			}
			if open > 0 {
				segments = append(segments, part[:open])
			}
			end := strings.IndexByte(part[open:], ']')
			if end < 0 {
				return nil, operr.Config(selectOp, "Unclosed [ in path %q.", path)
			}
			segments = append(segments, part[open+1:open+end])
			part = part[open+end+1:]
		}
	}
	return segments, nil
}
