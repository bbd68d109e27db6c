package jsonfmt

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// ToTOML converts a JSON object to a TOML document. TOML tables are written
// with their keys sorted.
func ToTOML(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	v, err := parse(input, "json-to-toml")
	if err != nil {
		return "", err
	}
	if v.Kind != Object {
		return "", operr.Unsupported("json-to-toml", "TOML output requires a JSON object at the top level")
	}
	if path := findNull(v, ""); path != "" {
		return "", operr.Unsupported("json-to-toml", "TOML has no null value (found at %s)", path)
	}

	doc, err := v.Native()
	if err != nil {
		return "", operr.Wrap(operr.InvalidInputFormat, "json-to-toml", "Invalid JSON number: "+err.Error(), err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return "", operr.Wrap(operr.UnsupportedOperation, "json-to-toml", "Failed to encode TOML: "+err.Error(), err)
	}
	return buf.String(), nil
}

// findNull returns the path of the first null value, or ""
func findNull(v *Value, path string) string {
	switch v.Kind {
	case Null:
		if path == "" {
			return "$"
		}
		return path
	case Array:
		for i, item := range v.Items {
			if p := findNull(item, path+"["+strconv.Itoa(i)+"]"); p != "" {
				return p
			}
		}
	case Object:
		for _, m := range v.Members {
			p := m.Key
			if path != "" {
				p = path + "." + m.Key
			}
			if found := findNull(m.Value, p); found != "" {
				return found
			}
		}
	}
	return ""
}
