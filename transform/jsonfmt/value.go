package jsonfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Kind is the JSON type of a Value
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Member is one key/value pair of an object
type Member struct {
	Key   string
	Value *Value
}

// Value is a parsed JSON value. Objects keep their members in input order and
// numbers keep their literal text.
type Value struct {
	Kind    Kind
	Bool    bool
	Text    string // number literal or string contents
	Items   []*Value
	Members []Member
}

// Get returns the member value for key, or nil
func (v *Value) Get(key string) *Value {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// set replaces an existing member in place or appends a new one
func (v *Value) set(key string, val *Value, index map[string]int) {
	if i, ok := index[key]; ok {
		v.Members[i].Value = val
		return
	}
	index[key] = len(v.Members)
	v.Members = append(v.Members, Member{Key: key, Value: val})
}

// Parse reads a single JSON document. Errors are InvalidInputFormat with the
// position of the failure.
func Parse(input string) (*Value, error) {
	return parse(input, "json-formatter")
}

func parse(input, op string) (*Value, error) {
	// Validate the whole text first so every syntax error carries an
	// absolute offset.
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return nil, syntaxError(input, op, err)
	}

	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	v, err := readValue(dec)
	if err != nil {
		return nil, syntaxError(input, op, err)
	}
	return v, nil
}

func readValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &Value{Kind: Object, Members: []Member{}}
			index := make(map[string]int)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", describe(kt))
				}
				val, err := readValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, val, index)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := &Value{Kind: Array, Items: []*Value{}}
			for dec.More() {
				item, err := readValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Items = append(arr.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected %q", rune(t))
	case string:
		return &Value{Kind: String, Text: t}, nil
	case json.Number:
		return &Value{Kind: Number, Text: t.String()}, nil
	case bool:
		return &Value{Kind: Bool, Bool: t}, nil
	case nil:
		return &Value{Kind: Null}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func describe(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", rune(t))
	case string:
		return fmt.Sprintf("string %q", t)
	case nil:
		return "null"
	}
	return fmt.Sprint(tok)
}

func syntaxError(input, op string, err error) *operr.Error {
	offset := len(input)
	msg := err.Error()

	var se *json.SyntaxError
	if errors.As(err, &se) && se.Error() != "unexpected end of JSON input" {
		// Offsets count the offending byte itself.
		offset = int(se.Offset) - 1
		if offset < 0 {
			offset = 0
		}
	}

	pos := operr.PositionAt(input, offset)
	return operr.Wrap(operr.InvalidInputFormat, op,
		fmt.Sprintf("Invalid JSON at %s: %s", pos, msg), err).WithPosition(pos)
}

// SortKeys orders the members of every object by key, recursing through
// arrays. Array order is kept.
func SortKeys(v *Value) {
	switch v.Kind {
	case Object:
		sort.SliceStable(v.Members, func(i, j int) bool {
			return v.Members[i].Key < v.Members[j].Key
		})
		for _, m := range v.Members {
			SortKeys(m.Value)
		}
	case Array:
		for _, item := range v.Items {
			SortKeys(item)
		}
	}
}

// Native converts v into plain Go values (map[string]any, []any, string,
// bool, nil, int64 or float64) for encoders that do not need key order.
func (v *Value) Native() (any, error) {
	switch v.Kind {
	case Null:
		return nil, nil
	case Bool:
		return v.Bool, nil
	case String:
		return v.Text, nil
	case Number:
		n := json.Number(v.Text)
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		return n.Float64()
	case Array:
		out := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			x, err := item.Native()
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	case Object:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			x, err := m.Value.Native()
			if err != nil {
				return nil, err
			}
			out[m.Key] = x
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown JSON kind %d", v.Kind)
}
