package transform

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// OptionType is the value type of an option
type OptionType string

const (
	StringOption OptionType = "string"
	// TextOption is a string that may span several lines, such as the second
	// text of a diff
	TextOption OptionType = "text"
	BoolOption OptionType = "bool"
	IntOption  OptionType = "int"
)

// Option describes one configurable setting of a utility
type Option struct {
	Name        string     `json:"name"`
	Type        OptionType `json:"type"`
	Default     any        `json:"default"`
	Choices     []string   `json:"choices,omitempty"`
	Description string     `json:"description"`

	// normalize replaces the choices check for options that accept aliases
	normalize func(string) (string, error)
}

// Values holds the decoded options of one call. Every option of the utility
// is present, either as given or as its default.
type Values map[string]any

// String returns a string option
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Bool returns a bool option
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Int returns an int option
func (v Values) Int(name string) int {
	n, _ := v[name].(int)
	return n
}

// decodeOptions checks raw against the option schema of u, coerces the
// values to their declared types and fills in defaults
func decodeOptions(u *Utility, raw map[string]any) (Values, error) {
	known := make(map[string]*Option, len(u.Options))
	values := make(Values, len(u.Options))
	for i := range u.Options {
		opt := &u.Options[i]
		known[opt.Name] = opt
		values[opt.Name] = opt.Default
	}

	// sorted so the first reported problem does not depend on map order
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		opt, ok := known[name]
		if !ok {
			return nil, operr.Config(u.ID, "Unknown option %q for %s.", name, u.Name)
		}
		v, err := coerce(opt, raw[name])
		if err != nil {
			return nil, operr.Config(u.ID, "Option %q: %s", name, err.Error())
		}
		values[name] = v
	}
	return values, nil
}

func coerce(opt *Option, raw any) (any, error) {
	if raw == nil {
		return opt.Default, nil
	}
	switch opt.Type {
	case StringOption, TextOption:
		var s string
		switch v := raw.(type) {
		case string:
			s = v
		case json.Number:
			s = v.String()
		case float64, int, int64, bool:
			s = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("expected a string, got %T.", raw)
		}
		if opt.normalize != nil {
			return opt.normalize(s)
		}
		if len(opt.Choices) > 0 {
			for _, c := range opt.Choices {
				if strings.EqualFold(c, strings.TrimSpace(s)) {
					return c, nil
				}
			}
			return nil, fmt.Errorf("%q is not one of %s.", s, strings.Join(opt.Choices, ", "))
		}
		return s, nil

	case BoolOption:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "1", "true", "yes", "on":
				return true, nil
			case "0", "false", "no", "off", "":
				return false, nil
			}
			return nil, fmt.Errorf("%q is not a boolean.", v)
		}
		return nil, fmt.Errorf("expected a boolean, got %T.", raw)

	case IntOption:
		switch v := raw.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
				return nil, fmt.Errorf("%v is not a whole number.", v)
			}
			return int(v), nil
		case json.Number:
			n, err := strconv.Atoi(v.String())
			if err != nil {
				return nil, fmt.Errorf("%s is not a whole number.", v)
			}
			return n, nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("%q is not a whole number.", v)
			}
			return n, nil
		}
		return nil, fmt.Errorf("expected a number, got %T.", raw)
	}
	return nil, fmt.Errorf("unsupported option type %s.", opt.Type)
}

// ParseAssignments turns key=value arguments into an options map. Values stay
// strings; Apply coerces them to the declared option types.
func ParseAssignments(args []string) (map[string]any, error) {
	opts := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, operr.Config("", "Expected key=value, got %q.", arg)
		}
		opts[key] = value
	}
	return opts, nil
}

// CanonicalDefaults checks per-utility default options, as read from a
// configuration file, and returns them keyed by canonical option names.
// Option names match case-insensitively since configuration loaders may
// lowercase keys. Values are coerced to their declared types.
func CanonicalDefaults(defaults map[string]map[string]any) (map[string]map[string]any, error) {
	if len(defaults) == 0 {
		return nil, nil
	}
	out := make(map[string]map[string]any, len(defaults))
	for id, raw := range defaults {
		u, ok := Lookup(strings.ToLower(id))
		if !ok {
			return nil, operr.Config("", "Unknown operation %q in defaults.", id)
		}

		opts := make(map[string]any, len(raw))
		for name, v := range raw {
			canonical := name
			for _, o := range u.Options {
				if strings.EqualFold(o.Name, name) {
					canonical = o.Name
					break
				}
			}
			opts[canonical] = v
		}
		values, err := decodeOptions(u, opts)
		if err != nil {
			return nil, err
		}

		checked := make(map[string]any, len(opts))
		for name := range opts {
			checked[name] = values[name]
		}
		out[u.ID] = checked
	}
	return out, nil
}
