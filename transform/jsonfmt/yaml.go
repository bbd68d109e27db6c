package jsonfmt

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

var intLiteralRe = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// ToYAML converts a JSON document to block-style YAML, keeping member order
func ToYAML(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	v, err := parse(input, "json-to-yaml")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(v)); err != nil {
		return "", operr.Wrap(operr.UnsupportedOperation, "json-to-yaml", "Failed to encode YAML: "+err.Error(), err)
	}
	if err := enc.Close(); err != nil {
		return "", operr.Wrap(operr.UnsupportedOperation, "json-to-yaml", "Failed to encode YAML: "+err.Error(), err)
	}
	return buf.String(), nil
}

func yamlNode(v *Value) *yaml.Node {
	switch v.Kind {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		val := "false"
		if v.Bool {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}
	case Number:
		tag := "!!float"
		if intLiteralRe.MatchString(v.Text) {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Text}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text}
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(v.Items) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, item := range v.Items {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	default:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if len(v.Members) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, m := range v.Members {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				yamlNode(m.Value))
		}
		return n
	}
}
