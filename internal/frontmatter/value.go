package frontmatter

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/crypdick/obsidian-tools/internal/dates"
)

// Kind classifies a front matter value.
type Kind int

const (
	KindScalar Kind = iota
	KindList
	KindMapping
)

// Value is one YAML value from a front matter block. It keeps the parsed
// node so that re-serialization reproduces the author's spelling: quoting
// style, flow vs block lists, comments, and date formats all survive a
// merge untouched.
type Value struct {
	node *yaml.Node
}

func newValue(n *yaml.Node) Value {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return Value{node: n}
}

func newListValue(items []Value, style yaml.Style) Value {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: style}
	for _, item := range items {
		n.Content = append(n.Content, item.node)
	}
	return Value{node: n}
}

// ParseValue parses a YAML fragment into a Value. An empty fragment parses
// as null.
func ParseValue(s string) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return Value{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return newValue(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}), nil
	}
	return newValue(doc.Content[0]), nil
}

// Kind returns the value's shape: scalar, list, or mapping.
func (v Value) Kind() Kind {
	if v.node == nil {
		return KindScalar
	}
	switch v.node.Kind {
	case yaml.SequenceNode:
		return KindList
	case yaml.MappingNode:
		return KindMapping
	default:
		return KindScalar
	}
}

// IsNull returns true for null values, including the zero Value.
func (v Value) IsNull() bool {
	if v.node == nil {
		return true
	}
	return v.node.Kind == yaml.ScalarNode && v.node.Tag == "!!null"
}

// AsString returns the scalar's source text, if the value is a scalar.
func (v Value) AsString() (string, bool) {
	if v.node == nil || v.node.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.node.Value, true
}

// AsList returns the list items, if the value is a list.
func (v Value) AsList() ([]Value, bool) {
	if v.node == nil || v.node.Kind != yaml.SequenceNode {
		return nil, false
	}
	items := make([]Value, 0, len(v.node.Content))
	for _, c := range v.node.Content {
		items = append(items, newValue(c))
	}
	return items, true
}

// Timestamp interprets the value as a date or datetime. Both native YAML
// timestamps and quoted strings that parse as dates count; everything else
// returns false.
func (v Value) Timestamp() (time.Time, bool) {
	if v.node == nil || v.node.Kind != yaml.ScalarNode {
		return time.Time{}, false
	}
	switch v.node.Tag {
	case "!!timestamp", "!!str", "":
		return dates.ParseTimestamp(v.node.Value)
	}
	return time.Time{}, false
}

// canonical decodes the node into plain Go values so structurally equal
// values compare equal regardless of quoting or layout.
func (v Value) canonical() (interface{}, bool) {
	if v.node == nil {
		return nil, true
	}
	var out interface{}
	if err := v.node.Decode(&out); err != nil {
		return nil, false
	}
	return out, true
}

// Equal reports whether two values decode to the same canonical YAML value.
// Undecodable values never compare equal; the merge keeps them as separate
// candidates so the caller decides.
func (v Value) Equal(o Value) bool {
	a, okA := v.canonical()
	b, okB := o.canonical()
	if !okA || !okB {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// Raw returns the decoded Go value: string, int, float64, bool, time.Time,
// []interface{}, or a map. Falls back to the raw scalar text when decoding
// fails.
func (v Value) Raw() interface{} {
	if v.node == nil {
		return nil
	}
	var out interface{}
	if err := v.node.Decode(&out); err != nil {
		return v.node.Value
	}
	return out
}

// String renders a compact single-line form for prompts and tables.
func (v Value) String() string {
	if v.node == nil {
		return "null"
	}
	switch v.node.Kind {
	case yaml.SequenceNode:
		items, _ := v.AsList()
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, item.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case yaml.MappingNode:
		parts := make([]string, 0, len(v.node.Content)/2)
		for i := 0; i+1 < len(v.node.Content); i += 2 {
			parts = append(parts, v.node.Content[i].Value+": "+newValue(v.node.Content[i+1]).String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		if v.IsNull() {
			return "null"
		}
		return v.node.Value
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(v.Raw())
	if err != nil {
		return json.Marshal(v.String())
	}
	return b, nil
}

func (v Value) flowStyle() yaml.Style {
	if v.node != nil && v.node.Style&yaml.FlowStyle != 0 {
		return yaml.FlowStyle
	}
	return 0
}
