package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Render serializes merged front matter as one delimited block, trailing
// newline included. Keys appear in first-seen order; values re-emit their
// original nodes, so quoting, list style, comments, and date spellings
// survive. Empty front matter renders as a bare delimiter pair.
func Render(m *Merged) (string, error) {
	if m == nil || m.Len() == 0 {
		return "---\n---\n", nil
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if v.node == nil {
			continue
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		mapping.Content = append(mapping.Content, keyNode, v.node)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return "", fmt.Errorf("failed to serialize front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to serialize front matter: %w", err)
	}
	return "---\n" + buf.String() + "---\n", nil
}

// Compose joins a rendered front matter block and a body into a full
// document. A blank line separates the two; an empty body gets none.
func Compose(front, body string) string {
	if body == "" {
		return front
	}
	return front + "\n" + body
}
