package generate

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatterField is one frontmatter key/value pair. Fields are emitted in
// slice order, which map-based marshaling would not preserve.
type frontmatterField struct {
	key   string
	value string
}

// ensureFrontmatter returns the trimmed content unchanged when it already
// opens with a frontmatter fence, otherwise prepends one built from the
// given fields. Models usually emit the fence themselves; this backstops
// the ones that drop it.
func ensureFrontmatter(content string, fields []frontmatterField) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "---") {
		return content
	}
	return "---\n" + marshalFields(fields) + "---\n" + content
}

// marshalFields renders the fields as a YAML mapping, one per line. Values
// are written as plain scalars so dates and numbers read back naturally;
// the encoder quotes them only when YAML syntax demands it.
func marshalFields(fields []frontmatterField) string {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.value},
		)
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return ""
	}
	return string(out)
}
