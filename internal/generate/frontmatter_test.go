package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureFrontmatterPrepends(t *testing.T) {
	fields := []frontmatterField{
		{"name", "relay-architecture"},
		{"description", "Architecture overview for relay"},
		{"last_updated", "2026-01-02"},
	}

	got := ensureFrontmatter("# Architecture\n\nBody text.", fields)

	assert.True(t, strings.HasPrefix(got, "---\n"))
	assert.Contains(t, got, "name: relay-architecture")
	assert.Contains(t, got, "description: Architecture overview for relay")
	assert.Contains(t, got, "2026-01-02")
	assert.True(t, strings.HasSuffix(got, "---\n# Architecture\n\nBody text."))

	// Key order must survive marshaling.
	nameIdx := strings.Index(got, "name:")
	descIdx := strings.Index(got, "description:")
	dateIdx := strings.Index(got, "last_updated:")
	assert.Less(t, nameIdx, descIdx)
	assert.Less(t, descIdx, dateIdx)
}

func TestEnsureFrontmatterKeepsExistingFence(t *testing.T) {
	doc := "---\nname: custom\n---\n# Doc"

	got := ensureFrontmatter("  \n"+doc+"\n", []frontmatterField{{"name", "ignored"}})

	assert.Equal(t, doc, got)
	assert.NotContains(t, got, "ignored")
}

func TestEnsureFrontmatterTrimsContent(t *testing.T) {
	got := ensureFrontmatter("\n\n  body  \n\n", []frontmatterField{{"k", "v"}})

	assert.True(t, strings.HasSuffix(got, "---\nbody"))
}
