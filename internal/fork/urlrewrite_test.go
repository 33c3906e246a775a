package fork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"middle segment", "/sites/acme/about", "/sites/acme-fork/about"},
		{"trailing segment", "/sites/acme", "/sites/acme-fork"},
		{"substring stays", "/sites/acme-studio/about", "/sites/acme-studio/about"},
		{"absolute url", "https://host/sites/acme/pricing", "https://host/sites/acme-fork/pricing"},
		{"unrelated", "/other/path", "/other/path"},
		{"anchor only", "#", "#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewriteSlug(tt.in, "acme", "acme-fork"))
		})
	}
}

func TestRewritePropertiesTopLevel(t *testing.T) {
	raw := `{"text":"Go","url":"/sites/acme/contact"}`
	got := rewriteProperties(raw, "acme", "acme-fork")
	assert.Contains(t, got, `/sites/acme-fork/contact`)
	assert.Contains(t, got, `"text":"Go"`)
}

func TestRewritePropertiesNested(t *testing.T) {
	raw := `{"items":[{"label":"Home","href":"/sites/acme"},{"label":"Docs","href":"/sites/acme/docs"}],"style":{"backgroundImage":"/sites/acme/hero.png"}}`
	got := rewriteProperties(raw, "acme", "acme-fork")
	assert.Contains(t, got, `"/sites/acme-fork"`)
	assert.Contains(t, got, `/sites/acme-fork/docs`)
	assert.Contains(t, got, `/sites/acme-fork/hero.png`)
}

func TestRewritePropertiesNonURLKeysUntouched(t *testing.T) {
	raw := `{"text":"see /sites/acme/about for details"}`
	got := rewriteProperties(raw, "acme", "acme-fork")
	assert.Equal(t, raw, got, "only url-shaped keys are rewritten")
}

func TestRewritePropertiesInvalidJSONVerbatim(t *testing.T) {
	raw := `{"url": "/sites/acme`
	got := rewriteProperties(raw, "acme", "acme-fork")
	assert.Equal(t, raw, got)
}

func TestRewritePropertiesSameSlugNoop(t *testing.T) {
	raw := `{"url":"/sites/acme"}`
	assert.Equal(t, raw, rewriteProperties(raw, "acme", "acme"))
	assert.Equal(t, raw, rewriteProperties(raw, "", "acme-fork"))
}
