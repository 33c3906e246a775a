package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"about", "/about"},
		{"/about", "/about"},
		{"/about/", "/about"},
		{"about/", "/about"},
		{"  /about  ", "/about"},
		{"/docs/intro", "/docs/intro"},
		{"", "/"},
		{"/", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.in), "input %q", tt.in)
	}
}

func TestIsRoot(t *testing.T) {
	empty := ""
	parent := "p-1"

	assert.True(t, Component{}.IsRoot())
	assert.True(t, Component{ParentID: &empty}.IsRoot())
	assert.False(t, Component{ParentID: &parent}.IsRoot())
}

func TestCloneProperties(t *testing.T) {
	c := Component{Properties: map[string]any{
		"text":   "hello",
		"nested": map[string]any{"color": "red"},
		"list":   []any{map[string]any{"url": "/a"}, "plain"},
	}}

	clone := c.CloneProperties()
	clone["text"] = "changed"
	clone["nested"].(map[string]any)["color"] = "blue"
	clone["list"].([]any)[0].(map[string]any)["url"] = "/b"

	assert.Equal(t, "hello", c.Properties["text"])
	assert.Equal(t, "red", c.Properties["nested"].(map[string]any)["color"])
	assert.Equal(t, "/a", c.Properties["list"].([]any)[0].(map[string]any)["url"])
}

func TestClonePropertiesNil(t *testing.T) {
	assert.Nil(t, Component{}.CloneProperties())
}

func TestEncodeProperties(t *testing.T) {
	raw, err := EncodeProperties(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, raw)

	raw, err = EncodeProperties(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
}

func TestDecodeProperties(t *testing.T) {
	props, ok := DecodeProperties(`{"text":"hi","n":2}`)
	require.True(t, ok)
	assert.Equal(t, "hi", props["text"])

	props, ok = DecodeProperties("")
	require.True(t, ok)
	assert.Empty(t, props)

	_, ok = DecodeProperties(`{"broken":`)
	assert.False(t, ok, "invalid JSON must report ok=false, not panic or error")

	_, ok = DecodeProperties(`[1,2,3]`)
	assert.False(t, ok, "non-object JSON is not a property map")
}
