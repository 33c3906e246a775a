package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/registry"
	"github.com/sitesmith/sitesmith/pkg/htmlrender"
)

func renderHTML(t *testing.T, components []model.Component, opts RenderOptions) string {
	t.Helper()
	tr, err := Build(components, Strict)
	require.NoError(t, err)
	node := tr.Render(registry.New(), opts)
	html, err := htmlrender.NewRenderer(htmlrender.RendererConfig{}).RenderToString(node)
	require.NoError(t, err)
	return html
}

func TestRenderComposesChildrenIntoContainers(t *testing.T) {
	components := []model.Component{
		comp("sec", "section", "", 0),
		{ID: "h", PageID: "page-1", Type: "heading", ParentID: strptr("sec"), Position: 0,
			Properties: map[string]any{"text": "Inside"}},
	}

	html := renderHTML(t, components, RenderOptions{})
	assert.Contains(t, html, "Inside")
	assert.Contains(t, html, "component-section")
}

func TestRenderAnnotated(t *testing.T) {
	components := []model.Component{
		{ID: "c-42", PageID: "page-1", Type: "heading", Position: 0,
			Properties: map[string]any{"text": "Hi"}},
	}

	html := renderHTML(t, components, RenderOptions{Annotate: true})
	assert.Contains(t, html, `data-component-id="c-42"`)
	assert.Contains(t, html, `data-component-type="heading"`)
}

func TestRenderStaticCarriesNoAnnotations(t *testing.T) {
	components := []model.Component{
		{ID: "c-42", PageID: "page-1", Type: "heading", Position: 0,
			Properties: map[string]any{"text": "Hi"}},
	}

	html := renderHTML(t, components, RenderOptions{})
	assert.NotContains(t, html, "data-component-id")
}

func TestRenderContextsAgreeOnStructure(t *testing.T) {
	components := []model.Component{
		comp("sec", "section", "", 0),
		{ID: "h", PageID: "page-1", Type: "heading", ParentID: strptr("sec"), Position: 0,
			Properties: map[string]any{"text": "Same"}},
		{ID: "b", PageID: "page-1", Type: "button", ParentID: strptr("sec"), Position: 1,
			Properties: map[string]any{"text": "Go", "url": "/next"}},
	}

	static := renderHTML(t, components, RenderOptions{})
	annotated := renderHTML(t, components, RenderOptions{Annotate: true})

	// The annotated render differs only by the data-component-* attributes.
	assert.NotEqual(t, static, annotated)
	for _, want := range []string{"Same", "Go", "/next"} {
		assert.Contains(t, static, want)
		assert.Contains(t, annotated, want)
	}
}

func TestRenderOrderFollowsPositions(t *testing.T) {
	components := []model.Component{
		{ID: "late", PageID: "page-1", Type: "text", Position: 2,
			Properties: map[string]any{"text": "ZZZ"}},
		{ID: "early", PageID: "page-1", Type: "text", Position: 1,
			Properties: map[string]any{"text": "AAA"}},
	}

	html := renderHTML(t, components, RenderOptions{})
	assert.Less(t, strings.Index(html, "AAA"), strings.Index(html, "ZZZ"))
}

func strptr(s string) *string { return &s }
