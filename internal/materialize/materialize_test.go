package materialize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/registry"
)

func strptr(s string) *string { return &s }

func fixture() (*Materializer, *model.Website, *model.Page, []model.Component) {
	mat := New(registry.New(), nil)
	site := &model.Website{ID: "w1", Name: "Acme", Slug: "acme", Published: true}
	page := &model.Page{ID: "p1", WebsiteID: "w1", Title: "Home", Path: "/", IsHomePage: true, Published: true}
	components := []model.Component{
		{ID: "c1", PageID: "p1", Type: "heading", Position: 0,
			Properties: map[string]any{"text": "Welcome to Acme"}},
		{ID: "c2", PageID: "p1", Type: "text", Position: 1,
			Properties: map[string]any{"text": "We make things."}},
	}
	return mat, site, page, components
}

func TestRenderPagePublic(t *testing.T) {
	mat, site, page, components := fixture()

	html, err := mat.RenderPage(site, page, components, Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Welcome to Acme")
	assert.Contains(t, html, "We make things.")
	assert.Contains(t, html, "<title>Home | Acme</title>")
	assert.NotContains(t, html, "preview-strip")
	assert.NotContains(t, html, "data-component-id", "public output carries no canvas annotations")
	assert.NotContains(t, html, "<script", "output must be standalone, no hydration")
}

func TestRenderPagePreviewStrip(t *testing.T) {
	mat, site, page, components := fixture()
	about := model.Page{ID: "p2", WebsiteID: "w1", Title: "About", Path: "/about"}

	html, err := mat.RenderPage(site, page, components, Options{
		Preview:   true,
		SitePages: []model.Page{*page, about},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "preview-strip")
	assert.Contains(t, html, `href="/preview/acme/about"`)
	assert.Contains(t, html, "View live site")
	assert.Contains(t, html, `href="/sites/acme"`)
}

func TestRenderPageSEOFallbacks(t *testing.T) {
	mat, site, page, components := fixture()

	t.Run("page title fallback chain", func(t *testing.T) {
		html, err := mat.RenderPage(site, page, components, Options{})
		require.NoError(t, err)
		assert.Contains(t, html, "<title>Home | Acme</title>")
		assert.Contains(t, html, `property="og:title" content="Home | Acme"`)
		assert.Contains(t, html, `property="og:site_name" content="Acme"`)
		assert.Contains(t, html, `name="twitter:card" content="summary"`)
	})

	t.Run("explicit seo wins", func(t *testing.T) {
		withSEO := *page
		withSEO.SEO = model.SEO{
			Title:       "Custom Title",
			Description: "Custom description",
			Canonical:   "https://acme.example/",
			OGImage:     "https://acme.example/og.png",
		}
		html, err := mat.RenderPage(site, &withSEO, components, Options{})
		require.NoError(t, err)
		assert.Contains(t, html, "<title>Custom Title</title>")
		assert.Contains(t, html, `name="description" content="Custom description"`)
		assert.Contains(t, html, `rel="canonical" href="https://acme.example/"`)
		assert.Contains(t, html, `property="og:image" content="https://acme.example/og.png"`)
	})
}

func TestRenderPageSanitizesLeniently(t *testing.T) {
	mat, site, page, components := fixture()
	components = append(components, model.Component{
		ID: "c-orphan", PageID: "p1", Type: "text", ParentID: strptr("ghost"), Position: 2,
		Properties: map[string]any{"text": "still visible"},
	})

	html, err := mat.RenderPage(site, page, components, Options{})
	require.NoError(t, err, "integrity issues are sanitized, not fatal")
	assert.Contains(t, html, "still visible")
}

func TestRenderPageUnknownComponentDegrades(t *testing.T) {
	mat, site, page, components := fixture()
	components = append(components, model.Component{
		ID: "c-legacy", PageID: "p1", Type: "marquee3000", Position: 2,
	})

	html, err := mat.RenderPage(site, page, components, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, "marquee3000", "unknown types degrade visibly")
	assert.Contains(t, html, "Welcome to Acme", "the rest of the page still renders")
}

func TestRenderCanvasAnnotates(t *testing.T) {
	mat, _, _, components := fixture()

	html, err := mat.RenderCanvas(components)
	require.NoError(t, err)

	assert.Contains(t, html, `data-component-id="c1"`)
	assert.Contains(t, html, `data-component-type="heading"`)
	assert.NotContains(t, html, "<!DOCTYPE html>", "canvas render is a fragment")
}

func TestCanvasAndPublicAgree(t *testing.T) {
	mat, site, page, components := fixture()

	public, err := mat.RenderPage(site, page, components, Options{})
	require.NoError(t, err)
	canvas, err := mat.RenderCanvas(components)
	require.NoError(t, err)

	// Both contexts render the same component content.
	for _, want := range []string{"Welcome to Acme", "We make things."} {
		assert.Contains(t, public, want)
		assert.Contains(t, canvas, want)
	}
}

func TestStatusPages(t *testing.T) {
	mat, _, _, _ := fixture()

	nf := mat.NotFoundPage()
	assert.Contains(t, nf, "<!DOCTYPE html>")
	assert.Contains(t, nf, "Page not found")

	np := mat.NotPublishedPage()
	assert.Contains(t, np, "not been published")
}
