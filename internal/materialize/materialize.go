// Package materialize wraps rendered component markup into complete,
// standalone HTML documents: head metadata from the page's SEO block with
// website-level fallbacks, and, in preview mode only, a navigation strip
// across the website's pages. Output is dependency-light and needs no
// client-side hydration.
package materialize

import (
	"time"

	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/metrics"
	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/registry"
	"github.com/sitesmith/sitesmith/internal/tree"
	"github.com/sitesmith/sitesmith/pkg/htmlrender"
	"github.com/sitesmith/sitesmith/pkg/vdom"
)

// Options selects the serving mode for one materialization.
type Options struct {
	// Preview injects the page navigation strip. Public serving leaves it
	// off and must only ever be reached for published pages.
	Preview bool

	// CustomDomain indicates the request arrived via a custom domain, so
	// in-site links drop the /sites/{slug} prefix.
	CustomDomain bool

	// SitePages lists the website's pages for the preview strip. Ignored
	// unless Preview is set.
	SitePages []model.Page
}

// Materializer renders pages to standalone documents.
type Materializer struct {
	registry *registry.Registry
	renderer *htmlrender.Renderer
	log      *zap.Logger
}

// New builds a materializer. log may be nil.
func New(reg *registry.Registry, log *zap.Logger) *Materializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Materializer{
		registry: reg,
		renderer: htmlrender.NewRenderer(htmlrender.RendererConfig{}),
		log:      log,
	}
}

// RenderPage materializes one page of a website into a complete document.
// Component integrity issues are sanitized leniently and logged; they never
// abort an otherwise-successful render.
func (m *Materializer) RenderPage(site *model.Website, page *model.Page, components []model.Component, opts Options) (string, error) {
	start := time.Now()

	t, err := tree.Build(components, tree.Lenient)
	if err != nil {
		return "", err
	}
	for _, note := range t.Notes() {
		metrics.ComponentsSanitized.Inc()
		m.log.Warn("sanitized component during render",
			zap.String("page_id", page.ID),
			zap.String("component_id", note.ComponentID),
			zap.String("reason", note.Reason),
		)
	}

	content := t.Render(m.registry, tree.RenderOptions{})

	body := vdom.Fragment(
		vdom.If(opts.Preview, m.previewStrip(site, page, opts)),
		vdom.Main(content),
	)

	doc := htmlrender.DocumentData{
		Body:   body,
		Title:  pageTitle(site, page),
		Meta:   seoMeta(site, page),
		Links:  seoLinks(page),
		Styles: []string{baseCSS},
	}

	html, err := m.renderer.RenderDocumentToString(doc)
	if err != nil {
		return "", err
	}

	mode := "public"
	if opts.Preview {
		mode = "preview"
	}
	metrics.PagesRendered.WithLabelValues(mode).Inc()
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	return html, nil
}

// RenderCanvas renders the page's component tree as an annotated HTML
// fragment for the editing canvas: every component root carries its
// data-component-id and data-component-type markers so the client can map
// DOM back to records. No document shell, no preview strip.
func (m *Materializer) RenderCanvas(components []model.Component) (string, error) {
	t, err := tree.Build(components, tree.Lenient)
	if err != nil {
		return "", err
	}
	for _, note := range t.Notes() {
		metrics.ComponentsSanitized.Inc()
		m.log.Warn("sanitized component during canvas render",
			zap.String("component_id", note.ComponentID),
			zap.String("reason", note.Reason),
		)
	}
	content := t.Render(m.registry, tree.RenderOptions{Annotate: true})
	return m.renderer.RenderToString(content)
}

// previewStrip lists every page of the site with a link, plus a link to the
// live site.
func (m *Materializer) previewStrip(site *model.Website, current *model.Page, opts Options) *vdom.VNode {
	base := linkBase(site, opts.CustomDomain)
	links := make([]*vdom.VNode, 0, len(opts.SitePages)+1)
	for _, p := range opts.SitePages {
		style := "margin-right:16px;color:#e5e7eb;text-decoration:none"
		if p.ID == current.ID {
			style += ";font-weight:bold;text-decoration:underline"
		}
		links = append(links, vdom.A(
			vdom.Href("/preview/"+site.Slug+p.NormalizedPath()),
			vdom.Style(style),
			p.Title,
		))
	}
	links = append(links, vdom.A(
		vdom.Href(liveLink(base)),
		vdom.Style("margin-left:auto;color:#93c5fd;text-decoration:none"),
		vdom.Text("View live site →"),
	))
	return vdom.Div(
		vdom.Class("preview-strip"),
		vdom.Style("display:flex;align-items:center;background:#111827;padding:10px 24px;font-size:14px"),
		vdom.Span(vdom.Style("margin-right:24px;color:#9ca3af"), "Preview"),
		links,
	)
}

func liveLink(base string) string {
	if base == "" {
		return "/"
	}
	return base
}

func linkBase(site *model.Website, customDomain bool) string {
	if customDomain {
		return ""
	}
	return "/sites/" + site.Slug
}

func pageTitle(site *model.Website, page *model.Page) string {
	if page.SEO.Title != "" {
		return page.SEO.Title
	}
	if page.Title != "" {
		return page.Title + " | " + site.Name
	}
	return site.Name
}

// seoMeta assembles description/keywords plus Open Graph and Twitter Card
// tags, falling back to website-level values where the page block is empty.
func seoMeta(site *model.Website, page *model.Page) []htmlrender.MetaTag {
	title := pageTitle(site, page)
	description := page.SEO.Description

	var meta []htmlrender.MetaTag
	if description != "" {
		meta = append(meta, htmlrender.MetaTag{Name: "description", Content: description})
	}
	if page.SEO.Keywords != "" {
		meta = append(meta, htmlrender.MetaTag{Name: "keywords", Content: page.SEO.Keywords})
	}

	ogTitle := page.SEO.OGTitle
	if ogTitle == "" {
		ogTitle = title
	}
	meta = append(meta, htmlrender.MetaTag{Property: "og:title", Content: ogTitle})
	ogDescription := page.SEO.OGDescription
	if ogDescription == "" {
		ogDescription = description
	}
	if ogDescription != "" {
		meta = append(meta, htmlrender.MetaTag{Property: "og:description", Content: ogDescription})
	}
	if page.SEO.OGImage != "" {
		meta = append(meta, htmlrender.MetaTag{Property: "og:image", Content: page.SEO.OGImage})
	}
	meta = append(meta, htmlrender.MetaTag{Property: "og:site_name", Content: site.Name})

	card := page.SEO.TwitterCard
	if card == "" {
		card = "summary"
	}
	meta = append(meta, htmlrender.MetaTag{Name: "twitter:card", Content: card})
	if page.SEO.TwitterTitle != "" {
		meta = append(meta, htmlrender.MetaTag{Name: "twitter:title", Content: page.SEO.TwitterTitle})
	}
	if page.SEO.TwitterDescription != "" {
		meta = append(meta, htmlrender.MetaTag{Name: "twitter:description", Content: page.SEO.TwitterDescription})
	}
	if page.SEO.TwitterImage != "" {
		meta = append(meta, htmlrender.MetaTag{Name: "twitter:image", Content: page.SEO.TwitterImage})
	}
	return meta
}

func seoLinks(page *model.Page) []htmlrender.LinkTag {
	if page.SEO.Canonical == "" {
		return nil
	}
	return []htmlrender.LinkTag{{Rel: "canonical", Href: page.SEO.Canonical}}
}
