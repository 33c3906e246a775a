package materialize

import (
	"github.com/sitesmith/sitesmith/pkg/htmlrender"
	"github.com/sitesmith/sitesmith/pkg/vdom"
)

// NotFoundPage renders the styled document shown when a website or page does
// not exist. Visitors never see a raw error code or a blank response.
func (m *Materializer) NotFoundPage() string {
	return m.statusPage("Page not found", "The page you are looking for does not exist.")
}

// NotPublishedPage renders the styled document shown when the requested
// content exists but is not published.
func (m *Materializer) NotPublishedPage() string {
	return m.statusPage("Not published", "This page has not been published yet.")
}

func (m *Materializer) statusPage(title, message string) string {
	body := vdom.Main(
		vdom.Style("display:flex;flex-direction:column;align-items:center;justify-content:center;min-height:100vh;text-align:center;padding:24px"),
		vdom.H1(vdom.Style("margin:0 0 8px;font-size:28px"), title),
		vdom.P(vdom.Style("color:#6b7280"), message),
	)
	html, err := m.renderer.RenderDocumentToString(htmlrender.DocumentData{
		Body:   body,
		Title:  title,
		Styles: []string{baseCSS},
	})
	if err != nil {
		// The status documents contain no user data; rendering them cannot
		// realistically fail, but fall back to a minimal document anyway.
		return "<!DOCTYPE html><html><body><h1>" + title + "</h1></body></html>"
	}
	return html
}
