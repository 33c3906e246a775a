package htmlrender

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sitesmith/sitesmith/pkg/vdom"
)

// DocumentData contains all data needed to render a complete HTML document.
type DocumentData struct {
	// Body is the root vdom node for the page content
	Body *vdom.VNode

	// Title is the document title
	Title string

	// Meta contains meta tags for the document head
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, canonical, etc.)
	Links []LinkTag

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Styles contains inline CSS blocks
	Styles []string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string // name attribute
	Content  string // content attribute
	Property string // property attribute (for OpenGraph)
	Charset  string // charset attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string // rel attribute
	Href string // href attribute
	Type string // type attribute
}

// RenderDocument renders a complete HTML document to the given writer.
// The output is standalone: no client-side hydration is required to view it.
func (r *Renderer) RenderDocument(w io.Writer, doc DocumentData) error {
	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := w.Write([]byte("<!DOCTYPE html>\n")); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}

	if err := r.renderHead(w, doc); err != nil {
		return err
	}

	if _, err := w.Write([]byte("<body>\n")); err != nil {
		return err
	}

	if err := r.RenderToWriter(w, doc.Body); err != nil {
		return err
	}

	if _, err := w.Write([]byte("</body>\n</html>\n")); err != nil {
		return err
	}

	return nil
}

// RenderDocumentToString renders a complete HTML document to a string.
func (r *Renderer) RenderDocumentToString(doc DocumentData) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderDocument(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, doc DocumentData) error {
	if _, err := w.Write([]byte("<head>\n")); err != nil {
		return err
	}

	if _, err := w.Write([]byte(`  <meta charset="utf-8">` + "\n")); err != nil {
		return err
	}

	if _, err := w.Write([]byte(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")); err != nil {
		return err
	}

	if doc.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(doc.Title)); err != nil {
			return err
		}
	}

	for _, meta := range doc.Meta {
		if err := r.renderMetaTag(w, meta); err != nil {
			return err
		}
	}

	for _, link := range doc.Links {
		if err := r.renderLinkTag(w, link); err != nil {
			return err
		}
	}

	for _, href := range doc.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}

	for _, style := range doc.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}

	if _, err := w.Write([]byte("</head>\n")); err != nil {
		return err
	}

	return nil
}

// renderMetaTag renders a meta element.
func (r *Renderer) renderMetaTag(w io.Writer, meta MetaTag) error {
	if _, err := w.Write([]byte("  <meta")); err != nil {
		return err
	}

	if meta.Charset != "" {
		if _, err := fmt.Fprintf(w, ` charset="%s"`, escapeAttr(meta.Charset)); err != nil {
			return err
		}
	}

	if meta.Name != "" {
		if _, err := fmt.Fprintf(w, ` name="%s"`, escapeAttr(meta.Name)); err != nil {
			return err
		}
	}

	if meta.Property != "" {
		if _, err := fmt.Fprintf(w, ` property="%s"`, escapeAttr(meta.Property)); err != nil {
			return err
		}
	}

	if meta.Content != "" {
		if _, err := fmt.Fprintf(w, ` content="%s"`, escapeAttr(meta.Content)); err != nil {
			return err
		}
	}

	if _, err := w.Write([]byte(">\n")); err != nil {
		return err
	}

	return nil
}

// renderLinkTag renders a link element.
func (r *Renderer) renderLinkTag(w io.Writer, link LinkTag) error {
	if _, err := w.Write([]byte("  <link")); err != nil {
		return err
	}

	if link.Rel != "" {
		if _, err := fmt.Fprintf(w, ` rel="%s"`, escapeAttr(link.Rel)); err != nil {
			return err
		}
	}

	if link.Href != "" {
		if _, err := fmt.Fprintf(w, ` href="%s"`, escapeAttr(link.Href)); err != nil {
			return err
		}
	}

	if link.Type != "" {
		if _, err := fmt.Fprintf(w, ` type="%s"`, escapeAttr(link.Type)); err != nil {
			return err
		}
	}

	if _, err := w.Write([]byte(">\n")); err != nil {
		return err
	}

	return nil
}
