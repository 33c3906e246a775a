package htmlrender

import (
	"strings"
	"testing"

	"github.com/sitesmith/sitesmith/pkg/vdom"
)

func TestRenderDocument(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	doc := DocumentData{
		Body:  vdom.Main(vdom.H1(vdom.Text("Welcome"))),
		Title: "Acme — Home",
		Meta: []MetaTag{
			{Name: "description", Content: "Handmade goods"},
			{Property: "og:title", Content: "Acme"},
		},
		Links: []LinkTag{
			{Rel: "canonical", Href: "https://acme.example/"},
		},
		Styles: []string{"body{margin:0}"},
	}

	html, err := renderer.RenderDocumentToString(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		`<meta charset="utf-8">`,
		`<meta name="viewport"`,
		"<title>Acme — Home</title>",
		`<meta name="description" content="Handmade goods">`,
		`<meta property="og:title" content="Acme">`,
		`<link rel="canonical" href="https://acme.example/">`,
		"<style>body{margin:0}</style>",
		"<main><h1>Welcome</h1></main>",
		"</body>",
		"</html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q:\n%s", want, html)
		}
	}
}

func TestRenderDocumentLang(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderDocumentToString(DocumentData{
		Body: vdom.Div(),
		Lang: "fr",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `<html lang="fr">`) {
		t.Errorf("lang attribute not applied:\n%s", html)
	}
}

func TestRenderDocumentEscapesTitle(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderDocumentToString(DocumentData{
		Body:  vdom.Div(),
		Title: "<script>bad</script>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>bad</script>") {
		t.Errorf("title not escaped:\n%s", html)
	}
}

func TestRenderDocumentOmitsEmptyTitle(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderDocumentToString(DocumentData{Body: vdom.Div()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<title>") {
		t.Errorf("empty title should be omitted:\n%s", html)
	}
}
