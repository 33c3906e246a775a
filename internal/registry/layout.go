package registry

import (
	"fmt"

	"github.com/sitesmith/sitesmith/pkg/vdom"
)

func renderContainer(props map[string]any, children []*vdom.VNode) *vdom.VNode {
	style := css(
		decl("background", str(props, "background")),
		decl("padding", px(num(props, "padding"))),
	)
	if max := num(props, "maxWidth"); max > 0 {
		style = css(style, decl("max-width", px(max)), "margin-left:auto", "margin-right:auto")
	}
	return vdom.Div(
		vdom.Class("component-container"),
		vdom.Style(style),
		children,
	)
}

func renderColumns(props map[string]any, children []*vdom.VNode) *vdom.VNode {
	count := num(props, "count")
	if count < 1 {
		count = 1
	}
	style := css(
		"display:grid",
		decl("grid-template-columns", fmt.Sprintf("repeat(%d, 1fr)", count)),
		decl("gap", px(num(props, "gap"))),
	)
	// Each child sits in its own grid cell; extra children beyond the column
	// count wrap to a new row rather than being dropped.
	return vdom.Div(
		vdom.Class("component-columns"),
		vdom.Style(style),
		children,
	)
}

func renderSection(props map[string]any, children []*vdom.VNode) *vdom.VNode {
	style := css(
		decl("background", str(props, "background")),
		decl("padding", px(num(props, "padding"))+" 0"),
	)
	return vdom.Section(
		vdom.Class("component-section"),
		vdom.Style(style),
		children,
	)
}

func renderCard(props map[string]any, children []*vdom.VNode) *vdom.VNode {
	style := css(
		decl("background", str(props, "background")),
		decl("padding", px(num(props, "padding"))),
		"border-radius:8px",
	)
	if boolean(props, "shadow") {
		style = css(style, "box-shadow:0 1px 3px rgba(0,0,0,0.12)")
	}
	return vdom.Div(
		vdom.Class("component-card"),
		vdom.Style(style),
		children,
	)
}

func renderNavbar(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	links := list(props, "links")
	items := vdom.Range(links, func(link map[string]any, _ int) *vdom.VNode {
		return vdom.A(
			vdom.Href(str(link, "url")),
			vdom.Style("margin-left:16px;text-decoration:none;color:inherit"),
			str(link, "text"),
		)
	})
	style := css(
		decl("background", str(props, "background")),
		decl("color", str(props, "color")),
		"display:flex",
		"align-items:center",
		"justify-content:space-between",
		"padding:12px 24px",
	)
	return vdom.Nav(
		vdom.Class("component-navbar"),
		vdom.Style(style),
		vdom.Span(vdom.Style("font-weight:bold"), str(props, "brand")),
		vdom.Div(items),
	)
}

func renderHero(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	style := css(
		decl("background", str(props, "background")),
		decl("color", str(props, "color")),
		"padding:96px 24px",
		"text-align:center",
	)
	if img := str(props, "backgroundImage"); img != "" {
		style = css(style,
			decl("background-image", "url('"+img+"')"),
			"background-size:cover",
			"background-position:center",
		)
	}
	buttonText := str(props, "buttonText")
	return vdom.Header(
		vdom.Class("component-hero"),
		vdom.Style(style),
		vdom.H1(vdom.Style("margin:0 0 16px"), str(props, "title")),
		vdom.P(vdom.Style("margin:0 0 24px;font-size:18px"), str(props, "subtitle")),
		vdom.If(buttonText != "", vdom.A(
			vdom.Href(str(props, "buttonUrl")),
			vdom.Style("display:inline-block;padding:12px 28px;background:#2563eb;color:#fff;border-radius:6px;text-decoration:none"),
			buttonText,
		)),
	)
}

func renderFooter(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	links := list(props, "links")
	items := vdom.Range(links, func(link map[string]any, _ int) *vdom.VNode {
		return vdom.A(
			vdom.Href(str(link, "url")),
			vdom.Style("margin-right:16px;color:inherit"),
			str(link, "text"),
		)
	})
	style := css(
		decl("background", str(props, "background")),
		decl("color", str(props, "color")),
		"padding:32px 24px",
		"font-size:14px",
	)
	text := str(props, "text")
	return vdom.Footer(
		vdom.Class("component-footer"),
		vdom.Style(style),
		vdom.Div(items),
		vdom.If(text != "", vdom.P(text)),
	)
}
