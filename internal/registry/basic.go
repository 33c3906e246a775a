package registry

import (
	"fmt"
	"strings"

	"github.com/sitesmith/sitesmith/pkg/vdom"
)

// css joins non-empty declarations into an inline style string.
func css(decls ...string) string {
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		if d != "" {
			out = append(out, d)
		}
	}
	return strings.Join(out, ";")
}

func decl(prop, value string) string {
	if value == "" {
		return ""
	}
	return prop + ":" + value
}

func px(n int) string {
	return fmt.Sprintf("%dpx", n)
}

func renderHeading(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	level := str(props, "level")
	switch level {
	case "h1", "h2", "h3", "h4", "h5", "h6":
	default:
		level = "h2"
	}
	style := css(
		decl("text-align", str(props, "textAlign")),
		decl("color", str(props, "color")),
	)
	return vdom.CustomElement(level,
		vdom.Class("component-heading"),
		vdom.Style(style),
		str(props, "text"),
	)
}

func renderText(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	style := css(
		decl("text-align", str(props, "textAlign")),
		decl("color", str(props, "color")),
	)
	if size := num(props, "fontSize"); size > 0 {
		style = css(style, decl("font-size", px(size)))
	}
	return vdom.P(
		vdom.Class("component-text"),
		vdom.Style(style),
		str(props, "text"),
	)
}

func renderQuote(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	author := str(props, "author")
	return vdom.Blockquote(
		vdom.Class("component-quote"),
		vdom.Style("border-left:4px solid #e5e7eb;margin:0;padding-left:16px;font-style:italic"),
		vdom.P(str(props, "text")),
		vdom.If(author != "", vdom.Cite("— "+author)),
	)
}

func renderList(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	items := strs(props, "items")
	children := vdom.Range(items, func(item string, _ int) *vdom.VNode {
		return vdom.Li(item)
	})
	if boolean(props, "ordered") {
		return vdom.Ol(vdom.Class("component-list"), children)
	}
	return vdom.Ul(vdom.Class("component-list"), children)
}

func renderBadge(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	style := css(
		decl("background", str(props, "background")),
		decl("color", str(props, "color")),
		"display:inline-block",
		"padding:2px 10px",
		"border-radius:9999px",
		"font-size:12px",
	)
	return vdom.Span(
		vdom.Class("component-badge"),
		vdom.Style(style),
		str(props, "text"),
	)
}

func renderButton(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	style := css(
		decl("background", str(props, "background")),
		decl("color", str(props, "color")),
		"display:inline-block",
		"padding:10px 20px",
		"border-radius:6px",
		"text-decoration:none",
	)
	return vdom.Div(
		vdom.Class("component-button"),
		vdom.Style(decl("text-align", str(props, "align"))),
		vdom.A(
			vdom.Href(str(props, "url")),
			vdom.Style(style),
			str(props, "text"),
		),
	)
}

func renderLink(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	attrs := []vdom.Attr{
		vdom.Class("component-link"),
		vdom.Href(str(props, "url")),
	}
	style := decl("color", str(props, "color"))
	if !boolean(props, "underline") {
		style = css(style, "text-decoration:none")
	}
	attrs = append(attrs, vdom.Style(style))
	if boolean(props, "newTab") {
		attrs = append(attrs, vdom.Target("_blank"), vdom.Rel("noopener"))
	}
	return vdom.A(attrs, str(props, "text"))
}

func renderDivider(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	thickness := num(props, "thickness")
	if thickness < 1 {
		thickness = 1
	}
	style := css(
		"border:none",
		decl("border-top", fmt.Sprintf("%dpx solid %s", thickness, str(props, "color"))),
	)
	return vdom.Hr(vdom.Class("component-divider"), vdom.Style(style))
}

func renderSpacer(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	height := num(props, "height")
	if height < 0 {
		height = 0
	}
	return vdom.Div(
		vdom.Class("component-spacer"),
		vdom.Style(decl("height", px(height))),
		vdom.AriaHidden(true),
	)
}
