package registry

import (
	"fmt"

	"github.com/sitesmith/sitesmith/pkg/vdom"
)

func renderImage(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	src := str(props, "src")
	if src == "" {
		// No source yet: render an obvious placeholder instead of a broken img.
		return vdom.Div(
			vdom.Class("component-image", "component-image-empty"),
			vdom.Style("background:#f3f4f6;color:#9ca3af;padding:48px;text-align:center;border-radius:4px"),
			vdom.Text("Image"),
		)
	}
	style := decl("width", str(props, "width"))
	if radius := num(props, "radius"); radius > 0 {
		style = css(style, decl("border-radius", px(radius)))
	}
	return vdom.Img(
		vdom.Class("component-image"),
		vdom.Src(src),
		vdom.Alt(str(props, "alt")),
		vdom.Style(style),
		vdom.Loading("lazy"),
	)
}

func renderVideo(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	attrs := []vdom.Attr{
		vdom.Class("component-video"),
		vdom.Src(str(props, "src")),
		vdom.Style(decl("width", str(props, "width"))),
	}
	if boolean(props, "controls") {
		attrs = append(attrs, vdom.Controls())
	}
	return vdom.Video(attrs)
}

func renderEmbed(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	height := num(props, "height")
	if height <= 0 {
		height = 400
	}
	return vdom.Iframe(
		vdom.Class("component-embed"),
		vdom.Src(str(props, "url")),
		vdom.Style(css("width:100%", "border:none", decl("height", px(height)))),
		vdom.Loading("lazy"),
	)
}

func renderGallery(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	columns := num(props, "columns")
	if columns < 1 {
		columns = 3
	}
	images := list(props, "images")
	cells := vdom.Range(images, func(img map[string]any, _ int) *vdom.VNode {
		return vdom.Img(
			vdom.Src(str(img, "src")),
			vdom.Alt(str(img, "alt")),
			vdom.Style("width:100%;display:block"),
			vdom.Loading("lazy"),
		)
	})
	style := css(
		"display:grid",
		decl("grid-template-columns", fmt.Sprintf("repeat(%d, 1fr)", columns)),
		decl("gap", px(num(props, "gap"))),
	)
	return vdom.Div(
		vdom.Class("component-gallery"),
		vdom.Style(style),
		cells,
	)
}

func renderSocialIcons(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	size := num(props, "size")
	if size <= 0 {
		size = 24
	}
	links := list(props, "links")
	items := vdom.Range(links, func(link map[string]any, _ int) *vdom.VNode {
		network := str(link, "network")
		return vdom.A(
			vdom.Href(str(link, "url")),
			vdom.Target("_blank"),
			vdom.Rel("noopener"),
			vdom.AriaLabel(network),
			vdom.Style(fmt.Sprintf("margin-right:12px;font-size:%dpx;text-decoration:none", size)),
			network,
		)
	})
	return vdom.Div(vdom.Class("component-social"), items)
}
