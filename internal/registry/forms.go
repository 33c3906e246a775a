package registry

import (
	"github.com/sitesmith/sitesmith/pkg/vdom"
)

func renderForm(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	method := str(props, "method")
	if method != "get" {
		method = "post"
	}
	return vdom.Form(
		vdom.Class("component-form"),
		vdom.Attr{Key: "action", Value: str(props, "action")},
		vdom.Attr{Key: "method", Value: method},
		vdom.Button(
			vdom.Type("submit"),
			vdom.Style("padding:10px 20px;background:#2563eb;color:#fff;border:none;border-radius:6px"),
			str(props, "submitText"),
		),
	)
}

func renderInput(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	name := str(props, "name")
	inputType := str(props, "inputType")
	if inputType == "" {
		inputType = "text"
	}
	attrs := []vdom.Attr{
		vdom.Type(inputType),
		vdom.Name(name),
		vdom.Placeholder(str(props, "placeholder")),
		vdom.Style("display:block;width:100%;padding:8px;border:1px solid #d1d5db;border-radius:4px"),
	}
	if boolean(props, "required") {
		attrs = append(attrs, vdom.Required())
	}
	return fieldWrapper(str(props, "label"), name, vdom.Input(attrs))
}

func renderTextarea(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	name := str(props, "name")
	rows := num(props, "rows")
	if rows <= 0 {
		rows = 4
	}
	attrs := []vdom.Attr{
		vdom.Name(name),
		vdom.Placeholder(str(props, "placeholder")),
		vdom.Rows(rows),
		vdom.Style("display:block;width:100%;padding:8px;border:1px solid #d1d5db;border-radius:4px"),
	}
	if boolean(props, "required") {
		attrs = append(attrs, vdom.Required())
	}
	return fieldWrapper(str(props, "label"), name, vdom.Textarea(attrs))
}

func renderSelect(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	name := str(props, "name")
	options := strs(props, "options")
	optionNodes := vdom.Range(options, func(opt string, _ int) *vdom.VNode {
		return vdom.Option(vdom.Value(opt), opt)
	})
	sel := vdom.Select(
		vdom.Name(name),
		vdom.Style("display:block;width:100%;padding:8px;border:1px solid #d1d5db;border-radius:4px"),
		optionNodes,
	)
	return fieldWrapper(str(props, "label"), name, sel)
}

func renderCheckbox(props map[string]any, _ []*vdom.VNode) *vdom.VNode {
	name := str(props, "name")
	attrs := []vdom.Attr{
		vdom.Type("checkbox"),
		vdom.Name(name),
	}
	if boolean(props, "checked") {
		attrs = append(attrs, vdom.Checked())
	}
	return vdom.Div(
		vdom.Class("component-checkbox"),
		vdom.Label(
			vdom.Input(attrs),
			vdom.Span(vdom.Style("margin-left:8px"), str(props, "label")),
		),
	)
}

// fieldWrapper wraps a form control with its optional label.
func fieldWrapper(label, name string, control *vdom.VNode) *vdom.VNode {
	return vdom.Div(
		vdom.Class("component-field"),
		vdom.Style("margin-bottom:12px"),
		vdom.If(label != "", vdom.Label(
			vdom.For(name),
			vdom.Style("display:block;margin-bottom:4px;font-size:14px"),
			label,
		)),
		control,
	)
}
