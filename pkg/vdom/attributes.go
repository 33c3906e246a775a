package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Style sets the style attribute.
func Style(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("component-id", "123") → data-component-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Link and media attributes

// Href sets the href attribute.
func Href(href string) Attr { return attr("href", href) }

// Src sets the src attribute.
func Src(src string) Attr { return attr("src", src) }

// Alt sets the alt attribute.
func Alt(alt string) Attr { return attr("alt", alt) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Form attributes

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Required sets the required attribute.
func Required() Attr { return attr("required", true) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// Checked sets the checked attribute.
func Checked() Attr { return attr("checked", true) }

// For sets the for attribute on a label.
func For(id string) Attr { return attr("for", id) }

// Rows sets the rows attribute.
func Rows(n int) Attr { return attr("rows", n) }

// Media attributes

// Width sets the width attribute.
func Width(w string) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h string) Attr { return attr("height", h) }

// Controls sets the controls attribute on media elements.
func Controls() Attr { return attr("controls", true) }

// Loading sets the loading attribute (e.g. "lazy").
func Loading(mode string) Attr { return attr("loading", mode) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// Event handlers

// On attaches an event handler. Handlers are carried on the node for
// interactive consumers and skipped entirely by the static serializer.
func On(event string, handler any) Attr { return attr("on"+event, handler) }
