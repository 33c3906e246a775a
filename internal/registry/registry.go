// Package registry is the single source of truth for component types: for
// each supported type tag it holds the default property set applied when a
// property is absent, the container capability, and the renderer that maps
// (properties, children) to a vdom node.
//
// Lookup never fails. Unknown tags resolve to a fallback definition whose
// renderer emits a visibly-marked placeholder, so legacy or corrupted records
// degrade visibly instead of breaking a whole page render.
package registry

import (
	"github.com/sitesmith/sitesmith/pkg/vdom"
)

// RenderFunc maps resolved properties and already-rendered children to a vdom
// node. Implementations must be pure and deterministic: the same inputs are
// rendered once for the editing canvas and again for static materialization,
// and the two must agree exactly.
type RenderFunc func(props map[string]any, children []*vdom.VNode) *vdom.VNode

// Definition describes one supported component type.
type Definition struct {
	// Type is the tag stored on component records.
	Type string

	// Label is the human-readable palette name.
	Label string

	// Container marks types allowed to own children. Leaf renderers ignore
	// any children they are handed.
	Container bool

	// Defaults is the property set used for absent values. It is also the
	// initial property map for newly created instances.
	Defaults map[string]any

	// Render produces the node for this type.
	Render RenderFunc
}

// Registry maps type tags to definitions.
type Registry struct {
	defs map[string]Definition
}

// New returns a registry with the built-in component catalog.
func New() *Registry {
	r := &Registry{defs: make(map[string]Definition, len(catalog))}
	for _, def := range catalog {
		r.defs[def.Type] = def
	}
	return r
}

// Lookup resolves a type tag. Unknown tags resolve to a fallback definition;
// the second return reports whether the tag is a registered type.
func (r *Registry) Lookup(typ string) (Definition, bool) {
	if def, ok := r.defs[typ]; ok {
		return def, true
	}
	return fallbackDefinition(typ), false
}

// IsContainer reports whether the type tag is container-capable.
// Unknown types are not containers.
func (r *Registry) IsContainer(typ string) bool {
	def, ok := r.defs[typ]
	return ok && def.Container
}

// Defaults returns a copy of the default property set for the type.
// Unknown types have no defaults.
func (r *Registry) Defaults(typ string) map[string]any {
	def, ok := r.defs[typ]
	if !ok {
		return map[string]any{}
	}
	out := make(map[string]any, len(def.Defaults))
	for k, v := range def.Defaults {
		out[k] = v
	}
	return out
}

// Types returns the registered type tags.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.defs))
	for typ := range r.defs {
		out = append(out, typ)
	}
	return out
}

// Render resolves the type and renders it. Supplied properties overlay the
// type defaults; absent properties never error. Children are forwarded to
// container renderers and ignored by leaves.
func (r *Registry) Render(typ string, props map[string]any, children []*vdom.VNode) *vdom.VNode {
	def, known := r.Lookup(typ)

	merged := make(map[string]any, len(def.Defaults)+len(props))
	for k, v := range def.Defaults {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}

	if !known || !def.Container {
		children = nil
	}
	return def.Render(merged, children)
}

// fallbackDefinition builds the fail-soft definition for an unregistered tag.
// One corrupt record must not blank an entire page.
func fallbackDefinition(typ string) Definition {
	return Definition{
		Type:  typ,
		Label: "Unknown",
		Render: func(props map[string]any, children []*vdom.VNode) *vdom.VNode {
			return vdom.Div(
				vdom.Class("component-unknown"),
				vdom.Data("component-type", typ),
				vdom.Style("border:1px dashed #c00;color:#c00;padding:8px;font-size:13px"),
				vdom.Textf("Unknown component type %q", typ),
			)
		},
	}
}
