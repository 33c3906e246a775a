package tree

import (
	"github.com/sitesmith/sitesmith/internal/registry"
	"github.com/sitesmith/sitesmith/pkg/vdom"
)

// RenderOptions selects the rendering context.
type RenderOptions struct {
	// Annotate tags every component's node with data-component-id and
	// data-component-type so the editing canvas can address components by
	// DOM element. The static path leaves it off; annotation is the only
	// difference between the two contexts, the visual structure is shared.
	Annotate bool
}

// Render composes the forest through the registry into a single fragment.
// Children render before their parent so container renderers receive the
// already-resolved child nodes.
func (t *Tree) Render(reg *registry.Registry, opts RenderOptions) *vdom.VNode {
	nodes := make([]*vdom.VNode, 0, len(t.roots))
	for _, root := range t.roots {
		nodes = append(nodes, renderNode(root, reg, opts))
	}
	return vdom.Fragment(nodes)
}

func renderNode(n *Node, reg *registry.Registry, opts RenderOptions) *vdom.VNode {
	children := make([]*vdom.VNode, 0, len(n.Children))
	for _, child := range n.Children {
		children = append(children, renderNode(child, reg, opts))
	}

	rendered := reg.Render(n.Component.Type, n.Component.Properties, children)
	if !opts.Annotate {
		return rendered
	}
	return annotate(rendered, n.Component.ID, n.Component.Type)
}

// annotate attaches canvas addressing attributes to the rendered node.
// Non-element nodes get a neutral wrapper so the canvas can still target them.
func annotate(node *vdom.VNode, id, typ string) *vdom.VNode {
	if node == nil {
		return nil
	}
	if node.Kind != vdom.KindElement {
		node = vdom.Div(node)
	}
	if node.Props == nil {
		node.Props = make(vdom.Props)
	}
	node.Props["data-component-id"] = id
	node.Props["data-component-type"] = typ
	return node
}
