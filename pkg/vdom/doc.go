// Package vdom defines the intermediate node representation shared by the
// editing canvas and the static HTML renderer. Component renderers produce
// *VNode trees; consumers either mount them into a live editing surface or
// serialize them to HTML. The representation is framework-agnostic: a node is
// just a tag, a property map, and children.
package vdom
