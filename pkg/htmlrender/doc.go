// Package htmlrender serializes vdom trees to HTML strings.
//
// This is the static backend of the dual-context rendering pipeline: the same
// vdom trees the editing canvas mounts interactively are serialized here to
// standalone markup for preview and public serving. Serialization is
// deterministic (attributes are emitted in sorted order) so that rendering the
// same tree twice always yields byte-identical output. Event-handler props are
// skipped entirely; they only matter to interactive consumers.
package htmlrender
