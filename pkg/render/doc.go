// Package render serializes vdom trees to HTML.
//
// It walks the VNode tree rather than a host tree, so the output shows what
// a tree describes, independent of how it was patched into place:
//
//   - Text and attribute values are escaped
//   - Void elements (input, br, img, ...) have no closing tag
//   - Boolean attributes (disabled, checked, ...) render as a bare name
//   - Event handlers and the "key" property are never rendered
//
// Component nodes render their current subtree, so they must be mounted
// first. Portal nodes render nothing in place: their content belongs to the
// portal target.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// Pretty printing indents block elements:
//
//	renderer := render.NewRenderer(render.RendererConfig{Pretty: true})
package render
