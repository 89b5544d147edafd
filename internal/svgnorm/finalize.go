package svgnorm

import "golang.org/x/net/html"

// finalize is the last sweep over the tree, guaranteeing every
// text-bearing node ends up with explicit fill, weight, and family. The
// fill attribute is set unconditionally (backstop, not a merge); the
// style attribute only gains declarations that are still missing, so
// running finalize twice yields byte-identical output.
//
// foreignObject nodes that survived conversion are not removed: their
// HTML wrappers get inline visibility styling instead, so content the
// converter could not handle still shows up in the PDF.
func finalize(root *html.Node) {
	for _, n := range findAll(root, func(n *html.Node) bool { return isAnyElement(n, "text", "tspan") }) {
		setAttr(n, "fill", textFill)

		decls := parseStyle(attr(n, "style"))
		decls = ensure(decls, "fill", textFill+" !important")
		decls = ensure(decls, "font-weight", "500")
		decls = ensure(decls, "font-family", fontFamily)
		setAttr(n, "style", serializeStyle(decls))
	}

	for _, fo := range findAll(root, func(n *html.Node) bool { return isElement(n, "foreignObject") }) {
		for _, wrapper := range findAll(fo, func(n *html.Node) bool { return isAnyElement(n, "div", "span", "p") }) {
			decls := parseStyle(attr(wrapper, "style"))
			decls = upsert(decls, "color", textFill+" !important")
			decls = upsert(decls, "font-weight", "500 !important")
			setAttr(wrapper, "style", serializeStyle(decls))
		}
	}
}
