package svgnorm

import (
	"strings"

	"golang.org/x/net/html"
)

// Print palette: dark text and strokes on a white page.
const (
	textFill    = "#111827"
	strokeColor = "#374151"
	strokeWidth = "2px"
	shapeFill   = "#f9fafb"

	fontFamily = `-apple-system, BlinkMacSystemFont, "Segoe UI", "Roboto", sans-serif`
)

// declaration is a single CSS property/value pair from a style attribute.
type declaration struct {
	prop string
	val  string
}

// parseStyle splits a style attribute into ordered declarations,
// discarding empty fragments.
func parseStyle(style string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(style, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		prop, val, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		decls = append(decls, declaration{
			prop: strings.TrimSpace(prop),
			val:  strings.TrimSpace(val),
		})
	}
	return decls
}

// serializeStyle renders declarations back to a style attribute value.
func serializeStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.val)
	}
	return strings.Join(parts, "; ")
}

// upsert replaces the value of prop in place, or appends the
// declaration when absent. Keeping the original position makes the
// operation idempotent: re-running a styling pass leaves the style
// attribute byte-identical.
func upsert(decls []declaration, prop, val string) []declaration {
	for i, d := range decls {
		if d.prop == prop {
			decls[i].val = val
			return decls
		}
	}
	return append(decls, declaration{prop: prop, val: val})
}

// ensure appends the declaration only when prop is not declared yet.
func ensure(decls []declaration, prop, val string) []declaration {
	for _, d := range decls {
		if d.prop == prop {
			return decls
		}
	}
	return append(decls, declaration{prop: prop, val: val})
}

// hasProp reports whether prop is declared.
func hasProp(decls []declaration, prop string) bool {
	for _, d := range decls {
		if d.prop == prop {
			return true
		}
	}
	return false
}

// applyTextStyle forces the dark print fill onto a text or tspan node,
// both as a fill attribute and inside the style attribute, and makes
// sure weight and family are declared. Idempotent.
func applyTextStyle(n *html.Node) {
	decls := parseStyle(attr(n, "style"))
	decls = upsert(decls, "fill", textFill+" !important")
	decls = ensure(decls, "font-weight", "500")
	decls = ensure(decls, "font-family", fontFamily)
	setAttr(n, "style", serializeStyle(decls))
	setAttr(n, "fill", textFill)
}

// applyStrokeStyle enforces the dark stroke on a path node: a node with
// no stroke gains the default stroke and width, a node with one has the
// color replaced while its stroke-width is left untouched. Idempotent.
func applyStrokeStyle(n *html.Node) {
	decls := parseStyle(attr(n, "style"))
	if hasProp(decls, "stroke") {
		decls = upsert(decls, "stroke", strokeColor)
	} else {
		decls = append(decls,
			declaration{prop: "stroke", val: strokeColor},
			declaration{prop: "stroke-width", val: strokeWidth},
		)
	}
	setAttr(n, "style", serializeStyle(decls))
}

// applyShapeStyle applies the path stroke policy to rect, circle,
// ellipse, polygon, and polyline nodes, plus a light default fill when
// none is declared. Idempotent.
func applyShapeStyle(n *html.Node) {
	decls := parseStyle(attr(n, "style"))
	if hasProp(decls, "stroke") {
		decls = upsert(decls, "stroke", strokeColor)
	} else {
		decls = append(decls,
			declaration{prop: "stroke", val: strokeColor},
			declaration{prop: "stroke-width", val: strokeWidth},
		)
	}
	decls = ensure(decls, "fill", shapeFill)
	setAttr(n, "style", serializeStyle(decls))
}

// applyLabelGroupStyle handles g elements whose class marks them as
// label or text containers: descendant text gets the dark style, and
// HTML wrappers inside any nested foreignObject are forced visible.
func applyLabelGroupStyle(g *html.Node) {
	class := strings.ToLower(attr(g, "class"))
	if !strings.Contains(class, "label") && !strings.Contains(class, "text") {
		return
	}

	for _, n := range findAll(g, func(n *html.Node) bool { return isAnyElement(n, "text", "tspan") }) {
		applyTextStyle(n)
	}

	for _, fo := range findAll(g, func(n *html.Node) bool { return isElement(n, "foreignObject") }) {
		for _, wrapper := range findAll(fo, func(n *html.Node) bool { return isAnyElement(n, "div", "span") }) {
			decls := parseStyle(attr(wrapper, "style"))
			decls = upsert(decls, "color", textFill+" !important")
			setAttr(wrapper, "style", serializeStyle(decls))
		}
	}
}
