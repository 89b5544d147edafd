package svgnorm

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Default box dimensions for foreignObject nodes missing geometry
// attributes. Zero-size boxes would collapse the synthesized text, so
// width and height fall back to a plausible label box instead of zero.
const (
	defaultBoxWidth  = 100
	defaultBoxHeight = 20
)

// translatePattern matches translate(x) and translate(x,y) transform
// functions. Other transform functions (rotate, scale, matrix) are
// deliberately not modeled and contribute nothing.
var translatePattern = regexp.MustCompile(`translate\(\s*([^,()\s]+)\s*(?:[,\s]\s*([^()\s]+)\s*)?\)`)

// isClassDiagram reports whether the tree rooted at svgRoot was produced
// by a class-diagram renderer. The classification is derived from the
// aria-roledescription attribute on the root svg element; anything other
// than "classDiagram" (including absence) is treated as a flat diagram.
func isClassDiagram(svgRoot *html.Node) bool {
	return attr(svgRoot, "aria-roledescription") == "classDiagram"
}

// findGroupAncestor returns the nearest ancestor of n that represents a
// whole diagram node: an element whose class list contains both the
// "node" and "default" tokens. Matching is an exact token match against
// the space-separated class list, not a substring match, so e.g.
// "nodes defaultish" does not qualify. Returns nil when no such ancestor
// exists below the svg root.
func findGroupAncestor(n *html.Node) *html.Node {
	for p := n.Parent; p != nil && !isElement(p, "svg"); p = p.Parent {
		if hasClassToken(p, "node") && hasClassToken(p, "default") {
			return p
		}
	}
	return nil
}

// hasClassToken reports whether the element's class attribute contains
// the exact token (case-sensitive).
func hasClassToken(n *html.Node, token string) bool {
	for _, t := range strings.Fields(attr(n, "class")) {
		if t == token {
			return true
		}
	}
	return false
}

// ancestorClasses joins the class attributes of every ancestor of n up
// to (excluding) the svg root. Used for coarse diagram-family checks
// such as the classGroup substring test.
func ancestorClasses(n *html.Node) string {
	var classes []string
	for p := n.Parent; p != nil && !isElement(p, "svg"); p = p.Parent {
		if c := attr(p, "class"); c != "" {
			classes = append(classes, c)
		}
	}
	return strings.Join(classes, " ")
}

// accumulateTranslation walks from n up to (excluding) the svg root and
// sums every translate(x[,y]) transform function found on the way. A
// missing y defaults to 0. A function whose argument fails to parse
// contributes a zero offset for that function only; the walk continues.
// Rotation and scale are ignored (documented limitation).
func accumulateTranslation(n *html.Node) (dx, dy float64) {
	for p := n.Parent; p != nil && !isElement(p, "svg"); p = p.Parent {
		transform := attr(p, "transform")
		if transform == "" {
			continue
		}
		for _, m := range translatePattern.FindAllStringSubmatch(transform, -1) {
			x, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			var y float64
			if m[2] != "" {
				y, err = strconv.ParseFloat(m[2], 64)
				if err != nil {
					continue
				}
			}
			dx += x
			dy += y
		}
	}
	return dx, dy
}

// floatAttr parses a numeric attribute, returning fallback when the
// attribute is absent or not a number.
func floatAttr(n *html.Node, key string, fallback float64) float64 {
	raw := attr(n, key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return v
}
