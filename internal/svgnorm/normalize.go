package svgnorm

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Normalize rewrites a browser-rendered diagram SVG into one that uses
// only native vector primitives. The input may arrive wrapped in an
// html/body envelope; the output is exactly the svg subtree.
//
// When the input contains no svg element at all, the best-effort parsed
// document is returned as-is: a degraded diagram beats no diagram, so
// structural anomalies are not errors. The only error path is a failure
// to parse the input stream.
func Normalize(svgHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(svgHTML))
	if err != nil {
		return "", fmt.Errorf("parsing diagram markup: %w", err)
	}

	sel := doc.Find("svg").First()
	if sel.Length() == 0 {
		// No svg root: hand back whatever parsed.
		return doc.Html()
	}
	root := sel.Get(0)

	setAttr(root, "style", "background: white;")
	normalizeTree(root)

	out, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", fmt.Errorf("serializing diagram: %w", err)
	}
	return out, nil
}

// normalizeTree runs the conversion and styling passes over a parsed
// svg subtree, mutating it in place.
func normalizeTree(root *html.Node) {
	classDiagram := isClassDiagram(root)

	foreignObjects := findAll(root, func(n *html.Node) bool { return isElement(n, "foreignObject") })
	for _, group := range groupForeignObjects(foreignObjects, classDiagram) {
		convertGroup(group, classDiagram)
	}

	for _, n := range findAll(root, func(n *html.Node) bool { return isAnyElement(n, "text", "tspan") }) {
		applyTextStyle(n)
	}
	for _, n := range findAll(root, func(n *html.Node) bool { return isElement(n, "path") }) {
		applyStrokeStyle(n)
	}
	for _, n := range findAll(root, func(n *html.Node) bool {
		return isAnyElement(n, "rect", "circle", "ellipse", "polygon", "polyline")
	}) {
		applyShapeStyle(n)
	}
	for _, n := range findAll(root, func(n *html.Node) bool { return isElement(n, "g") }) {
		applyLabelGroupStyle(n)
	}

	finalize(root)
}
