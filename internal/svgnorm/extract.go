package svgnorm

import "golang.org/x/net/html"

// extractText pulls the most meaningful text string out of the HTML
// content nested inside a foreignObject. Diagram engines wrap the label
// in several layers of div/span, most of them empty or duplicating the
// label, so the longest trimmed string wins; ties resolve to the first
// wrapper encountered in document order. When no wrapper carries text
// the flattened text of the whole subtree is used as a fallback.
//
// The second return value is false when the node holds no text at all.
// Callers must then drop the node instead of synthesizing an empty
// text element.
func extractText(foreignObject *html.Node) (string, bool) {
	var best string
	walk(foreignObject, func(n *html.Node) {
		if !isAnyElement(n, "div", "span", "p") {
			return
		}
		if content := textContent(n); len(content) > len(best) {
			best = content
		}
	})

	if best == "" {
		best = textContent(foreignObject)
	}
	if best == "" {
		return "", false
	}
	return best, true
}
