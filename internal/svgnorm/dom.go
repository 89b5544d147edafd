package svgnorm

import (
	"strings"

	"golang.org/x/net/html"
)

// isElement reports whether n is an element with the given tag name.
// Comparison is ASCII case-insensitive: the HTML parser preserves the
// camelCase of known SVG tags (foreignObject) but lowercases others, and
// browser output is not consistent either.
func isElement(n *html.Node, name string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, name)
}

// isAnyElement reports whether n matches one of the given tag names.
func isAnyElement(n *html.Node, names ...string) bool {
	for _, name := range names {
		if isElement(n, name) {
			return true
		}
	}
	return false
}

// walk visits n and all descendants in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// findAll returns every node under root (inclusive) matching pred,
// in document order.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	walk(root, func(n *html.Node) {
		if pred(n) {
			found = append(found, n)
		}
	})
	return found
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// setAttr sets the named attribute, replacing an existing value.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// textContent flattens all text nodes under n, trimming each fragment.
// Mirrors the whitespace handling diagram engines rely on: wrapper
// elements contribute no separators of their own.
func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(c.Data))
		}
	})
	return sb.String()
}

// replaceNode swaps old for replacement in the parent's child list.
// A nil replacement just removes old. The detached subtree is discarded.
func replaceNode(old, replacement *html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	if replacement != nil {
		parent.InsertBefore(replacement, old)
	}
	parent.RemoveChild(old)
}

// newElement creates a detached element node.
func newElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag}
}

// newTextElement creates an svg text element carrying the given content.
func newTextElement(content string) *html.Node {
	el := newElement("text")
	el.AppendChild(&html.Node{Type: html.TextNode, Data: content})
	return el
}
