package svgnorm

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Class-diagram line layout, in SVG user units. Lines stack from the top
// of the node box: the first emitted line sits at classLineBase, each
// subsequent one classLinePitch lower.
const (
	classLineBase  = 15.0
	classLinePitch = 16.0
)

// visibilityMarkers are the UML member prefixes (+ public, - private,
// # protected, ~ package). A line containing any of them is an
// attribute or method, never a class name.
const visibilityMarkers = "+-#~"

// baselineAdjust compensates for the text baseline sitting below the
// geometric center of the box for this font stack.
const baselineAdjust = 4.0

// convertGroup replaces every foreignObject in the group with native
// text elements. Members that extract no text are removed without a
// replacement. A multi-member group in a class diagram is laid out as
// vertically stacked lines inside the node box; everything else is
// converted one box at a time.
func convertGroup(group nodeGroup, classDiagram bool) {
	if classDiagram && len(group.members) > 1 {
		line := 0
		for _, fo := range group.members {
			replacement := convertClassLine(fo, line)
			if replacement != nil {
				line++
			}
			replaceNode(fo, replacement)
		}
		return
	}

	for _, fo := range group.members {
		replaceNode(fo, convertSingle(fo))
	}
}

// convertClassLine synthesizes one stacked text line of a class-diagram
// node box. line is the index among emitted (non-empty) lines, which
// fixes both the vertical offset and the title heuristic: one of the
// first two lines with no UML visibility marker is the class name and
// gets title styling. Returns nil for empty content, which the caller
// must skip without advancing the line index.
func convertClassLine(foreignObject *html.Node, line int) *html.Node {
	content, ok := extractText(foreignObject)
	if !ok || strings.TrimSpace(content) == "" {
		return nil
	}

	width := floatAttr(foreignObject, "width", defaultBoxWidth)

	el := newTextElement(content)
	setAttr(el, "x", formatCoord(width/2))
	setAttr(el, "y", formatCoord(classLineBase+float64(line)*classLinePitch))
	setAttr(el, "text-anchor", "middle")
	setAttr(el, "dominant-baseline", "middle")
	setAttr(el, "fill", textFill)

	if line <= 1 && !strings.ContainsAny(content, visibilityMarkers) {
		setAttr(el, "style", titleTextStyle)
	} else {
		setAttr(el, "style", regularTextStyle)
	}
	return el
}

// convertSingle synthesizes the replacement text for a one-text-per-box
// node (flowcharts, sequence diagrams, detached class labels). Class
// structures carry no positioning transform of their own, so a box under
// a classGroup ancestor is placed absolutely from the box geometry plus
// the accumulated ancestor translation; every other diagram family
// positions an enclosing group and the text centers within the local
// box only. Returns nil for empty content.
func convertSingle(foreignObject *html.Node) *html.Node {
	content, ok := extractText(foreignObject)
	if !ok {
		return nil
	}

	var (
		x      = floatAttr(foreignObject, "x", 0)
		y      = floatAttr(foreignObject, "y", 0)
		width  = floatAttr(foreignObject, "width", defaultBoxWidth)
		height = floatAttr(foreignObject, "height", defaultBoxHeight)
	)
	dx, dy := accumulateTranslation(foreignObject)

	el := newTextElement(content)
	if strings.Contains(ancestorClasses(foreignObject), "classGroup") {
		setAttr(el, "x", formatCoord(x+dx+width/2))
		setAttr(el, "y", formatCoord(y+dy+height/2+baselineAdjust))
	} else {
		setAttr(el, "x", formatCoord(width/2))
		setAttr(el, "y", formatCoord(height/2+baselineAdjust))
	}
	setAttr(el, "text-anchor", "middle")
	setAttr(el, "dominant-baseline", "middle")
	setAttr(el, "fill", textFill)
	setAttr(el, "style", regularTextStyle)
	return el
}

// Inline styles for synthesized text. The fill is declared both here and
// as an attribute because some rasterizers honor one but not the other.
const (
	titleTextStyle   = "font-family: " + fontFamily + "; font-size: 16px; font-weight: bold; fill: " + textFill
	regularTextStyle = "font-family: " + fontFamily + "; font-size: 14px; font-weight: 500; fill: " + textFill
)

// formatCoord renders a coordinate without a trailing ".0" for whole
// numbers, matching what diagram engines emit.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
