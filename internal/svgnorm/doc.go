// Package svgnorm rewrites browser-rendered diagram SVG into print-safe SVG.
//
// Diagram engines running in a browser emit text as HTML inside
// foreignObject elements, which browser layout renders perfectly but
// static PDF rasterizers usually ignore. Normalize re-derives text
// position, grouping, and styling from the DOM and replaces every
// foreignObject with native text elements, then forces a dark-on-white
// palette onto text, paths, and shapes so the result survives printing.
//
// The transformation is pure and synchronous: one SVG string in, one SVG
// string out, no shared state between calls. Every failure mode degrades
// locally (a node that yields no text is dropped, a malformed transform
// contributes a zero offset) rather than aborting the document.
package svgnorm
