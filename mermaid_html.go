package bookforge

import (
	"fmt"
	"strings"
)

// mermaidCDN pins the diagram engine version loaded into the harness.
const mermaidCDN = "https://cdn.jsdelivr.net/npm/mermaid@10.9.1/dist/mermaid.min.js"

// mermaidInitConfig forces the "base" theme with a dark-on-white
// palette so diagrams stay legible on a printed page regardless of the
// engine's defaults. Theme variables mirror the site palette used by
// the print CSS (#111827 text, #374151 strokes).
const mermaidInitConfig = `{
  "theme": "base",
  "themeVariables": {
    "primaryColor": "#2563eb",
    "primaryTextColor": "#1f2937",
    "primaryBorderColor": "#374151",
    "lineColor": "#374151",
    "secondaryColor": "#dbeafe",
    "tertiaryColor": "#f3f4f6",
    "background": "#ffffff",
    "mainBkg": "#ffffff",
    "secondBkg": "#f9fafb",
    "tertiaryBkg": "#f3f4f6",
    "edgeLabelBackground": "#ffffff",
    "clusterBkg": "#f9fafb",
    "clusterBorder": "#d1d5db",
    "defaultLinkColor": "#374151",
    "titleColor": "#111827",
    "darkTextColor": "#111827",
    "textColor": "#111827",
    "labelTextColor": "#111827",
    "loopTextColor": "#111827",
    "noteTextColor": "#111827",
    "activationBorderColor": "#374151",
    "activationBkgColor": "#f3f4f6",
    "sequenceNumberColor": "#ffffff"
  }
}`

// harnessTemplate is the page loaded into headless Chrome for one
// diagram render. The #diagram container is the ready-marker scope:
// mermaid inserts the rendered svg inside it.
const harnessTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<script src="%s"></script>
<style>
body { margin: 0; padding: 20px; background: white; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", "Roboto", sans-serif; }
#diagram { text-align: center; }
.mermaid { background: white; }
.mermaid text, .mermaid tspan { fill: #111827 !important; font-weight: 500; }
.mermaid .nodeLabel, .mermaid .edgeLabel, .mermaid .label { color: #111827 !important; }
.mermaid foreignObject div, .mermaid foreignObject span { color: #111827 !important; font-weight: 500 !important; }
.mermaid .edgeLabel { background-color: white !important; }
.mermaid .node rect, .mermaid .node circle, .mermaid .node ellipse, .mermaid .node polygon { stroke: #374151 !important; stroke-width: 2px !important; fill: #f9fafb !important; }
.mermaid .edgePath path, .mermaid .flowchart-link, .mermaid .relation { stroke: #374151 !important; stroke-width: 2px !important; }
.mermaid .arrowheadPath { fill: #374151 !important; stroke: #374151 !important; }
.mermaid .classGroup rect { stroke: #374151 !important; stroke-width: 2px !important; fill: #f9fafb !important; }
.mermaid .classGroup text, .mermaid .cluster text { fill: #111827 !important; font-weight: 500; }
</style>
</head>
<body>
<div id="diagram" class="mermaid">
%s
</div>
<script>
mermaid.initialize(%s);
mermaid.init();
</script>
</body>
</html>`

// buildDiagramHarness assembles the HTML page that renders one mermaid
// diagram. The source is embedded raw: mermaid reads the container text
// and escaping would corrupt diagram syntax, so script tags are the one
// sequence stripped out.
func buildDiagramHarness(source, theme string) string {
	config := mermaidInitConfig
	if theme != "" && theme != "default" {
		// Replace only the theme name; the palette overrides stay.
		config = strings.Replace(config, `"base"`, fmt.Sprintf("%q", theme), 1)
	}
	return fmt.Sprintf(harnessTemplate, mermaidCDN, sanitizeDiagramSource(source), config)
}

// sanitizeDiagramSource removes sequences that would terminate the
// harness markup early.
func sanitizeDiagramSource(source string) string {
	return strings.ReplaceAll(source, "</", "<\\/")
}
