package bookforge

import "fmt"

// defaultFontFamily is the standard font stack for book body text.
const defaultFontFamily = `-apple-system, BlinkMacSystemFont, "Segoe UI", "Roboto", sans-serif`

// buildFontCSS compiles font settings into the base book stylesheet:
// body scale, title page, heading sizes, code blocks, diagram
// containers, and page-break protection for headings.
func buildFontCSS(f FontSettings) string {
	return fmt.Sprintf(`body {
  font-family: %s;
  margin: 20px;
  font-size: %s;
  line-height: %s;
  color: #111827;
}
.title-page {
  text-align: center;
  margin-bottom: 50px;
  padding: 50px 0;
  border-bottom: 2px solid #333;
  page-break-after: always;
}
.title-page h1 {
  font-size: %s;
  margin-bottom: 20px;
  color: #333;
}
.title-page .author {
  font-size: %s;
  color: #666;
  font-style: italic;
}
h1 { color: #333; font-size: %s; }
h2 { color: #333; font-size: %s; }
h3 { color: #333; font-size: %s; }
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
code {
  background-color: #f4f4f4;
  padding: 2px 4px;
  font-size: %s;
}
pre {
  background-color: #f4f4f4;
  padding: 10px;
  overflow-x: auto;
  font-size: %s;
  break-inside: avoid;
}
table { border-collapse: collapse; }
th, td { border: 1px solid #d1d5db; padding: 4px 8px; }
.diagram {
  text-align: center;
  margin: 1em 0;
  break-inside: avoid;
  page-break-inside: avoid;
}
.diagram svg { max-width: 100%%; }
`,
		defaultFontFamily,
		f.BaseFontSize,
		f.LineHeight,
		f.H1Size,
		f.H2Size,
		f.H1Size,
		f.H2Size,
		f.H3Size,
		f.CodeSize,
		f.CodeSize,
	)
}
