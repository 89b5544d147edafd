package bookforge

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"
)

// pageBreakDiv separates chapters so each markdown file starts on a
// fresh page.
const pageBreakDiv = `<div style="page-break-after: always;"></div>`

// bookTemplate is the built-in HTML shell: a title page followed by the
// assembled chapters. Styling arrives separately via injectCSS.
const bookTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div class="title-page">
<h1>{{.Title}}</h1>
{{if .Author}}<div class="author">by {{.Author}}</div>{{end}}
</div>
{{.Content}}
</body>
</html>`

// bookTemplateData feeds bookTemplate. Content is pre-rendered HTML
// from the markdown pipeline, not user text.
type bookTemplateData struct {
	Title   string
	Author  string
	Content template.HTML
}

var compiledBookTemplate = template.Must(template.New("book").Parse(bookTemplate))

// buildBookHTML wraps assembled chapter HTML in the book shell. When
// templatePath is non-empty that file is used instead of the built-in
// template; it uses the config placeholder syntax ({{ title }},
// {{ author }}, {{ content }}).
func buildBookHTML(title, author, content, templatePath string) (string, error) {
	if templatePath != "" {
		return buildFromCustomTemplate(title, author, content, templatePath)
	}

	var buf bytes.Buffer
	err := compiledBookTemplate.Execute(&buf, bookTemplateData{
		Title:   title,
		Author:  author,
		Content: template.HTML(content),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// buildFromCustomTemplate substitutes the book fields into a user
// template file. Plain string substitution, matching the placeholder
// format book configs document; the user owns escaping in their own
// template.
func buildFromCustomTemplate(title, author, content, templatePath string) (string, error) {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrTemplateRender, templatePath, err)
	}

	page := string(raw)
	page = strings.ReplaceAll(page, "{{ title }}", title)
	page = strings.ReplaceAll(page, "{{ author }}", author)
	page = strings.ReplaceAll(page, "{{ content }}", content)
	return page, nil
}

// injectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent breaking out of the style block.
func injectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		// Find the closing > of <body...>
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could close a <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
