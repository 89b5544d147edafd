// Package bookforge assembles Markdown source files into a styled PDF
// book using headless Chrome.
//
// # Quick Start
//
// Create a service, export a book, and close when done:
//
//	svc := bookforge.New()
//	defer svc.Close()
//
//	result, err := svc.Export(ctx, bookforge.Book{
//	    Title:  "Field Guide",
//	    Author: "Jane Doe",
//	    Files:  []string{"intro.md", "chapters/01.md"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("book.pdf", result.PDF, 0o644)
//
// The result carries both the PDF bytes and the intermediate HTML for
// debugging. Set Book.HTMLOnly to skip PDF generation.
//
// # Export Pipeline
//
//  1. Markdown to HTML per chapter via Goldmark (GFM, footnotes,
//     syntax highlighting)
//  2. Mermaid fenced blocks rendered in headless Chrome and normalized
//     to print-safe SVG (internal/svgnorm)
//  3. Chapters joined with page breaks and wrapped in the book template
//     (title page, font preset CSS, user CSS)
//  4. PDF rendering via headless Chrome (go-rod)
//
// Diagram failures are never fatal: a block that cannot be rendered
// falls back to plain code and the export continues.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := bookforge.New(
//	    bookforge.WithTimeout(2 * time.Minute),
//	    bookforge.WithLogger(logger),
//	)
//
// YAML configuration files (export config and book structure) are
// supported through LoadExportConfig and LoadBookStructure; see the
// cmd/bookforge binary for the complete flow.
package bookforge
