package bookforge

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Service orchestrates the markdown-book-to-PDF pipeline.
type Service struct {
	cfg           serviceConfig
	diagrams      DiagramRenderer
	htmlConverter htmlConverter
	pdfConverter  pdfConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithLogger).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:        defaultTimeout,
			diagramTheme:   defaultDiagramTheme,
			highlightStyle: defaultHighlightStyle,
			logger:         log.New(io.Discard),
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create browser-backed collaborators if not injected (e.g., by tests)
	if s.diagrams == nil {
		s.diagrams = newRodDiagramRenderer(s.cfg.diagramTheme, s.cfg.timeout)
	}
	if s.htmlConverter == nil {
		s.htmlConverter = newGoldmarkConverter(s.cfg.highlightStyle, s.diagrams, s.cfg.logger)
	}
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout)
	}

	return s
}

// Export runs the full pipeline: read every chapter, convert to HTML
// with diagram rendering, assemble the book shell with typography CSS,
// and print to PDF. Missing chapter files are warned about and
// skipped; diagram failures degrade to code blocks inside the
// converter. The context is used for cancellation and timeout.
func (s *Service) Export(ctx context.Context, book Book) (*Result, error) {
	if len(book.Files) == 0 {
		return nil, ErrNoFiles
	}
	if err := book.Page.Validate(); err != nil {
		return nil, err
	}

	title := book.Title
	if title == "" {
		title = "Untitled"
	}

	var chapters []string
	for _, path := range book.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			s.cfg.logger.Warn("skipping unreadable markdown file", "path", path, "err", err)
			continue
		}

		fragment, err := s.htmlConverter.ToHTML(ctx, string(content))
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", path, err)
		}
		chapters = append(chapters, fragment)
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w: none of the listed files could be read", ErrNoFiles)
	}

	body := strings.Join(chapters, pageBreakDiv+"\n")

	htmlContent, err := buildBookHTML(title, book.Author, body, book.Template)
	if err != nil {
		return nil, err
	}

	fonts := DefaultFontSettings()
	if book.Fonts != nil {
		merged := overrideFonts(*fonts, *book.Fonts)
		fonts = &merged
	}
	css := buildFontCSS(*fonts)
	if book.CSS != "" {
		css += "\n" + book.CSS
	}
	htmlContent = injectCSS(htmlContent, css)

	result := &Result{HTML: htmlContent}
	if book.HTMLOnly {
		return result, nil
	}

	pdfBytes, err := s.pdfConverter.ToPDF(ctx, htmlContent, book.Page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	result.PDF = pdfBytes

	return result, nil
}

// Close releases browser resources held by the diagram renderer and
// the PDF converter.
func (s *Service) Close() error {
	var firstErr error
	if s.diagrams != nil {
		if err := s.diagrams.Close(); err != nil {
			firstErr = err
		}
	}
	if s.pdfConverter != nil {
		if err := s.pdfConverter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
