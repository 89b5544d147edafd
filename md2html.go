package bookforge

import (
	"bytes"
	"context"
	"fmt"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// htmlConverter abstracts Markdown to HTML conversion.
type htmlConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// goldmarkConverter converts Markdown chapters to HTML fragments using
// goldmark (pure Go), with GFM extensions, chroma syntax highlighting,
// and browser-rendered diagrams for mermaid fenced blocks.
type goldmarkConverter struct {
	highlightStyle string
	diagrams       DiagramRenderer
	logger         *log.Logger
}

// newGoldmarkConverter creates a converter. diagrams may be nil, in
// which case mermaid blocks fall back to plain code.
func newGoldmarkConverter(highlightStyle string, diagrams DiagramRenderer, logger *log.Logger) *goldmarkConverter {
	if styles.Get(highlightStyle) == styles.Fallback && highlightStyle != "fallback" {
		logger.Warn("unknown highlight style, using fallback", "style", highlightStyle)
	}
	return &goldmarkConverter{
		highlightStyle: highlightStyle,
		diagrams:       diagrams,
		logger:         logger,
	}
}

// newMarkdown assembles a goldmark instance bound to one conversion.
// The diagram pipeline captures ctx because goldmark render callbacks
// take none, so instances are not reused across calls.
func (c *goldmarkConverter) newMarkdown(ctx context.Context) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(c.highlightStyle),
			),
			&diagramExtension{pipeline: &diagramPipeline{
				ctx:      ctx,
				renderer: c.diagrams,
				logger:   c.logger,
			}},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Stable heading IDs for intra-book links
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
		),
	)
}

// ToHTML converts one chapter of Markdown to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context; the diagram pipeline
// additionally observes ctx on every browser round trip.
func (c *goldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	md := c.newMarkdown(ctx)

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
