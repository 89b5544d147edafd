package bookforge

import (
	"context"
	"errors"
	"html"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/mnishi/bookforge/internal/svgnorm"
)

// diagramLanguage is the fenced-block language that triggers diagram
// rendering.
const diagramLanguage = "mermaid"

// diagramBlock is the AST node a mermaid fenced block is rewritten
// into. Keeping a dedicated kind leaves ordinary fenced blocks to the
// syntax-highlighting renderer.
type diagramBlock struct {
	ast.BaseBlock
	source []byte
}

// kindDiagramBlock is the node kind for diagram blocks.
var kindDiagramBlock = ast.NewNodeKind("DiagramBlock")

// Kind implements ast.Node.
func (n *diagramBlock) Kind() ast.NodeKind { return kindDiagramBlock }

// Dump implements ast.Node.
func (n *diagramBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Source": string(n.source)}, nil)
}

// IsRaw implements ast.Node: the diagram source must not be parsed as
// markdown.
func (n *diagramBlock) IsRaw() bool { return true }

// diagramTransformer rewrites mermaid fenced code blocks into
// diagramBlock nodes after parsing.
type diagramTransformer struct{}

// Transform implements parser.ASTTransformer.
func (t *diagramTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var fenced []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fcb, ok := n.(*ast.FencedCodeBlock); ok && string(fcb.Language(source)) == diagramLanguage {
			fenced = append(fenced, fcb)
		}
		return ast.WalkContinue, nil
	})

	for _, fcb := range fenced {
		var sb strings.Builder
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(source))
		}

		block := &diagramBlock{source: []byte(sb.String())}
		parent := fcb.Parent()
		parent.ReplaceChild(parent, fcb, block)
	}
}

// diagramPipeline renders one diagram block end to end: browser render,
// then print normalization. It carries the conversion context because
// goldmark's renderer callbacks have no context parameter; a pipeline
// instance belongs to exactly one ToHTML call.
type diagramPipeline struct {
	ctx      context.Context
	renderer DiagramRenderer
	logger   *log.Logger
}

// render returns the normalized SVG for the given diagram source.
func (p *diagramPipeline) render(source string) (string, error) {
	if p.renderer == nil {
		return "", errors.New("no diagram renderer configured")
	}

	svg, err := p.renderer.RenderSVG(p.ctx, source)
	if err != nil {
		return "", err
	}
	return svgnorm.Normalize(svg)
}

// diagramHTMLRenderer writes diagram blocks as centered inline SVG,
// falling back to a plain fenced code block when rendering or
// normalization fails. The fallback path is the error boundary the
// document pipeline relies on: a broken diagram degrades, the export
// never aborts.
type diagramHTMLRenderer struct {
	pipeline *diagramPipeline
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *diagramHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindDiagramBlock, r.renderBlock)
}

func (r *diagramHTMLRenderer) renderBlock(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	block := node.(*diagramBlock)
	source := string(block.source)

	svg, err := r.pipeline.render(source)
	if err != nil {
		r.pipeline.logger.Warn("diagram rendering failed, falling back to code block", "err", err)
		_, _ = w.WriteString(`<pre><code class="language-mermaid">`)
		_, _ = w.WriteString(html.EscapeString(source))
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<div class="diagram">`)
	_, _ = w.WriteString(svg)
	_, _ = w.WriteString("</div>\n")
	return ast.WalkContinue, nil
}

// diagramExtension wires the transformer and renderer into goldmark.
type diagramExtension struct {
	pipeline *diagramPipeline
}

// Extend implements goldmark.Extender.
func (e *diagramExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&diagramTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&diagramHTMLRenderer{pipeline: e.pipeline}, 100),
	))
}
