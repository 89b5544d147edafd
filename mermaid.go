package bookforge

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mnishi/bookforge/internal/fileutil"
)

// DiagramRenderer turns diagram source into a browser-rendered SVG
// string. Implementations own a browser resource: Close must be called
// at the end of a run.
type DiagramRenderer interface {
	RenderSVG(ctx context.Context, source string) (string, error)
	Close() error
}

// Compile-time interface check
var _ DiagramRenderer = (*rodDiagramRenderer)(nil)

// readySelector matches the svg element mermaid inserts into the
// harness container once rendering finished. Its appearance is the
// ready marker.
const readySelector = "#diagram svg"

// defaultSettleDelay is the fixed wait after the ready marker appears.
// Mermaid keeps adjusting layout asynchronously for a moment after the
// svg element exists.
const defaultSettleDelay = time.Second

// rodDiagramRenderer renders mermaid source in headless Chrome via
// go-rod. One browser is shared across renders and connected lazily on
// first use; each render gets a short-lived page that is closed on
// every exit path.
type rodDiagramRenderer struct {
	browser *rod.Browser
	theme   string
	timeout time.Duration
	settle  time.Duration
}

// newRodDiagramRenderer creates a renderer with the given theme and
// ready-marker timeout.
func newRodDiagramRenderer(theme string, timeout time.Duration) *rodDiagramRenderer {
	return &rodDiagramRenderer{
		theme:   theme,
		timeout: timeout,
		settle:  defaultSettleDelay,
	}
}

// ensureBrowser lazily connects to the browser.
func (r *rodDiagramRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodDiagramRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderSVG renders diagram source and returns the outer HTML of the
// resulting svg element. A ready marker that never appears within the
// timeout surfaces as ErrRenderTimeout, which callers treat as
// recoverable.
func (r *rodDiagramRenderer) RenderSVG(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := r.ensureBrowser(); err != nil {
		return "", err
	}

	harness := buildDiagramHarness(source, r.theme)
	tmpPath, cleanup, err := fileutil.WriteTempFile(harness, "html")
	if err != nil {
		return "", err
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
		if timeout <= 0 {
			return "", context.DeadlineExceeded
		}
	}

	el, err := page.Timeout(timeout).Element(readySelector)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	}

	// Settling delay: the ready marker precedes the final layout.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(r.settle):
	}

	svg, err := el.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}
	return svg, nil
}
