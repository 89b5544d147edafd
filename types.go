package bookforge

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// FontSettings configures the typographic scale of the book.
// Values are CSS lengths ("12pt", "1.1em"); LineHeight is unitless.
type FontSettings struct {
	BaseFontSize string
	LineHeight   string
	H1Size       string
	H2Size       string
	H3Size       string
	CodeSize     string
}

// fontPresets are the named typographic scales selectable by config.
var fontPresets = map[string]FontSettings{
	"book": {
		BaseFontSize: "12pt",
		LineHeight:   "1.6",
		H1Size:       "24pt",
		H2Size:       "20pt",
		H3Size:       "16pt",
		CodeSize:     "10pt",
	},
	"technical": {
		BaseFontSize: "11pt",
		LineHeight:   "1.5",
		H1Size:       "20pt",
		H2Size:       "16pt",
		H3Size:       "14pt",
		CodeSize:     "9.5pt",
	},
	"compact": {
		BaseFontSize: "10pt",
		LineHeight:   "1.4",
		H1Size:       "18pt",
		H2Size:       "14pt",
		H3Size:       "12pt",
		CodeSize:     "9pt",
	},
}

// DefaultFontSettings returns the "book" preset.
func DefaultFontSettings() *FontSettings {
	preset := fontPresets["book"]
	return &preset
}

// FontPreset returns the named preset.
func FontPreset(name string) (*FontSettings, error) {
	preset, ok := fontPresets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFontPreset, name)
	}
	return &preset, nil
}

// Book contains export parameters for one PDF book.
type Book struct {
	Title    string        // Book title for the title page (default "Untitled")
	Author   string        // Author line for the title page (optional)
	Files    []string      // Ordered markdown file paths (required)
	CSS      string        // Custom CSS appended after the font CSS (optional)
	Template string        // Custom HTML template path (optional, "" = built-in)
	Fonts    *FontSettings // Typography (nil = "book" preset)
	Page     *PageSettings // Page settings (nil = defaults)
	HTMLOnly bool          // Skip PDF generation
}

// Result holds the export output.
type Result struct {
	HTML string // Assembled HTML document
	PDF  []byte // nil when Book.HTMLOnly is set
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout        time.Duration
	diagramTheme   string
	highlightStyle string
	logger         *log.Logger
}

// Default tunables.
const (
	defaultTimeout        = 30 * time.Second
	defaultDiagramTheme   = "default"
	defaultHighlightStyle = "github"
)

// WithTimeout sets the browser operation timeout (diagram readiness and
// PDF rendering). Panics if d <= 0 (programmer error, similar to
// time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("bookforge: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithLogger sets the logger used for non-fatal pipeline warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.cfg.logger = logger
		}
	}
}

// WithDiagramTheme sets the mermaid theme passed to the diagram engine.
func WithDiagramTheme(theme string) Option {
	return func(s *Service) {
		s.cfg.diagramTheme = theme
	}
}

// WithHighlightStyle sets the chroma style used for fenced code blocks.
func WithHighlightStyle(style string) Option {
	return func(s *Service) {
		s.cfg.highlightStyle = style
	}
}

// WithDiagramRenderer replaces the headless-browser diagram renderer,
// e.g. with a stub in tests.
func WithDiagramRenderer(r DiagramRenderer) Option {
	return func(s *Service) {
		s.diagrams = r
	}
}
