package bookforge

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mnishi/bookforge/internal/yamlutil"
)

// ExportConfig is the YAML export configuration: book metadata, paths,
// typography, and diagram tuning. Relative paths are resolved against
// the project root (source files against SourceRoot) via ResolvePaths.
type ExportConfig struct {
	Title                string        `yaml:"title"`
	Author               string        `yaml:"author"`
	SourceRoot           string        `yaml:"source_root"`
	OutputFile           string        `yaml:"output_file"`
	Template             string        `yaml:"template"`
	CSS                  string        `yaml:"css"`
	FontPreset           string        `yaml:"font_preset"`
	FontSettings         FontConfig    `yaml:"font_settings"`
	IncludeMarkdownFiles []string      `yaml:"include_markdown_files"`
	Diagram              DiagramConfig `yaml:"diagram"`
	Page                 PageConfig    `yaml:"page"`
}

// FontConfig holds per-book typography overrides. Empty fields fall
// back to the selected preset.
type FontConfig struct {
	BaseFontSize string `yaml:"base_font_size"`
	LineHeight   string `yaml:"line_height"`
	H1Size       string `yaml:"h1_size"`
	H2Size       string `yaml:"h2_size"`
	H3Size       string `yaml:"h3_size"`
	CodeSize     string `yaml:"code_size"`
}

// DiagramConfig tunes mermaid rendering.
type DiagramConfig struct {
	Theme          string `yaml:"theme"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// PageConfig holds PDF page options.
type PageConfig struct {
	Size        string  `yaml:"size"`
	Orientation string  `yaml:"orientation"`
	Margin      float64 `yaml:"margin"`
}

// BookStructure is the YAML description of the book's chapter order.
type BookStructure struct {
	Sections []Section `yaml:"sections"`
}

// Section is one ordered part of the book.
type Section struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files"`
}

// LoadExportConfig reads and parses an export configuration file.
func LoadExportConfig(path string) (*ExportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &ExportConfig{}
	if err := yamlutil.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return cfg, nil
}

// LoadBookStructure reads and parses a book structure file.
func LoadBookStructure(path string) (*BookStructure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading book structure %s: %w", path, err)
	}

	structure := &BookStructure{}
	if err := yamlutil.UnmarshalStrict(data, structure); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return structure, nil
}

// ResolvePaths converts relative paths to absolute: template, CSS, and
// output file against projectRoot; included markdown files against the
// source root (which itself defaults to projectRoot). Mutates c and
// returns it for chaining.
func (c *ExportConfig) ResolvePaths(projectRoot string) *ExportConfig {
	if c.SourceRoot == "" {
		c.SourceRoot = projectRoot
	} else if !filepath.IsAbs(c.SourceRoot) {
		c.SourceRoot = filepath.Join(projectRoot, c.SourceRoot)
	}

	for _, field := range []*string{&c.Template, &c.CSS, &c.OutputFile} {
		if *field != "" && !filepath.IsAbs(*field) {
			*field = filepath.Join(projectRoot, *field)
		}
	}

	for i, f := range c.IncludeMarkdownFiles {
		if !filepath.IsAbs(f) {
			c.IncludeMarkdownFiles[i] = filepath.Join(c.SourceRoot, f)
		}
	}

	return c
}

// ResolvePaths converts every section file to an absolute path under
// sourceRoot. Mutates b and returns it for chaining.
func (b *BookStructure) ResolvePaths(sourceRoot string) *BookStructure {
	for si := range b.Sections {
		for fi, f := range b.Sections[si].Files {
			if !filepath.IsAbs(f) {
				b.Sections[si].Files[fi] = filepath.Join(sourceRoot, f)
			}
		}
	}
	return b
}

// Fonts resolves the configured preset plus per-field overrides.
// An unknown preset name falls back to the default preset.
func (c *ExportConfig) Fonts() *FontSettings {
	base := DefaultFontSettings()
	if c.FontPreset != "" {
		if preset, err := FontPreset(c.FontPreset); err == nil {
			base = preset
		}
	}

	overrides := FontSettings{
		BaseFontSize: c.FontSettings.BaseFontSize,
		LineHeight:   c.FontSettings.LineHeight,
		H1Size:       c.FontSettings.H1Size,
		H2Size:       c.FontSettings.H2Size,
		H3Size:       c.FontSettings.H3Size,
		CodeSize:     c.FontSettings.CodeSize,
	}
	merged := overrideFonts(*base, overrides)
	return &merged
}

// overrideFonts copies non-empty override fields onto base.
func overrideFonts(base, overrides FontSettings) FontSettings {
	if overrides.BaseFontSize != "" {
		base.BaseFontSize = overrides.BaseFontSize
	}
	if overrides.LineHeight != "" {
		base.LineHeight = overrides.LineHeight
	}
	if overrides.H1Size != "" {
		base.H1Size = overrides.H1Size
	}
	if overrides.H2Size != "" {
		base.H2Size = overrides.H2Size
	}
	if overrides.H3Size != "" {
		base.H3Size = overrides.H3Size
	}
	if overrides.CodeSize != "" {
		base.CodeSize = overrides.CodeSize
	}
	return base
}

// PageSettings converts the page section to validated settings.
// Returns nil when the section is empty (use defaults).
func (c *ExportConfig) PageSettings() *PageSettings {
	if c.Page.Size == "" && c.Page.Orientation == "" && c.Page.Margin == 0 {
		return nil
	}
	settings := DefaultPageSettings()
	if c.Page.Size != "" {
		settings.Size = c.Page.Size
	}
	if c.Page.Orientation != "" {
		settings.Orientation = c.Page.Orientation
	}
	if c.Page.Margin != 0 {
		settings.Margin = c.Page.Margin
	}
	return settings
}

// DiagramTimeout returns the configured diagram readiness timeout,
// or fallback when unset.
func (c *ExportConfig) DiagramTimeout(fallback time.Duration) time.Duration {
	if c.Diagram.TimeoutSeconds <= 0 {
		return fallback
	}
	return time.Duration(c.Diagram.TimeoutSeconds) * time.Second
}
