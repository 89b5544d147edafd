package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	bookforge "github.com/mnishi/bookforge"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// defaultTimeout bounds each browser operation when neither the config
// nor the --timeout flag sets one.
const defaultTimeout = 30 * time.Second

// newLogger builds the CLI logger. Verbose mode shows the per-chapter
// pipeline steps; the default level only surfaces warnings (missing
// chapters, degraded diagrams).
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// run executes one export end to end: load configuration, resolve the
// chapter list, drive the service, and write the output file.
func run(ctx context.Context, flags *exportFlags, positional []string, stderr io.Writer) error {
	logger := newLogger(stderr, flags.verbose)

	cfg := &bookforge.ExportConfig{}
	if flags.config != "" {
		loaded, err := bookforge.LoadExportConfig(flags.config)
		if err != nil {
			return err
		}
		configDir, err := filepath.Abs(filepath.Dir(flags.config))
		if err != nil {
			return fmt.Errorf("resolving config directory: %w", err)
		}
		cfg = loaded.ResolvePaths(configDir)
	}

	sourceRoot, err := resolveSourceRoot(flags, positional, cfg)
	if err != nil {
		return err
	}
	cfg.SourceRoot = sourceRoot
	logger.Debug("resolved source root", "path", sourceRoot)

	files, err := resolveFiles(flags, cfg, logger)
	if err != nil {
		return err
	}
	for _, f := range bookforge.MissingFiles(files) {
		logger.Warn("chapter file not found, will be skipped", "path", f)
	}

	book, err := buildBook(flags, cfg)
	if err != nil {
		return err
	}
	book.Files = files

	svc := bookforge.New(serviceOptions(flags, cfg, logger)...)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("closing browser resources", "err", err)
		}
	}()

	logger.Debug("starting export", "chapters", len(files), "title", book.Title)
	result, err := svc.Export(ctx, book)
	if err != nil {
		return err
	}

	outputPath := resolveOutputPath(flags, cfg)
	if err := writeOutput(outputPath, result, flags.htmlOnly); err != nil {
		return err
	}
	logger.Info("export complete", "output", outputPath)
	return nil
}

// resolveSourceRoot picks the markdown source directory: positional
// argument, then --source-root, then the config, then the working
// directory.
func resolveSourceRoot(flags *exportFlags, positional []string, cfg *bookforge.ExportConfig) (string, error) {
	root := cfg.SourceRoot
	if flags.sourceRoot != "" {
		root = flags.sourceRoot
	}
	if len(positional) == 1 {
		root = positional[0]
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving source root: %w", err)
	}
	return abs, nil
}

// resolveFiles assembles the ordered chapter list: an explicit book
// structure when given, otherwise every markdown file under the source
// root grouped by directory.
func resolveFiles(flags *exportFlags, cfg *bookforge.ExportConfig, logger *log.Logger) ([]string, error) {
	var structure *bookforge.BookStructure
	if flags.book != "" {
		loaded, err := bookforge.LoadBookStructure(flags.book)
		if err != nil {
			return nil, err
		}
		structure = loaded.ResolvePaths(cfg.SourceRoot)
	} else {
		generated, err := bookforge.GenerateStructure(cfg.SourceRoot)
		if err != nil {
			return nil, err
		}
		structure = generated
		logger.Debug("no book structure given, scanned source root",
			"sections", len(structure.Sections))
	}
	return bookforge.CollectBookFiles(structure, cfg), nil
}

// buildBook merges config and flag overrides into export parameters.
// Flags win over config values.
func buildBook(flags *exportFlags, cfg *bookforge.ExportConfig) (bookforge.Book, error) {
	title := cfg.Title
	if flags.title != "" {
		title = flags.title
	}
	author := cfg.Author
	if flags.author != "" {
		author = flags.author
	}

	var css string
	if cfg.CSS != "" {
		raw, err := os.ReadFile(cfg.CSS)
		if err != nil {
			return bookforge.Book{}, fmt.Errorf("reading CSS file %s: %w", cfg.CSS, err)
		}
		css = string(raw)
	}

	return bookforge.Book{
		Title:    title,
		Author:   author,
		CSS:      css,
		Template: cfg.Template,
		Fonts:    cfg.Fonts(),
		Page:     cfg.PageSettings(),
		HTMLOnly: flags.htmlOnly,
	}, nil
}

// serviceOptions translates config and flags into service options.
func serviceOptions(flags *exportFlags, cfg *bookforge.ExportConfig, logger *log.Logger) []bookforge.Option {
	opts := []bookforge.Option{bookforge.WithLogger(logger)}

	timeout := cfg.DiagramTimeout(defaultTimeout)
	if flags.timeout > 0 {
		timeout = flags.timeout
	}
	opts = append(opts, bookforge.WithTimeout(timeout))

	theme := cfg.Diagram.Theme
	if flags.theme != "" {
		theme = flags.theme
	}
	if theme != "" {
		opts = append(opts, bookforge.WithDiagramTheme(theme))
	}

	if flags.highlight != "" {
		opts = append(opts, bookforge.WithHighlightStyle(flags.highlight))
	}
	return opts
}

// resolveOutputPath picks the output file: --output, then the config,
// then a default in the working directory.
func resolveOutputPath(flags *exportFlags, cfg *bookforge.ExportConfig) string {
	if flags.output != "" {
		return flags.output
	}
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	if flags.htmlOnly {
		return "book.html"
	}
	return "book.pdf"
}

// writeOutput persists the export result, creating parent directories
// as needed.
func writeOutput(path string, result *bookforge.Result, htmlOnly bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
		}
	}

	data := result.PDF
	if htmlOnly {
		data = []byte(result.HTML)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}
