package bookforge

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoFiles        = errors.New("book has no markdown files")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrTemplateRender = errors.New("book template rendering failed")

	// Diagram rendering errors.
	ErrRenderTimeout = errors.New("diagram never signaled readiness")
	ErrDiagramRender = errors.New("diagram rendering failed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Font settings validation errors.
	ErrUnknownFontPreset = errors.New("unknown font preset")

	// Config loading errors.
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrEmptyStructure = errors.New("book structure has no sections")
)
