package main

import (
	"errors"
	"os"

	bookforge "github.com/mnishi/bookforge"
)

// Exit codes for the bookforge CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful export
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrWriteOutput = errors.New("failed to write output file")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, bookforge.ErrBrowserConnect) ||
		errors.Is(err, bookforge.ErrPageCreate) ||
		errors.Is(err, bookforge.ErrPageLoad) ||
		errors.Is(err, bookforge.ErrPDFGeneration) ||
		errors.Is(err, bookforge.ErrRenderTimeout) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage and validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, bookforge.ErrNoFiles) ||
		errors.Is(err, bookforge.ErrConfigNotFound) ||
		errors.Is(err, bookforge.ErrConfigParse) ||
		errors.Is(err, bookforge.ErrEmptyStructure) ||
		errors.Is(err, bookforge.ErrInvalidPageSize) ||
		errors.Is(err, bookforge.ErrInvalidOrientation) ||
		errors.Is(err, bookforge.ErrInvalidMargin) ||
		errors.Is(err, bookforge.ErrUnknownFontPreset) {
		return ExitUsage
	}

	return ExitGeneral
}
