package main

import (
	"errors"
	"os"

	"github.com/alnah/go-regexpage"
	"github.com/alnah/go-regexpage/internal/config"
	"github.com/alnah/go-regexpage/internal/fileutil"
)

// Exit codes for the regexpage CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page built or every example compiles
	ExitGeneral = 1 // General/unexpected error, invalid examples
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, regexpage.ErrBrowserConnect) ||
		errors.Is(err, regexpage.ErrPageCreate) ||
		errors.Is(err, regexpage.ErrPageLoad) ||
		errors.Is(err, regexpage.ErrPageEvaluate) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, fileutil.ErrUnsafeOutputDir) ||
		errors.Is(err, regexpage.ErrInvalidSuffix) ||
		errors.Is(err, regexpage.ErrInvalidAnchor) ||
		errors.Is(err, regexpage.ErrUnknownHighlightStyle) ||
		errors.Is(err, regexpage.ErrInvalidTitle) ||
		errors.Is(err, regexpage.ErrFieldTooLong) ||
		errors.Is(err, regexpage.ErrInvalidScriptURL) ||
		errors.Is(err, regexpage.ErrInvalidRepositoryURL) ||
		errors.Is(err, regexpage.ErrInvalidLabel) ||
		errors.Is(err, regexpage.ErrEmptyLabel) ||
		errors.Is(err, regexpage.ErrStyleNotFound) ||
		errors.Is(err, regexpage.ErrScriptNotFound) ||
		errors.Is(err, regexpage.ErrTemplateNotFound) ||
		errors.Is(err, regexpage.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadStyle) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoPage) {
		return ExitIO
	}

	return ExitGeneral
}
