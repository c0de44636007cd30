package regexpage

import "errors"

// Sentinel errors for library operations.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPageRender     = errors.New("page rendering failed")
	ErrMinify         = errors.New("HTML minification failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPageEvaluate   = errors.New("failed to evaluate page script")

	// Builder option validation errors.
	ErrInvalidSuffix         = errors.New("invalid example suffix")
	ErrInvalidAnchor         = errors.New("invalid anchor id")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")

	// Page validation errors.
	ErrInvalidTitle     = errors.New("invalid page title")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrInvalidScriptURL = errors.New("invalid external script URL")

	// Repository validation errors.
	ErrInvalidRepositoryURL = errors.New("invalid repository URL")
	ErrInvalidLabel         = errors.New("invalid issue label")

	// Labels validation errors.
	ErrEmptyLabel = errors.New("widget label cannot be empty")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
