// Package assets provides the stylesheet, client script and page template
// used to build the example page.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver lets a project override a single asset, for example only the
// page template, while keeping the built-in stylesheet and script.
//
// # Directory Structure
//
// Assets are organized by type:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css      # stylesheets (built-in: default)
//	├── scripts/
//	│   └── {name}.js       # client script templates (built-in: widget)
//	└── templates/
//	    └── {name}.html     # page templates (built-in: page)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
