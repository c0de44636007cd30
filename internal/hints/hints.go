// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-regexpage/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents or slow browsers, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path, or one of the searched user config paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), "/go-regexpage/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingMarkdown returns hints when the markdown document cannot be read.
func ForMissingMarkdown() string {
	return format("run from the directory holding README.md or pass --input FILE")
}

// ForMissingStylesheet returns hints when the stylesheet cannot be read.
func ForMissingStylesheet() string {
	return format("pass --style FILE, or --style builtin for the embedded stylesheet")
}

// ForOutputDirectory returns hints for output directory errors.
// The directory is emptied before every build, so it must be dedicated to the page.
func ForOutputDirectory() string {
	return format("--output must name a dedicated directory below the working directory; it is emptied on every build")
}

// ForHighlightStyle returns hints for unknown syntax highlighting styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + " (or none)")
}

// ForMissingPage returns hints when the page to check does not exist.
func ForMissingPage() string {
	return format("run 'regexpage build' first, or pass the page path")
}

// ForInvalidPatterns returns a hint when browser check finds broken examples.
func ForInvalidPatterns() string {
	return format("fix the listed examples; the page strips newlines before compiling")
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
