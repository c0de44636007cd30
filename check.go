package regexpage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-regexpage/internal/fileutil"
	"github.com/alnah/go-regexpage/internal/process"
)

// CheckResult is the browser verdict for one example input.
type CheckResult struct {
	Index   int    `json:"index"`   // position among the page's example inputs
	Pattern string `json:"pattern"` // pattern as the client compiles it
	Valid   bool   `json:"valid"`
	Error   string `json:"error"` // SyntaxError message when not valid
}

// checkScript compiles every example input the way the client script does:
// all newlines stripped, then new RegExp.
const checkScript = `() => Array.from(document.querySelectorAll('input[data-code]')).map((el, i) => {
  const pattern = (el.dataset.code || '').replace(/\n/g, '');
  try {
    new RegExp(pattern);
    return {index: i, pattern: pattern, valid: true, error: ''};
  } catch (err) {
    return {index: i, pattern: pattern, valid: false, error: String(err && err.message || err)};
  }
})`

// Checker compiles a built page's examples in headless Chrome.
// Rod downloads Chromium on first use if no browser is found.
// Create with NewChecker() and Close() when done.
type Checker struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// NewChecker creates a Checker. The browser starts lazily on the first check.
// A non-positive timeout selects the default.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Checker{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (c *Checker) ensureBrowser() error {
	if c.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.launcher = l

	c.browser = rod.New().ControlURL(u)
	if err := c.browser.Connect(); err != nil {
		c.browser = nil
		c.stopLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// stopLauncher kills the Chrome process tree and removes its user data dir.
// Renderer and GPU helpers survive a plain browser close on some platforms.
func (c *Checker) stopLauncher() {
	if c.launcher == nil {
		return
	}
	if pid := c.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	c.launcher.Kill()
	c.launcher.Cleanup()
	c.launcher = nil
}

// Close releases browser resources. Safe to call more than once.
func (c *Checker) Close() error {
	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	c.stopLauncher()
	return err
}

// CheckHTML writes htmlContent to a temporary file and checks it.
func (c *Checker) CheckHTML(ctx context.Context, htmlContent string) ([]CheckResult, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.CheckFile(ctx, tmpPath)
}

// CheckFile opens a built page and compiles every example pattern.
// Results are in document order.
func (c *Checker) CheckFile(ctx context.Context, path string) ([]CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	if err := c.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := c.browser.Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(abs)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	obj, err := page.Eval(checkScript)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrPageEvaluate, err)
	}

	var results []CheckResult
	if err := obj.Value.Unmarshal(&results); err != nil {
		return nil, fmt.Errorf("%w: decoding results: %v", ErrPageEvaluate, err)
	}
	return results, nil
}

// Invalid returns the results whose pattern failed to compile.
func Invalid(results []CheckResult) []CheckResult {
	var out []CheckResult
	for _, r := range results {
		if !r.Valid {
			out = append(out, r)
		}
	}
	return out
}
