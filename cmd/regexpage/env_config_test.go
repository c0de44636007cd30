package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-regexpage/internal/config"
)

// Notes:
// - Tests in this file use t.Setenv and cannot run in parallel.
// - Environment values override the config file; flags override both.

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Reading REGEXPAGE_* variables
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("REGEXPAGE_CONFIG", "team")
	t.Setenv("REGEXPAGE_INPUT", "docs/regex.md")
	t.Setenv("REGEXPAGE_STYLE", "builtin")
	t.Setenv("REGEXPAGE_OUTPUT_DIR", "site")
	t.Setenv("REGEXPAGE_HIGHLIGHT", "monokai")
	t.Setenv("REGEXPAGE_TIMEOUT", "1m")

	got := loadEnvConfig()
	want := &envConfig{
		ConfigPath: "team",
		Input:      "docs/regex.md",
		Style:      "builtin",
		OutputDir:  "site",
		Highlight:  "monokai",
		Timeout:    time.Minute,
	}
	if *got != *want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", got, want)
	}
}

func TestLoadEnvConfig_InvalidTimeout(t *testing.T) {
	for _, value := range []string{"soon", "-5s", "0"} {
		t.Setenv("REGEXPAGE_TIMEOUT", value)
		if got := loadEnvConfig().Timeout; got != 0 {
			t.Errorf("REGEXPAGE_TIMEOUT=%q: Timeout = %v, want 0", value, got)
		}
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("REGEXPAGE_INPUT", "README.md")
	t.Setenv("REGEXPAGE_OUTPUTDIR", "site")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "REGEXPAGE_OUTPUTDIR") {
		t.Errorf("should warn about REGEXPAGE_OUTPUTDIR, got: %q", out)
	}
	if strings.Contains(out, "REGEXPAGE_INPUT") {
		t.Errorf("should not warn about a known variable, got: %q", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Input.Markdown = "from-file.md"

	applyEnvConfig(&envConfig{OutputDir: "site", Highlight: config.NoHighlight}, cfg)

	if cfg.Output.Dir != "site" {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "site")
	}
	if cfg.Highlight.Style != config.NoHighlight {
		t.Errorf("Highlight.Style = %q, want %q", cfg.Highlight.Style, config.NoHighlight)
	}
	if cfg.Input.Markdown != "from-file.md" {
		t.Errorf("unset variable should keep file value, got %q", cfg.Input.Markdown)
	}
}

// ---------------------------------------------------------------------------
// Precedence through the build command
// ---------------------------------------------------------------------------

func TestRunBuild_EnvOverridesConfig(t *testing.T) {
	dir := project(t, twoExamples)
	cfgPath := writeFile(t, filepath.Join(dir, "page.yaml"), "output:\n  dir: from-file\n")

	t.Setenv("REGEXPAGE_CONFIG", cfgPath)
	t.Setenv("REGEXPAGE_INPUT", filepath.Join(dir, "README.md"))
	t.Setenv("REGEXPAGE_STYLE", config.BuiltinStyle)
	t.Setenv("REGEXPAGE_OUTPUT_DIR", filepath.Join(dir, "from-env"))

	te := newTestEnv(t)
	if code := te.run("build", "-q"); code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, te.stderr)
	}

	if _, err := os.Stat(filepath.Join(dir, "from-env", "index.html")); err != nil {
		t.Errorf("page should be written to the env directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "from-file")); !os.IsNotExist(err) {
		t.Errorf("config directory should not be created, stat err = %v", err)
	}
}

func TestRunBuild_FlagOverridesEnv(t *testing.T) {
	dir := project(t, twoExamples)

	t.Setenv("REGEXPAGE_OUTPUT_DIR", filepath.Join(dir, "from-env"))

	te := newTestEnv(t)
	code := te.run("build", "-q",
		"-i", filepath.Join(dir, "README.md"),
		"-s", filepath.Join(dir, "scripts", "style.css"),
		"-o", filepath.Join(dir, "from-flag"))
	if code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, te.stderr)
	}

	if _, err := os.Stat(filepath.Join(dir, "from-flag", "index.html")); err != nil {
		t.Errorf("page should be written to the flag directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "from-env")); !os.IsNotExist(err) {
		t.Errorf("env directory should not be created, stat err = %v", err)
	}
}

func TestRunBuild_EnvTimeout(t *testing.T) {
	t.Setenv("REGEXPAGE_TIMEOUT", "2m")

	got, err := resolveTimeout("", loadEnvConfig())
	if err != nil {
		t.Fatalf("resolveTimeout: %v", err)
	}
	if got != 2*time.Minute {
		t.Errorf("timeout = %v, want 2m", got)
	}
}
