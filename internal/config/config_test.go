package config

// Notes:
// - LoadConfig name resolution tests use t.Chdir and t.Setenv, so they do not
//   run in parallel.
// - The user config directory is redirected with XDG_CONFIG_HOME (Linux) and
//   HOME, so tests never touch the real one.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-regexpage"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults mirror the library defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.Markdown != "README.md" || cfg.Input.Style != "scripts/style.css" {
		t.Errorf("Input = %+v", cfg.Input)
	}
	if cfg.Output.Dir != "web" || cfg.Output.File != "index.html" || cfg.Output.Minify {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Widget.Suffix != regexpage.DefaultSuffix || cfg.Widget.Anchor != regexpage.DefaultAnchor {
		t.Errorf("Widget = %+v", cfg.Widget)
	}
	if cfg.Highlight.Style != regexpage.DefaultHighlightStyle {
		t.Errorf("Highlight.Style = %q", cfg.Highlight.Style)
	}
	if cfg.Repository.URL != regexpage.DefaultRepository().URL {
		t.Errorf("Repository.URL = %q", cfg.Repository.URL)
	}
	if diff := cmp.Diff(LabelsConfig(*regexpage.DefaultLabels()), cfg.Labels); diff != "" {
		t.Errorf("Labels mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateFieldLength - Length limit helper
// ---------------------------------------------------------------------------

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{name: "empty value is valid", value: "", max: 10},
		{name: "value at limit is valid", value: "1234567890", max: 10},
		{name: "value over limit returns error", value: "12345678901", max: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.max)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error should name the field, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Length limits and output shape
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{
			name:    "title too long",
			mutate:  func(c *Config) { c.Page.Title = strings.Repeat("x", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "label too long",
			mutate:  func(c *Config) { c.Labels.Pass = strings.Repeat("x", MaxLabelLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "script URL too long",
			mutate:  func(c *Config) { c.Page.Scripts = []string{strings.Repeat("x", MaxURLLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "issue label too long",
			mutate:  func(c *Config) { c.Repository.ShareLabels = []string{strings.Repeat("x", MaxNameLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "suffix too long",
			mutate:  func(c *Config) { c.Widget.Suffix = strings.Repeat("x", MaxIdentifierLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "output file with directory",
			mutate:  func(c *Config) { c.Output.File = "sub/index.html" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "output file dot-dot",
			mutate:  func(c *Config) { c.Output.File = ".." },
			wantErr: ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading, defaults and errors
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig("  "); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path loads values and fills defaults", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "site.yaml", `input:
  markdown: docs/regex.md
output:
  minify: true
widget:
  suffix: -re
labels:
  pass: passes
  fail: fails
highlight:
  style: none
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		want := DefaultConfig()
		want.Input.Markdown = "docs/regex.md"
		want.Output.Minify = true
		want.Widget.Suffix = "-re"
		want.Labels.Pass = "passes"
		want.Labels.Fail = "fails"
		want.Highlight.Style = NoHighlight

		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("custom repository drops default assignee", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "repo.yaml", `repository:
  url: https://github.com/example/notes
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Repository.Assignee != "" {
			t.Errorf("Assignee = %q, want empty", cfg.Repository.Assignee)
		}
		if len(cfg.Repository.ReportLabels) == 0 {
			t.Error("ReportLabels should keep defaults")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "input: [unclosed")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "widget:\n  prefix: x\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Fatalf("error = %v, want ErrConfigParse", err)
		}
		if !strings.Contains(err.Error(), "prefix") {
			t.Errorf("error should name the field, got: %v", err)
		}
	})

	t.Run("empty file returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "empty.yaml", "")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "long.yaml",
			"repository:\n  assignee: "+strings.Repeat("a", MaxNameLength+1)+"\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("file permissions are not enforced")
		}
		path := writeConfig(t, t.TempDir(), "unreadable.yaml", "widget:\n  suffix: x\n")
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

		_, err := LoadConfig(path)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig_Name - Resolution of config names
// ---------------------------------------------------------------------------

func isolateUserConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("AppData", filepath.Join(home, "AppData"))
	dir, err := os.UserConfigDir()
	if err != nil {
		t.Skip("cannot get user config dir")
	}
	return dir
}

func TestLoadConfig_Name(t *testing.T) {
	t.Run("resolves yaml in current directory", func(t *testing.T) {
		isolateUserConfig(t)
		dir := t.TempDir()
		writeConfig(t, dir, "site.yaml", "widget:\n  anchor: fromyaml\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Widget.Anchor != "fromyaml" {
			t.Errorf("Widget.Anchor = %q, want fromyaml", cfg.Widget.Anchor)
		}
	})

	t.Run("prefers yaml over yml", func(t *testing.T) {
		isolateUserConfig(t)
		dir := t.TempDir()
		writeConfig(t, dir, "site.yaml", "widget:\n  anchor: yaml\n")
		writeConfig(t, dir, "site.yml", "widget:\n  anchor: yml\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Widget.Anchor != "yaml" {
			t.Errorf("Widget.Anchor = %q, want yaml", cfg.Widget.Anchor)
		}
	})

	t.Run("resolves from user config directory", func(t *testing.T) {
		userDir := isolateUserConfig(t)
		appDir := filepath.Join(userDir, appDirName)
		if err := os.MkdirAll(appDir, 0o750); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		writeConfig(t, appDir, "shared.yml", "widget:\n  anchor: userdir\n")
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig("shared")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Widget.Anchor != "userdir" {
			t.Errorf("Widget.Anchor = %q, want userdir", cfg.Widget.Anchor)
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		isolateUserConfig(t)
		t.Chdir(t.TempDir())

		_, err := LoadConfig("nothing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		for _, want := range []string{"nothing.yaml", "nothing.yml", appDirName} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error should mention %q, got: %v", want, err)
			}
		}
	})
}

func TestSearchPaths(t *testing.T) {
	userDir := isolateUserConfig(t)

	got := SearchPaths("site")
	want := []string{
		"site.yaml",
		"site.yml",
		filepath.Join(userDir, appDirName, "site.yaml"),
		filepath.Join(userDir, appDirName, "site.yml"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SearchPaths() mismatch (-want +got):\n%s", diff)
	}
}
