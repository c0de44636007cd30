package regexpage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded defaults", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		for name, load := range map[string]func(string) (string, error){
			DefaultStyle:    loader.LoadStyle,
			DefaultScript:   loader.LoadScript,
			DefaultTemplate: loader.LoadTemplate,
		} {
			if content, err := load(name); err != nil || content == "" {
				t.Errorf("load(%q) = %d bytes, %v", name, len(content), err)
			}
		}
	})

	t.Run("invalid base path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
		}
	})

	t.Run("custom style overrides embedded", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		if err := os.MkdirAll(filepath.Join(base, "styles"), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(base, "styles", "default.css"), []byte("h1{}"), 0o600); err != nil {
			t.Fatal(err)
		}

		loader, err := NewAssetLoader(base)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		if got, _ := loader.LoadStyle(DefaultStyle); got != "h1{}" {
			t.Errorf("LoadStyle() = %q, want custom content", got)
		}
		if got, err := loader.LoadTemplate(DefaultTemplate); err != nil || !strings.Contains(got, "markdown-body") {
			t.Errorf("LoadTemplate() fallback = %d bytes, %v", len(got), err)
		}
	})
}

func TestAssetLoader_PublicErrors(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		wantErr error
	}{
		{name: "missing style", load: loader.LoadStyle, asset: "missing", wantErr: ErrStyleNotFound},
		{name: "missing script", load: loader.LoadScript, asset: "missing", wantErr: ErrScriptNotFound},
		{name: "missing template", load: loader.LoadTemplate, asset: "missing", wantErr: ErrTemplateNotFound},
		{name: "traversal name", load: loader.LoadStyle, asset: "../etc", wantErr: ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.load(tt.asset)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
			}
			if err != nil && err.Error() == tt.wantErr.Error() {
				t.Error("public error should keep the original message")
			}
		})
	}
}
