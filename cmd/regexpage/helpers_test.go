package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-regexpage"
)

// fakeChecker returns canned results without a browser.
type fakeChecker struct {
	results []regexpage.CheckResult
	err     error

	mu     sync.Mutex
	paths  []string
	closed bool
}

func (f *fakeChecker) CheckFile(_ context.Context, path string) ([]regexpage.CheckResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return f.results, f.err
}

func (f *fakeChecker) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	opened  []string
	checker *fakeChecker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		checker: &fakeChecker{},
	}
	te.Environment = &Environment{
		Now:    time.Now,
		Stdout: te.stdout,
		Stderr: te.stderr,
		OpenFile: func(path string) error {
			te.opened = append(te.opened, path)
			return nil
		},
		NewChecker: func(time.Duration) PageChecker { return te.checker },
	}
	return te
}

// run invokes runMain with the program name prepended.
func (te *testEnv) run(args ...string) int {
	return runMain(append([]string{"regexpage"}, args...), te.Environment)
}

// writeFile creates path (and its parent directories) with content.
func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup write: %v", err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// project lays out a document and stylesheet in a fresh directory and
// returns the directory.
func project(t *testing.T, markdown string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "README.md"), markdown)
	writeFile(t, filepath.Join(dir, "scripts", "style.css"), "body { color: #333; }\n")
	return dir
}

const twoExamples = "# Examples\n\n" +
	"## Digits\n\n```lang-regex\n^\\d+$\n```\n\n" +
	"## Word\n\n```js-regex\n\\w+\n```\n"
