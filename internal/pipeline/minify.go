package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// ErrMinify indicates the serialized page could not be minified.
var ErrMinify = errors.New("HTML minification failed")

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

// getMinifier returns a configured minifier (singleton) that also handles
// inline <style> and <script> blocks.
func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/html", html.Minify)
		minifier.AddFunc("text/css", css.Minify)
		minifier.AddFunc("application/javascript", js.Minify)
		minifier.AddFunc("text/javascript", js.Minify)
	})
	return minifier
}

// MinifyHTML minifies a complete HTML document.
// Errors are returned, never replaced by the unminified input.
func MinifyHTML(htmlContent string) (string, error) {
	out, err := getMinifier().String("text/html", htmlContent)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMinify, err)
	}
	return out, nil
}
