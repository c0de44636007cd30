// Package pipeline implements the Markdown-to-interactive-HTML build pipeline.
//
// The stages, in order:
//   - Markdown preprocessing (line ending normalization)
//   - Markdown to HTML conversion via Goldmark
//   - Page chrome rendering (title, meta, inline style and client script)
//   - Tree rewrite: page links on <body>, toolbar and input widgets around
//     every regex example block
//   - Optional minification of the serialized document
//
// Stages that touch the document structure operate on the immutable tree in
// internal/hast; earlier stages work on strings.
package pipeline
