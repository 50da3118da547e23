// Package pipeline implements the markdown-to-HTML conversion that feeds the
// help compiler's first stage.
//
// This package handles:
//   - Frontmatter extraction (a "control" key becomes a control meta tag)
//   - Markdown preprocessing (line normalization, highlight syntax)
//   - Markdown to HTML fragment conversion via Goldmark
//   - Classification of resource references (remote, inside a root)
//
// Control tag stripping and image relocation operate on the produced HTML
// and live in the markup and resources packages.
package pipeline
