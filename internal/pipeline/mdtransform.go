package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters so they
// pass through Goldmark untouched. ConvertMarkPlaceholders turns them into
// <mark> elements after conversion.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)
)

// MarkdownPreprocessor prepares help source text before conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(content string) string
}

// CommonMarkPreprocessor normalizes line endings, collapses runs of blank
// lines and rewrites ==highlight== spans.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations in order.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
