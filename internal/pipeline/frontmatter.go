package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// ErrFrontMatter indicates the frontmatter block could not be parsed.
var ErrFrontMatter = errors.New("invalid frontmatter")

// FrontMatter holds the optional metadata block of a help source.
type FrontMatter struct {
	Control string `yaml:"control" toml:"control"`
	Title   string `yaml:"title" toml:"title"`
}

// SplitFrontMatter separates the frontmatter block from the markdown body.
// Sources without frontmatter are returned unchanged.
func SplitFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	meta.Control = strings.TrimSpace(meta.Control)
	meta.Title = strings.TrimSpace(meta.Title)
	return meta, body, nil
}
