package markup

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// ErrTokenize indicates the markup could not be read.
var ErrTokenize = errors.New("tokenizing markup")

// Feed tokenizes r and delivers every event to h, stopping at the first
// handler error. Text is delivered raw, without entity decoding.
func Feed(r io.Reader, h Handler) error {
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		var err error
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrTokenize, z.Err())
		case html.TextToken, html.CommentToken, html.DoctypeToken:
			err = h.OnText(string(z.Raw()))
		case html.StartTagToken:
			name, attrs := readTag(z)
			err = h.OnStart(name, attrs)
		case html.SelfClosingTagToken:
			name, attrs := readTag(z)
			err = h.OnSelfClosing(name, attrs)
		case html.EndTagToken:
			name, _ := z.TagName()
			err = h.OnEnd(string(name))
		}
		if err != nil {
			return err
		}
	}
}

// readTag copies the tag name and attributes of the current token.
func readTag(z *html.Tokenizer) (string, []Attr) {
	name, more := z.TagName()
	tag := string(name)

	var attrs []Attr
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs = append(attrs, Attr{Key: string(key), Val: string(val)})
	}
	return tag, attrs
}
