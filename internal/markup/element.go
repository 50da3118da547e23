package markup

import "strings"

// Attr is a single key/value attribute pair.
type Attr struct {
	Key string
	Val string
}

// Element is an open markup element awaiting its end tag.
// Data starts absent and only grows by appending.
type Element struct {
	Name  string
	Attrs []Attr

	data    strings.Builder
	hasData bool
}

// NewElement creates an element without data.
func NewElement(name string, attrs []Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// AppendData appends s to the element data, creating it if absent.
// Appending an empty string still marks the data as present.
func (e *Element) AppendData(s string) {
	e.hasData = true
	e.data.WriteString(s)
}

// Data returns the accumulated data and whether any was ever appended.
func (e *Element) Data() (string, bool) {
	return e.data.String(), e.hasData
}

// String serializes the element. Elements without data are written in the
// self-closing form.
func (e *Element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Name)
	writeAttrs(&b, e.Attrs)
	if !e.hasData {
		b.WriteString(" />")
		return b.String()
	}
	b.WriteByte('>')
	b.WriteString(e.data.String())
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteByte('>')
	return b.String()
}

// writeAttrs writes attrs in their original order. Values are not escaped.
func writeAttrs(b *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Val)
		b.WriteByte('"')
	}
}

// Lookup returns the value of the first attribute named key.
func Lookup(attrs []Attr, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
