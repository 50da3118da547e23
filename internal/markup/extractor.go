package markup

import (
	"io"
	"log/slog"
)

// ControlSpec describes the metadata element that marks a context-help
// control, e.g. <meta name="control" content="Foo" />.
type ControlSpec struct {
	Tag        string // element name, "meta"
	NameKey    string // first attribute key, "name"
	NameValue  string // first attribute value, "control"
	ContentKey string // second attribute key, "content"
}

// DefaultControlSpec returns the spec for <meta name="control" content="...">.
func DefaultControlSpec() ControlSpec {
	return ControlSpec{
		Tag:        "meta",
		NameKey:    "name",
		NameValue:  "control",
		ContentKey: "content",
	}
}

// Render returns the control element for a control value, in the form
// authors write inline. The value is not escaped.
func (s ControlSpec) Render(control string) string {
	return NewElement(s.Tag, []Attr{
		{Key: s.NameKey, Val: s.NameValue},
		{Key: s.ContentKey, Val: control},
	}).String()
}

// match reports whether the element is a control tag and returns its value.
// The attributes must be exactly the name pair followed by the content pair.
func (s ControlSpec) match(name string, attrs []Attr) (string, bool) {
	if name != s.Tag || len(attrs) != 2 {
		return "", false
	}
	if attrs[0].Key != s.NameKey || attrs[0].Val != s.NameValue {
		return "", false
	}
	if attrs[1].Key != s.ContentKey {
		return "", false
	}
	return attrs[1].Val, true
}

// ControlEntry pairs a control name with the document implementing it.
type ControlEntry struct {
	Control string `yaml:"control"`
	Path    string `yaml:"path"`
}

// ControlList is the append-only accumulator shared by every document of a
// run. It is not synchronized: parallel producers must serialize appends.
type ControlList struct {
	entries []ControlEntry
}

// Append records an entry.
func (l *ControlList) Append(e ControlEntry) {
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the entries in insertion order.
func (l *ControlList) Entries() []ControlEntry {
	out := make([]ControlEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *ControlList) Len() int {
	return len(l.entries)
}

// MetadataExtractor is a Reconstructor that removes control tags from the
// output and records the captured control in a shared ControlList.
type MetadataExtractor struct {
	*Reconstructor

	spec       ControlSpec
	controls   *ControlList
	path       string
	control    string
	captured   bool
	suppressed int
}

// NewMetadataExtractor creates an extractor for the document at path.
// The entry is appended to controls when Close succeeds.
func NewMetadataExtractor(sink io.Writer, logger *slog.Logger, spec ControlSpec, controls *ControlList, path string) *MetadataExtractor {
	return &MetadataExtractor{
		Reconstructor: NewReconstructor(sink, logger),
		spec:          spec,
		controls:      controls,
		path:          path,
	}
}

// OnStart captures control tags and forwards everything else.
func (m *MetadataExtractor) OnStart(name string, attrs []Attr) error {
	if m.capture(name, attrs) {
		m.suppressed++
		return nil
	}
	return m.Reconstructor.OnStart(name, attrs)
}

// OnSelfClosing captures control tags and forwards everything else.
func (m *MetadataExtractor) OnSelfClosing(name string, attrs []Attr) error {
	if m.capture(name, attrs) {
		return nil
	}
	return m.Reconstructor.OnSelfClosing(name, attrs)
}

// OnEnd swallows the end tag of a suppressed control element.
func (m *MetadataExtractor) OnEnd(name string) error {
	if name == m.spec.Tag && m.suppressed > 0 {
		if top := m.top(); top == nil || top.Name != name {
			m.suppressed--
			return nil
		}
	}
	return m.Reconstructor.OnEnd(name)
}

// Close finalizes the document and records the captured control, if any.
func (m *MetadataExtractor) Close() error {
	if err := m.Reconstructor.Close(); err != nil {
		return err
	}
	if m.captured {
		m.controls.Append(ControlEntry{Control: m.control, Path: m.path})
		m.logger.Debug("control name recorded",
			slog.String("control", m.control),
			slog.String("path", m.path))
	}
	return nil
}

// Control returns the pending control name.
func (m *MetadataExtractor) Control() (string, bool) {
	return m.control, m.captured
}

func (m *MetadataExtractor) capture(name string, attrs []Attr) bool {
	value, ok := m.spec.match(name, attrs)
	if !ok {
		return false
	}
	if m.captured && m.control != value {
		m.logger.Debug("control name replaced",
			slog.String("previous", m.control),
			slog.String("control", value))
	}
	m.control = value
	m.captured = true
	return true
}
