package markup

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func runExtractor(t *testing.T, input string, controls *ControlList) (string, error) {
	t.Helper()

	var out bytes.Buffer
	m := NewMetadataExtractor(&out, nil, DefaultControlSpec(), controls, "stage2/page.stage2")
	if err := Feed(strings.NewReader(input), m); err != nil {
		return out.String(), err
	}
	return out.String(), m.Close()
}

func TestMetadataExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantOutput  string
		wantControl string
		wantEntries int
	}{
		{
			name:        "self-closing control tag stripped",
			input:       `<p>Intro</p><meta name="control" content="Foo"/><p>Body</p>`,
			wantOutput:  `<p>Intro</p><p>Body</p>`,
			wantControl: "Foo",
			wantEntries: 1,
		},
		{
			name:        "start tag form with end tag stripped",
			input:       `<meta name="control" content="Bar"></meta><p>Body</p>`,
			wantOutput:  `<p>Body</p>`,
			wantControl: "Bar",
			wantEntries: 1,
		},
		{
			name:        "nested control tag stripped",
			input:       `<div><meta name="control" content="Nested" /><p>x</p></div>`,
			wantOutput:  `<div><p>x</p></div>`,
			wantControl: "Nested",
			wantEntries: 1,
		},
		{
			name:        "last control tag wins",
			input:       `<meta name="control" content="First" /><p>x</p><meta name="control" content="Second" />`,
			wantOutput:  `<p>x</p>`,
			wantControl: "Second",
			wantEntries: 1,
		},
		{
			name:        "other meta tags pass through",
			input:       `<meta charset="utf-8" /><p>x</p>`,
			wantOutput:  `<meta charset="utf-8" /><p>x</p>`,
			wantEntries: 0,
		},
		{
			name:        "attributes in wrong order are not a control",
			input:       `<meta content="Foo" name="control" />`,
			wantOutput:  `<meta content="Foo" name="control" />`,
			wantEntries: 0,
		},
		{
			name:        "extra attributes are not a control",
			input:       `<meta name="control" content="Foo" lang="en" />`,
			wantOutput:  `<meta name="control" content="Foo" lang="en" />`,
			wantEntries: 0,
		},
		{
			name:        "no control tag",
			input:       `<h1>Title</h1>`,
			wantOutput:  `<h1>Title</h1>`,
			wantEntries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			controls := &ControlList{}
			got, err := runExtractor(t, tt.input, controls)
			if err != nil {
				t.Fatalf("extractor error = %v", err)
			}
			if got != tt.wantOutput {
				t.Errorf("output = %q, want %q", got, tt.wantOutput)
			}
			if controls.Len() != tt.wantEntries {
				t.Fatalf("entries = %d, want %d", controls.Len(), tt.wantEntries)
			}
			if tt.wantEntries == 1 {
				entry := controls.Entries()[0]
				if entry.Control != tt.wantControl {
					t.Errorf("Control = %q, want %q", entry.Control, tt.wantControl)
				}
				if entry.Path != "stage2/page.stage2" {
					t.Errorf("Path = %q, want %q", entry.Path, "stage2/page.stage2")
				}
			}
		})
	}
}

func TestMetadataExtractor_OutputHasNoControlElement(t *testing.T) {
	t.Parallel()

	input := "<h1>Settings</h1>\n<meta name=\"control\" content=\"ID_SETTINGS\" />\n<p>Configure <em>things</em>.</p>\n"

	controls := &ControlList{}
	got, err := runExtractor(t, input, controls)
	if err != nil {
		t.Fatalf("extractor error = %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(got))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if n := doc.Find("meta").Length(); n != 0 {
		t.Errorf("meta elements in output = %d, want 0", n)
	}
	if title := doc.Find("h1").Text(); title != "Settings" {
		t.Errorf("h1 = %q, want %q", title, "Settings")
	}
	if em := doc.Find("p em").Text(); em != "things" {
		t.Errorf("p em = %q, want %q", em, "things")
	}
}

func TestMetadataExtractor_SharedAccumulatorOrder(t *testing.T) {
	t.Parallel()

	controls := &ControlList{}
	for _, name := range []string{"A", "B", "C"} {
		var out bytes.Buffer
		m := NewMetadataExtractor(&out, nil, DefaultControlSpec(), controls, name+".stage2")
		mustNoErr(t, m.OnSelfClosing("meta", []Attr{{"name", "control"}, {"content", name}}))
		mustNoErr(t, m.Close())
	}

	entries := controls.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i, want := range []string{"A", "B", "C"} {
		if entries[i].Control != want || entries[i].Path != want+".stage2" {
			t.Errorf("entries[%d] = %+v, want control %q", i, entries[i], want)
		}
	}
}

func TestMetadataExtractor_UnclosedDocumentRecordsNothing(t *testing.T) {
	t.Parallel()

	controls := &ControlList{}
	_, err := runExtractor(t, `<meta name="control" content="Foo" /><div>open`, controls)
	if !errors.Is(err, ErrUnclosedElements) {
		t.Fatalf("error = %v, want ErrUnclosedElements", err)
	}
	if controls.Len() != 0 {
		t.Errorf("entries = %d, want 0", controls.Len())
	}
}

func TestMetadataExtractor_MismatchStillRepaired(t *testing.T) {
	t.Parallel()

	controls := &ControlList{}
	var out bytes.Buffer
	m := NewMetadataExtractor(&out, nil, DefaultControlSpec(), controls, "x")

	mustNoErr(t, m.OnStart("a", nil))
	mustNoErr(t, m.OnStart("b", nil))
	mustNoErr(t, m.OnText("x"))
	mustNoErr(t, m.OnEnd("a"))
	mustNoErr(t, m.Close())

	if got, want := out.String(), "<a><b>x</b></a>"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if m.Mismatches() != 1 {
		t.Errorf("Mismatches() = %d, want 1", m.Mismatches())
	}
}

func TestControlSpec_Render(t *testing.T) {
	t.Parallel()

	spec := DefaultControlSpec()
	tag := spec.Render("ID_LAUNCH")
	if want := `<meta name="control" content="ID_LAUNCH" />`; tag != want {
		t.Fatalf("Render() = %q, want %q", tag, want)
	}

	controls := &ControlList{}
	out, err := runExtractor(t, tag+"<p>body</p>", controls)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}
	if out != "<p>body</p>" {
		t.Errorf("output = %q, want %q", out, "<p>body</p>")
	}
	if entries := controls.Entries(); len(entries) != 1 || entries[0].Control != "ID_LAUNCH" {
		t.Errorf("entries = %+v, want one ID_LAUNCH", entries)
	}
}

func TestControlSpec_CustomElement(t *testing.T) {
	t.Parallel()

	spec := ControlSpec{Tag: "link", NameKey: "rel", NameValue: "help", ContentKey: "href"}
	controls := &ControlList{}
	var out bytes.Buffer
	m := NewMetadataExtractor(&out, nil, spec, controls, "p.stage2")

	mustNoErr(t, Feed(strings.NewReader(spec.Render("ID_X")+`<meta name="control" content="kept" />`), m))
	mustNoErr(t, m.Close())

	if got := out.String(); got != `<meta name="control" content="kept" />` {
		t.Errorf("output = %q", got)
	}
	if c, ok := m.Control(); !ok || c != "ID_X" {
		t.Errorf("Control() = %q, %v, want ID_X", c, ok)
	}
}
