package assets

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
	"testing"
)

func TestLoadPage_Render(t *testing.T) {
	t.Parallel()

	page, err := LoadPage(NewEmbeddedLoader(), DefaultTemplateName, DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadPage() error = %v", err)
	}

	var buf bytes.Buffer
	err = page.Render(&buf, PageData{
		Title:   "Mods & Settings",
		Control: "ID_MODS",
		Body:    template.HTML(`<h1 id="mods">Mods</h1>`),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<title>Mods &amp; Settings</title>",
		`<meta name="help-control" content="ID_MODS">`,
		`<h1 id="mods">Mods</h1>`,
		".help-page",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}
}

func TestLoadPage_WithoutStyleOrControl(t *testing.T) {
	t.Parallel()

	page, err := LoadPage(NewEmbeddedLoader(), DefaultTemplateName, "")
	if err != nil {
		t.Fatalf("LoadPage() error = %v", err)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf, PageData{Title: "t", Body: "<p>x</p>"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "<style>") {
		t.Error("Render() wrote a <style> block without a stylesheet")
	}
	if strings.Contains(buf.String(), "help-control") {
		t.Error("Render() wrote a control meta without a control")
	}
}

func TestLoadPage_Errors(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "templates", "broken.html", "{{.Body")
	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		template string
		style    string
		wantErr  error
	}{
		{name: "unparsable template", template: "broken", style: "", wantErr: ErrTemplateParse},
		{name: "missing template", template: "nope", style: "", wantErr: ErrTemplateNotFound},
		{name: "missing style", template: DefaultTemplateName, style: "nope", wantErr: ErrStyleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadPage(r, tt.template, tt.style)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadPage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPage_RenderError(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "templates", "bad.html", "{{.Missing.Field}}")
	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}
	page, err := LoadPage(r, "bad", "")
	if err != nil {
		t.Fatalf("LoadPage() error = %v", err)
	}
	if err := page.Render(&bytes.Buffer{}, PageData{}); !errors.Is(err, ErrTemplateRender) {
		t.Errorf("Render() error = %v, want ErrTemplateRender", err)
	}
}
