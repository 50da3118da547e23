package assets

import (
	"fmt"
	"html/template"
	"io"
)

// PageData is the input of a page template.
type PageData struct {
	Title   string
	Control string        // context-help control id, empty when none
	Style   template.CSS  // stylesheet inlined into the page
	Body    template.HTML // compiled document fragment
}

// Page is a parsed page template bound to a stylesheet.
type Page struct {
	tmpl  *template.Template
	style template.CSS
}

// LoadPage loads and parses the named template and stylesheet from loader.
// An empty style name produces pages without a stylesheet.
func LoadPage(loader AssetLoader, templateName, styleName string) (*Page, error) {
	source, err := loader.LoadTemplate(templateName)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(templateName).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTemplateParse, templateName, err)
	}

	page := &Page{tmpl: tmpl}
	if styleName != "" {
		css, err := loader.LoadStyle(styleName)
		if err != nil {
			return nil, err
		}
		page.style = template.CSS(css) // #nosec G203 -- stylesheet comes from trusted assets
	}
	return page, nil
}

// Render writes a complete HTML page for one document. The page's
// stylesheet replaces data.Style.
func (p *Page) Render(w io.Writer, data PageData) error {
	data.Style = p.style
	if err := p.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return nil
}
