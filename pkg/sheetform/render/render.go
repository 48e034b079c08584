package render

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"

	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
)

// DefaultTitle is the page title and heading used when none is given.
const DefaultTitle = "Spreadsheet form"

//go:embed form.html.tmpl
var formTemplate string

var page = template.Must(template.New("form").Parse(formTemplate))

// Render writes the document as a self-contained HTML page.
func (d *Document) Render(w io.Writer) error {
	return page.Execute(w, d)
}

// Form renders a workbook as an HTML form page.
func Form(wb *models.Workbook, title string) (string, error) {
	if title == "" {
		title = DefaultTitle
	}
	var buf bytes.Buffer
	if err := NewDocument(wb, title).Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
