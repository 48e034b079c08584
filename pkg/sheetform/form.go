package sheetform

import (
	"github.com/ukaji3/sheetform-go/pkg/sheetform/render"
)

// RenderForm decodes spreadsheet bytes in formatted mode and renders them as a self-contained
// HTML form page.
func RenderForm(filename string, data []byte, opts Options) (string, error) {
	opts.Mode = ModeFormatted
	wb, err := Decode(filename, data, opts)
	if err != nil {
		return "", err
	}
	page, err := render.Form(wb, opts.FormTitle)
	if err != nil {
		return "", NewWriteError("", err)
	}
	return page, nil
}
