// Package render projects a formatted workbook model into an editable HTML form.
package render

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/numfmt"
	"github.com/xuri/excelize/v2"
)

// Input types emitted for data cells.
const (
	InputText   = "text"
	InputNumber = "number"
	InputDate   = "date"
)

// Document is the view model of one form page.
type Document struct {
	Title  string
	Sheets []SheetView
}

// SheetView is one tab of the page.
type SheetView struct {
	Index  int
	Name   string
	Active bool
	Rows   []RowView
}

// RowView is one table row. Cells covered by a merge are absent.
type RowView struct {
	Cells []CellView
}

// CellView is one rendered table cell. Input is nil for headers and plain cells.
type CellView struct {
	Colspan int
	Rowspan int
	Classes string
	Style   template.CSS
	Text    string
	Input   *InputView
}

// InputView is an editable field. ID doubles as the form field name.
type InputView struct {
	Type  string
	ID    string
	Value string
}

// NewDocument builds the view model of a workbook. The model is expected to come from the
// formatted decode mode; bare scalar cells are shown as plain text.
func NewDocument(wb *models.Workbook, title string) *Document {
	doc := &Document{Title: title}
	for i, sheet := range wb.Sheets {
		sv := SheetView{Index: i, Name: sheet.Name, Active: i == 0}
		for r, row := range sheet.Rows {
			var rv RowView
			for c, cell := range row {
				cv, ok := cellView(sheet.Name, r+1, c+1, cell)
				if ok {
					rv.Cells = append(rv.Cells, cv)
				}
			}
			sv.Rows = append(sv.Rows, rv)
		}
		doc.Sheets = append(doc.Sheets, sv)
	}
	return doc
}

// FieldID is the id and form field name of the input at the 1-based (row, col).
func FieldID(sheet string, row, col int) string {
	return fmt.Sprintf("field-%s-%d-%d", sheet, row, col)
}

// IsHeader reports whether a cell is rendered as text: first row, first column or bold.
func IsHeader(row, col int, c *models.Rich) bool {
	if row == 1 || col == 1 {
		return true
	}
	return c.Format != nil && c.Format.Font.IsBold()
}

func cellView(sheet string, row, col int, cell models.Cell) (CellView, bool) {
	c, ok := cell.(*models.Rich)
	if !ok {
		var text string
		if cell != nil {
			text = models.FormatValue(cell.CellValue())
		}
		return CellView{Text: text}, true
	}
	if c.IsMergeCovered() {
		return CellView{}, false
	}

	var cv CellView
	if c.Format != nil {
		if mr := c.Format.MergeRange; mr != nil {
			cv.Colspan = mr.Cols()
			cv.Rowspan = mr.Rows()
		}
		cv.Classes, cv.Style = cellStyle(c.Format)
	}

	if IsHeader(row, col, c) {
		cv.Text = shownValue(c)
		return cv, true
	}
	in := inputFor(c)
	in.ID = FieldID(sheet, row, col)
	cv.Input = &in
	return cv, true
}

// shownValue is the display value when present, the value otherwise.
func shownValue(c *models.Rich) string {
	if c.DisplayValue != nil {
		return *c.DisplayValue
	}
	return models.FormatValue(c.Value)
}

// inputFor infers the input type and its seed from the display value, then the number format.
func inputFor(c *models.Rich) InputView {
	if dv := c.DisplayValue; dv != nil {
		if strings.HasSuffix(*dv, "%") {
			return InputView{Type: InputNumber, Value: strings.TrimSuffix(*dv, "%")}
		}
		if _, amount, ok := numfmt.SplitCurrency(*dv); ok {
			return InputView{Type: InputNumber, Value: amount}
		}
	}
	if c.Format != nil && numfmt.IsDate(c.Format.NumberFormat) {
		return InputView{Type: InputDate, Value: dateSeed(c.Value)}
	}
	return InputView{Type: InputText, Value: shownValue(c)}
}

// dateSeed formats a serial date as YYYY-MM-DD. Text already in that shape is kept; anything
// else leaves the input empty.
func dateSeed(v any) string {
	if serial, ok := models.ToFloat(v); ok {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return ""
		}
		return t.Format("2006-01-02")
	}
	if s, isString := v.(string); isString && len(s) >= 10 {
		if isISODate(s[:10]) {
			return s[:10]
		}
	}
	return ""
}

func isISODate(s string) bool {
	for i, r := range s {
		switch i {
		case 4, 7:
			if r != '-' {
				return false
			}
		default:
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return len(s) == 10
}

// cellStyle translates font, alignment and fill into CSS classes and an inline style.
func cellStyle(f *models.FormatInfo) (string, template.CSS) {
	var classes, styles []string

	if f.Font.IsBold() {
		classes = append(classes, "bold-text")
	}
	if f.Font.IsItalic() {
		classes = append(classes, "italic-text")
	}
	if f.Font.Name != nil {
		if name := fontFamily(*f.Font.Name); name != "" {
			styles = append(styles, "font-family: "+name)
		}
	}
	if f.Font.Size != nil && *f.Font.Size > 0 {
		styles = append(styles, "font-size: "+strconv.FormatFloat(*f.Font.Size, 'f', -1, 64)+"pt")
	}
	if f.Font.Color != nil {
		if hex, ok := cssColor(*f.Font.Color); ok {
			styles = append(styles, "color: "+hex)
		}
	}

	if h := f.Alignment.Horizontal; h != nil {
		switch *h {
		case "right":
			classes = append(classes, "right-aligned")
		case "center":
			classes = append(classes, "centered")
		}
	}

	if f.Fill.HasColor() {
		if hex, ok := cssColor(*f.Fill.Color); ok {
			styles = append(styles, "background-color: "+hex)
		}
	}

	return strings.Join(classes, " "), template.CSS(strings.Join(styles, "; "))
}

// cssColor turns an ARGB or RGB color into #RRGGBB using its trailing six hex digits.
func cssColor(color string) (string, bool) {
	if len(color) < 6 {
		return "", false
	}
	hex := color[len(color)-6:]
	for _, r := range hex {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return "", false
		}
	}
	return "#" + strings.ToUpper(hex), true
}

// fontFamily keeps the characters a font name may safely carry inside a style attribute.
func fontFamily(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
