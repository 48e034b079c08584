package writer

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/numfmt"
	"github.com/xuri/excelize/v2"
)

const (
	commentAuthor  = "System"
	maxColumnWidth = 255
)

// resolvedCell is a rich cell after display-value inversion.
type resolvedCell struct {
	value   any
	formula string
	numFmt  string
}

// resolveRich derives the value and number format to write. A percent display value forces
// "0%", a currency display value forces the matching currency mask, otherwise the caller's
// number format is kept. Display values that do not parse leave value and format untouched.
func resolveRich(c *models.Rich) (resolvedCell, []issue) {
	rc := resolvedCell{value: c.Value}
	if c.Format != nil {
		rc.numFmt = c.Format.NumberFormat
	}
	if strings.HasPrefix(c.Formula, "=") {
		rc.formula = c.Formula
	}

	if c.DisplayValue == nil {
		return rc, nil
	}
	dv := *c.DisplayValue
	switch {
	case strings.HasSuffix(dv, "%"):
		v, ok := numfmt.ParsePercent(dv)
		if !ok {
			return rc, []issue{{"display_value", errors.New("percent display value " + dv + " is not numeric")}}
		}
		rc.value = v
		rc.numFmt = numfmt.PercentFormat
	default:
		if _, _, isCurrency := numfmt.SplitCurrency(dv); !isCurrency {
			return rc, nil
		}
		sym, v, ok := numfmt.ParseCurrency(dv)
		if !ok {
			return rc, []issue{{"display_value", errors.New("currency display value " + dv + " is not numeric")}}
		}
		rc.value = v
		rc.numFmt, _ = numfmt.CurrencyMask(sym)
	}
	return rc, nil
}

// sheetWriter writes one grid into one worksheet.
type sheetWriter struct {
	f        *excelize.File
	name     string
	log      logrus.FieldLogger
	merges   []models.MergeRange
	widths   map[int]int
	maxCol   int
	warnings []*StyleWarning
}

func newSheetWriter(f *excelize.File, name string, log logrus.FieldLogger) *sheetWriter {
	return &sheetWriter{
		f:      f,
		name:   name,
		log:    log.WithField("sheet", name),
		widths: make(map[int]int),
	}
}

func (w *sheetWriter) warn(cell string, is issue) {
	sw := &StyleWarning{Sheet: w.name, Cell: cell, Component: is.component, Err: is.err}
	w.warnings = append(w.warnings, sw)
	w.log.WithFields(logrus.Fields{
		"cell":      cell,
		"component": is.component,
	}).WithError(is.err).Warn("style not applied")
}

// measure records the text length of a value for column auto-sizing. Falsy values do not count.
func (w *sheetWriter) measure(col int, v any) {
	if !models.IsTruthy(v) {
		return
	}
	if n := utf8.RuneCountInString(models.FormatValue(v)); n > w.widths[col] {
		w.widths[col] = n
	}
}

// write lays out every row, then the pending merges, then the column widths.
func (w *sheetWriter) write(sheet *models.Sheet) error {
	for r, row := range sheet.Rows {
		w.maxCol = max(w.maxCol, len(row))
		for c, cell := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			switch x := cell.(type) {
			case *models.Rich:
				if err := w.writeRich(ref, c+1, x); err != nil {
					return err
				}
			case models.Scalar:
				if err := w.writeScalar(ref, c+1, x); err != nil {
					return err
				}
			}
		}
	}

	w.applyMerges()
	return w.applyWidths()
}

func (w *sheetWriter) writeScalar(ref string, col int, s models.Scalar) error {
	if s.Value == nil {
		return nil
	}
	w.measure(col, s.Value)
	return w.f.SetCellValue(w.name, ref, s.Value)
}

func (w *sheetWriter) writeRich(ref string, col int, c *models.Rich) error {
	rc, issues := resolveRich(c)
	for _, is := range issues {
		w.warn(ref, is)
	}

	// A formula cell is stored with t="str", so only a numeric cached value survives
	// as written. Other cached values are left for the spreadsheet to recalculate.
	_, numeric := models.ToFloat(rc.value)
	if rc.value != nil && (rc.formula == "" || numeric) {
		if err := w.f.SetCellValue(w.name, ref, rc.value); err != nil {
			return err
		}
	}

	measured := rc.value
	if rc.formula != "" {
		if err := w.applyFormula(ref, rc); err != nil {
			w.warn(ref, issue{"formula", err})
		} else {
			measured = rc.formula
		}
	}
	w.measure(col, measured)

	spec, issues := buildStyleSpec(rc.numFmt, c.Format)
	for _, is := range issues {
		w.warn(ref, is)
	}
	if !spec.empty() {
		id, issues := newStyle(w.f, spec)
		for _, is := range issues {
			w.warn(ref, is)
		}
		if err := w.f.SetCellStyle(w.name, ref, ref, id); err != nil {
			w.warn(ref, issue{"style", err})
		}
	}

	if c.Format != nil && c.Format.MergeRange != nil {
		w.merges = append(w.merges, *c.Format.MergeRange)
	}
	return nil
}

// applyFormula stores the formula on the cell. When the formula is rejected the plain value
// stays and a comment keeps the original text.
func (w *sheetWriter) applyFormula(ref string, rc resolvedCell) error {
	body := strings.TrimPrefix(rc.formula, "=")
	err := checkFormula(body)
	if err == nil {
		err = w.f.SetCellFormula(w.name, ref, body)
	}
	if err == nil {
		return nil
	}

	if rc.value != nil {
		if verr := w.f.SetCellValue(w.name, ref, rc.value); verr != nil {
			return errors.Join(err, verr)
		}
	}
	if cerr := w.f.AddComment(w.name, excelize.Comment{
		Author: commentAuthor,
		Cell:   ref,
		Text:   "Original formula: " + rc.formula,
	}); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

func (w *sheetWriter) applyMerges() {
	for _, mr := range w.merges {
		w.maxCol = max(w.maxCol, mr.MaxCol)
		topLeft, err := excelize.CoordinatesToCellName(mr.MinCol, mr.MinRow)
		if err != nil {
			w.warn("", issue{"merge_range", err})
			continue
		}
		bottomRight, err := excelize.CoordinatesToCellName(mr.MaxCol, mr.MaxRow)
		if err != nil {
			w.warn(topLeft, issue{"merge_range", err})
			continue
		}
		if err := w.f.MergeCell(w.name, topLeft, bottomRight); err != nil {
			w.warn(topLeft, issue{"merge_range", err})
		}
	}
}

// applyWidths sets every column to its longest text plus two characters.
func (w *sheetWriter) applyWidths() error {
	for col := 1; col <= w.maxCol; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		width := min(w.widths[col]+2, maxColumnWidth)
		if err := w.f.SetColWidth(w.name, name, name, float64(width)); err != nil {
			return err
		}
	}
	return nil
}
