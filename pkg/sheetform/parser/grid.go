package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/numfmt"
	"github.com/xuri/excelize/v2"
)

// SheetError reports a failure while reading one sheet.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// ExtractSimple builds the compact grid: bare scalars, plus {formula, value} cells where the
// formulas pass finds a formula. The value of such a cell comes from the values pass.
func ExtractSimple(src Source, log logrus.FieldLogger) (*models.Workbook, error) {
	return extract(src, log, buildSimpleSheet)
}

// ExtractFormatted builds the dense grid of Rich cells carrying format metadata.
func ExtractFormatted(src Source, log logrus.FieldLogger) (*models.Workbook, error) {
	return extract(src, log, buildFormattedSheet)
}

type sheetBuilder func(p *passes, fx *FormatExtractor, sheetName string) (*models.Sheet, error)

func extract(src Source, log logrus.FieldLogger, build sheetBuilder) (*models.Workbook, error) {
	p, err := openPasses(src)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	fx := NewFormatExtractor(p.formulas)
	wb := &models.Workbook{}
	for _, sheetName := range p.formulas.GetSheetList() {
		sheet, err := build(p, fx, sheetName)
		if err != nil {
			return nil, &SheetError{Sheet: sheetName, Err: err}
		}
		if err := wb.Add(sheet); err != nil {
			return nil, &SheetError{Sheet: sheetName, Err: err}
		}
		log.WithFields(logrus.Fields{
			"sheet": sheetName,
			"rows":  sheet.MaxRow(),
			"cols":  sheet.MaxCol(),
		}).Debug("decoded sheet")
	}
	return wb, nil
}

// cellFormula returns the formula of a cell with its leading "=", or "".
func cellFormula(f *excelize.File, sheetName, cellName string) (string, error) {
	formula, err := f.GetCellFormula(sheetName, cellName)
	if err != nil || formula == "" {
		return "", err
	}
	if formula[0] != '=' {
		formula = "=" + formula
	}
	return formula, nil
}

func buildSimpleSheet(p *passes, _ *FormatExtractor, sheetName string) (*models.Sheet, error) {
	values, err := extractValues(p.values, sheetName)
	if err != nil {
		return nil, err
	}
	merges, err := extractMergeRanges(p.formulas, sheetName)
	if err != nil {
		return nil, err
	}
	maxRow, maxCol := sheetBounds(p.formulas, sheetName, values, NewMergeIndex(merges))

	sheet := &models.Sheet{Name: sheetName, Rows: make([][]models.Cell, maxRow)}
	for row := 1; row <= maxRow; row++ {
		cells := make([]models.Cell, maxCol)
		for col := 1; col <= maxCol; col++ {
			cellName, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			formula, err := cellFormula(p.formulas, sheetName, cellName)
			if err != nil {
				return nil, err
			}
			value := values.at(row, col)
			if formula != "" {
				cells[col-1] = &models.Rich{Value: value, Formula: formula}
			} else {
				cells[col-1] = models.Scalar{Value: value}
			}
		}
		sheet.Rows[row-1] = cells
	}
	return sheet, nil
}

func buildFormattedSheet(p *passes, fx *FormatExtractor, sheetName string) (*models.Sheet, error) {
	values, err := extractValues(p.values, sheetName)
	if err != nil {
		return nil, err
	}
	ranges, err := extractMergeRanges(p.formulas, sheetName)
	if err != nil {
		return nil, err
	}
	merges := NewMergeIndex(ranges)
	maxRow, maxCol := sheetBounds(p.formulas, sheetName, values, merges)

	sheet := &models.Sheet{Name: sheetName, Rows: make([][]models.Cell, maxRow)}
	for row := 1; row <= maxRow; row++ {
		cells := make([]models.Cell, maxCol)
		for col := 1; col <= maxCol; col++ {
			cellName, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			cell, err := buildRichCell(p, fx, merges, values, sheetName, cellName, row, col)
			if err != nil {
				return nil, err
			}
			cells[col-1] = cell
		}
		sheet.Rows[row-1] = cells
	}
	return sheet, nil
}

func buildRichCell(p *passes, fx *FormatExtractor, merges *MergeIndex, values *valueGrid,
	sheetName, cellName string, row, col int,
) (*models.Rich, error) {
	format := fx.Extract(sheetName, cellName)
	value := values.at(row, col)

	formula, err := cellFormula(p.formulas, sheetName, cellName)
	if err != nil {
		return nil, err
	}

	cell := &models.Rich{
		Value:        value,
		DisplayValue: numfmt.DisplayValue(value, format.NumberFormat),
		Formula:      formula,
	}

	if _, merged := merges.Anchor(row, col); merged {
		format.IsMerged = true
	}
	if merges.IsCovered(row, col) {
		cell.Value = nil
		cell.DisplayValue = nil
		cell.Formula = ""
	} else if mr, anchor := merges.Range(row, col); anchor {
		format.MergeRange = &mr
	}
	cell.Format = &format
	return cell, nil
}
