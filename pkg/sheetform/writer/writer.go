package writer

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned for a workbook without sheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// SheetError reports a fatal failure while writing one sheet.
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

// Result is a serialized workbook plus the recoverable problems met while building it.
type Result struct {
	Data     []byte
	Warnings []*StyleWarning
}

// Write builds a workbook with one worksheet per sheet, in order, and serializes it.
func Write(wb *models.Workbook, log logrus.FieldLogger) (*Result, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	result := &Result{}
	for i, sheet := range wb.Sheets {
		if err := addSheet(f, i, defaultSheet, sheet.Name); err != nil {
			return nil, &SheetError{Sheet: sheet.Name, Err: err}
		}

		sw := newSheetWriter(f, sheet.Name, log)
		if err := sw.write(sheet); err != nil {
			return nil, &SheetError{Sheet: sheet.Name, Err: err}
		}
		result.Warnings = append(result.Warnings, sw.warnings...)
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	result.Data = buf.Bytes()

	log.WithFields(logrus.Fields{
		"sheets":   len(wb.Sheets),
		"bytes":    len(result.Data),
		"warnings": len(result.Warnings),
	}).Debug("encoded workbook")
	return result, nil
}

// addSheet reuses the default sheet of a new file for the first sheet so no empty sheet is
// left behind.
func addSheet(f *excelize.File, i int, defaultSheet, name string) error {
	if i == 0 {
		if name == defaultSheet {
			return nil
		}
		return f.SetSheetName(defaultSheet, name)
	}
	_, err := f.NewSheet(name)
	return err
}
