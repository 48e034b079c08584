// Package writer rebuilds spreadsheet containers from structured grid data.
package writer

import (
	"encoding/json"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
)

var payloadAPI = jsoniter.Config{
	UseNumber:              true,
	EscapeHTML:             false,
	SortMapKeys:            false,
	ValidateJsonRawMessage: true,
}.Froze()

// PayloadError reports a payload whose shape cannot be converted. Row and Col are 1-based
// and zero when the problem is not tied to a cell.
type PayloadError struct {
	Sheet  string
	Row    int
	Col    int
	Reason string
}

func (e *PayloadError) Error() string {
	switch {
	case e.Sheet == "":
		return e.Reason
	case e.Row == 0:
		return fmt.Sprintf("sheet %q: %s", e.Sheet, e.Reason)
	case e.Col == 0:
		return fmt.Sprintf("sheet %q row %d: %s", e.Sheet, e.Row, e.Reason)
	default:
		return fmt.Sprintf("sheet %q row %d col %d: %s", e.Sheet, e.Row, e.Col, e.Reason)
	}
}

// richPayload is the wire form of a rich cell. Fields that are not strings where strings are
// expected are ignored rather than rejected.
type richPayload struct {
	Value        any                `json:"value"`
	DisplayValue any                `json:"display_value"`
	Formula      any                `json:"formula"`
	Format       *models.FormatInfo `json:"format"`
}

// ReadPayload parses {"<sheet>": [[cell, ...], ...], ...} keeping sheet order. Each cell is a
// bare scalar or a rich object. The whole payload is validated before anything is returned.
func ReadPayload(data []byte) (*models.Workbook, error) {
	iter := jsoniter.ParseBytes(payloadAPI, data)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, &PayloadError{Reason: "payload must be a JSON object keyed by sheet name"}
	}

	wb := &models.Workbook{}
	var perr *PayloadError
	iter.ReadObjectCB(func(it *jsoniter.Iterator, sheetName string) bool {
		sheet, err := readSheet(it, sheetName)
		if err != nil {
			perr = err
			return false
		}
		if err := wb.Add(sheet); err != nil {
			perr = &PayloadError{Sheet: sheetName, Reason: err.Error()}
			return false
		}
		return true
	})
	if perr != nil {
		return nil, perr
	}
	if iter.Error != nil {
		return nil, &PayloadError{Reason: fmt.Sprintf("malformed JSON: %v", iter.Error)}
	}
	return wb, nil
}

func readSheet(it *jsoniter.Iterator, sheetName string) (*models.Sheet, *PayloadError) {
	if it.WhatIsNext() != jsoniter.ArrayValue {
		it.Skip()
		return nil, &PayloadError{Sheet: sheetName, Reason: "sheet data must be a list of rows"}
	}

	sheet := &models.Sheet{Name: sheetName, Rows: [][]models.Cell{}}
	var perr *PayloadError
	it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		rowNum := len(sheet.Rows) + 1
		if it.WhatIsNext() != jsoniter.ArrayValue {
			it.Skip()
			perr = &PayloadError{Sheet: sheetName, Row: rowNum, Reason: "each row must be a list of cells"}
			return false
		}
		row := []models.Cell{}
		it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			cell, err := readCell(it)
			if err != nil {
				perr = &PayloadError{Sheet: sheetName, Row: rowNum, Col: len(row) + 1, Reason: err.Error()}
				return false
			}
			row = append(row, cell)
			return true
		})
		sheet.Rows = append(sheet.Rows, row)
		return perr == nil
	})
	if perr != nil {
		return nil, perr
	}
	return sheet, nil
}

func readCell(it *jsoniter.Iterator) (models.Cell, error) {
	switch it.WhatIsNext() {
	case jsoniter.ObjectValue:
		var p richPayload
		it.ReadVal(&p)
		if it.Error != nil {
			return nil, fmt.Errorf("invalid cell object: %w", it.Error)
		}
		return p.toRich()
	case jsoniter.ArrayValue:
		it.Skip()
		return nil, fmt.Errorf("a cell cannot be a list")
	default:
		v := it.Read()
		if it.Error != nil {
			return nil, it.Error
		}
		value, err := normalizeValue(v)
		if err != nil {
			return nil, err
		}
		return models.Scalar{Value: value}, nil
	}
}

func (p richPayload) toRich() (*models.Rich, error) {
	value, err := normalizeValue(p.Value)
	if err != nil {
		return nil, err
	}
	cell := &models.Rich{Value: value, Format: p.Format}
	if dv, ok := p.DisplayValue.(string); ok {
		cell.DisplayValue = &dv
	}
	if f, ok := p.Formula.(string); ok {
		cell.Formula = f
	}
	if cell.Format == nil {
		cell.Format = &models.FormatInfo{}
	}
	return cell, nil
}

// normalizeValue maps decoded JSON scalars onto the model's value types.
func normalizeValue(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string:
		return x, nil
	case json.Number:
		s := x.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := x.Int64(); err == nil {
				return i, nil
			}
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", s)
		}
		return f, nil
	case float64:
		return x, nil
	default:
		return nil, fmt.Errorf("unsupported cell value of type %T", v)
	}
}
