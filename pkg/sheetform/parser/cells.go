package parser

import (
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// valueGrid is the values pass of a sheet: typed cached values indexed [row-1][col-1].
type valueGrid struct {
	rows   [][]any
	maxCol int
}

// at returns the value at the 1-based (row, col), nil when absent.
func (g *valueGrid) at(row, col int) any {
	if row < 1 || row > len(g.rows) {
		return nil
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return nil
	}
	return r[col-1]
}

// extractValues reads the cached value of every populated cell in a sheet, typed by the
// cell's storage type.
func extractValues(f *excelize.File, sheetName string) (*valueGrid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := &valueGrid{rows: make([][]any, len(rows))}
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		values := make([]any, len(row))

		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			values[colIdx] = typedValue(raw, cellType)
			grid.maxCol = max(grid.maxCol, colIdx+1)
		}
		grid.rows[rowIdx] = values
	}

	return grid, nil
}

// typedValue converts a raw cell string according to the cell's storage type.
func typedValue(raw string, cellType excelize.CellType) any {
	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE" || raw == "true"
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeError, excelize.CellTypeDate:
		return raw
	case excelize.CellTypeFormula:
		// t="str" holds the cached result of a formula, numeric or not.
		return parseValue(raw)
	default:
		return parseValue(raw)
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, nil for NaN/Inf, or the original string.
func parseValue(s string) any {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	}
	// Return as string
	return s
}
