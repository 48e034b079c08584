package parser

import "github.com/xuri/excelize/v2"

// sheetBounds returns max_row/max_col of a sheet: the largest populated coordinate over the
// cached values, the merge regions and the declared sheet dimension.
func sheetBounds(f *excelize.File, sheetName string, values *valueGrid, merges *MergeIndex) (maxRow, maxCol int) {
	maxRow, maxCol = findDataBounds(values)

	mRow, mCol := merges.Extent()
	maxRow = max(maxRow, mRow)
	maxCol = max(maxCol, mCol)

	if dim, err := f.GetSheetDimension(sheetName); err == nil && dim != "" {
		if mr, err := parseRangeRef(dim); err == nil && (mr.MaxRow > 1 || mr.MaxCol > 1) {
			maxRow = max(maxRow, mr.MaxRow)
			maxCol = max(maxCol, mr.MaxCol)
		}
	}
	return maxRow, maxCol
}

// findDataBounds finds the bottom-right corner of the non-empty cells.
func findDataBounds(values *valueGrid) (maxRow, maxCol int) {
	for rowIdx, row := range values.rows {
		for colIdx, v := range row {
			if v == nil {
				continue
			}
			maxRow = max(maxRow, rowIdx+1)
			maxCol = max(maxCol, colIdx+1)
		}
	}
	return maxRow, maxCol
}
