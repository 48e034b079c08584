package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/xuri/excelize/v2"
)

// parseRangeRef parses a range string like $A$1:$D$10 (or a single cell) into a MergeRange.
func parseRangeRef(ref string) (models.MergeRange, error) {
	ref = strings.ReplaceAll(ref, "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.MergeRange{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.MergeRange{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.MergeRange{}, err
	}

	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	return models.MergeRange{
		MinRow: startRow,
		MinCol: startCol,
		MaxRow: endRow,
		MaxCol: endCol,
	}, nil
}

// extractMergeRanges lists the merge rectangles of a sheet.
func extractMergeRanges(f *excelize.File, sheetName string) ([]models.MergeRange, error) {
	merged, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}

	ranges := make([]models.MergeRange, 0, len(merged))
	for _, mc := range merged {
		mr, err := parseRangeRef(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, mr)
	}
	return ranges, nil
}
