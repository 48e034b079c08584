package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
)

func TestReadPayloadKeepsSheetOrder(t *testing.T) {
	wb, err := ReadPayload([]byte(`{"Zeta": [[1]], "Alpha": [[2]], "Mid": []}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, wb.Names())
}

func TestReadPayloadCells(t *testing.T) {
	wb, err := ReadPayload([]byte(`{"Sheet": [
		["Name", 30, 2.5, true, null],
		[{"value": 0.25, "display_value": "25.0%", "format": {"number_format": "0%", "font": {"bold": true}}},
		 {"value": 7, "formula": "=A1+B1"},
		 {"value": 1, "display_value": 5}]
	]}`))
	require.NoError(t, err)

	sheet, ok := wb.Sheet("Sheet")
	require.True(t, ok)
	require.Len(t, sheet.Rows, 2)

	assert.Equal(t, models.Scalar{Value: "Name"}, sheet.Cell(1, 1))
	assert.Equal(t, models.Scalar{Value: int64(30)}, sheet.Cell(1, 2))
	assert.Equal(t, models.Scalar{Value: 2.5}, sheet.Cell(1, 3))
	assert.Equal(t, models.Scalar{Value: true}, sheet.Cell(1, 4))
	assert.Equal(t, models.Scalar{Value: nil}, sheet.Cell(1, 5))

	pct, ok := sheet.Cell(2, 1).(*models.Rich)
	require.True(t, ok)
	assert.Equal(t, 0.25, pct.Value)
	require.NotNil(t, pct.DisplayValue)
	assert.Equal(t, "25.0%", *pct.DisplayValue)
	assert.Equal(t, "0%", pct.Format.NumberFormat)
	assert.True(t, pct.Format.Font.IsBold())

	formula := sheet.Cell(2, 2).(*models.Rich)
	assert.Equal(t, "=A1+B1", formula.Formula)
	assert.Equal(t, int64(7), formula.Value)
	assert.NotNil(t, formula.Format)

	// non-string display values are ignored
	assert.Nil(t, sheet.Cell(2, 3).(*models.Rich).DisplayValue)
}

func TestReadPayloadRejectsMalformedShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		sheet   string
	}{
		{"not an object", `[["a"]]`, ""},
		{"sheet is not a list", `{"Good": [[1]], "Bad": {"a": 1}}`, "Bad"},
		{"sheet is a scalar", `{"Bad": 3}`, "Bad"},
		{"row is not a list", `{"Rows": [[1], 2]}`, "Rows"},
		{"nested list cell", `{"Cells": [[[1, 2]]]}`, "Cells"},
		{"duplicate sheet", `{"Data": [], "data": []}`, "data"},
		{"truncated", `{"Data": [[1, 2]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb, err := ReadPayload([]byte(tt.payload))
			require.Error(t, err)
			assert.Nil(t, wb)

			var perr *PayloadError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.sheet, perr.Sheet)
			if tt.sheet != "" {
				assert.Contains(t, err.Error(), tt.sheet)
			}
		})
	}
}

func TestNormalizeValueRejectsObjects(t *testing.T) {
	_, err := ReadPayload([]byte(`{"S": [[{"value": {"nested": 1}}]]}`))
	var perr *PayloadError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Row)
	assert.Equal(t, 1, perr.Col)
}
