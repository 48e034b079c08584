package sheetform

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/output"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Orders"))
	require.NoError(t, f.SetSheetRow("Orders", "A1", &[]any{"Item", "Qty", "Price", "Total"}))
	require.NoError(t, f.SetSheetRow("Orders", "A2", &[]any{"Bolt", 3, 4, 7}))
	require.NoError(t, f.SetCellFormula("Orders", "D2", "B2+C2"))

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Orders", "B3", "Subtotal"))
	require.NoError(t, f.SetCellStyle("Orders", "B3", "B3", bold))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestCheckExtension(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"book.xlsx", false},
		{"BOOK.XLSX", false},
		{"macro.xlsm", false},
		{"legacy.xls", false},
		{"template.xltx", false},
		{"notes.csv", true},
		{"book.xlsx.txt", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckExtension(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeRejectsExtensionBeforeParsing(t *testing.T) {
	// garbage bytes would be a ParseError if they reached the parser
	garbage := []byte("not a zip container")

	_, err := Decode("report.pdf", garbage, DefaultOptions())
	var ive *InputValidationError
	require.ErrorAs(t, err, &ive)
	assert.Equal(t, "filename", ive.Field)
	assert.False(t, errors.Is(err, ErrParse))

	_, err = RenderForm("report.pdf", garbage, DefaultOptions())
	require.ErrorAs(t, err, &ive)
}

func TestDecodeCorruptInput(t *testing.T) {
	_, err := Decode("broken.xlsx", []byte("not a zip container"), DefaultOptions())
	assert.ErrorIs(t, err, ErrParse)

	_, err = Decode("legacy.xls", []byte{0xD0, 0xCF, 0x11, 0xE0}, DefaultOptions())
	assert.ErrorIs(t, err, ErrParse)
}

func TestDecodeSizeLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxUploadSize = 8
	_, err := Decode("book.xlsx", buildWorkbook(t), opts)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeModes(t *testing.T) {
	data := buildWorkbook(t)

	simple, err := Decode("book.xlsx", data, Options{Mode: ModeSimple})
	require.NoError(t, err)
	orders, ok := simple.Sheet("Orders")
	require.True(t, ok)
	assert.Equal(t, models.Scalar{Value: "Bolt"}, orders.Cell(2, 1))
	total, ok := orders.Cell(2, 4).(*models.Rich)
	require.True(t, ok)
	assert.Equal(t, "=B2+C2", total.Formula)
	assert.Equal(t, int64(7), total.Value)

	formatted, err := Decode("book.xlsx", data, Options{Mode: ModeFormatted})
	require.NoError(t, err)
	orders, _ = formatted.Sheet("Orders")
	cell, ok := orders.Cell(1, 1).(*models.Rich)
	require.True(t, ok)
	assert.NotNil(t, cell.Format)

	_, err = Decode("book.xlsx", data, Options{Mode: "verbose"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEncodeRejectsMalformedPayload(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantField string
		wantSheet string
	}{
		{"sheet not a list", `{"Good": [[1]], "Bad": "oops"}`, "sheet", "Bad"},
		{"row not a list", `{"Rows": [[1], 2]}`, "row", "Rows"},
		{"top level list", `[[1, 2]]`, "payload", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Encode([]byte(tt.payload), DefaultOptions())
			assert.Nil(t, res)
			var ive *InputValidationError
			require.ErrorAs(t, err, &ive)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.wantField, ive.Field)
			assert.Equal(t, tt.wantSheet, ive.Sheet)
		})
	}
}

func TestEncodeNoSheets(t *testing.T) {
	res, err := Encode([]byte(`{}`), DefaultOptions())
	assert.Nil(t, res)
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.ErrorIs(t, err, ErrWrite)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, we.Sheet)
}

func TestEncodeInvalidSheetName(t *testing.T) {
	_, err := Encode([]byte(`{"a/b": [[1]]}`), DefaultOptions())
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "a/b", we.Sheet)
	assert.ErrorIs(t, err, ErrWrite)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	wb, err := Decode("book.xlsx", buildWorkbook(t), Options{Mode: ModeFormatted})
	require.NoError(t, err)
	payload, err := output.ToJSON(wb, false)
	require.NoError(t, err)

	res, err := Encode(payload, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	again, err := Decode("again.xlsx", res.Data, Options{Mode: ModeFormatted})
	require.NoError(t, err)
	orders, ok := again.Sheet("Orders")
	require.True(t, ok)

	total := orders.Cell(2, 4).(*models.Rich)
	assert.Equal(t, "=B2+C2", total.Formula)
	assert.Equal(t, int64(7), total.Value)
	subtotal := orders.Cell(3, 2).(*models.Rich)
	assert.True(t, subtotal.Format.Font.IsBold())
}

func TestEncodeReportsWarnings(t *testing.T) {
	res, err := Encode([]byte(`{"S": [[{"value": 1, "display_value": "x%"}]]}`), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "S", res.Warnings[0].Sheet)
	assert.Equal(t, "A1", res.Warnings[0].Cell)
}

func TestRenderForm(t *testing.T) {
	opts := DefaultOptions()
	opts.FormTitle = "Orders form"
	page, err := RenderForm("book.xlsx", buildWorkbook(t), opts)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Orders form</title>")
	assert.Contains(t, page, `id="field-Orders-2-2"`)
	assert.Contains(t, page, `id="field-Orders-2-4"`)
	assert.NotContains(t, page, `id="field-Orders-1-2"`)
	assert.NotContains(t, page, `id="field-Orders-3-2"`)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeSimple, "simple": ModeSimple, "Formatted": ModeFormatted} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("verbose")
	assert.Error(t, err)

	assert.Equal(t, ModeFormatted, ModeFor(true))
	assert.Equal(t, ModeSimple, ModeFor(false))
}
