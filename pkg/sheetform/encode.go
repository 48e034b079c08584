package sheetform

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/writer"
)

// EncodeResult is a serialized workbook and the per-cell problems that were recovered from.
type EncodeResult struct {
	Data     []byte
	Warnings []*StyleWarning
}

// Encode validates a {"<sheet>": [[cell, ...], ...]} JSON payload and builds a workbook from
// it. Nothing is written when the payload shape is invalid.
func Encode(payload []byte, opts Options) (*EncodeResult, error) {
	if err := opts.checkSize("payload", len(payload)); err != nil {
		return nil, err
	}
	wb, err := writer.ReadPayload(payload)
	if err != nil {
		return nil, wrapPayloadError(err)
	}
	return EncodeWorkbook(wb, opts)
}

// EncodeWorkbook builds a workbook from an in-memory model.
func EncodeWorkbook(wb *models.Workbook, opts Options) (*EncodeResult, error) {
	log := opts.logger()
	res, err := writer.Write(wb, log)
	if err != nil {
		var se *writer.SheetError
		if errors.As(err, &se) {
			return nil, NewWriteError(se.Sheet, se.Err)
		}
		return nil, NewWriteError("", err)
	}

	if len(res.Warnings) > 0 {
		log.WithFields(logrus.Fields{
			"sheets":   len(wb.Sheets),
			"warnings": len(res.Warnings),
		}).Warn("workbook encoded with dropped formulas or styles")
	}
	return &EncodeResult{Data: res.Data, Warnings: res.Warnings}, nil
}

func wrapPayloadError(err error) error {
	var pe *writer.PayloadError
	if !errors.As(err, &pe) {
		return NewInputValidationError("payload", "", err.Error())
	}
	field := "payload"
	switch {
	case pe.Col > 0:
		field = "cell"
	case pe.Row > 0:
		field = "row"
	case pe.Sheet != "":
		field = "sheet"
	}
	return NewInputValidationError(field, pe.Sheet, pe.Error())
}
