package sheetform

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/parser"
)

// acceptedExtensions are the spreadsheet file extensions let through the gate. Legacy .xls
// passes the gate but cannot be parsed.
var acceptedExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".xls"}

// CheckExtension rejects file names that do not end in a spreadsheet extension.
func CheckExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, accepted := range acceptedExtensions {
		if ext == accepted {
			return nil
		}
	}
	return NewInputValidationError("filename", "",
		"file must be a spreadsheet ("+strings.Join(acceptedExtensions, ", ")+"), got "+quoteName(filename))
}

func quoteName(filename string) string {
	if filename == "" {
		return "an unnamed file"
	}
	return `"` + filepath.Base(filename) + `"`
}

// Decode parses spreadsheet bytes into a workbook model in the configured mode.
func Decode(filename string, data []byte, opts Options) (*models.Workbook, error) {
	if err := CheckExtension(filename); err != nil {
		return nil, err
	}
	if err := opts.checkSize("file", len(data)); err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeSimple
	}
	log := opts.logger().WithFields(logrus.Fields{
		"file": filepath.Base(filename),
		"mode": string(mode),
	})

	src := parser.BytesSource(data)
	var (
		wb  *models.Workbook
		err error
	)
	switch mode {
	case ModeSimple:
		wb, err = parser.ExtractSimple(src, log)
	case ModeFormatted:
		wb, err = parser.ExtractFormatted(src, log)
	default:
		return nil, NewInputValidationError("mode", "", "unknown mode "+string(mode))
	}
	if err != nil {
		return nil, wrapParseError(err)
	}

	log.WithField("sheets", len(wb.Sheets)).Debug("decoded workbook")
	return wb, nil
}

func wrapParseError(err error) error {
	var se *parser.SheetError
	if errors.As(err, &se) {
		return NewParseError(se.Sheet, se.Err)
	}
	return NewParseError("", err)
}
