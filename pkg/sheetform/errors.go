package sheetform

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetform-go/pkg/sheetform/writer"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidInput is matched by every InputValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ErrParse is matched by every ParseError.
var ErrParse = errors.New("cannot parse workbook")

// ErrWrite is matched by every WriteError.
var ErrWrite = errors.New("cannot write workbook")

// InputValidationError is a client-side problem detected before any conversion work starts:
// a rejected file extension or a payload of the wrong shape.
type InputValidationError struct {
	Field  string // "filename", "payload", "sheet", "row", "cell"
	Sheet  string
	Reason string
}

func (e *InputValidationError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("invalid %s in sheet %q: %s", e.Field, e.Sheet, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InputValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInputValidationError creates a new InputValidationError.
func NewInputValidationError(field, sheet, reason string) *InputValidationError {
	return &InputValidationError{
		Field:  field,
		Sheet:  sheet,
		Reason: reason,
	}
}

// ParseError means the source bytes are not a readable spreadsheet container. Sheet is empty
// when the container itself could not be opened.
type ParseError struct {
	Sheet string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("parse error in sheet %q: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a new ParseError.
func NewParseError(sheet string, err error) *ParseError {
	return &ParseError{Sheet: sheet, Err: err}
}

// WriteError means the workbook could not be assembled or serialized.
type WriteError struct {
	Sheet string
	Err   error
}

func (e *WriteError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("write error in sheet %q: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("write error: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

// NewWriteError creates a new WriteError.
func NewWriteError(sheet string, err error) *WriteError {
	return &WriteError{Sheet: sheet, Err: err}
}

// StyleWarning is a recoverable per-cell formula or style problem met while encoding.
type StyleWarning = writer.StyleWarning
