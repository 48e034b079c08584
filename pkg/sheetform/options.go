// Package sheetform converts spreadsheets to structured JSON and back, and renders them as
// HTML forms.
package sheetform

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Mode represents the decode mode.
type Mode string

const (
	// ModeSimple emits bare values, plus {formula, value} cells where a formula exists.
	ModeSimple Mode = "simple"
	// ModeFormatted emits a dense grid of rich cells carrying format and merge metadata.
	ModeFormatted Mode = "formatted"
)

// DefaultMaxUploadSize bounds the bytes accepted by one conversion request.
const DefaultMaxUploadSize int64 = 32 << 20

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSimple, "":
		return ModeSimple, nil
	case ModeFormatted:
		return ModeFormatted, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be simple or formatted)", s)
	}
}

// ModeFor maps the include_format switch onto a Mode.
func ModeFor(includeFormat bool) Mode {
	if includeFormat {
		return ModeFormatted
	}
	return ModeSimple
}

// Options configures conversion behavior.
type Options struct {
	// Mode specifies the decode mode (simple, formatted).
	Mode Mode
	// Logger receives debug and warning entries. If nil, nothing is logged.
	Logger logrus.FieldLogger
	// MaxUploadSize caps the size of an input file or payload.
	// If zero, defaults to DefaultMaxUploadSize.
	MaxUploadSize int64
	// FormTitle is the page title of rendered forms.
	// If empty, the renderer's default title is used.
	FormTitle string
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeSimple,
	}
}

// logger returns the configured logger or one that discards everything.
func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// UploadLimit returns the effective input size limit.
func (o Options) UploadLimit() int64 {
	if o.MaxUploadSize > 0 {
		return o.MaxUploadSize
	}
	return DefaultMaxUploadSize
}

func (o Options) checkSize(field string, n int) error {
	if limit := o.UploadLimit(); int64(n) > limit {
		return NewInputValidationError(field, "", fmt.Sprintf("%s exceeds the %s limit", humanize.IBytes(uint64(n)), humanize.IBytes(uint64(limit))))
	}
	return nil
}
