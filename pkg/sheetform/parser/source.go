package parser

import (
	"bytes"
	"io"

	"github.com/xuri/excelize/v2"
)

// Source is a re-openable spreadsheet byte stream. Every Open returns an independent reader
// positioned at the start, so several parses can run over the same content.
type Source interface {
	Open() (io.Reader, error)
}

// BytesSource serves an in-memory container.
type BytesSource []byte

// Open implements Source.
func (b BytesSource) Open() (io.Reader, error) {
	return bytes.NewReader(b), nil
}

// openFile performs one independent parse of the source.
func openFile(src Source) (*excelize.File, error) {
	r, err := src.Open()
	if err != nil {
		return nil, err
	}
	return excelize.OpenReader(r)
}

// passes holds the two read-only parses of a decode call: one read for cached (computed)
// values and one read for formulas and styles.
type passes struct {
	values   *excelize.File
	formulas *excelize.File
}

func openPasses(src Source) (*passes, error) {
	values, err := openFile(src)
	if err != nil {
		return nil, err
	}
	formulas, err := openFile(src)
	if err != nil {
		values.Close()
		return nil, err
	}
	return &passes{values: values, formulas: formulas}, nil
}

func (p *passes) Close() error {
	err := p.values.Close()
	if ferr := p.formulas.Close(); err == nil {
		err = ferr
	}
	return err
}
