package models

import (
	"fmt"
	"strings"
)

// Workbook is an ordered list of uniquely named sheets.
type Workbook struct {
	// Sheets in display (tab) order.
	Sheets []*Sheet
}

// Names returns the sheet names in order.
func (wb *Workbook) Names() []string {
	names := make([]string, 0, len(wb.Sheets))
	for _, s := range wb.Sheets {
		names = append(names, s.Name)
	}
	return names
}

// Sheet returns the sheet with the given name.
func (wb *Workbook) Sheet(name string) (*Sheet, bool) {
	for _, s := range wb.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Add appends a sheet. Names are compared case-insensitively, as spreadsheet applications do.
func (wb *Workbook) Add(s *Sheet) error {
	for _, existing := range wb.Sheets {
		if strings.EqualFold(existing.Name, s.Name) {
			return fmt.Errorf("duplicate sheet name %q", s.Name)
		}
	}
	wb.Sheets = append(wb.Sheets, s)
	return nil
}

// MarshalJSON writes {"<sheet>": [[...], ...], ...} keeping sheet order.
func (wb *Workbook) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, s := range wb.Sheets {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(s.Name)
		stream.WriteVal(s)
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}
