// Package models defines the grid model shared by the decode, encode and render paths.
package models

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Cell is one grid position. It is either a Scalar or a *Rich.
type Cell interface {
	// CellValue returns the logical value carried by the cell.
	CellValue() any
	isCell()
}

// Scalar is a bare value cell used by simple mode and by legacy payloads.
type Scalar struct {
	// Value is nil, bool, int64, float64 or string.
	Value any
}

// CellValue implements Cell.
func (s Scalar) CellValue() any { return s.Value }

func (Scalar) isCell() {}

// MarshalJSON writes the bare value.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// Rich is a format-preserving cell.
type Rich struct {
	// Value is the computed value (nil, bool, int64, float64 or string).
	Value any
	// DisplayValue is the percent/currency overlay, nil otherwise.
	DisplayValue *string
	// Formula is the formula text including the leading "=", empty if none.
	Formula string
	// Format is nil for simple-mode formula cells.
	Format *FormatInfo
}

// CellValue implements Cell.
func (r *Rich) CellValue() any { return r.Value }

func (*Rich) isCell() {}

// IsMergeCovered reports whether the cell sits inside a merge region without being its anchor.
func (r *Rich) IsMergeCovered() bool {
	return r.Format != nil && r.Format.IsMerged && r.Format.MergeRange == nil
}

// MarshalJSON writes simple-mode cells as {"formula","value"} and formatted cells as
// {"value","display_value","format"} plus "formula" when present.
func (r *Rich) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	if r.Format == nil {
		stream.WriteObjectField("formula")
		stream.WriteString(r.Formula)
		stream.WriteMore()
		stream.WriteObjectField("value")
		stream.WriteVal(r.Value)
	} else {
		stream.WriteObjectField("value")
		stream.WriteVal(r.Value)
		stream.WriteMore()
		stream.WriteObjectField("display_value")
		stream.WriteVal(r.DisplayValue)
		stream.WriteMore()
		stream.WriteObjectField("format")
		stream.WriteVal(r.Format)
		if r.Formula != "" {
			stream.WriteMore()
			stream.WriteObjectField("formula")
			stream.WriteString(r.Formula)
		}
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}
