package parser

import (
	"testing"

	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
)

func TestMergeIndex(t *testing.T) {
	idx := NewMergeIndex([]models.MergeRange{
		{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2},
		{MinRow: 4, MinCol: 3, MaxRow: 4, MaxCol: 5},
	})

	tests := []struct {
		row, col int
		merged   bool
		covered  bool
		anchor   Position
	}{
		{1, 1, true, false, Position{1, 1}},
		{1, 2, true, true, Position{1, 1}},
		{2, 1, true, true, Position{1, 1}},
		{2, 2, true, true, Position{1, 1}},
		{3, 3, false, false, Position{}},
		{4, 3, true, false, Position{4, 3}},
		{4, 5, true, true, Position{4, 3}},
	}

	for _, tt := range tests {
		anchor, merged := idx.Anchor(tt.row, tt.col)
		if merged != tt.merged {
			t.Errorf("Anchor(%d,%d) merged = %v, expected %v", tt.row, tt.col, merged, tt.merged)
		}
		if merged && anchor != tt.anchor {
			t.Errorf("Anchor(%d,%d) = %v, expected %v", tt.row, tt.col, anchor, tt.anchor)
		}
		if got := idx.IsCovered(tt.row, tt.col); got != tt.covered {
			t.Errorf("IsCovered(%d,%d) = %v, expected %v", tt.row, tt.col, got, tt.covered)
		}
	}

	if _, ok := idx.Range(1, 2); ok {
		t.Error("Range(1,2) should not report a non-anchor position")
	}
	mr, ok := idx.Range(4, 3)
	if !ok || mr.MaxCol != 5 {
		t.Errorf("Range(4,3) = %+v, %v", mr, ok)
	}

	maxRow, maxCol := idx.Extent()
	if maxRow != 4 || maxCol != 5 {
		t.Errorf("Extent() = (%d,%d), expected (4,5)", maxRow, maxCol)
	}
}

func TestParseRangeRef(t *testing.T) {
	tests := []struct {
		ref      string
		expected models.MergeRange
		wantErr  bool
	}{
		{"A1:B2", models.MergeRange{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2}, false},
		{"$C$3:$D$10", models.MergeRange{MinRow: 3, MinCol: 3, MaxRow: 10, MaxCol: 4}, false},
		{"B2:A1", models.MergeRange{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2}, false},
		{"E5", models.MergeRange{MinRow: 5, MinCol: 5, MaxRow: 5, MaxCol: 5}, false},
		{"A1:B2:C3", models.MergeRange{}, true},
		{"bogus", models.MergeRange{}, true},
	}

	for _, tt := range tests {
		got, err := parseRangeRef(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseRangeRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.expected {
			t.Errorf("parseRangeRef(%q) = %+v, expected %+v", tt.ref, got, tt.expected)
		}
	}
}
