package parser

import "github.com/ukaji3/sheetform-go/pkg/sheetform/models"

// Position is a 1-based (row, col) coordinate.
type Position struct {
	Row int
	Col int
}

// MergeIndex maps every merged position to the anchor of its region. It is built once per
// sheet and never mutated afterwards.
type MergeIndex struct {
	anchors map[Position]Position
	ranges  map[Position]models.MergeRange
}

// NewMergeIndex builds the index in time linear in the number of merged cells. When regions
// overlap (which a valid workbook never does) the first region listed keeps the position.
func NewMergeIndex(ranges []models.MergeRange) *MergeIndex {
	idx := &MergeIndex{
		anchors: make(map[Position]Position),
		ranges:  make(map[Position]models.MergeRange, len(ranges)),
	}
	for _, mr := range ranges {
		anchor := Position{Row: mr.MinRow, Col: mr.MinCol}
		if _, taken := idx.anchors[anchor]; taken {
			continue
		}
		idx.ranges[anchor] = mr
		for r := mr.MinRow; r <= mr.MaxRow; r++ {
			for c := mr.MinCol; c <= mr.MaxCol; c++ {
				pos := Position{Row: r, Col: c}
				if _, taken := idx.anchors[pos]; !taken {
					idx.anchors[pos] = anchor
				}
			}
		}
	}
	return idx
}

// Anchor returns the anchor of the region covering (row, col) and whether it is merged.
func (m *MergeIndex) Anchor(row, col int) (Position, bool) {
	a, ok := m.anchors[Position{Row: row, Col: col}]
	return a, ok
}

// IsCovered reports whether (row, col) is merged but not its region's anchor.
func (m *MergeIndex) IsCovered(row, col int) bool {
	a, ok := m.Anchor(row, col)
	return ok && (a.Row != row || a.Col != col)
}

// Range returns the region anchored at (row, col). Non-anchor positions report false.
func (m *MergeIndex) Range(row, col int) (models.MergeRange, bool) {
	mr, ok := m.ranges[Position{Row: row, Col: col}]
	return mr, ok
}

// Extent returns the largest row and column covered by any region.
func (m *MergeIndex) Extent() (maxRow, maxCol int) {
	for _, mr := range m.ranges {
		maxRow = max(maxRow, mr.MaxRow)
		maxCol = max(maxCol, mr.MaxCol)
	}
	return maxRow, maxCol
}
