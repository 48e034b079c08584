package models

// Sheet is a rectangular grid of cells. Rows[r-1][c-1] holds the cell at (r, c).
type Sheet struct {
	// Name is the sheet (tab) name.
	Name string
	// Rows holds the grid rows in order.
	Rows [][]Cell
}

// MaxRow returns the number of rows in the grid.
func (s *Sheet) MaxRow() int {
	return len(s.Rows)
}

// MaxCol returns the length of the longest row.
func (s *Sheet) MaxCol() int {
	maxCol := 0
	for _, row := range s.Rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return maxCol
}

// Cell returns the cell at the 1-based (row, col), or nil when outside the grid.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 1 || row > len(s.Rows) {
		return nil
	}
	r := s.Rows[row-1]
	if col < 1 || col > len(r) {
		return nil
	}
	return r[col-1]
}

// MarshalJSON writes the grid as an array of row arrays.
func (s *Sheet) MarshalJSON() ([]byte, error) {
	rows := s.Rows
	if rows == nil {
		rows = [][]Cell{}
	}
	return json.Marshal(rows)
}
