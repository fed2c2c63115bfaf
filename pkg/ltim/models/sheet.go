package models

// Sheet is an immutable grid of cells for a single worksheet.
type Sheet struct {
	// Name is the worksheet name.
	Name string
	// rows holds cell values indexed [row-1][col-1]; every row has cols entries.
	rows [][]interface{}
	cols int
}

// NewSheet builds a sheet from row-major values. Ragged rows are padded with
// empty cells, and values that are not nil, string or float64 are normalised
// (integers become float64, other types become empty cells).
func NewSheet(name string, values [][]interface{}) *Sheet {
	cols := 0
	for _, row := range values {
		if len(row) > cols {
			cols = len(row)
		}
	}

	rows := make([][]interface{}, len(values))
	for i, row := range values {
		r := make([]interface{}, cols)
		for j, v := range row {
			r[j] = normalizeValue(v)
		}
		rows[i] = r
	}

	return &Sheet{Name: name, rows: rows, cols: cols}
}

// Rows returns the number of rows in the sheet.
func (s *Sheet) Rows() int {
	return len(s.rows)
}

// Cols returns the number of columns in the sheet.
func (s *Sheet) Cols() int {
	return s.cols
}

// Contains reports whether (row, col) lies inside the sheet.
func (s *Sheet) Contains(row, col int) bool {
	return row >= 1 && col >= 1 && row <= len(s.rows) && col <= s.cols
}

// Cell returns the cell at (row, col). ok is false outside the sheet.
func (s *Sheet) Cell(row, col int) (Cell, bool) {
	if !s.Contains(row, col) {
		return Cell{}, false
	}
	return Cell{Row: row, Col: col, Value: s.rows[row-1][col-1]}, true
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case int32:
		return float64(t)
	}
	return nil
}
