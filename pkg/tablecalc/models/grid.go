package models

// Coord is a zero-based (row, column) grid coordinate.
type Coord struct {
	// Row is the zero-based row index.
	Row int `json:"row"`
	// Col is the zero-based column index.
	Col int `json:"col"`
}

// Grid is an immutable rectangular matrix of raw cell values for one worksheet.
//
// Raw values are nil (empty), string, or a Go numeric type. Every coordinate
// inside the bounds has a value; short source rows are padded with nil.
type Grid struct {
	name  string
	rows  int
	cols  int
	cells [][]any
}

// NewGrid builds a Grid from possibly ragged rows. The input is copied, so the
// caller may reuse it afterwards.
func NewGrid(name string, rows [][]any) *Grid {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	cells := make([][]any, len(rows))
	for r, row := range rows {
		cells[r] = make([]any, cols)
		copy(cells[r], row)
	}
	return &Grid{name: name, rows: len(rows), cols: cols, cells: cells}
}

// NewStringGrid builds a Grid from string records, as produced by delimited readers.
func NewStringGrid(name string, records [][]string) *Grid {
	rows := make([][]any, len(records))
	for r, rec := range records {
		rows[r] = make([]any, len(rec))
		for c, s := range rec {
			rows[r][c] = s
		}
	}
	return NewGrid(name, rows)
}

// Name returns the sheet name the grid was loaded from.
func (g *Grid) Name() string { return g.name }

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Bounds returns the rectangle covering the whole grid and false for an empty grid.
func (g *Grid) Bounds() (Rect, bool) {
	if g.rows == 0 || g.cols == 0 {
		return Rect{}, false
	}
	return Rect{R1: 0, C1: 0, R2: g.rows - 1, C2: g.cols - 1}, true
}

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Raw returns the raw value at c.
func (g *Grid) Raw(c Coord) (any, error) {
	if !g.InBounds(c) {
		return nil, &OutOfBoundsError{Coord: c, Rows: g.rows, Cols: g.cols}
	}
	return g.cells[c.Row][c.Col], nil
}

// At returns the raw value at (row, col) without bounds reporting; callers
// iterate within Rows() and Cols().
func (g *Grid) At(row, col int) any {
	return g.cells[row][col]
}
