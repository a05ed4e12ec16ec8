package models

import (
	"fmt"
	"iter"

	"github.com/xuri/excelize/v2"
)

// Rect represents zero-based, inclusive cell coordinate bounds.
type Rect struct {
	// R1 is the start row.
	R1 int `json:"r1"`
	// C1 is the start column.
	C1 int `json:"c1"`
	// R2 is the end row (inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (inclusive).
	C2 int `json:"c2"`
}

// RectOf returns the rectangle spanning two corners as given.
func RectOf(topLeft, bottomRight Coord) Rect {
	return Rect{R1: topLeft.Row, C1: topLeft.Col, R2: bottomRight.Row, C2: bottomRight.Col}
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Coord { return Coord{Row: r.R1, Col: r.C1} }

// BottomRight returns the bottom-right corner.
func (r Rect) BottomRight() Coord { return Coord{Row: r.R2, Col: r.C2} }

// Rows returns the number of rows spanned.
func (r Rect) Rows() int { return r.R2 - r.R1 + 1 }

// Cols returns the number of columns spanned.
func (r Rect) Cols() int { return r.C2 - r.C1 + 1 }

// Size returns the number of cells in the rectangle.
func (r Rect) Size() int { return r.Rows() * r.Cols() }

// Contains reports whether c lies inside r.
func (r Rect) Contains(c Coord) bool {
	return c.Row >= r.R1 && c.Row <= r.R2 && c.Col >= r.C1 && c.Col <= r.C2
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.R1 <= o.R2 && o.R1 <= r.R2 && r.C1 <= o.C2 && o.C1 <= r.C2
}

// Coords iterates the rectangle in row-major order.
func (r Rect) Coords() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for row := r.R1; row <= r.R2; row++ {
			for col := r.C1; col <= r.C2; col++ {
				if !yield(Coord{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}

// A1 renders the rectangle in A1 notation ("B2:C5", or "B2" for one cell).
func (r Rect) A1() string {
	start, err := excelize.CoordinatesToCellName(r.C1+1, r.R1+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", r.R1+1, r.C1+1, r.R2+1, r.C2+1)
	}
	if r.R1 == r.R2 && r.C1 == r.C2 {
		return start
	}
	end, err := excelize.CoordinatesToCellName(r.C2+1, r.R2+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", r.R1+1, r.C1+1, r.R2+1, r.C2+1)
	}
	return start + ":" + end
}
