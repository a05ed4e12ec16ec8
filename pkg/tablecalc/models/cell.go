// Package models defines data structures for workbook grids, discovered tables
// and calculation results.
package models

import (
	"encoding/json"
	"strconv"
)

// CellType is the tag of a coerced cell value.
type CellType uint8

const (
	// CellEmpty is a blank or whitespace-only cell.
	CellEmpty CellType = iota
	// CellNumber is a cell holding a float64.
	CellNumber
	// CellText is a cell holding a string that is not a number.
	CellText
)

func (t CellType) String() string {
	switch t {
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	default:
		return "empty"
	}
}

// Cell is a typed cell value. The tag is fixed at construction.
type Cell struct {
	typ  CellType
	num  float64
	text string
}

// EmptyCell returns the Empty cell.
func EmptyCell() Cell { return Cell{} }

// NumberCell returns a Number cell.
func NumberCell(f float64) Cell { return Cell{typ: CellNumber, num: f} }

// TextCell returns a Text cell holding s.
func TextCell(s string) Cell { return Cell{typ: CellText, text: s} }

// Type returns the cell tag.
func (c Cell) Type() CellType { return c.typ }

// IsEmpty reports whether the cell is Empty.
func (c Cell) IsEmpty() bool { return c.typ == CellEmpty }

// IsNumber reports whether the cell is a Number.
func (c Cell) IsNumber() bool { return c.typ == CellNumber }

// IsText reports whether the cell is Text.
func (c Cell) IsText() bool { return c.typ == CellText }

// Number returns the numeric value and whether the cell is a Number.
func (c Cell) Number() (float64, bool) { return c.num, c.typ == CellNumber }

// Text returns the text value and whether the cell is Text.
func (c Cell) Text() (string, bool) { return c.text, c.typ == CellText }

// String renders the cell for labels: "" for Empty, the shortest float
// representation for Number, the text itself for Text.
func (c Cell) String() string {
	switch c.typ {
	case CellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case CellText:
		return c.text
	default:
		return ""
	}
}

// MarshalJSON encodes Empty as null, Number as a JSON number and Text as a string.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.typ {
	case CellNumber:
		return json.Marshal(c.num)
	case CellText:
		return json.Marshal(c.text)
	default:
		return []byte("null"), nil
	}
}
