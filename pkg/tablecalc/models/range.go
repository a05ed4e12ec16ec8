package models

import "iter"

// Range is a resolved, in-bounds set of coordinates a calculation runs over.
type Range struct {
	// Rect is the resolved rectangle.
	Rect Rect `json:"rect"`
	// Ref is Rect in A1 notation.
	Ref string `json:"ref"`
	// Table is the table the range was resolved from, if any.
	Table string `json:"table,omitempty"`
	// Name is the defined name the range was resolved from, if any.
	Name string `json:"name,omitempty"`
	// Column is the column label filter that was applied, if any.
	Column string `json:"column,omitempty"`
	// Row is the row label filter that was applied, if any.
	Row string `json:"row,omitempty"`
}

// NewRange returns a Range over rect with its A1 reference filled in.
func NewRange(rect Rect) Range {
	return Range{Rect: rect, Ref: rect.A1()}
}

// Coords iterates the range in row-major order.
func (r Range) Coords() iter.Seq[Coord] {
	return r.Rect.Coords()
}

// Len returns the number of coordinates in the range.
func (r Range) Len() int {
	return r.Rect.Size()
}
