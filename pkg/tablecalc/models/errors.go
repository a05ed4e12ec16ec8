package models

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds indicates a coordinate outside the grid or inverted range corners.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrTableNotFound indicates no discovered table carries the requested label.
	ErrTableNotFound = errors.New("table not found")
	// ErrLabelNotFound indicates a row or column label filter matched nothing.
	ErrLabelNotFound = errors.New("label not found")
	// ErrNameNotFound indicates the workbook has no such defined name.
	ErrNameNotFound = errors.New("defined name not found")
	// ErrEmptyRange indicates an aggregate that needs numbers found none.
	ErrEmptyRange = errors.New("empty range")
	// ErrUnknownOperation indicates an unsupported aggregate name.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrOverflow indicates an aggregate whose result is not a finite number.
	ErrOverflow = errors.New("numeric overflow")
	// ErrInvalidReference indicates an unparsable A1 reference.
	ErrInvalidReference = errors.New("invalid cell reference")
)

// OutOfBoundsError reports the offending coordinate and the grid size.
type OutOfBoundsError struct {
	Coord Coord
	Rows  int
	Cols  int
	// Inverted is set when Coord is a bottom-right corner above or left of the top-left one.
	Inverted bool
}

func (e *OutOfBoundsError) Error() string {
	if e.Inverted {
		return fmt.Sprintf("%v: corner (%d,%d) precedes the top-left corner", ErrOutOfBounds, e.Coord.Row, e.Coord.Col)
	}
	return fmt.Sprintf("%v: (%d,%d) outside %dx%d grid", ErrOutOfBounds, e.Coord.Row, e.Coord.Col, e.Rows, e.Cols)
}

func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// TableNotFoundError carries the requested table name.
type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", ErrTableNotFound, e.Name)
}

func (e *TableNotFoundError) Is(target error) bool { return target == ErrTableNotFound }

// Axis names the direction a label filter scans.
type Axis string

const (
	// AxisColumn matches header row cells.
	AxisColumn Axis = "column"
	// AxisRow matches the first column of the data rows.
	AxisRow Axis = "row"
)

// LabelNotFoundError carries the table, the missing label and which axis was scanned.
type LabelNotFoundError struct {
	Table string
	Label string
	Axis  Axis
}

func (e *LabelNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s %q in table %q", ErrLabelNotFound, e.Axis, e.Label, e.Table)
}

func (e *LabelNotFoundError) Is(target error) bool { return target == ErrLabelNotFound }

// NameNotFoundError carries the requested defined name.
type NameNotFoundError struct {
	Name string
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", ErrNameNotFound, e.Name)
}

func (e *NameNotFoundError) Is(target error) bool { return target == ErrNameNotFound }

// EmptyRangeError carries the operation that had no numeric input.
type EmptyRangeError struct {
	Operation string
	Range     Range
	Skipped   int
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("%v: %s over %s has no numeric cells (%d skipped)", ErrEmptyRange, e.Operation, e.Range.Ref, e.Skipped)
}

func (e *EmptyRangeError) Is(target error) bool { return target == ErrEmptyRange }

// OverflowError carries the operation whose result left the float64 range.
type OverflowError struct {
	Operation string
	Range     Range
	Included  int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: %s over %s (%d numeric cells)", ErrOverflow, e.Operation, e.Range.Ref, e.Included)
}

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }
