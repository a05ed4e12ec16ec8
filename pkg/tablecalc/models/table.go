package models

import "fmt"

// Extent is the size of a table region.
type Extent struct {
	// Rows is the number of rows in the region.
	Rows int `json:"rows"`
	// Cols is the number of columns in the region.
	Cols int `json:"cols"`
}

// Table is a discovered, bounded sub-table of a grid.
type Table struct {
	// Label is the table name used for lookups.
	Label string `json:"label"`
	// Origin is the top-left coordinate of the region.
	Origin Coord `json:"origin"`
	// Extent is the region size.
	Extent Extent `json:"extent"`
	// TitleRow is the row holding a lone title cell, if any.
	TitleRow *int `json:"title_row,omitempty"`
	// HeaderRow is the row holding column headers, if any.
	HeaderRow *int `json:"header_row,omitempty"`
	// DataRows lists the body rows, contiguous and increasing.
	DataRows []int `json:"data_rows"`
	// Ref is the region in A1 notation.
	Ref string `json:"ref"`
}

// Rect returns the full region of the table.
func (t Table) Rect() Rect {
	return Rect{
		R1: t.Origin.Row,
		C1: t.Origin.Col,
		R2: t.Origin.Row + t.Extent.Rows - 1,
		C2: t.Origin.Col + t.Extent.Cols - 1,
	}
}

// DataRect returns the body region (data rows across all table columns) and
// false when the table has no data rows.
func (t Table) DataRect() (Rect, bool) {
	if len(t.DataRows) == 0 {
		return Rect{}, false
	}
	r := t.Rect()
	r.R1, r.R2 = t.DataRows[0], t.DataRows[len(t.DataRows)-1]
	return r, true
}

// SyntheticLabel returns the positional fallback label for a region origin.
func SyntheticLabel(prefix string, origin Coord) string {
	return fmt.Sprintf("%s_%d_%d", prefix, origin.Row, origin.Col)
}

// TableDetails is a table together with its column and row labels.
type TableDetails struct {
	Table
	// ColumnLabels are the header row cells rendered as text.
	ColumnLabels []string `json:"column_labels"`
	// RowLabels are the non-empty first-column values of the data rows.
	RowLabels []string `json:"row_labels"`
}
