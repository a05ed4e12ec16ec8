package calc

import (
	"strings"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/parser"
)

// SpecKind selects how a Spec is resolved.
type SpecKind int

const (
	// SpecRect is an explicit rectangle.
	SpecRect SpecKind = iota
	// SpecTable is a discovered table with optional column/row label filters.
	SpecTable
	// SpecName is a workbook defined name.
	SpecName
)

// Spec is a client-supplied range specification.
type Spec struct {
	Kind SpecKind
	// Rect is used by SpecRect.
	Rect models.Rect
	// Table is the table label for SpecTable.
	Table string
	// Column filters SpecTable to the column whose header matches.
	Column string
	// Row filters SpecTable to the data row whose first cell matches.
	Row string
	// Name is the defined name for SpecName.
	Name string
}

// RectSpec returns a Spec for an explicit rectangle.
func RectSpec(r models.Rect) Spec {
	return Spec{Kind: SpecRect, Rect: r}
}

// RefSpec parses an A1 reference into a rectangle Spec.
func RefSpec(ref string) (Spec, error) {
	r, err := parser.ParseRef(ref)
	if err != nil {
		return Spec{}, err
	}
	return RectSpec(r), nil
}

// TableSpec returns a Spec for a named table; column and row may be empty.
func TableSpec(table, column, row string) Spec {
	return Spec{Kind: SpecTable, Table: table, Column: column, Row: row}
}

// NameSpec returns a Spec for a workbook defined name.
func NameSpec(name string) Spec {
	return Spec{Kind: SpecName, Name: name}
}

// Resolve turns spec into a concrete in-bounds Range. Identical inputs always
// resolve to the identical range.
func Resolve(g *models.Grid, cat *models.Catalog, spec Spec) (models.Range, error) {
	switch spec.Kind {
	case SpecTable:
		return resolveTable(g, cat, spec)
	case SpecName:
		rect, ok := cat.Name(spec.Name)
		if !ok {
			return models.Range{}, &models.NameNotFoundError{Name: spec.Name}
		}
		if err := checkRect(g, rect); err != nil {
			return models.Range{}, err
		}
		rng := models.NewRange(rect)
		rng.Name = spec.Name
		return rng, nil
	default:
		if err := checkRect(g, spec.Rect); err != nil {
			return models.Range{}, err
		}
		return models.NewRange(spec.Rect), nil
	}
}

// checkRect validates both corners against the grid and their order.
func checkRect(g *models.Grid, r models.Rect) error {
	for _, c := range []models.Coord{r.TopLeft(), r.BottomRight()} {
		if !g.InBounds(c) {
			return &models.OutOfBoundsError{Coord: c, Rows: g.Rows(), Cols: g.Cols()}
		}
	}
	if r.R2 < r.R1 || r.C2 < r.C1 {
		return &models.OutOfBoundsError{Coord: r.BottomRight(), Rows: g.Rows(), Cols: g.Cols(), Inverted: true}
	}
	return nil
}

func resolveTable(g *models.Grid, cat *models.Catalog, spec Spec) (models.Range, error) {
	t, ok := cat.Table(spec.Table)
	if !ok {
		return models.Range{}, &models.TableNotFoundError{Name: spec.Table}
	}
	if err := checkRect(g, t.Rect()); err != nil {
		return models.Range{}, err
	}
	rect, ok := t.DataRect()
	if !ok {
		rect = t.Rect()
	}

	if spec.Column != "" {
		if t.HeaderRow == nil {
			return models.Range{}, &models.LabelNotFoundError{Table: t.Label, Label: spec.Column, Axis: models.AxisColumn}
		}
		cols := make([]models.Coord, 0, rect.Cols())
		for c := rect.C1; c <= rect.C2; c++ {
			cols = append(cols, models.Coord{Row: *t.HeaderRow, Col: c})
		}
		at, ok := matchLabel(g, cols, spec.Column)
		if !ok {
			return models.Range{}, &models.LabelNotFoundError{Table: t.Label, Label: spec.Column, Axis: models.AxisColumn}
		}
		rect.C1, rect.C2 = at.Col, at.Col
	}

	if spec.Row != "" {
		rows := make([]models.Coord, 0, len(t.DataRows))
		for _, r := range t.DataRows {
			rows = append(rows, models.Coord{Row: r, Col: t.Origin.Col})
		}
		at, ok := matchLabel(g, rows, spec.Row)
		if !ok {
			return models.Range{}, &models.LabelNotFoundError{Table: t.Label, Label: spec.Row, Axis: models.AxisRow}
		}
		rect.R1, rect.R2 = at.Row, at.Row
	}

	rng := models.NewRange(rect)
	rng.Table = t.Label
	rng.Column = spec.Column
	rng.Row = spec.Row
	return rng, nil
}

// matchLabel returns the first candidate whose Text equals label, ignoring
// case and surrounding whitespace. Numeric labels such as years only match
// when no Text cell does.
func matchLabel(g *models.Grid, candidates []models.Coord, label string) (models.Coord, bool) {
	label = strings.TrimSpace(label)
	for _, c := range candidates {
		if s, ok := parser.Coerce(g.At(c.Row, c.Col)).Text(); ok && strings.EqualFold(strings.TrimSpace(s), label) {
			return c, true
		}
	}
	for _, c := range candidates {
		if cell := parser.Coerce(g.At(c.Row, c.Col)); cell.IsNumber() && cell.String() == label {
			return c, true
		}
	}
	return models.Coord{}, false
}
