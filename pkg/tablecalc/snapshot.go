package tablecalc

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/calc"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/parser"
)

// Snapshot pairs a grid with the catalog discovered from it. It is never
// mutated after construction and is safe for concurrent use.
type Snapshot struct {
	// Revision identifies this load of the workbook.
	Revision string `json:"revision"`
	// Source is the path the grid was loaded from.
	Source string `json:"source"`
	// Sheet is the worksheet name.
	Sheet string `json:"sheet"`
	// LoadedAt is the load time.
	LoadedAt time.Time `json:"loaded_at"`

	grid    *models.Grid
	catalog *models.Catalog
}

// NewSnapshot discovers the tables of grid with opts.Detection as given and
// freezes both into a Snapshot. Use DefaultOptions for the default detection
// parameters.
func NewSnapshot(source string, grid *models.Grid, names map[string]models.Rect, opts Options) *Snapshot {
	tables := parser.DetectTables(grid, opts.Detection)
	s := &Snapshot{
		Revision: uuid.New().String(),
		Source:   source,
		Sheet:    grid.Name(),
		LoadedAt: time.Now(),
		grid:     grid,
		catalog:  &models.Catalog{Tables: tables, Names: names},
	}
	opts.logger().Debug("tables discovered",
		"source", source, "sheet", s.Sheet, "revision", s.Revision,
		"rows", grid.Rows(), "cols", grid.Cols(), "tables", len(tables), "names", len(names))
	return s
}

// Grid returns the underlying grid.
func (s *Snapshot) Grid() *models.Grid { return s.grid }

// Catalog returns the discovered catalog.
func (s *Snapshot) Catalog() *models.Catalog { return s.catalog }

// Tables returns the discovered tables in reading order.
func (s *Snapshot) Tables() []models.Table {
	return append([]models.Table(nil), s.catalog.Tables...)
}

// Table looks up a table by label, ignoring case.
func (s *Snapshot) Table(name string) (models.Table, error) {
	t, ok := s.catalog.Table(name)
	if !ok {
		return models.Table{}, &models.TableNotFoundError{Name: name}
	}
	return t, nil
}

// TableDetails returns the table with its column and row labels.
func (s *Snapshot) TableDetails(name string) (models.TableDetails, error) {
	t, err := s.Table(name)
	if err != nil {
		return models.TableDetails{}, err
	}
	d := models.TableDetails{Table: t, ColumnLabels: []string{}, RowLabels: []string{}}
	rect := t.Rect()
	if t.HeaderRow != nil {
		for c := rect.C1; c <= rect.C2; c++ {
			d.ColumnLabels = append(d.ColumnLabels, strings.TrimSpace(parser.Coerce(s.grid.At(*t.HeaderRow, c)).String()))
		}
	}
	for _, r := range t.DataRows {
		if label := strings.TrimSpace(parser.Coerce(s.grid.At(r, rect.C1)).String()); label != "" {
			d.RowLabels = append(d.RowLabels, label)
		}
	}
	return d, nil
}

// Resolve resolves spec against this snapshot.
func (s *Snapshot) Resolve(spec calc.Spec) (models.Range, error) {
	return calc.Resolve(s.grid, s.catalog, spec)
}

// Calculate resolves spec and applies op.
func (s *Snapshot) Calculate(spec calc.Spec, op calc.Operation) (models.CalculationResult, error) {
	return calc.Calculate(s.grid, s.catalog, spec, op)
}

// RowSum sums the row labelled row in table, excluding the label column.
func (s *Snapshot) RowSum(table, row string) (models.CalculationResult, error) {
	rng, err := s.Resolve(calc.TableSpec(table, "", row))
	if err != nil {
		return models.CalculationResult{}, err
	}
	if rng.Rect.C2 > rng.Rect.C1 {
		rect := rng.Rect
		rect.C1++
		labelled := models.NewRange(rect)
		labelled.Table, labelled.Row = rng.Table, rng.Row
		rng = labelled
	}
	return calc.Compute(s.grid, rng, calc.OpSum)
}
