package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	// MinNonemptyCells drops regions with fewer non-empty cells.
	MinNonemptyCells int
	// DetectTitleRows treats a lone text cell above a header row as the table title.
	DetectTitleRows bool
	// SyntheticPrefix prefixes positional labels ("Table_3_0").
	SyntheticPrefix string
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		MinNonemptyCells: 1,
		DetectTitleRows:  true,
		SyntheticPrefix:  "Table",
	}
}

// span is an inclusive index run.
type span struct {
	lo, hi int
}

// region is an inclusive rectangle of the coerced grid.
type region struct {
	r1, r2, c1, c2 int
}

// DetectTables partitions a grid into disjoint tables separated by blank rows
// and, within each band of rows, blank columns. Tables are returned in reading
// order (origin row, then origin column). An empty grid yields an empty slice.
func DetectTables(g *models.Grid, params TableDetectionParams) []models.Table {
	if params.SyntheticPrefix == "" {
		params.SyntheticPrefix = "Table"
	}
	if g == nil || g.Rows() == 0 || g.Cols() == 0 {
		return []models.Table{}
	}
	cells := coerceGrid(g)

	var regions []region
	for _, rb := range rowBands(cells) {
		for _, cb := range columnBands(cells, rb) {
			rg := tighten(cells, rb, cb)
			if countNonEmptyCells(cells, rg) < params.MinNonemptyCells {
				continue
			}
			regions = append(regions, rg)
		}
	}
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].r1 != regions[j].r1 {
			return regions[i].r1 < regions[j].r1
		}
		return regions[i].c1 < regions[j].c1
	})

	tables := make([]models.Table, 0, len(regions))
	used := make(map[string]struct{}, len(regions))
	for _, rg := range regions {
		t := buildTable(cells, rg, params)
		t.Label = uniqueLabel(used, t.Label)
		tables = append(tables, t)
	}
	return tables
}

func coerceGrid(g *models.Grid) [][]models.Cell {
	cells := make([][]models.Cell, g.Rows())
	for r := range cells {
		cells[r] = make([]models.Cell, g.Cols())
		for c := range cells[r] {
			cells[r][c] = Coerce(g.At(r, c))
		}
	}
	return cells
}

// runs returns the maximal runs of indices in [lo, hi] that are not blank.
func runs(lo, hi int, blank func(i int) bool) []span {
	var out []span
	start := -1
	for i := lo; i <= hi; i++ {
		if blank(i) {
			if start >= 0 {
				out = append(out, span{start, i - 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, span{start, hi})
	}
	return out
}

func rowBands(cells [][]models.Cell) []span {
	cols := len(cells[0])
	return runs(0, len(cells)-1, func(r int) bool {
		return isBlankRow(cells, r, 0, cols-1)
	})
}

func columnBands(cells [][]models.Cell, rb span) []span {
	return runs(0, len(cells[0])-1, func(c int) bool {
		for r := rb.lo; r <= rb.hi; r++ {
			if !cells[r][c].IsEmpty() {
				return false
			}
		}
		return true
	})
}

// tighten trims rows that are blank inside the column band from both ends.
func tighten(cells [][]models.Cell, rb, cb span) region {
	rg := region{r1: rb.lo, r2: rb.hi, c1: cb.lo, c2: cb.hi}
	for rg.r1 < rg.r2 && isBlankRow(cells, rg.r1, rg.c1, rg.c2) {
		rg.r1++
	}
	for rg.r2 > rg.r1 && isBlankRow(cells, rg.r2, rg.c1, rg.c2) {
		rg.r2--
	}
	return rg
}

func isBlankRow(cells [][]models.Cell, r, c1, c2 int) bool {
	for c := c1; c <= c2; c++ {
		if !cells[r][c].IsEmpty() {
			return false
		}
	}
	return true
}

// countNonEmptyCells counts non-empty cells within the region.
func countNonEmptyCells(cells [][]models.Cell, rg region) int {
	count := 0
	for r := rg.r1; r <= rg.r2; r++ {
		for c := rg.c1; c <= rg.c2; c++ {
			if !cells[r][c].IsEmpty() {
				count++
			}
		}
	}
	return count
}

func buildTable(cells [][]models.Cell, rg region, params TableDetectionParams) models.Table {
	origin := models.Coord{Row: rg.r1, Col: rg.c1}
	t := models.Table{
		Origin: origin,
		Extent: models.Extent{Rows: rg.r2 - rg.r1 + 1, Cols: rg.c2 - rg.c1 + 1},
	}
	t.Ref = t.Rect().A1()

	first := rg.r1
	var title string
	if params.DetectTitleRows && isTitleRow(cells, rg) {
		row := first
		t.TitleRow = &row
		title = firstText(cells, row, rg)
		first++
	}

	dataStart := first
	if rowHasText(cells, first, rg) && anyNumber(cells, first+1, rg) {
		row := first
		t.HeaderRow = &row
		dataStart = first + 1
	}
	t.DataRows = make([]int, 0, rg.r2-dataStart+1)
	for r := dataStart; r <= rg.r2; r++ {
		t.DataRows = append(t.DataRows, r)
	}

	above := aboveLeftText(cells, rg)
	var header string
	if t.HeaderRow != nil {
		header = firstText(cells, *t.HeaderRow, rg)
	}
	switch {
	case above != "":
		t.Label = above
	case title != "":
		t.Label = title
	case header != "":
		t.Label = header
	default:
		t.Label = models.SyntheticLabel(params.SyntheticPrefix, origin)
	}
	return t
}

// isTitleRow reports a first row made of one text cell followed by a
// text-only row of at least two cells, in a region of three or more rows.
func isTitleRow(cells [][]models.Cell, rg region) bool {
	if rg.r2-rg.r1+1 < 3 {
		return false
	}
	nonEmpty, texts := 0, 0
	for c := rg.c1; c <= rg.c2; c++ {
		cell := cells[rg.r1][c]
		if cell.IsEmpty() {
			continue
		}
		nonEmpty++
		if cell.IsText() {
			texts++
		}
	}
	if nonEmpty != 1 || texts != 1 {
		return false
	}
	next := 0
	for c := rg.c1; c <= rg.c2; c++ {
		cell := cells[rg.r1+1][c]
		if cell.IsNumber() {
			return false
		}
		if !cell.IsEmpty() {
			next++
		}
	}
	return next >= 2
}

func rowHasText(cells [][]models.Cell, r int, rg region) bool {
	return firstText(cells, r, rg) != ""
}

// anyNumber reports whether rows from..rg.r2 hold a Number within the region.
func anyNumber(cells [][]models.Cell, from int, rg region) bool {
	for r := from; r <= rg.r2; r++ {
		for c := rg.c1; c <= rg.c2; c++ {
			if cells[r][c].IsNumber() {
				return true
			}
		}
	}
	return false
}

// firstText returns the first non-blank Text value of row r within the region, trimmed.
func firstText(cells [][]models.Cell, r int, rg region) string {
	for c := rg.c1; c <= rg.c2; c++ {
		if s, ok := cells[r][c].Text(); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func aboveLeftText(cells [][]models.Cell, rg region) string {
	if rg.r1 == 0 || rg.c1 == 0 {
		return ""
	}
	s, _ := cells[rg.r1-1][rg.c1-1].Text()
	return strings.TrimSpace(s)
}

// uniqueLabel suffixes label with _2, _3, ... until it is unused, ignoring case.
func uniqueLabel(used map[string]struct{}, label string) string {
	candidate := label
	for n := 2; ; n++ {
		key := strings.ToLower(candidate)
		if _, taken := used[key]; !taken {
			used[key] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", label, n)
	}
}
