package calc

import (
	"fmt"
	"math"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/parser"
)

// Compute applies op to the numeric cells of rng. Cells that do not coerce to
// a Number are counted as skipped. Values are accumulated in row-major order.
//
// sum and count succeed on ranges without numbers (0); average, min and max
// return an EmptyRangeError. A result that is not finite is an OverflowError.
func Compute(g *models.Grid, rng models.Range, op Operation) (models.CalculationResult, error) {
	if !op.Valid() {
		return models.CalculationResult{}, fmt.Errorf("%w: %q", models.ErrUnknownOperation, string(op))
	}
	if err := checkRect(g, rng.Rect); err != nil {
		return models.CalculationResult{}, err
	}

	var (
		sum, lo, hi float64
		included    int
		skipped     int
	)
	for c := range rng.Coords() {
		f, ok := parser.Coerce(g.At(c.Row, c.Col)).Number()
		if !ok {
			skipped++
			continue
		}
		if included == 0 || f < lo {
			lo = f
		}
		if included == 0 || f > hi {
			hi = f
		}
		sum += f
		included++
	}

	res := models.CalculationResult{
		Operation: string(op),
		Range:     rng,
		Included:  included,
		Skipped:   skipped,
	}
	if included == 0 && op.needsValues() {
		return models.CalculationResult{}, &models.EmptyRangeError{Operation: string(op), Range: rng, Skipped: skipped}
	}

	switch op {
	case OpSum:
		res.Value = sum
	case OpAverage:
		res.Value = sum / float64(included)
	case OpMin:
		res.Value = lo
	case OpMax:
		res.Value = hi
	case OpCount:
		res.Value = float64(included)
	}
	if math.IsInf(res.Value, 0) || math.IsNaN(res.Value) {
		return models.CalculationResult{}, &models.OverflowError{Operation: string(op), Range: rng, Included: included}
	}
	return res, nil
}

// Calculate resolves spec and computes op over it.
func Calculate(g *models.Grid, cat *models.Catalog, spec Spec, op Operation) (models.CalculationResult, error) {
	if !op.Valid() {
		return models.CalculationResult{}, fmt.Errorf("%w: %q", models.ErrUnknownOperation, string(op))
	}
	rng, err := Resolve(g, cat, spec)
	if err != nil {
		return models.CalculationResult{}, err
	}
	return Compute(g, rng, op)
}
