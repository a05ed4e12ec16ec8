// Package calc resolves range specifications against a grid and its table
// catalog, and evaluates aggregates over the resolved ranges.
package calc

import (
	"fmt"
	"strings"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
)

// Operation is an aggregate over the numeric cells of a range.
type Operation string

const (
	OpSum     Operation = "sum"
	OpAverage Operation = "average"
	OpMin     Operation = "min"
	OpMax     Operation = "max"
	OpCount   Operation = "count"
)

// Operations lists the supported aggregates.
var Operations = []Operation{OpSum, OpAverage, OpMin, OpMax, OpCount}

// ParseOperation maps a case-insensitive name (or the aliases avg, mean) to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum":
		return OpSum, nil
	case "average", "avg", "mean":
		return OpAverage, nil
	case "min":
		return OpMin, nil
	case "max":
		return OpMax, nil
	case "count":
		return OpCount, nil
	}
	return "", fmt.Errorf("%w: %q", models.ErrUnknownOperation, s)
}

// Valid reports whether op is supported.
func (op Operation) Valid() bool {
	switch op {
	case OpSum, OpAverage, OpMin, OpMax, OpCount:
		return true
	}
	return false
}

// needsValues reports whether op fails on a range without numbers.
func (op Operation) needsValues() bool {
	return op == OpAverage || op == OpMin || op == OpMax
}
