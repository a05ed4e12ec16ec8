package models

// CalculationResult is the outcome of one aggregate over a range.
type CalculationResult struct {
	// Operation is the aggregate that was applied.
	Operation string `json:"operation"`
	// Range is the range the aggregate ran over.
	Range Range `json:"range"`
	// Value is the aggregate result.
	Value float64 `json:"value"`
	// Included counts the numeric cells that contributed.
	Included int `json:"included"`
	// Skipped counts the empty or text cells that were ignored.
	Skipped int `json:"skipped"`
}
