package tablecalc

import (
	"errors"
	"fmt"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a supported spreadsheet format.
var ErrInvalidFormat = errors.New("unsupported spreadsheet format")

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNotLoaded indicates a Store has no workbook yet.
var ErrNotLoaded = errors.New("no workbook loaded")

// Errors raised while resolving ranges and computing aggregates.
var (
	ErrOutOfBounds      = models.ErrOutOfBounds
	ErrTableNotFound    = models.ErrTableNotFound
	ErrLabelNotFound    = models.ErrLabelNotFound
	ErrNameNotFound     = models.ErrNameNotFound
	ErrEmptyRange       = models.ErrEmptyRange
	ErrUnknownOperation = models.ErrUnknownOperation
	ErrOverflow         = models.ErrOverflow
	ErrInvalidReference = models.ErrInvalidReference
)

// LoadError represents a failure to turn a workbook file into a grid.
type LoadError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("load %q (sheet %q): %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(path, sheet string, err error) *LoadError {
	return &LoadError{
		Path:  path,
		Sheet: sheet,
		Err:   err,
	}
}
