package tablecalc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/parser"
	"github.com/xuri/excelize/v2"
)

// Load reads the workbook at path, discovers its tables and returns an
// immutable Snapshot. Every failure is a *LoadError.
func Load(path string, opts Options) (*Snapshot, error) {
	grid, names, err := LoadGrid(path, opts)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(path, grid, names, opts), nil
}

// LoadGrid reads one worksheet of the workbook at path into a Grid. For xlsx
// workbooks it also returns the defined names pointing at that sheet.
func LoadGrid(path string, opts Options) (*models.Grid, map[string]models.Rect, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, NewLoadError(path, opts.Sheet, ErrFileNotFound)
		}
		return nil, nil, NewLoadError(path, opts.Sheet, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return loadXLSX(path, opts)
	case ".tsv", ".tab", ".txt", ".csv", "":
		grid, err := loadDelimited(path, ext, opts)
		return grid, nil, err
	default:
		return nil, nil, NewLoadError(path, opts.Sheet, fmt.Errorf("%w: %s", ErrInvalidFormat, ext))
	}
}

func loadDelimited(path, ext string, opts Options) (*models.Grid, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, NewLoadError(path, "", err)
	}
	defer fh.Close()

	sep := opts.Separator
	if sep == 0 {
		switch ext {
		case ".tsv", ".tab":
			sep = '\t'
		case ".csv":
			sep = ','
		}
	}
	sheetName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	grid, err := parser.ReadDelimited(fh, sheetName, parser.DelimitedOptions{
		Charset:   opts.Charset,
		Separator: sep,
	})
	if err != nil {
		return nil, NewLoadError(path, "", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	return grid, nil
}

func loadXLSX(path string, opts Options) (*models.Grid, map[string]models.Rect, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, NewLoadError(path, opts.Sheet, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	sheetName := opts.Sheet
	if sheetName == "" {
		if list := f.GetSheetList(); len(list) != 0 {
			sheetName = list[0]
		}
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, nil, NewLoadError(path, sheetName, ErrSheetNotFound)
	}

	grid, err := parser.ReadXLSX(f, sheetName)
	if err != nil {
		return nil, nil, NewLoadError(path, sheetName, err)
	}

	var names map[string]models.Rect
	if opts.ShouldIncludeDefinedNames() {
		names, err = parser.ExtractDefinedNames(f, sheetName)
		if err != nil {
			// Defined names are optional; the grid is still usable.
			opts.logger().Warn("defined names skipped", "path", path, "sheet", sheetName, "error", err)
			names = nil
		}
	}
	return grid, names, nil
}
