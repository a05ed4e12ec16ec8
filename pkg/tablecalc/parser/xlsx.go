package parser

import (
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a sheet into a Grid using raw (unformatted) cell values.
// Numeric cells become float64, everything else stays a string.
func ReadXLSX(f *excelize.File, sheetName string) (*models.Grid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	values := make([][]any, len(rows))
	for rowIdx, row := range rows {
		values[rowIdx] = make([]any, len(row))
		for colIdx, cellValue := range row {
			values[rowIdx][colIdx] = parseValue(cellValue)
		}
	}
	return models.NewGrid(sheetName, values), nil
}
