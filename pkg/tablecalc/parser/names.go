package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// ExtractDefinedNames returns the workbook defined names that refer to a
// single rectangle on sheetName. Print areas are reported as "Print_Area".
func ExtractDefinedNames(f *excelize.File, sheetName string) (map[string]models.Rect, error) {
	result := make(map[string]models.Rect)

	for _, dn := range f.GetDefinedName() {
		if dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") && !strings.EqualFold(dn.Scope, sheetName) {
			continue
		}
		sheet, areas := parseReference(dn.RefersTo)
		if !strings.EqualFold(sheet, sheetName) || len(areas) != 1 {
			continue
		}
		name := dn.Name
		if strings.EqualFold(name, printAreaName) {
			name = "Print_Area"
		}
		result[name] = areas[0]
	}

	return result, nil
}

// parseReference parses a defined name reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10, comma separated.
func parseReference(ref string) (string, []models.Rect) {
	var areas []models.Rect

	var sheetName string
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := strings.Trim(strings.TrimPrefix(part[:idx], "="), "'")
		if sheetName == "" {
			sheetName = sheet
		}

		if area, err := ParseRef(part[idx+1:]); err == nil {
			areas = append(areas, normalize(area))
		}
	}

	return sheetName, areas
}

// ParseRef parses an A1 reference ("B2:C5", "$B$2", "Sheet1!A1:B3") into a
// zero-based Rect. Corners are kept in the given order.
func ParseRef(ref string) (models.Rect, error) {
	s := strings.TrimSpace(ref)
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.ReplaceAll(s, "$", "")

	parts := strings.Split(s, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.Rect{}, fmt.Errorf("%w %q", models.ErrInvalidReference, ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(strings.TrimSpace(parts[0]))
	if err != nil {
		return models.Rect{}, fmt.Errorf("%w %q: %v", models.ErrInvalidReference, ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.Rect{}, fmt.Errorf("%w %q: %v", models.ErrInvalidReference, ref, err)
	}

	return models.Rect{
		R1: startRow - 1,
		C1: startCol - 1,
		R2: endRow - 1,
		C2: endCol - 1,
	}, nil
}

func normalize(r models.Rect) models.Rect {
	if r.R1 > r.R2 {
		r.R1, r.R2 = r.R2, r.R1
	}
	if r.C1 > r.C2 {
		r.C1, r.C2 = r.C2, r.C1
	}
	return r
}
