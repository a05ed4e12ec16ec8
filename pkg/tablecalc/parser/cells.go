// Package parser reads worksheets into grids, coerces raw cell values and
// discovers the tables embedded in a grid.
package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
)

var (
	decimalRe = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	groupedRe = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)
)

// Coerce converts a raw cell value into a typed Cell. It never fails: values
// that are neither empty nor numeric come back as Text holding the original
// string.
//
// Text is read as a number after trimming whitespace, one leading currency
// symbol (before or after the sign), one trailing percent sign (which divides
// by 100) and well-formed thousands separators ("1,200,000"). Misplaced commas
// such as "1,2" keep the value as Text.
func Coerce(raw any) models.Cell {
	switch v := raw.(type) {
	case nil:
		return models.EmptyCell()
	case models.Cell:
		return v
	case float64:
		return floatCell(v)
	case float32:
		return floatCell(float64(v))
	case int:
		return models.NumberCell(float64(v))
	case int8:
		return models.NumberCell(float64(v))
	case int16:
		return models.NumberCell(float64(v))
	case int32:
		return models.NumberCell(float64(v))
	case int64:
		return models.NumberCell(float64(v))
	case uint:
		return models.NumberCell(float64(v))
	case uint8:
		return models.NumberCell(float64(v))
	case uint16:
		return models.NumberCell(float64(v))
	case uint32:
		return models.NumberCell(float64(v))
	case uint64:
		return models.NumberCell(float64(v))
	case string:
		return coerceText(v)
	case []byte:
		return coerceText(string(v))
	case fmt.Stringer:
		return coerceText(v.String())
	default:
		return coerceText(fmt.Sprint(v))
	}
}

// floatCell treats NaN as a missing value.
func floatCell(f float64) models.Cell {
	if math.IsNaN(f) {
		return models.EmptyCell()
	}
	return models.NumberCell(f)
}

func coerceText(s string) models.Cell {
	t := strings.TrimSpace(s)
	if t == "" {
		return models.EmptyCell()
	}
	if f, ok := parseNumber(t); ok {
		return models.NumberCell(f)
	}
	return models.TextCell(s)
}

// parseNumber parses trimmed numeric-looking text.
func parseNumber(s string) (float64, bool) {
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		sign, s = s[:1], s[1:]
	}
	if r, size := utf8.DecodeRuneInString(s); size > 0 && unicode.Is(unicode.Sc, r) {
		s = strings.TrimLeftFunc(s[size:], unicode.IsSpace)
	}
	if sign == "" && s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimRightFunc(strings.TrimSuffix(s, "%"), unicode.IsSpace)
	}
	s, ok := stripGrouping(s)
	if !ok || !decimalRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(sign+s, 64)
	if err != nil {
		return 0, false
	}
	if percent {
		f /= 100
	}
	return f, true
}

// stripGrouping removes thousands separators from the integer part.
func stripGrouping(s string) (string, bool) {
	if !strings.Contains(s, ",") {
		return s, true
	}
	intPart, rest := s, ""
	if i := strings.IndexAny(s, ".eE"); i >= 0 {
		intPart, rest = s[:i], s[i:]
	}
	if strings.Contains(rest, ",") || !groupedRe.MatchString(intPart) {
		return s, false
	}
	return strings.ReplaceAll(intPart, ",", "") + rest, true
}

// parseValue attempts to parse a string value as a number.
// Returns float64 for numbers, nil for empty strings, or the original string.
func parseValue(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
