// Package parser locates plan columns, classifies activity labels and harvests
// URL descriptions from spreadsheet cell grids.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
	"github.com/xuri/excelize/v2"
)

// ExtractGrid reads all rows of a sheet as raw cell values.
// Numbers are returned unformatted so counts survive number formats like "#,##0".
func ExtractGrid(f *excelize.File, sheetName string) (models.Grid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	return models.Grid(rows), nil
}

// ExtractWorkbook reads every sheet of f into a workbook, in sheet order.
func ExtractWorkbook(f *excelize.File, bookName string) (*models.Workbook, error) {
	wb := models.NewWorkbook(bookName)
	for _, sheetName := range f.GetSheetList() {
		grid, err := ExtractGrid(f, sheetName)
		if err != nil {
			return nil, err
		}
		wb.AddSheet(sheetName, grid)
	}
	return wb, nil
}

// IsNumeric reports whether s, trimmed, parses entirely as a finite number.
func IsNumeric(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseCount reads a leading integer from s: optional sign followed by digits,
// anything after the digits ignored. ok is false when no digits lead the value.
func ParseCount(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow; no plan asks for that many tasks.
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}
