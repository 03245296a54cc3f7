// Package render writes execution lists and the sample plan template as
// styled spreadsheets.
package render

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/plan"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the sheet the execution list is written to.
const DefaultSheetName = "Execution List"

// Headers are the execution list column headers, in order.
var Headers = []string{
	"S.No",
	"Activity",
	"Target URL (Reference)",
	"Description",
	"Website (Backlink)",
	"Link Type",
	"Keyword Promoted",
	"DA",
	"PA",
	"Moz Rank",
	"SS",
}

// columnWidths are in characters, one per header.
var columnWidths = []float64{6, 25, 40, 45, 50, 15, 40, 5, 5, 10, 5}

// Row heights in pixels.
const (
	titleRowHeightPx = 123.75
	rowHeightPx      = 35
)

// descriptionCol is the only column with wrapped text.
const descriptionCol = 3

// centeredCols are horizontally centered; the rest are left-aligned.
var centeredCols = map[int]bool{0: true, 1: true, 5: true, 6: true, 7: true, 8: true, 9: true, 10: true}

// Rows of the layout, 1-based.
const (
	titleRow     = 1
	headerRow    = 2
	firstDataRow = 3
)

// pxToPoints converts pixels to points at 96 DPI.
func pxToPoints(px float64) float64 {
	return px * 72 / 96
}

// Options configures the execution list sheet.
type Options struct {
	// SheetName defaults to DefaultSheetName.
	SheetName string
	// Title is written into the merged title band. Empty leaves the band blank.
	Title string
}

// MaxRows is the most tasks one execution list sheet can hold below its
// title and header rows.
const MaxRows = excelize.TotalRows - firstDataRow + 1

// ErrTooManyRows indicates more tasks than fit in a sheet.
var ErrTooManyRows = errors.New("too many rows for one sheet")

// rowLimit is MaxRows, lowered in tests.
var rowLimit = MaxRows

// ExecutionList writes rows into the execution list sheet of f, replacing a
// sheet of the same name if one exists. Rows must already be sorted and numbered.
func ExecutionList(f *excelize.File, rows []models.TaskRow, opts Options) error {
	if len(rows) > rowLimit {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRows, len(rows), rowLimit)
	}
	sheet := opts.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if err := resetSheet(f, sheet); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(Headers))
	if err != nil {
		return err
	}
	lastRow := firstDataRow + len(rows) - 1

	if err := writeTitle(f, sheet, lastCol, opts.Title); err != nil {
		return err
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := setRow(f, sheet, headerRow, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		if err := setRow(f, sheet, firstDataRow+i, rowValues(row)); err != nil {
			return fmt.Errorf("write row %d: %w", row.SNo, err)
		}
	}

	for i, w := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	if err := f.SetRowHeight(sheet, titleRow, pxToPoints(titleRowHeightPx)); err != nil {
		return err
	}
	for r := headerRow; r <= lastRow; r++ {
		if err := f.SetRowHeight(sheet, r, pxToPoints(rowHeightPx)); err != nil {
			return err
		}
	}

	return applyStyles(f, sheet, lastCol, len(rows))
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := cellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// rowValues lays out one task in header order.
func rowValues(row models.TaskRow) []interface{} {
	return []interface{}{
		row.SNo,
		row.Activity,
		row.TargetURL,
		row.Description,
		row.Website,
		row.LinkType,
		plan.TitleCase(row.Keyword),
		row.DA,
		row.PA,
		row.MozRank,
		row.SS,
	}
}

// resetSheet leaves f with an empty sheet named name. An existing sheet is
// swapped out through an unused temporary name so the workbook never runs
// out of sheets and no other sheet is touched.
func resetSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		return nil
	}

	tmp, err := unusedSheetName(f, "linkexec_tmp")
	if err != nil {
		return err
	}
	if _, err := f.NewSheet(tmp); err != nil {
		return fmt.Errorf("create sheet %q: %w", tmp, err)
	}
	if err := f.DeleteSheet(name); err != nil {
		return fmt.Errorf("delete sheet %q: %w", name, err)
	}
	if err := f.SetSheetName(tmp, name); err != nil {
		return fmt.Errorf("rename sheet %q: %w", tmp, err)
	}
	return nil
}

// unusedSheetName returns base, or base with a numeric suffix, such that no
// sheet of f carries that name.
func unusedSheetName(f *excelize.File, base string) (string, error) {
	for i := 0; ; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s%d", base, i)
		}
		idx, err := f.GetSheetIndex(name)
		if err != nil {
			return "", err
		}
		if idx == -1 {
			return name, nil
		}
	}
}

func writeTitle(f *excelize.File, sheet, lastCol, title string) error {
	first, err := cellName(1, titleRow)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, first, fmt.Sprintf("%s%d", lastCol, titleRow)); err != nil {
		return fmt.Errorf("merge title band: %w", err)
	}
	if title == "" {
		return nil
	}
	if err := f.SetCellValue(sheet, first, title); err != nil {
		return err
	}
	id, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, first, id)
}

func applyStyles(f *excelize.File, sheet, lastCol string, n int) error {
	headerID, err := f.NewStyle(headerStyle())
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A"+strconv.Itoa(headerRow), lastCol+strconv.Itoa(headerRow), headerID); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	lastRow := firstDataRow + n - 1
	for c := range Headers {
		id, err := f.NewStyle(dataStyle(c))
		if err != nil {
			return fmt.Errorf("data style: %w", err)
		}
		top, err := cellName(c+1, firstDataRow)
		if err != nil {
			return err
		}
		bottom, err := cellName(c+1, lastRow)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, top, bottom, id); err != nil {
			return err
		}
	}
	return nil
}

func headerStyle() *excelize.Style {
	border := func(side string) excelize.Border {
		return excelize.Border{Type: side, Color: "FFFFFF", Style: 1}
	}
	return &excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{border("top"), border("bottom"), border("left"), border("right")},
	}
}

// dataStyle returns the style of data cells in column c (0-based).
func dataStyle(c int) *excelize.Style {
	horizontal := "left"
	if centeredCols[c] {
		horizontal = "center"
	}
	return &excelize.Style{
		Font: &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{
			Horizontal: horizontal,
			Vertical:   "center",
			WrapText:   c == descriptionCol,
		},
	}
}

func cellName(col, row int) (string, error) {
	return excelize.CoordinatesToCellName(col, row)
}
