package linkexec

import (
	"errors"
	"fmt"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/parser"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/plan"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/render"
	"go.uber.org/zap"
)

// ProcessPlan expands the plan in grid into a sorted, numbered execution list.
// Descriptions are harvested from every sheet of wb, which may be nil.
// Failures are returned as *PlanError; ProcessPlan does not panic.
func ProcessPlan(grid models.Grid, wb *models.Workbook, opts Options) (res *models.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = NewPlanError(ReasonInternal, "", fmt.Errorf("panic: %v", r))
		}
	}()
	log := opts.logger()

	if len(grid) == 0 {
		return nil, NewPlanError(ReasonEmptyInput, "", ErrEmptyInput)
	}

	layout, err := parser.LocateColumns(grid)
	if err != nil {
		return nil, NewPlanError(ReasonColumnNotFound, "", err)
	}
	log.Debug("Located plan header",
		zap.Int("header_row", layout.HeaderRow),
		zap.Int("keyword_col", layout.KeywordCol),
		zap.Int("url_col", layout.URLCol))

	columns := parser.MapActivities(grid, layout)
	for _, col := range columns {
		log.Debug("Mapped activity column",
			zap.Int("col", col.Index),
			zap.String("label", col.Label),
			zap.String("category", string(col.Category)),
			zap.Bool("canonical", col.Category.IsCanonical()))
	}

	descriptions := parser.HarvestDescriptions(wb)
	log.Debug("Harvested descriptions", zap.Int("urls", len(descriptions)))

	in := plan.Input{
		Grid:         grid,
		Layout:       layout,
		Columns:      columns,
		Descriptions: descriptions,
		Sanitizer:    opts.sanitizer(),
	}
	if n := plan.Count(in, render.MaxRows); n > render.MaxRows {
		return nil, NewPlanError(ReasonTooManyTasks, "",
			fmt.Errorf("%w: more than %d", ErrTooManyTasks, render.MaxRows))
	}

	rows, stats := plan.Expand(in)
	if len(rows) == 0 {
		return nil, NewPlanError(ReasonEmptyResult, "", ErrEmptyResult)
	}

	plan.SortByPriority(rows)
	plan.Number(rows)
	log.Debug("Generated execution list", zap.Int("rows", len(rows)), zap.Int("activities", stats.Len()))

	return &models.Result{
		Rows:      rows,
		Stats:     stats,
		HeaderRow: layout.HeaderRow,
		Columns:   columns,
	}, nil
}

// ProcessWorkbook runs ProcessPlan on the first sheet of wb.
func ProcessWorkbook(wb *models.Workbook, opts Options) (*models.Result, error) {
	name, grid, ok := wb.FirstSheet()
	if !ok {
		return nil, NewPlanError(ReasonEmptyInput, "", ErrEmptyInput)
	}
	res, err := ProcessPlan(grid, wb, opts)
	var pe *PlanError
	if errors.As(err, &pe) && pe.Sheet == "" {
		pe.Sheet = name
	}
	return res, err
}
