package linkexec

import (
	"errors"
	"fmt"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrEmptyInput indicates the plan sheet has no rows.
var ErrEmptyInput = errors.New("the spreadsheet seems empty")

// ErrColumnNotFound indicates no row holds both a keyword and a URL header.
var ErrColumnNotFound = parser.ErrColumnNotFound

// ErrEmptyResult indicates the plan was processed but produced no tasks.
var ErrEmptyResult = errors.New("processed file, but no rows were generated")

// ErrTooManyTasks indicates the plan asks for more tasks than one sheet holds.
var ErrTooManyTasks = errors.New("plan asks for more tasks than fit in one sheet")

// ErrUnsupportedFormat indicates an input file type that cannot be decoded.
var ErrUnsupportedFormat = parser.ErrUnsupportedFormat

// Reason discriminates why a plan run failed.
type Reason string

const (
	ReasonEmptyInput     Reason = "empty_input"
	ReasonColumnNotFound Reason = "column_not_found"
	ReasonEmptyResult    Reason = "empty_result"
	ReasonTooManyTasks   Reason = "too_many_tasks"
	// ReasonInternal covers library faults such as a corrupt workbook.
	ReasonInternal Reason = "internal"
)

// PlanError represents a terminal failure of one plan run.
type PlanError struct {
	Reason Reason
	Sheet  string
	Err    error
}

func (e *PlanError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("plan %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("plan %s in sheet %q: %v", e.Reason, e.Sheet, e.Err)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// NewPlanError creates a new PlanError.
func NewPlanError(reason Reason, sheet string, err error) *PlanError {
	return &PlanError{
		Reason: reason,
		Sheet:  sheet,
		Err:    err,
	}
}

// ReasonOf returns the failure reason carried by err, or ReasonInternal.
func ReasonOf(err error) Reason {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return ReasonInternal
}
