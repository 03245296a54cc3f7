package plan

import (
	"slices"
	"strings"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
)

// rank returns the sort key of a display-cased activity. Unlisted activities
// rank after every listed one.
func rank(activity string) int {
	p := models.Category(strings.ToLower(strings.TrimSpace(activity))).Priority()
	if p < 0 {
		return len(models.PriorityOrder)
	}
	return p
}

// SortByPriority stably orders rows by activity priority in place.
func SortByPriority(rows []models.TaskRow) {
	slices.SortStableFunc(rows, func(a, b models.TaskRow) int {
		return rank(a.Activity) - rank(b.Activity)
	})
}

// Number assigns 1-based sequence numbers in slice order.
func Number(rows []models.TaskRow) {
	for i := range rows {
		rows[i].SNo = i + 1
	}
}
