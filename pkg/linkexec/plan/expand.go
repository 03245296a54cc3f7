package plan

import (
	"strings"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/parser"
)

// Sanitizer cleans harvested description text before it is rendered.
// *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(s string) string
}

// Input bundles everything Expand reads.
type Input struct {
	Grid         models.Grid
	Layout       parser.Layout
	Columns      models.ColumnMap
	Descriptions models.DescriptionMap
	// Sanitizer, when set, is applied to each base description.
	Sanitizer Sanitizer
}

// Expand generates one task per unit of every positive count below the header.
// Rows without a keyword are skipped, as are count cells that are not a
// positive integer. Tasks come back unsorted and unnumbered.
func Expand(in Input) ([]models.TaskRow, models.Stats) {
	var (
		rows  []models.TaskRow
		stats models.Stats
	)
	for r := in.Layout.HeaderRow + 1; r < len(in.Grid); r++ {
		keyword := in.Grid.Cell(r, in.Layout.KeywordCol)
		if strings.TrimSpace(keyword) == "" {
			continue
		}
		url := strings.TrimSpace(in.Grid.Cell(r, in.Layout.URLCol))
		base := ""
		if url != "" {
			base = in.Descriptions[strings.ToLower(url)]
		}
		if base != "" && in.Sanitizer != nil {
			base = in.Sanitizer.Sanitize(base)
		}

		for _, col := range in.Columns {
			count, ok := parser.ParseCount(in.Grid.Cell(r, col.Index))
			if !ok || count <= 0 {
				continue
			}
			activity := TitleCase(string(col.Category))
			stats.Add(activity, count)

			task := models.TaskRow{
				Activity:    activity,
				Category:    col.Category,
				TargetURL:   url,
				Description: RenderDescription(col.Category, base, keyword, url),
				LinkType:    models.LinkTypeKeyword,
				Keyword:     keyword,
			}
			for i := 0; i < count; i++ {
				rows = append(rows, task)
			}
		}
	}
	return rows, stats
}

// Count totals the tasks Expand would generate for in, without building them.
// Once the total would exceed limit it stops and returns limit+1.
func Count(in Input, limit int) int {
	total := 0
	for r := in.Layout.HeaderRow + 1; r < len(in.Grid); r++ {
		if strings.TrimSpace(in.Grid.Cell(r, in.Layout.KeywordCol)) == "" {
			continue
		}
		for _, col := range in.Columns {
			count, ok := parser.ParseCount(in.Grid.Cell(r, col.Index))
			if !ok || count <= 0 {
				continue
			}
			if count > limit-total {
				return limit + 1
			}
			total += count
		}
	}
	return total
}
