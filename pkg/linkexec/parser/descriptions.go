package parser

import (
	"strings"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
)

func isURL(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "http")
}

// HarvestDescriptions collects URL descriptions from every sheet of wb. A
// description is a non-URL cell directly below a URL cell. Sheets are visited
// in workbook order, then rows, then columns; later pairs overwrite earlier
// ones for the same URL.
func HarvestDescriptions(wb *models.Workbook) models.DescriptionMap {
	out := make(models.DescriptionMap)
	if wb == nil {
		return out
	}
	for _, name := range wb.SheetNames {
		grid := wb.Sheets[name]
		for r := 0; r < len(grid)-1; r++ {
			for c, cell := range grid[r] {
				url := strings.TrimSpace(cell)
				if !isURL(url) {
					continue
				}
				desc := strings.TrimSpace(grid.Cell(r+1, c))
				if desc == "" || isURL(desc) {
					continue
				}
				out[strings.ToLower(url)] = desc
			}
		}
	}
	return out
}
