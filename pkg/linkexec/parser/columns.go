package parser

import (
	"errors"
	"strings"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
)

// ErrColumnNotFound indicates no row yields both a keyword and a URL column.
var ErrColumnNotFound = errors.New("keyword or url column not found")

// Layout records where the plan header and its fixed columns are.
type Layout struct {
	// HeaderRow is the 0-based row index holding the "keyword" header.
	HeaderRow int
	// KeywordCol is the 0-based keyword column index.
	KeywordCol int
	// URLCol is the 0-based URL column index.
	URLCol int
}

// LocateColumns scans rows top to bottom and cells left to right for the
// "keyword" and "url" headers. Both indexes are overwritten on every match
// within a row; the scan stops after the first row at which both have been seen.
func LocateColumns(grid models.Grid) (Layout, error) {
	layout := Layout{HeaderRow: -1, KeywordCol: -1, URLCol: -1}
	for r, row := range grid {
		for c, cell := range row {
			v := strings.ToLower(strings.TrimSpace(cell))
			if strings.Contains(v, "keyword") {
				layout.HeaderRow = r
				layout.KeywordCol = c
			}
			if strings.Contains(v, "url") {
				layout.URLCol = c
			}
		}
		if layout.HeaderRow != -1 && layout.URLCol != -1 {
			return layout, nil
		}
	}
	return layout, ErrColumnNotFound
}
