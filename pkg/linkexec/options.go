// Package linkexec turns link-building outreach plans into prioritized
// execution lists.
package linkexec

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/parser"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/plan"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/render"
	"go.uber.org/zap"
)

// DefaultOutputName is the file name of a generated execution plan.
const DefaultOutputName = "Link_Building_Execution_Plan.xlsx"

// Options configures plan processing and rendering.
type Options struct {
	// SheetName is the execution list sheet. Defaults to "Execution List".
	SheetName string
	// Title is written into the execution list's title band.
	Title string
	// SanitizeDescriptions strips markup from harvested descriptions before
	// anchors are added.
	SanitizeDescriptions bool
	// CSVEncoding is the text encoding of CSV input (utf-8, latin1, windows-1252).
	CSVEncoding string
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns default processing options.
func DefaultOptions() Options {
	return Options{
		SheetName:   render.DefaultSheetName,
		CSVEncoding: parser.EncodingUTF8,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) sanitizer() plan.Sanitizer {
	if !o.SanitizeDescriptions {
		return nil
	}
	return bluemonday.StrictPolicy()
}

func (o Options) renderOptions() render.Options {
	return render.Options{SheetName: o.SheetName, Title: o.Title}
}

func (o Options) loadOptions() parser.LoadOptions {
	return parser.LoadOptions{CSVEncoding: o.CSVEncoding}
}
