package linkexec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/parser"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/render"
	"go.uber.org/zap"
)

// Generate reads the plan spreadsheet from r, named name, and writes the input
// workbook with an added or replaced execution list sheet to w. Nothing is
// written to w when processing fails.
func Generate(r io.Reader, name string, w io.Writer, opts Options) (*models.Result, error) {
	log := opts.logger()

	f, err := parser.Load(r, name, opts.loadOptions())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb, err := parser.ExtractWorkbook(f, filepath.Base(name))
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	log.Debug("Loaded workbook", zap.String("book", wb.BookName), zap.Strings("sheets", wb.SheetNames))

	res, err := ProcessWorkbook(wb, opts)
	if err != nil {
		return nil, err
	}

	if err := render.ExecutionList(f, res.Rows, opts.renderOptions()); err != nil {
		return nil, fmt.Errorf("render execution list: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return res, nil
}

// GenerateFile runs Generate from inputPath to outputPath. The output file is
// only created once the plan has been processed successfully.
func GenerateFile(inputPath, outputPath string, opts Options) (*models.Result, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return nil, err
	}
	defer in.Close()

	var buf bytes.Buffer
	res, err := Generate(in, inputPath, &buf, opts)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return res, nil
}
