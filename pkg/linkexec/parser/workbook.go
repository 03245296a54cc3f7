package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnsupportedFormat indicates a file type the loader cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// CSV text encodings accepted by Load.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
)

// csvSheetName is the sheet a CSV file is loaded into.
const csvSheetName = "Sheet1"

// LoadOptions configures workbook loading.
type LoadOptions struct {
	// CSVEncoding is the text encoding of CSV input. Empty means UTF-8.
	CSVEncoding string
}

// Load decodes a spreadsheet by file name extension. XLSX-family files are
// opened as-is; CSV files are copied into a fresh single-sheet workbook.
func Load(r io.Reader, name string, opts LoadOptions) (*excelize.File, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		return loadCSV(r, opts.CSVEncoding)
	case "", ".xlsx", ".xlsm", ".xltx", ".xltm":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ValidEncoding reports whether enc is a supported CSV encoding.
func ValidEncoding(enc string) bool {
	switch strings.ToLower(enc) {
	case "", EncodingUTF8, EncodingLatin1, EncodingWindows1252:
		return true
	}
	return false
}

func decodeReader(r io.Reader, enc string) (io.Reader, error) {
	switch strings.ToLower(enc) {
	case "", EncodingUTF8:
		return r, nil
	case EncodingLatin1:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingWindows1252:
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unknown csv encoding %q", enc)
	}
}

func loadCSV(r io.Reader, enc string) (*excelize.File, error) {
	dr, err := decodeReader(r, enc)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(dr)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}

	f := excelize.NewFile()
	for i, record := range records {
		values := make([]interface{}, len(record))
		for j, v := range record {
			values[j] = parseValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("copy csv row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(csvSheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("copy csv row %d: %w", i+1, err)
		}
	}
	return f, nil
}

// parseValue stores a CSV field as a number when it prints back as the same
// text: int64 for integers, float64 for decimals. Anything else, such as
// "007", "1e3" or "+4", stays the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) &&
		strconv.FormatFloat(f, 'f', -1, 64) == s {
		return f
	}
	return s
}
