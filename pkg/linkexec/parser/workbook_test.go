package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV(t *testing.T) {
	csv := "\ufeffKeyword,URL,Guest Blogging\nbest seo,https://x.com,2\n\"a, b\",https://y.com,1.5\n"
	f, err := Load(strings.NewReader(csv), "plan.csv", LoadOptions{})
	require.NoError(t, err)
	defer f.Close()

	grid, err := ExtractGrid(f, csvSheetName)
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, "Keyword", grid.Cell(0, 0))
	assert.Equal(t, "2", grid.Cell(1, 2))
	assert.Equal(t, "a, b", grid.Cell(2, 0))
	assert.Equal(t, "1.5", grid.Cell(2, 2))
}

func TestLoadCSVKeepsNumericLookingText(t *testing.T) {
	csv := "Keyword,URL,Guest Blogging\n1e3,https://x.com,007\n+4,https://y.com,2\n"
	f, err := Load(strings.NewReader(csv), "plan.csv", LoadOptions{})
	require.NoError(t, err)
	defer f.Close()

	grid, err := ExtractGrid(f, csvSheetName)
	require.NoError(t, err)
	assert.Equal(t, "1e3", grid.Cell(1, 0))
	assert.Equal(t, "007", grid.Cell(1, 2))
	assert.Equal(t, "+4", grid.Cell(2, 0))
	assert.Equal(t, "2", grid.Cell(2, 2))

	n, ok := ParseCount(grid.Cell(1, 2))
	assert.True(t, ok)
	assert.Equal(t, 7, n)
}

func TestLoadCSVLatin1(t *testing.T) {
	// "café" in ISO-8859-1.
	data := []byte("Keyword,URL\ncaf\xe9,https://x.com\n")
	f, err := Load(bytes.NewReader(data), "plan.CSV", LoadOptions{CSVEncoding: EncodingLatin1})
	require.NoError(t, err)
	defer f.Close()

	grid, err := ExtractGrid(f, csvSheetName)
	require.NoError(t, err)
	assert.Equal(t, "café", grid.Cell(1, 0))
}

func TestLoadXLSX(t *testing.T) {
	src := excelize.NewFile()
	src.SetCellValue("Sheet1", "A1", "Keyword")
	var buf bytes.Buffer
	_, err := src.WriteTo(&buf)
	require.NoError(t, err)
	src.Close()

	f, err := Load(&buf, "plan.xlsx", LoadOptions{})
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Keyword", v)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("x"), "plan.xls", LoadOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(strings.NewReader("not a zip"), "plan.xlsx", LoadOptions{})
	assert.Error(t, err)

	_, err = Load(strings.NewReader("a,b"), "plan.csv", LoadOptions{CSVEncoding: "ebcdic"})
	assert.Error(t, err)
}

func TestValidEncoding(t *testing.T) {
	assert.True(t, ValidEncoding(""))
	assert.True(t, ValidEncoding("UTF-8"))
	assert.True(t, ValidEncoding(EncodingWindows1252))
	assert.False(t, ValidEncoding("utf-16"))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"NaN", "NaN"},
		{"", ""},
		{"007", "007"},
		{"1e3", "1e3"},
		{"+4", "+4"},
		{"1.50", "1.50"},
		{"-0", "-0"},
		{"0.5", 0.5},
		{"12345678901234567890", "12345678901234567890"},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
