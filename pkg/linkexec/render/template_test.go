package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSampleTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSampleTemplate(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Planning Sheet"}, f.GetSheetList())
	rows, err := f.GetRows("Planning Sheet")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Keyword", "Target URL", "Guest Blogging", "Web 2.0", "PR Marketing", "Profiles", "Description Reference (Optional)"}, rows[0])
	assert.Equal(t, "best seo tools", rows[1][0])
	assert.Equal(t, "10", rows[2][5])
	assert.Equal(t, "This is a great tool for SEOs; check it out.", rows[3][6])
}
