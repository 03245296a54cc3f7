package render

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// SampleTemplateName is the download name of the sample plan.
const SampleTemplateName = "Link_Executor_Sample_Template.xlsx"

const sampleSheetName = "Planning Sheet"

var sampleRows = [][]interface{}{
	{"Keyword", "Target URL", "Guest Blogging", "Web 2.0", "PR Marketing", "Profiles", "Description Reference (Optional)"},
	{"best seo tools", "https://mysite.com/tools", 2, 5, 0, 0, ""},
	{"link building", "https://mysite.com/blog", 1, 0, 1, 10, ""},
	{"", "https://mysite.com/tools", "", "", "", "", "This is a great tool for SEOs; check it out."},
}

// SampleTemplate builds the static sample plan workbook. The caller closes it.
func SampleTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sampleSheetName); err != nil {
		f.Close()
		return nil, err
	}
	for i, row := range sampleRows {
		if err := setRow(f, sampleSheetName, i+1, row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteSampleTemplate writes the sample plan workbook to w.
func WriteSampleTemplate(w io.Writer) error {
	f, err := SampleTemplate()
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}
