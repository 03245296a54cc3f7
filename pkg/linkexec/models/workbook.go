package models

// Workbook is an ordered set of named sheets. Order follows the source file and
// decides which sheet is "first".
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists sheet names in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheets maps sheet name to its cell grid.
	Sheets map[string]Grid `json:"sheets"`
}

// NewWorkbook creates an empty workbook.
func NewWorkbook(bookName string) *Workbook {
	return &Workbook{
		BookName: bookName,
		Sheets:   make(map[string]Grid),
	}
}

// AddSheet appends a sheet, or replaces the grid of an existing sheet in place.
func (w *Workbook) AddSheet(name string, grid Grid) {
	if _, ok := w.Sheets[name]; !ok {
		w.SheetNames = append(w.SheetNames, name)
	}
	w.Sheets[name] = grid
}

// FirstSheet returns the first sheet's name and grid. ok is false for a
// workbook without sheets.
func (w *Workbook) FirstSheet() (name string, grid Grid, ok bool) {
	if w == nil || len(w.SheetNames) == 0 {
		return "", nil, false
	}
	name = w.SheetNames[0]
	return name, w.Sheets[name], true
}
