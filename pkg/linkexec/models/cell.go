// Package models defines data structures for link-building plan processing.
package models

// Grid is the 2-D cell grid of a single sheet. Rows may be ragged; a missing
// cell reads as empty.
type Grid [][]string

// Cell returns the value at row r, column c (0-based), or "" when out of range.
func (g Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g) {
		return ""
	}
	row := g[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// Row returns row r, or nil when out of range.
func (g Grid) Row(r int) []string {
	if r < 0 || r >= len(g) {
		return nil
	}
	return g[r]
}
