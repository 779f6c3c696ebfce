package model

import "strings"

// Row is one horizontal line of cells in a raw sheet.
type Row []string

// Grid is the raw 2-D content of an uploaded sheet, exactly as read.
// Cells hold the display text of the original value; missing and
// malformed cells are empty strings.
type Grid []Row

// Cell returns the trimmed value at (row, col), or "" when the
// coordinates fall outside the grid.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// RowIsEmpty reports whether every cell in the row is blank.
func (g Grid) RowIsEmpty(row int) bool {
	if row < 0 || row >= len(g) {
		return true
	}
	for _, c := range g[row] {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Flatten joins every cell into a single lowercase string, used by the
// whole-sheet detectors (statement type, currency).
func (g Grid) Flatten() string {
	var b strings.Builder
	for _, row := range g {
		for _, c := range row {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			b.WriteString(c)
			b.WriteByte(' ')
		}
	}
	return strings.ToLower(b.String())
}

// NumericCells counts cells in the row that parse as amounts.
func (g Grid) NumericCells(row int) int {
	if row < 0 || row >= len(g) {
		return 0
	}
	n := 0
	for _, c := range g[row] {
		if _, ok := ParseAmount(c); ok {
			n++
		}
	}
	return n
}
