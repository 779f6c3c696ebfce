package sheet

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/diegoavarela/warren-sub012/internal/model"
)

// CSVReader reads comma-separated exports. Rows may have ragged widths;
// the grid preserves them as-is.
type CSVReader struct {
	// Comma overrides the field delimiter; zero means ','.
	Comma rune
}

// Format returns the reader name.
func (c *CSVReader) Format() string { return "csv" }

// Read parses the full file into a Grid.
func (c *CSVReader) Read(r io.Reader) (model.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if c.Comma != 0 {
		cr.Comma = c.Comma
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	grid := make(model.Grid, 0, len(records))
	for _, rec := range records {
		grid = append(grid, model.Row(rec))
	}
	return grid, nil
}
