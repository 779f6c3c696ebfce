package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/diegoavarela/warren-sub012/internal/model"
)

// XLSXReader reads Excel workbooks via excelize.
type XLSXReader struct {
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
}

// Format returns the reader name.
func (x *XLSXReader) Format() string { return "xlsx" }

// Read parses one worksheet into a Grid. Cell values come back as the
// displayed text, which is what the heuristics are written against.
func (x *XLSXReader) Read(r io.Reader) (model.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheetName := x.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}

	grid := make(model.Grid, 0, len(rows))
	for _, row := range rows {
		grid = append(grid, model.Row(row))
	}
	return grid, nil
}
