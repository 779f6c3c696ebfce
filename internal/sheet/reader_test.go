package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCSVReader(t *testing.T) {
	data := "Cuenta,Ene-25,Feb-25\nIngresos por Ventas,1000,1200\nTotal Ingresos,1000,1200\n"

	r := &CSVReader{}
	grid, err := r.Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, "Cuenta", grid.Cell(0, 0))
	assert.Equal(t, "Total Ingresos", grid.Cell(2, 0))
}

func TestCSVReader_RaggedRows(t *testing.T) {
	data := "a,b,c\nd\ne,f\n"

	r := &CSVReader{}
	grid, err := r.Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Len(t, grid[1], 1)
	assert.Equal(t, "", grid.Cell(1, 2), "missing cells read as empty")
}

func TestCSVReader_CustomDelimiter(t *testing.T) {
	data := "Cuenta;Monto\nVentas;1000\n"

	r := &CSVReader{Comma: ';'}
	grid, err := r.Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Monto", grid.Cell(0, 1))
}

func TestXLSXReader(t *testing.T) {
	path := writeWorkbook(t)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := &XLSXReader{}
	grid, err := r.Read(f)
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, "Cuenta", grid.Cell(0, 0))
	assert.Equal(t, "1000", grid.Cell(1, 1))
	assert.Equal(t, "Total Ingresos", grid.Cell(2, 0))
}

func TestXLSXReader_MissingSheet(t *testing.T) {
	path := writeWorkbook(t)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := &XLSXReader{Sheet: "NoSuchSheet"}
	_, err = r.Read(f)
	assert.Error(t, err)
}

func TestRegistry_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte("Cuenta,Monto\nVentas,1000\n"), 0o644))

	grid, err := DefaultRegistry().ReadFile(path)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, "Ventas", grid.Cell(1, 0))
}

func TestRegistry_UnknownFormat(t *testing.T) {
	_, err := DefaultRegistry().ReadFile("statement.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reader")
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVReader{})
	assert.Panics(t, func() { r.Register(&CSVReader{}) })
}

// writeWorkbook builds a small xlsx fixture in a temp dir.
func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	rows := [][]any{
		{"Cuenta", "Ene-25"},
		{"Ingresos por Ventas", 1000},
		{"Total Ingresos", 1000},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "statement.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}
