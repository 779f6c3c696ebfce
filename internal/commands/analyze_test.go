package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoavarela/warren-sub012/internal/auditlog"
	"github.com/diegoavarela/warren-sub012/internal/config"
	"github.com/diegoavarela/warren-sub012/internal/model"
)

const pnlCSV = `Cuenta,Ene-25,Feb-25
Ingresos por Ventas,1000,1200
Total Ingresos,1000,1200
Costo de Ventas,400,450
Utilidad Bruta,600,750
`

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "pnl.csv")
	require.NoError(t, os.WriteFile(path, []byte(pnlCSV), 0o644))
	return path
}

func TestRunAnalyze_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir)

	var out bytes.Buffer
	err := runAnalyze(&out, path, "es-MX", "", filepath.Join(dir, "warren.yaml"), dir)
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "profit_loss")
	assert.Contains(t, report, "Total Ingresos")
	assert.Contains(t, report, "Utilidad Bruta")
	assert.Contains(t, report, "calculated_total")
	// Detail rows show up in the category section, not the totals one.
	assert.Contains(t, report, "cost_of_sales")
	assert.Contains(t, report, "revenue")

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "analyze", entries[0].Action)
}

func TestRunAnalyze_OverridesFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir)

	cfg := config.Default("es-MX")
	cfg.Totals.ManualOverrides = []model.ManualOverride{
		{RowIndex: 2, IsTotal: false},
	}
	cfgPath := filepath.Join(dir, "warren.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	var out bytes.Buffer
	err := runAnalyze(&out, path, "", "", cfgPath, dir)
	require.NoError(t, err)

	// Row 2 was vetoed, so "Total Ingresos" is classified as detail.
	report := out.String()
	assert.NotContains(t, report, "section_total")
}

func TestRunAnalyze_MissingFile(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := runAnalyze(&out, filepath.Join(dir, "nope.csv"), "es-MX", "", filepath.Join(dir, "warren.yaml"), dir)
	assert.Error(t, err)
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "es-AR"))

	cfg, err := config.Load(filepath.Join(dir, "warren.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "es-AR", cfg.Locale)

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
