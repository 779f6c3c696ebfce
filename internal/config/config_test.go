package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoavarela/warren-sub012/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("es-MX")
	cfg.Totals.ManualOverrides = []model.ManualOverride{
		{RowIndex: 7, IsTotal: true, TotalType: model.TotalSubtotal},
		{RowIndex: 9, IsTotal: false},
	}
	cfg.Totals.ExcludeFromMapping = []int{3}

	path := filepath.Join(t.TempDir(), "warren.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "es-MX", got.Locale)
	assert.InDelta(t, cfg.Detection.Threshold, got.Detection.Threshold, 0.001)
	assert.Equal(t, cfg.Detection.ScanCap, got.Detection.ScanCap)
	assert.True(t, got.Totals.AutoDetect)
	require.Len(t, got.Totals.ManualOverrides, 2)
	assert.Equal(t, 7, got.Totals.ManualOverrides[0].RowIndex)
	assert.Equal(t, model.TotalSubtotal, got.Totals.ManualOverrides[0].TotalType)
	assert.False(t, got.Totals.ManualOverrides[1].IsTotal)
	assert.Equal(t, []int{3}, got.Totals.ExcludeFromMapping)
}

func TestDefaults(t *testing.T) {
	cfg := Default("en-US")

	assert.Equal(t, "en-US", cfg.Locale)
	assert.InDelta(t, 0.4, cfg.Detection.KeywordWeight, 0.001)
	assert.InDelta(t, 0.3, cfg.Detection.PositionWeight, 0.001)
	assert.InDelta(t, 0.2, cfg.Detection.FormatWeight, 0.001)
	assert.InDelta(t, 0.1, cfg.Detection.MathWeight, 0.001)
	assert.InDelta(t, 0.75, cfg.Detection.Threshold, 0.001)
	assert.Equal(t, 500, cfg.Detection.ScanCap)
	assert.False(t, cfg.Detection.SumCheck)
	assert.Equal(t, "0.01", cfg.Detection.SumTolerance)
	assert.True(t, cfg.Totals.AutoDetect)
}

func TestOptions(t *testing.T) {
	cfg := Default("en-US")
	cfg.Detection.Threshold = 0.6
	cfg.Detection.SumCheck = true
	cfg.Detection.SumTolerance = "0.5"

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.InDelta(t, 0.6, opts.Threshold, 0.001)
	assert.True(t, opts.SumCheck)
	assert.Equal(t, "0.5", opts.SumTolerance.String())
	assert.Equal(t, -1, opts.AccountColumn, "zero config keeps the probing default")
}

func TestOptions_BadTolerance(t *testing.T) {
	cfg := Default("en-US")
	cfg.Detection.SumTolerance = "lots"

	_, err := cfg.Options()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum_tolerance")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
