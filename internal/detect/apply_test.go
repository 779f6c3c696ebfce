package detect

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoavarela/warren-sub012/internal/model"
)

func TestApplyTotalDetection_OverrideWinsOverAutoDetection(t *testing.T) {
	cfg := model.TotalDetectionConfig{
		AutoDetect: true,
		ManualOverrides: []model.ManualOverride{
			// Row 2 auto-detects at 0.9; the human disagrees.
			{RowIndex: 2, IsTotal: false},
		},
	}

	results := ApplyTotalDetection(pnlGrid(), cfg, DefaultOptions())

	_, ok := findRow(results, 2)
	assert.False(t, ok, "is_total=false must remove the auto-detected row")

	_, ok = findRow(results, 4)
	assert.True(t, ok, "other rows keep their auto-detected result")
}

func TestApplyTotalDetection_OverrideForcesRowIn(t *testing.T) {
	cfg := model.TotalDetectionConfig{
		AutoDetect: true,
		ManualOverrides: []model.ManualOverride{
			// Row 1 is an ordinary detail row the detector skips.
			{RowIndex: 1, IsTotal: true, TotalType: model.TotalSubtotal},
		},
	}

	results := ApplyTotalDetection(pnlGrid(), cfg, DefaultOptions())

	r, ok := findRow(results, 1)
	require.True(t, ok)
	assert.Equal(t, model.TotalSubtotal, r.TotalType)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t, []string{"Manual override"}, r.DetectionReasons)
	assert.Equal(t, "Ingresos por Ventas", r.AccountName)
}

func TestApplyTotalDetection_OverrideWithoutTypeDerivesOne(t *testing.T) {
	cfg := model.TotalDetectionConfig{
		ManualOverrides: []model.ManualOverride{
			{RowIndex: 4, IsTotal: true},
		},
	}

	results := ApplyTotalDetection(pnlGrid(), cfg, DefaultOptions())

	r, ok := findRow(results, 4)
	require.True(t, ok)
	// "Utilidad Bruta" sits in the final 20% of this short sheet.
	assert.Equal(t, model.TotalGrand, r.TotalType)
}

func TestApplyTotalDetection_AutoDetectDisabled(t *testing.T) {
	cfg := model.TotalDetectionConfig{AutoDetect: false}
	results := ApplyTotalDetection(pnlGrid(), cfg, DefaultOptions())
	assert.Empty(t, results)
}

func TestApplyTotalDetection_SortedByRowIndex(t *testing.T) {
	cfg := model.TotalDetectionConfig{
		AutoDetect: true,
		ManualOverrides: []model.ManualOverride{
			{RowIndex: 3, IsTotal: true, TotalType: model.TotalSection},
		},
	}

	results := ApplyTotalDetection(pnlGrid(), cfg, DefaultOptions())
	require.NotEmpty(t, results)

	assert.True(t, sort.SliceIsSorted(results, func(i, j int) bool {
		return results[i].RowIndex < results[j].RowIndex
	}), "merged results are ordered by row, not confidence")
}

func TestApplyTotalDetection_RemovingPerfectScoreRow(t *testing.T) {
	// Even a row that would score 1.0 yields to a human veto.
	grid := model.Grid{
		{"Cuenta", "Monto"},
		{"Gastos Varios", "100"},
		{"TOTAL GENERAL", "100"},
	}
	cfg := model.TotalDetectionConfig{
		AutoDetect: true,
		ManualOverrides: []model.ManualOverride{
			{RowIndex: 2, IsTotal: true},
			{RowIndex: 2, IsTotal: false},
		},
	}

	results := ApplyTotalDetection(grid, cfg, DefaultOptions())
	_, ok := findRow(results, 2)
	assert.False(t, ok)
}
