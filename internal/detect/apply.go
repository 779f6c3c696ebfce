package detect

import (
	"sort"
	"strings"

	"github.com/diegoavarela/warren-sub012/internal/locale"
	"github.com/diegoavarela/warren-sub012/internal/model"
)

// ApplyTotalDetection runs auto-detection per the session config and
// merges in the manual overrides. An override always supersedes the
// auto-detected result for its row: is_total=true forces the row in at
// full confidence, is_total=false removes it even if it scored 1.0.
// Unlike the raw detector output, the merged list is ordered by row
// index — it feeds the mapping step, which walks the sheet top to
// bottom.
func ApplyTotalDetection(grid model.Grid, cfg model.TotalDetectionConfig, opts DetectionOptions) []model.TotalDetectionResult {
	byRow := make(map[int]model.TotalDetectionResult)

	if cfg.AutoDetect {
		for _, r := range DetectTotalRows(grid, opts) {
			byRow[r.RowIndex] = r
		}
	}

	for _, ov := range cfg.ManualOverrides {
		if !ov.IsTotal {
			delete(byRow, ov.RowIndex)
			continue
		}

		totalType := ov.TotalType
		if totalType == "" {
			totalType = overrideTotalType(grid, ov.RowIndex, opts)
		}
		byRow[ov.RowIndex] = model.TotalDetectionResult{
			RowIndex:         ov.RowIndex,
			AccountName:      resolveAccountName(grid, ov.RowIndex, opts.AccountColumn),
			TotalType:        totalType,
			Confidence:       1.0,
			DetectionReasons: []string{"Manual override"},
		}
	}

	merged := make([]model.TotalDetectionResult, 0, len(byRow))
	for _, r := range byRow {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].RowIndex < merged[j].RowIndex
	})
	return merged
}

// overrideTotalType derives a subtype for an override that did not name
// one, reusing the label/position rule of the detector.
func overrideTotalType(grid model.Grid, row int, opts DetectionOptions) model.TotalType {
	name := resolveAccountName(grid, row, opts.AccountColumn)
	ctx := &rowContext{
		grid:     grid,
		dict:     newDictionary(locale.Info{}),
		rowIndex: row,
		name:     strings.ToLower(name),
	}
	return assignTotalType(ctx)
}
