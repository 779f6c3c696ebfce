package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diegoavarela/warren-sub012/internal/locale"
	"github.com/diegoavarela/warren-sub012/internal/model"
)

// DetectionOptions tunes the total-row detector. Zero values are not
// usable; start from DefaultOptions.
type DetectionOptions struct {
	// Signal weights for the fallback tier. They should sum to 1.
	KeywordWeight  float64
	PositionWeight float64
	FormatWeight   float64
	MathWeight     float64

	// Threshold is the minimum confidence a row must score to appear
	// in the result list.
	Threshold float64

	// ScanCap bounds the backward scan of the position signal so a
	// pathological sheet stays linear.
	ScanCap int

	// AccountColumn is the column holding account names, or -1 to
	// probe the first two columns per row.
	AccountColumn int

	// DataStartRow is the first row to score; typically 1 to skip the
	// header row.
	DataStartRow int

	// SumCheck enables the mathematical signal: a candidate total must
	// equal the column-wise sum of its preceding detail block within
	// SumTolerance. Off by default; the signal then contributes a
	// fixed neutral score.
	SumCheck     bool
	SumTolerance decimal.Decimal
}

// Default signal weights and limits.
const (
	defaultKeywordWeight  = 0.4
	defaultPositionWeight = 0.3
	defaultFormatWeight   = 0.2
	defaultMathWeight     = 0.1
	defaultThreshold      = 0.75
	defaultScanCap        = 500

	// neutralMathScore is what the mathematical signal reports while
	// SumCheck is off.
	neutralMathScore = 0.1
)

// grandTotalZone is the final fraction of the sheet where an aggregate
// row is assumed to be a grand total.
const grandTotalZone = 0.8

// DefaultOptions returns the production detector configuration.
func DefaultOptions() DetectionOptions {
	return DetectionOptions{
		KeywordWeight:  defaultKeywordWeight,
		PositionWeight: defaultPositionWeight,
		FormatWeight:   defaultFormatWeight,
		MathWeight:     defaultMathWeight,
		Threshold:      defaultThreshold,
		ScanCap:        defaultScanCap,
		AccountColumn:  -1,
		DataStartRow:   1,
		SumTolerance:   decimal.NewFromFloat(0.01),
	}
}

// rowContext carries everything one tier needs to judge one row.
type rowContext struct {
	grid     model.Grid
	dict     dictionary
	opts     DetectionOptions
	rowIndex int
	name     string // lowercased account name
	rawName  string
	// accepted marks rows already classified as totals in this pass;
	// the backward scan stops at them.
	accepted map[int]bool
}

// tierResult is one tier's verdict. matched=false passes the row to
// the next tier.
type tierResult struct {
	matched    bool
	totalType  model.TotalType
	confidence float64
	reasons    []string
	related    []int
}

// tier is one strategy in the priority-ordered classifier chain. The
// first tier that matches fixes the row's classification.
type tier struct {
	name     string
	classify func(*rowContext) tierResult
}

// classifierTiers returns the ordered strategy chain: explicit keyword,
// key financial metric, section header, then the weighted fallback.
func classifierTiers() []tier {
	return []tier{
		{name: "explicit_keyword", classify: explicitKeywordTier},
		{name: "key_metric", classify: keyMetricTier},
		{name: "section_header", classify: sectionHeaderTier},
		{name: "weighted_fallback", classify: weightedFallbackTier},
	}
}

// DetectTotalRows scores every row of the grid and returns the rows
// classified as totals, subtotals, calculated metrics, or section
// headers, sorted by descending confidence and filtered to the
// acceptance threshold. Rows with no resolvable account name are never
// scored. The function is pure: it never errors and never mutates the
// grid.
func DetectTotalRows(grid model.Grid, opts DetectionOptions) []model.TotalDetectionResult {
	dict := newDictionary(locale.Info{})
	tiers := classifierTiers()

	var results []model.TotalDetectionResult
	accepted := make(map[int]bool)

	for rowIndex := opts.DataStartRow; rowIndex < len(grid); rowIndex++ {
		rawName := resolveAccountName(grid, rowIndex, opts.AccountColumn)
		if rawName == "" {
			continue
		}

		ctx := &rowContext{
			grid:     grid,
			dict:     dict,
			opts:     opts,
			rowIndex: rowIndex,
			name:     strings.ToLower(rawName),
			rawName:  rawName,
			accepted: accepted,
		}

		for _, t := range tiers {
			verdict := t.classify(ctx)
			if !verdict.matched {
				continue
			}
			if verdict.confidence >= opts.Threshold {
				accepted[rowIndex] = true
				results = append(results, model.TotalDetectionResult{
					RowIndex:          rowIndex,
					AccountName:       rawName,
					TotalType:         verdict.totalType,
					Confidence:        verdict.confidence,
					DetectionReasons:  verdict.reasons,
					RelatedDetailRows: verdict.related,
				})
			}
			break
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results
}

// AccountName resolves the label for a row the same way the detector
// does, for callers that walk detail rows after detection.
func AccountName(grid model.Grid, row, accountCol int) string {
	return resolveAccountName(grid, row, accountCol)
}

// resolveAccountName finds the label for a row: the configured column
// when given, otherwise the first non-numeric, non-empty value in the
// first two columns.
func resolveAccountName(grid model.Grid, row, accountCol int) string {
	if accountCol >= 0 {
		v := grid.Cell(row, accountCol)
		if v == "" || v == "-" || model.IsNumeric(v) {
			return ""
		}
		return v
	}
	for col := 0; col < 2; col++ {
		v := grid.Cell(row, col)
		if v == "" || v == "-" || model.IsNumeric(v) {
			continue
		}
		return v
	}
	return ""
}

// explicitKeywordTier matches labels that say "total" or "subtotal"
// outright.
func explicitKeywordTier(ctx *rowContext) tierResult {
	if !strings.Contains(ctx.name, "total") && !strings.Contains(ctx.name, "subtotal") {
		return tierResult{}
	}
	return tierResult{
		matched:    true,
		totalType:  assignTotalType(ctx),
		confidence: 0.9,
		reasons:    []string{fmt.Sprintf("label %q contains an explicit total keyword", ctx.rawName)},
	}
}

// keyMetricTier matches computed financial metrics (gross profit,
// EBITDA, net income and friends) by exact or prefix match.
func keyMetricTier(ctx *rowContext) tierResult {
	for _, metric := range ctx.dict.keyMetrics {
		if ctx.name == metric || strings.HasPrefix(ctx.name, metric+" ") {
			return tierResult{
				matched:    true,
				totalType:  model.TotalCalculated,
				confidence: 0.85,
				reasons:    []string{fmt.Sprintf("label matches key financial metric %q", metric)},
			}
		}
	}
	return tierResult{}
}

// sectionHeaderTier matches group labels carrying no numbers at all.
// A section header never aggregates anything, so numeric cells or an
// exclusion match disqualify the row immediately.
func sectionHeaderTier(ctx *rowContext) tierResult {
	name := normalizeHeaderName(ctx.name)

	for _, excl := range ctx.dict.headerExclusions {
		if strings.Contains(name, excl) {
			return tierResult{}
		}
	}

	isHeader := false
	for _, header := range ctx.dict.sectionHeaders {
		if name == header || name == header+"s" || name+"s" == header {
			isHeader = true
			break
		}
	}
	if !isHeader {
		return tierResult{}
	}

	if ctx.grid.NumericCells(ctx.rowIndex) > 0 {
		return tierResult{}
	}

	return tierResult{
		matched:    true,
		totalType:  model.TotalSectionHeader,
		confidence: 0.9,
		reasons:    []string{fmt.Sprintf("label %q introduces a section and the row has no numeric cells", ctx.rawName)},
	}
}

// normalizeHeaderName strips the decoration sheets put on section
// labels: trailing colons, repeated spaces, case.
func normalizeHeaderName(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), ":")
	return strings.Join(strings.Fields(name), " ")
}

// weightedFallbackTier combines the keyword, position, format, and
// mathematical signals when no higher tier matched. A keyword veto
// zeroes the row regardless of the other signals.
func weightedFallbackTier(ctx *rowContext) tierResult {
	keyword, vetoed := keywordScore(ctx)
	if vetoed {
		return tierResult{
			matched:    true,
			confidence: 0,
			totalType:  model.TotalSection,
			reasons:    []string{"label matches a known detail-line phrase"},
		}
	}

	position := positionScore(ctx)
	format := formatScore(ctx)
	math, related := mathScore(ctx)

	confidence := ctx.opts.KeywordWeight*keyword +
		ctx.opts.PositionWeight*position +
		ctx.opts.FormatWeight*format +
		ctx.opts.MathWeight*math
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}

	return tierResult{
		matched:    true,
		totalType:  assignTotalType(ctx),
		confidence: confidence,
		related:    related,
		reasons: []string{fmt.Sprintf(
			"weighted signals: keyword=%.2f position=%.2f format=%.2f math=%.2f",
			keyword, position, format, math)},
	}
}

// profitFamilyMarkers trigger the high keyword gradation for computed
// result lines that slipped past the metric tier.
var profitFamilyMarkers = []string{"utilidad", "ganancia", "profit", "income", "margin", "margen"}

// minContainsKeywordLen keeps short keywords from matching as bare
// substrings and flooding the detector with noise.
const minContainsKeywordLen = 5

// keywordScore grades how total-like the label text is. The boolean
// reports a veto: the label is a known false positive and the row must
// score zero.
func keywordScore(ctx *rowContext) (float64, bool) {
	for _, excl := range ctx.dict.totalExclusions {
		if containsWord(ctx.name, excl) {
			return 0, true
		}
	}

	score := 0.0
	for _, kw := range ctx.dict.totalKeywords {
		if ctx.name == kw {
			score = max(score, 1.0)
		} else if len(kw) > minContainsKeywordLen && strings.Contains(ctx.name, kw) {
			score = max(score, 0.7)
		}
	}
	if strings.HasPrefix(ctx.name, "total ") {
		score = max(score, 0.9)
	}
	if strings.Contains(ctx.name, "ebitda") || strings.Contains(ctx.name, "ebit ") || ctx.name == "ebit" {
		score = max(score, 0.95)
	}
	for _, marker := range profitFamilyMarkers {
		if strings.Contains(ctx.name, marker) {
			score = max(score, 0.9)
		}
	}
	if strings.ContainsAny(ctx.name, "+-=") {
		score = max(score, 0.6)
	}
	if strings.Contains(ctx.name, "%") {
		score = max(score, 0.8)
	}
	return score, false
}

// positionScore rewards the layout shape of a total: a break right
// after the row, and a run of numeric detail rows right before it.
func positionScore(ctx *rowContext) float64 {
	score := 0.0
	grid := ctx.grid
	row := ctx.rowIndex

	// Next row blank, or starts a new section with a text label.
	if row+1 >= len(grid) || grid.RowIsEmpty(row+1) {
		score += 0.4
	} else if first := grid.Cell(row+1, 0); first != "" && !model.IsNumeric(first) {
		score += 0.4
	}

	// Preceded by at least two consecutive numeric, non-total rows.
	// The scan is capped so a pathological sheet stays linear.
	run := 0
	for back := row - 1; back >= 0 && row-back <= ctx.opts.ScanCap; back-- {
		if grid.RowIsEmpty(back) || ctx.accepted[back] {
			break
		}
		if grid.NumericCells(back) == 0 {
			break
		}
		run++
	}
	if run >= 2 {
		score += 0.3
	}

	return score
}

// formatScore rewards visual emphasis: ALL-CAPS labels and percent
// cells.
func formatScore(ctx *rowContext) float64 {
	score := 0.0
	if len(ctx.rawName) > 3 && ctx.rawName == strings.ToUpper(ctx.rawName) && ctx.rawName != strings.ToLower(ctx.rawName) {
		score += 0.3
	}
	if ctx.rowIndex < len(ctx.grid) {
		for _, cell := range ctx.grid[ctx.rowIndex] {
			if strings.Contains(cell, "%") {
				score += 0.2
				break
			}
		}
	}
	return score
}

// mathScore checks whether the candidate equals the column-wise sum of
// its preceding detail block. While SumCheck is off it reports a fixed
// neutral score, preserving the historical detector behavior.
func mathScore(ctx *rowContext) (float64, []int) {
	if !ctx.opts.SumCheck {
		return neutralMathScore, nil
	}

	grid := ctx.grid
	row := ctx.rowIndex

	// Gather the contiguous detail block above the candidate.
	var block []int
	for back := row - 1; back >= 0 && row-back <= ctx.opts.ScanCap; back-- {
		if grid.RowIsEmpty(back) || ctx.accepted[back] || grid.NumericCells(back) == 0 {
			break
		}
		block = append(block, back)
	}
	if len(block) == 0 {
		return neutralMathScore, nil
	}

	checked := 0
	matched := 0
	for col := 0; col < len(grid[row]); col++ {
		candidate, ok := model.ParseAmount(grid.Cell(row, col))
		if !ok {
			continue
		}
		sum := decimal.Zero
		for _, detailRow := range block {
			if v, ok := model.ParseAmount(grid.Cell(detailRow, col)); ok {
				sum = sum.Add(v)
			}
		}
		checked++
		if candidate.Sub(sum).Abs().LessThanOrEqual(ctx.opts.SumTolerance) {
			matched++
		}
	}

	if checked == 0 {
		return neutralMathScore, nil
	}
	if matched == checked {
		// block was gathered bottom-up; report it in sheet order.
		for i, j := 0, len(block)-1; i < j; i, j = i+1, j-1 {
			block[i], block[j] = block[j], block[i]
		}
		return 1.0, block
	}
	return 0.0, nil
}

// assignTotalType picks the aggregate subtype from the label text and
// the row's position in the sheet.
func assignTotalType(ctx *rowContext) model.TotalType {
	inFinalZone := len(ctx.grid) > 0 &&
		float64(ctx.rowIndex) >= grandTotalZone*float64(len(ctx.grid))

	if containsAny(ctx.name, ctx.dict.grandTotalMarkers) || inFinalZone {
		return model.TotalGrand
	}
	if containsAny(ctx.name, ctx.dict.subtotalMarkers) {
		return model.TotalSubtotal
	}
	if containsAny(ctx.name, ctx.dict.calculatedMarkers) {
		return model.TotalCalculated
	}
	return model.TotalSection
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// containsWord reports whether phrase occurs in s on word boundaries,
// so "rent" vetoes "Rent Expense" but not "Current Assets".
func containsWord(s, phrase string) bool {
	i := strings.Index(s, phrase)
	for i >= 0 {
		before := i == 0 || !isWordByte(s[i-1])
		afterIdx := i + len(phrase)
		after := afterIdx >= len(s) || !isWordByte(s[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(s[i+1:], phrase)
		if next < 0 {
			return false
		}
		i += 1 + next
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
