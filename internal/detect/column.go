package detect

import (
	"fmt"
	"strings"

	"github.com/diegoavarela/warren-sub012/internal/dateparse"
	"github.com/diegoavarela/warren-sub012/internal/locale"
	"github.com/diegoavarela/warren-sub012/internal/model"
)

// maxSampleRows caps how many data rows feed column validation.
// Sampling is fixed (first N), never random, to keep detection
// deterministic.
const maxSampleRows = 10

// Base confidences for a header-keyword match, before data validation.
const (
	baseDateConfidence        = 70
	baseAmountConfidence      = 70
	baseDescriptionConfidence = 80
	baseAccountConfidence     = 75
)

// consistencyFloor is the validating fraction below which an issue is
// recorded for the column.
const consistencyFloor = 0.8

// DetectColumnTypes classifies each column from its header text and the
// first sample rows, returning one detection per header.
func DetectColumnTypes(headers []string, sampleRows []model.Row, loc locale.Info) []model.ColumnDetection {
	dict := newDictionary(loc)
	if len(sampleRows) > maxSampleRows {
		sampleRows = sampleRows[:maxSampleRows]
	}

	detections := make([]model.ColumnDetection, 0, len(headers))
	for i, header := range headers {
		samples := columnSamples(sampleRows, i)
		detections = append(detections, detectColumn(dict, i, header, samples))
	}
	return detections
}

func detectColumn(dict dictionary, index int, header string, samples []string) model.ColumnDetection {
	d := model.ColumnDetection{
		ColumnIndex:  index,
		HeaderText:   header,
		DetectedType: model.ColumnUnknown,
		SampleValues: samples,
	}

	h := strings.ToLower(strings.TrimSpace(header))

	// Pass 1: header keywords. Description and account carry higher
	// base confidence because their headers are rarely ambiguous.
	switch {
	case matchesAny(h, dict.columnPatterns[model.ColumnDate]) || dateparse.LooksLikeDate(header):
		d.DetectedType = model.ColumnDate
		d.Confidence = baseDateConfidence
	case matchesAny(h, dict.columnPatterns[model.ColumnDescription]):
		d.DetectedType = model.ColumnDescription
		d.Confidence = baseDescriptionConfidence
	case matchesAny(h, dict.columnPatterns[model.ColumnAccount]):
		d.DetectedType = model.ColumnAccount
		d.Confidence = baseAccountConfidence
	case matchesAny(h, dict.columnPatterns[model.ColumnAmount]):
		d.DetectedType = model.ColumnAmount
		d.Confidence = baseAmountConfidence
	}

	// Pass 2: refine against the sampled data.
	refineColumn(&d, samples)

	// Pass 3: header gave us nothing usable, fall back to data shape.
	if d.Confidence < 50 {
		inferFromData(&d, samples)
	}

	return d
}

// refineColumn adjusts confidence by how well the sampled values match
// the detected type, and records an issue when they mostly don't.
func refineColumn(d *model.ColumnDetection, samples []string) {
	if len(samples) == 0 {
		return
	}

	switch d.DetectedType {
	case model.ColumnDate:
		frac := fraction(samples, dateparse.LooksLikeDate)
		d.Confidence += int(30 * frac)
		if frac < consistencyFloor {
			d.Issues = append(d.Issues, fmt.Sprintf("inconsistent date formats: %.0f%% of samples parse as dates", frac*100))
		}
	case model.ColumnAmount:
		frac := fraction(samples, model.IsNumeric)
		d.Confidence += int(30 * frac)
		if frac < consistencyFloor {
			d.Issues = append(d.Issues, fmt.Sprintf("non-numeric values: %.0f%% of samples parse as amounts", frac*100))
		}
	case model.ColumnDescription:
		frac := fraction(samples, func(s string) bool {
			return !model.IsNumeric(s) && len(s) > 2
		})
		d.Confidence += int(20 * frac)
		if frac < consistencyFloor {
			d.Issues = append(d.Issues, "short or numeric values in a description column")
		}
	}

	if d.Confidence > 100 {
		d.Confidence = 100
	}
}

// inferFromData classifies purely by value shape when the header was
// uninformative.
func inferFromData(d *model.ColumnDetection, samples []string) {
	if len(samples) == 0 {
		return
	}
	switch {
	case fraction(samples, model.IsNumeric) >= 0.8:
		d.DetectedType = model.ColumnAmount
		d.Confidence = 70
	case fraction(samples, dateparse.LooksLikeDate) >= 0.8:
		d.DetectedType = model.ColumnDate
		d.Confidence = 70
	default:
		d.DetectedType = model.ColumnDescription
		d.Confidence = 50
	}
}

// SuggestMapping proposes one target field per detected column type,
// keeping the highest-confidence column when several compete.
func SuggestMapping(columns []model.ColumnDetection) []model.MappingSuggestion {
	best := make(map[model.ColumnType]model.ColumnDetection)
	for _, c := range columns {
		if c.DetectedType == model.ColumnUnknown {
			continue
		}
		cur, ok := best[c.DetectedType]
		if !ok || c.Confidence > cur.Confidence {
			best[c.DetectedType] = c
		}
	}

	var suggestions []model.MappingSuggestion
	for _, ct := range []model.ColumnType{
		model.ColumnAccount, model.ColumnDescription, model.ColumnDate, model.ColumnAmount,
	} {
		if c, ok := best[ct]; ok {
			suggestions = append(suggestions, model.MappingSuggestion{
				ColumnIndex: c.ColumnIndex,
				Field:       string(ct),
			})
		}
	}
	return suggestions
}

func columnSamples(rows []model.Row, col int) []string {
	var samples []string
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v != "" {
			samples = append(samples, v)
		}
	}
	return samples
}

func fraction(samples []string, pred func(string) bool) float64 {
	if len(samples) == 0 {
		return 0
	}
	n := 0
	for _, s := range samples {
		if pred(s) {
			n++
		}
	}
	return float64(n) / float64(len(samples))
}

func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
