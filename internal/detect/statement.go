// Package detect implements the heuristic classifiers that turn a raw,
// schema-less sheet into a structured financial-statement mapping:
// statement type, column roles, currency, and total/subtotal rows.
// Every detector is a pure function of its inputs — identical grid,
// options, and locale always produce identical output.
package detect

import (
	"strings"

	"github.com/diegoavarela/warren-sub012/internal/locale"
	"github.com/diegoavarela/warren-sub012/internal/model"
)

// statementThreshold is the minimum winning confidence before the sheet
// is labeled with a concrete statement type.
const statementThreshold = 20

// elementThreshold is the per-type confidence above which that type's
// element tags are reported.
const elementThreshold = 30

// DetectStatementType scores the sheet against per-type keyword lists
// and returns the best match, or unknown when nothing scores above the
// threshold. Headers participate in the scored text alongside the data.
func DetectStatementType(grid model.Grid, headers []string, loc locale.Info) model.StatementDetection {
	dict := newDictionary(loc)

	text := strings.ToLower(strings.Join(headers, " ")) + " " + grid.Flatten()

	detection := model.StatementDetection{
		PrimaryType: model.StatementUnknown,
		Locale:      loc.String(),
	}

	best := 0
	for _, st := range dict.statementOrder {
		keywords := dict.statementKeywords[st]
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		confidence := 0
		if len(keywords) > 0 {
			confidence = hits * 100 / len(keywords)
			if confidence > 100 {
				confidence = 100
			}
		}

		// First declared wins ties.
		if confidence > best {
			best = confidence
			detection.PrimaryType = st
			detection.Confidence = confidence
		}
		if confidence > elementThreshold {
			detection.DetectedElements = append(detection.DetectedElements, dict.elementTags[st]...)
		}
	}

	if best < statementThreshold {
		detection.PrimaryType = model.StatementUnknown
	}

	currency := DetectCurrency(grid, loc)
	detection.Currency = currency.Currency

	return detection
}
