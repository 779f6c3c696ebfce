package detect

import (
	"regexp"
	"sort"
	"strings"

	"github.com/diegoavarela/warren-sub012/internal/locale"
	"github.com/diegoavarela/warren-sub012/internal/model"
)

// Signal weights for currency detection. An ambiguous symbol ("$")
// counts more than a distinctive one because it is resolved through the
// locale and usually marks every amount cell in the sheet.
const (
	ambiguousSymbolWeight   = 10
	distinctiveSymbolWeight = 5
	isoCodeWeight           = 8
	contextWeight           = 3
)

// distinctiveSymbols map unambiguous currency markers to their
// currency. Two-character markers are checked before "$" so "US$" and
// "R$" are not double-counted as dollars.
var distinctiveSymbols = []struct {
	marker   string
	currency string
}{
	{"US$", "USD"},
	{"MX$", "MXN"},
	{"R$", "BRL"},
	{"S/", "PEN"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₱", "PHP"},
}

var isoCodeRe = regexp.MustCompile(`\b(USD|EUR|GBP|MXN|ARS|CLP|COP|PEN|UYU|BRL|CAD|JPY)\b`)

// DetectCurrency infers the statement currency from symbols, ISO codes,
// and finally the locale's contextual default.
func DetectCurrency(grid model.Grid, loc locale.Info) model.CurrencyDetection {
	weights := make(map[string]int)
	sources := make(map[string]model.CurrencySource)
	samples := make(map[string][]string)

	addSignal := func(currency string, weight int, src model.CurrencySource, sample string) {
		weights[currency] += weight
		if _, seen := sources[currency]; !seen {
			sources[currency] = src
		}
		if len(samples[currency]) < 5 && sample != "" {
			samples[currency] = append(samples[currency], sample)
		}
	}

	for _, row := range grid {
		for _, cell := range row {
			c := strings.TrimSpace(cell)
			if c == "" {
				continue
			}

			rest := c
			for _, sym := range distinctiveSymbols {
				if n := strings.Count(rest, sym.marker); n > 0 {
					addSignal(sym.currency, n*distinctiveSymbolWeight, model.CurrencyFromSymbol, c)
					rest = strings.ReplaceAll(rest, sym.marker, "")
				}
			}
			// Bare "$" is ambiguous; the locale decides what it means.
			if n := strings.Count(rest, "$"); n > 0 {
				addSignal(loc.Currency, n*ambiguousSymbolWeight, model.CurrencyFromSymbol, c)
			}
			for _, code := range isoCodeRe.FindAllString(c, -1) {
				addSignal(code, isoCodeWeight, model.CurrencyFromCode, c)
			}
		}
	}

	if len(weights) == 0 {
		return model.CurrencyDetection{
			Currency:     loc.Currency,
			Confidence:   contextWeight * 10,
			DetectedFrom: model.CurrencyFromContext,
		}
	}

	// Highest weight wins; alphabetical order keeps ties deterministic.
	currencies := make([]string, 0, len(weights))
	for c := range weights {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	winner := currencies[0]
	for _, c := range currencies[1:] {
		if weights[c] > weights[winner] {
			winner = c
		}
	}

	confidence := weights[winner] * 10
	if confidence > 100 {
		confidence = 100
	}

	return model.CurrencyDetection{
		Currency:     winner,
		Confidence:   confidence,
		DetectedFrom: sources[winner],
		SampleValues: samples[winner],
	}
}
