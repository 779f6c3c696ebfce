// Package locale resolves a BCP-47 tag into the language and currency
// context the detectors depend on.
package locale

import "golang.org/x/text/language"

// Info is the resolved detection context for one sheet.
type Info struct {
	// Tag is the parsed locale tag; language.Und when parsing failed.
	Tag language.Tag
	// Spanish selects the Spanish keyword dictionaries and day-first
	// date order.
	Spanish bool
	// Currency is the contextual default for this locale, used to
	// resolve ambiguous symbols and as the last-resort detection.
	Currency string
}

// regionCurrencies maps a region subtag to its contextual currency.
var regionCurrencies = map[string]string{
	"MX": "MXN",
	"AR": "ARS",
	"CL": "CLP",
	"CO": "COP",
	"PE": "PEN",
	"UY": "UYU",
	"BR": "BRL",
	"ES": "EUR",
	"GB": "GBP",
	"CA": "CAD",
	"US": "USD",
}

// Resolve parses a locale tag like "es-MX" or "en-US". Unparseable or
// empty tags resolve to an English/USD context; a bare "es" resolves to
// Spanish with MXN, the dominant currency among Spanish-language sheets
// the system receives.
func Resolve(tag string) Info {
	info := Info{Tag: language.Und, Currency: "USD"}
	if tag == "" {
		return info
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return info
	}
	info.Tag = parsed

	base, _ := parsed.Base()
	info.Spanish = base.String() == "es"

	// Only trust a region the caller actually wrote; language.Tag
	// otherwise infers a likely one (e.g. "es" -> ES).
	region, conf := parsed.Region()
	if conf == language.Exact {
		if cur, ok := regionCurrencies[region.String()]; ok {
			info.Currency = cur
			return info
		}
	}
	if info.Spanish {
		info.Currency = "MXN"
	}
	return info
}

// DayFirst reports whether numeric dates read day/month rather than
// month/day in this locale.
func (i Info) DayFirst() bool {
	return i.Spanish
}

// String returns the canonical tag, or "" for the undefined locale.
func (i Info) String() string {
	if i.Tag == language.Und {
		return ""
	}
	return i.Tag.String()
}
