package detect

import (
	"github.com/diegoavarela/warren-sub012/internal/locale"
	"github.com/diegoavarela/warren-sub012/internal/model"
)

// dictionary bundles every keyword table one detection pass needs.
// Instances are built per invocation from the tables below so callers
// never share mutable state.
type dictionary struct {
	// statementKeywords is keyed by statement type; which language is
	// loaded depends on the locale.
	statementKeywords map[model.StatementType][]string
	statementOrder    []model.StatementType
	elementTags       map[model.StatementType][]string

	columnPatterns map[model.ColumnType][]string

	// The total-row tables are bilingual regardless of locale: mixed
	// Spanish/English sheets are the norm, not the exception.
	totalKeywords     []string
	totalExclusions   []string
	keyMetrics        []string
	sectionHeaders    []string
	headerExclusions  []string
	grandTotalMarkers []string
	subtotalMarkers   []string
	calculatedMarkers []string
}

var statementKeywordsEN = map[model.StatementType][]string{
	model.StatementProfitLoss: {
		"income statement", "profit and loss", "p&l", "revenue", "sales",
		"cost of goods sold", "gross profit", "operating expenses",
		"ebitda", "net income", "margin",
	},
	model.StatementCashFlow: {
		"cash flow", "beginning balance", "ending balance", "inflows",
		"outflows", "receipts", "payments", "net cash", "lowest balance",
	},
	model.StatementBalanceSheet: {
		"balance sheet", "assets", "liabilities", "equity",
		"accounts receivable", "accounts payable", "retained earnings",
	},
}

var statementKeywordsES = map[model.StatementType][]string{
	model.StatementProfitLoss: {
		"estado de resultados", "ingresos", "ventas", "costo de ventas",
		"utilidad bruta", "gastos operativos", "gastos operacionales",
		"ebitda", "utilidad neta", "margen",
	},
	model.StatementCashFlow: {
		"flujo de efectivo", "flujo de caja", "saldo inicial",
		"saldo final", "egresos", "cobros", "pagos", "flujo neto",
		"saldo mínimo",
	},
	model.StatementBalanceSheet: {
		"balance general", "activo", "pasivo", "patrimonio", "capital",
		"cuentas por cobrar", "cuentas por pagar",
	},
}

var elementTags = map[model.StatementType][]string{
	model.StatementProfitLoss:   {"revenue", "expenses", "margins"},
	model.StatementCashFlow:     {"inflows", "outflows", "balances"},
	model.StatementBalanceSheet: {"assets", "liabilities", "equity"},
}

var columnPatternsEN = map[model.ColumnType][]string{
	model.ColumnDate:        {"date", "period", "month", "week", "day"},
	model.ColumnAmount:      {"amount", "value", "total", "debit", "credit", "balance", "net"},
	model.ColumnDescription: {"description", "detail", "memo", "notes", "line item", "concept"},
	model.ColumnAccount:     {"account", "code", "category", "item"},
}

var columnPatternsES = map[model.ColumnType][]string{
	model.ColumnDate:        {"fecha", "periodo", "período", "mes", "semana", "día"},
	model.ColumnAmount:      {"monto", "importe", "valor", "total", "debe", "haber", "saldo", "cargo", "abono"},
	model.ColumnDescription: {"descripción", "descripcion", "concepto", "detalle", "notas", "glosa"},
	model.ColumnAccount:     {"cuenta", "código", "codigo", "rubro", "partida", "categoría"},
}

// totalKeywords are labels that name an aggregate outright.
var totalKeywords = []string{
	"total", "subtotal", "suma", "sum",
	"total ingresos", "total egresos", "total gastos", "total revenue",
	"total expenses", "total income", "total operating expenses",
	"gran total", "grand total",
}

// totalExclusions are ordinary detail lines that share substrings with
// total vocabulary. A match vetoes the row outright.
var totalExclusions = []string{
	"other revenue", "other income", "otros ingresos",
	"other expenses", "otros gastos",
	"professional services", "servicios profesionales",
	"salaries", "salarios", "sueldos",
	"rent", "renta", "alquiler",
	"insurance", "seguros",
	"depreciation", "depreciación", "depreciacion",
	"amortization", "amortización", "amortizacion",
}

// keyMetrics are computed financial metrics that appear as labels
// without the word "total".
var keyMetrics = []string{
	"gross profit", "utilidad bruta", "gross margin", "margen bruto",
	"net income", "utilidad neta", "net margin", "margen neto",
	"operating income", "utilidad operativa", "utilidad de operación",
	"operating margin", "margen operativo",
	"ebitda", "ebitda margin", "margen ebitda", "ebit",
	"net profit", "net cash flow", "flujo neto",
}

// sectionHeaders are group labels that introduce a block of detail rows.
var sectionHeaders = []string{
	"revenue", "revenues", "ingresos", "income",
	"expenses", "gastos", "egresos", "costs", "costos",
	"operating expenses", "gastos operativos", "gastos operacionales",
	"cost of sales", "costo de ventas", "cost of goods sold",
	"assets", "activo", "activos", "liabilities", "pasivo", "pasivos",
	"equity", "patrimonio",
}

// headerExclusions stop near-matches of the section vocabulary from
// being promoted to section headers.
var headerExclusions = []string{"other", "otros", "(cogs)", "tax", "impuesto"}

var (
	grandTotalMarkers = []string{"grand", "general"}
	subtotalMarkers   = []string{"subtotal"}
	calculatedMarkers = []string{"gross", "net", "margin", "bruta", "bruto", "neta", "neto", "margen"}
)

// newDictionary assembles the tables for one locale. The declaration
// order of statement types doubles as the tie-break order.
func newDictionary(loc locale.Info) dictionary {
	stmt := statementKeywordsEN
	cols := columnPatternsEN
	if loc.Spanish {
		stmt = statementKeywordsES
		cols = columnPatternsES
	}
	return dictionary{
		statementKeywords: stmt,
		statementOrder: []model.StatementType{
			model.StatementProfitLoss,
			model.StatementCashFlow,
			model.StatementBalanceSheet,
		},
		elementTags:       elementTags,
		columnPatterns:    cols,
		totalKeywords:     totalKeywords,
		totalExclusions:   totalExclusions,
		keyMetrics:        keyMetrics,
		sectionHeaders:    sectionHeaders,
		headerExclusions:  headerExclusions,
		grandTotalMarkers: grandTotalMarkers,
		subtotalMarkers:   subtotalMarkers,
		calculatedMarkers: calculatedMarkers,
	}
}
