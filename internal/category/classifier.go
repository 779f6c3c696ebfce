// Package category assigns a semantic category to detail rows the
// total detector left unclassified. The interface is the contract the
// engine consumes; KeywordClassifier is the built-in rule-based
// implementation.
package category

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diegoavarela/warren-sub012/internal/model"
)

// Input describes one detail row to classify.
type Input struct {
	AccountName   string
	Amount        decimal.Decimal
	StatementType model.StatementType
}

// Result is a suggested category with direction and confidence.
type Result struct {
	SuggestedCategory string
	IsInflow          bool
	Confidence        float64
}

// Classifier maps a detail row to a category suggestion.
type Classifier interface {
	Classify(in Input) Result
}

// rule matches bilingual account-name keywords to one category.
type rule struct {
	category   string
	inflow     bool
	confidence float64
	keywords   []string
}

// KeywordClassifier classifies by account-name keywords, first match
// wins. Rules are ordered most-specific first.
type KeywordClassifier struct {
	rules []rule
}

// NewKeywordClassifier returns the built-in bilingual rule set.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{rules: []rule{
		{category: "cost_of_sales", confidence: 0.85, keywords: []string{
			"costo de ventas", "cost of goods", "cogs", "materia prima",
			"mano de obra", "direct labor", "raw material",
		}},
		{category: "taxes", confidence: 0.85, keywords: []string{
			"impuesto", "tax", "iva", "isr",
		}},
		{category: "financial_expenses", confidence: 0.8, keywords: []string{
			"interés", "interes", "interest", "comisiones bancarias", "bank fees",
		}},
		{category: "depreciation", confidence: 0.85, keywords: []string{
			"depreciación", "depreciacion", "depreciation",
			"amortización", "amortizacion", "amortization",
		}},
		{category: "revenue", inflow: true, confidence: 0.8, keywords: []string{
			"ventas", "ingresos", "sales", "revenue", "servicios prestados",
			"cobros", "facturación", "facturacion",
		}},
		{category: "operating_expenses", confidence: 0.75, keywords: []string{
			"gastos", "sueldos", "salarios", "salaries", "rent", "renta",
			"alquiler", "marketing", "administración", "administracion",
			"general & administrative", "research", "insurance", "seguros",
			"servicios profesionales", "professional services", "proveedores",
		}},
	}}
}

// Classify suggests a category for the row. When no rule matches, the
// amount's sign decides the direction and the suggestion stays generic
// at low confidence so the mapping step flags it for review.
func (c *KeywordClassifier) Classify(in Input) Result {
	name := strings.ToLower(strings.TrimSpace(in.AccountName))

	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return Result{
					SuggestedCategory: r.category,
					IsInflow:          r.inflow,
					Confidence:        r.confidence,
				}
			}
		}
	}

	res := Result{SuggestedCategory: "uncategorized", Confidence: 0.3}
	if in.Amount.IsPositive() && in.StatementType == model.StatementCashFlow {
		res.IsInflow = true
	}
	return res
}
