package category

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/diegoavarela/warren-sub012/internal/model"
)

func classify(name string, amount string) Result {
	c := NewKeywordClassifier()
	return c.Classify(Input{
		AccountName:   name,
		Amount:        decimal.RequireFromString(amount),
		StatementType: model.StatementProfitLoss,
	})
}

func TestClassify_Revenue(t *testing.T) {
	got := classify("Ingresos por Ventas", "1000")
	assert.Equal(t, "revenue", got.SuggestedCategory)
	assert.True(t, got.IsInflow)
	assert.GreaterOrEqual(t, got.Confidence, 0.75)
}

func TestClassify_CostOfSalesBeatsRevenueKeyword(t *testing.T) {
	// "Costo de Ventas" contains "ventas"; the more specific rule is
	// ordered first and must win.
	got := classify("Costo de Ventas", "-400")
	assert.Equal(t, "cost_of_sales", got.SuggestedCategory)
	assert.False(t, got.IsInflow)
}

func TestClassify_OperatingExpenses(t *testing.T) {
	for _, name := range []string{"Sueldos y Cargas", "Rent", "Servicios Profesionales"} {
		got := classify(name, "-300")
		assert.Equal(t, "operating_expenses", got.SuggestedCategory, "name %q", name)
	}
}

func TestClassify_Taxes(t *testing.T) {
	got := classify("Impuestos", "-120")
	assert.Equal(t, "taxes", got.SuggestedCategory)
}

func TestClassify_Depreciation(t *testing.T) {
	got := classify("Depreciación y Amortización", "-75")
	assert.Equal(t, "depreciation", got.SuggestedCategory)
}

func TestClassify_UnknownIsLowConfidence(t *testing.T) {
	got := classify("Miscellaneous Item 42", "10")
	assert.Equal(t, "uncategorized", got.SuggestedCategory)
	assert.LessOrEqual(t, got.Confidence, 0.5)
}

func TestClassify_CashFlowSignDecidesDirection(t *testing.T) {
	c := NewKeywordClassifier()
	got := c.Classify(Input{
		AccountName:   "Ajuste banco",
		Amount:        decimal.NewFromInt(250),
		StatementType: model.StatementCashFlow,
	})
	assert.True(t, got.IsInflow)
}
