package model

// ColumnType classifies the role of a sheet column.
type ColumnType string

const (
	ColumnDate        ColumnType = "date"
	ColumnAmount      ColumnType = "amount"
	ColumnDescription ColumnType = "description"
	ColumnAccount     ColumnType = "account"
	ColumnUnknown     ColumnType = "unknown"
)

// StatementType identifies the kind of financial statement a sheet holds.
type StatementType string

const (
	StatementProfitLoss   StatementType = "profit_loss"
	StatementCashFlow     StatementType = "cash_flow"
	StatementBalanceSheet StatementType = "balance_sheet"
	StatementUnknown      StatementType = "unknown"
)

// TotalType classifies a detected aggregate row.
type TotalType string

const (
	TotalSection       TotalType = "section_total"
	TotalGrand         TotalType = "grand_total"
	TotalCalculated    TotalType = "calculated_total"
	TotalSubtotal      TotalType = "subtotal"
	TotalSectionHeader TotalType = "section_header"
)

// CurrencySource says which signal decided the detected currency.
type CurrencySource string

const (
	CurrencyFromSymbol  CurrencySource = "symbol"
	CurrencyFromCode    CurrencySource = "code"
	CurrencyFromFormat  CurrencySource = "format"
	CurrencyFromContext CurrencySource = "context"
)

// ColumnDetection is the classification of a single column.
// Confidence is 0-100.
type ColumnDetection struct {
	ColumnIndex  int
	HeaderText   string
	DetectedType ColumnType
	Confidence   int
	SampleValues []string
	Issues       []string
}

// TotalDetectionResult is the classification of one aggregate row.
// Confidence is 0.0-1.0.
type TotalDetectionResult struct {
	RowIndex          int
	AccountName       string
	TotalType         TotalType
	Confidence        float64
	DetectionReasons  []string
	RelatedDetailRows []int
}

// MappingSuggestion proposes a target field for a source column.
type MappingSuggestion struct {
	ColumnIndex int
	Field       string
}

// StatementDetection is the whole-sheet classification.
// Confidence is 0-100.
type StatementDetection struct {
	PrimaryType      StatementType
	Confidence       int
	DetectedElements []string
	SuggestedMapping []MappingSuggestion
	Locale           string
	Currency         string
}

// CurrencyDetection is the inferred statement currency.
// Confidence is 0-100.
type CurrencyDetection struct {
	Currency     string
	Confidence   int
	DetectedFrom CurrencySource
	SampleValues []string
}

// ManualOverride is a human decision about one row, taking precedence
// over any auto-detected result for that row.
type ManualOverride struct {
	RowIndex  int       `yaml:"row"`
	IsTotal   bool      `yaml:"is_total"`
	TotalType TotalType `yaml:"total_type,omitempty"`
}

// TotalDetectionConfig drives one ingestion session's total detection.
type TotalDetectionConfig struct {
	AutoDetect         bool             `yaml:"auto_detect"`
	ManualOverrides    []ManualOverride `yaml:"manual_overrides,omitempty"`
	ExcludeFromMapping []int            `yaml:"exclude_from_mapping,omitempty"`
}
