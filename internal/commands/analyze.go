package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/diegoavarela/warren-sub012/internal/auditlog"
	"github.com/diegoavarela/warren-sub012/internal/category"
	"github.com/diegoavarela/warren-sub012/internal/config"
	"github.com/diegoavarela/warren-sub012/internal/detect"
	"github.com/diegoavarela/warren-sub012/internal/locale"
	"github.com/diegoavarela/warren-sub012/internal/model"
	"github.com/diegoavarela/warren-sub012/internal/sheet"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		localeTag  string
		sheetName  string
		configPath string
		logDir     string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run one ingestion pass over a spreadsheet",
		Long: `Analyze reads a spreadsheet, identifies the statement type, the role
of each column, the currency, and the total/subtotal rows, then suggests a
category for every detail row. Nothing is persisted beyond the audit log.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.OutOrStdout(), args[0], localeTag, sheetName, configPath, logDir)
		},
	}

	cmd.Flags().StringVar(&localeTag, "locale", "", "locale tag for the sheet, e.g. es-MX (default from config)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "worksheet name (xlsx only; default first sheet)")
	cmd.Flags().StringVar(&configPath, "config", "warren.yaml", "path to warren.yaml")
	cmd.Flags().StringVar(&logDir, "log-dir", ".", "workspace directory for the audit log")

	return cmd
}

func runAnalyze(out io.Writer, path, localeTag, sheetName, configPath, logDir string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if localeTag == "" {
		localeTag = cfg.Locale
	}
	loc := locale.Resolve(localeTag)

	registry := sheet.NewRegistry()
	registry.Register(&sheet.CSVReader{})
	registry.Register(&sheet.XLSXReader{Sheet: sheetName})

	grid, err := registry.ReadFile(path)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("%s: sheet is empty", path)
	}

	headers := []string(grid[0])
	sampleEnd := len(grid)
	if sampleEnd > 11 {
		sampleEnd = 11
	}
	samples := []model.Row(grid[1:sampleEnd])

	columns := detect.DetectColumnTypes(headers, samples, loc)
	statement := detect.DetectStatementType(grid, headers, loc)
	statement.SuggestedMapping = detect.SuggestMapping(columns)
	currency := detect.DetectCurrency(grid, loc)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.AccountColumn = accountColumn(statement.SuggestedMapping)

	totals := detect.ApplyTotalDetection(grid, cfg.Totals, opts)

	printReport(out, path, statement, columns, currency, totals)
	classified := classifyDetailRows(out, grid, totals, cfg.Totals.ExcludeFromMapping, opts, statement)

	return writeAuditTrail(logDir, path, totals, classified)
}

// loadConfig falls back to defaults when no warren.yaml exists; any
// other load failure is a real error.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(""), nil
	}
	return nil, err
}

// accountColumn picks the column the total detector should read labels
// from: the account column when one was detected, else the description
// column, else probe.
func accountColumn(mapping []model.MappingSuggestion) int {
	for _, field := range []string{"account", "description"} {
		for _, m := range mapping {
			if m.Field == field {
				return m.ColumnIndex
			}
		}
	}
	return -1
}

func printReport(out io.Writer, path string, statement model.StatementDetection, columns []model.ColumnDetection, currency model.CurrencyDetection, totals []model.TotalDetectionResult) {
	fmt.Fprintf(out, "File: %s\n", path)
	fmt.Fprintf(out, "Statement: %s (%d%%)", statement.PrimaryType, statement.Confidence)
	if len(statement.DetectedElements) > 0 {
		fmt.Fprintf(out, " — elements: %s", strings.Join(statement.DetectedElements, ", "))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Currency: %s (%d%%, from %s)\n", currency.Currency, currency.Confidence, currency.DetectedFrom)
	if len(statement.SuggestedMapping) > 0 {
		parts := make([]string, 0, len(statement.SuggestedMapping))
		for _, m := range statement.SuggestedMapping {
			parts = append(parts, fmt.Sprintf("%s=col %d", m.Field, m.ColumnIndex))
		}
		fmt.Fprintf(out, "Suggested mapping: %s\n", strings.Join(parts, ", "))
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COL\tHEADER\tTYPE\tCONF\tISSUES")
	for _, c := range columns {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			c.ColumnIndex, c.HeaderText, c.DetectedType, c.Confidence, strings.Join(c.Issues, "; "))
	}
	tw.Flush()

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tACCOUNT\tCLASS\tCONF\tREASON")
	for _, t := range totals {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n",
			t.RowIndex, t.AccountName, t.TotalType, t.Confidence, strings.Join(t.DetectionReasons, "; "))
	}
	tw.Flush()
}

// classifyDetailRows suggests a category for every row the detector did
// not flag as an aggregate. Flagged rows are excluded so their sums are
// never double-counted as detail.
func classifyDetailRows(out io.Writer, grid model.Grid, totals []model.TotalDetectionResult, exclude []int, opts detect.DetectionOptions, statement model.StatementDetection) int {
	skip := make(map[int]bool)
	for _, t := range totals {
		skip[t.RowIndex] = true
	}
	for _, row := range exclude {
		skip[row] = true
	}

	classifier := category.NewKeywordClassifier()

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tACCOUNT\tCATEGORY\tINFLOW\tCONF")

	classified := 0
	for row := opts.DataStartRow; row < len(grid); row++ {
		if skip[row] {
			continue
		}
		name := detect.AccountName(grid, row, opts.AccountColumn)
		if name == "" {
			continue
		}

		amount := firstAmount(grid, row)
		result := classifier.Classify(category.Input{
			AccountName:   name,
			Amount:        amount,
			StatementType: statement.PrimaryType,
		})

		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%.2f\n",
			row, name, result.SuggestedCategory, result.IsInflow, result.Confidence)
		classified++
	}
	tw.Flush()
	return classified
}

func firstAmount(grid model.Grid, row int) decimal.Decimal {
	if row >= len(grid) {
		return decimal.Zero
	}
	for _, cell := range grid[row] {
		if v, ok := model.ParseAmount(cell); ok {
			return v
		}
	}
	return decimal.Zero
}

func writeAuditTrail(logDir, path string, totals []model.TotalDetectionResult, classified int) error {
	session := uuid.NewString()
	now := time.Now()

	entries := []auditlog.Entry{{
		Timestamp: now,
		SessionID: session,
		Action:    "analyze",
		Details:   fmt.Sprintf("%s: %d total rows, %d detail rows classified", path, len(totals), classified),
		RowIndex:  -1,
	}}
	for _, t := range totals {
		entries = append(entries, auditlog.Entry{
			Timestamp:  now,
			SessionID:  session,
			Action:     "detect_total",
			Details:    fmt.Sprintf("%s [%s]", t.AccountName, t.TotalType),
			RowIndex:   t.RowIndex,
			Confidence: t.Confidence,
		})
	}

	if err := auditlog.Append(logDir, entries); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}
