package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

// Formatter renders a ranked result set in one output format
type Formatter interface {
	Name() string
	Format(results []domain.PlanResult) ([]byte, error)
}

// GetFormatterByName returns the formatter for a format name, or nil
func GetFormatterByName(name string) Formatter {
	switch name {
	case "csv":
		return CSVFormatter{}
	case "console":
		return ConsoleFormatter{TopN: 10}
	case "json":
		return JSONFormatter{}
	}
	return nil
}

// ConsoleFormatter renders the top-N ranked plans as a readable report
type ConsoleFormatter struct {
	TopN int
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results []domain.PlanResult) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, strings.Repeat("=", 80))
	fmt.Fprintln(buf, "RANKED FEHB PLANS BY TOTAL ANNUAL COST")
	fmt.Fprintln(buf, strings.Repeat("=", 80))

	if len(results) == 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "No plans were successfully analyzed.")
		return buf.Bytes(), nil
	}

	limit := len(results)
	if c.TopN > 0 && c.TopN < limit {
		limit = c.TopN
	}

	for _, r := range results[:limit] {
		fmt.Fprintf(buf, "\n#%d: %s", r.Rank, r.PlanName)
		if r.PlanCode != "" {
			fmt.Fprintf(buf, " (%s)", r.PlanCode)
		}
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "  Total Annual Cost: %s\n", FormatCurrency(r.TotalAnnualCost))
		fmt.Fprintf(buf, "    - Premium:       %s\n", FormatCurrency(r.PremiumCost))
		fmt.Fprintf(buf, "    - Medical/Drug:  %s\n", FormatCurrency(r.MedicalDrugSpend))
		fmt.Fprintf(buf, "  Deductible Paid:   %s\n", FormatCurrency(r.DeductiblePaid))

		if r.UsageBreakdown != nil {
			for _, key := range r.UsageBreakdown.Keys() {
				amount, _ := r.UsageBreakdown.Get(key)
				fmt.Fprintf(buf, "  %-24s %s\n", key+":", FormatCurrency(amount))
			}
		}
	}

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	fmt.Fprintf(buf, "%d plans analyzed\n", len(results))

	return buf.Bytes(), nil
}

// JSONFormatter renders the full ranked result set as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results []domain.PlanResult) ([]byte, error) {
	type jsonResult struct {
		domain.PlanResult
		UsageBreakdown map[string]decimal.Decimal `json:"usage_breakdown,omitempty"`
	}

	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		jr := jsonResult{PlanResult: r}
		if r.UsageBreakdown != nil {
			jr.UsageBreakdown = make(map[string]decimal.Decimal, r.UsageBreakdown.Len())
			for _, key := range r.UsageBreakdown.Keys() {
				amount, _ := r.UsageBreakdown.Get(key)
				jr.UsageBreakdown[key] = amount
			}
		}
		out = append(out, jr)
	}

	return json.MarshalIndent(out, "", "  ")
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
