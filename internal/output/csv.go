package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

// CSVFormatter writes the ranked results table, one row per plan.
// Per-service cost columns are derived from whatever keys appeared in the
// usage breakdowns: a new service in the profile becomes a new cost_<key>
// column with no code change.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(results []domain.PlanResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	serviceKeys := collectServiceKeys(results)

	header := []string{
		"rank", "plan_name", "plan_code", "carrier",
		"biweekly_premium", "annual_deductible", "oop_max",
		"total_annual_cost", "premium_cost_annual", "medical_drug_spend",
		"variable_cost_raw", "deductible_paid",
	}
	for _, key := range serviceKeys {
		header = append(header, "cost_"+key)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Rank),
			r.PlanName,
			r.PlanCode,
			r.Carrier,
			r.BiweeklyPremium.StringFixed(2),
			r.AnnualDeductible.StringFixed(2),
			oopMaxString(r.OOPMax),
			r.TotalAnnualCost.StringFixed(2),
			r.PremiumCost.StringFixed(2),
			r.MedicalDrugSpend.StringFixed(2),
			r.VariableCostRaw.StringFixed(2),
			r.DeductiblePaid.StringFixed(2),
		}
		for _, key := range serviceKeys {
			if amount, ok := r.UsageBreakdown.Get(key); ok {
				row = append(row, amount.StringFixed(2))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// collectServiceKeys unions breakdown keys across all results, preserving
// the order of first appearance so column order tracks the usage profile.
func collectServiceKeys(results []domain.PlanResult) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, r := range results {
		if r.UsageBreakdown == nil {
			continue
		}
		for _, key := range r.UsageBreakdown.Keys() {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	return keys
}

func oopMaxString(oopMax *decimal.Decimal) string {
	if oopMax == nil {
		return ""
	}
	return oopMax.StringFixed(2)
}
