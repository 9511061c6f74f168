package calculation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

// RankAllPlans simulates every plan against the same user needs and
// returns results sorted ascending by total annual cost with dense ranks
// assigned 1..N. Plans missing required fields, or whose simulation fails,
// are logged and excluded; the batch never fails as a whole. An empty
// result slice is a valid outcome meaning nothing survived.
func RankAllPlans(plans []domain.PlanRecord, needs *domain.UserNeeds) []domain.PlanResult {
	logrus.Infof("starting batch cost calculation for %d plans", len(plans))

	results := make([]domain.PlanResult, 0, len(plans))

	for i := range plans {
		plan := &plans[i]

		if missing := plan.RequiredFieldsMissing(); len(missing) > 0 {
			logrus.Warnf("skipping plan %q: missing required fields: %s",
				planIdentity(plan), strings.Join(missing, ", "))
			continue
		}

		calculator := NewCostCalculator(needs, plan)
		result, err := calculator.CalculateTotalCost()
		if err != nil {
			logrus.Errorf("error calculating costs for plan %q: %v", planIdentity(plan), err)
			continue
		}

		results = append(results, *result)
	}

	if len(results) == 0 {
		logrus.Error("no plans were successfully processed")
		return results
	}

	// Stable sort: equal-cost plans keep their original input order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalAnnualCost.LessThan(results[j].TotalAnnualCost)
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	logBatchSummary(results)

	return results
}

func planIdentity(plan *domain.PlanRecord) string {
	if plan.PlanName != "" {
		return plan.PlanName
	}
	if plan.PlanCode != "" {
		return plan.PlanCode
	}
	return "unknown"
}

// logBatchSummary emits advisory statistics over total annual cost
func logBatchSummary(results []domain.PlanResult) {
	totals := make([]decimal.Decimal, len(results))
	sum := decimal.Zero
	for i, r := range results {
		totals[i] = r.TotalAnnualCost
		sum = sum.Add(r.TotalAnnualCost)
	}

	// results are already sorted ascending by total cost
	min := totals[0]
	max := totals[len(totals)-1]
	mean := sum.Div(decimal.NewFromInt(int64(len(totals))))
	median := medianOf(totals)

	logrus.Infof("cost calculation summary: plans=%d min=%s max=%s median=%s mean=%s",
		len(results), min.StringFixed(2), max.StringFixed(2),
		median.StringFixed(2), mean.StringFixed(2))
}

// medianOf computes the median of an ascending-sorted slice
func medianOf(sorted []decimal.Decimal) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
}
