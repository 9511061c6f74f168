package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

func rankNeeds() *domain.UserNeeds {
	return buildNeeds(
		map[string]int{"primary_care_visits": 4},
		[]string{"primary_care_visits"},
		map[string]string{"primary_care_visit": "200"},
	)
}

func copayPlan(name, premium, copay string) domain.PlanRecord {
	return domain.PlanRecord{
		PlanName:         name,
		BiweeklyPremium:  decPtr(premium),
		AnnualDeductible: decPtr("0"),
		OOPMax:           decPtr("6000"),
		BenefitRules: domain.BenefitRuleSet{
			"primary_care": copayRule(copay),
		},
	}
}

func TestRankAllPlans_SortsAscendingWithDenseRanks(t *testing.T) {
	records := []domain.PlanRecord{
		copayPlan("Expensive", "300", "25"),
		copayPlan("Cheap", "100", "25"),
		copayPlan("Middle", "200", "25"),
	}

	results := RankAllPlans(records, rankNeeds())
	require.Len(t, results, 3)

	assert.Equal(t, "Cheap", results[0].PlanName)
	assert.Equal(t, "Middle", results[1].PlanName)
	assert.Equal(t, "Expensive", results[2].PlanName)

	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
		if i > 0 {
			assert.False(t, r.TotalAnnualCost.LessThan(results[i-1].TotalAnnualCost),
				"results must be non-decreasing by total cost")
		}
	}
}

func TestRankAllPlans_StableTieBreakKeepsInputOrder(t *testing.T) {
	records := []domain.PlanRecord{
		copayPlan("Tie First", "150", "25"),
		copayPlan("Tie Second", "150", "25"),
		copayPlan("Tie Third", "150", "25"),
	}

	results := RankAllPlans(records, rankNeeds())
	require.Len(t, results, 3)

	assert.Equal(t, "Tie First", results[0].PlanName)
	assert.Equal(t, "Tie Second", results[1].PlanName)
	assert.Equal(t, "Tie Third", results[2].PlanName)
	assert.Equal(t, []int{1, 2, 3}, []int{results[0].Rank, results[1].Rank, results[2].Rank})
}

func TestRankAllPlans_MalformedPlanExcluded(t *testing.T) {
	malformed := copayPlan("No OOP Max", "50", "25")
	malformed.OOPMax = nil

	records := []domain.PlanRecord{
		copayPlan("Valid A", "100", "25"),
		malformed,
		copayPlan("Valid B", "200", "25"),
	}

	results := RankAllPlans(records, rankNeeds())
	require.Len(t, results, 2)

	assert.Equal(t, "Valid A", results[0].PlanName)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, "Valid B", results[1].PlanName)
	assert.Equal(t, 2, results[1].Rank)
}

func TestRankAllPlans_SimulationErrorExcludesOnlyThatPlan(t *testing.T) {
	broken := copayPlan("Negative Premium", "100", "25")
	broken.BiweeklyPremium = decPtr("-1")

	records := []domain.PlanRecord{
		broken,
		copayPlan("Survivor", "100", "25"),
	}

	results := RankAllPlans(records, rankNeeds())
	require.Len(t, results, 1)
	assert.Equal(t, "Survivor", results[0].PlanName)
	assert.Equal(t, 1, results[0].Rank)
}

func TestRankAllPlans_AllPlansFailIsEmptyNotError(t *testing.T) {
	records := []domain.PlanRecord{
		{PlanName: "Missing everything"},
		{PlanCode: "X-999"},
	}

	results := RankAllPlans(records, rankNeeds())
	assert.Empty(t, results)
}

func TestMedianOf(t *testing.T) {
	assert.True(t, medianOf([]decimal.Decimal{dec("1"), dec("2"), dec("3")}).Equal(dec("2")))
	assert.True(t, medianOf([]decimal.Decimal{dec("1"), dec("2"), dec("3"), dec("4")}).Equal(dec("2.5")))
	assert.True(t, medianOf(nil).IsZero())
}
