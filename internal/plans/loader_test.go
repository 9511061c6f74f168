package plans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

const samplePlansYAML = `
- plan_name: Sample HMO Plan A
  plan_code: HMO-001
  carrier: Sample Carrier
  biweekly_premium: 150.00
  annual_deductible: 0
  oop_max: 6000
  benefit_rules:
    primary_care:
      type: copay
      value: 20
    specialist: "$40 Copayment"
    er_visits: "30% Coinsurance"
- plan_name: Incomplete Plan
  plan_code: PPO-002
  biweekly_premium: 250.00
  benefit_rules:
    primary_care: "Not Covered"
`

func TestLoadPlans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePlansYAML), 0o644))

	records, err := LoadPlans(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Sample HMO Plan A", first.PlanName)
	assert.Equal(t, "HMO-001", first.PlanCode)
	require.NotNil(t, first.BiweeklyPremium)
	assert.True(t, first.BiweeklyPremium.Equal(decimal.RequireFromString("150")))
	require.NotNil(t, first.OOPMax)
	assert.Empty(t, first.RequiredFieldsMissing())

	// structured rule
	primary := first.BenefitRules["primary_care"]
	assert.Equal(t, domain.BenefitCopay, primary.Type)
	assert.True(t, primary.Value.Equal(decimal.NewFromInt(20)))

	// scraped string rules parsed on load
	specialist := first.BenefitRules["specialist"]
	assert.Equal(t, domain.BenefitCopay, specialist.Type)
	assert.True(t, specialist.Value.Equal(decimal.NewFromInt(40)))

	er := first.BenefitRules["er_visits"]
	assert.Equal(t, domain.BenefitCoinsurance, er.Type)
	assert.True(t, er.Value.Equal(decimal.RequireFromString("0.3")))

	// missing optional fields on one row never corrupt its siblings
	second := records[1]
	assert.Nil(t, second.AnnualDeductible)
	assert.Nil(t, second.OOPMax)
	assert.ElementsMatch(t, []string{"annual_deductible", "oop_max"}, second.RequiredFieldsMissing())
	assert.Equal(t, domain.BenefitNotCovered, second.BenefitRules["primary_care"].Type)
}

func TestLoadPlans_MissingFile(t *testing.T) {
	_, err := LoadPlans(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadBrochureText(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "HMO-001.txt"), []byte("brochure body"), 0o644))

	assert.Equal(t, "brochure body", LoadBrochureText(dir, "HMO-001"))
	assert.Empty(t, LoadBrochureText(dir, "MISSING"))
	assert.Empty(t, LoadBrochureText("", "HMO-001"))
}
