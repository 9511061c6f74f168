package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

// PayPeriodsPerYear is the federal bi-weekly pay schedule
const PayPeriodsPerYear = 26

// Dollar results are rounded to cents at assembly; intermediate math stays exact
const cents = int32(2)

// CostCalculator estimates the total annual cost of one FEHB plan for one
// usage profile. It owns its deductible state for the duration of a single
// calculation; a fresh calculator is created per plan so no state ever
// crosses plan boundaries.
type CostCalculator struct {
	needs *domain.UserNeeds
	plan  *domain.PlanRecord

	deductible  *domain.DeductibleState
	diagnostics []domain.Diagnostic
}

// NewCostCalculator creates a calculator for one plan and one usage profile
func NewCostCalculator(needs *domain.UserNeeds, plan *domain.PlanRecord) *CostCalculator {
	deductible := decimal.Zero
	if plan.AnnualDeductible != nil {
		deductible = *plan.AnnualDeductible
	}
	return &CostCalculator{
		needs:      needs,
		plan:       plan,
		deductible: domain.NewDeductibleState(deductible),
	}
}

// CalculatePremiumCost annualizes the bi-weekly premium over 26 pay periods
func (cc *CostCalculator) CalculatePremiumCost() decimal.Decimal {
	premium := decimal.Zero
	if cc.plan.BiweeklyPremium != nil {
		premium = *cc.plan.BiweeklyPremium
	}
	annual := premium.Mul(decimal.NewFromInt(PayPeriodsPerYear))
	logrus.Debugf("premium: %s x %d = %s", premium, PayPeriodsPerYear, annual)
	return annual
}

// ApplyBenefitRule computes the member cost for one service under one
// benefit rule, updating the calculator's deductible state.
//
// Copays are a fixed amount per unit and never touch the deductible.
// Coinsurance pays the full market price into the deductible until it is
// met, then the coinsurance rate on whatever market cost is left.
func (cc *CostCalculator) ApplyBenefitRule(rule domain.BenefitRule, marketCost decimal.Decimal, quantity int, serviceName string) decimal.Decimal {
	if quantity <= 0 || !marketCost.IsPositive() {
		logrus.Debugf("%s: no cost (zero quantity or market price)", serviceName)
		return decimal.Zero
	}

	qty := decimal.NewFromInt(int64(quantity))

	switch rule.Type {
	case domain.BenefitCopay:
		total := rule.Value.Mul(qty)
		logrus.Debugf("%s (copay): %s x %d = %s", serviceName, rule.Value, quantity, total)
		return total

	case domain.BenefitCoinsurance:
		totalMarket := marketCost.Mul(qty)
		deductiblePortion := cc.deductible.Absorb(totalMarket)
		leftover := totalMarket.Sub(deductiblePortion)
		coinsurancePortion := leftover.Mul(rule.Value)
		total := deductiblePortion.Add(coinsurancePortion)
		logrus.Debugf("%s (coinsurance %s): market=%s deductible=%s coinsurance=%s total=%s",
			serviceName, rule.Value, totalMarket, deductiblePortion, coinsurancePortion, total)
		return total

	default:
		logrus.Warnf("%s: benefit type %q is not costable, treating as $0", serviceName, rule.Type)
		cc.diagnostics = append(cc.diagnostics, domain.Diagnostic{
			Level:   domain.DiagWarning,
			Service: serviceName,
			Message: fmt.Sprintf("benefit type %q is not costable", rule.Type),
		})
		return decimal.Zero
	}
}

// CalculateUsageCost walks the usage profile in insertion order and prices
// every service. Iteration order is load-bearing: the shared deductible is
// consumed first-come-first-served, so the same profile always produces
// the same split between deductible and coinsurance dollars.
func (cc *CostCalculator) CalculateUsageCost() *domain.CostBreakdown {
	breakdown := domain.NewCostBreakdown()

	for _, usageKey := range cc.needs.UsageProfile.Keys() {
		quantity, _ := cc.needs.UsageProfile.Get(usageKey)
		if quantity <= 0 {
			continue
		}

		costKey := MapUsageToStandardCostKey(usageKey)
		if IsMonthlyUsageKey(usageKey) {
			// Monthly quantities cover one month; a year needs twelve
			quantity *= 12
		}

		marketCost, ok := cc.needs.StandardCosts[costKey]
		if !ok || !marketCost.IsPositive() {
			logrus.Warnf("no market cost found for %q (from usage %q), skipping cost calculation", costKey, usageKey)
			cc.diagnostics = append(cc.diagnostics, domain.Diagnostic{
				Level:   domain.DiagWarning,
				Service: usageKey,
				Message: fmt.Sprintf("no market cost for %q", costKey),
			})
			continue
		}

		rule, matchedKey, found := ResolveBenefitRule(usageKey, cc.plan.BenefitRules)
		if !found {
			logrus.Warnf("no benefit rule found for %q, assuming $0 cost", usageKey)
			cc.diagnostics = append(cc.diagnostics, domain.Diagnostic{
				Level:   domain.DiagWarning,
				Service: usageKey,
				Message: "no benefit rule matched",
			})
			breakdown.Set(usageKey, decimal.Zero)
			continue
		}

		cost := cc.ApplyBenefitRule(rule, marketCost, quantity, usageKey)
		logrus.Debugf("%s: matched benefit %q, cost %s", usageKey, matchedKey, cost)
		breakdown.Set(usageKey, cost)
	}

	return breakdown
}

// ApplyOOPCap caps variable costs at the plan's out-of-pocket maximum.
// A nil OOP max means the plan is uncapped.
func (cc *CostCalculator) ApplyOOPCap(variableCosts decimal.Decimal) decimal.Decimal {
	if cc.plan.OOPMax == nil {
		return variableCosts
	}
	oopMax := *cc.plan.OOPMax
	if variableCosts.GreaterThan(oopMax) {
		logrus.Infof("OOP cap applied: %s capped at %s (saved %s)",
			variableCosts.StringFixed(2), oopMax.StringFixed(2), variableCosts.Sub(oopMax).StringFixed(2))
		return oopMax
	}
	return variableCosts
}

// CalculateTotalCost runs the full simulation and assembles the result.
// Data-quality gaps (missing prices, unmatched rules) degrade to $0 with a
// diagnostic; only structurally invalid plan data returns an error.
func (cc *CostCalculator) CalculateTotalCost() (*domain.PlanResult, error) {
	if err := cc.plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan %q: %w", cc.plan.PlanName, err)
	}

	// Fresh deductible per calculation, never carried across runs
	deductible := decimal.Zero
	if cc.plan.AnnualDeductible != nil {
		deductible = *cc.plan.AnnualDeductible
	}
	cc.deductible = domain.NewDeductibleState(deductible)

	premiumCost := cc.CalculatePremiumCost()
	breakdown := cc.CalculateUsageCost()
	variableCostRaw := breakdown.Total()
	variableCostCapped := cc.ApplyOOPCap(variableCostRaw)
	totalAnnualCost := premiumCost.Add(variableCostCapped)

	rounded := domain.NewCostBreakdown()
	for _, key := range breakdown.Keys() {
		amount, _ := breakdown.Get(key)
		rounded.Set(key, amount.Round(cents))
	}

	result := &domain.PlanResult{
		PlanName:         cc.plan.PlanName,
		PlanCode:         cc.plan.PlanCode,
		Carrier:          cc.plan.Carrier,
		BiweeklyPremium:  derefOrZero(cc.plan.BiweeklyPremium),
		AnnualDeductible: deductible,
		OOPMax:           cc.plan.OOPMax,
		TotalAnnualCost:  totalAnnualCost.Round(cents),
		PremiumCost:      premiumCost.Round(cents),
		MedicalDrugSpend: variableCostCapped.Round(cents),
		VariableCostRaw:  variableCostRaw.Round(cents),
		DeductiblePaid:   cc.deductible.Paid.Round(cents),
		UsageBreakdown:   rounded,
		Diagnostics:      cc.diagnostics,
	}

	logrus.Infof("plan %s | total %s | premium %s | medical/drug %s",
		result.PlanName, result.TotalAnnualCost.StringFixed(2),
		result.PremiumCost.StringFixed(2), result.MedicalDrugSpend.StringFixed(2))

	return result, nil
}

func derefOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
