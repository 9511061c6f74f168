package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BenefitType identifies how a plan charges the member for a service category
type BenefitType string

const (
	BenefitCopay       BenefitType = "copay"
	BenefitCoinsurance BenefitType = "coinsurance"
	BenefitNotCovered  BenefitType = "not_covered"
	BenefitUnknown     BenefitType = "unknown"
)

// BenefitRule is the plan-specific policy for one service category.
// Exactly one interpretation of Value applies: a dollar amount per unit for
// copays, or a fraction of market price in [0,1] for coinsurance.
type BenefitRule struct {
	Type  BenefitType     `yaml:"type" json:"type"`
	Value decimal.Decimal `yaml:"value" json:"value"`
	Raw   string          `yaml:"raw,omitempty" json:"raw,omitempty"` // original scraped text, if any
}

// Validate checks the rule's value against its type
func (br BenefitRule) Validate() error {
	switch br.Type {
	case BenefitCopay:
		if br.Value.IsNegative() {
			return fmt.Errorf("copay amount cannot be negative: %s", br.Value)
		}
	case BenefitCoinsurance:
		if br.Value.IsNegative() || br.Value.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("coinsurance rate must be between 0 and 1: %s", br.Value)
		}
	case BenefitNotCovered, BenefitUnknown:
		// no numeric constraint; these carry no usable value
	default:
		return fmt.Errorf("unrecognized benefit type %q", br.Type)
	}
	return nil
}

// Chargeable reports whether the rule can produce a member cost
func (br BenefitRule) Chargeable() bool {
	return br.Type == BenefitCopay || br.Type == BenefitCoinsurance
}

// BenefitRuleSet maps a plan's own benefit vocabulary to rules. Keys use
// plan-specific wording; reconciling them with usage-profile keys is the
// resolver's job, not the rule set's.
type BenefitRuleSet map[string]BenefitRule

// PlanRecord is one scraped FEHB plan row. Premium, deductible and OOP max
// are pointers so the batch validator can tell "absent from the scrape"
// apart from a legitimate zero.
type PlanRecord struct {
	PlanName string `yaml:"plan_name" json:"plan_name"`
	PlanCode string `yaml:"plan_code" json:"plan_code"`
	Carrier  string `yaml:"carrier,omitempty" json:"carrier,omitempty"`

	BiweeklyPremium  *decimal.Decimal `yaml:"biweekly_premium" json:"biweekly_premium"`
	AnnualDeductible *decimal.Decimal `yaml:"annual_deductible" json:"annual_deductible"`
	OOPMax           *decimal.Decimal `yaml:"oop_max" json:"oop_max"`

	BenefitRules BenefitRuleSet `yaml:"benefit_rules" json:"benefit_rules"`

	// Brochure augmentation fields (populated by the tier-4 pipeline)
	BrochureURL  string `yaml:"brochure_url,omitempty" json:"brochure_url,omitempty"`
	Tier4RawText string `yaml:"tier_4_raw_text,omitempty" json:"tier_4_raw_text,omitempty"`
}

// RequiredFieldsMissing returns the names of required fields absent from
// this record. An empty slice means the plan is eligible for simulation.
func (pr *PlanRecord) RequiredFieldsMissing() []string {
	var missing []string
	if pr.PlanName == "" {
		missing = append(missing, "plan_name")
	}
	if pr.BiweeklyPremium == nil {
		missing = append(missing, "biweekly_premium")
	}
	if pr.AnnualDeductible == nil {
		missing = append(missing, "annual_deductible")
	}
	if pr.OOPMax == nil {
		missing = append(missing, "oop_max")
	}
	return missing
}

// Validate checks structural soundness of a complete plan record
func (pr *PlanRecord) Validate() error {
	if pr.BiweeklyPremium != nil && pr.BiweeklyPremium.IsNegative() {
		return fmt.Errorf("biweekly premium cannot be negative: %s", pr.BiweeklyPremium)
	}
	if pr.AnnualDeductible != nil && pr.AnnualDeductible.IsNegative() {
		return fmt.Errorf("annual deductible cannot be negative: %s", pr.AnnualDeductible)
	}
	if pr.OOPMax != nil && pr.OOPMax.IsNegative() {
		return fmt.Errorf("out-of-pocket maximum cannot be negative: %s", pr.OOPMax)
	}
	for key, rule := range pr.BenefitRules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("benefit rule %q: %w", key, err)
		}
	}
	return nil
}
