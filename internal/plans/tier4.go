package plans

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

// Tier-4 information lives in plan brochures, not the comparison table.
// The PDF collaborator hands us extracted text; this file finds the
// specialty-drug section in it and turns the wording into a rule.

const tier4ContextRadius = 500

var tier4Keywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tier\s*4`),
	regexp.MustCompile(`(?i)tier\s*four`),
	regexp.MustCompile(`(?i)specialty\s*drug`),
	regexp.MustCompile(`(?i)specialty\s*medication`),
	regexp.MustCompile(`(?i)high[- ]cost\s*specialty`),
	regexp.MustCompile(`(?i)high[- ]cost\s*drug`),
}

// Tier4Coverage is the outcome of scanning one brochure's text
type Tier4Coverage struct {
	Found   bool
	Rule    domain.BenefitRule
	RawText string // context the rule was parsed from
}

// ParseCoverageRule extracts a copay or coinsurance rule from a snippet of
// brochure text. A dollar figure counts as a copay only when no percent
// sign precedes it; "pay 25% of the $500 cost" is coinsurance, not a $500
// copay.
func ParseCoverageRule(contextText string) domain.BenefitRule {
	if m := copayPattern.FindStringIndex(contextText); m != nil {
		if !strings.Contains(contextText[:m[0]], "%") {
			sub := copayPattern.FindStringSubmatch(contextText)
			if amount, err := decimal.NewFromString(sub[1]); err == nil {
				return domain.BenefitRule{Type: domain.BenefitCopay, Value: amount}
			}
		}
	}

	if m := coinsurancePattern.FindStringSubmatch(contextText); m != nil {
		if percentage, err := decimal.NewFromString(m[1]); err == nil {
			return domain.BenefitRule{
				Type:  domain.BenefitCoinsurance,
				Value: percentage.Div(decimal.NewFromInt(100)),
			}
		}
	}

	return domain.BenefitRule{Type: domain.BenefitUnknown}
}

// FindTier4Coverage scans brochure text for tier-4 / specialty-drug
// keywords and parses a coverage rule from the surrounding context.
func FindTier4Coverage(text string) Tier4Coverage {
	if text == "" {
		return Tier4Coverage{}
	}

	for _, keyword := range tier4Keywords {
		loc := keyword.FindStringIndex(text)
		if loc == nil {
			continue
		}

		start := loc[0] - tier4ContextRadius
		if start < 0 {
			start = 0
		}
		end := loc[1] + tier4ContextRadius
		if end > len(text) {
			end = len(text)
		}
		context := text[start:end]

		rule := ParseCoverageRule(context)
		rule.Raw = context
		logrus.Infof("found tier 4 coverage: %s %s", rule.Type, rule.Value)

		return Tier4Coverage{Found: true, Rule: rule, RawText: context}
	}

	logrus.Warn("tier 4 coverage not found in brochure text")
	return Tier4Coverage{}
}

// AugmentPlansWithTier4 merges specialty-drug rules parsed from brochure
// text into plans that lack one. textForPlan supplies the extracted
// brochure text per plan (empty string when no brochure is available).
// Augmentation failures never drop a plan; the plan simply keeps whatever
// rules it already had.
func AugmentPlansWithTier4(records []domain.PlanRecord, textForPlan func(*domain.PlanRecord) string) {
	logrus.Infof("starting tier 4 augmentation for %d plans", len(records))

	successful, failed := 0, 0

	for i := range records {
		plan := &records[i]

		if _, exists := plan.BenefitRules["specialty_drug"]; exists {
			continue
		}

		text := textForPlan(plan)
		if text == "" {
			logrus.Warnf("no brochure text for plan %s (%s)", plan.PlanName, plan.PlanCode)
			failed++
			continue
		}

		coverage := FindTier4Coverage(text)
		if !coverage.Found || !coverage.Rule.Chargeable() {
			failed++
			continue
		}

		if plan.BenefitRules == nil {
			plan.BenefitRules = make(domain.BenefitRuleSet)
		}
		plan.BenefitRules["specialty_drug"] = coverage.Rule
		plan.Tier4RawText = coverage.RawText
		successful++
	}

	logrus.Infof("tier 4 augmentation complete: %d successful, %d without usable coverage", successful, failed)
}
