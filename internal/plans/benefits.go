// Package plans ingests scraped FEHB plan records: it parses benefit text
// into structured rules, merges tier-4 brochure findings, and loads plan
// row documents produced by the scraping collaborators.
package plans

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

var (
	copayPattern       = regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`)
	coinsurancePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// ParseBenefitValue parses a scraped benefit string into a rule.
//
//	"$30 Copayment"       -> copay 30
//	"15% Coinsurance"     -> coinsurance 0.15
//	"Member Pays Nothing" -> copay 0
//	"Not Covered"         -> not_covered
//
// Anything unrecognized comes back as BenefitUnknown with the raw text
// preserved for later inspection.
func ParseBenefitValue(benefitText string) domain.BenefitRule {
	text := strings.TrimSpace(benefitText)
	if text == "" {
		return domain.BenefitRule{Type: domain.BenefitUnknown, Raw: benefitText}
	}

	lower := strings.ToLower(text)

	if strings.Contains(lower, "nothing") || strings.Contains(lower, "no charge") {
		return domain.BenefitRule{Type: domain.BenefitCopay, Value: decimal.Zero, Raw: benefitText}
	}
	if strings.Contains(lower, "not covered") || strings.Contains(lower, "member pays all") {
		return domain.BenefitRule{Type: domain.BenefitNotCovered, Raw: benefitText}
	}

	if m := copayPattern.FindStringSubmatch(text); m != nil && !strings.Contains(text, "%") {
		amount, err := decimal.NewFromString(m[1])
		if err == nil {
			return domain.BenefitRule{Type: domain.BenefitCopay, Value: amount, Raw: benefitText}
		}
	}

	if m := coinsurancePattern.FindStringSubmatch(text); m != nil {
		percentage, err := decimal.NewFromString(m[1])
		if err == nil {
			return domain.BenefitRule{
				Type:  domain.BenefitCoinsurance,
				Value: percentage.Div(decimal.NewFromInt(100)),
				Raw:   benefitText,
			}
		}
	}

	logrus.Warnf("could not parse benefit: %q", benefitText)
	return domain.BenefitRule{Type: domain.BenefitUnknown, Raw: benefitText}
}
