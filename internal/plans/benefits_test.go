package plans

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.ErrorLevel)
	os.Exit(m.Run())
}

func TestParseBenefitValue(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantType  domain.BenefitType
		wantValue string
	}{
		{"copay with label", "$30 Copayment", domain.BenefitCopay, "30"},
		{"copay with cents", "$12.50 copay", domain.BenefitCopay, "12.50"},
		{"coinsurance", "15% Coinsurance", domain.BenefitCoinsurance, "0.15"},
		{"coinsurance decimal", "12.5% coinsurance", domain.BenefitCoinsurance, "0.125"},
		{"member pays nothing", "Member Pays Nothing", domain.BenefitCopay, "0"},
		{"no charge", "No charge for this service", domain.BenefitCopay, "0"},
		{"not covered", "Not Covered", domain.BenefitNotCovered, ""},
		{"member pays all", "Member Pays All charges", domain.BenefitNotCovered, ""},
		{"percent beats dollar", "25% of the $500 allowance", domain.BenefitCoinsurance, "0.25"},
		{"unparseable", "See brochure for details", domain.BenefitUnknown, ""},
		{"empty", "", domain.BenefitUnknown, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule := ParseBenefitValue(tc.text)
			assert.Equal(t, tc.wantType, rule.Type)
			if tc.wantValue != "" {
				assert.True(t, rule.Value.Equal(decimal.RequireFromString(tc.wantValue)),
					"want %s, got %s", tc.wantValue, rule.Value)
			}
			assert.Equal(t, tc.text, rule.Raw)
		})
	}
}
