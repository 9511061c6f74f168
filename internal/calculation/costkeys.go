package calculation

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// MapUsageToStandardCostKey derives the standard-cost key for a usage
// key. Usage keys end in a count indicator; cost keys name one unit.
//
//	primary_care_visits    -> primary_care_visit
//	inpatient_surgeries    -> inpatient_surgery
//	tier_1_generics_monthly -> tier_1_generic_cost
//	tier_4_specialty_monthly -> tier_4_specialty_cost
func MapUsageToStandardCostKey(usageKey string) string {
	if strings.HasSuffix(usageKey, "_monthly") {
		base := strings.TrimSuffix(usageKey, "_monthly")
		base = strings.TrimSuffix(base, "s")
		return base + "_cost"
	}
	if strings.HasSuffix(usageKey, "_visits") {
		return strings.TrimSuffix(usageKey, "_visits") + "_visit"
	}
	if strings.HasSuffix(usageKey, "_surgeries") {
		return strings.TrimSuffix(usageKey, "_surgeries") + "_surgery"
	}
	logrus.Warnf("unexpected usage key format %q: expected a key ending in _visits, _monthly, or _surgeries", usageKey)
	return usageKey
}

// IsMonthlyUsageKey reports whether a usage key is monthly-denominated,
// meaning its quantity must be annualized (x12 units) before costing.
func IsMonthlyUsageKey(usageKey string) bool {
	return strings.HasSuffix(usageKey, "_monthly")
}
