package calculation

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

// quantitySuffixes are the recognized usage-key suffixes that carry unit
// semantics. Stripping one yields the base service name plans tend to use.
var quantitySuffixes = []string{"_visits", "_monthly", "_surgeries"}

// fallbackChains declares, per usage key, the ordered benefit-key
// candidates to try when neither an exact nor a base-key match hits.
// Plans label therapy benefits inconsistently (a dedicated speech therapy
// line, a combined therapy line, or a rehabilitation umbrella), so each
// chain walks from most to least specific. Adding a new service family is
// a data change here, not a new code path.
var fallbackChains = map[string][]string{
	"speech_therapy_visits": {
		"speech_therapy",
		"therapy_services",
		"rehabilitation_services",
		"habilitation_services",
	},
	"occupational_therapy_visits": {
		"occupational_therapy",
		"ot_therapy",
		"therapy_services",
		"rehabilitation_services",
		"habilitation_services",
	},
	"physical_therapy_visits": {
		"physical_therapy",
		"pt_therapy",
		"therapy_services",
		"rehabilitation_services",
		"habilitation_services",
	},
}

// prefixFallback routes whole key families (drug tiers) to a single
// umbrella benefit when no more specific rule exists.
type prefixFallback struct {
	prefix     string
	candidates []string
}

var prefixFallbacks = []prefixFallback{
	{prefix: "tier_1_", candidates: []string{"generic_drug"}},
	{prefix: "tier_4_", candidates: []string{"specialty_drug"}},
}

// NormalizeBenefitKey lowercases a scraped benefit label and collapses
// spaces and hyphens to underscores so lookups survive carrier formatting
// differences ("Speech Therapy" vs "speech_therapy").
func NormalizeBenefitKey(key string) string {
	normalized := strings.ToLower(key)
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	var b strings.Builder
	for _, r := range normalized {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveBenefitRule finds the applicable benefit rule for a usage-profile
// key. Matching order, first match wins: exact key, base key with the
// quantity suffix stripped, declared fallback chain, drug-tier prefix
// fallback. Returns the matched rule, the benefit key it matched under,
// and whether anything matched at all. A miss is the caller's policy
// decision ($0 and a warning), never an error.
func ResolveBenefitRule(usageKey string, rules domain.BenefitRuleSet) (domain.BenefitRule, string, bool) {
	if len(rules) == 0 {
		return domain.BenefitRule{}, "", false
	}

	normalized := make(map[string]string, len(rules))
	for key := range rules {
		normalized[NormalizeBenefitKey(key)] = key
	}

	lookup := func(candidate string) (domain.BenefitRule, string, bool) {
		if original, ok := normalized[NormalizeBenefitKey(candidate)]; ok {
			return rules[original], original, true
		}
		return domain.BenefitRule{}, "", false
	}

	if rule, key, ok := lookup(usageKey); ok {
		logrus.Debugf("benefit match for %q: exact (%s)", usageKey, key)
		return rule, key, true
	}

	if base := stripQuantitySuffix(usageKey); base != usageKey {
		if rule, key, ok := lookup(base); ok {
			logrus.Debugf("benefit match for %q: base key %q", usageKey, key)
			return rule, key, true
		}
	}

	if chain, ok := fallbackChains[usageKey]; ok {
		for _, candidate := range chain {
			if rule, key, ok := lookup(candidate); ok {
				logrus.Infof("using fallback benefit rule %q for %q", key, usageKey)
				return rule, key, true
			}
		}
	}

	for _, pf := range prefixFallbacks {
		if !strings.HasPrefix(usageKey, pf.prefix) {
			continue
		}
		for _, candidate := range pf.candidates {
			if rule, key, ok := lookup(candidate); ok {
				logrus.Infof("using %q benefit rule for %q", key, usageKey)
				return rule, key, true
			}
		}
	}

	return domain.BenefitRule{}, "", false
}

func stripQuantitySuffix(usageKey string) string {
	for _, suffix := range quantitySuffixes {
		if strings.HasSuffix(usageKey, suffix) {
			return strings.TrimSuffix(usageKey, suffix)
		}
	}
	return usageKey
}
