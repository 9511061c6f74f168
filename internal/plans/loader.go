package plans

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/fehbgo/internal/domain"
)

// rawPlanRow mirrors one scraped plan record on disk. Benefit rules are
// kept as raw nodes because the scrape emits either structured
// {type, value} mappings or untouched benefit strings, and both must load.
type rawPlanRow struct {
	PlanName         string               `yaml:"plan_name" json:"plan_name"`
	PlanCode         string               `yaml:"plan_code" json:"plan_code"`
	Carrier          string               `yaml:"carrier" json:"carrier"`
	BiweeklyPremium  *decimal.Decimal     `yaml:"biweekly_premium" json:"biweekly_premium"`
	AnnualDeductible *decimal.Decimal     `yaml:"annual_deductible" json:"annual_deductible"`
	OOPMax           *decimal.Decimal     `yaml:"oop_max" json:"oop_max"`
	BenefitRules     map[string]yaml.Node `yaml:"benefit_rules" json:"benefit_rules"`
	BrochureURL      string               `yaml:"brochure_url" json:"brochure_url"`
	Tier4RawText     string               `yaml:"tier_4_raw_text" json:"tier_4_raw_text"`
}

// LoadPlans reads a YAML or JSON document of scraped plan rows. Row-level
// problems (an unparseable benefit entry, a missing optional field) are
// tolerated per row and never corrupt the rest of the file; only an
// unreadable or structurally invalid document is an error.
func LoadPlans(filename string) ([]domain.PlanRecord, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read plans file %s: %w", filename, err)
	}

	var rows []rawPlanRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse plans file %s: %w", filename, err)
	}

	records := make([]domain.PlanRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, convertRow(i, row))
	}

	logrus.Infof("loaded %d plan records from %s", len(records), filename)
	return records, nil
}

func convertRow(index int, row rawPlanRow) domain.PlanRecord {
	record := domain.PlanRecord{
		PlanName:         row.PlanName,
		PlanCode:         row.PlanCode,
		Carrier:          row.Carrier,
		BiweeklyPremium:  row.BiweeklyPremium,
		AnnualDeductible: row.AnnualDeductible,
		OOPMax:           row.OOPMax,
		BrochureURL:      row.BrochureURL,
		Tier4RawText:     row.Tier4RawText,
	}

	if len(row.BenefitRules) > 0 {
		record.BenefitRules = make(domain.BenefitRuleSet, len(row.BenefitRules))
		for key, node := range row.BenefitRules {
			record.BenefitRules[key] = decodeBenefitNode(index, key, node)
		}
	}

	return record
}

// decodeBenefitNode accepts either a structured rule mapping or a scraped
// benefit string. A node that decodes as neither becomes BenefitUnknown
// rather than failing the row.
func decodeBenefitNode(rowIndex int, key string, node yaml.Node) domain.BenefitRule {
	switch node.Kind {
	case yaml.ScalarNode:
		return ParseBenefitValue(node.Value)
	case yaml.MappingNode:
		var rule domain.BenefitRule
		if err := node.Decode(&rule); err != nil {
			logrus.Warnf("plan row %d: benefit rule %q did not decode: %v", rowIndex, key, err)
			return domain.BenefitRule{Type: domain.BenefitUnknown}
		}
		return rule
	default:
		logrus.Warnf("plan row %d: benefit rule %q has unsupported shape", rowIndex, key)
		return domain.BenefitRule{Type: domain.BenefitUnknown}
	}
}

// LoadBrochureText returns extracted brochure text for a plan code from a
// directory of <plan_code>.txt files, or "" when none exists.
func LoadBrochureText(dir, planCode string) string {
	if dir == "" || planCode == "" {
		return ""
	}
	data, err := os.ReadFile(fmt.Sprintf("%s/%s.txt", dir, planCode))
	if err != nil {
		return ""
	}
	return string(data)
}
