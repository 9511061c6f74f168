package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/fehbgo/internal/calculation"
	"github.com/rgehrsitz/fehbgo/internal/domain"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadUserNeeds loads and validates the usage/cost configuration from a
// YAML or JSON file. Errors here are fatal to the run: a malformed needs
// document means every downstream number would be wrong.
func (ip *InputParser) LoadUserNeeds(filename string) (*domain.UserNeeds, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read user needs file %s: %w", filename, err)
	}

	var needs domain.UserNeeds
	if err := yaml.Unmarshal(data, &needs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	if err := ip.ValidateUserNeeds(&needs); err != nil {
		return nil, fmt.Errorf("user needs validation failed: %w", err)
	}

	// Pairing gaps are warnings, not errors: the affected service simply
	// contributes $0 at simulation time
	for _, msg := range ValidateUsageCostPairing(&needs) {
		logrus.Warn(msg)
	}

	return &needs, nil
}

// ValidateUserNeeds validates the loaded usage/cost configuration
func (ip *InputParser) ValidateUserNeeds(needs *domain.UserNeeds) error {
	if needs.UsageProfile == nil || needs.UsageProfile.Len() == 0 {
		return fmt.Errorf("usage_profile cannot be empty: specify at least one service usage (e.g. primary_care_visits: 4)")
	}
	if len(needs.StandardCosts) == 0 {
		return fmt.Errorf("standard_costs cannot be empty: specify market rates for services (e.g. primary_care_visit: 200)")
	}

	for _, key := range needs.UsageProfile.Keys() {
		quantity, _ := needs.UsageProfile.Get(key)
		if quantity < 0 {
			return fmt.Errorf("invalid value for %q in usage_profile: %d (values must be non-negative)", key, quantity)
		}
	}
	for key, amount := range needs.StandardCosts {
		if amount.IsNegative() {
			return fmt.Errorf("invalid value for %q in standard_costs: %s (values must be non-negative)", key, amount)
		}
	}

	return nil
}

// ValidateUsageCostPairing reports usage-profile entries whose derived
// standard-cost key is absent from the cost table.
func ValidateUsageCostPairing(needs *domain.UserNeeds) []string {
	var warnings []string
	for _, usageKey := range needs.UsageProfile.Keys() {
		costKey := calculation.MapUsageToStandardCostKey(usageKey)
		if _, ok := needs.StandardCosts[costKey]; !ok {
			warnings = append(warnings,
				fmt.Sprintf("missing standard cost for %q: expected %q in standard_costs", usageKey, costKey))
		}
	}
	return warnings
}

// AppConfig holds run-level settings for the analyzer pipeline
type AppConfig struct {
	PlansFile       string `yaml:"plans_file" json:"plans_file"`
	BrochureTextDir string `yaml:"brochure_text_directory" json:"brochure_text_directory"`
	OutputDirectory string `yaml:"output_directory" json:"output_directory"`
	TopN            int    `yaml:"top_n" json:"top_n"`
}

// DefaultAppConfig returns the default pipeline settings
func DefaultAppConfig() AppConfig {
	return AppConfig{
		PlansFile:       "data/plans.yaml",
		BrochureTextDir: "output/brochures",
		OutputDirectory: "output",
		TopN:            10,
	}
}

// LoadAppConfig loads and validates application configuration, applying
// defaults for anything left unset.
func (ip *InputParser) LoadAppConfig(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read app config file %s: %w", filename, err)
	}

	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks app configuration values
func (ac *AppConfig) Validate() error {
	if ac.PlansFile == "" {
		return fmt.Errorf("plans_file must be a non-empty path")
	}
	if ac.OutputDirectory == "" {
		return fmt.Errorf("output_directory must be a non-empty path")
	}
	if ac.TopN < 0 {
		return fmt.Errorf("top_n must be non-negative, got %d", ac.TopN)
	}
	return nil
}
