package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// UsageProfile is an ordered mapping from service key (e.g.
// "primary_care_visits") to an expected annual quantity. Order matters:
// deductible consumption follows iteration order, so the profile preserves
// the order keys appeared in the configuration document.
type UsageProfile struct {
	keys       []string
	quantities map[string]int
}

// NewUsageProfile creates an empty usage profile
func NewUsageProfile() *UsageProfile {
	return &UsageProfile{quantities: make(map[string]int)}
}

// Set records a quantity for a service key, appending the key on first use
func (up *UsageProfile) Set(key string, quantity int) {
	if up.quantities == nil {
		up.quantities = make(map[string]int)
	}
	if _, exists := up.quantities[key]; !exists {
		up.keys = append(up.keys, key)
	}
	up.quantities[key] = quantity
}

// Get returns the quantity for a service key
func (up *UsageProfile) Get(key string) (int, bool) {
	q, ok := up.quantities[key]
	return q, ok
}

// Keys returns the service keys in insertion order
func (up *UsageProfile) Keys() []string {
	return append([]string(nil), up.keys...)
}

// Len returns the number of service keys
func (up *UsageProfile) Len() int {
	return len(up.keys)
}

// UnmarshalYAML decodes a mapping node while preserving document order.
// yaml.v3 hands mapping contents as alternating key/value nodes.
func (up *UsageProfile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("usage_profile must be a mapping, got %s", nodeKindName(node.Kind))
	}
	up.keys = nil
	up.quantities = make(map[string]int, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var quantity int
		if err := valueNode.Decode(&quantity); err != nil {
			return fmt.Errorf("usage_profile value for %q: %w", keyNode.Value, err)
		}
		up.Set(keyNode.Value, quantity)
	}
	return nil
}

// StandardCostTable maps a market-price key (e.g. "primary_care_visit") to
// the assumed unsubsidized price of one unit of that service.
type StandardCostTable map[string]decimal.Decimal

// UnmarshalYAML decodes the table, skipping the conventional free-text
// "description" entry configuration files may carry.
func (sct *StandardCostTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("standard_costs must be a mapping, got %s", nodeKindName(node.Kind))
	}
	table := make(StandardCostTable, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Value == "description" {
			continue
		}
		var amount decimal.Decimal
		if err := valueNode.Decode(&amount); err != nil {
			return fmt.Errorf("standard_costs value for %q: %w", keyNode.Value, err)
		}
		table[keyNode.Value] = amount
	}
	*sct = table
	return nil
}

// UserNeeds is the per-run usage and market-price configuration, loaded
// once and immutable for the duration of a run.
type UserNeeds struct {
	UsageProfile  *UsageProfile     `yaml:"usage_profile"`
	StandardCosts StandardCostTable `yaml:"standard_costs"`
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
