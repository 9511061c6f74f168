package domain

import (
	"github.com/shopspring/decimal"
)

// DeductibleState tracks deductible consumption within a single plan
// simulation. It is owned exclusively by one simulation and never shared
// across plans. Remaining + Paid equals the plan's annual deductible at
// every observation point.
type DeductibleState struct {
	Remaining decimal.Decimal
	Paid      decimal.Decimal
}

// NewDeductibleState initializes tracking for a plan's annual deductible
func NewDeductibleState(annualDeductible decimal.Decimal) *DeductibleState {
	return &DeductibleState{Remaining: annualDeductible, Paid: decimal.Zero}
}

// Absorb consumes as much of totalMarket as the remaining deductible can
// take and returns the consumed portion. The caller pays that portion at
// 100% and coinsurance only on what is left over.
func (ds *DeductibleState) Absorb(totalMarket decimal.Decimal) decimal.Decimal {
	if !ds.Remaining.IsPositive() {
		return decimal.Zero
	}
	portion := decimal.Min(totalMarket, ds.Remaining)
	ds.Remaining = ds.Remaining.Sub(portion)
	ds.Paid = ds.Paid.Add(portion)
	return portion
}

// Met reports whether the deductible has been fully consumed
func (ds *DeductibleState) Met() bool {
	return !ds.Remaining.IsPositive()
}

// CostBreakdown is an ordered mapping from usage-profile service key to the
// dollar amount attributed to it in one simulation.
type CostBreakdown struct {
	keys    []string
	amounts map[string]decimal.Decimal
}

// NewCostBreakdown creates an empty breakdown
func NewCostBreakdown() *CostBreakdown {
	return &CostBreakdown{amounts: make(map[string]decimal.Decimal)}
}

// Set records the cost attributed to a service key
func (cb *CostBreakdown) Set(key string, amount decimal.Decimal) {
	if _, exists := cb.amounts[key]; !exists {
		cb.keys = append(cb.keys, key)
	}
	cb.amounts[key] = amount
}

// Get returns the cost recorded for a service key
func (cb *CostBreakdown) Get(key string) (decimal.Decimal, bool) {
	amount, ok := cb.amounts[key]
	return amount, ok
}

// Keys returns service keys in the order they were recorded
func (cb *CostBreakdown) Keys() []string {
	return append([]string(nil), cb.keys...)
}

// Len returns the number of recorded services
func (cb *CostBreakdown) Len() int {
	return len(cb.keys)
}

// Total sums all recorded amounts
func (cb *CostBreakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, key := range cb.keys {
		total = total.Add(cb.amounts[key])
	}
	return total
}

// DiagnosticLevel classifies a non-fatal notice from a simulation
type DiagnosticLevel string

const (
	DiagWarning DiagnosticLevel = "warning"
	DiagError   DiagnosticLevel = "error"
)

// Diagnostic records one data-quality gap encountered during a simulation
// (missing market price, missing benefit rule). The simulation degrades the
// affected service to $0 and carries the notice instead of failing.
type Diagnostic struct {
	Level   DiagnosticLevel
	Service string
	Message string
}

// PlanResult is the outcome of one plan simulation. It is immutable once
// produced; the ranking sort and exporters only read it.
type PlanResult struct {
	Rank int `json:"rank"`

	PlanName string `json:"plan_name"`
	PlanCode string `json:"plan_code"`
	Carrier  string `json:"carrier,omitempty"`

	BiweeklyPremium  decimal.Decimal  `json:"biweekly_premium"`
	AnnualDeductible decimal.Decimal  `json:"annual_deductible"`
	OOPMax           *decimal.Decimal `json:"oop_max"` // nil means uncapped

	TotalAnnualCost  decimal.Decimal `json:"total_annual_cost"`
	PremiumCost      decimal.Decimal `json:"premium_cost_annual"`
	MedicalDrugSpend decimal.Decimal `json:"medical_drug_spend"` // variable spend after the OOP cap
	VariableCostRaw  decimal.Decimal `json:"variable_cost_raw"`  // variable spend before the OOP cap
	DeductiblePaid   decimal.Decimal `json:"deductible_paid"`

	UsageBreakdown *CostBreakdown `json:"-"`
	Diagnostics    []Diagnostic   `json:"-"`
}
