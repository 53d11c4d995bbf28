package validation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetRule(t *testing.T) {
	rule := &BudgetRule{WarningRatio: 0.9}

	type testCase struct {
		name     string
		decision map[string]interface{}
		context  map[string]interface{}
		passed   bool
		severity Severity
	}

	tests := []testCase{
		{
			name:     "within budget",
			decision: map[string]interface{}{"cost": 100.0},
			context:  map[string]interface{}{"available_budget": 1000.0},
			passed:   true,
		},
		{
			name:     "over budget",
			decision: map[string]interface{}{"cost": 1500.0},
			context:  map[string]interface{}{"available_budget": 1000.0},
			severity: SeverityCritical,
		},
		{
			name:     "warning band",
			decision: map[string]interface{}{"cost": 950.0},
			context:  map[string]interface{}{"available_budget": 1000.0},
			severity: SeverityWarning,
		},
		{
			name:     "missing budget data passes",
			decision: map[string]interface{}{"cost": 950.0},
			context:  map[string]interface{}{},
			passed:   true,
		},
		{
			name:     "missing cost passes",
			decision: map[string]interface{}{},
			context:  map[string]interface{}{"available_budget": 1000.0},
			passed:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := rule.Validate(tc.decision, tc.context)
			assert.Equal(t, tc.passed, result.Passed)
			if !tc.passed {
				assert.Equal(t, tc.severity, result.Severity)
			}
		})
	}
}

func TestInventoryCapacityRule(t *testing.T) {
	rule := &InventoryCapacityRule{WarningRatio: 0.9}

	result := rule.Validate(
		map[string]interface{}{"action": "purchase", "quantity": 600.0},
		map[string]interface{}{"current_inventory": 500.0, "max_capacity": 1000.0},
	)
	assert.False(t, result.Passed)
	assert.Equal(t, SeverityCritical, result.Severity)

	result = rule.Validate(
		map[string]interface{}{"action": "purchase", "quantity": 450.0},
		map[string]interface{}{"current_inventory": 500.0, "max_capacity": 1000.0},
	)
	assert.False(t, result.Passed)
	assert.Equal(t, SeverityWarning, result.Severity)

	result = rule.Validate(
		map[string]interface{}{"action": "purchase", "quantity": 100.0},
		map[string]interface{}{"current_inventory": 500.0, "max_capacity": 1000.0},
	)
	assert.True(t, result.Passed)

	// Non-purchase actions are out of scope for this rule.
	result = rule.Validate(
		map[string]interface{}{"action": "pricing", "quantity": 9999.0},
		map[string]interface{}{"current_inventory": 500.0, "max_capacity": 1000.0},
	)
	assert.True(t, result.Passed)
}

func TestHistoricalConsumptionRule(t *testing.T) {
	rule := &HistoricalConsumptionRule{WarningDeviation: 2.0, CriticalDeviation: 3.0}

	// Expected consumption 10 * 7 = 70.
	context := map[string]interface{}{"avg_daily_consumption": 10.0, "days_to_cover": 7.0}

	result := rule.Validate(map[string]interface{}{"action": "purchase", "quantity": 80.0}, context)
	assert.True(t, result.Passed)

	// Deviation (350-70)/70 = 4x, critical.
	result = rule.Validate(map[string]interface{}{"action": "purchase", "quantity": 350.0}, context)
	assert.False(t, result.Passed)
	assert.Equal(t, SeverityCritical, result.Severity)

	// Deviation (245-70)/70 = 2.5x, warning.
	result = rule.Validate(map[string]interface{}{"action": "purchase", "quantity": 245.0}, context)
	assert.False(t, result.Passed)
	assert.Equal(t, SeverityWarning, result.Severity)

	// No history passes.
	result = rule.Validate(map[string]interface{}{"action": "purchase", "quantity": 350.0}, nil)
	assert.True(t, result.Passed)
}

func TestSupplierAvailabilityRule(t *testing.T) {
	rule := &SupplierAvailabilityRule{}
	context := map[string]interface{}{"available_suppliers": []interface{}{"sup-1", "sup-2"}}

	result := rule.Validate(map[string]interface{}{"action": "purchase", "supplier_id": "sup-1"}, context)
	assert.True(t, result.Passed)

	result = rule.Validate(map[string]interface{}{"action": "purchase", "supplier_id": "sup-9"}, context)
	assert.False(t, result.Passed)
	assert.Equal(t, SeverityCritical, result.Severity)

	result = rule.Validate(map[string]interface{}{"action": "purchase"}, context)
	assert.False(t, result.Passed)

	result = rule.Validate(map[string]interface{}{"action": "discount"}, context)
	assert.True(t, result.Passed)
}

func TestProfitMarginRule(t *testing.T) {
	rule := &ProfitMarginRule{MinMargin: 0.1, WarningMultiplier: 1.2}

	result := rule.Validate(map[string]interface{}{"action": "pricing", "price": 100.0, "cost": 50.0}, nil)
	assert.True(t, result.Passed)

	// Margin 5% below minimum 10%.
	result = rule.Validate(map[string]interface{}{"action": "discount", "price": 100.0, "cost": 95.0}, nil)
	assert.False(t, result.Passed)
	assert.Equal(t, SeverityCritical, result.Severity)

	// Margin 11% inside the warning band (minimum 10%, band up to 12%).
	result = rule.Validate(map[string]interface{}{"action": "pricing", "price": 100.0, "cost": 89.0}, nil)
	assert.False(t, result.Passed)
	assert.Equal(t, SeverityWarning, result.Severity)

	result = rule.Validate(map[string]interface{}{"action": "pricing", "price": 0.0, "cost": 10.0}, nil)
	assert.False(t, result.Passed)
	assert.Equal(t, SeverityCritical, result.Severity)

	result = rule.Validate(map[string]interface{}{"action": "purchase", "price": 100.0, "cost": 95.0}, nil)
	assert.True(t, result.Passed)
}

func TestValidateDecisionClassification(t *testing.T) {
	engine := New(DefaultConfig())

	decision := map[string]interface{}{
		"action":      "purchase",
		"quantity":    100.0,
		"cost":        500.0,
		"supplier_id": "sup-1",
	}
	context := map[string]interface{}{
		"available_budget":      10000.0,
		"current_inventory":     200.0,
		"max_capacity":          1000.0,
		"avg_daily_consumption": 15.0,
		"days_to_cover":         7.0,
		"available_suppliers":   []string{"sup-1"},
	}

	summary := engine.ValidateDecision(decision, context)
	assert.Equal(t, OutcomeApproved, summary.Outcome)
	assert.Empty(t, summary.CriticalFailures)
	assert.Empty(t, summary.Warnings)
	assert.Len(t, summary.Results, 5)

	// One critical failure rejects regardless of other passes.
	context["available_suppliers"] = []string{"sup-2"}
	summary = engine.ValidateDecision(decision, context)
	assert.Equal(t, OutcomeRejected, summary.Outcome)
	assert.Len(t, summary.CriticalFailures, 1)

	// Warnings alone downgrade to WARNING.
	context["available_suppliers"] = []string{"sup-1"}
	context["available_budget"] = 520.0
	summary = engine.ValidateDecision(decision, context)
	assert.Equal(t, OutcomeWarning, summary.Outcome)
	assert.Len(t, summary.Warnings, 1)
}

func TestValidateDecisionOrderIndependent(t *testing.T) {
	engine := New(DefaultConfig())

	decision := map[string]interface{}{
		"action":      "purchase",
		"quantity":    600.0,
		"cost":        1500.0,
		"supplier_id": "sup-9",
	}
	context := map[string]interface{}{
		"available_budget":    1000.0,
		"current_inventory":   500.0,
		"max_capacity":        1000.0,
		"available_suppliers": []string{"sup-1"},
	}

	reference := engine.ValidateDecision(decision, context)
	assert.Equal(t, OutcomeRejected, reference.Outcome)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := engine.Rules()
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		summary := engine.ValidateDecision(decision, context, shuffled...)
		assert.Equal(t, reference.Outcome, summary.Outcome)
		assert.Len(t, summary.CriticalFailures, len(reference.CriticalFailures))
		assert.Len(t, summary.Warnings, len(reference.Warnings))
	}
}

func TestValidateDecisionSubset(t *testing.T) {
	engine := New(DefaultConfig())
	decision := map[string]interface{}{"cost": 1500.0}
	context := map[string]interface{}{"available_budget": 1000.0}

	summary := engine.ValidateDecision(decision, context, &BudgetRule{WarningRatio: 0.9})
	assert.Len(t, summary.Results, 1)
	assert.Equal(t, OutcomeRejected, summary.Outcome)
}
