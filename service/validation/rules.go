package validation

import "fmt"

// Built-in rule identifiers.
const (
	RuleBudget                = "budget_check"
	RuleInventoryCapacity     = "inventory_capacity_check"
	RuleHistoricalConsumption = "historical_consumption_check"
	RuleSupplierAvailability  = "supplier_availability_check"
	RuleProfitMargin          = "profit_margin_check"
)

const (
	actionPurchase = "purchase"
	actionPricing  = "pricing"
	actionDiscount = "discount"
)

// BudgetRule fails critically when the decision cost exceeds the available
// budget and warns when it crosses the configured fraction of it.
type BudgetRule struct {
	WarningRatio float64
}

func (r *BudgetRule) ID() string { return RuleBudget }

func (r *BudgetRule) Validate(decision, context map[string]interface{}) Result {
	cost, hasCost := number(decision, "cost")
	budget, hasBudget := number(context, "available_budget")
	if !hasCost || !hasBudget {
		return pass(r.ID(), "no budget data")
	}
	if cost > budget {
		return fail(r.ID(), fmt.Sprintf("cost %.2f exceeds available budget %.2f", cost, budget), SeverityCritical)
	}
	if budget > 0 && cost > budget*r.WarningRatio {
		return fail(r.ID(), fmt.Sprintf("cost %.2f uses over %.0f%% of budget %.2f", cost, r.WarningRatio*100, budget), SeverityWarning)
	}
	return pass(r.ID(), "within budget")
}

// InventoryCapacityRule applies to purchase decisions only; it fails
// critically when the projected stock exceeds capacity and warns at the
// configured fraction of it.
type InventoryCapacityRule struct {
	WarningRatio float64
}

func (r *InventoryCapacityRule) ID() string { return RuleInventoryCapacity }

func (r *InventoryCapacityRule) Validate(decision, context map[string]interface{}) Result {
	if text(decision, "action") != actionPurchase {
		return pass(r.ID(), "not a purchase")
	}
	quantity, hasQuantity := number(decision, "quantity")
	current, hasCurrent := number(context, "current_inventory")
	capacity, hasCapacity := number(context, "max_capacity")
	if !hasQuantity || !hasCurrent || !hasCapacity || capacity <= 0 {
		return pass(r.ID(), "no capacity data")
	}
	projected := current + quantity
	if projected > capacity {
		return fail(r.ID(), fmt.Sprintf("projected inventory %.0f exceeds capacity %.0f", projected, capacity), SeverityCritical)
	}
	if projected > capacity*r.WarningRatio {
		return fail(r.ID(), fmt.Sprintf("projected inventory %.0f over %.0f%% of capacity %.0f", projected, r.WarningRatio*100, capacity), SeverityWarning)
	}
	return pass(r.ID(), "within capacity")
}

// HistoricalConsumptionRule applies to purchase decisions only. It compares
// the ordered quantity against expected consumption using a fixed deviation
// ratio. Despite the sigma-flavoured naming used by business stakeholders,
// this is not a z-score; see DetectAnomaly for the statistical detector.
type HistoricalConsumptionRule struct {
	WarningDeviation  float64
	CriticalDeviation float64
}

func (r *HistoricalConsumptionRule) ID() string { return RuleHistoricalConsumption }

func (r *HistoricalConsumptionRule) Validate(decision, context map[string]interface{}) Result {
	if text(decision, "action") != actionPurchase {
		return pass(r.ID(), "not a purchase")
	}
	quantity, hasQuantity := number(decision, "quantity")
	avgDaily, hasAvg := number(context, "avg_daily_consumption")
	daysToCover, hasDays := number(context, "days_to_cover")
	if !hasQuantity || !hasAvg || !hasDays {
		return pass(r.ID(), "no consumption history")
	}
	expected := avgDaily * daysToCover
	if expected <= 0 {
		return pass(r.ID(), "no expected consumption")
	}
	deviation := quantity - expected
	if deviation < 0 {
		deviation = -deviation
	}
	deviation /= expected
	if deviation > r.CriticalDeviation {
		return fail(r.ID(), fmt.Sprintf("quantity %.0f deviates %.1fx from expected %.0f", quantity, deviation, expected), SeverityCritical)
	}
	if deviation > r.WarningDeviation {
		return fail(r.ID(), fmt.Sprintf("quantity %.0f deviates %.1fx from expected %.0f", quantity, deviation, expected), SeverityWarning)
	}
	return pass(r.ID(), "consistent with consumption history")
}

// SupplierAvailabilityRule applies to purchase decisions only; the supplier
// must be declared and present in the context's available supplier list.
type SupplierAvailabilityRule struct{}

func (r *SupplierAvailabilityRule) ID() string { return RuleSupplierAvailability }

func (r *SupplierAvailabilityRule) Validate(decision, context map[string]interface{}) Result {
	if text(decision, "action") != actionPurchase {
		return pass(r.ID(), "not a purchase")
	}
	supplierID := text(decision, "supplier_id")
	if supplierID == "" {
		return fail(r.ID(), "supplier_id missing", SeverityCritical)
	}
	for _, candidate := range suppliers(context) {
		if candidate == supplierID {
			return pass(r.ID(), "supplier available")
		}
	}
	return fail(r.ID(), fmt.Sprintf("supplier %q not available", supplierID), SeverityCritical)
}

func suppliers(context map[string]interface{}) []string {
	if context == nil {
		return nil
	}
	switch actual := context["available_suppliers"].(type) {
	case []string:
		return actual
	case []interface{}:
		out := make([]string, 0, len(actual))
		for _, item := range actual {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ProfitMarginRule applies to pricing and discount decisions; the realised
// margin must stay above the configured minimum.
type ProfitMarginRule struct {
	MinMargin         float64
	WarningMultiplier float64
}

func (r *ProfitMarginRule) ID() string { return RuleProfitMargin }

func (r *ProfitMarginRule) Validate(decision, context map[string]interface{}) Result {
	action := text(decision, "action")
	if action != actionPricing && action != actionDiscount {
		return pass(r.ID(), "not a pricing decision")
	}
	price, hasPrice := number(decision, "price")
	cost, hasCost := number(decision, "cost")
	if !hasPrice || !hasCost {
		return pass(r.ID(), "no pricing data")
	}
	if price <= 0 {
		return fail(r.ID(), fmt.Sprintf("price %.2f yields no margin", price), SeverityCritical)
	}
	margin := (price - cost) / price
	if margin < 0 || margin < r.MinMargin {
		return fail(r.ID(), fmt.Sprintf("margin %.1f%% below minimum %.1f%%", margin*100, r.MinMargin*100), SeverityCritical)
	}
	if margin < r.MinMargin*r.WarningMultiplier {
		return fail(r.ID(), fmt.Sprintf("margin %.1f%% close to minimum %.1f%%", margin*100, r.MinMargin*100), SeverityWarning)
	}
	return pass(r.ID(), "margin acceptable")
}
