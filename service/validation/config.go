package validation

// Config carries the thresholds used by the built-in rules. All values are
// configuration, never constants baked into rule logic.
type Config struct {
	// BudgetWarningRatio triggers a warning once cost exceeds this fraction
	// of the available budget.
	BudgetWarningRatio float64 `json:"budgetWarningRatio" yaml:"budgetWarningRatio" env:"WARDEN_BUDGET_WARNING_RATIO"`

	// InventoryWarningRatio triggers a warning once projected inventory
	// exceeds this fraction of capacity.
	InventoryWarningRatio float64 `json:"inventoryWarningRatio" yaml:"inventoryWarningRatio" env:"WARDEN_INVENTORY_WARNING_RATIO"`

	// ConsumptionWarningDeviation and ConsumptionCriticalDeviation bound the
	// fixed-ratio deviation heuristic of the historical consumption rule.
	// This is deliberately not a statistical z-score; the true anomaly
	// detector lives in DetectAnomaly.
	ConsumptionWarningDeviation  float64 `json:"consumptionWarningDeviation" yaml:"consumptionWarningDeviation" env:"WARDEN_CONSUMPTION_WARNING_DEVIATION"`
	ConsumptionCriticalDeviation float64 `json:"consumptionCriticalDeviation" yaml:"consumptionCriticalDeviation" env:"WARDEN_CONSUMPTION_CRITICAL_DEVIATION"`

	// MinProfitMargin is the minimum acceptable margin for pricing and
	// discount decisions; MarginWarningMultiplier widens it into the warning
	// band.
	MinProfitMargin         float64 `json:"minProfitMargin" yaml:"minProfitMargin" env:"WARDEN_MIN_PROFIT_MARGIN"`
	MarginWarningMultiplier float64 `json:"marginWarningMultiplier" yaml:"marginWarningMultiplier" env:"WARDEN_MARGIN_WARNING_MULTIPLIER"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		BudgetWarningRatio:           0.9,
		InventoryWarningRatio:        0.9,
		ConsumptionWarningDeviation:  2.0,
		ConsumptionCriticalDeviation: 3.0,
		MinProfitMargin:              0.1,
		MarginWarningMultiplier:      1.2,
	}
}
