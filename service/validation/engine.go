package validation

// Engine evaluates a set of rules against a decision and classifies the
// aggregate result.
type Engine struct {
	config Config
	rules  []Rule
}

// New creates an engine with the built-in rule set plus any extra rules
// supplied by the caller.
func New(config Config, extra ...Rule) *Engine {
	rules := []Rule{
		&BudgetRule{WarningRatio: config.BudgetWarningRatio},
		&InventoryCapacityRule{WarningRatio: config.InventoryWarningRatio},
		&HistoricalConsumptionRule{
			WarningDeviation:  config.ConsumptionWarningDeviation,
			CriticalDeviation: config.ConsumptionCriticalDeviation,
		},
		&SupplierAvailabilityRule{},
		&ProfitMarginRule{
			MinMargin:         config.MinProfitMargin,
			WarningMultiplier: config.MarginWarningMultiplier,
		},
	}
	return &Engine{config: config, rules: append(rules, extra...)}
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// ValidateDecision runs the selected rules (all configured rules when none
// are supplied) and classifies deterministically: REJECTED when any result
// is critical or error, WARNING when any is warning, APPROVED otherwise.
// Evaluation order only affects message ordering, never the outcome.
func (e *Engine) ValidateDecision(decision, context map[string]interface{}, rules ...Rule) *Summary {
	if len(rules) == 0 {
		rules = e.rules
	}
	summary := &Summary{Outcome: OutcomeApproved}
	for _, rule := range rules {
		result := rule.Validate(decision, context)
		summary.Results = append(summary.Results, result)
		if result.Passed {
			continue
		}
		switch result.Severity {
		case SeverityCritical, SeverityError:
			summary.CriticalFailures = append(summary.CriticalFailures, result)
		case SeverityWarning:
			summary.Warnings = append(summary.Warnings, result)
		}
	}
	if len(summary.CriticalFailures) > 0 {
		summary.Outcome = OutcomeRejected
	} else if len(summary.Warnings) > 0 {
		summary.Outcome = OutcomeWarning
	}
	return summary
}
