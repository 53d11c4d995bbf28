package validation

import "encoding/json"

// Severity grades a rule result.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
)

// Result is the outcome of evaluating a single rule.
type Result struct {
	RuleID   string   `json:"ruleId"`
	Passed   bool     `json:"passed"`
	Reason   string   `json:"reason,omitempty"`
	Severity Severity `json:"severity"`
}

// Rule is the pluggable validation contract. Implementations receive the
// decision payload and a context map supplied by the caller; they must not
// mutate either.
type Rule interface {
	ID() string
	Validate(decision, context map[string]interface{}) Result
}

// Outcome is the aggregate classification of a validation run.
type Outcome string

const (
	OutcomeApproved Outcome = "APPROVED"
	OutcomeWarning  Outcome = "WARNING"
	OutcomeRejected Outcome = "REJECTED"
)

// Summary aggregates per-rule results. Rule evaluation order never changes
// Outcome, only the ordering of the message slices.
type Summary struct {
	Outcome          Outcome  `json:"outcome"`
	CriticalFailures []Result `json:"criticalFailures,omitempty"`
	Warnings         []Result `json:"warnings,omitempty"`
	Results          []Result `json:"results"`
}

func pass(ruleID, reason string) Result {
	return Result{RuleID: ruleID, Passed: true, Reason: reason, Severity: SeverityInfo}
}

func fail(ruleID, reason string, severity Severity) Result {
	return Result{RuleID: ruleID, Passed: false, Reason: reason, Severity: severity}
}

// number extracts a numeric value from a payload map. JSON decoding yields
// float64, but callers may also supply int, int64 or json.Number.
func number(m map[string]interface{}, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch actual := m[key].(type) {
	case float64:
		return actual, true
	case int:
		return float64(actual), true
	case int64:
		return float64(actual), true
	case json.Number:
		v, err := actual.Float64()
		return v, err == nil
	}
	return 0, false
}

func text(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
