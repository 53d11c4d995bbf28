package warden_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsfabric/warden"
	"github.com/opsfabric/warden/model/command"
	"github.com/opsfabric/warden/model/decision"
	"github.com/opsfabric/warden/model/execution"
	"github.com/opsfabric/warden/model/money"
	"github.com/opsfabric/warden/policy"
	"github.com/opsfabric/warden/service/executor"
	"github.com/opsfabric/warden/service/governance"
	"github.com/opsfabric/warden/service/validation"
)

func newService(t *testing.T, options ...warden.Option) *warden.Service {
	breaker, err := money.ParseDecimal("500")
	assert.NoError(t, err)
	registry, err := policy.New([]command.Definition{
		{
			Type:          "stock_alert",
			Level:         command.LevelNotify,
			AllowedRoles:  []string{"store_manager"},
			ApproverRoles: []string{"regional_manager"},
		},
		{
			Type:          "discount_apply",
			Level:         command.LevelAuto,
			AllowedRoles:  []string{"store_manager"},
			ApproverRoles: []string{"regional_manager"},
			AmountBreaker: &breaker,
		},
	})
	assert.NoError(t, err)

	handlers := map[string]executor.Handler{
		"stock_alert": func(ctx context.Context, payload map[string]interface{}, actor execution.Actor) (interface{}, error) {
			return "alerted", nil
		},
		"discount_apply": func(ctx context.Context, payload map[string]interface{}, actor execution.Actor) (interface{}, error) {
			return "applied", nil
		},
	}
	dispatchers := map[string]governance.DispatchFunc{
		"restock": func(ctx context.Context, record *decision.Record) (interface{}, error) {
			return "ordered", nil
		},
	}

	base := []warden.Option{
		warden.WithRegistry(registry),
		warden.WithHandlers(handlers),
		warden.WithDispatchers(dispatchers),
	}
	service, err := warden.New(append(base, options...)...)
	assert.NoError(t, err)
	return service
}

func TestNewRequiresRegistry(t *testing.T) {
	_, err := warden.New()
	assert.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	config := warden.DefaultConfig()
	config.RollbackWindowMinutes = 0

	breaker := money.FromMinorUnits(50000)
	registry, err := policy.New([]command.Definition{
		{Type: "discount_apply", Level: command.LevelAuto, AmountBreaker: &breaker},
	})
	assert.NoError(t, err)

	_, err = warden.New(warden.WithRegistry(registry), warden.WithConfig(config))
	assert.Error(t, err)
}

func TestExecuteThroughFacade(t *testing.T) {
	ctx := context.Background()
	service := newService(t)
	actor := execution.Actor{ID: "u1", Role: "store_manager"}

	result, err := service.Execute(ctx, "stock_alert", map[string]interface{}{"store_id": "S1"}, actor)
	assert.NoError(t, err)
	assert.Equal(t, execution.StatusCompleted, result.Status)
	assert.Equal(t, "alerted", result.Result)

	// Over-breaker amounts route to approval through the same façade.
	_, err = service.Execute(ctx, "discount_apply", map[string]interface{}{"amount": float64(600)}, actor)
	var approval *executor.ApprovalRequiredError
	assert.True(t, errors.As(err, &approval))
}

func TestRollbackThroughFacade(t *testing.T) {
	ctx := context.Background()
	service := newService(t)

	result, err := service.Execute(ctx, "discount_apply",
		map[string]interface{}{"amount": float64(100)}, execution.Actor{ID: "u1", Role: "store_manager"})
	assert.NoError(t, err)

	rollback, err := service.Rollback(ctx, result.ExecutionID, execution.Actor{ID: "rm1", Role: "regional_manager"})
	assert.NoError(t, err)
	assert.Equal(t, result.ExecutionID, rollback.ExecutionID)

	_, err = service.Rollback(ctx, result.ExecutionID, execution.Actor{ID: "rm1", Role: "regional_manager"})
	assert.ErrorIs(t, err, executor.ErrAlreadyRolledBack)
}

func TestValidateAndDetectAnomaly(t *testing.T) {
	service := newService(t)

	summary := service.ValidateDecision(
		map[string]interface{}{"action": "purchase", "quantity": 100.0, "cost": 500.0, "supplier_id": "sup-1"},
		map[string]interface{}{
			"available_budget":    10000.0,
			"current_inventory":   200.0,
			"max_capacity":        1000.0,
			"available_suppliers": []string{"sup-1"},
		},
	)
	assert.Equal(t, validation.OutcomeApproved, summary.Outcome)

	anomaly := service.DetectAnomaly(1000, []float64{100, 110, 90, 105, 95})
	assert.True(t, anomaly.IsAnomaly)
}

func TestDecisionLifecycleThroughFacade(t *testing.T) {
	ctx := context.Background()
	service := newService(t)

	record, err := service.CreateDecision(ctx, &governance.CreateInput{
		DecisionType: "restock",
		AgentType:    "inventory_agent",
		StoreID:      "S1",
		Suggestion:   map[string]interface{}{"quantity": 100.0},
		Confidence:   0.8,
	})
	assert.NoError(t, err)

	approved, err := service.Approve(ctx, record.ID, "mgr-1", "")
	assert.NoError(t, err)
	assert.Equal(t, decision.StatusExecuted, approved.Status)

	outcome, err := service.RecordOutcome(ctx, record.ID, &governance.OutcomeInput{
		Outcome:        decision.OutcomeSuccess,
		ActualResult:   map[string]interface{}{"value": 104.0},
		ExpectedResult: map[string]interface{}{"value": 100.0},
	})
	assert.NoError(t, err)
	if assert.NotNil(t, outcome.TrustScore) {
		assert.InDelta(t, 94.0, *outcome.TrustScore, 1e-9)
	}
}

func TestCustomRuleThroughFacade(t *testing.T) {
	service := newService(t, warden.WithRules(rejectAll{}))
	summary := service.ValidateDecision(map[string]interface{}{}, nil)
	assert.Equal(t, validation.OutcomeRejected, summary.Outcome)
}

type rejectAll struct{}

func (rejectAll) ID() string { return "reject_all" }

func (rejectAll) Validate(decision, context map[string]interface{}) validation.Result {
	return validation.Result{RuleID: "reject_all", Severity: validation.SeverityCritical}
}
