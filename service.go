package warden

import (
	"context"
	"fmt"

	"github.com/opsfabric/warden/model/decision"
	"github.com/opsfabric/warden/model/execution"
	"github.com/opsfabric/warden/policy"
	"github.com/opsfabric/warden/service/dao"
	dmemory "github.com/opsfabric/warden/service/dao/decision/memory"
	ememory "github.com/opsfabric/warden/service/dao/execution/memory"
	"github.com/opsfabric/warden/service/executor"
	"github.com/opsfabric/warden/service/governance"
	"github.com/opsfabric/warden/service/messaging"
	qmemory "github.com/opsfabric/warden/service/messaging/memory"
	"github.com/opsfabric/warden/service/notification"
	"github.com/opsfabric/warden/service/validation"
)

// Service is the high-level façade wiring registry, executor, validation
// engine and governance workflow together.
type Service struct {
	config      *Config
	registry    *policy.Registry
	handlers    map[string]executor.Handler
	dispatchers map[string]governance.DispatchFunc

	executionStore dao.Service[string, execution.Record]
	decisionStore  dao.Service[string, decision.Record]

	notifier  notification.Sender
	approvers []string

	extraRules      []validation.Rule
	executionEvents messaging.Queue[execution.Event]
	decisionEvents  messaging.Queue[decision.Event]

	executor executor.Service
	engine   *validation.Engine
	workflow governance.Service
}

// New creates a warden service. A policy registry is required; every other
// collaborator defaults to its in-memory implementation.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	ret.ensureBaseSetup()
	if ret.registry == nil {
		return nil, fmt.Errorf("warden: registry is required")
	}
	if err := ret.config.Validate(); err != nil {
		return nil, fmt.Errorf("warden: invalid config: %w", err)
	}

	var err error
	ret.executor, err = executor.New(ret.registry, ret.handlers, ret.executionStore,
		executor.WithRollbackWindow(ret.config.RollbackWindow()),
		executor.WithEvents(ret.executionEvents),
	)
	if err != nil {
		return nil, err
	}

	ret.engine = validation.New(ret.config.Validation, ret.extraRules...)

	ret.workflow, err = governance.New(ret.decisionStore,
		governance.WithDispatchers(ret.dispatchers),
		governance.WithNotifier(ret.notifier),
		governance.WithApprovers(ret.approvers...),
		governance.WithTrustScoreConfig(ret.config.TrustScore),
		governance.WithQueue(ret.decisionEvents),
	)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.executionStore == nil {
		s.executionStore = ememory.New()
	}
	if s.decisionStore == nil {
		s.decisionStore = dmemory.New()
	}
	if s.notifier == nil {
		s.notifier = notification.Nop{}
	}
	if s.executionEvents == nil {
		s.executionEvents = qmemory.NewQueue[execution.Event](qmemory.DefaultConfig())
	}
	if s.decisionEvents == nil {
		s.decisionEvents = qmemory.NewQueue[decision.Event](qmemory.DefaultConfig())
	}
	if s.dispatchers == nil {
		s.dispatchers = map[string]governance.DispatchFunc{}
	}
}

// Execute runs a direct (non-AI) command through the trusted executor.
func (s *Service) Execute(ctx context.Context, commandType string, payload map[string]interface{}, actor execution.Actor) (*execution.Result, error) {
	return s.executor.Execute(ctx, commandType, payload, actor)
}

// Rollback authorizes a compensating rollback of a completed execution.
func (s *Service) Rollback(ctx context.Context, executionID string, operator execution.Actor) (*execution.RollbackResult, error) {
	return s.executor.Rollback(ctx, executionID, operator)
}

// ValidateDecision evaluates validation rules against a decision payload.
func (s *Service) ValidateDecision(decisionPayload, context map[string]interface{}, rules ...validation.Rule) *validation.Summary {
	return s.engine.ValidateDecision(decisionPayload, context, rules...)
}

// DetectAnomaly runs the statistical anomaly detector.
func (s *Service) DetectAnomaly(value float64, historical []float64) validation.Anomaly {
	return validation.DetectAnomaly(value, historical)
}

// CreateDecision registers an AI suggestion for human review.
func (s *Service) CreateDecision(ctx context.Context, input *governance.CreateInput) (*decision.Record, error) {
	return s.workflow.Create(ctx, input)
}

// Approve adopts a pending decision.
func (s *Service) Approve(ctx context.Context, id, managerID, feedback string) (*decision.Record, error) {
	return s.workflow.Approve(ctx, id, managerID, feedback)
}

// Reject declines a pending decision; feedback is required.
func (s *Service) Reject(ctx context.Context, id, managerID, feedback string) (*decision.Record, error) {
	return s.workflow.Reject(ctx, id, managerID, feedback)
}

// Modify adopts an adjusted variant of a pending decision.
func (s *Service) Modify(ctx context.Context, id, managerID string, modified map[string]interface{}, feedback string) (*decision.Record, error) {
	return s.workflow.Modify(ctx, id, managerID, modified, feedback)
}

// RecordOutcome attaches the realized result and computes the trust score.
func (s *Service) RecordOutcome(ctx context.Context, id string, input *governance.OutcomeInput) (*decision.Record, error) {
	return s.workflow.RecordOutcome(ctx, id, input)
}

// Registry exposes the policy registry.
func (s *Service) Registry() *policy.Registry { return s.registry }

// Executor exposes the trusted executor.
func (s *Service) Executor() executor.Service { return s.executor }

// Engine exposes the validation engine.
func (s *Service) Engine() *validation.Engine { return s.engine }

// Workflow exposes the governance workflow.
func (s *Service) Workflow() governance.Service { return s.workflow }
