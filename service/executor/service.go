package executor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/opsfabric/warden/internal/clock"
	"github.com/opsfabric/warden/internal/idgen"
	"github.com/opsfabric/warden/model/command"
	"github.com/opsfabric/warden/model/execution"
	"github.com/opsfabric/warden/model/money"
	"github.com/opsfabric/warden/policy"
	"github.com/opsfabric/warden/service/dao"
	"github.com/opsfabric/warden/service/messaging"
	"github.com/opsfabric/warden/tracing"
)

// DefaultRollbackWindow bounds how long after execution a compensating
// rollback may still be authorized.
const DefaultRollbackWindow = 30 * time.Minute

// Handler performs the business side effect of a command. The executor is
// handler-agnostic: it never inspects business semantics, only the returned
// result and error.
type Handler func(ctx context.Context, payload map[string]interface{}, actor execution.Actor) (interface{}, error)

// Listener is invoked after every persisted audit record. Implementations
// can log, collect metrics or perform any other side effects they require.
type Listener func(record *execution.Record)

// Service is the trusted executor contract. A front-end maps Execute and
// Rollback 1:1 onto its endpoints.
type Service interface {
	Execute(ctx context.Context, commandType string, payload map[string]interface{}, actor execution.Actor) (*execution.Result, error)
	Rollback(ctx context.Context, executionID string, operator execution.Actor) (*execution.RollbackResult, error)
}

// Option customises the executor instance.
type Option func(*service)

// WithRollbackWindow overrides the default rollback window.
func WithRollbackWindow(window time.Duration) Option {
	return func(s *service) { s.rollbackWindow = window }
}

// WithNow overrides the clock, letting tests pin "29 minutes elapsed"
// against "31 minutes elapsed" deterministically.
func WithNow(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithEvents attaches an event queue; every persisted record is published
// fire-and-forget.
func WithEvents(queue messaging.Queue[execution.Event]) Option {
	return func(s *service) { s.events = queue }
}

// WithListener sets the post-execution callback.
func WithListener(listener Listener) Option {
	return func(s *service) { s.listener = listener }
}

// WithLogger overrides the logger used for caught best-effort failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *service) { s.logger = logger }
}

type service struct {
	registry       *policy.Registry
	handlers       map[string]Handler
	records        dao.Service[string, execution.Record]
	events         messaging.Queue[execution.Event]
	listener       Listener
	logger         *log.Logger
	now            func() time.Time
	rollbackWindow time.Duration
}

// New creates a trusted executor. The handler map is closed at construction:
// a handler keyed by a command type unknown to the registry fails fast here
// rather than silently at execution time.
func New(registry *policy.Registry, handlers map[string]Handler, records dao.Service[string, execution.Record], options ...Option) (Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("executor: registry is required")
	}
	if records == nil {
		return nil, fmt.Errorf("executor: record store is required")
	}
	for commandType := range handlers {
		if !registry.Has(commandType) {
			return nil, fmt.Errorf("executor: handler registered for unknown command %q", commandType)
		}
	}
	ret := &service{
		registry:       registry,
		handlers:       handlers,
		records:        records,
		now:            clock.Now,
		rollbackWindow: DefaultRollbackWindow,
	}
	for _, option := range options {
		option(ret)
	}
	return ret, nil
}

// Execute runs a command through policy, circuit breaker, routing and audit.
func (s *service) Execute(ctx context.Context, commandType string, payload map[string]interface{}, actor execution.Actor) (result *execution.Result, err error) {
	ctx, span := tracing.StartSpan(ctx, "executor.Execute "+commandType, "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	definition, err := s.registry.Get(commandType)
	if err != nil {
		return nil, err
	}

	superAdmin := s.registry.IsSuperAdmin(actor.Role)
	if !superAdmin && !definition.AllowsRole(actor.Role) {
		return nil, &PermissionDeniedError{CommandType: commandType, Role: actor.Role}
	}

	amount, hasAmount, err := money.FromValue(payload["amount"])
	if err != nil {
		return nil, fmt.Errorf("executor: invalid amount for %q: %w", commandType, err)
	}

	level, escalated := s.effectiveLevel(definition, amount, hasAmount, superAdmin)

	record := s.newRecord(definition, commandType, payload, actor, level)
	if hasAmount {
		record.Amount = &amount
	}

	if level == command.LevelApprove {
		record.Status = execution.StatusPendingApproval
		if err = s.records.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("executor: failed to persist pending record: %w", err)
		}
		s.publish(ctx, execution.TopicPending, record)
		s.notifyListener(record)
		reason := "command level requires approval"
		if escalated {
			reason = fmt.Sprintf("amount %s exceeds circuit breaker %s", amount, *definition.AmountBreaker)
		}
		return nil, &ApprovalRequiredError{ExecutionID: record.ID, CommandType: commandType, Reason: reason}
	}

	handler, ok := s.handlers[commandType]
	if !ok {
		return nil, &HandlerNotFoundError{CommandType: commandType}
	}

	output, handlerErr := handler(ctx, payload, actor)
	if handlerErr != nil {
		record.Status = execution.StatusFailed
		record.Result = handlerErr.Error()
		if saveErr := s.records.Save(ctx, record); saveErr != nil {
			s.logf("failed to persist failed record %s: %v", record.ID, saveErr)
		}
		s.publish(ctx, execution.TopicFailed, record)
		s.notifyListener(record)
		return nil, fmt.Errorf("executor: command %q failed: %w", commandType, handlerErr)
	}

	record.Status = execution.StatusCompleted
	record.Result = output
	if err = s.records.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("executor: failed to persist record: %w", err)
	}
	s.publish(ctx, execution.TopicCompleted, record)
	s.notifyListener(record)

	return &execution.Result{
		ExecutionID: record.ID,
		CommandType: commandType,
		Status:      record.Status,
		Level:       level,
		Result:      output,
	}, nil
}

// Rollback authorizes and audits a compensating rollback of a completed
// execution. The executor only manages the authorization and audit
// envelope; the business-level reversal lives with the caller.
func (s *service) Rollback(ctx context.Context, executionID string, operator execution.Actor) (result *execution.RollbackResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "executor.Rollback", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	record, err := s.records.Load(ctx, executionID)
	if err != nil || record == nil {
		if record == nil || errors.Is(err, dao.ErrNotFound) {
			return nil, &ExecutionNotFoundError{ExecutionID: executionID}
		}
		return nil, err
	}

	switch record.Status {
	case execution.StatusCompleted:
	case execution.StatusRolledBack:
		return nil, ErrAlreadyRolledBack
	default:
		return nil, fmt.Errorf("%w: status %s", ErrNotRollbackable, record.Status)
	}

	now := s.now()
	elapsed := now.Sub(record.CreatedAt)
	if elapsed > s.rollbackWindow {
		return nil, &RollbackWindowExpiredError{ExecutionID: executionID, Elapsed: elapsed, Window: s.rollbackWindow}
	}

	definition, err := s.registry.Get(record.CommandType)
	if err != nil {
		return nil, err
	}
	if !s.registry.IsSuperAdmin(operator.Role) && !definition.ApprovedByRole(operator.Role) {
		return nil, &PermissionDeniedError{CommandType: record.CommandType, Role: operator.Role}
	}

	rollbackID := idgen.New()

	// Claim the original first: completed -> rolled_back happens exactly
	// once even with concurrent operators.
	updated := *record
	updated.Status = execution.StatusRolledBack
	updated.RollbackID = rollbackID
	updated.RolledBackBy = operator.ID
	updated.RolledBackAt = &now
	if err = s.updateLinkage(ctx, &updated); err != nil {
		if errors.Is(err, dao.ErrConflict) {
			return nil, ErrAlreadyRolledBack
		}
		return nil, fmt.Errorf("executor: failed to mark rollback linkage: %w", err)
	}

	// A fresh record documents the compensating act itself, preserving the
	// append-only audit trail.
	rollbackRecord := &execution.Record{
		ID:          rollbackID,
		CommandType: "rollback:" + record.CommandType,
		ActorID:     operator.ID,
		ActorRole:   operator.Role,
		StoreID:     record.StoreID,
		BrandID:     record.BrandID,
		Status:      execution.StatusRolledBack,
		Level:       record.Level,
		Result:      map[string]interface{}{"executionId": record.ID},
		CreatedAt:   now,
	}
	if err = s.records.Save(ctx, rollbackRecord); err != nil {
		return nil, fmt.Errorf("executor: failed to persist rollback record: %w", err)
	}
	s.publish(ctx, execution.TopicRolledBack, rollbackRecord)
	s.notifyListener(rollbackRecord)

	return &execution.RollbackResult{
		RollbackID:   rollbackID,
		ExecutionID:  record.ID,
		CommandType:  record.CommandType,
		RolledBackBy: operator.ID,
		RolledBackAt: now,
	}, nil
}

// effectiveLevel applies the monetary circuit breaker: it can only escalate
// a level upward to approve, never downgrade one, and only a super-admin
// bypasses it.
func (s *service) effectiveLevel(definition *command.Definition, amount money.Amount, hasAmount, superAdmin bool) (command.Level, bool) {
	level := definition.Level
	if level == command.LevelApprove {
		return level, false
	}
	if definition.AmountBreaker != nil && hasAmount && amount.GreaterThan(*definition.AmountBreaker) && !superAdmin {
		return command.LevelApprove, true
	}
	return level, false
}

func (s *service) newRecord(definition *command.Definition, commandType string, payload map[string]interface{}, actor execution.Actor, level command.Level) *execution.Record {
	snapshot := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		snapshot[k] = v
	}
	storeID, _ := payload["store_id"].(string)
	brandID, _ := payload["brand_id"].(string)
	return &execution.Record{
		ID:          idgen.New(),
		CommandType: commandType,
		Payload:     snapshot,
		ActorID:     actor.ID,
		ActorRole:   actor.Role,
		StoreID:     storeID,
		BrandID:     brandID,
		Level:       level,
		CreatedAt:   s.now(),
	}
}

// updateLinkage performs the single permitted post-insert mutation. Stores
// implementing dao.Conditional do it atomically; plain stores fall back to
// Save.
func (s *service) updateLinkage(ctx context.Context, record *execution.Record) error {
	if conditional, ok := s.records.(dao.Conditional[string, execution.Record]); ok {
		return conditional.UpdateIf(ctx, record, string(execution.StatusCompleted))
	}
	return s.records.Save(ctx, record)
}

func (s *service) publish(ctx context.Context, topic string, record *execution.Record) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, &execution.Event{Topic: topic, Record: record}); err != nil {
		s.logf("failed to publish %s event for %s: %v", topic, record.ID, err)
	}
}

func (s *service) notifyListener(record *execution.Record) {
	if s.listener != nil {
		s.listener(record)
	}
}

func (s *service) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

var _ Service = (*service)(nil)
