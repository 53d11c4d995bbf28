package governance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/opsfabric/warden/internal/clock"
	"github.com/opsfabric/warden/internal/idgen"
	"github.com/opsfabric/warden/model/decision"
	"github.com/opsfabric/warden/service/dao"
	"github.com/opsfabric/warden/service/messaging"
	"github.com/opsfabric/warden/service/notification"
	"github.com/opsfabric/warden/tracing"
)

// DispatchFunc executes the business side effect of an adopted decision.
// Dispatch is keyed by decision type; the workflow never knows business
// semantics.
type DispatchFunc func(ctx context.Context, record *decision.Record) (interface{}, error)

// CreateInput carries everything an agent supplies when proposing a
// decision. Context is advisory metadata for approvers; it is not persisted
// with the record.
type CreateInput struct {
	DecisionType string
	AgentType    string
	AgentMethod  string
	StoreID      string
	Suggestion   map[string]interface{}
	Confidence   float64
	Reasoning    string
	Alternatives []interface{}
	Context      map[string]interface{}
}

// OutcomeInput attaches the realized result of an executed decision.
type OutcomeInput struct {
	Outcome        decision.Outcome
	ActualResult   map[string]interface{}
	ExpectedResult map[string]interface{}
	BusinessImpact string
}

// Service is the decision governance workflow contract.
type Service interface {
	Create(ctx context.Context, input *CreateInput) (*decision.Record, error)
	Approve(ctx context.Context, id, managerID, feedback string) (*decision.Record, error)
	Reject(ctx context.Context, id, managerID, feedback string) (*decision.Record, error)
	Modify(ctx context.Context, id, managerID string, modified map[string]interface{}, feedback string) (*decision.Record, error)
	RecordOutcome(ctx context.Context, id string, input *OutcomeInput) (*decision.Record, error)
	Get(ctx context.Context, id string) (*decision.Record, error)
	List(ctx context.Context, parameters ...*dao.Parameter) ([]*decision.Record, error)
	ListPending(ctx context.Context) ([]*decision.Record, error)
	Queue() messaging.Queue[decision.Event]
}

// Option customises the workflow instance.
type Option func(*service)

// WithDispatchers installs the closed decision-type dispatch map.
func WithDispatchers(dispatchers map[string]DispatchFunc) Option {
	return func(s *service) { s.dispatchers = dispatchers }
}

// WithNotifier sets the best-effort approver notification collaborator.
func WithNotifier(sender notification.Sender) Option {
	return func(s *service) { s.notifier = sender }
}

// WithApprovers sets the recipients notified about new pending decisions.
func WithApprovers(approvers ...string) Option {
	return func(s *service) { s.approvers = approvers }
}

// WithTrustScoreConfig overrides the trust score weights.
func WithTrustScoreConfig(config TrustScoreConfig) Option {
	return func(s *service) { s.scoreConfig = config }
}

// WithQueue attaches the decision event queue.
func WithQueue(queue messaging.Queue[decision.Event]) Option {
	return func(s *service) { s.events = queue }
}

// WithNow overrides the clock.
func WithNow(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithLogger overrides the logger used for caught best-effort failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *service) { s.logger = logger }
}

type service struct {
	decisions   dao.Service[string, decision.Record]
	conditional dao.Conditional[string, decision.Record]
	dispatchers map[string]DispatchFunc
	notifier    notification.Sender
	approvers   []string
	scoreConfig TrustScoreConfig
	events      messaging.Queue[decision.Event]
	logger      *log.Logger
	now         func() time.Time
}

// New creates a governance workflow over the supplied decision store. The
// store must support conditional status updates; approve/reject/modify are
// serialised through them, never through in-process locks.
func New(decisions dao.Service[string, decision.Record], options ...Option) (Service, error) {
	if decisions == nil {
		return nil, fmt.Errorf("governance: decision store is required")
	}
	conditional, ok := decisions.(dao.Conditional[string, decision.Record])
	if !ok {
		return nil, fmt.Errorf("governance: decision store does not support conditional updates")
	}
	ret := &service{
		decisions:   decisions,
		conditional: conditional,
		notifier:    notification.Nop{},
		scoreConfig: DefaultTrustScoreConfig(),
		now:         clock.Now,
	}
	for _, option := range options {
		option(ret)
	}
	return ret, nil
}

// Create persists a PENDING decision and notifies approvers. Notification is
// best-effort: a delivery failure is logged and never blocks creation.
func (s *service) Create(ctx context.Context, input *CreateInput) (record *decision.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "governance.Create "+input.DecisionType, "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	if input.DecisionType == "" {
		return nil, fmt.Errorf("governance: decision type is required")
	}
	record = &decision.Record{
		ID:             idgen.New(),
		DecisionType:   input.DecisionType,
		AgentType:      input.AgentType,
		AgentMethod:    input.AgentMethod,
		StoreID:        input.StoreID,
		AISuggestion:   input.Suggestion,
		AIConfidence:   input.Confidence,
		AIReasoning:    input.Reasoning,
		AIAlternatives: input.Alternatives,
		Status:         decision.StatusPending,
		Outcome:        decision.OutcomePending,
		CreatedAt:      s.now(),
	}
	if err = s.decisions.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("governance: failed to persist decision: %w", err)
	}
	s.publish(ctx, decision.TopicCreated, record)

	card := &notification.Card{
		Title:        fmt.Sprintf("%s suggestion pending approval", input.DecisionType),
		Store:        input.StoreID,
		Confidence:   input.Confidence,
		Suggestion:   input.Suggestion,
		Reasoning:    input.Reasoning,
		Alternatives: input.Alternatives,
		Actions:      []string{decision.ActionApprove, decision.ActionModify, decision.ActionReject},
	}
	if notifyErr := s.notifier.Send(ctx, card, s.approvers); notifyErr != nil {
		s.logf("failed to notify approvers for decision %s: %v", record.ID, notifyErr)
	}
	return record, nil
}

// Approve adopts the AI suggestion as-is, dispatches execution and marks the
// decision EXECUTED.
func (s *service) Approve(ctx context.Context, id, managerID, feedback string) (record *decision.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "governance.Approve", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, ok := s.dispatchers[current.DecisionType]; !ok {
		return nil, &UnknownDecisionTypeError{DecisionType: current.DecisionType}
	}

	now := s.now()
	updated := clone(current)
	updated.Status = decision.StatusApproved
	updated.ManagerID = managerID
	updated.ManagerFeedback = feedback
	updated.ManagerDecision = current.AISuggestion
	updated.ApprovedAt = &now
	updated.ApprovalChain = append(updated.ApprovalChain, decision.ChainEntry{
		Action:    decision.ActionApprove,
		Actor:     managerID,
		Timestamp: now,
		Feedback:  feedback,
	})
	if err = s.transition(ctx, updated, decision.StatusPending); err != nil {
		return nil, err
	}
	s.publish(ctx, decision.TopicApproved, updated)

	return s.dispatch(ctx, updated, decision.StatusApproved), nil
}

// Reject declines the suggestion. Feedback is required - a rejection is
// negative training signal and must explain itself. No execution happens.
func (s *service) Reject(ctx context.Context, id, managerID, feedback string) (record *decision.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "governance.Reject", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	if feedback == "" {
		return nil, ErrFeedbackRequired
	}
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updated := clone(current)
	updated.Status = decision.StatusRejected
	updated.ManagerID = managerID
	updated.ManagerFeedback = feedback
	updated.IsTrainingData = true
	updated.ApprovalChain = append(updated.ApprovalChain, decision.ChainEntry{
		Action:    decision.ActionReject,
		Actor:     managerID,
		Timestamp: now,
		Feedback:  feedback,
	})
	if err = s.transition(ctx, updated, decision.StatusPending); err != nil {
		return nil, err
	}
	s.publish(ctx, decision.TopicRejected, updated)
	return updated, nil
}

// Modify adopts a human-adjusted variant of the suggestion, dispatches its
// execution and marks the decision EXECUTED. Modified decisions are training
// signal.
func (s *service) Modify(ctx context.Context, id, managerID string, modified map[string]interface{}, feedback string) (record *decision.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "governance.Modify", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	if len(modified) == 0 {
		return nil, fmt.Errorf("governance: modified decision is required")
	}
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, ok := s.dispatchers[current.DecisionType]; !ok {
		return nil, &UnknownDecisionTypeError{DecisionType: current.DecisionType}
	}

	now := s.now()
	updated := clone(current)
	updated.Status = decision.StatusModified
	updated.ManagerID = managerID
	updated.ManagerFeedback = feedback
	updated.ManagerDecision = modified
	updated.IsTrainingData = true
	updated.ApprovedAt = &now
	updated.ApprovalChain = append(updated.ApprovalChain, decision.ChainEntry{
		Action:    decision.ActionModify,
		Actor:     managerID,
		Timestamp: now,
		Feedback:  feedback,
	})
	if err = s.transition(ctx, updated, decision.StatusPending); err != nil {
		return nil, err
	}
	s.publish(ctx, decision.TopicModified, updated)

	return s.dispatch(ctx, updated, decision.StatusModified), nil
}

// RecordOutcome attaches the realized result, computes the deviation against
// the expectation and derives the trust score.
func (s *service) RecordOutcome(ctx context.Context, id string, input *OutcomeInput) (record *decision.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "governance.RecordOutcome", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updated := clone(current)
	updated.Outcome = input.Outcome
	updated.ActualResult = input.ActualResult
	updated.ExpectedResult = input.ExpectedResult
	updated.BusinessImpact = input.BusinessImpact
	updated.ResultDeviation = resultDeviation(input.ActualResult, input.ExpectedResult)
	score := trustScore(s.scoreConfig, updated, updated.ResultDeviation)
	updated.TrustScore = &score
	updated.ApprovalChain = append(updated.ApprovalChain, decision.ChainEntry{
		Action:    decision.ActionOutcome,
		Actor:     "system",
		Timestamp: now,
		Feedback:  string(input.Outcome),
	})
	if err = s.decisions.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("governance: failed to persist outcome: %w", err)
	}
	s.publish(ctx, decision.TopicOutcome, updated)
	return updated, nil
}

// Get returns a decision by ID.
func (s *service) Get(ctx context.Context, id string) (*decision.Record, error) {
	return s.load(ctx, id)
}

// List queries decisions by the supplied parameters (store, status, date
// range).
func (s *service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*decision.Record, error) {
	return s.decisions.List(ctx, parameters...)
}

// ListPending returns decisions still awaiting a human.
func (s *service) ListPending(ctx context.Context) ([]*decision.Record, error) {
	return s.decisions.List(ctx, dao.ByStatus(string(decision.StatusPending)))
}

// Queue exposes the decision event queue.
func (s *service) Queue() messaging.Queue[decision.Event] { return s.events }

func (s *service) load(ctx context.Context, id string) (*decision.Record, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	record, err := s.decisions.Load(ctx, id)
	if err != nil || record == nil {
		if record == nil || errors.Is(err, dao.ErrNotFound) {
			return nil, &DecisionNotFoundError{ID: id}
		}
		return nil, err
	}
	return record, nil
}

// transition performs the conditional status update; a conflict means the
// decision was already resolved elsewhere.
func (s *service) transition(ctx context.Context, record *decision.Record, expected decision.Status) error {
	if err := s.conditional.UpdateIf(ctx, record, string(expected)); err != nil {
		if errors.Is(err, dao.ErrConflict) {
			return &AlreadyResolvedError{ID: record.ID, Status: record.Status}
		}
		if errors.Is(err, dao.ErrNotFound) {
			return &DecisionNotFoundError{ID: record.ID}
		}
		return fmt.Errorf("governance: failed to update decision %s: %w", record.ID, err)
	}
	return nil
}

// dispatch executes the adopted decision and marks it EXECUTED. Dispatch
// failures are caught and logged; the adoption transition is durable and is
// never rolled back.
func (s *service) dispatch(ctx context.Context, record *decision.Record, from decision.Status) *decision.Record {
	dispatcher := s.dispatchers[record.DecisionType]
	result, err := dispatcher(ctx, record)
	if err != nil {
		s.logf("dispatch of decision %s (%s) failed: %v", record.ID, record.DecisionType, err)
		return record
	}

	now := s.now()
	executed := clone(record)
	executed.Status = decision.StatusExecuted
	executed.ExecutedAt = &now
	executed.ApprovalChain = append(executed.ApprovalChain, decision.ChainEntry{
		Action:    decision.ActionExecute,
		Actor:     "system",
		Timestamp: now,
		Feedback:  fmt.Sprintf("%v", result),
	})
	if err := s.transition(ctx, executed, from); err != nil {
		s.logf("failed to mark decision %s executed: %v", record.ID, err)
		return record
	}
	s.publish(ctx, decision.TopicExecuted, executed)
	return executed
}

func (s *service) publish(ctx context.Context, topic string, record *decision.Record) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, &decision.Event{Topic: topic, Record: record}); err != nil {
		s.logf("failed to publish %s event for %s: %v", topic, record.ID, err)
	}
}

func (s *service) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// clone copies a record so conditional updates never mutate the stored copy
// in place.
func clone(record *decision.Record) *decision.Record {
	copied := *record
	copied.ApprovalChain = append([]decision.ChainEntry(nil), record.ApprovalChain...)
	return &copied
}

var _ Service = (*service)(nil)
