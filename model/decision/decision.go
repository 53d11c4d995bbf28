// Package decision defines the governance model for AI-originated
// suggestions awaiting human review.
package decision

import "time"

// Status is the decision state machine. Status only advances forward; it
// never moves backward.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusModified  Status = "MODIFIED"
	StatusExecuted  Status = "EXECUTED"
	StatusCancelled Status = "CANCELLED"
)

// Outcome classifies the realized business result of an executed decision.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailure Outcome = "FAILURE"
	OutcomePartial Outcome = "PARTIAL"
	OutcomePending Outcome = "PENDING"
)

// ChainEntry is one step in the human approval chain.
type ChainEntry struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Feedback  string    `json:"feedback,omitempty"`
}

// Record is a single governed decision.
type Record struct {
	ID           string `json:"id"`
	DecisionType string `json:"decisionType"`
	AgentType    string `json:"agentType,omitempty"`
	AgentMethod  string `json:"agentMethod,omitempty"`
	StoreID      string `json:"storeId,omitempty"`

	AISuggestion   map[string]interface{} `json:"aiSuggestion,omitempty"`
	AIConfidence   float64                `json:"aiConfidence"`
	AIReasoning    string                 `json:"aiReasoning,omitempty"`
	AIAlternatives []interface{}          `json:"aiAlternatives,omitempty"`

	ManagerID       string                 `json:"managerId,omitempty"`
	ManagerDecision map[string]interface{} `json:"managerDecision,omitempty"`
	ManagerFeedback string                 `json:"managerFeedback,omitempty"`

	Status Status `json:"status"`

	CreatedAt  time.Time  `json:"createdAt"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	ExecutedAt *time.Time `json:"executedAt,omitempty"`

	Outcome         Outcome                `json:"outcome,omitempty"`
	ActualResult    map[string]interface{} `json:"actualResult,omitempty"`
	ExpectedResult  map[string]interface{} `json:"expectedResult,omitempty"`
	BusinessImpact  string                 `json:"businessImpact,omitempty"`
	ResultDeviation *float64               `json:"resultDeviation,omitempty"`
	TrustScore      *float64               `json:"trustScore,omitempty"`

	IsTrainingData bool         `json:"isTrainingData"`
	ApprovalChain  []ChainEntry `json:"approvalChain,omitempty"`
}

// Resolution returns the last resolving action recorded in the approval
// chain ("approve", "modify" or "reject"), or "" when the decision is still
// pending.
func (r *Record) Resolution() string {
	for i := len(r.ApprovalChain) - 1; i >= 0; i-- {
		switch r.ApprovalChain[i].Action {
		case ActionApprove, ActionModify, ActionReject:
			return r.ApprovalChain[i].Action
		}
	}
	return ""
}

// Approval chain actions.
const (
	ActionApprove = "approve"
	ActionModify  = "modify"
	ActionReject  = "reject"
	ActionExecute = "execute"
	ActionOutcome = "outcome"
)

// Event topics published on the decision event queue.
const (
	TopicCreated  = "decision.created"
	TopicApproved = "decision.approved"
	TopicRejected = "decision.rejected"
	TopicModified = "decision.modified"
	TopicExecuted = "decision.executed"
	TopicOutcome  = "decision.outcome"
)

// Event is the envelope published for decision lifecycle changes.
type Event struct {
	Topic   string            `json:"topic"`
	Record  *Record           `json:"record"`
	Headers map[string]string `json:"headers,omitempty"`
}
