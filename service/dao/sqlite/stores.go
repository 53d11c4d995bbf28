package sqlite

import (
	"github.com/opsfabric/warden/model/decision"
	"github.com/opsfabric/warden/model/execution"
	"github.com/opsfabric/warden/service/dao"
)

// ExecutionStore persists execution audit records.
type ExecutionStore struct {
	entityStore[execution.Record]
}

// DecisionStore persists governed decisions.
type DecisionStore struct {
	entityStore[decision.Record]
}

var (
	_ dao.Service[string, execution.Record]     = (*ExecutionStore)(nil)
	_ dao.Conditional[string, execution.Record] = (*ExecutionStore)(nil)
	_ dao.Service[string, decision.Record]      = (*DecisionStore)(nil)
	_ dao.Conditional[string, decision.Record]  = (*DecisionStore)(nil)
)
