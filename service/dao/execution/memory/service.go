// Package memory provides the default in-memory execution record store.
package memory

import (
	"time"

	"github.com/opsfabric/warden/model/execution"
	"github.com/opsfabric/warden/service/dao"
	"github.com/opsfabric/warden/service/dao/store"
)

// New creates an in-memory execution store supporting conditional status
// updates and store/status/date-range queries.
func New() *store.MemoryStore[string, execution.Record] {
	return store.NewMemoryStore[string, execution.Record](
		func(r *execution.Record) string { return r.ID },
		store.WithStatusSelector[string, execution.Record](func(r *execution.Record) string { return string(r.Status) }),
		store.WithMatcher[string, execution.Record](match),
	)
}

func match(r *execution.Record, parameter *dao.Parameter) bool {
	switch parameter.Name {
	case dao.ParamStoreID:
		return r.StoreID == parameter.Value
	case dao.ParamStatus:
		return string(r.Status) == parameter.Value
	case dao.ParamSince:
		t, ok := parameter.Value.(time.Time)
		return ok && !r.CreatedAt.Before(t)
	case dao.ParamUntil:
		t, ok := parameter.Value.(time.Time)
		return ok && !r.CreatedAt.After(t)
	}
	return false
}
