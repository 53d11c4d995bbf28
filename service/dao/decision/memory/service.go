// Package memory provides the default in-memory decision store.
package memory

import (
	"time"

	"github.com/opsfabric/warden/model/decision"
	"github.com/opsfabric/warden/service/dao"
	"github.com/opsfabric/warden/service/dao/store"
)

// New creates an in-memory decision store supporting conditional status
// updates and store/status/date-range queries.
func New() *store.MemoryStore[string, decision.Record] {
	return store.NewMemoryStore[string, decision.Record](
		func(r *decision.Record) string { return r.ID },
		store.WithStatusSelector[string, decision.Record](func(r *decision.Record) string { return string(r.Status) }),
		store.WithMatcher[string, decision.Record](match),
	)
}

func match(r *decision.Record, parameter *dao.Parameter) bool {
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
