package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opsfabric/warden/service/dao"
	"github.com/opsfabric/warden/service/dao/store"
)

type entity struct {
	ID        string
	Status    string
	StoreID   string
	CreatedAt time.Time
}

func newStore() *store.MemoryStore[string, entity] {
	return store.NewMemoryStore[string, entity](
		func(e *entity) string { return e.ID },
		store.WithStatusSelector[string, entity](func(e *entity) string { return e.Status }),
		store.WithMatcher[string, entity](func(e *entity, p *dao.Parameter) bool {
			switch p.Name {
			case dao.ParamStoreID:
				return e.StoreID == p.Value
			case dao.ParamStatus:
				return e.Status == p.Value
			case dao.ParamSince:
				t, ok := p.Value.(time.Time)
				return ok && !e.CreatedAt.Before(t)
			case dao.ParamUntil:
				t, ok := p.Value.(time.Time)
				return ok && !e.CreatedAt.After(t)
			}
			return false
		}),
	)
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	assert.ErrorIs(t, s.Save(ctx, nil), dao.ErrNilEntity)

	e := &entity{ID: "e1", Status: "PENDING", StoreID: "S1", CreatedAt: time.Now()}
	assert.NoError(t, s.Save(ctx, e))

	loaded, err := s.Load(ctx, "e1")
	assert.NoError(t, err)
	assert.Equal(t, "PENDING", loaded.Status)

	assert.NoError(t, s.Delete(ctx, "e1"))
	_, err = s.Load(ctx, "e1")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestMemoryStoreUpdateIf(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	e := &entity{ID: "e1", Status: "PENDING"}
	assert.NoError(t, s.Save(ctx, e))

	// Happy path: expected status matches.
	updated := &entity{ID: "e1", Status: "APPROVED"}
	assert.NoError(t, s.UpdateIf(ctx, updated, "PENDING"))

	// Second conditional update against the stale expectation conflicts.
	again := &entity{ID: "e1", Status: "REJECTED"}
	assert.ErrorIs(t, s.UpdateIf(ctx, again, "PENDING"), dao.ErrConflict)

	// Missing record.
	missing := &entity{ID: "e2", Status: "APPROVED"}
	assert.ErrorIs(t, s.UpdateIf(ctx, missing, "PENDING"), dao.ErrNotFound)

	loaded, err := s.Load(ctx, "e1")
	assert.NoError(t, err)
	assert.Equal(t, "APPROVED", loaded.Status)
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	records := []*entity{
		{ID: "a", Status: "PENDING", StoreID: "S1", CreatedAt: base},
		{ID: "b", Status: "EXECUTED", StoreID: "S1", CreatedAt: base.Add(time.Hour)},
		{ID: "c", Status: "PENDING", StoreID: "S2", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range records {
		assert.NoError(t, s.Save(ctx, r))
	}

	all, err := s.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	byStore, err := s.List(ctx, dao.ByStoreID("S1"))
	assert.NoError(t, err)
	assert.Len(t, byStore, 2)

	pending, err := s.List(ctx, dao.ByStoreID("S1"), dao.ByStatus("PENDING"))
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, "a", pending[0].ID)

	ranged, err := s.List(ctx, dao.Since(base.Add(30*time.Minute)), dao.Until(base.Add(90*time.Minute)))
	assert.NoError(t, err)
	assert.Len(t, ranged, 1)
	assert.Equal(t, "b", ranged[0].ID)
}
