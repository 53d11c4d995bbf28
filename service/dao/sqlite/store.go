// Package sqlite provides durable execution and decision stores backed by
// the pure-Go sqlite driver. Records are persisted as JSON bodies alongside
// the columns needed for querying and for atomic conditional status updates;
// the append-only audit discipline (no UPDATE beyond the status-conditional
// path) is expected to be reinforced at the storage-role level in shared
// deployments.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/opsfabric/warden/model/decision"
	"github.com/opsfabric/warden/model/execution"

	_ "modernc.org/sqlite"
)

const (
	executionTable = "execution_records"
	decisionTable  = "decision_records"
)

// Store owns the database handle and hands out entity stores.
type Store struct {
	db *sql.DB
}

// Open opens (creating when absent) a sqlite database at path and applies
// the schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %v: %w", path, err)
	}
	return New(db)
}

// New wraps an existing handle and applies the schema.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite: db is required")
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying handle.
func (s *Store) Close() error { return s.db.Close() }

// Executions returns the execution record store.
func (s *Store) Executions() *ExecutionStore {
	return &ExecutionStore{entityStore: entityStore[execution.Record]{
		db:        s.db,
		table:     executionTable,
		key:       func(r *execution.Record) string { return r.ID },
		status:    func(r *execution.Record) string { return string(r.Status) },
		storeID:   func(r *execution.Record) string { return r.StoreID },
		createdAt: func(r *execution.Record) time.Time { return r.CreatedAt },
	}}
}

// Decisions returns the decision record store.
func (s *Store) Decisions() *DecisionStore {
	return &DecisionStore{entityStore: entityStore[decision.Record]{
		db:        s.db,
		table:     decisionTable,
		key:       func(r *decision.Record) string { return r.ID },
		status:    func(r *decision.Record) string { return string(r.Status) },
		storeID:   func(r *decision.Record) string { return r.StoreID },
		createdAt: func(r *decision.Record) time.Time { return r.CreatedAt },
	}}
}

func migrate(db *sql.DB) error {
	for _, table := range []string{executionTable, decisionTable} {
		statements := []string{
			fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	store_id TEXT,
	body TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`, table),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%[1]s_store_status ON %[1]s(store_id, status)", table),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%[1]s_created ON %[1]s(created_at)", table),
		}
		for _, statement := range statements {
			if _, err := db.Exec(statement); err != nil {
				return fmt.Errorf("sqlite: failed to ensure table %v: %w", table, err)
			}
		}
	}
	return nil
}

func toMillis(t time.Time) int64 { return t.UnixMilli() }
