package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/opsfabric/warden/service/dao"
)

// entityStore implements the shared persistence contract for one table.
// Entities are stored as JSON bodies; id, status, store_id and created_at
// are denormalised into columns for querying and conditional updates.
type entityStore[T any] struct {
	db        *sql.DB
	table     string
	key       func(*T) string
	status    func(*T) string
	storeID   func(*T) string
	createdAt func(*T) time.Time
}

func (s *entityStore[T]) Save(ctx context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	id := s.key(v)
	if id == "" {
		return dao.ErrInvalidID
	}
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sqlite: failed to marshal %v: %w", id, err)
	}
	insertSQL := fmt.Sprintf(`
INSERT INTO %s (id, status, store_id, body, created_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	status = excluded.status,
	store_id = excluded.store_id,
	body = excluded.body
`, s.table)
	_, err = s.db.ExecContext(ctx, insertSQL, id, s.status(v), s.storeID(v), string(body), toMillis(s.createdAt(v)))
	if err != nil {
		return fmt.Errorf("sqlite: failed to save %v: %w", id, err)
	}
	return nil
}

func (s *entityStore[T]) Load(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT body FROM %s WHERE id = ?", s.table), id)
	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dao.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: failed to load %v: %w", id, err)
	}
	var v T
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return nil, fmt.Errorf("sqlite: failed to unmarshal %v: %w", id, err)
	}
	return &v, nil
}

func (s *entityStore[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.table), id)
	return err
}

func (s *entityStore[T]) List(ctx context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	querySQL := fmt.Sprintf("SELECT body FROM %s", s.table)
	var conditions []string
	var args []interface{}
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		switch parameter.Name {
		case dao.ParamStoreID:
			conditions = append(conditions, "store_id = ?")
			args = append(args, parameter.Value)
		case dao.ParamStatus:
			conditions = append(conditions, "status = ?")
			args = append(args, parameter.Value)
		case dao.ParamSince:
			if t, ok := parameter.Value.(time.Time); ok {
				conditions = append(conditions, "created_at >= ?")
				args = append(args, toMillis(t))
			}
		case dao.ParamUntil:
			if t, ok := parameter.Value.(time.Time); ok {
				conditions = append(conditions, "created_at <= ?")
				args = append(args, toMillis(t))
			}
		default:
			return nil, fmt.Errorf("sqlite: unsupported parameter %q", parameter.Name)
		}
	}
	for i, condition := range conditions {
		if i == 0 {
			querySQL += " WHERE " + condition
		} else {
			querySQL += " AND " + condition
		}
	}
	querySQL += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, querySQL, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query %v: %w", s.table, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			return nil, fmt.Errorf("sqlite: failed to unmarshal row: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// UpdateIf performs the atomic compare-on-status update that serialises
// state transitions across concurrent service instances.
func (s *entityStore[T]) UpdateIf(ctx context.Context, v *T, expectedStatus string) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	id := s.key(v)
	if id == "" {
		return dao.ErrInvalidID
	}
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sqlite: failed to marshal %v: %w", id, err)
	}
	updateSQL := fmt.Sprintf("UPDATE %s SET status = ?, body = ? WHERE id = ? AND status = ?", s.table)
	result, err := s.db.ExecContext(ctx, updateSQL, s.status(v), string(body), id, expectedStatus)
	if err != nil {
		return fmt.Errorf("sqlite: failed to update %v: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Zero rows affected: distinguish a missing row from a status race.
	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", s.table), id)
	var one int
	if scanErr := row.Scan(&one); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return dao.ErrNotFound
		}
		return scanErr
	}
	return dao.ErrConflict
}
