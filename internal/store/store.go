package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/salonhub/salon-api/internal/db"
	"github.com/salonhub/salon-api/internal/metrics"
)

// Row is the untyped record shape used only at the store boundary.
type Row = map[string]any

// DeleteResult reports the outcome of a delete.
type DeleteResult struct {
	AffectedRows int64 `json:"affected_rows"`
}

// Store runs record operations, each on a single connection borrowed from
// the provider and released before returning.
type Store struct {
	provider *db.Provider
}

func New(p *db.Provider) *Store {
	return &Store{provider: p}
}

// run executes fn on one pooled connection and records query metrics.
// Statement failures come back as *StorageError; connection and query
// builder errors pass through unchanged.
func (s *Store) run(ctx context.Context, op, table string, fn func(tx *gorm.DB) error) error {
	start := time.Now()
	err := s.provider.WithConn(ctx, func(c *db.Conn) error {
		return fn(c.DB())
	})
	metrics.RecordDBQuery(op, table, time.Since(start), err)

	if err == nil || db.IsConnectionError(err) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidQuery) {
		return err
	}
	return newStorageError(op, table, err)
}

// SelectAll returns every row matching q, never nil.
func SelectAll[T any](ctx context.Context, s *Store, t Table, q Query) ([]T, error) {
	sql, args, err := BuildSelect(t, q)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0)
	err = s.run(ctx, "select", t.name, func(tx *gorm.DB) error {
		return tx.Raw(sql, args...).Scan(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SelectByID returns nil, nil when no row has the id.
func SelectByID[T any](ctx context.Context, s *Store, t Table, id int64) (*T, error) {
	var out *T
	err := s.run(ctx, "select", t.name, func(tx *gorm.DB) error {
		var err error
		out, err = selectByID[T](tx, t, id)
		return err
	})
	return out, err
}

func selectByID[T any](tx *gorm.DB, t Table, id int64) (*T, error) {
	sql, args := BuildSelectByID(t, id)
	var rows []T
	if err := tx.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Store) Count(ctx context.Context, t Table, conds []Condition, search *Search) (int64, error) {
	sql, args, err := BuildCount(t, conds, search)
	if err != nil {
		return 0, err
	}

	var n int64
	err = s.run(ctx, "count", t.name, func(tx *gorm.DB) error {
		return tx.Raw(sql, args...).Scan(&n).Error
	})
	return n, err
}

// Insert writes fields and re-selects the new row by its generated id. It
// returns nil, nil when the store reports no inserted row, or when the row
// vanished before the re-select.
func Insert[T any](ctx context.Context, s *Store, t Table, fields Fields) (*T, error) {
	sql, args, err := BuildInsert(t, fields)
	if err != nil {
		return nil, err
	}

	var out *T
	err = s.run(ctx, "insert", t.name, func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Transaction(func(tx *gorm.DB) error {
			return tx.Raw(sql, args...).Scan(&ids).Error
		}); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		var err error
		out, err = selectByID[T](tx, t, ids[0])
		return err
	})
	return out, err
}

// Update overwrites only the supplied fields. With nothing to write it is a
// plain fetch. Returns nil, nil when the id does not exist.
func Update[T any](ctx context.Context, s *Store, t Table, id int64, fields Fields) (*T, error) {
	if fields.Empty() {
		return SelectByID[T](ctx, s, t, id)
	}

	sql, args, err := BuildUpdate(t, id, fields)
	if err != nil {
		return nil, err
	}

	var out *T
	err = s.run(ctx, "update", t.name, func(tx *gorm.DB) error {
		var affected int64
		if err := tx.Transaction(func(tx *gorm.DB) error {
			res := tx.Exec(sql, args...)
			affected = res.RowsAffected
			return res.Error
		}); err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}

		var err error
		out, err = selectByID[T](tx, t, id)
		return err
	})
	return out, err
}

// Delete removes the row with id. Deleting a missing id is ErrNotFound.
func (s *Store) Delete(ctx context.Context, t Table, id int64) (DeleteResult, error) {
	sql, args := BuildDelete(t, id)

	var res DeleteResult
	err := s.run(ctx, "delete", t.name, func(tx *gorm.DB) error {
		if err := tx.Transaction(func(tx *gorm.DB) error {
			r := tx.Exec(sql, args...)
			res.AffectedRows = r.RowsAffected
			return r.Error
		}); err != nil {
			return err
		}
		if res.AffectedRows == 0 {
			return ErrNotFound
		}
		return nil
	})
	return res, err
}

// Raw runs a fixed read-only statement and scans the result into dest.
// label names the query in metrics and errors.
func (s *Store) Raw(ctx context.Context, label string, dest any, sql string, args ...any) error {
	return s.run(ctx, "raw", label, func(tx *gorm.DB) error {
		return tx.Raw(sql, args...).Scan(dest).Error
	})
}

// Exec runs a fixed write statement and returns the affected row count.
func (s *Store) Exec(ctx context.Context, label string, sql string, args ...any) (int64, error) {
	var affected int64
	err := s.run(ctx, "exec", label, func(tx *gorm.DB) error {
		return tx.Transaction(func(tx *gorm.DB) error {
			r := tx.Exec(sql, args...)
			affected = r.RowsAffected
			return r.Error
		})
	})
	return affected, err
}
