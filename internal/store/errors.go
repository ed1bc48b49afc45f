package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound marks a lookup or delete that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidQuery is returned when a query references an unknown
	// column, operator or sort direction.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNotInserted marks an insert the store acknowledged without
	// returning the new row.
	ErrNotInserted = errors.New("insert returned no row")
)

const codeUniqueViolation = "23505"

// StorageError wraps a failed statement. Code carries the SQLSTATE when the
// driver reports one.
type StorageError struct {
	Op    string
	Table string
	Code  string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store: %s %s (%s): %v", e.Op, e.Table, e.Code, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func newStorageError(op, table string, err error) *StorageError {
	se := &StorageError{Op: op, Table: table, Err: err}

	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		se.Code = pgErr.Code
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		// sqlite reports constraint failures as plain messages
		se.Code = codeUniqueViolation
	}
	return se
}

func IsUniqueViolation(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Code == codeUniqueViolation
}
