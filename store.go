package paysync

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed sql/schema.sql
var schemaSQL string

// Referential integrity is opt-in per connection in SQLite.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
}

// Target tables of the batched update, with the single column each one
// allows. Anything outside this set never reaches SQL.
var bulkTargets = map[string]string{
	"employees": ColEmployeeName,
	"salaries":  ColBasicSalary,
}

// KeyedValue is one (value, employee_id) pair of a batched update.
type KeyedValue struct {
	Value      any
	EmployeeID int64
}

// Gateway is the engine-facing store surface. It owns one connection and at
// most one open transaction per run; every read and write during a sync
// happens inside that transaction.
type Gateway interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	InsertEmployee(ctx context.Context, employeeID int64, employeeName string) error
	InsertSalary(ctx context.Context, employeeID int64, basicSalary int64) error
	BulkUpdate(ctx context.Context, table, column string, rows []KeyedValue) (int64, error)
	Close() error
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping store")
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrap(err, pragma)
		}
	}

	return &Store{db: db}, nil
}

// Store is the SQLite implementation of Gateway.
type Store struct {
	db *sql.DB
	tx *sql.Tx
}

var _ Gateway = (*Store)(nil)

// Provision creates the employees and salaries tables if absent. It is
// idempotent and runs outside the per-run transaction.
func (s *Store) Provision() error {
	_, err := s.db.Exec(schemaSQL)
	return errors.Wrap(err, "provision tables")
}

func (s *Store) Begin(ctx context.Context) error {
	if s.tx != nil {
		return &StoreError{Op: "transaction already open"}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Op: "begin transaction", Err: err}
	}
	s.tx = tx
	return nil
}

func (s *Store) Commit() error {
	if s.tx == nil {
		return &StoreError{Op: "commit without open transaction"}
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return &StoreError{Op: "commit", Err: err}
	}
	return nil
}

// Rollback is a no-op when no transaction is open, so it is safe to defer
// on every exit path.
func (s *Store) Rollback() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return &StoreError{Op: "rollback", Err: err}
	}
	return nil
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	if s.tx == nil {
		return false, &StoreError{Op: "employee lookup without open transaction"}
	}
	var one int
	err := s.tx.QueryRowContext(ctx, "SELECT 1 FROM employees WHERE employee_id = ?", employeeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &StoreError{Op: "employee lookup", Err: err}
	}
	return true, nil
}

func (s *Store) InsertEmployee(ctx context.Context, employeeID int64, employeeName string) error {
	if s.tx == nil {
		return &StoreError{Op: "insert employee without open transaction"}
	}
	_, err := s.tx.ExecContext(ctx,
		"INSERT INTO employees (employee_id, employee_name) VALUES (?, ?)", employeeID, employeeName)
	if err != nil {
		return &StoreError{Op: fmt.Sprintf("insert employee %d", employeeID), Err: err}
	}
	return nil
}

func (s *Store) InsertSalary(ctx context.Context, employeeID int64, basicSalary int64) error {
	if s.tx == nil {
		return &StoreError{Op: "insert salary without open transaction"}
	}
	_, err := s.tx.ExecContext(ctx,
		"INSERT INTO salaries (employee_id, basic_salary) VALUES (?, ?)", employeeID, basicSalary)
	if err != nil {
		return &StoreError{Op: fmt.Sprintf("insert salary %d", employeeID), Err: err}
	}
	return nil
}

// BulkUpdate applies one prepared update statement over all pairs, keyed by
// employee_id, and returns the summed rows affected.
func (s *Store) BulkUpdate(ctx context.Context, table, column string, rows []KeyedValue) (int64, error) {
	if s.tx == nil {
		return 0, &StoreError{Op: "bulk update without open transaction"}
	}
	if bulkTargets[table] != column {
		return 0, &StoreError{Op: fmt.Sprintf("bulk update target %s.%s not allowed", table, column)}
	}

	stmt, err := s.tx.PrepareContext(ctx,
		fmt.Sprintf("UPDATE %s SET %s = ? WHERE employee_id = ?", table, column))
	if err != nil {
		return 0, &StoreError{Op: fmt.Sprintf("prepare bulk update %s.%s", table, column), Err: err}
	}
	defer stmt.Close()

	var affected int64
	for _, row := range rows {
		result, err := stmt.ExecContext(ctx, row.Value, row.EmployeeID)
		if err != nil {
			return affected, &StoreError{Op: fmt.Sprintf("bulk update %s.%s employee %d", table, column, row.EmployeeID), Err: err}
		}
		n, err := result.RowsAffected()
		if err != nil {
			return affected, &StoreError{Op: fmt.Sprintf("bulk update %s.%s rows affected", table, column), Err: err}
		}
		affected += n
	}
	return affected, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
