package db

import (
	"database/sql"
	"fmt"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so repositories can run
// standalone or inside a transaction.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Beginner starts transactions. *sql.DB implements it.
type Beginner interface {
	Begin() (*sql.Tx, error)
}

// WithTx runs fn inside a transaction. The transaction commits if fn returns
// nil and rolls back otherwise; fn's error is returned unwrapped so callers
// can match sentinel errors.
func WithTx(db Beginner, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
