package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTxCommits(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO units").WithArgs("101").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = WithTx(mockDB, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO units (unit_number) VALUES (?)", "101")
		return err
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO units").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err = WithTx(mockDB, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO units (unit_number) VALUES (?)", "101"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollbackFailureKeepsCause(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("disk I/O error"))

	err = WithTx(mockDB, func(tx *sql.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "also failed to roll back")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxBeginError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	called := false
	err = WithTx(mockDB, func(tx *sql.Tx) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called, "fn must not run without a transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxCommitError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("constraint failed"))

	err = WithTx(mockDB, func(tx *sql.Tx) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "committing transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxSQLiteRollback(t *testing.T) {
	d := openTestDB(t)

	boom := errors.New("boom")
	err := WithTx(d, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO units (unit_number) VALUES ('101')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM units`).Scan(&count))
	assert.Equal(t, 0, count, "insert should have been rolled back")
}
