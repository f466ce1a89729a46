package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanbadgujar20011/food-delivery-app/migrations"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func expectTrackingTable(mock pgxmock.PgxPoolIface) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
}

func expectMigrationApplied(mock pgxmock.PgxPoolIface, version, sqlFragment string) {
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(version).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(sqlFragment).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(version).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
}

func TestRunMigrations_AppliesAllFilesInOrder(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	expectTrackingTable(mock)
	expectMigrationApplied(mock, "001_create_orders.up.sql", "CREATE TABLE IF NOT EXISTS orders")
	expectMigrationApplied(mock, "002_create_payments.up.sql", "CREATE TABLE IF NOT EXISTS payments")

	err = RunMigrations(context.Background(), mock, migrations.FS, discardLogger())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_SkipsAlreadyApplied(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	expectTrackingTable(mock)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("001_create_orders.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	expectMigrationApplied(mock, "002_create_payments.up.sql", "CREATE TABLE IF NOT EXISTS payments")

	err = RunMigrations(context.Background(), mock, migrations.FS, discardLogger())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_RollsBackOnSQLError(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	expectTrackingTable(mock)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("001_create_orders.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS orders").
		WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err = RunMigrations(context.Background(), mock, migrations.FS, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_create_orders.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The check-then-insert on idempotent order creation relies on the database
// rejecting a second row for the same (user_id, idempotency_key) under a
// concurrent replay.
func TestMigrations_OrdersHaveUniqueIdempotencyIndex(t *testing.T) {
	content, err := migrations.FS.ReadFile("001_create_orders.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(content), "CREATE UNIQUE INDEX")
	assert.Contains(t, string(content), "orders (user_id, idempotency_key)")
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.False(t, isConnectionError(errors.New("syntax error at or near")))
	assert.True(t, isConnectionError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")))
	assert.True(t, isConnectionError(errors.New("unexpected EOF")))
}
