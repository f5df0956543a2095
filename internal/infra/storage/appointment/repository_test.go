package appointment

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureExecutor фиксирует построенный SQL и возвращает заданную ошибку
type captureExecutor struct {
	query string
	err   error
}

func (e *captureExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.query = query
	return nil, e.err
}

func (e *captureExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	e.query = query
	return nil
}

func (e *captureExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query = query
	return nil, e.err
}

// schemaColumns разбирает колонки таблицы из migrations/001_init.sql
func schemaColumns(t *testing.T, table string) map[string]struct{} {
	t.Helper()

	ddl, err := os.ReadFile("../../../../migrations/001_init.sql")
	require.NoError(t, err)

	cols := make(map[string]struct{})
	inTable := false
	for _, line := range strings.Split(string(ddl), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			inTable = true
			continue
		}
		if !inTable {
			continue
		}
		if strings.HasPrefix(trimmed, ");") {
			break
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "--") || strings.HasPrefix(trimmed, "CONSTRAINT") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) > 0 {
			cols[fields[0]] = struct{}{}
		}
	}

	require.NotEmpty(t, cols, "table %s not found in migration", table)
	return cols
}

func TestRepositoryColumnsMatchMigration(t *testing.T) {
	schema := schemaColumns(t, "appointments")

	for _, col := range columns {
		_, ok := schema[col]
		assert.True(t, ok, "select column %q is missing from the appointments DDL", col)
	}
	for _, col := range insertColumns {
		_, ok := schema[col]
		assert.True(t, ok, "insert column %q is missing from the appointments DDL", col)
	}
}

func TestListHoldingSelectsDeclaredColumns(t *testing.T) {
	executor := &captureExecutor{err: errors.New("stop")}
	repo := NewRepository(executor)

	from := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	_, err := repo.ListHolding(context.Background(), from, from.Add(time.Hour), from.Add(-10*time.Minute), nil)
	require.Error(t, err)

	assert.Contains(t, executor.query, "FROM appointments")
	for _, col := range columns {
		assert.Contains(t, executor.query, col)
	}
}

func TestListHoldingPreservesDriverError(t *testing.T) {
	executor := &captureExecutor{err: &pq.Error{Code: "40001"}}
	repo := NewRepository(executor)

	from := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	_, err := repo.ListHolding(context.Background(), from, from.Add(time.Hour), from.Add(-10*time.Minute), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr), "driver error must stay in the chain")
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestConfirmKeepsConfirmationToken(t *testing.T) {
	executor := &captureExecutor{err: errors.New("stop")}
	repo := NewRepository(executor)

	err := repo.Confirm(context.Background(), 1, nil)
	require.Error(t, err)

	assert.Contains(t, executor.query, "UPDATE appointments")
	assert.Contains(t, executor.query, "status")
	assert.Contains(t, executor.query, "google_event_id")
	assert.NotContains(t, executor.query, "confirmation_token")
}
