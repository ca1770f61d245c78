package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func hasIndex(t *testing.T, conn *sql.DB, name string) bool {
	t.Helper()
	var got string
	err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", name).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestOpen_MigratesToLatest(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	latest, err := LatestVersion()
	require.NoError(t, err)
	version, err := database.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, latest, version)

	_, err = database.Conn().ExecContext(ctx, "SELECT 1 FROM codeblocks LIMIT 0")
	require.NoError(t, err, "codeblocks table should exist")
	assert.True(t, hasIndex(t, database.Conn(), "idx_codeblocks_category"))
}

func TestMigrate_Idempotent(t *testing.T) {
	database := openTestDB(t)

	assert.NoError(t, migrate(context.Background(), database.Conn()))
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	_, err := database.Conn().ExecContext(ctx, "PRAGMA user_version = 99")
	require.NoError(t, err)

	err = migrate(ctx, database.Conn())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than this build")
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	database, err := Open(dir)
	require.NoError(t, err)
	_, err = database.Conn().ExecContext(ctx,
		"INSERT INTO codeblocks (id, title, created_at, updated_at) VALUES (1, 'kept', 1, 1)")
	require.NoError(t, err)
	require.NoError(t, database.Close())

	database, err = Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	var title string
	require.NoError(t, database.Conn().QueryRowContext(ctx, "SELECT title FROM codeblocks WHERE id = 1").Scan(&title))
	assert.Equal(t, "kept", title)
	assert.Equal(t, filepath.Join(dir, FileName), database.Path())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := database.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO codeblocks (id, title, created_at, updated_at) VALUES (1, 'gone', 1, 1)")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, database.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM codeblocks").Scan(&count))
	assert.Zero(t, count)
}

func TestRollback_OneStepKeepsRows(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	conn := database.Conn()

	_, err := conn.ExecContext(ctx,
		"INSERT INTO codeblocks (id, title, category, created_at, updated_at) VALUES (1, 'Hello', 'basics', 1, 1)")
	require.NoError(t, err)

	version, err := database.Rollback(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.False(t, hasIndex(t, conn, "idx_codeblocks_category"))

	var count int
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM codeblocks").Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, migrate(ctx, conn))
	assert.True(t, hasIndex(t, conn, "idx_codeblocks_category"))
}

func TestRollback_Errors(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	latest, err := LatestVersion()
	require.NoError(t, err)

	tests := []struct {
		name    string
		steps   int
		wantErr string
	}{
		{name: "zero", steps: 0, wantErr: "must be positive"},
		{name: "negative", steps: -1, wantErr: "must be positive"},
		{name: "past empty", steps: latest + 1, wantErr: "cannot roll back"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := database.Rollback(ctx, tt.steps)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	version, err := database.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, latest, version, "failed rollbacks leave the schema alone")
}

func TestLoadSteps(t *testing.T) {
	steps, err := loadSteps()
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	for i, s := range steps {
		assert.Equal(t, i+1, s.version)
		assert.NotEmpty(t, s.name)
		assert.NotContains(t, s.up, downMarker)
		assert.NotEmpty(t, s.down)
	}
	assert.Equal(t, "create_codeblocks", steps[0].name)
}
