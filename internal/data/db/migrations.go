package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/colonyops/codeblocks/internal/core/logging"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	upMarker   = "-- +up"
	downMarker = "-- +down"
)

// step is one schema change. Its version is the numeric file prefix and is
// stored in the database header with PRAGMA user_version once applied.
type step struct {
	version int
	name    string
	up      string
	down    string
}

// loadSteps reads the embedded migration files. Versions must run 1..n with
// no gaps so that user_version alone says which steps are applied.
func loadSteps() ([]step, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, err
	}

	steps := make([]step, 0, len(names))
	for i, name := range names {
		s, err := parseStep(name)
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", path.Base(name), err)
		}
		if s.version != i+1 {
			return nil, fmt.Errorf("migration %s: expected version %d", path.Base(name), i+1)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// parseStep reads "NNNN_name.sql" holding an "-- +up" section followed by a
// "-- +down" section.
func parseStep(name string) (step, error) {
	base := strings.TrimSuffix(path.Base(name), ".sql")
	num, label, ok := strings.Cut(base, "_")
	if !ok || label == "" {
		return step{}, fmt.Errorf("file name must look like 0001_name.sql")
	}
	version, err := strconv.Atoi(num)
	if err != nil || version <= 0 {
		return step{}, fmt.Errorf("bad version %q", num)
	}

	body, err := fs.ReadFile(migrationFiles, name)
	if err != nil {
		return step{}, err
	}
	up, down, ok := strings.Cut(string(body), downMarker)
	if !ok || !strings.Contains(up, upMarker) {
		return step{}, fmt.Errorf("needs %q and %q sections", upMarker, downMarker)
	}
	up = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(up), upMarker))
	down = strings.TrimSpace(down)
	if up == "" || down == "" {
		return step{}, fmt.Errorf("empty %q or %q section", upMarker, downMarker)
	}

	return step{version: version, name: label, up: up, down: down}, nil
}

// LatestVersion is the schema version this build migrates to.
func LatestVersion() (int, error) {
	steps, err := loadSteps()
	if err != nil {
		return 0, err
	}
	return len(steps), nil
}

func schemaVersion(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
},
) (int, error) {
	var v int
	if err := q.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// migrate applies every step newer than the recorded schema version.
func migrate(ctx context.Context, conn *sql.DB) error {
	steps, err := loadSteps()
	if err != nil {
		return err
	}
	current, err := schemaVersion(ctx, conn)
	if err != nil {
		return err
	}
	if current > len(steps) {
		return fmt.Errorf("schema version %d is newer than this build (%d)", current, len(steps))
	}

	l := logging.Component("db")
	for _, s := range steps[current:] {
		l.Info().Int("version", s.version).Str("name", s.name).Msg("applying migration")
		if err := runStep(ctx, conn, s.up, s.version); err != nil {
			return fmt.Errorf("migration %04d_%s: %w", s.version, s.name, err)
		}
	}
	return nil
}

// rollback reverts the newest n applied steps and returns the new version.
func rollback(ctx context.Context, conn *sql.DB, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("steps must be positive, got %d", n)
	}
	steps, err := loadSteps()
	if err != nil {
		return 0, err
	}
	current, err := schemaVersion(ctx, conn)
	if err != nil {
		return 0, err
	}
	if n > current {
		return 0, fmt.Errorf("cannot roll back %d steps from schema version %d", n, current)
	}

	l := logging.Component("db")
	for v := current; v > current-n; v-- {
		s := steps[v-1]
		l.Info().Int("version", s.version).Str("name", s.name).Msg("reverting migration")
		if err := runStep(ctx, conn, s.down, v-1); err != nil {
			return 0, fmt.Errorf("revert %04d_%s: %w", s.version, s.name, err)
		}
	}
	return current - n, nil
}

// runStep executes stmt and records version in one transaction.
func runStep(ctx context.Context, conn *sql.DB, stmt string, version int) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return err
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return err
	}
	return tx.Commit()
}
