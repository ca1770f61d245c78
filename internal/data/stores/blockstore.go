// Package stores implements codeblock.Store on top of the SQLite database.
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/data/db"
)

// BlockStore persists code blocks in the codeblocks table.
type BlockStore struct {
	db *db.DB
}

var _ codeblock.Store = (*BlockStore)(nil)

// NewBlockStore creates a new SQLite-backed BlockStore.
func NewBlockStore(database *db.DB) *BlockStore {
	return &BlockStore{db: database}
}

const selectColumns = `SELECT id, title, category, code, explanation, line_explanations FROM codeblocks`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// List returns every block ordered by id.
func (s *BlockStore) List(ctx context.Context) ([]codeblock.CodeBlock, error) {
	rows, err := s.db.Conn().QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list code blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	blocks := make([]codeblock.CodeBlock, 0)
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list code blocks: %w", err)
	}
	return blocks, nil
}

// Get returns the block with the given id, or codeblock.ErrNotFound.
func (s *BlockStore) Get(ctx context.Context, id int) (codeblock.CodeBlock, error) {
	return getBlock(ctx, s.db.Conn(), id)
}

// Create inserts a block with the next free id (max+1).
func (s *BlockStore) Create(ctx context.Context, in codeblock.Input) (codeblock.CodeBlock, error) {
	var created codeblock.CodeBlock
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var next int
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM codeblocks`).Scan(&next); err != nil {
			return fmt.Errorf("next id: %w", err)
		}

		created = codeblock.FromInput(next, in)
		le, err := encodeLineExplanations(created.LineExplanations)
		if err != nil {
			return err
		}

		now := time.Now().UnixNano()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO codeblocks (id, title, category, code, explanation, line_explanations, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			created.ID, created.Title, created.Category, created.Code, created.Explanation, le, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert code block: %w", err)
		}
		return nil
	})
	if err != nil {
		return codeblock.CodeBlock{}, err
	}
	return created, nil
}

// Update applies the non-nil fields of p to the block with the given id.
func (s *BlockStore) Update(ctx context.Context, id int, p codeblock.Patch) (codeblock.CodeBlock, error) {
	var updated codeblock.CodeBlock
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		current, err := getBlock(ctx, tx, id)
		if err != nil {
			return err
		}

		updated = current.Apply(p)
		le, err := encodeLineExplanations(updated.LineExplanations)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE codeblocks
			SET title = ?, category = ?, code = ?, explanation = ?, line_explanations = ?, updated_at = ?
			WHERE id = ?`,
			updated.Title, updated.Category, updated.Code, updated.Explanation, le, time.Now().UnixNano(), id,
		)
		if err != nil {
			return fmt.Errorf("update code block %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return codeblock.CodeBlock{}, err
	}
	return updated, nil
}

// Delete removes the block and returns it as it was before deletion.
func (s *BlockStore) Delete(ctx context.Context, id int) (codeblock.CodeBlock, error) {
	var deleted codeblock.CodeBlock
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		b, err := getBlock(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM codeblocks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete code block %d: %w", id, err)
		}
		deleted = b
		return nil
	})
	if err != nil {
		return codeblock.CodeBlock{}, err
	}
	return deleted, nil
}

func getBlock(ctx context.Context, q querier, id int) (codeblock.CodeBlock, error) {
	b, err := scanBlock(q.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return codeblock.CodeBlock{}, codeblock.ErrNotFound
	}
	return b, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlock(row scanner) (codeblock.CodeBlock, error) {
	var (
		b  codeblock.CodeBlock
		le string
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Category, &b.Code, &b.Explanation, &le); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, err
		}
		return b, fmt.Errorf("scan code block: %w", err)
	}
	if err := json.Unmarshal([]byte(le), &b.LineExplanations); err != nil {
		return b, fmt.Errorf("decode line explanations for block %d: %w", b.ID, err)
	}
	if b.LineExplanations == nil {
		b.LineExplanations = codeblock.LineExplanations{}
	}
	return b, nil
}

func encodeLineExplanations(le codeblock.LineExplanations) (string, error) {
	if le == nil {
		le = codeblock.LineExplanations{}
	}
	data, err := json.Marshal(le)
	if err != nil {
		return "", fmt.Errorf("encode line explanations: %w", err)
	}
	return string(data), nil
}
