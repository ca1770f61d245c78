package stores

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/data/db"
)

func newTestStore(t *testing.T) *BlockStore {
	t.Helper()
	store, closeFn, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return store
}

func ptr[T any](v T) *T { return &v }

func TestBlockStore_CreateAssignsIncreasingIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, codeblock.Input{Title: "Hello", Category: "basics"})
	require.NoError(t, err)
	second, err := store.Create(ctx, codeblock.Input{Title: "World"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.NotNil(t, first.LineExplanations)
}

func TestBlockStore_IDsAreMaxPlusOne(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		_, err := store.Create(ctx, codeblock.Input{Title: title})
		require.NoError(t, err)
	}
	_, err := store.Delete(ctx, 2)
	require.NoError(t, err)

	created, err := store.Create(ctx, codeblock.Input{Title: "d"})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	_, err = store.Delete(ctx, 4)
	require.NoError(t, err)
	_, err = store.Delete(ctx, 3)
	require.NoError(t, err)

	created, err = store.Create(ctx, codeblock.Input{Title: "e"})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)
}

func TestBlockStore_RoundTripsLineExplanations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := codeblock.Input{
		Title:            "Loop",
		Code:             "for {\n}\n",
		Explanation:      "spins",
		LineExplanations: codeblock.LineExplanations{1: "forever", 2: "close"},
	}
	created, err := store.Create(ctx, in)
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "forever", got.LineExplanations[1])
}

func TestBlockStore_ListOrderedByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	for _, title := range []string{"one", "two", "three"} {
		_, err := store.Create(ctx, codeblock.Input{Title: title})
		require.NoError(t, err)
	}

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{list[0].Title, list[1].Title, list[2].Title})
}

func TestBlockStore_UpdateAppliesOnlySetFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, codeblock.Input{Title: "Old", Category: "keep", Code: "x"})
	require.NoError(t, err)

	updated, err := store.Update(ctx, created.ID, codeblock.Patch{
		Title:            ptr("New"),
		LineExplanations: &codeblock.LineExplanations{1: "x marks"},
	})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "keep", updated.Category)
	assert.Equal(t, "x", updated.Code)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestBlockStore_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, 42)
	require.ErrorIs(t, err, codeblock.ErrNotFound)

	_, err = store.Update(ctx, 42, codeblock.Patch{Title: ptr("x")})
	require.ErrorIs(t, err, codeblock.ErrNotFound)

	_, err = store.Delete(ctx, 42)
	require.ErrorIs(t, err, codeblock.ErrNotFound)
}

func TestBlockStore_DeleteReturnsBlock(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, codeblock.Input{Title: "gone"})
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, codeblock.ErrNotFound)
}

func TestOpen_RecoversFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, db.FileName), []byte("definitely not sqlite, just some bytes padded out to look like a header ........................................"), 0o644))

	store, closeFn, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	matches, err := filepath.Glob(filepath.Join(dir, db.FileName+".corrupt.*"))
	require.NoError(t, err)
	assert.NotEmpty(t, matches, "corrupt file should be moved aside")
}
