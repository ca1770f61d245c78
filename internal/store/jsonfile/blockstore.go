package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
)

// BlockStore implements codeblock.Store on top of a single JSON file holding
// an array of blocks. The parsed file is cached in memory; Watch drops the
// cache when the file changes on disk.
type BlockStore struct {
	path string

	mu     sync.Mutex
	cached []codeblock.CodeBlock
	valid  bool
}

var _ codeblock.Store = (*BlockStore)(nil)

// NewBlockStore creates a new JSON file block store at the given path.
func NewBlockStore(path string) *BlockStore {
	return &BlockStore{path: path}
}

// Path returns the backing file.
func (s *BlockStore) Path() string { return s.path }

// List returns all blocks in file order.
func (s *BlockStore) List(ctx context.Context) ([]codeblock.CodeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.load()
	if err != nil {
		return nil, err
	}
	return slices.Clone(blocks), nil
}

// Get returns a block by id. Returns codeblock.ErrNotFound if not found.
func (s *BlockStore) Get(ctx context.Context, id int) (codeblock.CodeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.load()
	if err != nil {
		return codeblock.CodeBlock{}, err
	}

	i := indexOf(blocks, id)
	if i < 0 {
		return codeblock.CodeBlock{}, codeblock.ErrNotFound
	}
	return blocks[i], nil
}

// Create appends a block with id max(id)+1.
func (s *BlockStore) Create(ctx context.Context, in codeblock.Input) (codeblock.CodeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.load()
	if err != nil {
		return codeblock.CodeBlock{}, err
	}

	b := codeblock.FromInput(nextID(blocks), in)
	if err := s.save(append(slices.Clone(blocks), b)); err != nil {
		return codeblock.CodeBlock{}, err
	}
	return b, nil
}

// Update applies the non-nil fields of p to the block with the given id.
func (s *BlockStore) Update(ctx context.Context, id int, p codeblock.Patch) (codeblock.CodeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.load()
	if err != nil {
		return codeblock.CodeBlock{}, err
	}

	i := indexOf(blocks, id)
	if i < 0 {
		return codeblock.CodeBlock{}, codeblock.ErrNotFound
	}

	next := slices.Clone(blocks)
	next[i] = next[i].Apply(p)
	if err := s.save(next); err != nil {
		return codeblock.CodeBlock{}, err
	}
	return next[i], nil
}

// Delete removes the block with the given id and returns it.
func (s *BlockStore) Delete(ctx context.Context, id int) (codeblock.CodeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.load()
	if err != nil {
		return codeblock.CodeBlock{}, err
	}

	i := indexOf(blocks, id)
	if i < 0 {
		return codeblock.CodeBlock{}, codeblock.ErrNotFound
	}

	deleted := blocks[i]
	if err := s.save(slices.Delete(slices.Clone(blocks), i, i+1)); err != nil {
		return codeblock.CodeBlock{}, err
	}
	return deleted, nil
}

// invalidate drops the cached copy so the next call re-reads the file.
func (s *BlockStore) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid = false
	s.cached = nil
}

// load returns the cached blocks, reading the file on a miss.
// A missing or empty file is an empty store. Callers hold s.mu.
func (s *BlockStore) load() ([]codeblock.CodeBlock, error) {
	if s.valid {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	blocks := []codeblock.CodeBlock{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &blocks); err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	for i := range blocks {
		if blocks[i].LineExplanations == nil {
			blocks[i].LineExplanations = codeblock.LineExplanations{}
		}
	}

	s.cached = blocks
	s.valid = true
	return blocks, nil
}

// save writes the blocks to disk atomically and refreshes the cache.
func (s *BlockStore) save(blocks []codeblock.CodeBlock) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}

	s.cached = blocks
	s.valid = true
	return nil
}

func indexOf(blocks []codeblock.CodeBlock, id int) int {
	return slices.IndexFunc(blocks, func(b codeblock.CodeBlock) bool { return b.ID == id })
}

func nextID(blocks []codeblock.CodeBlock) int {
	maxID := 0
	for _, b := range blocks {
		maxID = max(maxID, b.ID)
	}
	return maxID + 1
}
