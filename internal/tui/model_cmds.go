package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/export"
)

// API is the part of the REST client the TUI uses.
type API interface {
	ListBlocks(ctx context.Context) ([]codeblock.CodeBlock, error)
	CreateBlock(ctx context.Context, in codeblock.Input) (codeblock.CodeBlock, error)
	UpdateBlock(ctx context.Context, id int, p codeblock.Patch) (codeblock.CodeBlock, error)
	DeleteBlock(ctx context.Context, id int) error
}

// mutationOp names what a mutation did, for its failure message and the
// steps that follow a success.
type mutationOp int

const (
	opCreate mutationOp = iota
	opUpdate            // modal edit
	opEdit              // inline edit
	opDelete
)

func (op mutationOp) String() string {
	switch op {
	case opCreate:
		return "create"
	case opUpdate:
		return "update"
	case opEdit:
		return "edit"
	case opDelete:
		return "delete"
	default:
		return "unknown"
	}
}

type blocksLoadedMsg struct {
	blocks []codeblock.CodeBlock
	err    error
}

// mutationDoneMsg reports a mutation and, when it succeeded, the reload
// that followed it.
type mutationDoneMsg struct {
	op        mutationOp
	id        int
	err       error
	blocks    []codeblock.CodeBlock
	reloadErr error
}

type exportDoneMsg struct {
	path  string
	count int
	err   error
}

func (m Model) requestTimeout() time.Duration {
	if m.timeout <= 0 {
		return 10 * time.Second
	}
	return m.timeout
}

func (m Model) loadBlocks() tea.Cmd {
	api, timeout := m.api, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		blocks, err := api.ListBlocks(ctx)
		return blocksLoadedMsg{blocks: blocks, err: err}
	}
}

// mutate runs fn and, only when it succeeds, reloads the list, all in one
// command so the reload always observes the mutation.
func (m Model) mutate(op mutationOp, id int, fn func(ctx context.Context, api API) error) tea.Cmd {
	api, timeout := m.api, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err := fn(ctx, api)
		cancel()
		if err != nil {
			return mutationDoneMsg{op: op, id: id, err: err}
		}

		ctx, cancel = context.WithTimeout(context.Background(), timeout)
		defer cancel()
		blocks, err := api.ListBlocks(ctx)
		return mutationDoneMsg{op: op, id: id, blocks: blocks, reloadErr: err}
	}
}

func (m Model) createBlock(in codeblock.Input) tea.Cmd {
	return m.mutate(opCreate, 0, func(ctx context.Context, api API) error {
		_, err := api.CreateBlock(ctx, in)
		return err
	})
}

func (m Model) updateBlock(op mutationOp, id int, p codeblock.Patch) tea.Cmd {
	return m.mutate(op, id, func(ctx context.Context, api API) error {
		_, err := api.UpdateBlock(ctx, id, p)
		return err
	})
}

func (m Model) deleteBlock(id int) tea.Cmd {
	return m.mutate(opDelete, id, func(ctx context.Context, api API) error {
		return api.DeleteBlock(ctx, id)
	})
}

func (m Model) exportBlocks() tea.Cmd {
	blocks, dir := m.state.Blocks(), m.exportDir
	return func() tea.Msg {
		path, err := export.Write(dir, blocks)
		return exportDoneMsg{path: path, count: len(blocks), err: err}
	}
}
