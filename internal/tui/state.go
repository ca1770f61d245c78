package tui

import (
	"slices"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
)

// Overlay identifies which layer, if any, sits above the main panes.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayModal
	OverlayFullscreen
	OverlayConfirmDelete
)

// State is the application state shared by every view. It only changes
// through its transition methods, and the block list is only ever replaced
// wholesale.
type State struct {
	blocks     []codeblock.CodeBlock
	categories []string
	currentID  int
	editMode   bool
	overlay    Overlay
}

// NewState returns an empty state with nothing selected.
func NewState() *State {
	return &State{}
}

// SetBlocks replaces the block list and re-derives the category options.
func (s *State) SetBlocks(blocks []codeblock.CodeBlock) {
	s.blocks = slices.Clone(blocks)
	s.categories = codeblock.Categories(s.blocks)
}

// Blocks returns the current block list.
func (s *State) Blocks() []codeblock.CodeBlock { return s.blocks }

// Categories returns the distinct categories in first-seen order. The "all
// categories" option is the empty string and is not included.
func (s *State) Categories() []string { return s.categories }

// SelectBlock makes id the current block. The id does not need to resolve.
func (s *State) SelectBlock(id int) { s.currentID = id }

// ClearSelection drops the current block.
func (s *State) ClearSelection() { s.currentID = 0 }

// CurrentID returns the selected block id, 0 when nothing is selected.
func (s *State) CurrentID() int { return s.currentID }

// Current resolves the selected id against the block list.
func (s *State) Current() (codeblock.CodeBlock, bool) {
	if s.currentID == 0 {
		return codeblock.CodeBlock{}, false
	}
	return codeblock.Find(s.blocks, s.currentID)
}

// SetEditMode toggles inline edit mode for the selected block.
func (s *State) SetEditMode(on bool) { s.editMode = on }

// EditMode reports whether inline edit mode is active.
func (s *State) EditMode() bool { return s.editMode }

// SetOverlay opens (or, with OverlayNone, closes) an overlay.
func (s *State) SetOverlay(o Overlay) { s.overlay = o }

// Overlay returns the open overlay.
func (s *State) Overlay() Overlay { return s.overlay }
