package tui

import "charm.land/bubbles/v2/key"

// KeyMap holds the root bindings. Overlay and edit-mode keys are handled by
// the views that own them.
type KeyMap struct {
	Quit         key.Binding
	Add          key.Binding
	Export       key.Binding
	Reload       key.Binding
	Search       key.Binding
	NextCat      key.Binding
	PrevCat      key.Binding
	SwitchPane   key.Binding
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Select       key.Binding
	Back         key.Binding
	Edit         key.Binding
	EditModal    key.Binding
	Delete       key.Binding
	Fullscreen   key.Binding
	DismissToast key.Binding

	focus pane
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Export:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextCat:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c/C", "category")),
		PrevCat:      key.NewBinding(key.WithKeys("C")),
		SwitchPane:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Top:          key.NewBinding(key.WithKeys("g", "home")),
		Bottom:       key.NewBinding(key.WithKeys("G", "end")),
		Select:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		EditModal:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit all")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Fullscreen:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullscreen")),
		DismissToast: key.NewBinding(key.WithKeys("ctrl+x")),
	}
}

// ShortHelp implements help.KeyMap for the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	if k.focus == paneDetail {
		return []key.Binding{k.Up, k.Down, k.Select, k.Edit, k.EditModal, k.Delete, k.Fullscreen, k.Back, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Select, k.Search, k.NextCat, k.Add, k.Export, k.SwitchPane, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.SwitchPane},
		{k.Search, k.NextCat, k.Add, k.Export, k.Reload},
		{k.Edit, k.EditModal, k.Delete, k.Fullscreen, k.Quit},
	}
}
