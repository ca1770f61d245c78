package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func press(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code, Mod: mod})
}

func TestDialog(t *testing.T) {
	t.Run("creation focuses first field", func(t *testing.T) {
		f1 := NewTextField("Name", "", "")
		f2 := NewTextField("Email", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"name", "email"})

		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
		assert.False(t, d.Submitted())
		assert.False(t, d.Cancelled())
	})

	t.Run("empty dialog", func(t *testing.T) {
		d := NewDialog("Empty", []Field{}, []string{})
		d.Update(press(tea.KeyTab, 0))
		assert.False(t, d.Cancelled())
		assert.Empty(t, d.FormValues())
	})

	t.Run("tab cycles and wraps", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"a", "b"})

		d.Update(press(tea.KeyTab, 0))
		assert.True(t, f2.Focused())

		d.Update(press(tea.KeyTab, 0))
		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
		assert.False(t, d.Submitted(), "tab never submits")
	})

	t.Run("shift+tab wraps backwards", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"a", "b"})

		d.Update(press(tea.KeyTab, tea.ModShift))
		assert.True(t, f2.Focused())
		assert.Equal(t, 1, d.FocusedIndex())
	})

	t.Run("enter advances on text field", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"a", "b"})

		d.Update(press(tea.KeyEnter, 0))
		assert.True(t, f2.Focused())
	})

	t.Run("enter on textarea inserts a newline", func(t *testing.T) {
		f1 := NewTextAreaField("Body", "", "x")
		f2 := NewTextField("Name", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"body", "name"})

		d.Update(press(tea.KeyEnter, 0))
		assert.True(t, f1.Focused())
		assert.Contains(t, f1.Value(), "\n")
		assert.False(t, d.Submitted())
	})

	t.Run("ctrl+s submits when valid", func(t *testing.T) {
		f1 := NewTextField("Title", "", "ok").WithValidation(FieldValidation{Required: true})
		d := NewDialog("Test", []Field{f1}, []string{"title"})

		d.Update(press('s', tea.ModCtrl))
		assert.True(t, d.Submitted())
	})

	t.Run("ctrl+s with invalid field focuses it and does not submit", func(t *testing.T) {
		f1 := NewTextField("Category", "", "")
		f2 := NewTextField("Title", "", "").WithValidation(FieldValidation{Required: true})
		d := NewDialog("Test", []Field{f1, f2}, []string{"category", "title"})

		d.Update(press('s', tea.ModCtrl))
		assert.False(t, d.Submitted())
		assert.True(t, f2.Focused())
		assert.Equal(t, "required", f2.Err())
		assert.Contains(t, d.View(), "required")
	})

	t.Run("resume clears submit", func(t *testing.T) {
		d := NewDialog("Test", []Field{NewTextField("A", "", "")}, []string{"a"})
		d.Update(press('s', tea.ModCtrl))
		assert.True(t, d.Submitted())

		d.Resume()
		assert.False(t, d.Submitted())
	})

	t.Run("escape cancels", func(t *testing.T) {
		d := NewDialog("Test", []Field{NewTextField("A", "", "")}, []string{"a"})

		d.Update(press(tea.KeyEscape, 0))
		assert.True(t, d.Cancelled())
		assert.False(t, d.Submitted())
	})

	t.Run("typing goes to the focused field", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		for _, r := range "hi" {
			d.Update(tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)}))
		}
		assert.Equal(t, "hi", f1.Value())
	})

	t.Run("FormValues extracts all values", func(t *testing.T) {
		f1 := NewTextField("Name", "", "Alice")
		f2 := NewTextAreaField("Notes", "", "line 1\nline 2")
		d := NewDialog("Test", []Field{f1, f2}, []string{"name", "notes"})

		vals := d.FormValues()
		assert.Equal(t, "Alice", vals["name"])
		assert.Equal(t, "line 1\nline 2", vals["notes"])
	})

	t.Run("view renders title, fields, and help", func(t *testing.T) {
		d := NewDialog("New Code Block", []Field{
			NewTextField("Title", "", ""),
			NewTextAreaField("Code", "", ""),
		}, []string{"title", "code"})

		view := d.View()
		assert.Contains(t, view, "New Code Block")
		assert.Contains(t, view, "Title")
		assert.Contains(t, view, "Code")
		assert.Contains(t, view, "ctrl+s")
	})
}
