package styles

import (
	"testing"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTheme(t *testing.T) {
	theme, ok := LookupTheme("gruvbox")
	require.True(t, ok)
	assert.Equal(t, "gruvbox", theme.Name)
	assert.NotNil(t, theme.Primary)

	_, ok = LookupTheme("neon")
	assert.False(t, ok)
}

func TestThemeNames_SortedAndIncludeDefault(t *testing.T) {
	names := ThemeNames()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, DefaultTheme)
}

func TestThemes_SyntaxStylesExist(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, _ := LookupTheme(name)
		_, ok := chromastyles.Registry[theme.Syntax]
		assert.True(t, ok, "theme %s: unknown chroma style %q", name, theme.Syntax)
	}
}

func TestGlamourStyle_FollowsActiveTheme(t *testing.T) {
	t.Cleanup(func() {
		def, _ := LookupTheme(DefaultTheme)
		SetTheme(def)
	})

	nord, _ := LookupTheme("nord")
	SetTheme(nord)

	cfg := GlamourStyle()
	assert.Equal(t, "nord", Active().Name)
	assert.Equal(t, "nord", cfg.CodeBlock.Theme)
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, "#eceff4", *cfg.Document.Color)
}
