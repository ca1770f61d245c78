package styles

import (
	"image/color"
	"slices"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// Theme pairs a palette with the chroma style used for code in that theme.
type Theme struct {
	Name   string
	Syntax string
	Palette
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = []Theme{
	{
		Name:   "tokyo-night",
		Syntax: "tokyonight-night",
		Palette: Palette{
			Primary:    lipgloss.Color("#7aa2f7"),
			Secondary:  lipgloss.Color("#7dcfff"),
			Foreground: lipgloss.Color("#c0caf5"),
			Muted:      lipgloss.Color("#565f89"),
			Background: lipgloss.Color("#1a1b26"),
			Surface:    lipgloss.Color("#3b4261"),
			Success:    lipgloss.Color("#9ece6a"),
			Warning:    lipgloss.Color("#e0af68"),
			Error:      lipgloss.Color("#f7768e"),
		},
	},
	{
		Name:   "gruvbox",
		Syntax: "gruvbox",
		Palette: Palette{
			Primary:    lipgloss.Color("#83a598"),
			Secondary:  lipgloss.Color("#8ec07c"),
			Foreground: lipgloss.Color("#ebdbb2"),
			Muted:      lipgloss.Color("#665c54"),
			Background: lipgloss.Color("#282828"),
			Surface:    lipgloss.Color("#3c3836"),
			Success:    lipgloss.Color("#b8bb26"),
			Warning:    lipgloss.Color("#fabd2f"),
			Error:      lipgloss.Color("#fb4934"),
		},
	},
	{
		Name:   "catppuccin",
		Syntax: "catppuccin-mocha",
		Palette: Palette{
			Primary:    lipgloss.Color("#89b4fa"),
			Secondary:  lipgloss.Color("#94e2d5"),
			Foreground: lipgloss.Color("#cdd6f4"),
			Muted:      lipgloss.Color("#6c7086"),
			Background: lipgloss.Color("#1e1e2e"),
			Surface:    lipgloss.Color("#313244"),
			Success:    lipgloss.Color("#a6e3a1"),
			Warning:    lipgloss.Color("#f9e2af"),
			Error:      lipgloss.Color("#f38ba8"),
		},
	},
	{
		Name:   "dracula",
		Syntax: "dracula",
		Palette: Palette{
			Primary:    lipgloss.Color("#bd93f9"),
			Secondary:  lipgloss.Color("#8be9fd"),
			Foreground: lipgloss.Color("#f8f8f2"),
			Muted:      lipgloss.Color("#6272a4"),
			Background: lipgloss.Color("#282a36"),
			Surface:    lipgloss.Color("#44475a"),
			Success:    lipgloss.Color("#50fa7b"),
			Warning:    lipgloss.Color("#f1fa8c"),
			Error:      lipgloss.Color("#ff5555"),
		},
	},
	{
		Name:   "nord",
		Syntax: "nord",
		Palette: Palette{
			Primary:    lipgloss.Color("#88c0d0"),
			Secondary:  lipgloss.Color("#81a1c1"),
			Foreground: lipgloss.Color("#eceff4"),
			Muted:      lipgloss.Color("#4c566a"),
			Background: lipgloss.Color("#2e3440"),
			Surface:    lipgloss.Color("#3b4252"),
			Success:    lipgloss.Color("#a3be8c"),
			Warning:    lipgloss.Color("#ebcb8b"),
			Error:      lipgloss.Color("#bf616a"),
		},
	},
}

// ThemeNames returns the sorted names of the built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for _, t := range themes {
		names = append(names, t.Name)
	}
	slices.Sort(names)
	return names
}

// LookupTheme returns the built-in theme called name.
func LookupTheme(name string) (Theme, bool) {
	i := slices.IndexFunc(themes, func(t Theme) bool { return t.Name == name })
	if i < 0 {
		return Theme{}, false
	}
	return themes[i], true
}

// Active returns the theme last passed to SetTheme.
func Active() Theme { return active }

// hex converts c for glamour, which only takes "#rrggbb" strings.
func hex(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	s := cc.Hex()
	return &s
}

// GlamourStyle returns the markdown style for explanations under the active
// theme. Fenced code in an explanation uses the theme's syntax style so it
// matches the fullscreen code view.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := active.Palette

	cfg.Document.Color = hex(p.Foreground)
	cfg.Document.Margin = nil
	cfg.Paragraph.Color = hex(p.Foreground)

	for _, h := range []*glamouransi.StyleBlock{&cfg.Heading, &cfg.H1, &cfg.H2, &cfg.H3} {
		h.Color = hex(p.Primary)
	}
	cfg.H1.BackgroundColor = nil

	cfg.Emph.Color = hex(p.Secondary)
	cfg.Strong.Color = hex(p.Primary)
	cfg.BlockQuote.Color = hex(p.Muted)
	cfg.HorizontalRule.Color = hex(p.Muted)
	cfg.Link.Color = hex(p.Secondary)
	cfg.LinkText.Color = hex(p.Secondary)

	cfg.Code.Color = hex(p.Secondary)
	cfg.CodeBlock.Color = hex(p.Muted)
	cfg.CodeBlock.Theme = active.Syntax
	cfg.CodeBlock.Chroma = nil

	return cfg
}
