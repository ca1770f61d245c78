// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

var active Theme

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	SuccessTextStyle   lipgloss.Style
	WarningTextStyle   lipgloss.Style
	ErrorTextStyle     lipgloss.Style

	// Layout.
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	HeaderStyle       lipgloss.Style
	StatusBarStyle    lipgloss.Style
	HelpKeyStyle      lipgloss.Style
	HelpDescStyle     lipgloss.Style
	PlaceholderStyle  lipgloss.Style

	// Sidebar list.
	SearchStyle           lipgloss.Style
	SearchFocusedStyle    lipgloss.Style
	CategoryFilterStyle   lipgloss.Style
	ListItemStyle         lipgloss.Style
	ListItemActiveStyle   lipgloss.Style
	ListItemCursorStyle   lipgloss.Style
	ListItemCategoryStyle lipgloss.Style

	// Detail panel.
	TitleStyle             lipgloss.Style
	CategoryBadgeStyle     lipgloss.Style
	SectionTitleStyle      lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CodeLineStyle          lipgloss.Style
	CodeLineExplainedStyle lipgloss.Style
	CodeLineCursorStyle    lipgloss.Style
	CodeLineHighlightStyle lipgloss.Style
	CodeMarkerStyle        lipgloss.Style
	PopupStyle             lipgloss.Style
	PopupTitleStyle        lipgloss.Style

	// Modals.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	// Forms.
	FormTitleStyle        lipgloss.Style
	FormTitleBlurredStyle lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormErrorStyle        lipgloss.Style
	FormHelpStyle         lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme makes t the active theme and rebuilds all global styles.
func SetTheme(t Theme) {
	active = t
	p := t.Palette

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SuccessTextStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	WarningTextStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface)
	PanelFocusedStyle = PanelStyle.
		BorderForeground(ColorPrimary)
	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	HelpDescStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	SearchStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SearchFocusedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	CategoryFilterStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	ListItemStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		PaddingLeft(1)
	ListItemActiveStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary)
	ListItemCursorStyle = lipgloss.NewStyle().
		Background(ColorSurface)
	ListItemCategoryStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	CategoryBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSecondary).
		Padding(0, 1)
	SectionTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginTop(1)
	LineNumberStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(4).
		AlignHorizontal(lipgloss.Right).
		MarginRight(1)
	CodeLineStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	CodeLineExplainedStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Underline(true)
	CodeLineCursorStyle = lipgloss.NewStyle().
		Background(ColorSurface)
	CodeLineHighlightStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorWarning).
		Bold(true)
	CodeMarkerStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Foreground(ColorForeground).
		Padding(0, 1)
	PopupTitleStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)

	FormTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FormTitleBlurredStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	FormHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(ColorForeground)
	ToastInfoStyle = toastBase.BorderForeground(ColorPrimary)
	ToastWarningStyle = toastBase.BorderForeground(ColorWarning)
	ToastErrorStyle = toastBase.BorderForeground(ColorError)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	t, _ := LookupTheme(DefaultTheme)
	SetTheme(t)
}
