package detail

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/colonyops/codeblocks/internal/core/logging"
	"github.com/colonyops/codeblocks/internal/core/styles"
)

// markdown renders explanations, caching the renderer per wrap width and
// the last rendered text.
type markdown struct {
	enabled  bool
	width    int
	renderer *glamour.TermRenderer

	lastText string
	lastOut  string
}

// Render returns text as styled terminal output wrapped at width. The raw
// text is returned when markdown is disabled or rendering fails.
func (m *markdown) Render(text string, width int) string {
	if !m.enabled || strings.TrimSpace(text) == "" {
		return text
	}

	if m.renderer != nil && m.width == width && m.lastText == text {
		return m.lastOut
	}

	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			l := logging.Component("detail")
			l.Debug().Err(err).Msg("failed to create markdown renderer, showing raw text")
			return text
		}
		m.renderer = r
		m.width = width
	}

	out, err := m.renderer.Render(text)
	if err != nil {
		l := logging.Component("detail")
		l.Debug().Err(err).Msg("failed to render markdown, showing raw text")
		return text
	}
	m.lastText = text
	m.lastOut = strings.Trim(out, "\n")
	return m.lastOut
}
