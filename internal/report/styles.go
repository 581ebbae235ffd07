package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	okColor      = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
)

// palette holds the styles used by Text. A colorless palette renders every
// string unchanged.
type palette struct {
	title    lipgloss.Style
	slot     lipgloss.Style
	barFull  lipgloss.Style
	barEmpty lipgloss.Style
	over     lipgloss.Style
	warning  lipgloss.Style
	muted    lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	if !color {
		plain := lipgloss.NewStyle()
		return palette{plain, plain, plain, plain, plain, plain, plain}
	}

	r := lipgloss.NewRenderer(w)
	return palette{
		title:    r.NewStyle().Bold(true).Foreground(primaryColor),
		slot:     r.NewStyle().Bold(true),
		barFull:  r.NewStyle().Foreground(okColor),
		barEmpty: r.NewStyle().Foreground(mutedColor),
		over:     r.NewStyle().Bold(true).Foreground(errorColor),
		warning:  r.NewStyle().Foreground(warningColor),
		muted:    r.NewStyle().Foreground(mutedColor),
	}
}
