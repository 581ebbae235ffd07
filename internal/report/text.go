package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/Iron-Ham/cohort/internal/assign"
	"github.com/Iron-Ham/cohort/internal/packer"
	"github.com/Iron-Ham/cohort/internal/roster"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

const (
	minBarWidth = 10
	maxBarWidth = 40
)

// Options controls text rendering.
type Options struct {
	// Color enables styled output. Styling is still dropped when the
	// writer is not a color-capable terminal.
	Color bool

	// Width is the line width in columns. Zero detects the terminal width
	// of w, falling back to DefaultWidth.
	Width int
}

// DetectWidth returns the column count of w when it is a terminal, and
// DefaultWidth otherwise.
func DetectWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// Text writes a human-readable report: per-slot group occupancy followed by
// any conflicts and roster warnings.
func Text(w io.Writer, summary assign.Summary, conflicts []packer.Conflict, warnings []roster.Warning, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = DetectWidth(w)
	}
	p := newPalette(w, opts.Color)

	var lines []string
	lines = append(lines, p.title.Render("Group assignment"))
	lines = append(lines, p.muted.Render(fmt.Sprintf("%d individuals in %d seats across %d slot(s)",
		summary.Population, summary.Capacity, len(summary.Slots))))
	lines = append(lines, "")

	labelWidth := 0
	for _, slot := range summary.Slots {
		for _, g := range slot.Groups {
			labelWidth = max(labelWidth, lipgloss.Width(g.ID.String()))
		}
	}
	barWidth := min(max(width-labelWidth-20, minBarWidth), maxBarWidth)

	for _, slot := range summary.Slots {
		lines = append(lines, fmt.Sprintf("%s  %s",
			p.slot.Render(slot.Slot),
			p.muted.Render(fmt.Sprintf("%d/%d", slot.Size, slot.Capacity))))

		for _, g := range slot.Groups {
			label := g.ID.String()
			line := fmt.Sprintf("  %s%s  %s  %d/%d",
				label,
				strings.Repeat(" ", labelWidth-lipgloss.Width(label)),
				bar(p, g.Size, g.Capacity, barWidth),
				g.Size, g.Capacity)
			if g.Overflow {
				line += "  " + p.over.Render("OVER")
			}
			lines = append(lines, line)
		}
	}

	if len(conflicts) > 0 {
		lines = append(lines, "", p.over.Render(fmt.Sprintf("Conflicts (%d)", len(conflicts))))
		for _, c := range conflicts {
			lines = append(lines, "  ! "+c.String())
		}
	}

	if len(warnings) > 0 {
		lines = append(lines, "", p.warning.Render(fmt.Sprintf("Warnings (%d)", len(warnings))))
		for _, wn := range warnings {
			lines = append(lines, "  - "+wn.String())
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, truncate(line, width)); err != nil {
			return err
		}
	}
	return nil
}

// bar draws an occupancy bar of width cells, capped at full.
func bar(p palette, size, capacity, width int) string {
	filled := width
	if capacity > 0 && size < capacity {
		filled = size * width / capacity
	}
	return p.barFull.Render(strings.Repeat("█", filled)) +
		p.barEmpty.Render(strings.Repeat("░", width-filled))
}

// truncate shortens s to width visible columns without breaking escape
// sequences.
func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "...")
}
