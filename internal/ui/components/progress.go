package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studypal/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with a count label,
// used for quiz position (question 3 of 10).
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a progress bar.
func NewProgressBar(done, total, width int) ProgressBar {
	return ProgressBar{Done: done, Total: total, Width: width}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d/%d", p.Done, p.Total))

	barWidth := p.Width - lipgloss.Width(label) - 2
	if barWidth < 4 {
		barWidth = 4
	}

	var frac float64
	if p.Total > 0 {
		frac = float64(p.Done) / float64(p.Total)
	}
	filled := int(float64(barWidth) * frac)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	filledStr := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))

	return filledStr + emptyStr + "  " + label
}
