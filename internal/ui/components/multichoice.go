package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studypal/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector over labeled options. The
// correct option is unknown until the verdict arrives; call Resolve to
// color the result.
type MultiChoice struct {
	Question     string
	Labels       []string
	Options      []string
	Selected     int
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
}

// NewMultiChoice creates a multiple-choice component. labels and options
// run in parallel (labels[i] names options[i]).
func NewMultiChoice(question string, labels, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Labels:       labels,
		Options:      options,
		Selected:     0,
		Submitted:    false,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	}

	return m, nil
}

// ChosenLabel returns the label of the submitted option, or "".
func (m MultiChoice) ChosenLabel() string {
	if m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Labels) {
		return ""
	}
	return m.Labels[m.ChosenIndex]
}

// Resolve marks the option with the given label as the correct one.
func (m *MultiChoice) Resolve(correctLabel string) {
	for i, l := range m.Labels {
		if l == correctLabel {
			m.CorrectIndex = i
			return
		}
	}
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, m.Labels[i], opt)

		switch {
		case m.Submitted && m.CorrectIndex >= 0:
			if i == m.CorrectIndex {
				s += theme.Correct.Render(line) + "\n"
			} else if i == m.ChosenIndex {
				s += theme.Incorrect.Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		case m.Submitted:
			// Verdict pending.
			if i == m.ChosenIndex {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		default:
			if i == m.Selected {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += theme.Unselected.Render(line) + "\n"
			}
		}
	}

	return s
}
