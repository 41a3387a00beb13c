// Package quizui is the interactive quiz session: a Bubble Tea program
// that generates questions, collects answers, and shows graded feedback
// with the mistake log updated behind the scenes.
package quizui

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/studypal/internal/study"
	"github.com/abhisek/studypal/internal/ui/components"
	"github.com/abhisek/studypal/internal/ui/theme"
)

type phase int

const (
	phaseLoading phase = iota
	phaseAsking
	phaseGrading
	phaseFeedback
	phaseSummary
)

// Model is the root Bubble Tea model for one quiz session.
type Model struct {
	assistant *study.Assistant
	kpID      int64
	count     int
	sessionID string

	phase     phase
	questions []questionView
	idx       int
	mc        components.MultiChoice
	spin      components.Spinner
	lastMsg   string
	correct   int
	errMsg    string
	width     int
}

// questionView pairs a stored question with its option order for display.
type questionView struct {
	id     int64
	stem   string
	labels []string
	texts  []string
}

// New creates a quiz session model. A kpID of 0 quizzes a random
// knowledge point.
func New(assistant *study.Assistant, kpID int64, count int) Model {
	return Model{
		assistant: assistant,
		kpID:      kpID,
		count:     count,
		sessionID: uuid.New().String(),
		phase:     phaseLoading,
		spin:      components.NewSpinner(),
		width:     80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadQuestions(), m.spin.Init())
}

func (m Model) loadQuestions() tea.Cmd {
	return func() tea.Msg {
		qs, err := m.assistant.GenerateQuiz(context.Background(), m.kpID, m.count)
		return questionsLoadedMsg{Questions: qs, Err: err}
	}
}

func (m Model) gradeCurrent(answer string) tea.Cmd {
	id := m.questions[m.idx].id
	return func() tea.Msg {
		res, err := m.assistant.Grade(context.Background(), id, answer)
		return verdictMsg{Result: res, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case questionsLoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		if len(msg.Questions) == 0 {
			m.errMsg = "the model returned no questions, try again"
			return m, nil
		}
		for _, q := range msg.Questions {
			labels := make([]string, 0, len(q.Options))
			for l := range q.Options {
				labels = append(labels, l)
			}
			sort.Strings(labels)
			texts := make([]string, len(labels))
			for i, l := range labels {
				texts[i] = q.Options[l]
			}
			m.questions = append(m.questions, questionView{
				id:     q.ID,
				stem:   q.Stem,
				labels: labels,
				texts:  texts,
			})
		}
		m.phase = phaseAsking
		m.mc = newChoice(m.questions[0])
		return m, nil

	case verdictMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.mc.Resolve(msg.Result.CorrectAnswer)
		if msg.Result.IsCorrect {
			m.correct++
			m.lastMsg = theme.Correct.Render("Correct!")
		} else {
			m.lastMsg = theme.Incorrect.Render("Incorrect.")
		}
		if msg.Result.Explanation != "" {
			m.lastMsg += "\n\n" + theme.Body.Render(msg.Result.Explanation)
		}
		m.phase = phaseFeedback
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseLoading || m.phase == phaseGrading {
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.errMsg != "" || m.phase == phaseSummary {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseAsking:
		switch key {
		case "esc", "q":
			return m, tea.Quit
		case "1", "2", "3", "4":
			i := int(key[0] - '1')
			if i < len(m.mc.Options) {
				m.mc.Selected = i
				return m.submit()
			}
		case "enter":
			return m.submit()
		}
		var cmd tea.Cmd
		m.mc, cmd = m.mc.Update(msg)
		return m, cmd

	case phaseFeedback:
		// Any key advances.
		if m.idx+1 < len(m.questions) {
			m.idx++
			m.mc = newChoice(m.questions[m.idx])
			m.lastMsg = ""
			m.phase = phaseAsking
			return m, nil
		}
		m.phase = phaseSummary
		return m, nil
	}

	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.mc.Submitted = true
	m.mc.ChosenIndex = m.mc.Selected
	m.phase = phaseGrading
	return m, tea.Batch(m.gradeCurrent(m.mc.ChosenLabel()), m.spin.Init())
}

func (m Model) View() tea.View {
	v := tea.NewView("")

	var b strings.Builder
	b.WriteString(theme.Title.Render("StudyPal Quiz") +
		theme.Subtitle.Render("  ·  session "+m.sessionID[:8]) + "\n\n")

	switch {
	case m.errMsg != "":
		b.WriteString(theme.Incorrect.Render("Error: "+m.errMsg) + "\n\n")
		b.WriteString(theme.Hint.Render("Press any key to exit"))

	case m.phase == phaseLoading:
		b.WriteString(m.spin.View() + theme.Subtitle.Render(" Generating questions..."))

	case m.phase == phaseSummary:
		b.WriteString(theme.Body.Render(fmt.Sprintf("Session complete: %d/%d correct.", m.correct, len(m.questions))) + "\n\n")
		if m.correct < len(m.questions) {
			b.WriteString(theme.Subtitle.Render("Missed questions were added to your mistake log.") + "\n")
			b.WriteString(theme.Subtitle.Render("Run `studypal report` to export a review sheet.") + "\n\n")
		}
		b.WriteString(theme.Hint.Render("Press any key to exit"))

	default:
		bar := components.NewProgressBar(m.idx+1, len(m.questions), min(m.width, 60))
		b.WriteString(bar.View() + "\n\n")
		b.WriteString(m.mc.View())
		switch m.phase {
		case phaseGrading:
			b.WriteString("\n" + m.spin.View() + theme.Subtitle.Render(" Grading..."))
		case phaseFeedback:
			b.WriteString("\n" + m.lastMsg + "\n\n")
			b.WriteString(theme.Hint.Render("Press any key to continue"))
		default:
			b.WriteString("\n" + theme.Hint.Render("↑↓ navigate · 1-4 or Enter to answer · Esc to quit"))
		}
	}

	v.SetContent(lipgloss.NewStyle().Padding(1, 2).Render(b.String()))
	return v
}

func newChoice(q questionView) components.MultiChoice {
	return components.NewMultiChoice(q.stem, q.labels, q.texts)
}

// Run starts the quiz session program.
func Run(assistant *study.Assistant, kpID int64, count int) error {
	p := tea.NewProgram(New(assistant, kpID, count))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running quiz:", err)
		return err
	}
	return nil
}
