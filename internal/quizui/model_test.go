package quizui

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studypal/internal/grader"
	"github.com/abhisek/studypal/internal/llm"
	"github.com/abhisek/studypal/internal/store"
	"github.com/abhisek/studypal/internal/study"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(study.New(s, llm.NewMockProvider()), 0, 2)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func loadedMsg() questionsLoadedMsg {
	return questionsLoadedMsg{
		Questions: []store.Question{
			{
				ID:      1,
				Stem:    "What is 2 + 2?",
				Options: map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"},
				Answer:  "B",
			},
			{
				ID:      2,
				Stem:    "What is 3 + 3?",
				Options: map[string]string{"A": "6", "B": "5", "C": "9", "D": "33"},
				Answer:  "A",
			},
		},
	}
}

func TestQuestionsLoaded(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(loadedMsg())
	m = updated.(Model)

	if m.phase != phaseAsking {
		t.Fatalf("phase = %v, want asking", m.phase)
	}
	if len(m.questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(m.questions))
	}
	// Options are displayed in label order.
	if m.mc.Labels[0] != "A" || m.mc.Options[0] != "3" {
		t.Errorf("first option = %s) %s", m.mc.Labels[0], m.mc.Options[0])
	}
}

func TestLoadErrorShowsMessage(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(questionsLoadedMsg{Err: context.DeadlineExceeded})
	m = updated.(Model)

	if m.errMsg == "" {
		t.Fatal("expected error message")
	}
	// Any key quits from the error state.
	_, cmd := m.Update(keyPress('x'))
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestNumberKeySubmits(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(loadedMsg())
	m = updated.(Model)

	updated, cmd := m.Update(keyPress('2'))
	m = updated.(Model)

	if m.phase != phaseGrading {
		t.Fatalf("phase = %v, want grading", m.phase)
	}
	if cmd == nil {
		t.Fatal("expected grading command")
	}
	if m.mc.ChosenLabel() != "B" {
		t.Errorf("chosen = %q, want B", m.mc.ChosenLabel())
	}
}

func TestVerdictAdvancesToFeedbackThenNextQuestion(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(loadedMsg())
	m = updated.(Model)
	updated, _ = m.Update(keyPress('2'))
	m = updated.(Model)

	updated, _ = m.Update(verdictMsg{Result: grader.Result{
		IsCorrect:     true,
		CorrectAnswer: "B",
		Explanation:   "2 + 2 equals 4.",
	}})
	m = updated.(Model)

	if m.phase != phaseFeedback {
		t.Fatalf("phase = %v, want feedback", m.phase)
	}
	if m.correct != 1 {
		t.Errorf("correct = %d, want 1", m.correct)
	}
	if m.mc.CorrectIndex != 1 {
		t.Errorf("correct index = %d, want 1", m.mc.CorrectIndex)
	}

	// Any key moves on to question two.
	updated, _ = m.Update(keyPress(' '))
	m = updated.(Model)
	if m.phase != phaseAsking || m.idx != 1 {
		t.Fatalf("phase = %v idx = %d, want asking question 2", m.phase, m.idx)
	}
}

func TestLastVerdictLeadsToSummary(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(loadedMsg())
	m = updated.(Model)

	for i := 0; i < 2; i++ {
		updated, _ = m.Update(keyPress('1'))
		m = updated.(Model)
		updated, _ = m.Update(verdictMsg{Result: grader.Result{IsCorrect: false, CorrectAnswer: "B"}})
		m = updated.(Model)
		updated, _ = m.Update(keyPress(' '))
		m = updated.(Model)
	}

	if m.phase != phaseSummary {
		t.Fatalf("phase = %v, want summary", m.phase)
	}

	_, cmd := m.Update(keyPress(' '))
	if cmd == nil {
		t.Error("expected quit from summary")
	}
}
