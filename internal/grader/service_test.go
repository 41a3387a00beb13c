package grader

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/studypal/internal/llm"
	"github.com/abhisek/studypal/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedQuestion inserts a knowledge point and one question with answer "B".
func seedQuestion(t *testing.T, s *store.Store) *store.Question {
	t.Helper()
	ctx := context.Background()
	kpID, err := s.InsertKnowledgePoint(ctx, "Math", "Arithmetic", "2 + 2 = 4", 0)
	if err != nil {
		t.Fatalf("insert kp: %v", err)
	}
	q := store.Question{
		KPID:  kpID,
		QType: "choice",
		Stem:  "What is 2 + 2?",
		Options: map[string]string{
			"A": "3", "B": "4", "C": "5", "D": "22",
		},
		Answer:      "B",
		Explanation: "Basic addition.",
	}
	id, err := s.InsertQuestion(ctx, &q)
	if err != nil {
		t.Fatalf("insert question: %v", err)
	}
	q.ID = id
	return &q
}

func verdictJSON(correct bool) json.RawMessage {
	if correct {
		return json.RawMessage(`{"is_correct": true, "correct_answer": "B", "explanation": "2 + 2 equals 4."}`)
	}
	return json.RawMessage(`{"is_correct": false, "correct_answer": "B", "explanation": "3 would mean you dropped a unit; 2 + 2 equals 4."}`)
}

func TestGrade_CorrectAnswer(t *testing.T) {
	s := openTestStore(t)
	q := seedQuestion(t, s)
	ctx := context.Background()

	mock := llm.NewMockProvider(llm.MockResponse{Content: verdictJSON(true)})
	svc := NewService(s, mock, DefaultConfig())

	res, err := svc.Grade(ctx, q, "B")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("expected correct verdict")
	}
	if res.CorrectAnswer != "B" {
		t.Errorf("correct_answer = %q, want B", res.CorrectAnswer)
	}

	total, wrong, err := s.CountAttempts(ctx, q.ID)
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if total != 1 || wrong != 0 {
		t.Errorf("attempts = (%d, %d), want (1, 0)", total, wrong)
	}
	if _, err := s.GetMistake(ctx, q.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("correct answer must not create a mistake row, got %v", err)
	}
}

func TestGrade_IncorrectAnswerRecordsMistake(t *testing.T) {
	s := openTestStore(t)
	q := seedQuestion(t, s)
	ctx := context.Background()

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: verdictJSON(false)},
		llm.MockResponse{Content: verdictJSON(false)},
	)
	svc := NewService(s, mock, DefaultConfig())

	for i := 0; i < 2; i++ {
		res, err := svc.Grade(ctx, q, "A")
		if err != nil {
			t.Fatalf("grade #%d: %v", i+1, err)
		}
		if res.IsCorrect {
			t.Fatalf("grade #%d: expected incorrect verdict", i+1)
		}
	}

	m, err := s.GetMistake(ctx, q.ID)
	if err != nil {
		t.Fatalf("get mistake: %v", err)
	}
	if m.Times != 2 {
		t.Errorf("times = %d, want 2", m.Times)
	}
	if m.WrongAnswer != "A" || m.CorrectAnswer != "B" {
		t.Errorf("mistake row = %+v", m)
	}
	if m.KPID != q.KPID {
		t.Errorf("kp_id = %d, want %d", m.KPID, q.KPID)
	}

	total, wrong, err := s.CountAttempts(ctx, q.ID)
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if total != 2 || wrong != 2 {
		t.Errorf("attempts = (%d, %d), want (2, 2)", total, wrong)
	}
}

func TestGrade_FallbackOnProviderFailure(t *testing.T) {
	s := openTestStore(t)
	q := seedQuestion(t, s)
	ctx := context.Background()

	// Empty queue: every call fails with ErrProviderUnavailable.
	mock := llm.NewMockProvider()
	svc := NewService(s, mock, DefaultConfig())

	res, err := svc.Grade(ctx, q, "B")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("fallback should accept the exact stored answer")
	}
	if _, err := s.GetMistake(ctx, q.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("no mistake row for a correct fallback grade")
	}

	total, wrong, err := s.CountAttempts(ctx, q.ID)
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if total != 1 || wrong != 0 {
		t.Errorf("attempts = (%d, %d), want (1, 0)", total, wrong)
	}
}

func TestGrade_FallbackEquivalence(t *testing.T) {
	cases := []struct {
		name   string
		answer string
		want   bool
	}{
		{"exact", "B", true},
		{"lowercase", "b", true},
		{"padded", "  B \n", true},
		{"wrong letter", "A", false},
		{"option text", "4", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := openTestStore(t)
			q := seedQuestion(t, s)

			svc := NewService(s, llm.NewMockProvider(), DefaultConfig())
			res, err := svc.Grade(context.Background(), q, tc.answer)
			if err != nil {
				t.Fatalf("grade: %v", err)
			}
			if res.IsCorrect != tc.want {
				t.Errorf("is_correct = %v, want %v", res.IsCorrect, tc.want)
			}
		})
	}
}

func TestGrade_FallbackOnMalformedVerdict(t *testing.T) {
	s := openTestStore(t)
	q := seedQuestion(t, s)

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`Looks right to me!`)})
	svc := NewService(s, mock, DefaultConfig())

	res, err := svc.Grade(context.Background(), q, "b")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("unparseable verdict should fall back to string comparison")
	}
}

func TestGrade_ModelVerdictIsAuthoritative(t *testing.T) {
	s := openTestStore(t)
	q := seedQuestion(t, s)
	ctx := context.Background()

	// The model accepts the option text even though it differs from the
	// stored letter.
	mock := llm.NewMockProvider(llm.MockResponse{Content: verdictJSON(true)})
	svc := NewService(s, mock, DefaultConfig())

	res, err := svc.Grade(ctx, q, "4")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("model verdict should win over literal comparison")
	}
	if _, err := s.GetMistake(ctx, q.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("no mistake row when the model accepts the answer")
	}
}

func TestGrade_FencedVerdict(t *testing.T) {
	s := openTestStore(t)
	q := seedQuestion(t, s)

	fenced := "```json\n" + string(verdictJSON(false)) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})
	svc := NewService(s, mock, DefaultConfig())

	res, err := svc.Grade(context.Background(), q, "C")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.IsCorrect {
		t.Error("expected incorrect verdict from fenced response")
	}
	if res.Explanation == "" {
		t.Error("explanation should be carried from the verdict")
	}
}
