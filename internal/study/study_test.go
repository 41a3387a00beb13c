package study

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
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

func TestImportThenExtract(t *testing.T) {
	s := openTestStore(t)
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("Energy is conserved in closed systems."), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	mock := llm.NewMockProvider()
	a := New(s, mock)
	ctx := context.Background()

	res, err := a.ImportDocuments(ctx, dir, "Physics")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Documents != 1 || res.Chunks != 1 {
		t.Fatalf("import result = %+v", res)
	}

	chunks, err := s.ListChunks(ctx, "Physics")
	if err != nil || len(chunks) != 1 {
		t.Fatalf("chunks = %v, %v", chunks, err)
	}

	kpJSON, _ := json.Marshal([]map[string]any{{
		"subject":  "Physics",
		"topic":    "Energy",
		"kp":       "Energy is conserved in closed systems.",
		"chunk_id": chunks[0].ID,
	}})
	mock.AddResponse(llm.MockResponse{Content: kpJSON})

	n, err := a.ExtractKnowledgePoints(ctx, "")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if n != 1 {
		t.Errorf("extracted = %d, want 1", n)
	}

	kps, err := a.ListKnowledgePoints(ctx, "Physics", 0)
	if err != nil || len(kps) != 1 {
		t.Fatalf("kps = %v, %v", kps, err)
	}
}

func TestGenerateQuizRandomKP(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.InsertKnowledgePoint(ctx, "Math", "Algebra", "x + x = 2x", 0); err != nil {
		t.Fatalf("insert kp: %v", err)
	}

	qJSON := json.RawMessage(`[{
		"qtype": "choice",
		"stem": "What is x + x?",
		"options": {"A": "2x", "B": "x", "C": "x^2", "D": "0"},
		"answer": "A",
		"explanation": "Like terms add."
	}]`)
	a := New(s, llm.NewMockProvider(llm.MockResponse{Content: qJSON}))

	qs, err := a.GenerateQuiz(ctx, 0, 1)
	if err != nil {
		t.Fatalf("generate quiz: %v", err)
	}
	if len(qs) != 1 || qs[0].ID == 0 {
		t.Fatalf("questions = %+v", qs)
	}
}

func TestGenerateQuizEmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	a := New(s, llm.NewMockProvider())

	_, err := a.GenerateQuiz(context.Background(), 0, 1)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for empty database", err)
	}
}

func TestModelOperationsWithoutProvider(t *testing.T) {
	s := openTestStore(t)
	a := New(s, nil)
	ctx := context.Background()

	if _, err := a.ExtractKnowledgePoints(ctx, ""); !errors.Is(err, ErrNoProvider) {
		t.Errorf("extract without provider: %v", err)
	}
	if _, err := a.GenerateQuiz(ctx, 1, 1); !errors.Is(err, ErrNoProvider) {
		t.Errorf("quiz without provider: %v", err)
	}
}

func TestGradeWithoutProviderFallsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	kpID, _ := s.InsertKnowledgePoint(ctx, "Math", "Arithmetic", "2 + 2 = 4", 0)
	q := store.Question{
		KPID:    kpID,
		QType:   "choice",
		Stem:    "What is 2 + 2?",
		Options: map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"},
		Answer:  "B",
	}
	qID, err := s.InsertQuestion(ctx, &q)
	if err != nil {
		t.Fatalf("insert question: %v", err)
	}

	a := New(s, nil)
	res, err := a.Grade(ctx, qID, "b")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("fallback grading should accept the stored answer case-insensitively")
	}

	if _, err := a.Grade(ctx, 9999, "A"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing question: %v", err)
	}
}

func TestExportReport(t *testing.T) {
	s := openTestStore(t)
	a := New(s, nil)
	dir := t.TempDir()

	path, err := a.ExportReport(context.Background(), dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(path, "mistakes_report.md") {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report not written: %v", err)
	}
}
