package extract

import (
	"context"
	"encoding/json"
	"errors"
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

func seedChunk(t *testing.T, s *store.Store, subject, content string) int64 {
	t.Helper()
	ctx := context.Background()
	docID, err := s.InsertDocument(ctx, "/notes/"+strings.ReplaceAll(content, " ", "_"), "doc", subject)
	if err != nil {
		t.Fatalf("insert document: %v", err)
	}
	chunkID, err := s.InsertChunk(ctx, docID, 1, 1, content)
	if err != nil {
		t.Fatalf("insert chunk: %v", err)
	}
	return chunkID
}

func TestRun_EmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	mock := llm.NewMockProvider()
	svc := NewService(s, mock, DefaultConfig())

	_, err := svc.Run(context.Background(), "")
	if !errors.Is(err, ErrNoChunks) {
		t.Fatalf("got %v, want ErrNoChunks", err)
	}
	if mock.CallCount() != 0 {
		t.Error("no model call should be attempted on an empty chunk set")
	}
}

func TestRun_PersistsWithProvenance(t *testing.T) {
	s := openTestStore(t)
	chunkID := seedChunk(t, s, "", "Energy is conserved.")

	resp := []map[string]any{
		{"subject": "Physics", "topic": "Energy", "kp": "Energy is conserved.", "chunk_id": chunkID},
	}
	content, _ := json.Marshal(resp)
	mock := llm.NewMockProvider(llm.MockResponse{Content: content})
	svc := NewService(s, mock, DefaultConfig())

	n, err := svc.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 {
		t.Fatalf("inserted = %d, want 1", n)
	}

	kps, err := s.ListKnowledgePoints(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(kps) != 1 {
		t.Fatalf("stored = %d, want 1", len(kps))
	}
	if kps[0].SourceChunkID != chunkID {
		t.Errorf("source_chunk_id = %d, want %d", kps[0].SourceChunkID, chunkID)
	}
}

func TestRun_FencedResponseIsParsed(t *testing.T) {
	s := openTestStore(t)
	seedChunk(t, s, "", "some text")

	fenced := "```json\n[{\"subject\":\"Math\",\"topic\":\"Algebra\",\"kp\":\"x\"}]\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})
	svc := NewService(s, mock, DefaultConfig())

	n, err := svc.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted = %d, want 1", n)
	}
}

func TestRun_MalformedResponsePersistsNothing(t *testing.T) {
	s := openTestStore(t)
	seedChunk(t, s, "", "some text")

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`The text discusses energy.`)})
	svc := NewService(s, mock, DefaultConfig())

	_, err := svc.Run(context.Background(), "")
	var invErr *llm.ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("got %v, want ErrInvalidResponse", err)
	}

	kps, _ := s.ListKnowledgePoints(context.Background(), "", 10)
	if len(kps) != 0 {
		t.Errorf("stored = %d, want 0 after parse failure", len(kps))
	}
}

func TestRun_UnknownChunkIDDropped(t *testing.T) {
	s := openTestStore(t)
	seedChunk(t, s, "", "some text")

	// chunk_id 999 does not exist; provenance must be null, not dangling.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`[{"subject":"S","topic":"T","kp":"fact","chunk_id":999}]`),
	})
	svc := NewService(s, mock, DefaultConfig())

	if _, err := svc.Run(context.Background(), ""); err != nil {
		t.Fatalf("run: %v", err)
	}

	kps, _ := s.ListKnowledgePoints(context.Background(), "", 10)
	if len(kps) != 1 {
		t.Fatalf("stored = %d, want 1", len(kps))
	}
	if kps[0].SourceChunkID != 0 {
		t.Errorf("source_chunk_id = %d, want 0", kps[0].SourceChunkID)
	}
}

func TestRun_SubjectConstraintInPrompt(t *testing.T) {
	s := openTestStore(t)
	seedChunk(t, s, "Physics", "Energy is conserved.")

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[]`)})
	svc := NewService(s, mock, DefaultConfig())

	if _, err := svc.Run(context.Background(), ""); err != nil {
		t.Fatalf("run: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Use only these subjects: Physics") {
		t.Errorf("prompt missing subject constraint:\n%s", msg)
	}
	if !strings.Contains(msg, "[CHUNK_ID:") {
		t.Errorf("prompt missing chunk markers:\n%s", msg)
	}
}
