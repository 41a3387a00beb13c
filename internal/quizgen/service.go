// Package quizgen implements the quiz generation workflow: given one
// knowledge point, ask the model for N multiple-choice questions and
// persist them with the knowledge point's chunk provenance.
package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/studypal/internal/llm"
	"github.com/abhisek/studypal/internal/store"
)

// Service runs the quiz generation workflow.
type Service struct {
	st       *store.Store
	provider llm.Provider
	cfg      Config
}

// Config bounds the model call.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns quiz generation defaults. A little temperature
// keeps repeated quizzes on the same point from being identical.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
	}
}

// NewService creates the quiz generation workflow.
func NewService(st *store.Store, provider llm.Provider, cfg Config) *Service {
	return &Service{st: st, provider: provider, cfg: cfg}
}

// questionOutput is one parsed item of the model's response array.
type questionOutput struct {
	QType       string            `json:"qtype"`
	Stem        string            `json:"stem"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
}

// Generate produces and persists up to n questions for the knowledge point.
// Missing knowledge points surface store.ErrNotFound. A model failure or
// malformed response yields an empty slice and the error for diagnostics;
// a single failed insert is logged and skipped so the rest of the batch
// still lands.
func (s *Service) Generate(ctx context.Context, kpID int64, n int) ([]store.Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	kp, err := s.st.GetKnowledgePoint(ctx, kpID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("knowledge point %d: %w", kpID, err)
		}
		return nil, fmt.Errorf("look up knowledge point: %w", err)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(kp.KP, n)},
		},
		Schema:      QuestionsSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	payload := llm.ExtractJSON(string(resp.Content))
	var items []questionOutput
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse questions: %w", err),
		}
	}

	var saved []store.Question
	for _, item := range items {
		q := store.Question{
			KPID:          kpID,
			QType:         item.QType,
			Stem:          item.Stem,
			Options:       item.Options,
			Answer:        item.Answer,
			Explanation:   item.Explanation,
			SourceChunkID: kp.SourceChunkID,
		}
		id, err := s.st.InsertQuestion(ctx, &q)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save question %q: %v\n", item.Stem, err)
			continue
		}
		q.ID = id
		saved = append(saved, q)
	}

	return saved, nil
}
