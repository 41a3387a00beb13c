// Package grader implements the grading and mistake-tracking workflow:
// model-assisted judgment with a deterministic string-comparison fallback,
// an append-only attempt log, and the per-question mistake upsert.
package grader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/studypal/internal/llm"
	"github.com/abhisek/studypal/internal/store"
)

// Result is what the caller displays after grading one answer.
type Result struct {
	IsCorrect     bool
	CorrectAnswer string
	Explanation   string
}

// Service runs the grading workflow.
type Service struct {
	st       *store.Store
	provider llm.Provider
	cfg      Config
}

// Config bounds the model call.
type Config struct {
	MaxTokens int
}

// DefaultConfig returns grading defaults. Temperature is fixed at 0:
// grading must be as deterministic as the model allows.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024}
}

// NewService creates the grading workflow.
func NewService(st *store.Store, provider llm.Provider, cfg Config) *Service {
	return &Service{st: st, provider: provider, cfg: cfg}
}

// verdictOutput is the model's grading response.
type verdictOutput struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Grade judges the user's answer to the stored question, logs the attempt,
// and upserts the mistake row when incorrect.
//
// The model verdict is authoritative when the call succeeds, even if it
// disagrees with a plain string comparison. Only a failed call or an
// unparseable response triggers the fallback: a case-insensitive,
// whitespace-trimmed comparison against the stored answer. Grading never
// returns an error for model trouble — every internal failure degrades to
// the fallback.
func (s *Service) Grade(ctx context.Context, q *store.Question, userAnswer string) (Result, error) {
	ctx = llm.WithPurpose(ctx, "grade")

	res := Result{
		CorrectAnswer: q.Answer,
		Explanation:   q.Explanation,
	}

	verdict, err := s.askModel(ctx, q, userAnswer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: model grading unavailable (%v), falling back to string comparison\n", err)
		res.IsCorrect = fallbackCompare(userAnswer, q.Answer)
	} else {
		res.IsCorrect = verdict.IsCorrect
		if verdict.CorrectAnswer != "" {
			res.CorrectAnswer = verdict.CorrectAnswer
		}
		if verdict.Explanation != "" {
			res.Explanation = verdict.Explanation
		}
	}

	if err := s.st.LogAttempt(ctx, q.ID, userAnswer, res.IsCorrect); err != nil {
		return res, fmt.Errorf("log attempt: %w", err)
	}

	if !res.IsCorrect {
		if err := s.st.UpsertMistake(ctx, q.ID, q.KPID, userAnswer, res.CorrectAnswer); err != nil {
			return res, fmt.Errorf("record mistake: %w", err)
		}
	}

	return res, nil
}

// askModel asks the provider for a grading verdict.
func (s *Service) askModel(ctx context.Context, q *store.Question, userAnswer string) (*verdictOutput, error) {
	if s.provider == nil {
		return nil, &llm.ErrProviderUnavailable{Err: errors.New("no provider configured")}
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(q, userAnswer)},
		},
		Schema:    VerdictSchema,
		MaxTokens: s.cfg.MaxTokens,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	payload := llm.ExtractJSON(string(resp.Content))
	var verdict verdictOutput
	if err := json.Unmarshal([]byte(payload), &verdict); err != nil {
		return nil, fmt.Errorf("parse verdict: %w", err)
	}
	return &verdict, nil
}

// fallbackCompare is the deterministic grading path: trimmed,
// case-insensitive equality against the stored answer.
func fallbackCompare(userAnswer, storedAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(storedAnswer))
}
