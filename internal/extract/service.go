// Package extract implements the knowledge-point extraction workflow:
// aggregate imported chunks into a single prompt, ask the model for a JSON
// array of knowledge points, and persist them with chunk provenance.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/studypal/internal/llm"
	"github.com/abhisek/studypal/internal/store"
)

// ErrNoChunks is returned when there is no imported text to extract from.
var ErrNoChunks = errors.New("no text found in the database: run import first")

// Service runs the extraction workflow against one store and one provider.
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

// DefaultConfig returns extraction defaults. Temperature stays at 0 so
// repeated runs over the same corpus extract comparable points.
func DefaultConfig() Config {
	return Config{
		MaxTokens: 8192,
	}
}

// NewService creates the extraction workflow.
func NewService(st *store.Store, provider llm.Provider, cfg Config) *Service {
	return &Service{st: st, provider: provider, cfg: cfg}
}

// knowledgePointOutput is one parsed item of the model's response array.
type knowledgePointOutput struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	KP      string `json:"kp"`
	ChunkID int64  `json:"chunk_id"`
}

// Run extracts knowledge points from every chunk (optionally restricted to
// documents with the given subject) and persists them. Returns the number
// of points inserted.
//
// Parsing is a fail-fast boundary: a malformed response persists nothing.
// A single failed insert, by contrast, is logged and skipped so the rest of
// a well-formed batch still lands.
func (s *Service) Run(ctx context.Context, subjectFilter string) (int, error) {
	ctx = llm.WithPurpose(ctx, "kp-extract")

	chunks, err := s.st.ListChunks(ctx, subjectFilter)
	if err != nil {
		return 0, fmt.Errorf("list chunks: %w", err)
	}
	if len(chunks) == 0 {
		return 0, ErrNoChunks
	}

	subjects, err := s.st.DocumentSubjects(ctx, subjectFilter)
	if err != nil {
		return 0, fmt.Errorf("list subjects: %w", err)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(chunks, subjects)},
		},
		Schema:      KnowledgePointsSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("extraction failed: %w", err)
	}

	payload := llm.ExtractJSON(string(resp.Content))
	var items []knowledgePointOutput
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return 0, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse knowledge points: %w", err),
		}
	}

	// Provenance is best-effort: a chunk id the model invented is dropped
	// rather than stored as a dangling reference.
	known := make(map[int64]bool, len(chunks))
	for _, c := range chunks {
		known[c.ID] = true
	}

	inserted := 0
	for _, item := range items {
		chunkID := item.ChunkID
		if !known[chunkID] {
			chunkID = 0
		}
		if _, err := s.st.InsertKnowledgePoint(ctx, item.Subject, item.Topic, item.KP, chunkID); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save knowledge point %q: %v\n", item.KP, err)
			continue
		}
		inserted++
	}

	return inserted, nil
}
