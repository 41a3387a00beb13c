package store

import (
	"context"
	"fmt"
	"time"
)

// LLMRequest is one audited model call: provider, purpose, token counts,
// latency, and outcome.
type LLMRequest struct {
	ID           int64
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// InsertLLMRequest appends one request-log row.
func (s *Store) InsertLLMRequest(ctx context.Context, r LLMRequest) error {
	success := 0
	if r.Success {
		success = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		r.Provider, r.Model, r.Purpose, r.InputTokens, r.OutputTokens, r.LatencyMs,
		success, r.ErrorMessage, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert llm request: %w", err)
	}
	return nil
}

// ListLLMRequests returns the most recent request-log rows, newest first.
func (s *Store) ListLLMRequests(ctx context.Context, limit int) ([]LLMRequest, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at
		 FROM llm_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequest
	for rows.Next() {
		var (
			r       LLMRequest
			success int
			created string
		)
		err := rows.Scan(&r.ID, &r.Provider, &r.Model, &r.Purpose, &r.InputTokens,
			&r.OutputTokens, &r.LatencyMs, &success, &r.ErrorMessage, &created)
		if err != nil {
			return nil, fmt.Errorf("scan llm request: %w", err)
		}
		r.Success = success == 1
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}
