package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/studypal/internal/store"
)

// LoggingProvider is a decorator that records every model call in the
// llm_requests table.
type LoggingProvider struct {
	inner Provider
	st    *store.Store
}

// WithLogging wraps a Provider with request logging. A nil store disables
// logging without changing behavior.
func WithLogging(p Provider, st *store.Store) Provider {
	return &LoggingProvider{inner: p, st: st}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	if l.st == nil {
		return resp, err
	}

	rec := store.LLMRequest{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Never fail the request because logging failed.
	if logErr := l.st.InsertLLMRequest(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
