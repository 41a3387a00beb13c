// Package study is the application facade: one type that wires the store
// and the model provider into the import, extract, quiz, grade, and
// report workflows. The CLI commands and the MCP tools both sit on top
// of it.
package study

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/studypal/internal/extract"
	"github.com/abhisek/studypal/internal/grader"
	"github.com/abhisek/studypal/internal/ingest"
	"github.com/abhisek/studypal/internal/llm"
	"github.com/abhisek/studypal/internal/quizgen"
	"github.com/abhisek/studypal/internal/report"
	"github.com/abhisek/studypal/internal/store"
)

// Assistant bundles the study workflows over one database and provider.
type Assistant struct {
	st       *store.Store
	provider llm.Provider

	extractor *extract.Service
	quizzer   *quizgen.Service
	grader    *grader.Service
}

// New creates an Assistant. The provider may be nil for flows that never
// call the model (import, report, lookups); model-backed operations then
// fail with a clear error.
func New(st *store.Store, provider llm.Provider) *Assistant {
	a := &Assistant{st: st, provider: provider}
	if provider != nil {
		a.extractor = extract.NewService(st, provider, extract.DefaultConfig())
		a.quizzer = quizgen.NewService(st, provider, quizgen.DefaultConfig())
		a.grader = grader.NewService(st, provider, grader.DefaultConfig())
	}
	return a
}

// Store exposes the underlying store for read-side callers.
func (a *Assistant) Store() *store.Store { return a.st }

// ErrNoProvider is returned by model-backed operations when the
// Assistant was built without a provider.
var ErrNoProvider = errors.New("no model provider configured")

// ImportDocuments imports the file or directory at path under subject.
func (a *Assistant) ImportDocuments(ctx context.Context, path, subject string) (ingest.Result, error) {
	return ingest.Scan(ctx, a.st, path, subject)
}

// ExtractKnowledgePoints mines knowledge points from the stored chunks,
// optionally limited to one subject. Returns the number of points saved.
func (a *Assistant) ExtractKnowledgePoints(ctx context.Context, subject string) (int, error) {
	if a.extractor == nil {
		return 0, ErrNoProvider
	}
	return a.extractor.Run(ctx, subject)
}

// GenerateQuiz produces n questions for the knowledge point. A kpID of 0
// picks a random stored knowledge point.
func (a *Assistant) GenerateQuiz(ctx context.Context, kpID int64, n int) ([]store.Question, error) {
	if a.quizzer == nil {
		return nil, ErrNoProvider
	}
	if kpID == 0 {
		id, err := a.st.RandomKnowledgePointID(ctx)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("no knowledge points yet, run extraction first: %w", err)
			}
			return nil, err
		}
		kpID = id
	}
	if n <= 0 {
		n = 1
	}
	return a.quizzer.Generate(ctx, kpID, n)
}

// Grade judges the user's answer to a stored question, logging the
// attempt and the mistake. A missing question is store.ErrNotFound.
// Grading works without a provider: the deterministic comparison against
// the stored answer takes over.
func (a *Assistant) Grade(ctx context.Context, questionID int64, userAnswer string) (grader.Result, error) {
	q, err := a.st.GetQuestion(ctx, questionID)
	if err != nil {
		return grader.Result{}, err
	}
	g := a.grader
	if g == nil {
		g = grader.NewService(a.st, nil, grader.DefaultConfig())
	}
	return g.Grade(ctx, q, userAnswer)
}

// ListKnowledgePoints returns stored knowledge points, optionally
// filtered by subject. A limit of 0 uses the store default.
func (a *Assistant) ListKnowledgePoints(ctx context.Context, subject string, limit int) ([]store.KnowledgePoint, error) {
	return a.st.ListKnowledgePoints(ctx, subject, limit)
}

// GetQuestion returns one stored question.
func (a *Assistant) GetQuestion(ctx context.Context, id int64) (*store.Question, error) {
	return a.st.GetQuestion(ctx, id)
}

// GetChunk returns one chunk with its source path for provenance lookup.
func (a *Assistant) GetChunk(ctx context.Context, id int64) (*store.ChunkDetail, error) {
	return a.st.GetChunk(ctx, id)
}

// ListMistakes returns the mistake log, newest first.
func (a *Assistant) ListMistakes(ctx context.Context) ([]store.MistakeReport, error) {
	return a.st.ListMistakes(ctx)
}

// ExportReport writes the Markdown mistake report into dir and returns
// the file path.
func (a *Assistant) ExportReport(ctx context.Context, dir string) (string, error) {
	return report.Export(ctx, a.st, dir)
}
