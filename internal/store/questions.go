package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Question is one generated quiz question. Options maps option label to
// option text ({"A": ..., "D": ...}); Answer holds the correct label.
type Question struct {
	ID            int64
	KPID          int64
	QType         string
	Stem          string
	Options       map[string]string
	Answer        string
	Explanation   string
	SourceChunkID int64 // 0 = NULL in storage
	CreatedAt     time.Time
}

// InsertQuestion inserts a question linked to its knowledge point, copying
// the knowledge point's chunk provenance.
func (s *Store) InsertQuestion(ctx context.Context, q *Question) (int64, error) {
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return 0, fmt.Errorf("marshal options: %w", err)
	}

	var chunkRef any
	if q.SourceChunkID > 0 {
		chunkRef = q.SourceChunkID
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO questions(kp_id, qtype, stem, options, answer, explanation, source_chunk_id, created_at)
		 VALUES(?,?,?,?,?,?,?,?)`,
		q.KPID, q.QType, q.Stem, string(opts), q.Answer, q.Explanation, chunkRef,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return res.LastInsertId()
}

// GetQuestion returns one question or ErrNotFound.
func (s *Store) GetQuestion(ctx context.Context, id int64) (*Question, error) {
	var (
		q       Question
		opts    sql.NullString
		chunk   sql.NullInt64
		created sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, kp_id, qtype, stem, options, answer, explanation, source_chunk_id, created_at
		 FROM questions WHERE id = ?`, id).
		Scan(&q.ID, &q.KPID, &q.QType, &q.Stem, &opts, &q.Answer, &q.Explanation, &chunk, &created)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	q.SourceChunkID = chunk.Int64
	if opts.Valid && opts.String != "" {
		if err := json.Unmarshal([]byte(opts.String), &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
	}
	if created.Valid {
		q.CreatedAt, _ = time.Parse(time.RFC3339, created.String)
	}
	return &q, nil
}
