package store

import (
	"context"
	"database/sql"
	"fmt"
)

// KnowledgePoint is a single factual statement extracted from source
// material, tagged with subject and topic. SourceChunkID is the best-effort
// provenance link back to the chunk it was derived from; zero when the
// extraction carried no provenance.
type KnowledgePoint struct {
	ID            int64
	Subject       string
	Topic         string
	KP            string
	SourceChunkID int64 // 0 = NULL in storage
	Importance    int
}

// InsertKnowledgePoint inserts a knowledge point. sourceChunkID of 0 is
// stored as NULL.
func (s *Store) InsertKnowledgePoint(ctx context.Context, subject, topic, kp string, sourceChunkID int64) (int64, error) {
	var chunkRef any
	if sourceChunkID > 0 {
		chunkRef = sourceChunkID
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO knowledge_points(subject, topic, kp, source_chunk_id) VALUES(?,?,?,?)`,
		subject, topic, kp, chunkRef)
	if err != nil {
		return 0, fmt.Errorf("insert knowledge point: %w", err)
	}
	return res.LastInsertId()
}

// GetKnowledgePoint returns one knowledge point or ErrNotFound.
func (s *Store) GetKnowledgePoint(ctx context.Context, id int64) (*KnowledgePoint, error) {
	var (
		k     KnowledgePoint
		chunk sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, subject, topic, kp, source_chunk_id, importance FROM knowledge_points WHERE id = ?`, id).
		Scan(&k.ID, &k.Subject, &k.Topic, &k.KP, &chunk, &k.Importance)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get knowledge point: %w", err)
	}
	k.SourceChunkID = chunk.Int64
	return &k, nil
}

// RandomKnowledgePointID uniformly selects one knowledge point id.
// Returns ErrNotFound when the table is empty.
func (s *Store) RandomKnowledgePointID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM knowledge_points ORDER BY RANDOM() LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("random knowledge point: %w", err)
	}
	return id, nil
}

// ListKnowledgePoints returns knowledge points newest first, optionally
// filtered by subject. limit of 0 means a default of 20.
func (s *Store) ListKnowledgePoints(ctx context.Context, subject string, limit int) ([]KnowledgePoint, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, subject, topic, kp, source_chunk_id, importance
	          FROM knowledge_points ORDER BY id DESC LIMIT ?`
	args := []any{limit}
	if subject != "" {
		query = `SELECT id, subject, topic, kp, source_chunk_id, importance
		         FROM knowledge_points WHERE subject = ? ORDER BY id DESC LIMIT ?`
		args = []any{subject, limit}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list knowledge points: %w", err)
	}
	defer rows.Close()

	var out []KnowledgePoint
	for rows.Next() {
		var (
			k     KnowledgePoint
			chunk sql.NullInt64
		)
		if err := rows.Scan(&k.ID, &k.Subject, &k.Topic, &k.KP, &chunk, &k.Importance); err != nil {
			return nil, fmt.Errorf("scan knowledge point: %w", err)
		}
		k.SourceChunkID = chunk.Int64
		out = append(out, k)
	}
	return out, rows.Err()
}
