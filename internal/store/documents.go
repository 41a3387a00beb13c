package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Document is one imported source file. Created once per distinct path;
// never mutated afterward.
type Document struct {
	ID         int64
	Path       string
	Title      string
	Subject    string // empty when the user supplied no subject
	ImportedAt time.Time
}

// Chunk is a contiguous unit of extracted document text. It is the unit of
// provenance for knowledge extraction.
type Chunk struct {
	ID         int64
	DocumentID int64
	PageFrom   int
	PageTo     int
	Content    string
}

// ChunkDetail is a chunk joined with its document's source path.
type ChunkDetail struct {
	Chunk
	SourcePath string
}

// InsertDocument inserts a document row, or returns the existing id when a
// row with the same path is already present. Re-importing a path is a no-op
// for the document row.
func (s *Store) InsertDocument(ctx context.Context, path, title, subject string) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO documents(path, title, subject, imported_at) VALUES(?,?,?,?)`,
		path, title, nullString(subject), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM documents WHERE path = ?`, path).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("select document id: %w", err)
	}
	return id, nil
}

// InsertChunk inserts a chunk row. Chunks are never deduplicated.
func (s *Store) InsertChunk(ctx context.Context, documentID int64, pageFrom, pageTo int, content string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO chunks(document_id, page_from, page_to, content) VALUES(?,?,?,?)`,
		documentID, pageFrom, pageTo, content)
	if err != nil {
		return 0, fmt.Errorf("insert chunk: %w", err)
	}
	return res.LastInsertId()
}

// CountChunks returns how many chunks a document has.
func (s *Store) CountChunks(ctx context.Context, documentID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE document_id = ?`, documentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// GetChunk returns a chunk with its source document path, or ErrNotFound.
func (s *Store) GetChunk(ctx context.Context, id int64) (*ChunkDetail, error) {
	var c ChunkDetail
	err := s.db.QueryRowContext(ctx,
		`SELECT c.id, c.document_id, c.page_from, c.page_to, c.content, d.path
		 FROM chunks c JOIN documents d ON d.id = c.document_id
		 WHERE c.id = ?`, id).
		Scan(&c.ID, &c.DocumentID, &c.PageFrom, &c.PageTo, &c.Content, &c.SourcePath)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get chunk: %w", err)
	}
	return &c, nil
}

// ListChunks returns all chunks, optionally restricted to documents with
// the given subject. An empty subject means no filter.
func (s *Store) ListChunks(ctx context.Context, subject string) ([]Chunk, error) {
	query := `SELECT id, document_id, page_from, page_to, content FROM chunks ORDER BY id`
	args := []any{}
	if subject != "" {
		query = `SELECT c.id, c.document_id, c.page_from, c.page_to, c.content
		         FROM chunks c JOIN documents d ON d.id = c.document_id
		         WHERE d.subject = ? ORDER BY c.id`
		args = append(args, subject)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	var out []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.PageFrom, &c.PageTo, &c.Content); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DocumentSubjects returns the distinct user-supplied subjects across all
// documents, optionally restricted to one subject. Documents imported
// without a subject are excluded.
func (s *Store) DocumentSubjects(ctx context.Context, subject string) ([]string, error) {
	query := `SELECT DISTINCT subject FROM documents WHERE subject IS NOT NULL AND subject != '' ORDER BY subject`
	args := []any{}
	if subject != "" {
		query = `SELECT DISTINCT subject FROM documents WHERE subject = ?`
		args = append(args, subject)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list document subjects: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var subj string
		if err := rows.Scan(&subj); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, subj)
	}
	return out, rows.Err()
}

// nullString maps "" to NULL so optional columns stay NULL in storage.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
