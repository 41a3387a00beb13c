// Package store owns the SQLite schema and all reads/writes for the study
// database: documents, chunks, knowledge points, questions, attempts,
// mistakes, and the LLM request log.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// schema creates every table if absent. Additive only — there is no
// migration system; new tables may be appended but existing ones are
// never altered.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY,
  path TEXT UNIQUE,
  title TEXT,
  subject TEXT,
  imported_at TEXT
);

CREATE TABLE IF NOT EXISTS chunks (
  id INTEGER PRIMARY KEY,
  document_id INTEGER,
  page_from INTEGER,
  page_to INTEGER,
  content TEXT,
  FOREIGN KEY(document_id) REFERENCES documents(id)
);

CREATE TABLE IF NOT EXISTS knowledge_points (
  id INTEGER PRIMARY KEY,
  subject TEXT,
  topic TEXT,
  kp TEXT,
  source_chunk_id INTEGER,
  importance INTEGER DEFAULT 1,
  FOREIGN KEY(source_chunk_id) REFERENCES chunks(id)
);

CREATE TABLE IF NOT EXISTS questions (
  id INTEGER PRIMARY KEY,
  kp_id INTEGER,
  qtype TEXT,
  stem TEXT,
  options TEXT,
  answer TEXT,
  explanation TEXT,
  source_chunk_id INTEGER,
  created_at TEXT,
  FOREIGN KEY(kp_id) REFERENCES knowledge_points(id),
  FOREIGN KEY(source_chunk_id) REFERENCES chunks(id)
);

CREATE TABLE IF NOT EXISTS attempts (
  id INTEGER PRIMARY KEY,
  question_id INTEGER,
  user_answer TEXT,
  is_correct INTEGER,
  created_at TEXT,
  FOREIGN KEY(question_id) REFERENCES questions(id)
);

CREATE TABLE IF NOT EXISTS mistakes (
  id INTEGER PRIMARY KEY,
  question_id INTEGER,
  wrong_answer TEXT,
  correct_answer TEXT,
  kp_id INTEGER,
  first_seen_at TEXT,
  last_seen_at TEXT,
  times INTEGER DEFAULT 1,
  FOREIGN KEY(question_id) REFERENCES questions(id),
  FOREIGN KEY(kp_id) REFERENCES knowledge_points(id)
);

CREATE TABLE IF NOT EXISTS llm_requests (
  id INTEGER PRIMARY KEY,
  provider TEXT,
  model TEXT,
  purpose TEXT,
  input_tokens INTEGER,
  output_tokens INTEGER,
  latency_ms INTEGER,
  success INTEGER,
  error_message TEXT,
  created_at TEXT
);
`

// Store is the single handle to the study database. It is passed explicitly
// to every workflow — there is no ambient global connection.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas, and creates
// the schema if it does not exist yet. Safe to call on every startup.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user interactive use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. STUDYPAL_DB environment variable
// 2. $XDG_DATA_HOME/studypal/study.db
// 3. ~/.local/share/studypal/study.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STUDYPAL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "studypal", "study.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
