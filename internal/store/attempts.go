package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Attempt is one grading event. The attempts table is an append-only log;
// rows are never updated or deleted.
type Attempt struct {
	ID         int64
	QuestionID int64
	UserAnswer string
	IsCorrect  bool
	CreatedAt  time.Time
}

// Mistake is the per-question aggregate of incorrect attempts. At most one
// row exists per question id; Times equals the number of incorrect attempts
// ever logged for that question.
type Mistake struct {
	ID            int64
	QuestionID    int64
	WrongAnswer   string
	CorrectAnswer string
	KPID          int64
	FirstSeenAt   time.Time
	LastSeenAt    time.Time
	Times         int
}

// MistakeReport is a mistake joined with its question and knowledge point
// text for review reporting.
type MistakeReport struct {
	Mistake
	Stem        string
	Explanation string
	KPText      string
}

// LogAttempt appends one attempt row.
func (s *Store) LogAttempt(ctx context.Context, questionID int64, userAnswer string, isCorrect bool) error {
	correct := 0
	if isCorrect {
		correct = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts(question_id, user_answer, is_correct, created_at) VALUES(?,?,?,?)`,
		questionID, userAnswer, correct, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("log attempt: %w", err)
	}
	return nil
}

// CountAttempts returns (total, incorrect) attempt counts for a question.
func (s *Store) CountAttempts(ctx context.Context, questionID int64) (int, int, error) {
	var total, wrong int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_correct = 0 THEN 1 ELSE 0 END), 0)
		 FROM attempts WHERE question_id = ?`, questionID).Scan(&total, &wrong)
	if err != nil {
		return 0, 0, fmt.Errorf("count attempts: %w", err)
	}
	return total, wrong, nil
}

// UpsertMistake records an incorrect answer. The first incorrect attempt on
// a question creates the mistake row; later ones update wrong_answer,
// correct_answer, last_seen_at, and increment times. Runs in a single
// transaction so the times counter stays in step with the attempts log.
func (s *Store) UpsertMistake(ctx context.Context, questionID, kpID int64, wrongAnswer, correctAnswer string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM mistakes WHERE question_id = ?`, questionID).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO mistakes(question_id, wrong_answer, correct_answer, kp_id, first_seen_at, last_seen_at, times)
			 VALUES(?,?,?,?,?,?,1)`,
			questionID, wrongAnswer, correctAnswer, kpID, now, now)
		if err != nil {
			return fmt.Errorf("insert mistake: %w", err)
		}
	case err != nil:
		return fmt.Errorf("select mistake: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE mistakes SET wrong_answer = ?, correct_answer = ?, last_seen_at = ?, times = times + 1
			 WHERE id = ?`,
			wrongAnswer, correctAnswer, now, id)
		if err != nil {
			return fmt.Errorf("update mistake: %w", err)
		}
	}

	return tx.Commit()
}

// GetMistake returns the mistake row for a question, or ErrNotFound.
func (s *Store) GetMistake(ctx context.Context, questionID int64) (*Mistake, error) {
	var (
		m           Mistake
		first, last sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, question_id, wrong_answer, correct_answer, kp_id, first_seen_at, last_seen_at, times
		 FROM mistakes WHERE question_id = ?`, questionID).
		Scan(&m.ID, &m.QuestionID, &m.WrongAnswer, &m.CorrectAnswer, &m.KPID, &first, &last, &m.Times)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get mistake: %w", err)
	}
	if first.Valid {
		m.FirstSeenAt, _ = time.Parse(time.RFC3339, first.String)
	}
	if last.Valid {
		m.LastSeenAt, _ = time.Parse(time.RFC3339, last.String)
	}
	return &m, nil
}

// ListMistakes returns every mistake joined with its question stem,
// explanation, and knowledge point text, newest last seen first.
func (s *Store) ListMistakes(ctx context.Context) ([]MistakeReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.question_id, m.wrong_answer, m.correct_answer, m.kp_id,
		        m.first_seen_at, m.last_seen_at, m.times,
		        q.stem, COALESCE(q.explanation, ''), COALESCE(k.kp, '')
		 FROM mistakes m
		 JOIN questions q ON q.id = m.question_id
		 LEFT JOIN knowledge_points k ON k.id = m.kp_id
		 ORDER BY m.last_seen_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list mistakes: %w", err)
	}
	defer rows.Close()

	var out []MistakeReport
	for rows.Next() {
		var (
			m           MistakeReport
			first, last sql.NullString
		)
		err := rows.Scan(&m.ID, &m.QuestionID, &m.WrongAnswer, &m.CorrectAnswer, &m.KPID,
			&first, &last, &m.Times, &m.Stem, &m.Explanation, &m.KPText)
		if err != nil {
			return nil, fmt.Errorf("scan mistake: %w", err)
		}
		if first.Valid {
			m.FirstSeenAt, _ = time.Parse(time.RFC3339, first.String)
		}
		if last.Valid {
			m.LastSeenAt, _ = time.Parse(time.RFC3339, last.String)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
