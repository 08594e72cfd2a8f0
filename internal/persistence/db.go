// Package persistence stores knowledge-check attempts in SQLite.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/physlab/internal/quiz"
)

// DB wraps a SQLite connection for attempt storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		course_id TEXT NOT NULL,
		lesson_path TEXT NOT NULL,
		score REAL NOT NULL,
		results_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_lesson ON attempts(lesson_path);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type Attempt struct {
	ID         int64         `json:"id"`
	CourseID   string        `json:"courseId"`
	LessonPath string        `json:"lessonPath"`
	Score      float64       `json:"score"`
	Results    []quiz.Result `json:"results"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type attemptRow struct {
	ID          int64   `db:"id"`
	CourseID    string  `db:"course_id"`
	LessonPath  string  `db:"lesson_path"`
	Score       float64 `db:"score"`
	ResultsJSON string  `db:"results_json"`
	CreatedAt   int64   `db:"created_at"`
}

func (r attemptRow) attempt() (Attempt, error) {
	a := Attempt{
		ID:         r.ID,
		CourseID:   r.CourseID,
		LessonPath: r.LessonPath,
		Score:      r.Score,
		CreatedAt:  time.Unix(0, r.CreatedAt).UTC(),
	}
	if err := json.Unmarshal([]byte(r.ResultsJSON), &a.Results); err != nil {
		return Attempt{}, fmt.Errorf("attempt %d results: %w", r.ID, err)
	}
	return a, nil
}

// RecordAttempt stores one completed knowledge check and returns its id.
func (db *DB) RecordAttempt(ctx context.Context, a Attempt) (int64, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.Results == nil {
		a.Results = []quiz.Result{}
	}
	resultsJSON, err := json.Marshal(a.Results)
	if err != nil {
		return 0, err
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO attempts (course_id, lesson_path, score, results_json, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.CourseID, a.LessonPath, a.Score, string(resultsJSON), a.CreatedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert attempt: %w", err)
	}
	return res.LastInsertId()
}

// Attempts returns the attempts for a lesson path, newest first. An empty
// path returns every attempt.
func (db *DB) Attempts(ctx context.Context, lessonPath string) ([]Attempt, error) {
	var rows []attemptRow
	var err error
	if lessonPath == "" {
		err = db.conn.SelectContext(ctx, &rows,
			"SELECT * FROM attempts ORDER BY created_at DESC, id DESC")
	} else {
		err = db.conn.SelectContext(ctx, &rows,
			"SELECT * FROM attempts WHERE lesson_path = ? ORDER BY created_at DESC, id DESC", lessonPath)
	}
	if err != nil {
		return nil, err
	}

	out := make([]Attempt, 0, len(rows))
	for _, r := range rows {
		a, err := r.attempt()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// BestScore returns the highest score for a lesson path and whether any
// attempt exists.
func (db *DB) BestScore(ctx context.Context, lessonPath string) (float64, bool, error) {
	var best sql.NullFloat64
	err := db.conn.GetContext(ctx, &best,
		"SELECT MAX(score) FROM attempts WHERE lesson_path = ?", lessonPath)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}
	return best.Float64, best.Valid, nil
}

// Recorder returns a completion callback that stores every finished check.
// Failures are logged since the quiz runner has nowhere to report them.
func Recorder(db *DB, kc quiz.KnowledgeCheck) quiz.CompletionFunc {
	return func(score float64, results []quiz.Result) {
		id, err := db.RecordAttempt(context.Background(), Attempt{
			CourseID:   kc.CourseID,
			LessonPath: kc.LessonPath,
			Score:      score,
			Results:    results,
		})
		if err != nil {
			slog.Error("record attempt failed", "lesson", kc.LessonPath, "error", err)
			return
		}
		slog.Info("attempt recorded", "id", id, "lesson", kc.LessonPath, "score", score)
	}
}
