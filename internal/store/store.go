// Package store keeps a local, append-only audit log of analyses: which
// plan was assessed, the verdict, and the raw model response.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	stmt := `CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		plan_sha256 TEXT NOT NULL,
		repo TEXT NOT NULL,
		pull_num TEXT NOT NULL,
		workspace TEXT NOT NULL,
		project TEXT NOT NULL,
		risk TEXT NOT NULL,
		unparsed INTEGER NOT NULL DEFAULT 0,
		verdict_json TEXT NOT NULL,
		raw_response TEXT NOT NULL
	);`
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}
	return nil
}

type Record struct {
	ID         int64
	CreatedAt  time.Time
	PlanSHA256 string
	Repo       string
	PullNum    string
	Workspace  string
	Project    string
	Risk       string
	Unparsed   bool
	Verdict    string
	Raw        string
}

func (s *Store) Append(rec Record) error {
	_, err := s.db.Exec(`
		INSERT INTO analyses
			(created_at, plan_sha256, repo, pull_num, workspace, project, risk, unparsed, verdict_json, raw_response)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.CreatedAt, rec.PlanSHA256, rec.Repo, rec.PullNum, rec.Workspace, rec.Project, rec.Risk, rec.Unparsed, rec.Verdict, rec.Raw)
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, plan_sha256, repo, pull_num, workspace, project, risk, unparsed
		FROM analyses ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.PlanSHA256, &rec.Repo, &rec.PullNum,
			&rec.Workspace, &rec.Project, &rec.Risk, &rec.Unparsed); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
