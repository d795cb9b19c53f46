package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"

	_ "modernc.org/sqlite"
)

// sqliteTimeLayout is fixed width so TEXT ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS resume_history (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	full_name    TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	location     TEXT NOT NULL DEFAULT '',
	github       TEXT NOT NULL DEFAULT '',
	linkedin     TEXT NOT NULL DEFAULT '',
	portfolio    TEXT NOT NULL DEFAULT '',
	job_title    TEXT NOT NULL DEFAULT '',
	job_keywords TEXT NOT NULL DEFAULT '[]',
	skills       TEXT NOT NULL DEFAULT '[]',
	projects     TEXT NOT NULL DEFAULT '[]',
	experience   TEXT NOT NULL DEFAULT '[]',
	education    TEXT NOT NULL DEFAULT '[]',
	resume_text  TEXT NOT NULL DEFAULT '',
	template_id  TEXT NOT NULL DEFAULT 'modern',
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resume_history_user_created
	ON resume_history (user_id, created_at DESC);`

// LocalDB is a HistoryStore backed by a single SQLite file, used by the CLI.
type LocalDB struct {
	db  *sql.DB
	now func() time.Time
}

var _ HistoryStore = (*LocalDB)(nil)

// DefaultLocalPath returns ~/.resume_builder/history.db.
func DefaultLocalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".resume_builder", "history.db")
}

// OpenLocal opens (or creates) the SQLite history database at path.
func OpenLocal(path string) (*LocalDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init history schema: %w", err)
	}
	return &LocalDB{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the database handle
func (l *LocalDB) Close() {
	if l.db != nil {
		_ = l.db.Close()
	}
}

// Create inserts a new history record, assigning its ID and timestamps.
func (l *LocalDB) Create(ctx context.Context, rec *types.ResumeRecord) error {
	prepareForCreate(rec, l.now())

	args := []any{
		rec.ID.String(), rec.UserID.String(), rec.FullName, rec.Email, rec.Phone, rec.Location,
		rec.GitHub, rec.LinkedIn, rec.Portfolio, rec.JobTitle,
	}
	args = append(args, sectionValues(rec)...)
	args = append(args, rec.ResumeText, string(rec.TemplateID),
		rec.CreatedAt.Format(sqliteTimeLayout), rec.UpdatedAt.Format(sqliteTimeLayout))

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO resume_history (`+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to create resume record: %w", err)
	}
	return nil
}

// Get retrieves a record owned by userID. It returns (nil, nil) when absent.
func (l *LocalDB) Get(ctx context.Context, userID, id uuid.UUID) (*types.ResumeRecord, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM resume_history WHERE id = ? AND user_id = ?`,
		id.String(), userID.String(),
	)
	rec, err := scanLocal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume record: %w", err)
	}
	return rec, nil
}

// List returns the user's most recent records, newest first.
func (l *LocalDB) List(ctx context.Context, userID uuid.UUID, limit int) ([]types.ResumeRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM resume_history
		 WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		userID.String(), NormalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume records: %w", err)
	}
	defer rows.Close()

	records := []types.ResumeRecord{}
	for rows.Next() {
		rec, err := scanLocal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resume records: %w", err)
	}
	return records, nil
}

// Update replaces the mutable fields of an existing record.
func (l *LocalDB) Update(ctx context.Context, rec *types.ResumeRecord) error {
	if rec.TemplateID == "" {
		rec.TemplateID = types.DefaultTemplate
	}
	rec.UpdatedAt = l.now()

	args := []any{rec.FullName, rec.Email, rec.Phone, rec.Location, rec.GitHub, rec.LinkedIn, rec.Portfolio, rec.JobTitle}
	args = append(args, sectionValues(rec)...)
	args = append(args, rec.ResumeText, string(rec.TemplateID), rec.UpdatedAt.Format(sqliteTimeLayout),
		rec.ID.String(), rec.UserID.String())

	result, err := l.db.ExecContext(ctx,
		`UPDATE resume_history SET
			full_name = ?, email = ?, phone = ?, location = ?, github = ?, linkedin = ?, portfolio = ?,
			job_title = ?, job_keywords = ?, skills = ?, projects = ?, experience = ?, education = ?,
			resume_text = ?, template_id = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume record: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, rec.ID)
	}

	stored, err := l.Get(ctx, rec.UserID, rec.ID)
	if err != nil {
		return err
	}
	if stored != nil {
		rec.CreatedAt = stored.CreatedAt
	}
	return nil
}

// Delete removes a record owned by userID.
func (l *LocalDB) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := l.db.ExecContext(ctx,
		`DELETE FROM resume_history WHERE id = ? AND user_id = ?`,
		id.String(), userID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume record: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocal(row rowScanner) (*types.ResumeRecord, error) {
	target := scanTarget{rec: &types.ResumeRecord{}}
	var createdAt, updatedAt string
	if err := row.Scan(target.dest(&createdAt, &updatedAt)...); err != nil {
		return nil, err
	}
	rec := target.finish()

	var err error
	if rec.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	if rec.UpdatedAt, err = time.Parse(sqliteTimeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("invalid updated_at %q: %w", updatedAt, err)
	}
	return rec, nil
}
