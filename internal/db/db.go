// Package db provides resume history persistence on PostgreSQL (pgx) and
// SQLite (modernc.org/sqlite) behind the HistoryStore interface.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/resume-builder/internal/types"
)

// postgresSchema creates the resume_history table on first use.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS resume_history (
	id           UUID PRIMARY KEY,
	user_id      UUID NOT NULL,
	full_name    TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	location     TEXT NOT NULL DEFAULT '',
	github       TEXT NOT NULL DEFAULT '',
	linkedin     TEXT NOT NULL DEFAULT '',
	portfolio    TEXT NOT NULL DEFAULT '',
	job_title    TEXT NOT NULL DEFAULT '',
	job_keywords JSONB NOT NULL DEFAULT '[]',
	skills       JSONB NOT NULL DEFAULT '[]',
	projects     JSONB NOT NULL DEFAULT '[]',
	experience   JSONB NOT NULL DEFAULT '[]',
	education    JSONB NOT NULL DEFAULT '[]',
	resume_text  TEXT NOT NULL DEFAULT '',
	template_id  TEXT NOT NULL DEFAULT 'modern',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_resume_history_user_created
	ON resume_history (user_id, created_at DESC);`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ HistoryStore = (*DB)(nil)

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// New connects with a background context and ensures the schema exists.
func New(databaseURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the resume_history table and index if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to migrate resume_history: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Create inserts a new history record, assigning its ID and timestamps.
func (db *DB) Create(ctx context.Context, rec *types.ResumeRecord) error {
	prepareForCreate(rec, time.Now().UTC())

	args := []any{
		rec.ID, rec.UserID, rec.FullName, rec.Email, rec.Phone, rec.Location, rec.GitHub, rec.LinkedIn, rec.Portfolio,
		rec.JobTitle,
	}
	args = append(args, sectionValues(rec)...)
	args = append(args, rec.ResumeText, string(rec.TemplateID), rec.CreatedAt, rec.UpdatedAt)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_history (`+recordColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to create resume record: %w", err)
	}
	return nil
}

// Get retrieves a record owned by userID. It returns (nil, nil) when absent.
func (db *DB) Get(ctx context.Context, userID, id uuid.UUID) (*types.ResumeRecord, error) {
	target := scanTarget{rec: &types.ResumeRecord{}}
	err := db.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM resume_history WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(target.dest(&target.rec.CreatedAt, &target.rec.UpdatedAt)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume record: %w", err)
	}
	return target.finish(), nil
}

// List returns the user's most recent records, newest first.
func (db *DB) List(ctx context.Context, userID uuid.UUID, limit int) ([]types.ResumeRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM resume_history
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, NormalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume records: %w", err)
	}
	defer rows.Close()

	records := []types.ResumeRecord{}
	for rows.Next() {
		target := scanTarget{rec: &types.ResumeRecord{}}
		if err := rows.Scan(target.dest(&target.rec.CreatedAt, &target.rec.UpdatedAt)...); err != nil {
			return nil, fmt.Errorf("failed to scan resume record: %w", err)
		}
		records = append(records, *target.finish())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resume records: %w", err)
	}
	return records, nil
}

// Update replaces the mutable fields of an existing record.
func (db *DB) Update(ctx context.Context, rec *types.ResumeRecord) error {
	if rec.TemplateID == "" {
		rec.TemplateID = types.DefaultTemplate
	}
	rec.UpdatedAt = time.Now().UTC()

	args := []any{
		rec.ID, rec.UserID, rec.FullName, rec.Email, rec.Phone, rec.Location, rec.GitHub, rec.LinkedIn, rec.Portfolio,
		rec.JobTitle,
	}
	args = append(args, sectionValues(rec)...)
	args = append(args, rec.ResumeText, string(rec.TemplateID), rec.UpdatedAt)

	var createdAt time.Time
	err := db.pool.QueryRow(ctx,
		`UPDATE resume_history SET
			full_name = $3, email = $4, phone = $5, location = $6, github = $7, linkedin = $8, portfolio = $9,
			job_title = $10, job_keywords = $11, skills = $12, projects = $13, experience = $14, education = $15,
			resume_text = $16, template_id = $17, updated_at = $18
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at`,
		args...,
	).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrRecordNotFound, rec.ID)
		}
		return fmt.Errorf("failed to update resume record: %w", err)
	}
	rec.CreatedAt = createdAt
	return nil
}

// Delete removes a record owned by userID.
func (db *DB) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resume_history WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}
