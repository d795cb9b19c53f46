package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultListLimit is the number of history entries returned when no limit is given.
const DefaultListLimit = 3

// MaxListLimit caps the number of entries a single List call returns.
const MaxListLimit = 100

// ErrRecordNotFound is returned by Update and Delete when no record matches
// the id for that user. Get returns (nil, nil) instead.
var ErrRecordNotFound = errors.New("resume record not found")

// HistoryStore persists resume history records scoped to a user.
type HistoryStore interface {
	Create(ctx context.Context, rec *types.ResumeRecord) error
	Get(ctx context.Context, userID, id uuid.UUID) (*types.ResumeRecord, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]types.ResumeRecord, error)
	Update(ctx context.Context, rec *types.ResumeRecord) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Close()
}

// recordColumns is the column order shared by every SELECT and INSERT.
const recordColumns = `id, user_id, full_name, email, phone, location, github, linkedin, portfolio,
	job_title, job_keywords, skills, projects, experience, education, resume_text, template_id,
	created_at, updated_at`

// NormalizeLimit maps a requested list size onto [1, MaxListLimit].
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// prepareForCreate fills the id, template and timestamps of a new record.
func prepareForCreate(rec *types.ResumeRecord, now time.Time) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.TemplateID == "" {
		rec.TemplateID = types.DefaultTemplate
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
}

// sectionValues returns the JSON-backed columns of rec in recordColumns order.
func sectionValues(rec *types.ResumeRecord) []any {
	return []any{
		StringArray(rec.JobKeywords),
		StringArray(rec.Skills),
		JSONList[types.Project](rec.Projects),
		JSONList[types.Experience](rec.Experience),
		JSONList[types.Education](rec.Education),
	}
}

// scanTarget collects the scan destinations of one row. Timestamps are
// supplied by the caller because the drivers represent them differently.
type scanTarget struct {
	rec        *types.ResumeRecord
	keywords   StringArray
	skills     StringArray
	projects   JSONList[types.Project]
	experience JSONList[types.Experience]
	education  JSONList[types.Education]
	templateID string
}

func (s *scanTarget) dest(createdAt, updatedAt any) []any {
	r := s.rec
	return []any{
		&r.ID, &r.UserID, &r.FullName, &r.Email, &r.Phone, &r.Location, &r.GitHub, &r.LinkedIn, &r.Portfolio,
		&r.JobTitle, &s.keywords, &s.skills, &s.projects, &s.experience, &s.education, &r.ResumeText, &s.templateID,
		createdAt, updatedAt,
	}
}

func (s *scanTarget) finish() *types.ResumeRecord {
	r := s.rec
	r.JobKeywords = nonNil([]string(s.keywords))
	r.Skills = nonNil([]string(s.skills))
	r.Projects = nonNil([]types.Project(s.projects))
	r.Experience = nonNil([]types.Experience(s.experience))
	r.Education = nonNil([]types.Education(s.education))
	r.TemplateID = types.TemplateID(s.templateID)
	return r
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
