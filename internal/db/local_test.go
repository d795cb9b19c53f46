package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLocal(t *testing.T) *LocalDB {
	t.Helper()

	store, err := OpenLocal(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return store
}

func sampleRecord(userID uuid.UUID, jobTitle string) *types.ResumeRecord {
	return &types.ResumeRecord{
		UserID:      userID,
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		JobTitle:    jobTitle,
		JobKeywords: []string{"Go", "PostgreSQL"},
		Skills:      []string{"Languages: Go, Python", "Docker"},
		Projects:    []types.Project{{Name: "Resume Builder", Description: "Parses resumes", Tech: "Go"}},
		Experience: []types.Experience{{
			Title: "Engineer", Company: "Acme", Duration: "2020 - Present",
			Bullets: []string{"Built APIs"},
		}},
		Education:  []types.Education{{Degree: "BSc", Institution: "State University", Year: "2019"}},
		ResumeText: "SUMMARY\nEngineer",
	}
}

func TestLocalDB_CreateAndGet(t *testing.T) {
	store := openTestLocal(t)
	ctx := context.Background()
	userID := uuid.New()

	rec := sampleRecord(userID, "Backend Engineer")
	require.NoError(t, store.Create(ctx, rec))
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, types.DefaultTemplate, rec.TemplateID)

	got, err := store.Get(ctx, userID, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, rec.JobKeywords, got.JobKeywords)
	assert.Equal(t, rec.Skills, got.Skills)
	assert.Equal(t, rec.Projects, got.Projects)
	assert.Equal(t, rec.Experience, got.Experience)
	assert.Equal(t, rec.Education, got.Education)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestLocalDB_GetNotFound(t *testing.T) {
	store := openTestLocal(t)
	ctx := context.Background()
	userID := uuid.New()

	rec := sampleRecord(userID, "Engineer")
	require.NoError(t, store.Create(ctx, rec))

	got, err := store.Get(ctx, uuid.New(), rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "records are scoped to their owner")

	got, err = store.Get(ctx, userID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLocalDB_ListNewestFirstWithDefaultLimit(t *testing.T) {
	store := openTestLocal(t)
	ctx := context.Background()
	userID := uuid.New()

	for _, title := range []string{"first", "second", "third", "fourth"} {
		require.NoError(t, store.Create(ctx, sampleRecord(userID, title)))
	}
	require.NoError(t, store.Create(ctx, sampleRecord(uuid.New(), "other user")))

	records, err := store.List(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, records, DefaultListLimit)
	assert.Equal(t, "fourth", records[0].JobTitle)
	assert.Equal(t, "third", records[1].JobTitle)
	assert.Equal(t, "second", records[2].JobTitle)

	records, err = store.List(ctx, userID, 10)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestLocalDB_ListEmpty(t *testing.T) {
	store := openTestLocal(t)

	records, err := store.List(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestLocalDB_Update(t *testing.T) {
	store := openTestLocal(t)
	ctx := context.Background()
	userID := uuid.New()

	rec := sampleRecord(userID, "Engineer")
	require.NoError(t, store.Create(ctx, rec))
	created := rec.CreatedAt

	rec.JobTitle = "Staff Engineer"
	rec.Skills = nil
	rec.TemplateID = types.TemplateElegant
	require.NoError(t, store.Update(ctx, rec))
	assert.True(t, rec.UpdatedAt.After(created))
	assert.True(t, created.Equal(rec.CreatedAt))

	got, err := store.Get(ctx, userID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.JobTitle)
	assert.Equal(t, types.TemplateElegant, got.TemplateID)
	assert.NotNil(t, got.Skills)
	assert.Empty(t, got.Skills)
}

func TestLocalDB_UpdateAndDeleteNotFound(t *testing.T) {
	store := openTestLocal(t)
	ctx := context.Background()

	rec := sampleRecord(uuid.New(), "Engineer")
	rec.ID = uuid.New()
	assert.ErrorIs(t, store.Update(ctx, rec), ErrRecordNotFound)
	assert.ErrorIs(t, store.Delete(ctx, rec.UserID, rec.ID), ErrRecordNotFound)
}

func TestLocalDB_Delete(t *testing.T) {
	store := openTestLocal(t)
	ctx := context.Background()
	userID := uuid.New()

	rec := sampleRecord(userID, "Engineer")
	require.NoError(t, store.Create(ctx, rec))

	assert.ErrorIs(t, store.Delete(ctx, uuid.New(), rec.ID), ErrRecordNotFound)
	require.NoError(t, store.Delete(ctx, userID, rec.ID))

	got, err := store.Get(ctx, userID, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
