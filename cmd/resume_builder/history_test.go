package main

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var savedIDRe = regexp.MustCompile(`Saved to history: ([0-9a-f-]{36})`)

func TestHistory_Lifecycle(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	localDB := filepath.Join(dir, "history.db")
	in := writeFile(t, dir, "resume.txt", sampleResume)
	fb := writeFallback(t, dir, sampleFallback())

	output, err := executeCommand(t, "history", "save", "--local-db", localDB,
		"--in", in, "--fallback", fb, "--job-title", "Backend Engineer", "--keywords", "golang, k8s", "--template", "elegant")
	require.NoError(t, err, output)
	match := savedIDRe.FindStringSubmatch(output)
	require.Len(t, match, 2, output)
	id := match[1]

	output, err = executeCommand(t, "history", "list", "--local-db", localDB)
	require.NoError(t, err)
	assert.Contains(t, output, "Resume History")
	assert.Contains(t, output, id)
	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "elegant")

	output, err = executeCommand(t, "history", "show", id, "--local-db", localDB)
	require.NoError(t, err)
	assert.Contains(t, output, "ASSEMBLED RESUME")
	assert.Contains(t, output, "Senior Engineer @ Acme Corp")

	output, err = executeCommand(t, "history", "export", id, "--local-db", localDB, "--out-dir", dir)
	require.NoError(t, err, output)
	content, err := os.ReadFile(filepath.Join(dir, "Jane_Doe_elegant_ATS.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Acme Corp")

	_, err = executeCommand(t, "history", "delete", id, "--local-db", localDB)
	require.NoError(t, err)

	_, err = executeCommand(t, "history", "show", id, "--local-db", localDB)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestHistory_ListEmpty(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	localDB := filepath.Join(t.TempDir(), "history.db")

	output, err := executeCommand(t, "history", "list", "--local-db", localDB)
	require.NoError(t, err)
	assert.Contains(t, output, "No saved resumes")
}

func TestHistory_UserScoping(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	localDB := filepath.Join(dir, "history.db")
	in := writeFile(t, dir, "resume.txt", sampleResume)
	owner := uuid.NewString()

	output, err := executeCommand(t, "history", "save", "--local-db", localDB, "--user-id", owner, "--in", in)
	require.NoError(t, err)
	id := savedIDRe.FindStringSubmatch(output)[1]

	output, err = executeCommand(t, "history", "list", "--local-db", localDB)
	require.NoError(t, err)
	assert.NotContains(t, output, id)

	output, err = executeCommand(t, "history", "list", "--local-db", localDB, "--user-id", owner)
	require.NoError(t, err)
	assert.Contains(t, output, id)
}

func TestHistory_InvalidID(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	localDB := filepath.Join(t.TempDir(), "history.db")

	_, err := executeCommand(t, "history", "show", "not-a-uuid", "--local-db", localDB)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid resume id")

	_, err = executeCommand(t, "history", "delete", uuid.NewString(), "--local-db", localDB)
	require.Error(t, err)
}

func TestNewHistoryRecord(t *testing.T) {
	userID := uuid.New()
	rec, err := newHistoryRecord(userID, &types.SaveResumeRequest{
		JobTitle:    "Backend Engineer",
		JobKeywords: []string{"golang", "Go", "postgres"},
		ResumeText:  sampleResume,
		Fallback:    sampleFallback(),
	})
	require.NoError(t, err)

	assert.Equal(t, userID, rec.UserID)
	assert.Equal(t, types.DefaultTemplate, rec.TemplateID)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, rec.JobKeywords)
	assert.Equal(t, "Jane Doe", rec.FullName)
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, rec.Skills)

	_, err = newHistoryRecord(userID, &types.SaveResumeRequest{ResumeText: "x", Template: "retro"})
	assert.Error(t, err)
}
