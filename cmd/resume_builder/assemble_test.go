package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_TextWithFallback(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", sampleResume)
	fb := writeFallback(t, dir, sampleFallback())
	out := filepath.Join(dir, "out", "resume.json")

	output, err := executeCommand(t, "assemble", "--in", in, "--fallback", fb, "--phone", "555-0100", "--out", out)
	require.NoError(t, err, output)
	assert.Contains(t, output, "Resume data: "+out)

	data := readResumeData(t, out)
	assert.Equal(t, "Jane Doe", data.FullName)
	assert.Equal(t, "555-0100", data.Phone)
	assert.Equal(t, "Backend engineer who ships reliable services.", data.Summary)
	assert.Equal(t, []string{"Languages: Go, Python", "Docker"}, data.Skills)
	require.Len(t, data.Experience, 1)
	assert.Equal(t, "Acme Corp", data.Experience[0].Company)
	require.Len(t, data.Projects, 1, "missing projects section falls back to the form field")
	assert.Equal(t, "Resume Builder", data.Projects[0].Name)
}

func TestAssemble_FlagContactWinsOverFallback(t *testing.T) {
	dir := t.TempDir()
	fb := writeFallback(t, dir, sampleFallback())
	out := filepath.Join(dir, "resume.json")

	_, err := executeCommand(t, "assemble", "--fallback", fb, "--name", "J. Doe", "--out", out)
	require.NoError(t, err)

	data := readResumeData(t, out)
	assert.Equal(t, "J. Doe", data.FullName)
	assert.Equal(t, "jane@example.com", data.Email)
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, data.Skills)
	assert.Empty(t, data.Experience)
}

func TestAssemble_RequiresInput(t *testing.T) {
	_, err := executeCommand(t, "assemble")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must provide --in, --url or --fallback")
}

func TestAssemble_InvalidFallback(t *testing.T) {
	dir := t.TempDir()
	fb := writeFile(t, dir, "fallback.json", `{"skills": ["Go"], "hobbies": "chess"}`)

	_, err := executeCommand(t, "assemble", "--fallback", fb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fallback file")
}

func TestAssemble_MutuallyExclusiveInputs(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", sampleResume)

	_, err := executeCommand(t, "assemble", "--in", in, "--url", "https://example.com/cv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestSections(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.md", sampleResume)

	output, err := executeCommand(t, "sections", "--in", in)
	require.NoError(t, err)
	assert.Contains(t, output, "LOCATED SECTIONS")
	assert.Contains(t, output, "PROFESSIONAL SUMMARY")
	assert.Contains(t, output, "TECHNICAL SKILLS")
	assert.Contains(t, output, "EDUCATION")
}

func TestSections_NoHeaders(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "notes.txt", "just a paragraph of text\nwith no headers")

	output, err := executeCommand(t, "sections", "--in", in)
	require.NoError(t, err)
	assert.Contains(t, output, "No recognized section headers")
}
