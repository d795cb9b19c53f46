package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_MarkdownFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "jane.md", "Jane Doe\njane@example.com | 555-123-4567\n\n"+sampleResume)
	outDir := filepath.Join(dir, "imported")

	output, err := executeCommand(t, "import", "--in", in, "--out-dir", outDir)
	require.NoError(t, err, output)
	assert.Contains(t, output, "Cleaned text")

	cleaned, err := os.ReadFile(filepath.Join(outDir, "jane.cleaned.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(cleaned), "PROFESSIONAL SUMMARY")

	rawMeta, err := os.ReadFile(filepath.Join(outDir, "jane.meta.json"))
	require.NoError(t, err)
	var meta ingestion.Metadata
	require.NoError(t, json.Unmarshal(rawMeta, &meta))
	assert.Equal(t, ingestion.FormatMarkdown, meta.Format)
	assert.Len(t, meta.Hash, 64)

	data := readResumeData(t, filepath.Join(outDir, "jane.resume.json"))
	assert.Equal(t, "Jane Doe", data.FullName)
	assert.Equal(t, "jane@example.com", data.Email)
	assert.Equal(t, "555-123-4567", data.Phone)
	require.Len(t, data.Experience, 1)
}

func TestImport_FlagsKeepPrecedence(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "cv.txt", "Jane Doe\njane@example.com\n\n"+sampleResume)

	_, err := executeCommand(t, "import", "--in", in, "--email", "work@example.com", "--out-dir", dir)
	require.NoError(t, err)

	data := readResumeData(t, filepath.Join(dir, "cv.resume.json"))
	assert.Equal(t, "work@example.com", data.Email)
	assert.Equal(t, "Jane Doe", data.FullName)
}

func TestImport_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.odt", "binary")

	_, err := executeCommand(t, "import", "--in", in, "--out-dir", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ingestion.ErrUnsupportedFormat)
}

func TestImport_RequiresInput(t *testing.T) {
	_, err := executeCommand(t, "import")
	require.Error(t, err)
}

func TestImportBaseName(t *testing.T) {
	tests := []struct {
		name string
		path string
		url  string
		want string
	}{
		{name: "file", path: "/tmp/resumes/jane_doe.pdf", want: "jane_doe"},
		{name: "github profile", url: "https://github.com/janedoe", want: "github.com_janedoe"},
		{name: "linkedin profile", url: "https://www.linkedin.com/in/jane-doe/", want: "linkedin.com_in_jane-doe"},
		{name: "bare host", url: "https://janedoe.dev", want: "janedoe.dev"},
		{name: "unparseable url", url: "::", want: "profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, importBaseName(tt.path, tt.url))
		})
	}
}
