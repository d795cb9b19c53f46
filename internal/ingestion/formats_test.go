package ingestion

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
		wantErr  bool
	}{
		{"resume.txt", FormatText, false},
		{"RESUME.PDF", FormatPDF, false},
		{"cv.docx", FormatDOCX, false},
		{"index.htm", FormatHTML, false},
		{"notes.markdown", FormatMarkdown, false},
		{"README", FormatText, false},
		{"resume.doc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DetectFormat(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestIngestBytes_HTMLToMarkdown(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<body>
<nav>Home | Blog</nav>
<main>
<h1>Jane Doe</h1>
<h2>Skills</h2>
<ul><li>Go</li><li>SQL</li></ul>
</main>
<footer>Copyright</footer>
</body>
</html>`

	text, metadata, err := IngestBytes("resume.html", []byte(page))
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, metadata.Format)
	assert.Contains(t, text, "# Jane Doe")
	assert.Contains(t, text, "## Skills")
	assert.Contains(t, text, "- Go")
	assert.NotContains(t, text, "Blog")
	assert.NotContains(t, text, "Copyright")
}

func TestIngestBytes_HTMLSectionsAssemble(t *testing.T) {
	page := `<html><body><div id="resume">
<h2>Skills</h2>
<p>Languages: Go, Python</p>
<h2>Education</h2>
<p>B.S. Computer Science | MIT | 2020</p>
</div></body></html>`

	text, _, err := IngestBytes("resume.html", []byte(page))
	require.NoError(t, err)

	data := parsing.Assemble(text, types.Fallback{})
	assert.Equal(t, []string{"Languages: Go, Python"}, data.Skills)
	assert.Equal(t, []types.Education{{Degree: "B.S. Computer Science", Institution: "MIT", Year: "2020"}}, data.Education)
}

func TestIngestBytes_DOCXRoundTrip(t *testing.T) {
	original := &types.ResumeData{
		FullName: "Jane Doe",
		Skills:   []string{"Languages: Go, Python"},
		Experience: []types.Experience{
			{Title: "Engineer", Company: "Acme", Duration: "2020 - Present", Bullets: []string{"Built APIs"}},
		},
		Projects: []types.Project{
			{Name: "Link Shortener", Description: "A URL shortening service", Tech: "Go"},
			{Name: "Blog Engine", Description: "Static site generator", Tech: "Rust"},
		},
		Education: []types.Education{{Degree: "B.S. CS", Institution: "MIT", Year: "2019"}},
	}
	doc, err := rendering.RenderDOCX(original)
	require.NoError(t, err)

	text, metadata, err := IngestBytes("resume.docx", doc)
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, metadata.Format)
	assert.Contains(t, text, "Jane Doe\n")

	data := parsing.Assemble(text, types.Fallback{})
	assert.Equal(t, original.Skills, data.Skills)
	assert.Equal(t, original.Experience, data.Experience)
	assert.Equal(t, original.Projects, data.Projects)
	assert.Equal(t, original.Education, data.Education)
}

func TestIngestBytes_InvalidPDF(t *testing.T) {
	_, _, err := IngestBytes("resume.pdf", []byte("not a pdf"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract pdf text")
}

func TestIngestBytes_InvalidDOCX(t *testing.T) {
	_, _, err := IngestBytes("resume.docx", []byte("not a zip"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse docx")
}
