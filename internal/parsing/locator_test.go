package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const decoratedResume = "Jane Doe\n\n**PROFESSIONAL SUMMARY**\nBuilds things.\n\n## Skills:\nGo, SQL\n\nEXPERIENCE\nEngineer | Acme | 2020\n"

func TestLocateSection_DecoratedHeaders(t *testing.T) {
	assert.Equal(t, "Builds things.", LocateSection(decoratedResume, SummarySection...))
	assert.Equal(t, "Go, SQL", LocateSection(decoratedResume, SkillsSection...))
	assert.Equal(t, "Engineer | Acme | 2020", LocateSection(decoratedResume, ExperienceSection...))
}

func TestLocateSection_Missing(t *testing.T) {
	assert.Empty(t, LocateSection(decoratedResume, EducationSection...))
	assert.Empty(t, LocateSection("", SummarySection...))
}

func TestLocateSection_HeaderMustStandAlone(t *testing.T) {
	text := "My summary of skills is long\nExperience with Go"
	assert.Empty(t, LocateSection(text, SummarySection...))
	assert.Empty(t, LocateSection(text, SkillsSection...))
	assert.Empty(t, LocateSection(text, ExperienceSection...))
}

func TestLocateSection_Aliases(t *testing.T) {
	text := "WORK EXPERIENCE\nDeveloper | Globex\n\nKEY PROJECTS\nThing\n\nTECHNICAL SKILLS\nGo"
	assert.Equal(t, "Developer | Globex", LocateSection(text, ExperienceSection...))
	assert.Equal(t, "Thing", LocateSection(text, ProjectsSection...))
	assert.Equal(t, "Go", LocateSection(text, SkillsSection...))
}

func TestLocateSection_CaseInsensitive(t *testing.T) {
	text := "education\nB.S. Math\n\ncertifications\nAWS"
	assert.Equal(t, "B.S. Math", LocateSection(text, EducationSection...))
}

func TestLocateSection_EndsAtAnyCatalogHeader(t *testing.T) {
	text := "EDUCATION\nB.S. CS\nCERTIFICATIONS\nAWS Solutions Architect\nACHIEVEMENTS\nHackathon winner"
	assert.Equal(t, "B.S. CS", LocateSection(text, EducationSection...))
}

func TestLocateSection_FirstMatchWins(t *testing.T) {
	text := "SUMMARY\nFirst\n\nSKILLS\nGo\n\nSUMMARY\nSecond"
	assert.Equal(t, "First", LocateSection(text, SummarySection...))
}

func TestLocateSection_HeaderAtEndOfText(t *testing.T) {
	assert.Empty(t, LocateSection("Intro\nSKILLS", SkillsSection...))
	assert.Empty(t, LocateSection("Intro\nSKILLS:**  ", SkillsSection...))
}

func TestLocateSection_AdjacentHeaders(t *testing.T) {
	text := "SKILLS\n\nEXPERIENCE\nEngineer | Acme"
	assert.Empty(t, LocateSection(text, SkillsSection...))
	assert.Equal(t, "Engineer | Acme", LocateSection(text, ExperienceSection...))
}

func TestLocateHeaders_DocumentOrder(t *testing.T) {
	headers := LocateHeaders(decoratedResume)
	require.Len(t, headers, 3)

	labels := make([]string, 0, len(headers))
	for _, h := range headers {
		labels = append(labels, h.Label)
	}
	assert.Equal(t, []string{HeaderProfessionalSummary, HeaderSkills, HeaderExperience}, labels)
}

func TestLocateHeaders_ContiguousReconstruction(t *testing.T) {
	docs := []string{
		decoratedResume,
		"SUMMARY\nA\nSKILLS\nB\nPROJECTS\nC\nEXPERIENCE\nD\nEDUCATION\nE",
		"# Summary\n\ntext\n\n# Education:\n\nB.S.\n\n# Achievements\nwon",
	}

	for _, doc := range docs {
		headers := LocateHeaders(doc)
		require.NotEmpty(t, headers)

		var sb strings.Builder
		for i, h := range headers {
			require.LessOrEqual(t, h.Start, h.End)
			end := len(doc)
			if i+1 < len(headers) {
				end = headers[i+1].Start
				require.LessOrEqual(t, h.End, end, "headers overlap in %q", doc)
			}
			sb.WriteString(doc[h.Start:h.End])
			sb.WriteString(doc[h.End:end])
		}
		assert.Equal(t, doc[headers[0].Start:], sb.String())
	}
}
