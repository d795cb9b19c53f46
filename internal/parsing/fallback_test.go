package parsing

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkillList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Python", "SQL"}, ParseSkillList("Go, Python, , SQL"))
	assert.Equal(t, []string{}, ParseSkillList("  "))
}

func TestParseProjectBlocks(t *testing.T) {
	projects := ParseProjectBlocks("Site\nPersonal site\nReact\n\n  \nApp\nMobile app\nSwift")

	require.Len(t, projects, 2)
	assert.Equal(t, types.Project{Name: "Site", Description: "Personal site", Tech: "React"}, projects[0])
	assert.Equal(t, types.Project{Name: "App", Description: "Mobile app", Tech: "Swift"}, projects[1])
}

func TestParseExperienceBlocks(t *testing.T) {
	entries := ParseExperienceBlocks("Engineer\r\nAcme\r\n2020-2023\r\n- Built X\r\n-Built Y\r\nnot a bullet\r\n\r\nIntern\r\nGlobex\r\n2019")

	require.Len(t, entries, 2)
	assert.Equal(t, types.Experience{
		Title:    "Engineer",
		Company:  "Acme",
		Duration: "2020-2023",
		Bullets:  []string{"Built X", "Built Y"},
	}, entries[0])
	assert.Equal(t, "Intern", entries[1].Title)
	assert.Equal(t, []string{}, entries[1].Bullets)
}

func TestParseEducationLines(t *testing.T) {
	entries := ParseEducationLines("B.S. CS, MIT, 2020\n\nM.S. CS, Stanford")

	assert.Equal(t, []types.Education{
		{Degree: "B.S. CS", Institution: "MIT", Year: "2020"},
		{Degree: "M.S. CS", Institution: "Stanford"},
	}, entries)
}

func TestFallbackFromRecord_RoundTrip(t *testing.T) {
	rec := &types.ResumeRecord{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Skills:     []string{"Go", "SQL"},
		Projects:   []types.Project{{Name: "Site", Description: "Personal site", Tech: "React"}},
		Experience: []types.Experience{{Title: "Engineer", Company: "Acme", Duration: "2020", Bullets: []string{"Built X"}}},
		Education:  []types.Education{{Degree: "B.S. CS", Institution: "MIT", Year: "2020"}},
	}

	fb := FallbackFromRecord(rec)
	assert.Equal(t, "Go, SQL", fb.Skills)
	assert.Equal(t, "Site\nPersonal site\nReact", fb.Projects)
	assert.Equal(t, "Engineer\nAcme\n2020\n- Built X", fb.Experience)
	assert.Equal(t, "B.S. CS, MIT, 2020", fb.Education)
	assert.Equal(t, "Jane Doe", fb.Contact.FullName)

	var restored types.ResumeRecord
	RecordSections(&restored, fb)
	assert.Equal(t, rec.Skills, restored.Skills)
	assert.Equal(t, rec.Projects, restored.Projects)
	assert.Equal(t, rec.Experience, restored.Experience)
	assert.Equal(t, rec.Education, restored.Education)
	assert.Equal(t, rec.Contact(), restored.Contact())
}
