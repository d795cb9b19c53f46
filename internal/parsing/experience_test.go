package parsing

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperience_PipeDelimited(t *testing.T) {
	entries := ParseExperience("Senior Engineer | Acme Corp | 2020-2023\n- Did X\n- Did Y")

	require.Len(t, entries, 1)
	assert.Equal(t, types.Experience{
		Title:    "Senior Engineer",
		Company:  "Acme Corp",
		Duration: "2020-2023",
		Bullets:  []string{"Did X", "Did Y"},
	}, entries[0])
}

func TestParseExperience_ConsecutivePipeEntries(t *testing.T) {
	section := "Senior Engineer | Acme | 2021-2023\n- Scaled services\nEngineer | Initech | 2019-2021\n- Fixed bugs"

	entries := ParseExperience(section)

	require.Len(t, entries, 2)
	assert.Equal(t, "Senior Engineer", entries[0].Title)
	assert.Equal(t, []string{"Scaled services"}, entries[0].Bullets)
	assert.Equal(t, "Engineer", entries[1].Title)
	assert.Equal(t, "Initech", entries[1].Company)
	assert.Equal(t, "2019-2021", entries[1].Duration)
	assert.Equal(t, []string{"Fixed bugs"}, entries[1].Bullets)
}

func TestParseExperience_MultiLineHeader(t *testing.T) {
	section := "Software Engineer\nAcme Corp\nJan 2020 - Present\n- Built APIs\n- Led migrations\n\n" +
		"Data Analyst\nGlobex\n• Wrote reports"

	entries := ParseExperience(section)

	require.Len(t, entries, 2)
	assert.Equal(t, types.Experience{
		Title:   "Software Engineer",
		Company: "Acme Corp",
		Bullets: []string{"Built APIs", "Led migrations"},
	}, entries[0])
	assert.Equal(t, types.Experience{
		Title:   "Data Analyst",
		Company: "Globex",
		Bullets: []string{"Wrote reports"},
	}, entries[1])
}

func TestParseExperience_CompanyLineKeptVerbatim(t *testing.T) {
	tests := []struct {
		name    string
		section string
		company string
	}{
		{"pipe in company line", "Consultant\nIBM | 2020\n- Advised clients", "IBM | 2020"},
		{"location line", "Consultant\nSelf-employed, Remote\n- Advised clients", "Self-employed, Remote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ParseExperience(tt.section)

			require.Len(t, entries, 1)
			assert.Equal(t, "Consultant", entries[0].Title)
			assert.Equal(t, tt.company, entries[0].Company)
			assert.Empty(t, entries[0].Duration)
			assert.Equal(t, []string{"Advised clients"}, entries[0].Bullets)
		})
	}
}

func TestParseExperience_BulletAfterTitle(t *testing.T) {
	entries := ParseExperience("Freelance Developer\n- Built sites\nSome trailing prose")

	require.Len(t, entries, 1)
	assert.Equal(t, "Freelance Developer", entries[0].Title)
	assert.Empty(t, entries[0].Company)
	assert.Equal(t, []string{"Built sites"}, entries[0].Bullets)
}

func TestParseExperience_BlockOpeningWithBullet(t *testing.T) {
	assert.Empty(t, ParseExperience("- Led team\nMore prose"))

	entries := ParseExperience("- Led team\nMore prose\n\nEngineer\nInitech\n- Fixed bugs")
	require.Len(t, entries, 1)
	assert.Equal(t, "Engineer", entries[0].Title)
	assert.Equal(t, "Initech", entries[0].Company)
}

func TestParseExperience_BlocksWithoutTitleDropped(t *testing.T) {
	assert.Empty(t, ParseExperience("- orphan bullet"))
	assert.Empty(t, ParseExperience("abc"))
	assert.NotNil(t, ParseExperience(""))
}
