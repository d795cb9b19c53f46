package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

var blankLineRe = regexp.MustCompile(`\n[ \t]*\n\s*`)

// ParseSkillList parses the comma-separated skills form field.
func ParseSkillList(s string) []string {
	skills := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// ParseProjectBlocks parses the projects form field: blank-line separated
// blocks of name, description and tech lines.
func ParseProjectBlocks(s string) []types.Project {
	projects := []types.Project{}
	for _, lines := range formBlocks(s) {
		p := types.Project{
			Name:        partAt(lines, 0),
			Description: partAt(lines, 1),
			Tech:        partAt(lines, 2),
		}
		if p.Name != "" {
			projects = append(projects, p)
		}
	}
	return projects
}

// ParseExperienceBlocks parses the experience form field: blank-line
// separated blocks of title, company and duration lines followed by "-" bullets.
func ParseExperienceBlocks(s string) []types.Experience {
	entries := []types.Experience{}
	for _, lines := range formBlocks(s) {
		e := types.Experience{
			Title:    partAt(lines, 0),
			Company:  partAt(lines, 1),
			Duration: partAt(lines, 2),
			Bullets:  []string{},
		}
		if len(lines) > 3 {
			for _, line := range lines[3:] {
				if text, ok := stripBullet(line); ok && text != "" {
					e.Bullets = append(e.Bullets, text)
				}
			}
		}
		if e.Title != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

// ParseEducationLines parses the education form field: one
// "degree, institution, year" entry per line.
func ParseEducationLines(s string) []types.Education {
	entries := []types.Education{}
	for _, line := range strings.Split(normalizeNewlines(s), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := splitTrim(line, ",")
		e := types.Education{
			Degree:      parts[0],
			Institution: partAt(parts, 1),
			Year:        partAt(parts, 2),
		}
		if e.Degree != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

// formBlocks splits a form field into blank-line separated blocks of trimmed lines.
func formBlocks(s string) [][]string {
	s = strings.TrimSpace(normalizeNewlines(s))
	if s == "" {
		return nil
	}
	var blocks [][]string
	for _, block := range blankLineRe.Split(s, -1) {
		lines := splitTrim(strings.TrimSpace(block), "\n")
		if len(lines) == 1 && lines[0] == "" {
			continue
		}
		blocks = append(blocks, lines)
	}
	return blocks
}

// FormatSkillList is the inverse of ParseSkillList.
func FormatSkillList(skills []string) string {
	return strings.Join(skills, ", ")
}

// FormatProjectBlocks is the inverse of ParseProjectBlocks.
func FormatProjectBlocks(projects []types.Project) string {
	blocks := make([]string, 0, len(projects))
	for _, p := range projects {
		blocks = append(blocks, strings.Join([]string{p.Name, p.Description, p.Tech}, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatExperienceBlocks is the inverse of ParseExperienceBlocks.
func FormatExperienceBlocks(entries []types.Experience) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		lines := []string{e.Title, e.Company, e.Duration}
		for _, b := range e.Bullets {
			lines = append(lines, "- "+b)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatEducationLines is the inverse of ParseEducationLines.
func FormatEducationLines(entries []types.Education) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, strings.Join([]string{e.Degree, e.Institution, e.Year}, ", "))
	}
	return strings.Join(lines, "\n")
}

// FallbackFromRecord rebuilds the textual form fields of a saved record.
func FallbackFromRecord(rec *types.ResumeRecord) types.Fallback {
	return types.Fallback{
		Skills:     FormatSkillList(rec.Skills),
		Projects:   FormatProjectBlocks(rec.Projects),
		Experience: FormatExperienceBlocks(rec.Experience),
		Education:  FormatEducationLines(rec.Education),
		Contact:    rec.Contact(),
	}
}

// RecordSections fills the structured columns of rec from form fields.
func RecordSections(rec *types.ResumeRecord, fb types.Fallback) {
	rec.Skills = ParseSkillList(fb.Skills)
	rec.Projects = ParseProjectBlocks(fb.Projects)
	rec.Experience = ParseExperienceBlocks(fb.Experience)
	rec.Education = ParseEducationLines(fb.Education)
	rec.SetContact(fb.Contact)
}
