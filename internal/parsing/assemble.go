package parsing

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Assemble builds ResumeData from raw resume text. Each section is parsed
// from its located body; when the section is missing or parses to nothing,
// the matching fallback form field is parsed instead. Contact fields always
// come from the fallback.
func Assemble(rawResumeText string, fb types.Fallback) *types.ResumeData {
	text := normalizeNewlines(rawResumeText)

	data := &types.ResumeData{
		FullName:  fb.Contact.FullName,
		Email:     fb.Contact.Email,
		Phone:     fb.Contact.Phone,
		Location:  fb.Contact.Location,
		GitHub:    fb.Contact.GitHub,
		LinkedIn:  fb.Contact.LinkedIn,
		Portfolio: fb.Contact.Portfolio,
		Summary:   Clean(LocateSection(text, SummarySection...)),
	}

	data.Skills = ParseSkills(LocateSection(text, SkillsSection...))
	if len(data.Skills) == 0 {
		data.Skills = ParseSkillList(fb.Skills)
	}

	data.Projects = ParseProjects(LocateSection(text, ProjectsSection...))
	if len(data.Projects) == 0 {
		data.Projects = ParseProjectBlocks(fb.Projects)
	}

	data.Experience = ParseExperience(LocateSection(text, ExperienceSection...))
	if len(data.Experience) == 0 {
		data.Experience = ParseExperienceBlocks(fb.Experience)
	}

	data.Education = ParseEducation(LocateSection(text, EducationSection...))
	if len(data.Education) == 0 {
		data.Education = ParseEducationLines(fb.Education)
	}

	return data
}

// AssembleFromFallback builds ResumeData from form fields alone.
func AssembleFromFallback(fb types.Fallback) *types.ResumeData {
	return Assemble("", fb)
}

// AssembleRecord rebuilds ResumeData for a saved history record.
func AssembleRecord(rec *types.ResumeRecord) *types.ResumeData {
	return Assemble(rec.ResumeText, FallbackFromRecord(rec))
}
