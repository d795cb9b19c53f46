package parsing

import (
	"regexp"
	"sort"
	"strings"
)

// Recognized section header labels. Every label is searched on every lookup so
// that any recognized header can terminate the section before it.
const (
	HeaderProfessionalSummary    = "PROFESSIONAL SUMMARY"
	HeaderSummary                = "SUMMARY"
	HeaderTechnicalSkills        = "TECHNICAL SKILLS"
	HeaderSkills                 = "SKILLS"
	HeaderProjects               = "PROJECTS"
	HeaderKeyProjects            = "KEY PROJECTS"
	HeaderExperience             = "EXPERIENCE"
	HeaderProfessionalExperience = "PROFESSIONAL EXPERIENCE"
	HeaderWorkExperience         = "WORK EXPERIENCE"
	HeaderEducation              = "EDUCATION"
	HeaderCertifications         = "CERTIFICATIONS"
	HeaderAchievements           = "ACHIEVEMENTS"
)

// Section groups used by Assemble. Each group lists the aliases of one logical section.
var (
	SummarySection    = []string{HeaderProfessionalSummary, HeaderSummary}
	SkillsSection     = []string{HeaderTechnicalSkills, HeaderSkills}
	ProjectsSection   = []string{HeaderProjects, HeaderKeyProjects}
	ExperienceSection = []string{HeaderExperience, HeaderProfessionalExperience, HeaderWorkExperience}
	EducationSection  = []string{HeaderEducation}
)

type headerPattern struct {
	label string
	re    *regexp.Regexp
}

// headerPatterns matches, from a candidate line start, the optional newline,
// the leading decoration run and the label itself. Trailing decoration is
// checked separately in matchTrailer.
var headerPatterns = buildHeaderPatterns(
	HeaderProfessionalSummary,
	HeaderSummary,
	HeaderTechnicalSkills,
	HeaderSkills,
	HeaderProjects,
	HeaderKeyProjects,
	HeaderExperience,
	HeaderProfessionalExperience,
	HeaderWorkExperience,
	HeaderEducation,
	HeaderCertifications,
	HeaderAchievements,
)

func buildHeaderPatterns(labels ...string) []headerPattern {
	patterns := make([]headerPattern, 0, len(labels))
	for _, label := range labels {
		patterns = append(patterns, headerPattern{
			label: label,
			re:    regexp.MustCompile(`(?i)^\n?[\s*#]*` + regexp.QuoteMeta(label)),
		})
	}
	return patterns
}

// HeaderMatch is one recognized header occurrence. Start and End delimit the
// matched span including decoration; section content begins at End.
type HeaderMatch struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// LocateHeaders returns every recognized header in text, in document order.
func LocateHeaders(text string) []HeaderMatch {
	var matches []HeaderMatch
	for _, p := range headerPatterns {
		matches = append(matches, findHeader(text, p)...)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}

// findHeader scans candidate line starts (offset 0 and every newline) for p.
// After a match the scan resumes at the match end, so matches never overlap.
func findHeader(text string, p headerPattern) []HeaderMatch {
	var matches []HeaderMatch
	for start := 0; start < len(text); {
		if start > 0 && text[start] != '\n' {
			next := strings.IndexByte(text[start:], '\n')
			if next < 0 {
				break
			}
			start += next
			continue
		}
		if loc := p.re.FindStringIndex(text[start:]); loc != nil {
			if end, ok := matchTrailer(text, start+loc[1]); ok {
				matches = append(matches, HeaderMatch{Label: p.label, Start: start, End: end})
				start = end
				continue
			}
		}
		start++
	}
	return matches
}

// matchTrailer consumes the trailing run of whitespace, '*' and ':' after a
// label. The header must be followed by a newline or end of text; the longest
// such prefix of the run wins and the newline itself is left unconsumed.
func matchTrailer(text string, pos int) (int, bool) {
	end := pos
	for end < len(text) && isTrailerByte(text[end]) {
		end++
	}
	if end == len(text) {
		return end, true
	}
	if nl := strings.LastIndexByte(text[pos:end], '\n'); nl >= 0 {
		return pos + nl, true
	}
	return 0, false
}

func isTrailerByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v', '*', ':':
		return true
	}
	return false
}

// LocateSection returns the trimmed body of the first header in document
// order whose label is one of names, up to the next recognized header or the
// end of text. It returns "" when no such header exists.
func LocateSection(fullText string, names ...string) string {
	headers := LocateHeaders(fullText)
	for i, h := range headers {
		if !containsLabel(names, h.Label) {
			continue
		}
		end := len(fullText)
		if i+1 < len(headers) {
			end = headers[i+1].Start
		}
		if end <= h.End {
			return ""
		}
		return strings.TrimSpace(fullText[h.End:end])
	}
	return ""
}

func containsLabel(names []string, label string) bool {
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), label) {
			return true
		}
	}
	return false
}
