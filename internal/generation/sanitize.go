package generation

import (
	"regexp"
	"strings"
)

var (
	sectionKeywordRe = regexp.MustCompile(`(?i)\b(SUMMARY|EXPERIENCE|PROJECTS|EDUCATION|SKILLS|STRENGTHS|TECHNICAL SKILLS)\b`)
	bulletPrefixRe   = regexp.MustCompile(`(?m)^[•\-*]\s*`)
	blankRunRe       = regexp.MustCompile(`\n{3,}`)
	codeFenceRe      = regexp.MustCompile("```[a-z]*\n?")
	resumeHeaderRe   = regexp.MustCompile(`SUMMARY|EXPERIENCE|PROJECTS|SKILLS`)
)

// SanitizeBackground strips section keywords and bullet markers from resume
// text so a cover letter prompt does not echo resume structure back.
func SanitizeBackground(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = sectionKeywordRe.ReplaceAllString(text, "")
	text = bulletPrefixRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// CleanContent removes markdown code fences anywhere in a completion.
func CleanContent(text string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(text, ""))
}

// LooksLikeResume reports whether text carries more than three upper-case
// resume section keywords.
func LooksLikeResume(text string) bool {
	return len(resumeHeaderRe.FindAllStringIndex(text, -1)) > 3
}
