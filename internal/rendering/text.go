package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// RenderText renders data as ATS plain text with upper-case section headers.
// The output uses the header labels and entry shapes the parser recognizes,
// so it can be fed back through parsing.Assemble.
func RenderText(data *types.ResumeData) string {
	var b strings.Builder
	for _, line := range outline(data) {
		if line.Kind != lineBreak {
			b.WriteString(line.plain())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderCoverLetterText renders a cover letter as plain text with the same
// header, recipient and signature as the HTML letter.
func RenderCoverLetterText(data *types.ResumeData, letterText, company, date string) string {
	name := displayName(data)

	var b strings.Builder
	b.WriteString(name + "\n")
	for _, line := range []string{
		joinNonEmpty(" | ", data.Phone, data.Email, data.Portfolio),
		joinNonEmpty(" | ", data.LinkedIn, data.GitHub, data.Location),
	} {
		if line != "" {
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\nHiring Manager\n")
	b.WriteString(recipientCompany(data, company) + "\n\n")
	b.WriteString(letterDate(date) + "\n\n")
	b.WriteString(strings.TrimSpace(letterText) + "\n\n")
	b.WriteString("Sincerely,\n" + name + "\n")
	return b.String()
}
