// Package rendering turns assembled resume data into HTML, plain text, DOCX and PDF documents.
package rendering

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// PlaceholderName is shown when the resume has no name.
const PlaceholderName = "Your Name"

// PlaceholderCompany is the cover letter recipient when no employer is known.
const PlaceholderCompany = "[Company Name]"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(parseTemplates())

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse templates",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// resumeView is the data passed to resume.html
type resumeView struct {
	Styles       template.CSS
	Name         string
	ContactInfo  string
	ContactLinks string
	Summary      string
	Skills       []skillRow
	Experience   []types.Experience
	Projects     []types.Project
	Education    []types.Education
}

// skillRow is a skill entry split into an optional category and its items
type skillRow struct {
	Category string
	Items    string
}

// coverLetterView is the data passed to cover_letter.html
type coverLetterView struct {
	Name         string
	ContactInfo  string
	ContactLinks string
	Company      string
	Date         string
	Body         string
}

// RenderHTML renders data with the given visual template. Sections with no
// entries are omitted. Unknown template ids fall back to the default template.
func RenderHTML(data *types.ResumeData, id types.TemplateID) (string, error) {
	view := resumeView{
		Styles:       stylesFor(id),
		Name:         displayName(data),
		ContactInfo:  joinNonEmpty(" | ", data.Email, data.Phone, data.Location),
		ContactLinks: joinNonEmpty(" | ", data.LinkedIn, data.GitHub, data.Portfolio),
		Summary:      data.Summary,
		Skills:       skillRows(data.Skills),
		Experience:   data.Experience,
		Projects:     data.Projects,
		Education:    data.Education,
	}
	return execute("resume.html", view)
}

// RenderCoverLetterHTML renders a cover letter with the resume's contact header.
// The recipient company defaults to the most recent employer. An empty date
// renders today's date.
func RenderCoverLetterHTML(data *types.ResumeData, letterText, company, date string) (string, error) {
	view := coverLetterView{
		Name:         displayName(data),
		ContactInfo:  joinNonEmpty("  |  ", data.Phone, data.Email, data.Portfolio),
		ContactLinks: joinNonEmpty("  |  ", data.LinkedIn, data.GitHub, data.Location),
		Company:      recipientCompany(data, company),
		Date:         letterDate(date),
		Body:         strings.TrimSpace(letterText),
	}
	return execute("cover_letter.html", view)
}

func execute(name string, view any) (string, error) {
	var result strings.Builder
	if err := templates.ExecuteTemplate(&result, name, view); err != nil {
		return "", &TemplateError{
			Name:    name,
			Message: "failed to execute",
			Cause:   err,
		}
	}
	return result.String(), nil
}

func skillRows(skills []string) []skillRow {
	rows := make([]skillRow, 0, len(skills))
	for _, skill := range skills {
		category, items, found := strings.Cut(skill, ":")
		if !found {
			rows = append(rows, skillRow{Items: strings.TrimSpace(skill)})
			continue
		}
		rows = append(rows, skillRow{
			Category: strings.TrimSpace(category),
			Items:    strings.TrimSpace(items),
		})
	}
	return rows
}

func displayName(data *types.ResumeData) string {
	if name := strings.TrimSpace(data.FullName); name != "" {
		return name
	}
	return PlaceholderName
}

func recipientCompany(data *types.ResumeData, company string) string {
	if company = strings.TrimSpace(company); company != "" {
		return company
	}
	if len(data.Experience) > 0 && data.Experience[0].Company != "" {
		return data.Experience[0].Company
	}
	return PlaceholderCompany
}

func letterDate(date string) string {
	if date = strings.TrimSpace(date); date != "" {
		return date
	}
	return time.Now().Format("January 2, 2006")
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
