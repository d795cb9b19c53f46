package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// lineKind classifies one line of a linear resume outline
type lineKind int

const (
	lineName lineKind = iota
	lineContact
	lineHeading
	lineEntry
	lineText
	lineBullet
	lineBreak
)

// outlineLine is one line of the linear form shared by the text and DOCX renderers
type outlineLine struct {
	Kind lineKind
	Text string
	// Label is a bold lead-in such as a skill category.
	Label string
}

// outline flattens data into ATS-friendly lines in the same section order
// as the HTML templates. Empty sections are skipped.
func outline(data *types.ResumeData) []outlineLine {
	lines := []outlineLine{{Kind: lineName, Text: displayName(data)}}
	if info := joinNonEmpty(" | ", data.Email, data.Phone, data.Location); info != "" {
		lines = append(lines, outlineLine{Kind: lineContact, Text: info})
	}
	if links := joinNonEmpty(" | ", data.LinkedIn, data.GitHub, data.Portfolio); links != "" {
		lines = append(lines, outlineLine{Kind: lineContact, Text: links})
	}

	section := func(title string) {
		lines = append(lines,
			outlineLine{Kind: lineBreak},
			outlineLine{Kind: lineHeading, Text: title},
		)
	}

	if summary := strings.TrimSpace(data.Summary); summary != "" {
		section("PROFESSIONAL SUMMARY")
		lines = append(lines, outlineLine{Kind: lineText, Text: summary})
	}

	if len(data.Skills) > 0 {
		section("TECHNICAL SKILLS")
		for _, row := range skillRows(data.Skills) {
			lines = append(lines, outlineLine{Kind: lineText, Label: row.Category, Text: row.Items})
		}
	}

	if len(data.Experience) > 0 {
		section("PROFESSIONAL EXPERIENCE")
		for i, e := range data.Experience {
			if i > 0 {
				lines = append(lines, outlineLine{Kind: lineBreak})
			}
			lines = append(lines, outlineLine{Kind: lineEntry, Text: joinNonEmpty(" | ", e.Title, e.Company, e.Duration)})
			for _, b := range e.Bullets {
				lines = append(lines, outlineLine{Kind: lineBullet, Text: b})
			}
		}
	}

	if len(data.Projects) > 0 {
		section("KEY PROJECTS")
		for i, p := range data.Projects {
			if i > 0 {
				lines = append(lines, outlineLine{Kind: lineBreak})
			}
			lines = append(lines, outlineLine{Kind: lineEntry, Text: p.Name})
			if p.Tech != "" {
				lines = append(lines, outlineLine{Kind: lineText, Label: "Technologies", Text: p.Tech})
			}
			if p.Description != "" {
				lines = append(lines, outlineLine{Kind: lineText, Text: p.Description})
			}
		}
	}

	if len(data.Education) > 0 {
		section("EDUCATION")
		for _, e := range data.Education {
			lines = append(lines, outlineLine{Kind: lineEntry, Text: joinNonEmpty(" | ", e.Degree, e.Institution, e.Year)})
		}
	}

	return lines
}

// plain returns the line as it appears in plain text output
func (l outlineLine) plain() string {
	switch {
	case l.Kind == lineBullet:
		return "- " + l.Text
	case l.Label != "":
		return l.Label + ": " + l.Text
	default:
		return l.Text
	}
}
