// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for summaries and verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s%s │\n", color.New(color.Bold).Sprint(title), pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %s%s │\n", line, pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeData outputs a summary of an assembled resume.
func (p *Printer) PrintResumeData(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	name := data.FullName
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	for _, field := range []struct{ label, value string }{
		{"Email:", data.Email},
		{"Phone:", data.Phone},
		{"Location:", data.Location},
	} {
		if field.value != "" {
			sb.WriteString(fmt.Sprintf("%-9s %s\n", field.label, field.value))
		}
	}
	sb.WriteString("\n")

	if data.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n\n", data.Summary))
	}

	writeList(&sb, fmt.Sprintf("Skills (%d):", len(data.Skills)), data.Skills)

	titles := make([]string, 0, len(data.Experience))
	for _, e := range data.Experience {
		titles = append(titles, joinNonEmpty(" @ ", e.Title, e.Company))
	}
	writeList(&sb, fmt.Sprintf("Experience (%d):", len(data.Experience)), titles)

	names := make([]string, 0, len(data.Projects))
	for _, pr := range data.Projects {
		names = append(names, joinNonEmpty(" | ", pr.Name, pr.Tech))
	}
	writeList(&sb, fmt.Sprintf("Projects (%d):", len(data.Projects)), names)

	degrees := make([]string, 0, len(data.Education))
	for _, ed := range data.Education {
		degrees = append(degrees, joinNonEmpty(", ", ed.Degree, ed.Institution, ed.Year))
	}
	writeList(&sb, fmt.Sprintf("Education (%d):", len(data.Education)), degrees)

	p.printBox("ASSEMBLED RESUME", sb.String())
}

// PrintHeaders outputs the recognized section headers of a resume text.
func (p *Printer) PrintHeaders(headers []parsing.HeaderMatch) {
	var sb strings.Builder
	if len(headers) == 0 {
		sb.WriteString("No recognized section headers\n")
	}
	for _, h := range headers {
		sb.WriteString(fmt.Sprintf("%-24s %6d-%d\n", h.Label, h.Start, h.End))
	}
	p.printBox("LOCATED SECTIONS", sb.String())
}

// PrintHistory outputs saved resume history records, newest first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHistory(records []types.ResumeRecord) {
	if len(records) == 0 {
		fmt.Fprintln(p.out, color.YellowString("No saved resumes"))
		return
	}

	fmt.Fprintln(p.out, color.New(color.Bold, color.Underline).Sprint("Resume History"))
	for _, rec := range records {
		title := rec.JobTitle
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(p.out, "%s  %-30s  %-12s  %s\n",
			color.CyanString(rec.ID.String()),
			truncate(title, 30),
			rec.TemplateID,
			rec.CreatedAt.Local().Format(time.DateTime),
		)
	}
}

// PrintSaved reports a written document or stored record.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSaved(what, location string) {
	fmt.Fprintf(p.out, "%s %s: %s\n", color.GreenString("✓"), what, location)
}

// PrintWarning reports a non-fatal problem.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarning(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", color.YellowString("⚠"), fmt.Sprintf(format, args...))
}

// PrintFieldErrors lists schema validation failures.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFieldErrors(fields []string, messages []string) {
	fmt.Fprintf(p.out, "%s validation failed (%d errors)\n", color.RedString("✗"), len(fields))
	for i := range fields {
		fmt.Fprintf(p.out, "  %d. %s: %s\n", i+1, fields[i], messages[i])
	}
}

// PrintGenerated outputs generated text under a heading.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintGenerated(title, content string) {
	fmt.Fprintln(p.out, color.New(color.Bold).Sprint(title))
	fmt.Fprintln(p.out, strings.Repeat("─", boxWidth))
	fmt.Fprintln(p.out, content)
}

func writeList(sb *strings.Builder, heading string, items []string) {
	sb.WriteString(heading + "\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func pad(s string, width int) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
