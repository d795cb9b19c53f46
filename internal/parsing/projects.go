package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// minProjectBlock is the trimmed length a block must exceed to be parsed.
const minProjectBlock = 10

var (
	numberedItemRe = regexp.MustCompile(`^\d+\.\s`)
	numberPrefixRe = regexp.MustCompile(`^\d+\.\s*`)
)

// ParseProjects extracts projects from a projects section.
// Blocks start at a numbered item ("1. ") or at a capitalized line after a blank line.
func ParseProjects(section string) []types.Project {
	projects := []types.Project{}
	for _, block := range splitBlocks(section, projectBoundary) {
		if len(strings.TrimSpace(block)) <= minProjectBlock {
			continue
		}
		if p, ok := parseProjectBlock(block); ok {
			projects = append(projects, p)
		}
	}
	return projects
}

// projectBoundary reports whether a new project starts after the newline at i.
func projectBoundary(text string, i int) bool {
	rest := text[i+1:]
	if numberedItemRe.MatchString(rest) {
		return true
	}
	return startsAfterBlankLine(rest)
}

func parseProjectBlock(block string) (types.Project, bool) {
	lines := cleanLines(block)
	if len(lines) == 0 {
		return types.Project{}, false
	}

	title := lines[0]
	name := numberPrefixRe.ReplaceAllString(title, "")
	name, _, _ = strings.Cut(name, "|")
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Project{}, false
	}

	techLine, hasTech := findTechLine(lines)
	var tech string
	if hasTech {
		_, tech, _ = strings.Cut(techLine, ":")
		tech = strings.TrimSpace(tech)
	}

	var descLines, bullets []string
	for _, line := range lines {
		if text, ok := stripBullet(line); ok {
			bullets = append(bullets, text)
			continue
		}
		if line == title || (hasTech && line == techLine) {
			continue
		}
		// Lines opening with "tech" are treated as tech metadata.
		if strings.HasPrefix(strings.ToLower(line), "tech") {
			continue
		}
		descLines = append(descLines, line)
	}

	description := strings.Join(append(descLines, bullets...), " ")
	if description == "" && len(lines) > 1 {
		description = lines[1]
	}

	return types.Project{Name: name, Description: description, Tech: tech}, true
}

func findTechLine(lines []string) (string, bool) {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "tech stack:") ||
			strings.Contains(lower, "technologies:") ||
			strings.HasPrefix(lower, "tech:") {
			return line, true
		}
	}
	return "", false
}

// splitBlocks cuts text at every newline for which boundary returns true.
// The newline itself is dropped; a trailing blank line stays with the next block.
func splitBlocks(text string, boundary func(text string, i int) bool) []string {
	var blocks []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' || !boundary(text, i) {
			continue
		}
		blocks = append(blocks, text[start:i])
		start = i + 1
	}
	return append(blocks, text[start:])
}

// startsAfterBlankLine reports whether rest is a blank line followed by a line
// starting with an upper-case ASCII letter.
func startsAfterBlankLine(rest string) bool {
	return len(rest) >= 2 && rest[0] == '\n' && isUpper(rest[1])
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
