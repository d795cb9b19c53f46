package parsing

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// minExperienceBlock is the trimmed length below which a block is ignored.
const minExperienceBlock = 5

// experienceState tracks which header line of an entry is expected next.
type experienceState int

const (
	expectTitle experienceState = iota
	expectCompany
	expectBullets
)

// ParseExperience extracts employment entries from an experience section.
// A new entry starts at a "Title | Company | Dates" line or at a capitalized
// line after a blank line.
func ParseExperience(section string) []types.Experience {
	entries := []types.Experience{}
	for _, block := range splitBlocks(section, experienceBoundary) {
		if len(strings.TrimSpace(block)) < minExperienceBlock {
			continue
		}
		if entry, ok := parseExperienceBlock(cleanLines(block)); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// experienceBoundary reports whether a new entry starts after the newline at i.
func experienceBoundary(text string, i int) bool {
	rest := text[i+1:]
	if len(rest) >= 2 && isUpper(rest[0]) && isLower(rest[1]) {
		line, _, _ := strings.Cut(rest, "\n")
		if strings.Contains(line, "|") {
			return true
		}
	}
	return startsAfterBlankLine(rest)
}

// parseExperienceBlock reads the title from the first line and the company
// from the second. A block that opens with a bullet has no title and is dropped.
// Duration is only known from the pipe one-liner.
func parseExperienceBlock(lines []string) (types.Experience, bool) {
	entry := types.Experience{Bullets: []string{}}
	state := expectTitle

	for _, line := range lines {
		text, bullet := stripBullet(line)

		switch {
		case state == expectTitle && bullet:
			return types.Experience{}, false
		case state == expectTitle && strings.Contains(line, "|"):
			parts := splitTrim(line, "|")
			entry.Title = parts[0]
			entry.Company = partAt(parts, 1)
			entry.Duration = partAt(parts, 2)
			state = expectBullets
		case state == expectTitle:
			entry.Title = line
			state = expectCompany
		case bullet:
			if text != "" {
				entry.Bullets = append(entry.Bullets, text)
			}
			state = expectBullets
		case state == expectCompany:
			entry.Company = line
			state = expectBullets
		default:
			// Unmarked prose after the header lines is not a bullet.
		}
	}

	if entry.Title == "" {
		return types.Experience{}, false
	}
	return entry, true
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func partAt(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
