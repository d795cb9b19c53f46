package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	yearRe          = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	// yearRangeRe matches "2016 - 2020" or "2019 – Present" so the whole
	// range can be removed once its first year is taken.
	yearRangeRe     = regexp.MustCompile(`\b(?:19|20)\d{2}\s*[-–—]\s*(?:(?:19|20)\d{2}|[Pp]resent)\b`)
	leadingDigitsRe = regexp.MustCompile(`^\d{4}`)
	anyDigitsRe     = regexp.MustCompile(`\d{4}`)
	emptyParensRe   = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
	multiSpaceRe    = regexp.MustCompile(`\s{2,}`)
)

// ParseEducation extracts education entries from an education section,
// walking cleaned lines with a cursor. Each step consumes one to three lines.
func ParseEducation(section string) []types.Education {
	lines := cleanLines(section)
	entries := []types.Education{}

	for i := 0; i < len(lines); {
		entry, consumed := parseEducationAt(lines, i)
		if entry.Degree != "" {
			entries = append(entries, entry)
		}
		i += consumed
	}
	return entries
}

// parseEducationAt resolves one entry starting at lines[i] and reports how
// many lines it consumed (always at least one).
func parseEducationAt(lines []string, i int) (types.Education, int) {
	line := lines[i]
	next := lineAt(lines, i+1)

	if strings.Contains(line, "|") {
		return pipeEducation(line), 1
	}

	year := yearRe.FindString(line)
	nextYear := yearRe.FindString(next)

	switch {
	case year != "":
		entry := types.Education{Degree: removeYear(line, year), Year: year}
		if entry.Degree != "" && next != "" && nextYear == "" {
			entry.Institution = next
			return entry, 2
		}
		return entry, 1

	case nextYear != "":
		return types.Education{
			Degree:      line,
			Institution: removeYear(next, nextYear),
			Year:        nextYear,
		}, 2

	default:
		entry := types.Education{Degree: line}
		if next == "" {
			return entry, 1
		}
		if !leadingDigitsRe.MatchString(next) {
			entry.Institution = next
			if after := lineAt(lines, i+2); !strings.Contains(after, "|") {
				entry.Year = anyDigitsRe.FindString(after)
			}
			if entry.Year != "" {
				return entry, 3
			}
			return entry, 2
		}
		entry.Year = leadingDigitsRe.FindString(next)
		return entry, 2
	}
}

// pipeEducation parses "Degree | Institution | Year". With only two fields
// the year is lifted out of the institution when present.
func pipeEducation(line string) types.Education {
	parts := splitTrim(line, "|")
	entry := types.Education{
		Degree:      parts[0],
		Institution: partAt(parts, 1),
		Year:        partAt(parts, 2),
	}
	if entry.Year == "" {
		if year := yearRe.FindString(entry.Institution); year != "" {
			entry.Year = year
			entry.Institution = removeYear(entry.Institution, year)
		}
	}
	return entry
}

// removeYear deletes the first occurrence of year from s, along with the
// rest of a date range it opens, and tidies the punctuation and pipes left behind.
func removeYear(s, year string) string {
	if loc := yearRangeRe.FindStringIndex(s); loc != nil && strings.HasPrefix(s[loc[0]:], year) {
		s = s[:loc[0]] + s[loc[1]:]
	} else {
		s = strings.Replace(s, year, "", 1)
	}
	s = strings.ReplaceAll(s, "|", " ")
	s = emptyParensRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.Trim(s, " \t,;-–—|")
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
