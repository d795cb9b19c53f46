package parsing

import "strings"

// ParseSkills turns a skills section into entries, one per non-empty line.
// A "Category: items" line is kept as a single composite entry.
// Entries are not de-duplicated.
func ParseSkills(section string) []string {
	skills := []string{}
	for _, line := range cleanLines(section) {
		category, rest, found := strings.Cut(line, ":")
		if !found {
			skills = append(skills, line)
			continue
		}
		category = strings.TrimSpace(category)
		rest = strings.TrimSpace(rest)
		if category == "" || rest == "" {
			continue
		}
		skills = append(skills, category+": "+rest)
	}
	return skills
}
