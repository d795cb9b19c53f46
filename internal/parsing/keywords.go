package parsing

import (
	"strings"
)

// keywordAliases maps common spellings of technologies to a canonical name
var keywordAliases = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
}

// NormalizeKeyword maps a job keyword to its canonical spelling. Unknown
// keywords are trimmed and otherwise returned unchanged.
func NormalizeKeyword(keyword string) string {
	normalized := strings.Join(strings.Fields(keyword), " ")
	if canonical, ok := keywordAliases[strings.ToLower(normalized)]; ok {
		return canonical
	}
	return normalized
}

// NormalizeKeywords canonicalizes job keywords and drops case-insensitive
// duplicates, keeping first-seen order. Skills are never passed through here.
func NormalizeKeywords(keywords []string) []string {
	result := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		k = NormalizeKeyword(k)
		key := strings.ToLower(k)
		if k == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, k)
	}
	return result
}

// SplitKeywords parses a comma or newline separated keyword list.
func SplitKeywords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' || r == ';' })
	return NormalizeKeywords(fields)
}
