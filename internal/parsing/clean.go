// Package parsing recovers structured resume data from loosely formatted resume text.
// Everything in this package is pure string processing and safe for concurrent use.
package parsing

import (
	"regexp"
	"strings"
)

var (
	badgeLinkRe = regexp.MustCompile(`\[!\[.*?\]\(.*?\)\]\(.*?\)`)
	imageRe     = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	linkRe      = regexp.MustCompile(`\[([^\]]+)\]\(.*?\)`)
	headingRe   = regexp.MustCompile(`(?m)^[ \t]*#+[ \t]*`)
)

// Clean strips markdown decoration from text while keeping readable content
// and link labels. The result is a fixed point: Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	for {
		next := cleanOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

// cleanOnce applies each substitution a single time, in order.
// Every rule only removes characters, so repeated passes terminate.
func cleanOnce(text string) string {
	text = badgeLinkRe.ReplaceAllString(text, "")
	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, "`", "")
	return strings.TrimSpace(text)
}

// cleanLines splits text into cleaned, non-empty lines.
func cleanLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if cleaned := Clean(line); cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	return lines
}

// stripBullet reports whether line is a "-" or "•" bullet and returns its text.
func stripBullet(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"-", "•"} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, marker)), true
		}
	}
	return trimmed, false
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
