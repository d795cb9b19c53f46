package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	emailRe     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe     = regexp.MustCompile(`(?:\+\d{1,3}[\s.\-]?)?(?:\(\d{3}\)|\d{3})[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	githubRe    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_.\-]+`)
	linkedinRe  = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/in/[A-Za-z0-9_%\-]+/?`)
	urlRe       = regexp.MustCompile(`https?://[^\s<>()"']+`)
	nameWordsRe = regexp.MustCompile(`^[\p{Lu}][\p{L}'.\-]*(?:\s+[\p{Lu}][\p{L}'.\-]*){1,3}$`)
)

// ResolveField returns current unless it is blank, in which case candidate wins.
func ResolveField(current, candidate string) string {
	if strings.TrimSpace(current) != "" {
		return current
	}
	return strings.TrimSpace(candidate)
}

// ResolveContact fills every blank field of current from candidate.
func ResolveContact(current, candidate types.Contact) types.Contact {
	return types.Contact{
		FullName:  ResolveField(current.FullName, candidate.FullName),
		Email:     ResolveField(current.Email, candidate.Email),
		Phone:     ResolveField(current.Phone, candidate.Phone),
		Location:  ResolveField(current.Location, candidate.Location),
		GitHub:    ResolveField(current.GitHub, candidate.GitHub),
		LinkedIn:  ResolveField(current.LinkedIn, candidate.LinkedIn),
		Portfolio: ResolveField(current.Portfolio, candidate.Portfolio),
	}
}

// ExtractContact sniffs contact details from free text such as a resume
// header or a pasted profile. Fields that cannot be found are left empty.
func ExtractContact(text string) types.Contact {
	text = normalizeNewlines(text)

	c := types.Contact{
		Email:    emailRe.FindString(text),
		Phone:    strings.TrimSpace(phoneRe.FindString(text)),
		GitHub:   withScheme(githubRe.FindString(text)),
		LinkedIn: withScheme(strings.TrimSuffix(linkedinRe.FindString(text), "/")),
		FullName: guessName(text),
	}

	for _, u := range urlRe.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;")
		lower := strings.ToLower(u)
		if strings.Contains(lower, "github.com") || strings.Contains(lower, "linkedin.com") {
			continue
		}
		c.Portfolio = u
		break
	}
	return c
}

// guessName returns the first short line made only of capitalized words,
// skipping section headers.
func guessName(text string) string {
	for _, line := range cleanLines(text) {
		if len(LocateHeaders(line)) > 0 {
			continue
		}
		if nameWordsRe.MatchString(line) {
			return line
		}
		if strings.ContainsAny(line, "@|:/") {
			continue
		}
		return ""
	}
	return ""
}

func withScheme(u string) string {
	if u == "" || strings.HasPrefix(strings.ToLower(u), "http") {
		return u
	}
	return "https://" + u
}
