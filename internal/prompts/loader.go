// Package prompts holds the LLM prompt templates for resume and cover letter
// generation. Templates live in generation.json and are embedded at compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed generation.json
var generationJSON []byte

// Key names a template in generation.json.
type Key string

const (
	ResumeSystem      Key = "resume-system"
	ResumeUser        Key = "resume-user"
	CoverLetterSystem Key = "cover-letter-system"
	CoverLetterUser   Key = "cover-letter-user"
)

// Keys returns every template the generator renders.
func Keys() []Key {
	return []Key{ResumeSystem, ResumeUser, CoverLetterSystem, CoverLetterUser}
}

var placeholderRe = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// load parses generation.json once and checks that every Key is present.
var load = sync.OnceValues(func() (map[Key]string, error) {
	return parseTemplates(generationJSON)
})

func parseTemplates(data []byte) (map[Key]string, error) {
	var templates map[Key]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse generation prompts: %w", err)
	}
	for _, key := range Keys() {
		if strings.TrimSpace(templates[key]) == "" {
			return nil, fmt.Errorf("generation prompts: template %q is missing", key)
		}
	}
	return templates, nil
}

// Get returns the raw template for key.
func Get(key Key) (string, error) {
	templates, err := load()
	if err != nil {
		return "", err
	}
	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", key)
	}
	return tmpl, nil
}

// Placeholders lists the {{.Name}} values key expects, sorted and unique.
func Placeholders(key Key) ([]string, error) {
	tmpl, err := Get(key)
	if err != nil {
		return nil, err
	}
	return placeholders(tmpl), nil
}

func placeholders(tmpl string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Render fills the {{.Name}} placeholders of key from values. Every
// placeholder must have an entry in values, though the entry may be empty.
// Values are inserted once and are not themselves expanded.
func Render(key Key, values map[string]string) (string, error) {
	tmpl, err := Get(key)
	if err != nil {
		return "", err
	}
	return fill(key, tmpl, values)
}

func fill(key Key, tmpl string, values map[string]string) (string, error) {
	var missing []string
	for _, name := range placeholders(tmpl) {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %q: no value for %s", key, strings.Join(missing, ", "))
	}

	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		return values[placeholderRe.FindStringSubmatch(m)[1]]
	}), nil
}
