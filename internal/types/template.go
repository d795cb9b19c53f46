package types

import (
	"fmt"
	"strings"
)

// TemplateID identifies a visual resume template
type TemplateID string

// Supported templates
const (
	TemplateModern       TemplateID = "modern"
	TemplateProfessional TemplateID = "professional"
	TemplateClassic      TemplateID = "classic"
	TemplateExecutive    TemplateID = "executive"
	TemplateMinimalist   TemplateID = "minimalist"
	TemplateElegant      TemplateID = "elegant"
)

// DefaultTemplate is used when no template is requested
const DefaultTemplate = TemplateModern

// AllTemplates returns every supported template in display order.
func AllTemplates() []TemplateID {
	return []TemplateID{
		TemplateModern,
		TemplateProfessional,
		TemplateClassic,
		TemplateExecutive,
		TemplateMinimalist,
		TemplateElegant,
	}
}

// ParseTemplateID normalizes a template name. Empty input yields the default template.
func ParseTemplateID(s string) (TemplateID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultTemplate, nil
	}
	for _, id := range AllTemplates() {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown template %q", s)
}
