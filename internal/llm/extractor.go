// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "Contact", "JobKeywords")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// ContactSchema returns the extraction schema for contact details in pasted
// profile text (LinkedIn "About" pages, GitHub READMEs, old resumes).
func ContactSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Contact",
		Description: `You are an expert resume parser. Your task is to extract the candidate's contact details from the text.
Leave a field empty when the text does not state it. Never guess an email address or phone number.`,
		Fields: []SchemaField{
			{Name: "fullName", Type: "\"string\"", Description: "Candidate's full name", Required: true},
			{Name: "email", Type: "\"string\"", Description: "Email address", Required: false},
			{Name: "phone", Type: "\"string\"", Description: "Phone number as written", Required: false},
			{Name: "location", Type: "\"string\"", Description: "City, region or country", Required: false},
			{Name: "github", Type: "\"string\"", Description: "GitHub profile URL", Required: false},
			{Name: "linkedin", Type: "\"string\"", Description: "LinkedIn profile URL", Required: false},
			{Name: "portfolio", Type: "\"string\"", Description: "Personal website or portfolio URL", Required: false},
		},
	}
}

// KeywordSchema returns the extraction schema for ATS keywords in a job description.
func KeywordSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JobKeywords",
		Description: `You are an expert technical recruiter. COPY TEXT VERBATIM - do not paraphrase.
Your task is to list the skills, tools and qualifications an applicant tracking system would match for this job.
EXCLUDE: Benefits, EEO statements, legal disclaimers, generic "About Company" boilerplate.`,
		Fields: []SchemaField{
			{
				Name:        "keywords",
				Type:        "[\"string\"]",
				Description: "Technologies, tools and hard skills named in the posting",
				Required:    true,
			},
		},
	}
}
