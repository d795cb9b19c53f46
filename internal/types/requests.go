package types

import (
	"github.com/go-playground/validator/v10"
)

// AssembleRequest carries raw resume text plus fallback form fields.
type AssembleRequest struct {
	ResumeText string   `json:"resume_text" validate:"max=200000"`
	Fallback   Fallback `json:"fallback"`
}

// RenderRequest asks for a document rendered from raw text and fallback fields.
type RenderRequest struct {
	ResumeText string   `json:"resume_text" validate:"max=200000"`
	Fallback   Fallback `json:"fallback"`
	Template   string   `json:"template,omitempty" validate:"omitempty,oneof=modern professional classic executive minimalist elegant"`
	Format     string   `json:"format,omitempty" validate:"omitempty,oneof=html txt docx pdf"`
}

// CoverLetterRequest renders a cover letter around the candidate's resume data.
type CoverLetterRequest struct {
	ResumeText string   `json:"resume_text" validate:"max=200000"`
	Fallback   Fallback `json:"fallback"`
	LetterText string   `json:"letter_text" validate:"required,max=50000"`
	Company    string   `json:"company,omitempty"`
	Date       string   `json:"date,omitempty"`
	Format     string   `json:"format,omitempty" validate:"omitempty,oneof=html txt pdf"`
}

// GenerateKind selects what the completion service should write.
type GenerateKind string

// Generation kinds
const (
	GenerateResume      GenerateKind = "resume"
	GenerateCoverLetter GenerateKind = "cover_letter"
)

// GenerateRequest holds the form inputs used to prompt the completion service.
type GenerateRequest struct {
	Kind           GenerateKind `json:"kind" validate:"required,oneof=resume cover_letter"`
	JobTitle       string       `json:"job_title" validate:"required,max=200"`
	JobDescription string       `json:"job_description,omitempty" validate:"max=50000"`
	JobKeywords    []string     `json:"job_keywords,omitempty" validate:"max=100,dive,max=100"`
	Company        string       `json:"company,omitempty" validate:"max=200"`
	Background     string       `json:"background,omitempty" validate:"max=50000"`
	Fallback       Fallback     `json:"fallback"`
	Template       string       `json:"template,omitempty" validate:"omitempty,oneof=modern professional classic executive minimalist elegant"`
	Save           bool         `json:"save,omitempty"`
}

// SaveResumeRequest creates or replaces a resume history record.
type SaveResumeRequest struct {
	JobTitle    string   `json:"job_title,omitempty" validate:"max=200"`
	JobKeywords []string `json:"job_keywords,omitempty" validate:"max=100,dive,max=100"`
	ResumeText  string   `json:"resume_text" validate:"required,max=200000"`
	Fallback    Fallback `json:"fallback"`
	Template    string   `json:"template,omitempty" validate:"omitempty,oneof=modern professional classic executive minimalist elegant"`
}

// AutofillRequest fills empty contact fields from pasted profile text.
type AutofillRequest struct {
	Current Contact `json:"current"`
	Text    string  `json:"text" validate:"required,max=200000"`
}

var validate = validator.New()

// Validate validates the AssembleRequest using the validator.
func (r *AssembleRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CoverLetterRequest using the validator.
func (r *CoverLetterRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SaveResumeRequest using the validator.
func (r *SaveResumeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AutofillRequest using the validator.
func (r *AutofillRequest) Validate() error {
	return validate.Struct(r)
}
