// Package generation drafts resumes and cover letters with an LLM from the
// resume builder form fields.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	placeholderName         = "Your Name"
	defaultRequirements     = "Modern tech stack and fast learning."
	emptyProjectsSuggestion = "PROJECTS EMPTY - SUGGEST 3."
)

// Result is a generated document body.
type Result struct {
	Kind    types.GenerateKind `json:"kind"`
	Content string             `json:"content"`
	// Sanitized reports whether resume text was supplied as background.
	Sanitized bool `json:"sanitized"`
	// LooksLikeResume flags a cover letter that came back in resume form.
	LooksLikeResume bool `json:"looks_like_resume"`
}

// Generator prompts an llm.Client for resume and cover letter drafts.
type Generator struct {
	client  llm.Client
	verbose bool
}

// NewGenerator returns a Generator backed by client.
func NewGenerator(client llm.Client, verbose bool) *Generator {
	return &Generator{client: client, verbose: verbose}
}

// Generate dispatches on req.Kind.
func (g *Generator) Generate(ctx context.Context, req *types.GenerateRequest) (*Result, error) {
	if req == nil {
		return nil, &ValidationError{Message: "request is required"}
	}
	switch req.Kind {
	case types.GenerateResume:
		content, err := g.Resume(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: req.Kind, Content: content}, nil
	case types.GenerateCoverLetter:
		content, err := g.CoverLetter(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{
			Kind:            req.Kind,
			Content:         content,
			Sanitized:       SanitizeBackground(req.Background) != "",
			LooksLikeResume: LooksLikeResume(content),
		}, nil
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("invalid generation kind %q", req.Kind)}
	}
}

// Resume drafts an ATS resume in the plain-text layout the section parser reads.
func (g *Generator) Resume(ctx context.Context, req *types.GenerateRequest) (string, error) {
	if err := checkRequest(req); err != nil {
		return "", err
	}

	system, err := prompts.Get(prompts.ResumeSystem)
	if err != nil {
		return "", fmt.Errorf("failed to load resume prompt: %w", err)
	}

	fb := req.Fallback
	fullName := fb.Contact.FullName
	if strings.TrimSpace(fullName) == "" {
		fullName = placeholderName
	}
	projects := parsing.ParseProjectBlocks(fb.Projects)
	projectsValue := toJSON(projects)
	if len(projects) == 0 {
		projectsValue = emptyProjectsSuggestion
	}

	prompt, err := prompts.Render(prompts.ResumeUser, map[string]string{
		"FullName":       fullName,
		"JobTitle":       req.JobTitle,
		"JobKeywords":    toJSON(parsing.NormalizeKeywords(req.JobKeywords)),
		"JobDescription": req.JobDescription,
		"Skills":         toJSON(parsing.ParseSkillList(fb.Skills)),
		"Projects":       projectsValue,
		"Experience":     toJSON(parsing.ParseExperienceBlocks(fb.Experience)),
		"Education":      toJSON(parsing.ParseEducationLines(fb.Education)),
		"Background":     SanitizeBackground(req.Background),
	})
	if err != nil {
		return "", fmt.Errorf("failed to build resume prompt: %w", err)
	}

	return g.complete(ctx, "resume", llm.Message{
		System:      system,
		Prompt:      prompt,
		Temperature: llm.DefaultTemperature,
	})
}

// CoverLetter drafts a four-paragraph cover letter body.
func (g *Generator) CoverLetter(ctx context.Context, req *types.GenerateRequest) (string, error) {
	if err := checkRequest(req); err != nil {
		return "", err
	}

	company := strings.TrimSpace(req.Company)
	systemCompany, userCompany := company, company
	if company == "" {
		systemCompany, userCompany = "[Company]", "the company"
	}
	requirements := strings.TrimSpace(req.JobDescription)
	if requirements == "" {
		requirements = defaultRequirements
	}
	background := SanitizeBackground(req.Background)
	if background == "" {
		background = fmt.Sprintf("Skills: %s Projects: %s",
			toJSON(parsing.ParseSkillList(req.Fallback.Skills)),
			toJSON(parsing.ParseProjectBlocks(req.Fallback.Projects)))
	}

	system, err := prompts.Render(prompts.CoverLetterSystem, map[string]string{"Company": systemCompany})
	if err != nil {
		return "", fmt.Errorf("failed to build cover letter prompt: %w", err)
	}
	prompt, err := prompts.Render(prompts.CoverLetterUser, map[string]string{
		"JobTitle":     req.JobTitle,
		"Company":      userCompany,
		"Requirements": requirements,
		"Background":   background,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build cover letter prompt: %w", err)
	}

	return g.complete(ctx, "cover letter", llm.Message{
		System:      system,
		Prompt:      prompt,
		Temperature: llm.CoverLetterTemperature,
	})
}

// ExtractContact asks the model for contact details found in profile text.
func (g *Generator) ExtractContact(ctx context.Context, text string) (types.Contact, error) {
	var contact types.Contact
	if strings.TrimSpace(text) == "" {
		return contact, &ValidationError{Message: "text is required"}
	}

	prompt := llm.BuildExtractionPrompt(llm.ContactSchema(), text)
	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return contact, &APICallError{Message: "failed to extract contact", Cause: err}
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &contact); err != nil {
		return contact, &APICallError{Message: "failed to parse contact response", Cause: err}
	}
	return contact, nil
}

// ExtractKeywords asks the model for ATS keywords in a job description.
func (g *Generator) ExtractKeywords(ctx context.Context, jobDescription string) ([]string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return []string{}, nil
	}

	prompt := llm.BuildExtractionPrompt(llm.KeywordSchema(), jobDescription)
	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "failed to extract keywords", Cause: err}
	}
	var out struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &out); err != nil {
		return nil, &APICallError{Message: "failed to parse keywords response", Cause: err}
	}
	return parsing.NormalizeKeywords(out.Keywords), nil
}

func (g *Generator) complete(ctx context.Context, what string, msg llm.Message) (string, error) {
	if g.verbose {
		log.Printf("[VERBOSE] Generating %s (%d prompt chars)", what, len(msg.Prompt))
	}
	content, err := g.client.GenerateContent(ctx, msg, llm.TierStandard)
	if err != nil {
		return "", &APICallError{Message: fmt.Sprintf("failed to generate %s", what), Cause: err}
	}
	content = CleanContent(content)
	if content == "" {
		return "", &APICallError{Message: "no response from model"}
	}
	return content, nil
}

func checkRequest(req *types.GenerateRequest) error {
	if req == nil {
		return &ValidationError{Message: "request is required"}
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		return &ValidationError{Message: "job title is required"}
	}
	return nil
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
