package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a resume or cover letter with Gemini",
	Long: `Prompt the completion service with the job details and the fallback form fields.
Generated resumes are printed in the plain-text layout the section parser reads, and can be
saved to the resume history with --save.`,
	RunE: runGenerate,
}

var (
	generateInput       inputFlags
	generateKind        string
	generateJobTitle    string
	generateJobFile     string
	generateKeywords    string
	generateCompany     string
	generateBackground  string
	generateTemplate    string
	generateOutput      string
	generateSave        bool
	generateAPIKey      string
	generateDatabaseURL string
	generateUserID      string
)

func init() {
	generateInput.register(generateCmd)
	generateCmd.Flags().StringVarP(&generateKind, "kind", "k", string(types.GenerateResume), "What to write: resume or cover_letter")
	generateCmd.Flags().StringVar(&generateJobTitle, "job-title", "", "Target job title (required)")
	generateCmd.Flags().StringVar(&generateJobFile, "job", "", "Path to job description text")
	generateCmd.Flags().StringVar(&generateKeywords, "keywords", "", "Comma separated job keywords")
	generateCmd.Flags().StringVar(&generateCompany, "company", "", "Company name")
	generateCmd.Flags().StringVar(&generateBackground, "background", "", "Path to background text for cover letters")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Template id stored with a saved resume")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Path to output text file (default: print)")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Save a generated resume to history")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	generateCmd.Flags().StringVar(&generateDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	generateCmd.Flags().StringVar(&generateUserID, "user-id", "", "User UUID that owns the saved resume")
	_ = generateCmd.MarkFlagRequired("job-title")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	flags := generateInput.config()
	flags.Template = generateTemplate
	flags.APIKey = generateAPIKey
	flags.DatabaseURL = generateDatabaseURL
	flags.UserID = generateUserID

	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	if settings.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	fb, err := readFallback(settings.Fallback, settings.Contact())
	if err != nil {
		return err
	}
	req := types.GenerateRequest{
		Kind:        types.GenerateKind(generateKind),
		JobTitle:    generateJobTitle,
		JobKeywords: parsing.SplitKeywords(generateKeywords),
		Company:     generateCompany,
		Fallback:    fb,
		Template:    settings.Template,
		Save:        generateSave,
	}
	if req.JobDescription, err = readOptionalFile(generateJobFile); err != nil {
		return err
	}
	if req.Background, err = readOptionalFile(generateBackground); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid generate request: %w", err)
	}

	ctx := context.Background()
	llmConfig := llm.DefaultConfig()
	if settings.Temperature > 0 {
		llmConfig = llmConfig.WithTemperature(settings.Temperature)
	}
	client, err := llm.NewClient(ctx, llmConfig, settings.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	generator := generation.NewGenerator(client, settings.Verbose)
	result, err := generator.Generate(ctx, &req)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if result.LooksLikeResume {
		printer.PrintWarning("the cover letter reads like a resume; consider regenerating")
	}
	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, []byte(result.Content+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		printer.PrintSaved("Generated "+strings.ReplaceAll(generateKind, "_", " "), generateOutput)
	} else {
		printer.PrintGenerated(req.JobTitle, result.Content)
	}

	if !req.Save || req.Kind != types.GenerateResume {
		return nil
	}
	return saveGenerated(ctx, settings, generator, &req, result.Content, printer)
}

// saveGenerated stores a generated resume, extracting keywords from the job
// description when none were given.
func saveGenerated(ctx context.Context, s config.Config, generator *generation.Generator, req *types.GenerateRequest, content string, printer *observability.Printer) error {
	userID, err := resolveUserID(s)
	if err != nil {
		return err
	}
	store, err := openHistory(s)
	if err != nil {
		return err
	}
	defer store.Close()

	keywords := req.JobKeywords
	if len(keywords) == 0 && req.JobDescription != "" {
		if keywords, err = generator.ExtractKeywords(ctx, req.JobDescription); err != nil {
			log.Printf("Warning: keyword extraction failed, saving without keywords: %v", err)
		}
	}

	rec, err := newHistoryRecord(userID, &types.SaveResumeRequest{
		JobTitle:    req.JobTitle,
		JobKeywords: keywords,
		ResumeText:  content,
		Fallback:    req.Fallback,
		Template:    req.Template,
	})
	if err != nil {
		return err
	}
	if err := store.Create(ctx, rec); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	printer.PrintSaved("Saved to history", rec.ID.String())
	return nil
}

// newHistoryRecord converts a save request into a record owned by userID.
func newHistoryRecord(userID uuid.UUID, req *types.SaveResumeRequest) (*types.ResumeRecord, error) {
	template, err := types.ParseTemplateID(req.Template)
	if err != nil {
		return nil, err
	}
	rec := &types.ResumeRecord{
		UserID:      userID,
		JobTitle:    req.JobTitle,
		JobKeywords: parsing.NormalizeKeywords(req.JobKeywords),
		ResumeText:  req.ResumeText,
		TemplateID:  template,
	}
	parsing.RecordSections(rec, req.Fallback)
	return rec, nil
}

func readOptionalFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
