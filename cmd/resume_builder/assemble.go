package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Parse resume text into structured ResumeData JSON",
	Long: `Locate the section headers in a resume (text, markdown, PDF, DOCX, HTML or a URL), parse each
section and fill missing sections from the fallback form fields. The result validates against the
resume_data schema.`,
	RunE: runAssemble,
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Print the section headers found in a resume",
	RunE:  runSections,
}

// inputFlags are shared by every command that reads a resume
type inputFlags struct {
	in         string
	url        string
	fallback   string
	name       string
	email      string
	phone      string
	location   string
	useBrowser bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.in, "in", "i", "", "Path to resume file (.txt, .md, .pdf, .docx, .html or ResumeData .json)")
	cmd.Flags().StringVar(&f.url, "url", "", "URL of an online resume or profile (mutually exclusive with --in)")
	cmd.Flags().StringVarP(&f.fallback, "fallback", "f", "", "Path to fallback form fields JSON")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Candidate name")
	cmd.Flags().StringVar(&f.email, "email", "", "Candidate email")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Candidate phone")
	cmd.Flags().StringVar(&f.location, "location", "", "Candidate location")
	cmd.Flags().BoolVar(&f.useBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
}

func (f *inputFlags) config() config.Config {
	return config.Config{
		Input:      f.in,
		InputURL:   f.url,
		Fallback:   f.fallback,
		Name:       f.name,
		Email:      f.email,
		Phone:      f.phone,
		Location:   f.location,
		UseBrowser: f.useBrowser,
	}
}

var (
	assembleInput  inputFlags
	assembleOutput string

	sectionsInput inputFlags
)

func init() {
	assembleInput.register(assembleCmd)
	assembleCmd.Flags().StringVarP(&assembleOutput, "out", "o", "", "Path to output JSON file (default: stdout)")
	rootCmd.AddCommand(assembleCmd)

	sectionsCmd.Flags().StringVarP(&sectionsInput.in, "in", "i", "", "Path to resume file")
	sectionsCmd.Flags().StringVar(&sectionsInput.url, "url", "", "URL of an online resume or profile")
	rootCmd.AddCommand(sectionsCmd)
}

func runAssemble(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(assembleInput.config())
	if err != nil {
		return err
	}
	ctx := context.Background()

	fb, err := readFallback(settings.Fallback, settings.Contact())
	if err != nil {
		return err
	}
	data, err := loadResumeData(ctx, settings, fb)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if err := schemas.ValidateResumeData(data); err != nil {
		return reportValidation(printer, fmt.Errorf("assembled resume is invalid: %w", err))
	}

	if err := writeJSON(cmd.OutOrStdout(), assembleOutput, data); err != nil {
		return err
	}
	if settings.Verbose {
		printer.PrintResumeData(data)
	}
	if assembleOutput != "" {
		printer.PrintSaved("Resume data", assembleOutput)
	}
	return nil
}

func runSections(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(sectionsInput.config())
	if err != nil {
		return err
	}
	if settings.Input == "" && settings.InputURL == "" {
		return fmt.Errorf("must provide --in or --url")
	}

	text, _, err := loadResumeText(context.Background(), settings)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintHeaders(parsing.LocateHeaders(text))
	return nil
}
