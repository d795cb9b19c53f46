package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume as HTML, text, DOCX or PDF",
	Long: `Assemble a resume (or load ResumeData JSON) and render it with one or all templates.
PDF output prints the HTML template with headless Chrome. With --upload the documents are
also stored in the configured S3 bucket.`,
	RunE: runRender,
}

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Render cover letter text with the candidate's contact header",
	RunE:  runCoverLetter,
}

var (
	renderInput        inputFlags
	renderTemplate     string
	renderFormat       string
	renderOutDir       string
	renderAllTemplates bool
	renderUpload       bool
	renderPDFTimeout   int

	letterInput   inputFlags
	letterFile    string
	letterCompany string
	letterDate    string
	letterFormat  string
	letterOutDir  string
)

func init() {
	renderInput.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (modern, professional, classic, executive, minimalist, elegant)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "Output format: html, txt, docx or pdf (default html)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "o", "", "Output directory (default: current directory)")
	renderCmd.Flags().BoolVar(&renderAllTemplates, "all-templates", false, "Render every template")
	renderCmd.Flags().BoolVar(&renderUpload, "upload", false, "Upload rendered documents to S3 (requires S3_BUCKET)")
	renderCmd.Flags().IntVar(&renderPDFTimeout, "pdf-timeout", 0, "Headless Chrome print timeout in seconds")
	rootCmd.AddCommand(renderCmd)

	letterInput.register(coverLetterCmd)
	coverLetterCmd.Flags().StringVar(&letterFile, "letter", "", "Path to cover letter text (required)")
	coverLetterCmd.Flags().StringVar(&letterCompany, "company", "", "Recipient company (default: most recent employer)")
	coverLetterCmd.Flags().StringVar(&letterDate, "date", "", "Letter date (default: today)")
	coverLetterCmd.Flags().StringVar(&letterFormat, "format", "", "Output format: html, txt or pdf (default html)")
	coverLetterCmd.Flags().StringVarP(&letterOutDir, "out-dir", "o", "", "Output directory (default: current directory)")
	_ = coverLetterCmd.MarkFlagRequired("letter")
	rootCmd.AddCommand(coverLetterCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	flags := renderInput.config()
	flags.Template = renderTemplate
	flags.Format = renderFormat
	flags.OutputDir = renderOutDir
	flags.PDFTimeoutSeconds = renderPDFTimeout

	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	ctx := context.Background()
	printer := observability.NewPrinter(cmd.OutOrStdout())

	format, err := rendering.ParseFormat(settings.Format)
	if err != nil {
		return err
	}
	template, err := types.ParseTemplateID(settings.Template)
	if err != nil {
		return err
	}

	fb, err := readFallback(settings.Fallback, settings.Contact())
	if err != nil {
		return err
	}
	data, err := loadResumeData(ctx, settings, fb)
	if err != nil {
		return err
	}

	renderer := newRenderer(settings)
	var docs []*rendering.Document
	if renderAllTemplates && (format == rendering.FormatHTML || format == rendering.FormatPDF) {
		docs, err = renderer.ExportAll(ctx, data, format)
	} else {
		if renderAllTemplates {
			printer.PrintWarning("%s output does not vary by template; rendering once", format)
		}
		var doc *rendering.Document
		doc, err = renderer.Render(ctx, data, format, template)
		docs = []*rendering.Document{doc}
	}
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	for _, doc := range docs {
		path, err := writeDocument(settings.OutputDir, doc.FileName(data.FullName), doc.Data)
		if err != nil {
			return err
		}
		printer.PrintSaved("Rendered", path)
	}

	if renderUpload {
		userID, err := resolveUserID(settings)
		if err != nil {
			return err
		}
		return uploadDocuments(ctx, printer, docs, userID, uuid.New())
	}
	return nil
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	flags := letterInput.config()
	flags.Format = letterFormat
	flags.OutputDir = letterOutDir

	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	ctx := context.Background()

	format, err := rendering.ParseFormat(settings.Format)
	if err != nil {
		return err
	}
	if format == rendering.FormatDOCX {
		return fmt.Errorf("cover letters support html, txt and pdf")
	}

	letter, err := os.ReadFile(letterFile)
	if err != nil {
		return fmt.Errorf("failed to read cover letter: %w", err)
	}

	fb, err := readFallback(settings.Fallback, settings.Contact())
	if err != nil {
		return err
	}
	data, err := loadResumeData(ctx, settings, fb)
	if err != nil {
		return err
	}

	doc, err := newRenderer(settings).RenderCoverLetter(ctx, data, string(letter), letterCompany, letterDate, format)
	if err != nil {
		return fmt.Errorf("failed to render cover letter: %w", err)
	}

	name := "cover_letter"
	if data.FullName != "" {
		name = data.FullName + " cover letter"
	}
	path, err := writeDocument(settings.OutputDir, doc.FileName(name), doc.Data)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSaved("Cover letter", path)
	return nil
}

func newRenderer(s config.Config) *rendering.Renderer {
	timeout := time.Duration(s.PDFTimeoutSeconds) * time.Second
	return rendering.NewRenderer(rendering.NewChromePrinter(timeout, s.Verbose))
}

// writeDocument writes data to dir/name and returns the path.
func writeDocument(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// uploadDocuments stores docs in the bucket configured by S3_* variables.
func uploadDocuments(ctx context.Context, printer *observability.Printer, docs []*rendering.Document, userID, recordID uuid.UUID) error {
	cfg := storage.ConfigFromEnv()
	if !cfg.Enabled() {
		return fmt.Errorf("S3_BUCKET is required for --upload")
	}
	store, err := storage.New(ctx, cfg)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		template := doc.Template
		if template == "" {
			template = types.DefaultTemplate
		}
		key := store.Key(userID, recordID, template, string(doc.Format))
		if err := store.Put(ctx, key, doc.ContentType(), doc.Data); err != nil {
			return err
		}
		printer.PrintSaved("Uploaded", store.URI(key))
	}
	return nil
}
