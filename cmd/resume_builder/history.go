package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved resumes",
	Long: `Save, list, show, export and delete resume history records. Records are kept in a local
SQLite file unless --db-url (or DATABASE_URL) points at PostgreSQL.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the newest saved resumes",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved resume as ResumeData",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historySaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save resume text and form fields to history",
	Args:  cobra.NoArgs,
	RunE:  runHistorySave,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Render a saved resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

var (
	historyDatabaseURL string
	historyLocalDB     string
	historyUserID      string

	historyLimit int
	historyJSON  bool

	historySaveInput inputFlags
	historyJobTitle  string
	historyKeywords  string
	historyTemplate  string

	historyExportFormat   string
	historyExportTemplate string
	historyExportOutDir   string
	historyExportUpload   bool
)

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	historyCmd.PersistentFlags().StringVar(&historyLocalDB, "local-db", "", "SQLite history path (default ~/.resume_builder/history.db)")
	historyCmd.PersistentFlags().StringVar(&historyUserID, "user-id", "", "User UUID that owns the records")

	historyListCmd.Flags().IntVar(&historyLimit, "limit", db.DefaultListLimit, "Number of records to show")
	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the assembled ResumeData as JSON")

	historySaveInput.register(historySaveCmd)
	historySaveCmd.Flags().StringVar(&historyJobTitle, "job-title", "", "Target job title")
	historySaveCmd.Flags().StringVar(&historyKeywords, "keywords", "", "Comma separated job keywords")
	historySaveCmd.Flags().StringVarP(&historyTemplate, "template", "t", "", "Template id")

	historyExportCmd.Flags().StringVar(&historyExportFormat, "format", "", "Output format: html, txt, docx or pdf (default html)")
	historyExportCmd.Flags().StringVarP(&historyExportTemplate, "template", "t", "", "Template id (default: the saved template)")
	historyExportCmd.Flags().StringVarP(&historyExportOutDir, "out-dir", "o", "", "Output directory (default: current directory)")
	historyExportCmd.Flags().BoolVar(&historyExportUpload, "upload", false, "Upload the document to S3 (requires S3_BUCKET)")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historySaveCmd, historyDeleteCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

// historySettings resolves the store location and owner for history commands.
func historySettings(flags config.Config) (config.Config, uuid.UUID, error) {
	flags.DatabaseURL = historyDatabaseURL
	flags.LocalDB = historyLocalDB
	flags.UserID = historyUserID

	settings, err := loadSettings(flags)
	if err != nil {
		return config.Config{}, uuid.Nil, err
	}
	userID, err := resolveUserID(settings)
	if err != nil {
		return config.Config{}, uuid.Nil, err
	}
	return settings, userID, nil
}

// loadHistoryRecord fetches id for userID, turning a miss into an error.
func loadHistoryRecord(ctx context.Context, store db.HistoryStore, userID uuid.UUID, rawID string) (*types.ResumeRecord, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid resume id %q", rawID)
	}
	rec, err := store.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("resume %s not found", id)
	}
	return rec, nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	settings, userID, err := historySettings(config.Config{})
	if err != nil {
		return err
	}
	store, err := openHistory(settings)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background(), userID, db.NormalizeLimit(historyLimit))
	if err != nil {
		return fmt.Errorf("failed to list resumes: %w", err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintHistory(records)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	settings, userID, err := historySettings(config.Config{})
	if err != nil {
		return err
	}
	store, err := openHistory(settings)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := loadHistoryRecord(context.Background(), store, userID, args[0])
	if err != nil {
		return err
	}
	data := parsing.AssembleRecord(rec)
	if historyJSON {
		return writeJSON(cmd.OutOrStdout(), "", data)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintResumeData(data)
	return nil
}

func runHistorySave(cmd *cobra.Command, _ []string) error {
	flags := historySaveInput.config()
	flags.Template = historyTemplate
	settings, userID, err := historySettings(flags)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if settings.Input == "" && settings.InputURL == "" {
		return fmt.Errorf("must provide --in or --url")
	}
	text, _, err := loadResumeText(ctx, settings)
	if err != nil {
		return err
	}
	fb, err := readFallback(settings.Fallback, settings.Contact())
	if err != nil {
		return err
	}

	req := types.SaveResumeRequest{
		JobTitle:    historyJobTitle,
		JobKeywords: parsing.SplitKeywords(historyKeywords),
		ResumeText:  text,
		Fallback:    fb,
		Template:    settings.Template,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid resume: %w", err)
	}
	rec, err := newHistoryRecord(userID, &req)
	if err != nil {
		return err
	}

	store, err := openHistory(settings)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Create(ctx, rec); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSaved("Saved to history", rec.ID.String())
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	settings, userID, err := historySettings(config.Config{})
	if err != nil {
		return err
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid resume id %q", args[0])
	}
	store, err := openHistory(settings)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(context.Background(), userID, id); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSaved("Deleted", id.String())
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	settings, userID, err := historySettings(config.Config{
		Format:    historyExportFormat,
		OutputDir: historyExportOutDir,
	})
	if err != nil {
		return err
	}
	ctx := context.Background()

	store, err := openHistory(settings)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := loadHistoryRecord(ctx, store, userID, args[0])
	if err != nil {
		return err
	}

	format, err := rendering.ParseFormat(settings.Format)
	if err != nil {
		return err
	}
	templateName := historyExportTemplate
	if templateName == "" {
		templateName = string(rec.TemplateID)
	}
	template, err := types.ParseTemplateID(templateName)
	if err != nil {
		return err
	}

	data := parsing.AssembleRecord(rec)
	doc, err := newRenderer(settings).Render(ctx, data, format, template)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	path, err := writeDocument(settings.OutputDir, doc.FileName(data.FullName), doc.Data)
	if err != nil {
		return err
	}
	printer.PrintSaved("Rendered", path)

	if historyExportUpload {
		return uploadDocuments(ctx, printer, []*rendering.Document{doc}, rec.UserID, rec.ID)
	}
	return nil
}
