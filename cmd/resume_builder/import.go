package main

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import an existing resume or online profile",
	Long: `Extract text from a PDF, DOCX, HTML, markdown or text resume (or an online profile URL),
then write <name>.cleaned.txt, <name>.meta.json and <name>.resume.json to the output directory.
Contact details found in the text fill any contact fields not given as flags.`,
	RunE: runImport,
}

var (
	importInput  inputFlags
	importOutDir string
)

func init() {
	importInput.register(importCmd)
	importCmd.Flags().StringVarP(&importOutDir, "out-dir", "o", "", "Output directory (default: current directory)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	flags := importInput.config()
	flags.OutputDir = importOutDir

	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	if settings.Input == "" && settings.InputURL == "" {
		return fmt.Errorf("must provide --in or --url")
	}

	text, metadata, err := loadResumeText(context.Background(), settings)
	if err != nil {
		return fmt.Errorf("failed to import resume: %w", err)
	}

	outDir := settings.OutputDir
	if outDir == "" {
		outDir = "."
	}
	base := importBaseName(settings.Input, settings.InputURL)
	if err := ingestion.WriteOutput(outDir, base, text, metadata); err != nil {
		return err
	}

	fb, err := readFallback(settings.Fallback, settings.Contact())
	if err != nil {
		return err
	}
	fb.Contact = parsing.ResolveContact(fb.Contact, parsing.ExtractContact(text))

	data := parsing.Assemble(text, fb)
	dataPath := filepath.Join(outDir, base+".resume.json")
	if err := writeJSON(cmd.OutOrStdout(), dataPath, data); err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintSaved("Cleaned text", filepath.Join(outDir, base+".cleaned.txt"))
	printer.PrintSaved("Resume data", dataPath)
	if settings.Verbose {
		printer.PrintResumeData(data)
	}
	return nil
}

// importBaseName derives output file names from the input file or URL.
func importBaseName(path, rawURL string) string {
	if path != "" {
		return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "profile"
	}
	base := strings.TrimPrefix(u.Hostname(), "www.")
	if p := strings.Trim(u.Path, "/"); p != "" {
		base += "_" + strings.ReplaceAll(p, "/", "_")
	}
	return base
}
