package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	schemafiles "github.com/jonathan/resume-builder/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a JSON document against its schema",
	Long: `Validate ResumeData JSON (--kind resume) or fallback form fields JSON (--kind fallback)
against the embedded JSON Schemas. A custom schema file can be given with --schema.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var (
	validateKind   string
	validateSchema string
)

// schemaKinds maps --kind values to embedded schema files
var schemaKinds = map[string]string{
	"resume":   schemafiles.ResumeData,
	"fallback": schemafiles.Fallback,
}

func init() {
	validateCmd.Flags().StringVar(&validateKind, "kind", "resume", "Document kind: resume or fallback")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (overrides --kind)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	printer := observability.NewPrinter(cmd.OutOrStdout())

	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, path)
	} else {
		schemaName, ok := schemaKinds[validateKind]
		if !ok {
			return fmt.Errorf("unknown document kind %q (want resume or fallback)", validateKind)
		}
		var raw []byte
		if raw, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		err = schemas.ValidateDocument(schemaName, raw)
	}
	if err != nil {
		return reportValidation(printer, err)
	}

	printer.PrintSaved("Valid "+validateKind, path)
	return nil
}
