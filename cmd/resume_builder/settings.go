package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	schemafiles "github.com/jonathan/resume-builder/schemas"
)

// localUserID owns history records created without a configured user_id.
var localUserID = uuid.Nil

// loadSettings merges flag values over the --config file and the environment.
// Non-empty flag values always win.
func loadSettings(flags config.Config) (config.Config, error) {
	var file config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid config: %w", err)
		}
		file = *loaded
	}

	merged := flags.MergeWithDefaults(file)
	merged.Verbose = verbose || flags.Verbose || file.Verbose
	merged.UseBrowser = flags.UseBrowser || file.UseBrowser

	if merged.APIKey == "" {
		merged.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if merged.DatabaseURL == "" {
		merged.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// resolveUserID returns the configured user or the local CLI user.
func resolveUserID(s config.Config) (uuid.UUID, error) {
	if s.UserID == "" {
		return localUserID, nil
	}
	id, err := uuid.Parse(s.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	return id, nil
}

// openHistory opens PostgreSQL when a database URL is configured and the
// local SQLite file otherwise.
func openHistory(s config.Config) (db.HistoryStore, error) {
	if s.DatabaseURL != "" {
		store, err := db.New(s.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return store, nil
	}

	path := s.LocalDB
	if path == "" {
		path = db.DefaultLocalPath()
	}
	if s.Verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Using local history at %s\n", path)
	}
	store, err := db.OpenLocal(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// readFallback loads fallback form fields from a JSON file. Contact values
// given on the command line replace the ones in the file.
func readFallback(path string, contact types.Contact) (types.Fallback, error) {
	var fb types.Fallback
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fb, fmt.Errorf("failed to read fallback file: %w", err)
		}
		if err := schemas.ValidateFallback(raw); err != nil {
			return fb, fmt.Errorf("fallback file %s: %w", path, err)
		}
		if err := json.Unmarshal(raw, &fb); err != nil {
			return fb, fmt.Errorf("failed to parse fallback file: %w", err)
		}
	}
	fb.Contact = parsing.ResolveContact(contact, fb.Contact)
	return fb, nil
}

// loadResumeText ingests the --in file or --url page. It returns an empty
// string when neither is set.
func loadResumeText(ctx context.Context, s config.Config) (string, *ingestion.Metadata, error) {
	switch {
	case s.InputURL != "":
		return ingestion.IngestFromURL(ctx, s.InputURL, s.UseBrowser, s.Verbose)
	case s.Input != "":
		return ingestion.IngestFromFile(s.Input)
	default:
		return "", nil, nil
	}
}

// loadResumeData reads a ResumeData JSON document, or assembles one from
// resume text and the fallback fields.
func loadResumeData(ctx context.Context, s config.Config, fb types.Fallback) (*types.ResumeData, error) {
	if strings.EqualFold(filepath.Ext(s.Input), ".json") {
		raw, err := os.ReadFile(s.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to read resume data: %w", err)
		}
		if err := schemas.ValidateDocument(schemafiles.ResumeData, raw); err != nil {
			return nil, fmt.Errorf("resume data %s: %w", s.Input, err)
		}
		var data types.ResumeData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse resume data: %w", err)
		}
		return &data, nil
	}

	if s.Input == "" && s.InputURL == "" && s.Fallback == "" {
		return nil, fmt.Errorf("must provide --in, --url or --fallback")
	}
	text, _, err := loadResumeText(ctx, s)
	if err != nil {
		return nil, err
	}
	return parsing.Assemble(text, fb), nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// reportValidation prints schema field errors and returns err unchanged.
func reportValidation(printer *observability.Printer, err error) error {
	var validationErr *schemas.ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}
	fields := make([]string, len(validationErr.Errors))
	messages := make([]string, len(validationErr.Errors))
	for i, fe := range validationErr.Errors {
		fields[i], messages[i] = fe.Field, fe.Message
	}
	printer.PrintFieldErrors(fields, messages)
	return err
}
