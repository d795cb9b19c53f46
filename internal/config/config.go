// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// Supported output formats for the render command.
var validFormats = map[string]bool{"": true, "html": true, "txt": true, "docx": true, "pdf": true}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input     string `json:"input,omitempty"`      // Resume text, document or ResumeData JSON
	InputURL  string `json:"input_url,omitempty"`  // URL to import a resume or profile from
	Fallback  string `json:"fallback,omitempty"`   // Fallback form fields JSON
	OutputDir string `json:"output_dir,omitempty"` // Directory for rendered documents

	// Rendering
	Template          string `json:"template,omitempty"`            // Template id (modern, classic, ...)
	Format            string `json:"format,omitempty"`              // html, txt, docx or pdf
	PDFTimeoutSeconds int    `json:"pdf_timeout_seconds,omitempty"` // Headless Chrome print timeout

	// Candidate Info
	UserID   string `json:"user_id,omitempty"` // User UUID for history commands
	Name     string `json:"name,omitempty"`    // Candidate name
	Email    string `json:"email,omitempty"`   // Candidate email
	Phone    string `json:"phone,omitempty"`   // Candidate phone
	Location string `json:"location,omitempty"`

	// Behavior
	APIKey      string  `json:"api_key,omitempty"`      // Gemini API key
	Temperature float32 `json:"temperature,omitempty"`  // Sampling temperature for generation
	UseBrowser  bool    `json:"use_browser,omitempty"`  // Use headless browser for SPA sites
	Verbose     bool    `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string  `json:"database_url,omitempty"` // PostgreSQL connection URL
	LocalDB     string  `json:"local_db,omitempty"`     // SQLite history path when no database URL is set
	Port        int     `json:"port,omitempty"`         // HTTP port for serve
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by each command after merging with flags.
func (c *Config) Validate() error {
	if c.Input != "" && c.InputURL != "" {
		return fmt.Errorf("config error: 'input' and 'input_url' are mutually exclusive")
	}

	if c.Template != "" {
		if _, err := types.ParseTemplateID(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("config error: unsupported format %q", c.Format)
	}

	if c.PDFTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'pdf_timeout_seconds' must be non-negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.UserID != "" {
		if _, err := uuid.Parse(c.UserID); err != nil {
			return fmt.Errorf("config error: invalid user_id: %w", err)
		}
	}

	for name, path := range map[string]string{"input": c.Input, "fallback": c.Fallback} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.Input, defaults.Input)
	fill(&result.InputURL, defaults.InputURL)
	fill(&result.Fallback, defaults.Fallback)
	fill(&result.OutputDir, defaults.OutputDir)
	fill(&result.Template, defaults.Template)
	fill(&result.Format, defaults.Format)
	fill(&result.UserID, defaults.UserID)
	fill(&result.Name, defaults.Name)
	fill(&result.Email, defaults.Email)
	fill(&result.Phone, defaults.Phone)
	fill(&result.Location, defaults.Location)
	fill(&result.APIKey, defaults.APIKey)
	fill(&result.DatabaseURL, defaults.DatabaseURL)
	fill(&result.LocalDB, defaults.LocalDB)

	// Numeric fields: use default if zero
	if result.PDFTimeoutSeconds == 0 {
		result.PDFTimeoutSeconds = defaults.PDFTimeoutSeconds
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = 8080
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Contact returns the candidate fields as fallback contact data.
func (c *Config) Contact() types.Contact {
	return types.Contact{
		FullName: c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Location: c.Location,
	}
}
