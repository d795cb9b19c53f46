package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"user_id": "550e8400-e29b-41d4-a716-446655440000",
		"input_url": "https://github.com/janedoe",
		"name": "Test User",
		"template": "classic",
		"format": "pdf",
		"pdf_timeout_seconds": 20,
		"temperature": 0.6,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", cfg.UserID)
	assert.Equal(t, "https://github.com/janedoe", cfg.InputURL)
	assert.Equal(t, "Test User", cfg.Name)
	assert.Equal(t, "classic", cfg.Template)
	assert.Equal(t, 20, cfg.PDFTimeoutSeconds)
	assert.InDelta(t, 0.6, cfg.Temperature, 0.0001)
	assert.True(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(existing, []byte("SUMMARY"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config", cfg: Config{}},
		{name: "valid config", cfg: Config{Input: existing, Template: "Elegant", Format: "docx", Port: 9000}},
		{name: "mutually exclusive input", cfg: Config{Input: existing, InputURL: "https://example.com"}, wantErr: "mutually exclusive"},
		{name: "unknown template", cfg: Config{Template: "fancy"}, wantErr: "unknown template"},
		{name: "unknown format", cfg: Config{Format: "rtf"}, wantErr: "unsupported format"},
		{name: "negative timeout", cfg: Config{PDFTimeoutSeconds: -1}, wantErr: "pdf_timeout_seconds"},
		{name: "temperature too high", cfg: Config{Temperature: 3}, wantErr: "temperature"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "invalid user id", cfg: Config{UserID: "not-a-uuid"}, wantErr: "invalid user_id"},
		{name: "missing input file", cfg: Config{Input: "/nonexistent/resume.txt"}, wantErr: "input file not found"},
		{name: "missing fallback file", cfg: Config{Fallback: "/nonexistent/fallback.json"}, wantErr: "fallback file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Name:              "Default Name",
		Email:             "default@example.com",
		Template:          "classic",
		PDFTimeoutSeconds: 30,
		Temperature:       0.4,
		Port:              9090,
	}

	partial := Config{
		Name:   "Custom Name",
		UserID: "custom-user-id",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "Custom Name", merged.Name)
	assert.Equal(t, "custom-user-id", merged.UserID)

	// Default values should fill in empty fields
	assert.Equal(t, "default@example.com", merged.Email)
	assert.Equal(t, "classic", merged.Template)
	assert.Equal(t, 30, merged.PDFTimeoutSeconds)
	assert.InDelta(t, 0.4, merged.Temperature, 0.0001)
	assert.Equal(t, 9090, merged.Port)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Name:   "Test",
		UserID: "test-user",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "Test", merged.Name)
	assert.Equal(t, "test-user", merged.UserID)
	assert.Equal(t, 8080, merged.Port)
}

func TestContact(t *testing.T) {
	cfg := Config{Name: "Jane Doe", Email: "jane@example.com", Phone: "555", Location: "Austin"}
	c := cfg.Contact()
	assert.Equal(t, "Jane Doe", c.FullName)
	assert.Equal(t, "jane@example.com", c.Email)
	assert.Equal(t, "555", c.Phone)
	assert.Equal(t, "Austin", c.Location)
}
