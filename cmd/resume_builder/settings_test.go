package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfigPath points the --config flag at path for one test.
func withConfigPath(t *testing.T, path string) {
	t.Helper()
	previous := configPath
	configPath = path
	t.Cleanup(func() { configPath = previous })
}

func TestLoadSettings_FlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	withConfigPath(t, writeFile(t, dir, "config.json", `{
		"template": "classic",
		"format": "pdf",
		"name": "Config Name",
		"email": "config@example.com",
		"api_key": "file-key",
		"port": 9090
	}`))
	t.Setenv("GEMINI_API_KEY", "env-key")

	settings, err := loadSettings(config.Config{Template: "elegant", Name: "Flag Name"})
	require.NoError(t, err)

	assert.Equal(t, "elegant", settings.Template)
	assert.Equal(t, "pdf", settings.Format)
	assert.Equal(t, "Flag Name", settings.Name)
	assert.Equal(t, "config@example.com", settings.Email)
	assert.Equal(t, "file-key", settings.APIKey, "config file wins over the environment")
	assert.Equal(t, 9090, settings.Port)
}

func TestLoadSettings_EnvironmentDefaults(t *testing.T) {
	withConfigPath(t, "")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/resumes")

	settings, err := loadSettings(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "env-key", settings.APIKey)
	assert.Equal(t, "postgres://localhost/resumes", settings.DatabaseURL)
	assert.Equal(t, 8080, settings.Port)
}

func TestLoadSettings_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing config file", func(t *testing.T) {
		withConfigPath(t, dir+"/missing.json")
		_, err := loadSettings(config.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
	})

	t.Run("invalid config values", func(t *testing.T) {
		withConfigPath(t, writeFile(t, dir, "bad.json", `{"template": "retro"}`))
		_, err := loadSettings(config.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("invalid flag values", func(t *testing.T) {
		withConfigPath(t, "")
		_, err := loadSettings(config.Config{Format: "odt"})
		require.Error(t, err)
	})
}

func TestResolveUserID(t *testing.T) {
	id, err := resolveUserID(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, localUserID, id)

	want := uuid.New()
	id, err = resolveUserID(config.Config{UserID: want.String()})
	require.NoError(t, err)
	assert.Equal(t, want, id)

	_, err = resolveUserID(config.Config{UserID: "nope"})
	assert.Error(t, err)
}

func TestReadFallback(t *testing.T) {
	dir := t.TempDir()
	path := writeFallback(t, dir, sampleFallback())

	fb, err := readFallback(path, types.Contact{Phone: "555-0100", FullName: "J. Doe"})
	require.NoError(t, err)
	assert.Equal(t, "Kubernetes, Terraform", fb.Skills)
	assert.Equal(t, "J. Doe", fb.Contact.FullName)
	assert.Equal(t, "jane@example.com", fb.Contact.Email)
	assert.Equal(t, "555-0100", fb.Contact.Phone)

	fb, err = readFallback("", types.Contact{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", fb.Contact.Email)
	assert.Empty(t, fb.Skills)
}
