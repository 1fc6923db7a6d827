package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "discedit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "strings.db", cfg.Database)
	assert.Equal(t, "ENGL", cfg.Language)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.VerifyWrites)
	assert.True(t, cfg.Progress)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
database: out/export.db
language: FREN
log_level: debug
log_format: json
verify_writes: false
progress: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Database:     "out/export.db",
		Language:     "FREN",
		LogLevel:     "debug",
		LogFormat:    "json",
		VerifyWrites: false,
		Progress:     false,
	}, cfg)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("DISCEDIT_LANGUAGE", "JAPN")
	cfg, err := Load(writeConfig(t, "log_level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, "JAPN", cfg.Language)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"level":    "log_level: loud\n",
		"format":   "log_format: xml\n",
		"language": "language: English\n",
		"database": "database: ''\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: [unterminated\n"))
	assert.Error(t, err)
}

func TestValidateLanguage(t *testing.T) {
	assert.NoError(t, ValidateLanguage("ENGL"))
	assert.NoError(t, ValidateLanguage("ger "))
	assert.Error(t, ValidateLanguage("EN"))
	assert.Error(t, ValidateLanguage("ENG\x00"))
	assert.Error(t, ValidateLanguage("ÉNG"))
}
