package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ipg.yaml"), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoaderOptions{ConfigPaths: []string{t.TempDir()}})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Provider.Model)
	assert.Equal(t, "120s", cfg.Provider.Timeout)
	assert.Equal(t, "Senior", cfg.Generation.Seniority)
	assert.Equal(t, "USA", cfg.Generation.Region)
	assert.Equal(t, 5, cfg.Generation.PerSection)
	assert.True(t, cfg.Generation.LegalFooter)
	assert.Equal(t, "out", cfg.Output.Directory)
	assert.Equal(t, []string{"md", "docx"}, cfg.Output.Formats)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Observability.Logging.Enabled)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, "human", cfg.Observability.Logging.Format)
	assert.True(t, cfg.Observability.Logging.RedactAPIKeys)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
provider:
  model: gpt-4o
  apiKey: sk-file-key
generation:
  seniority: Director
  region: EMEA
  perSection: 7
  legalFooter: false
output:
  directory: packs
  formats:
    - md
server:
  port: 9090
`)

	cfg, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.Provider.Model)
	assert.Equal(t, "sk-file-key", cfg.Provider.APIKey)
	assert.Equal(t, "Director", cfg.Generation.Seniority)
	assert.Equal(t, "EMEA", cfg.Generation.Region)
	assert.Equal(t, 7, cfg.Generation.PerSection)
	assert.False(t, cfg.Generation.LegalFooter)
	assert.Equal(t, "packs", cfg.Output.Directory)
	assert.Equal(t, []string{"md"}, cfg.Output.Formats)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("IPG_TEST_SECRET", "sk-from-env")

	dir := t.TempDir()
	writeConfig(t, dir, `
provider:
  apiKey: ${IPG_TEST_SECRET}
`)

	cfg, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Provider.APIKey)
}

func TestLoadUnsetEnvVarKeptVerbatim(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
provider:
  apiKey: ${IPG_DEFINITELY_UNSET_VAR}
`)

	cfg, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "${IPG_DEFINITELY_UNSET_VAR}", cfg.Provider.APIKey)
}

func TestLoadOpenAIKeyFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-ambient")

	cfg, err := Load(LoaderOptions{ConfigPaths: []string{t.TempDir()}})
	require.NoError(t, err)
	assert.Equal(t, "sk-ambient", cfg.Provider.APIKey)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "provider: [not a map")

	_, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestDefaultParameters(t *testing.T) {
	cfg, err := Load(LoaderOptions{ConfigPaths: []string{t.TempDir()}})
	require.NoError(t, err)

	params := cfg.DefaultParameters()
	assert.Equal(t, "Senior", params.Seniority)
	assert.Equal(t, "USA", params.Region)
	assert.Equal(t, 5, params.PerSection)
	assert.True(t, params.IncludeLegalFooter)
	assert.Equal(t, "gpt-4o-mini", params.Model)
	assert.NoError(t, params.Validate())
}
