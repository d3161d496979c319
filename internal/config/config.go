package config

import "github.com/bkyoung/interview-pack/internal/domain"

// Config represents the full application configuration.
type Config struct {
	Provider      ProviderConfig      `yaml:"provider"`
	Generation    GenerationConfig    `yaml:"generation"`
	Output        OutputConfig        `yaml:"output"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ProviderConfig configures the completion backend.
type ProviderConfig struct {
	BaseURL string `yaml:"baseURL"`
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// GenerationConfig holds the default generation parameters. Each can be
// overridden per request from the CLI or the HTTP API.
type GenerationConfig struct {
	Seniority   string `yaml:"seniority"`
	Region      string `yaml:"region"`
	PerSection  int    `yaml:"perSection"`
	LegalFooter bool   `yaml:"legalFooter"`
}

// DefaultParameters maps the configured generation defaults to domain
// parameters; per-request overrides are applied on top by the callers.
func (c Config) DefaultParameters() domain.GenerationParameters {
	return domain.GenerationParameters{
		Seniority:          c.Generation.Seniority,
		Region:             c.Generation.Region,
		PerSection:         c.Generation.PerSection,
		IncludeLegalFooter: c.Generation.LegalFooter,
		Model:              c.Provider.Model,
	}
}

// OutputConfig configures where and how rendered packs are written.
type OutputConfig struct {
	Directory string   `yaml:"directory"`
	Formats   []string `yaml:"formats"` // md, docx
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Level         string `yaml:"level"`  // debug, info, error
	Format        string `yaml:"format"` // json, human
	RedactAPIKeys bool   `yaml:"redactAPIKeys"`
}
