package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bkyoung/interview-pack/internal/adapter/cli"
	llmhttp "github.com/bkyoung/interview-pack/internal/adapter/llm/http"
	"github.com/bkyoung/interview-pack/internal/adapter/llm/openai"
	"github.com/bkyoung/interview-pack/internal/adapter/output/docx"
	"github.com/bkyoung/interview-pack/internal/adapter/output/markdown"
	"github.com/bkyoung/interview-pack/internal/adapter/server"
	"github.com/bkyoung/interview-pack/internal/compliance"
	"github.com/bkyoung/interview-pack/internal/config"
	"github.com/bkyoung/interview-pack/internal/extract"
	"github.com/bkyoung/interview-pack/internal/observability/logging"
	"github.com/bkyoung/interview-pack/internal/usecase/generate"
	"github.com/bkyoung/interview-pack/internal/version"
)

func main() {
	if err := run(); err != nil {
		// Redact API keys from URLs in error messages before logging
		log.Println(llmhttp.RedactURLSecrets(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Optional .env file for local development
	_ = godotenv.Load()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "ipg",
		EnvPrefix:   "IPG",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	// Timestamp function shared by both renderers so one generation yields
	// matching .md and .docx filenames.
	nowFunc := func() string {
		return time.Now().Format("20060102_1504")
	}

	markdownWriter := markdown.NewWriter(nowFunc)
	docxWriter := docx.NewWriter(nowFunc)

	callLogger := buildCallLogger(cfg.Observability)
	provider := openai.NewProvider(buildClient(cfg.Provider, callLogger))

	service, err := generate.NewService(generate.Deps{
		Extractor: extract.New(),
		Scanner:   compliance.NewScanner(),
		Provider:  provider,
	})
	if err != nil {
		return fmt.Errorf("wire generate service: %w", err)
	}

	deps := cli.Dependencies{
		Generator: service,
		Markdown:  markdownWriter,
		Docx:      docxWriter,
		RunServer: func(ctx context.Context, port int) error {
			logger := logging.NewJSONLogger("ipg", cfg.Observability.Logging.Level)
			srv, err := server.New(
				server.Config{Port: port, DefaultParams: cfg.DefaultParameters()},
				server.Deps{
					Service:  service,
					Markdown: markdownWriter,
					Docx:     docxWriter,
					Logger:   logger,
				},
			)
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
		DefaultParams:  cfg.DefaultParameters(),
		DefaultOutput:  cfg.Output.Directory,
		DefaultFormats: cfg.Output.Formats,
		DefaultPort:    cfg.Server.Port,
		Version:        version.Value(),
	}

	root := cli.NewRootCommand(deps)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// buildClient selects the completion client: a live HTTP client when a
// credential is configured, otherwise the static fallback.
func buildClient(cfg config.ProviderConfig, logger llmhttp.Logger) openai.Client {
	if cfg.APIKey == "" {
		log.Println("no API key provided, using static fallback pack")
		return openai.NewStaticClient()
	}

	client := openai.NewHTTPClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}
	if cfg.Timeout != "" {
		if parsed, err := time.ParseDuration(cfg.Timeout); err == nil {
			client.SetTimeout(parsed)
		} else {
			log.Printf("warning: invalid provider timeout %q, using default", cfg.Timeout)
		}
	}
	if logger != nil {
		client.SetLogger(logger)
	}
	return client
}

// buildCallLogger creates the provider call logger based on configuration.
func buildCallLogger(cfg config.ObservabilityConfig) llmhttp.Logger {
	if !cfg.Logging.Enabled {
		return nil
	}

	logLevel := llmhttp.LogLevelInfo
	switch cfg.Logging.Level {
	case "debug":
		logLevel = llmhttp.LogLevelDebug
	case "error":
		logLevel = llmhttp.LogLevelError
	}

	logFormat := llmhttp.LogFormatHuman
	if cfg.Logging.Format == "json" {
		logFormat = llmhttp.LogFormatJSON
	}

	return llmhttp.NewDefaultLogger(logLevel, logFormat, cfg.Logging.RedactAPIKeys)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ipg"))
	}
	return paths
}
