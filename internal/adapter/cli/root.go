// Package cli wires the cobra command tree for the ipg binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bkyoung/interview-pack/internal/domain"
	"github.com/bkyoung/interview-pack/internal/usecase/generate"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// PackGenerator defines the dependency required to run the generate and scan commands.
type PackGenerator interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
	Scan(req generate.Request) ([]domain.Finding, error)
}

// DocumentWriter persists one rendered pack format to disk.
type DocumentWriter interface {
	Write(ctx context.Context, outputDir, content string) (string, error)
}

// ServerRunner starts the HTTP front end and blocks until shutdown.
type ServerRunner func(ctx context.Context, port int) error

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Generator      PackGenerator
	Markdown       DocumentWriter
	Docx           DocumentWriter
	RunServer      ServerRunner
	Args           Arguments
	DefaultParams  domain.GenerationParameters
	DefaultOutput  string
	DefaultFormats []string
	DefaultPort    int
	Version        string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "ipg",
		Short: "Interview pack generator CLI",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(generateCommand(deps))
	root.AddCommand(scanCommand(deps))
	root.AddCommand(serveCommand(deps))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

// buildRequest assembles a usecase request from a positional file argument,
// the --text flag, and parameter flags layered over the configured defaults.
func buildRequest(args []string, text string, params domain.GenerationParameters) (generate.Request, error) {
	var doc *domain.SourceDocument
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return generate.Request{}, fmt.Errorf("read job description: %w", err)
		}
		doc = &domain.SourceDocument{Name: filepath.Base(args[0]), Data: data}
	}

	if doc == nil && text == "" {
		return generate.Request{}, fmt.Errorf("no job description provided; pass a file argument or use --text")
	}

	return generate.Request{Document: doc, Text: text, Params: params}, nil
}

func printFindings(out io.Writer, findings []domain.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(out, "Compliance scan: %d potential issue(s)\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(out, "  - %s: %s\n    …%s…\n", f.Label, f.Advisory, f.Snippet)
	}
}

func generateCommand(deps Dependencies) *cobra.Command {
	var text string
	var seniority string
	var region string
	var perSection int
	var model string
	var legalFooter bool
	var outputDir string
	var formats []string

	defaults := deps.DefaultParams
	defaultOutput := deps.DefaultOutput
	if defaultOutput == "" {
		defaultOutput = "out"
	}
	defaultFormats := deps.DefaultFormats
	if len(defaultFormats) == 0 {
		defaultFormats = []string{"md", "docx"}
	}

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate an interview pack from a job description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			params := defaults
			params.Seniority = seniority
			params.Region = region
			params.PerSection = perSection
			params.Model = model
			params.IncludeLegalFooter = legalFooter

			req, err := buildRequest(args, text, params)
			if err != nil {
				return err
			}

			result, err := deps.Generator.Generate(ctx, req)
			if err != nil {
				return err
			}

			printFindings(cmd.ErrOrStderr(), result.Findings)

			for _, format := range formats {
				var writer DocumentWriter
				switch format {
				case "md":
					writer = deps.Markdown
				case "docx":
					writer = deps.Docx
				default:
					return fmt.Errorf("unknown output format %q (supported: md, docx)", format)
				}
				path, err := writer.Write(ctx, outputDir, result.Pack.Content)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Job description text (alternative to a file argument)")
	cmd.Flags().StringVar(&seniority, "seniority", defaults.Seniority, "Seniority level (Entry, Associate, Mid, Senior, Manager, Director, Executive)")
	cmd.Flags().StringVar(&region, "region", defaults.Region, "Region or market context (USA, Canada, UK & Ireland, EMEA, LATAM, APAC, Global)")
	cmd.Flags().IntVar(&perSection, "per-section", defaults.PerSection, "Questions per major section (3-10)")
	cmd.Flags().StringVar(&model, "model", defaults.Model, "Model to use for generation")
	cmd.Flags().BoolVar(&legalFooter, "legal-footer", defaults.IncludeLegalFooter, "Include the compliance advisory section")
	cmd.Flags().StringVar(&outputDir, "output", defaultOutput, "Directory to write rendered packs")
	cmd.Flags().StringSliceVar(&formats, "formats", defaultFormats, "Output formats to write (md, docx)")

	return cmd
}

func scanCommand(deps Dependencies) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Scan a job description for risky phrasing without generating a pack",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(args, text, deps.DefaultParams)
			if err != nil {
				return err
			}

			findings, err := deps.Generator.Scan(req)
			if err != nil {
				return err
			}

			if len(findings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No risky phrasing found.")
				return nil
			}
			printFindings(cmd.OutOrStdout(), findings)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Job description text (alternative to a file argument)")

	return cmd
}

func serveCommand(deps Dependencies) *cobra.Command {
	var port int

	defaultPort := deps.DefaultPort
	if defaultPort == 0 {
		defaultPort = 8080
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.RunServer == nil {
				return fmt.Errorf("server is not configured")
			}
			return deps.RunServer(cmd.Context(), port)
		},
	}

	cmd.Flags().IntVar(&port, "port", defaultPort, "Port to listen on")

	return cmd
}
