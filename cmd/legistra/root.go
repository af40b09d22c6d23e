package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	mcpadapter "github.com/kirillkom/legistra/internal/adapters/mcp"
	"github.com/kirillkom/legistra/internal/bootstrap"
	"github.com/kirillkom/legistra/internal/config"
	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/core/ports"
	"github.com/kirillkom/legistra/internal/core/usecase"
	"github.com/kirillkom/legistra/internal/infrastructure/extractor"
	"github.com/kirillkom/legistra/internal/observability/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type dependencies struct {
	loadConfig  func() (config.Config, error)
	newAnalyzer func(cfg config.Config, logger *slog.Logger) (mcpadapter.TextAnalyzer, error)
	extractor   ports.TextExtractor
	readFile    func(path string) ([]byte, error)
	serveMCP    func(h *mcpadapter.Handlers) error
	stderr      io.Writer
}

func defaultDependencies() dependencies {
	return dependencies{
		loadConfig: config.Load,
		newAnalyzer: func(cfg config.Config, logger *slog.Logger) (mcpadapter.TextAnalyzer, error) {
			analyzer, _, err := bootstrap.NewTextAnalyzer(cfg, bootstrap.Options{Logger: logger})
			if err != nil {
				return nil, err
			}
			return analyzer, nil
		},
		extractor: extractor.New(),
		readFile:  os.ReadFile,
		serveMCP: func(h *mcpadapter.Handlers) error {
			return mcpadapter.ServeStdio(mcpadapter.NewServer(h))
		},
		stderr: os.Stderr,
	}
}

// cliContext carries what every subcommand needs after the root has run.
type cliContext struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand(deps dependencies) *cobra.Command {
	var (
		cc       cliContext
		logLevel string
	)

	root := &cobra.Command{
		Use:           "legistra",
		Short:         "Legal clause extraction and risk classification",
		Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			cc.cfg = cfg
			cc.logger = logging.NewJSONLoggerTo(deps.stderr, "cli", cfg.LogLevel)
			slog.SetDefault(cc.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(newAnalyzeCommand(deps, &cc))
	root.AddCommand(newMCPCommand(deps, &cc))
	root.AddCommand(newClauseTypesCommand())
	return root
}

func newAnalyzeCommand(deps dependencies, cc *cliContext) *cobra.Command {
	var (
		file   string
		mode   string
		label  string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a local document without persisting anything",
		Example: "  legistra analyze --file contract.pdf --mode fast\n" +
			"  legistra analyze --file nda.docx --mode multilingual --pretty",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := usecase.DetectFormat(file, mime.TypeByExtension(filepath.Ext(file)))
			if err != nil {
				return err
			}
			data, err := deps.readFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}

			ctx := cmd.Context()
			if cc.cfg.AnalysisTimeoutSeconds > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(cc.cfg.AnalysisTimeoutSeconds)*time.Second)
				defer cancel()
			}

			text, err := deps.extractor.Extract(ctx, format, data)
			if err != nil {
				return domain.WrapError(domain.ErrInvalidInput, "extract text", err)
			}

			analyzer, err := deps.newAnalyzer(cc.cfg, cc.logger)
			if err != nil {
				return fmt.Errorf("init analyzer: %w", err)
			}
			if mode == "" {
				mode = cc.cfg.DefaultAnalysisMode
			}
			if label == "" {
				label = filepath.Base(file)
			}

			outcome, failure := analyzer.AnalyzeText(ctx, label, text, mode)
			if failure != nil {
				return failure
			}
			for _, warning := range outcome.Warnings {
				cc.logger.Warn("analysis_warning", "kind", warning.Kind, "stage", warning.Stage, "error", warning.Message)
			}
			return writeJSON(cmd.OutOrStdout(), outcome, pretty)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a .txt, .pdf, .docx or .html document")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "analysis mode (thorough, multilingual, fast); defaults to ANALYSIS_DEFAULT_MODE")
	cmd.Flags().StringVar(&label, "label", "", "identifier reported in the result; defaults to the file name")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newMCPCommand(deps dependencies, cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analysis tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := deps.newAnalyzer(cc.cfg, cc.logger)
			if err != nil {
				return fmt.Errorf("init analyzer: %w", err)
			}
			cc.logger.Info("mcp_server_starting", "default_mode", cc.cfg.DefaultAnalysisMode)
			return deps.serveMCP(mcpadapter.NewHandlers(analyzer, cc.cfg.DefaultAnalysisMode))
		},
	}
}

func newClauseTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clause-types",
		Short: "List the clause tags the engine can emit",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, clauseType := range domain.ClauseTypes {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), clauseType); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, payload any, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(payload)
}

// exitCode is 2 for bad input and 1 for any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrInvalidInput):
		return 2
	default:
		return 1
	}
}
