package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/sitegrade/internal/analyzer"
	"github.com/JakeFAU/sitegrade/internal/batch"
	"github.com/JakeFAU/sitegrade/internal/config"
	"github.com/JakeFAU/sitegrade/internal/document"
	collyfetcher "github.com/JakeFAU/sitegrade/internal/fetcher/colly"
	"github.com/JakeFAU/sitegrade/internal/logging"
	"github.com/JakeFAU/sitegrade/internal/metrics"
	"github.com/JakeFAU/sitegrade/internal/report"
	"github.com/JakeFAU/sitegrade/internal/telemetry"
)

var errNoURLs = errors.New("no URLs provided")

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url...]",
		Short: "Score one or more websites",
		Long: `Analyze fetches every URL, scores it across performance, design, SEO and
accessibility, and prints an aggregated report.

Examples:
  # Score two sites with the default markdown report
  sitegrade analyze example.com https://go.dev

  # Read URLs from a file and print JSON
  sitegrade analyze --file sites.txt --format json

  # Limit concurrency and dump Prometheus metrics to stderr
  sitegrade analyze -c 2 --print-metrics example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("file", "f", "", "file with one URL per line (# starts a comment)")
	cmd.Flags().String("format", "", "report format: markdown, json or yaml")
	cmd.Flags().IntP("concurrency", "c", 0, "maximum number of sites analyzed at once")
	cmd.Flags().DurationP("timeout", "t", 0, "timeout for each site fetch")
	cmd.Flags().Float64("top-threshold", 0, "minimum overall score for a top performer")
	cmd.Flags().Float64("improvement-threshold", 0, "maximum overall score for a site needing improvement")
	cmd.Flags().Bool("print-metrics", false, "write Prometheus metrics to stderr after the report")

	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	urls, err := collectURLs(cmd, args)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Development: cfg.Logging.Development, Level: cfg.Logging.Level})
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalyze(ctx, cfg, urls, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func runAnalyze(
	ctx context.Context,
	cfg config.Config,
	urls []string,
	logger *zap.Logger,
	out io.Writer,
	errOut io.Writer,
) error {
	writer, err := report.NewWriter(cfg.Report.Format, out)
	if err != nil {
		return err
	}

	if cfg.Telemetry.TracingEnabled {
		tp, err := telemetry.InitTracerProvider(ctx, telemetry.Config{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
		})
		if err != nil {
			return fmt.Errorf("tracing init failed: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("tracer shutdown failed", zap.Error(err))
			}
		}()
	}
	tracer := telemetry.Tracer()

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:    cfg.Analyzer.UserAgent,
		Timeout:      cfg.Analyzer.Timeout,
		MaxBodyBytes: cfg.Analyzer.MaxBodyBytes,
	})
	siteAnalyzer := analyzer.New(fetcher, document.NewParser(), analyzer.Config{
		Timeout:   cfg.Analyzer.Timeout,
		UserAgent: cfg.Analyzer.UserAgent,
	}, logger,
		analyzer.WithObserver(recorder),
		analyzer.WithTracer(tracer),
	)
	coordinator := batch.New(siteAnalyzer, batch.Config{
		Concurrency:          cfg.Batch.Concurrency,
		TopThreshold:         cfg.Batch.TopThreshold,
		ImprovementThreshold: cfg.Batch.ImprovementThreshold,
	}, logger,
		batch.WithObserver(recorder),
		batch.WithTracer(tracer),
	)

	result := coordinator.AnalyzeBatch(ctx, urls)
	if err := writer.Write(result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.Metrics.Print {
		if err := metrics.WriteText(errOut, registry); err != nil {
			return fmt.Errorf("print metrics: %w", err)
		}
	}
	return nil
}

// buildConfig loads the config file and environment, then applies explicitly
// set flags on top.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config failed: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		if cfg.Report.Format, err = flags.GetString("format"); err != nil {
			return config.Config{}, err
		}
		cfg.Report.Format = strings.ToLower(cfg.Report.Format)
	}
	if flags.Changed("concurrency") {
		if cfg.Batch.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Analyzer.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("top-threshold") {
		if cfg.Batch.TopThreshold, err = flags.GetFloat64("top-threshold"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("improvement-threshold") {
		if cfg.Batch.ImprovementThreshold, err = flags.GetFloat64("improvement-threshold"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("print-metrics") {
		if cfg.Metrics.Print, err = flags.GetBool("print-metrics"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("log-level") {
		if cfg.Logging.Level, err = flags.GetString("log-level"); err != nil {
			return config.Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// collectURLs merges positional arguments with the --file contents.
func collectURLs(cmd *cobra.Command, args []string) ([]string, error) {
	urls := make([]string, 0, len(args))
	for _, arg := range args {
		if arg = strings.TrimSpace(arg); arg != "" {
			urls = append(urls, arg)
		}
	}

	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open url file: %w", err)
		}
		defer f.Close() //nolint:errcheck // read-only
		fromFile, err := readURLs(f)
		if err != nil {
			return nil, fmt.Errorf("read url file: %w", err)
		}
		urls = append(urls, fromFile...)
	}

	if len(urls) == 0 {
		return nil, errNoURLs
	}
	return urls, nil
}

func readURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
