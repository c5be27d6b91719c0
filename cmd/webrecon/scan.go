package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"webrecon/internal/config"
	"webrecon/internal/log"
	"webrecon/internal/metrics"
	"webrecon/internal/model"
	"webrecon/internal/process"
	"webrecon/internal/report"
	"webrecon/internal/service"
)

// newRunner is replaced in tests so no external tool is spawned.
var newRunner = func() process.Runner { return process.NewExecRunner() }

var errConflictingFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Run every collector against one or more target URLs",
		Long: `Scan fetches each target and reports, in this order:
- page metadata (title, description, keywords, headings, paragraphs, links, images)
- phone numbers found in the page
- subdomains reported by the subdomain tool
- paths reported as found by the directory scan tool

Without arguments the target URL is read from standard input.

Settings are read from the environment and an optional .env file; flags win.

Examples:
  webrecon scan https://example.com
  webrecon scan --dedupe --phone-source both https://example.com
  webrecon scan --json -o out/report.json https://example.com https://example.org`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	cmd.Flags().String("env-file", config.DefaultEnvFile, "Environment file to load")

	cmd.Flags().DurationP("timeout", "t", 0, "Overall run timeout per target (0 = none)")
	cmd.Flags().Duration("fetch-timeout", 0, "HTTP fetch timeout")
	cmd.Flags().String("subdomain-tool", "", "Subdomain enumeration tool")
	cmd.Flags().String("dirscan-tool", "", "Directory brute-force tool")
	cmd.Flags().Bool("dedupe", false, "Drop duplicate subdomains and folders")
	cmd.Flags().String("phone-source", "", "What to scan for phone numbers: html, text or both")

	cmd.Flags().BoolP("json", "j", false, "Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus text-format metrics to this file after the run")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	log.InitLogger(getVerboseFlag(cmd))
	defer log.Sync()

	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}
	cfg, err := config.LoadEnv(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	format, err := reportFormat(cmd)
	if err != nil {
		return err
	}

	targets := args
	if len(targets) == 0 {
		target, err := promptTarget(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		targets = []string{target}
	}

	out := cmd.OutOrStdout()
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if outputPath != "" {
		f, err := createOutputFile(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	writer, err := report.NewWriter(format, out)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := service.NewFromConfig(cfg, newRunner())
	scanErr := runScan(ctx, svc, targets, cfg, writer, out)

	metricsPath, err := cmd.Flags().GetString("metrics-file")
	if err != nil {
		return err
	}
	if metricsPath != "" {
		if err := metrics.WriteTextfile(metricsPath); err != nil {
			log.Logger.Error("failed to write metrics file", zap.String("path", metricsPath), zap.Error(err))
			return errors.Join(scanErr, fmt.Errorf("failed to write metrics file: %w", err))
		}
	}

	return scanErr
}

// runScan reconnoitres each target in turn and writes one report per target.
// Invalid targets still get a report; their errors are joined and returned.
func runScan(ctx context.Context, svc *service.Service, targets []string, cfg *config.Config, writer report.Writer, out io.Writer) error {
	var errs []error
	for i, target := range targets {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		result, err := runOne(ctx, svc, target, cfg)
		if err != nil {
			errs = append(errs, err)
		}

		if i > 0 {
			if _, werr := io.WriteString(out, "\n"); werr != nil {
				return werr
			}
		}
		if werr := writer.Write(result); werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
	}
	return errors.Join(errs...)
}

func runOne(ctx context.Context, svc *service.Service, target string, cfg *config.Config) (*model.ReconResult, error) {
	if cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()
	}
	return svc.Run(ctx, target)
}

// applyFlags overrides configuration with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("timeout") {
		if cfg.RunTimeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("fetch-timeout") {
		if cfg.FetchTimeout, err = flags.GetDuration("fetch-timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("subdomain-tool") {
		if cfg.SubdomainTool, err = flags.GetString("subdomain-tool"); err != nil {
			return err
		}
	}
	if flags.Changed("dirscan-tool") {
		if cfg.DirscanTool, err = flags.GetString("dirscan-tool"); err != nil {
			return err
		}
	}
	if flags.Changed("dedupe") {
		if cfg.Dedupe, err = flags.GetBool("dedupe"); err != nil {
			return err
		}
	}
	if flags.Changed("phone-source") {
		if cfg.PhoneSource, err = flags.GetString("phone-source"); err != nil {
			return err
		}
	}
	return nil
}

func reportFormat(cmd *cobra.Command) (string, error) {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return "", err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return "", err
	}
	switch {
	case jsonOut && markdownOut:
		return "", errConflictingFormats
	case jsonOut:
		return report.FormatJSON, nil
	case markdownOut:
		return report.FormatMarkdown, nil
	default:
		return report.FormatText, nil
	}
}

// promptTarget asks for a single URL on in.
func promptTarget(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Please enter the website URL: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read target: %w", err)
	}
	fmt.Fprintln(out)
	return strings.TrimSpace(line), nil
}

func createOutputFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
