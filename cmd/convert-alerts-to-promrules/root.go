package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alertconv/alertconv/internal/config"
	"github.com/alertconv/alertconv/internal/converter"
	"github.com/alertconv/alertconv/internal/metrics"
	"github.com/alertconv/alertconv/internal/promrule"
	"github.com/alertconv/alertconv/internal/version"
)

const outputFileMode = 0o644

func newRootCommand() *cobra.Command {
	opts := config.New()
	cmd := &cobra.Command{
		Use:   "convert-alerts-to-promrules",
		Short: "Convert heimdall Alert documents into PrometheusRule documents",
		Long: `Reads a stream of heimdall Alert YAML documents and writes one
prometheus-operator PrometheusRule document per Alert, in input order.

  convert-alerts-to-promrules < alerts.yaml > rules.yaml

Any malformed document or missing required field fails the whole batch and
nothing is written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			if opts.PrintVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.Get())
				return nil
			}
			setupLogging(cmd.ErrOrStderr(), opts)
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// setupLogging installs the default slog logger on stderr; stdout carries
// the YAML stream.
func setupLogging(w io.Writer, opts *config.Options) {
	lvl, _ := opts.Level()
	handlerOpts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler = slog.NewTextHandler(w, handlerOpts)
	if opts.LogFormat == "json" {
		h = slog.NewJSONHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(h))
}

func run(stdin io.Reader, stdout io.Writer, opts *config.Options) error {
	stats := metrics.NewRun(time.Now())
	if opts.MetricsFile != "" {
		defer func() {
			stats.Duration = time.Since(stats.Started)
			if err := metrics.WriteFile(opts.MetricsFile, stats); err != nil {
				slog.Warn("metrics: write failed", "path", opts.MetricsFile, "err", err)
			}
		}()
	}

	in, err := openInput(opts.Input, stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	rules, err := converter.ConvertAll(in)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := promrule.WriteAll(&buf, rules); err != nil {
		return err
	}
	if err := writeOutput(opts.Output, stdout, buf.Bytes()); err != nil {
		return err
	}

	stats.Observe(rules)
	slog.Info("converted alerts", "rules", len(rules), "input", opts.Input, "output", opts.Output)
	return nil
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == config.StdStream {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == config.StdStream {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, outputFileMode); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
