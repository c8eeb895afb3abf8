// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"code.hybscloud.com/membench"
	"code.hybscloud.com/membench/report"
)

// errCancelled is returned when the run was interrupted.
var errCancelled = errors.New("run cancelled")

func newRunCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	opts := defaultOptions()
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a memory throughput benchmark",
		Long: `Allocate one buffer per thread, fill it, then time the configured
operation over every buffer for the given number of passes.

Values from --config are applied first; flags given on the command line
take precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := loadOptions(configPath, cmd.Flags(), opts)
			if err != nil {
				return err
			}
			return runBenchmark(cmd, logger(cmd), resolved)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "",
		"YAML file with run options")
	opts.addFlags(flags)

	return cmd
}

func runBenchmark(cmd *cobra.Command, logger *slog.Logger, opts runOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	platform := membench.DetectPlatform()
	cfg := opts.config()

	logger.InfoContext(ctx, "starting benchmark",
		slog.Int("threads", cfg.Threads),
		slog.Int("passes", cfg.Passes),
		slog.String("memory", humanize.IBytes(uint64(cfg.MemorySize))),
		slog.String("operation", cfg.Operation.String()),
		slog.String("init", cfg.Init.String()),
		slog.String("strategy", cfg.Strategy.String()),
		slog.Int("page_size", platform.PageSize),
		slog.String("features", platform.Features.String()),
	)

	bench, err := cfg.Start(platform)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	w := newWatcher(bench, logger, cmd.ErrOrStderr(), opts.Progress && !opts.JSON)
	results, waitErr := w.wait(ctx)
	cancelled := waitErr != nil || bench.Progress().StopRequested()

	run := report.Run{
		Config:    cfg,
		Platform:  platform,
		Results:   results,
		Cancelled: cancelled,
	}
	if opts.JSON {
		err = report.GenerateJSON(cmd.OutOrStdout(), run)
	} else {
		err = report.Generate(cmd.OutOrStdout(), run)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cancelled {
		logger.WarnContext(ctx, "benchmark cancelled", slog.Int("samples", len(results)))
		return errCancelled
	}

	sum := membench.Summarize(results)
	logger.InfoContext(ctx, "benchmark complete",
		slog.Int("samples", sum.Samples),
		slog.Duration("mean_runtime", sum.Total.Runtime),
		slog.String("throughput", formatRate(sum.Total.Throughput())),
	)

	return nil
}

func formatRate(bps float64) string {
	if math.IsNaN(bps) || math.IsInf(bps, 0) || bps < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(bps)) + "/s"
}
