// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command membench measures memory throughput from the command line.
//
// Usage:
//
//	membench run --threads 8 --memory 1GiB --operation write --strategy avx2
//	membench run --config bench.yaml --passes 10
//	membench strategies
//	membench platform
//
// Interrupting a run with Ctrl-C cancels it: workers stop after their
// current chunk and the report shows the run as cancelled.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "membench:", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	verbose bool
	logJSON bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "membench",
		Short: "Concurrent memory throughput benchmark",
		Long: `Membench allocates one buffer per worker thread and measures how fast
the workers can read, write or copy them using general purpose registers
or streaming SIMD instructions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&g.verbose, "verbose", "v", false,
		"Log phase transitions and other debug output")
	flags.BoolVar(&g.logJSON, "log-json", false,
		"Write logs as JSON instead of text")

	logger := func(cmd *cobra.Command) *slog.Logger {
		return newLogger(cmd.ErrOrStderr(), g)
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newStrategiesCmd())
	root.AddCommand(newPlatformCmd())

	return root
}

func newLogger(w io.Writer, g globalFlags) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if g.verbose {
		options.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if g.logJSON {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}

	return slog.New(handler)
}
