// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"code.hybscloud.com/iox"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"code.hybscloud.com/membench"
)

const (
	redrawInterval = 100 * time.Millisecond
	minBarWidth    = 10
	defaultWidth   = 80
)

var (
	phaseStyle     = lipgloss.NewStyle().Bold(true)
	cancelledStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
)

// renderLine formats a one-line progress indicator fitting width columns.
func renderLine(s membench.Snapshot[membench.State], width int) string {
	label := s.PhaseLabel()
	if s.Cancelled {
		label = cancelledStyle.Render(label)
	} else {
		label = phaseStyle.Render(label)
	}

	fraction := s.Fraction()
	if math.IsNaN(fraction) {
		fraction = 0
	}
	fraction = min(max(fraction, 0), 1)
	percent := fmt.Sprintf("%3.0f%%", 100*fraction)

	barWidth := max(width-lipgloss.Width(label)-lipgloss.Width(percent)-4, minBarWidth)
	filled := int(fraction * float64(barWidth))
	bar := barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barWidth-filled))

	return label + " [" + bar + "] " + percent
}

// watcher observes a running benchmark until every worker has exited.
type watcher struct {
	bench  *membench.Bench
	logger *slog.Logger
	out    io.Writer // live line destination, nil to disable
	width  int
}

func newWatcher(bench *membench.Bench, logger *slog.Logger, stderr io.Writer, live bool) *watcher {
	w := &watcher{bench: bench, logger: logger}
	if !live {
		return w
	}
	f, ok := stderr.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return w
	}
	w.out = f
	w.width = defaultWidth
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
		w.width = cols
	}
	return w
}

// wait polls the benchmark, logging phase changes and redrawing the live
// line, until the run finishes or ctx is cancelled. Cancellation stops the
// workers and still waits for them to exit.
func (w *watcher) wait(ctx context.Context) ([]membench.TestResult, error) {
	progress := w.bench.Progress()
	backoff := iox.Backoff{}
	var lastDraw time.Time
	last := progress.LoadState()
	w.logger.DebugContext(ctx, "phase", slog.String("state", last.String()))

	for {
		results, err := w.bench.TryResults()
		if err == nil {
			w.draw(progress.Load(), true)
			return results, nil
		}
		if !iox.IsWouldBlock(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			w.logger.WarnContext(ctx, "cancelling run")
			results, err := w.bench.Wait(ctx)
			w.draw(progress.Load(), true)
			return results, err
		}

		s := progress.Load()
		if s.State != last {
			last = s.State
			backoff.Reset()
			w.logger.DebugContext(ctx, "phase",
				slog.String("state", last.String()),
				slog.Int("waiting", s.Waiting),
			)
		}
		if time.Since(lastDraw) >= redrawInterval {
			w.draw(s, false)
			lastDraw = time.Now()
		}
		backoff.Wait()
	}
}

func (w *watcher) draw(s membench.Snapshot[membench.State], final bool) {
	if w.out == nil {
		return
	}
	fmt.Fprint(w.out, "\r\x1b[2K"+renderLine(s, w.width))
	if final {
		fmt.Fprintln(w.out)
	}
}
