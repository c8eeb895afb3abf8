// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"code.hybscloud.com/membench"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	disabledStyle = lipgloss.NewStyle().Faint(true)
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List access strategies and whether this CPU supports them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeStrategies(cmd.OutOrStdout(), membench.DetectPlatform().Features)
		},
	}
}

func writeStrategies(w io.Writer, f membench.Features) error {
	cell := lipgloss.NewStyle().PaddingRight(2)
	fmt.Fprintln(w, headerStyle.Render(
		cell.Width(12).Render("KEY")+cell.Width(16).Render("STRATEGY")+cell.Width(10).Render("WIDTH")+"STATUS"))

	for _, s := range membench.Strategies() {
		status := enabledStyle.Render("available")
		if !s.Enabled(f) {
			status = disabledStyle.Render("unsupported")
		}
		_, err := fmt.Fprintln(w,
			cell.Width(12).Render(s.Key())+
				cell.Width(16).Render(s.String())+
				cell.Width(10).Render(fmt.Sprintf("%d B", s.Width()))+
				status)
		if err != nil {
			return err
		}
	}
	return nil
}

func newPlatformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Show the page size and CPU features membench detected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writePlatform(cmd.OutOrStdout(), membench.DetectPlatform())
		},
	}
}

func writePlatform(w io.Writer, p membench.Platform) error {
	_, err := fmt.Fprintf(w, "%s %s\n%s %s\n%s %s\n",
		headerStyle.Render("page size:"), humanize.IBytes(uint64(p.PageSize)),
		headerStyle.Render("chunk size:"), humanize.IBytes(uint64(p.ChunkSize())),
		headerStyle.Render("features:"), p.Features,
	)
	return err
}
