// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"slices"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pengdash/internal/config"
	pdlog "github.com/staranto/pengdash/internal/log"
	"github.com/staranto/pengdash/internal/meta"
	"github.com/staranto/pengdash/internal/tui"
)

var panels = []string{"table", "grid", "hist", "scatter"}

func TuiCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	if ShortCircuitTLDR(ctx, cmd, "tui") {
		return nil
	}

	d, err := LoadDashboard(ctx, cmd)
	if err != nil {
		return err
	}

	// The screen belongs to bubbletea from here on.
	if !pdlog.ToFile() {
		pdlog.Quiet(io.Discard)
	}

	title, _ := config.GetString("title", DefaultTitle)
	return tui.Run(ctx, d, tui.Options{
		Title: title,
		Panel: max(slices.Index(panels, cmd.String("panel")), 0),
	})
}

func TuiCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&DashboardCommandBuilder{
		Name:      "tui",
		Usage:     "interactive dashboard",
		UsageText: `pengdash tui [options]`,
		Flags: []cli.Flag{
			NameSpacedValueChainFlagFromConfigFile("tui", cfg.Source, &cli.StringFlag{
				Name:  "panel",
				Usage: "panel shown first (table, grid, hist, scatter)",
				Value: "table",
			}),
		},
		Action:     TuiCommandAction,
		Meta:       meta,
		ChartFlags: true,
	}).Build()
}
