// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pengdash/internal/config"
	"github.com/staranto/pengdash/internal/dashboard"
	"github.com/staranto/pengdash/internal/meta"
	"github.com/staranto/pengdash/internal/output"
)

// DefaultTitle is the page title printed above the views with --titles.
const DefaultTitle = "Penguin Data"

var showExamples = [][2]string{
	{"pengdash show", "all views for the default selection"},
	{"pengdash show --species Adelie,Gentoo --view hist,scatter", "two species, charts only"},
	{"pengdash show --view table --filter 'body_mass_g>4000' --sort -body_mass_g", "heavy penguins, heaviest first"},
	{"pengdash show --attribute flipper_length_mm --bins 10 --view hist", "flipper length distribution"},
	{"pengdash show --data s3://bucket/penguins.csv -o json", "remote dataset as JSON"},
}

func ShowCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "show") {
		return nil
	}
	if cmd.Bool("examples") {
		output.DumpExamples(writer(cmd), showExamples)
		return nil
	}

	d, err := LoadDashboard(ctx, cmd)
	if err != nil {
		return err
	}

	if DumpSchemaIfRequested(cmd, d.Base()) {
		return nil
	}

	w := writer(cmd)
	opts := output.OptionsFromCommand(cmd)

	filtered, err := d.FilteredData()
	if err != nil {
		return err
	}

	// Structured output has no charts. Emit the filtered records and be done.
	if opts.Output != "text" {
		return output.SliceDiceSpit(filtered, opts, w)
	}

	if opts.Titles {
		title, _ := config.GetString("title", DefaultTitle)
		fmt.Fprintf(w, "%s -- %s\n\n", title, d.Selection().Get())
	}

	palette := output.NewPalette(d.Selection().Groups())
	for _, view := range splitList([]string{cmd.String("view")}) {
		if err := showView(d, view, palette, opts, cmd); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{"hits": d.Stats().Hits, "recomputes": d.Stats().Recomputes}).Debug("filtered view cache")
	return nil
}

func showView(d *dashboard.Dashboard, view string, palette output.Palette, opts output.Options, cmd *cli.Command) error {
	w := writer(cmd)

	switch view {
	case ViewTable, ViewGrid:
		filtered, err := d.FilteredData()
		if err != nil {
			return err
		}
		opts.Layout = output.LayoutTable
		if view == ViewGrid {
			opts.Layout = output.LayoutGrid
		}
		if err := output.SliceDiceSpit(filtered, opts, w); err != nil {
			return err
		}
	case ViewHist:
		h, err := d.AttributeHistogram()
		if err != nil {
			return err
		}
		output.HistogramWriter(h, palette, opts, w)
	case ViewMass:
		h, err := d.MassHistogram()
		if err != nil {
			return err
		}
		output.HistogramWriter(h, palette, opts, w)
	case ViewScatter:
		points, err := d.Scatter()
		if err != nil {
			return err
		}
		output.ScatterWriter(points, dashboard.ScatterX, dashboard.ScatterY, palette, opts, w)
	default:
		return fmt.Errorf("unknown view %q", view)
	}

	fmt.Fprintln(w)
	return nil
}

func ShowCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&DashboardCommandBuilder{
		Name:      "show",
		Usage:     "render the dashboard views to stdout",
		UsageText: `pengdash show [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "view",
				Aliases: []string{"V"},
				Usage:   "comma-separated views: " + strings.Join(validViews, ","),
				Value:   strings.Join(validViews, ","),
				Validator: func(value string) error {
					return FlagValidators(value, ViewValidator)
				},
			},
			&cli.BoolFlag{
				Name:        "examples",
				Usage:       "show usage examples",
				HideDefault: true,
			},
		},
		Action:      ShowCommandAction,
		Meta:        meta,
		GlobalFlags: true,
		ChartFlags:  true,
	}).Build()
}
