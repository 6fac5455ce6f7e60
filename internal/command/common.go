// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pengdash/internal/aws"
	"github.com/staranto/pengdash/internal/config"
	"github.com/staranto/pengdash/internal/dashboard"
	"github.com/staranto/pengdash/internal/dataset"
	"github.com/staranto/pengdash/internal/meta"
	"github.com/staranto/pengdash/internal/output"
	"github.com/staranto/pengdash/internal/table"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr pengdash <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "pengdash", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the schema of t when --schema is set, and
// returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t *table.Table) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t, cmd.String("group"), writer(cmd))
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer is where command output goes. Tests swap the root Writer.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// LoadDataset reads the base dataset named by --data. Relative paths resolve
// against the starting directory.
func LoadDataset(ctx context.Context, cmd *cli.Command) (*table.Table, error) {
	spec := cmd.String("data")
	if spec != "" && spec != dataset.EmbeddedName && !strings.HasPrefix(spec, "s3://") && !filepath.IsAbs(spec) {
		if sd := GetMeta(cmd).StartingDir; sd != "" {
			spec = filepath.Join(sd, spec)
		}
	}

	var awsOpts []aws.Option
	if p := cmd.String("profile"); p != "" {
		awsOpts = append(awsOpts, aws.WithProfile(p))
	}
	if r := cmd.String("region"); r != "" {
		awsOpts = append(awsOpts, aws.WithRegion(r))
	}

	opts := []dataset.Option{dataset.WithAWSOptions(awsOpts...)}
	if e := cmd.String("endpoint"); e != "" {
		opts = append(opts, dataset.WithS3Options(aws.WithBaseEndpoint(e), aws.WithPathStyle()))
	}

	return dataset.Load(ctx, spec, opts...)
}

// InitialSelection resolves the starting species selection. --species wins,
// then defaults.species from the config file, then the built-in default.
func InitialSelection(cmd *cli.Command) []string {
	if cmd.IsSet("species") {
		return splitList(cmd.StringSlice("species"))
	}

	species, err := config.GetStringSlice("defaults.species", dashboard.DefaultSelection)
	if err != nil {
		log.WithError(err).Warn("ignoring defaults.species")
		return dashboard.DefaultSelection
	}
	return splitList(species)
}

// LoadDashboard loads the dataset and builds the Dashboard configured by the
// command's flags.
func LoadDashboard(ctx context.Context, cmd *cli.Command) (*dashboard.Dashboard, error) {
	base, err := LoadDataset(ctx, cmd)
	if err != nil {
		return nil, err
	}

	opts := []dashboard.Option{
		dashboard.WithGroupColumn(cmd.String("group")),
		dashboard.WithDefaultSelection(InitialSelection(cmd)...),
	}
	if groups, err := config.GetStringSlice("defaults.groups"); err == nil {
		opts = append(opts, dashboard.WithGroups(splitList(groups)...))
	}
	if cmd.String("attribute") != "" {
		opts = append(opts, dashboard.WithAttribute(cmd.String("attribute")))
	}
	opts = append(opts, dashboard.WithBins(cmd.Int("bins"), cmd.Int("mass-bins")))

	return dashboard.New(base, opts...)
}

// splitList flattens comma-separated entries and drops blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// DashboardCommandBuilder is a helper that constructs a cli.Command for the
// subcommands that work on a Dashboard (show, tui, schema) using a consistent
// pattern. The builder wires metadata, adds the tldr flag and the data flags,
// and sets up validators. Global output and chart flags are opt in.
type DashboardCommandBuilder struct {
	Name        string
	Usage       string
	UsageText   string
	Flags       []cli.Flag
	Action      func(context.Context, *cli.Command) error
	Meta        meta.Meta
	GlobalFlags bool
	ChartFlags  bool
}

// Build returns a configured cli.Command from the builder.
func (dcb *DashboardCommandBuilder) Build() *cli.Command {
	flags := append(dcb.Flags, tldrFlag)
	flags = append(flags, NewDataFlags(dcb.Name)...)
	if dcb.GlobalFlags {
		flags = append(flags, schemaFlag)
		flags = append(flags, NewGlobalFlags(dcb.Name)...)
	}
	if dcb.ChartFlags {
		flags = append(flags, NewChartFlags(dcb.Name)...)
	}

	return &cli.Command{
		Name:      dcb.Name,
		Usage:     dcb.Usage,
		UsageText: dcb.UsageText,
		Metadata: map[string]any{
			"meta": dcb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: dcb.Action,
	}
}
