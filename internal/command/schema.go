// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pengdash/internal/meta"
	"github.com/staranto/pengdash/internal/output"
)

func SchemaCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	if ShortCircuitTLDR(ctx, cmd, "schema") {
		return nil
	}

	t, err := LoadDataset(ctx, cmd)
	if err != nil {
		return err
	}

	output.DumpSchema(t, cmd.String("group"), writer(cmd))
	return nil
}

func SchemaCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&DashboardCommandBuilder{
		Name:      "schema",
		Usage:     "describe the dataset columns and groups",
		UsageText: `pengdash schema [--data spec]`,
		Action:    SchemaCommandAction,
		Meta:      meta,
	}).Build()
}
