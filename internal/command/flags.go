// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pengdash/internal/config"
	"github.com/staranto/pengdash/internal/dashboard"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.Type

	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the dataset schema",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of columns to include in results",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"attrs", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewDataFlags constructs the flags that choose and slice the base dataset:
// where it comes from, the group column and the initial selection.
func NewDataFlags(params ...string) []cli.Flag {
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(params[0], cfg.Source, &cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "dataset to load: embedded, a .csv/.json path or s3://bucket/key",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("PENGDASH_DATA"),
			),
			Value: "embedded",
		}),
		NameSpacedValueChainFlagFromConfigFile(params[0], cfg.Source, &cli.StringFlag{
			Name:   "group",
			Usage:  "categorical column the selection applies to",
			Hidden: true,
			Value:  dashboard.DefaultGroupColumn,
		}),
		&cli.StringSliceFlag{
			Name:    "species",
			Aliases: []string{"g"},
			Usage:   "species to include, repeatable or comma-separated. Defaults to defaults.species from config",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("PENGDASH_SPECIES"),
			),
			Validator: func(values []string) error {
				for _, v := range values {
					if err := FlagValidators(v, JammedFlagValidator); err != nil {
						return err
					}
				}
				return nil
			},
		},
		NameSpacedValueChainFlagFromConfigFile(params[0], cfg.Source, &cli.StringFlag{
			Name:  "profile",
			Usage: "AWS profile for s3:// datasets",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_PROFILE"),
			),
		}),
		NameSpacedValueChainFlagFromConfigFile(params[0], cfg.Source, &cli.StringFlag{
			Name:  "region",
			Usage: "AWS region for s3:// datasets",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_REGION"),
			),
		}),
		NameSpacedValueChainFlagFromConfigFile(params[0], cfg.Source, &cli.StringFlag{
			Name:  "endpoint",
			Usage: "S3-compatible endpoint for s3:// datasets",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("PENGDASH_S3_ENDPOINT"),
			),
		}),
	}
}

// NewChartFlags constructs the flags that drive the histogram views.
func NewChartFlags(params ...string) []cli.Flag {
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(params[0], cfg.Source, &cli.StringFlag{
			Name:  "attribute",
			Usage: "numeric column for the attribute histogram",
			Value: dashboard.DefaultAttribute,
			Validator: func(value string) error {
				return FlagValidators(value, AttributeValidator)
			},
		}),
		&cli.IntFlag{
			Name:  "bins",
			Usage: "attribute histogram bin count (1-15)",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"bins", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("bins", altsrc.StringSourcer(cfg.Source)),
			),
			Value: dashboard.DefaultAttributeBins,
			Validator: func(value int) error {
				return RangeValidator(value, dashboard.MinAttributeBins, dashboard.MaxAttributeBins)
			},
		},
		&cli.IntFlag{
			Name:  "mass-bins",
			Usage: "body mass histogram bin count (1-100)",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"mass-bins", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("mass-bins", altsrc.StringSourcer(cfg.Source)),
			),
			Value: dashboard.DefaultMassBins,
			Validator: func(value int) error {
				return RangeValidator(value, dashboard.MinMassBins, dashboard.MaxMassBins)
			},
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas reports whether target is on the PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
