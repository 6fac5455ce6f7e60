// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/pengdash/internal/dashboard"
)

// Views that show can render.
const (
	ViewTable   = "table"
	ViewGrid    = "grid"
	ViewHist    = "hist"
	ViewMass    = "mass"
	ViewScatter = "scatter"
)

var validViews = []string{ViewTable, ViewGrid, ViewHist, ViewMass, ViewScatter}

// GlobalFlagsValidator checks combinations of flags that the individual flag
// validators cannot see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("schema") && c.String("output") != "text" {
		return errors.New("--schema only supports --output text")
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func MustBeTrueValidator(value any) error {
	if !value.(bool) {
		return errors.New("must be true")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	if !slices.Contains(validOutputFlagValues, value.(string)) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// ViewValidator accepts a comma-separated list of view names.
func ViewValidator(value any) error {
	for _, v := range strings.Split(value.(string), ",") {
		if !slices.Contains(validViews, strings.TrimSpace(v)) {
			return fmt.Errorf("%q must be one of %v", v, validViews)
		}
	}
	return nil
}

func AttributeValidator(value any) error {
	if !slices.Contains(dashboard.Attributes, value.(string)) {
		return fmt.Errorf("must be one of %v", dashboard.Attributes)
	}
	return nil
}

func RangeValidator(value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return nil
}
