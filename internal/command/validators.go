// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// ArgCountValidator fails unless cmd has exactly n positional args.
func ArgCountValidator(ctx context.Context, cmd *cli.Command, n int) error {
	if got := cmd.Args().Len(); got != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", cmd.Name, n, got)
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

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	for _, v := range validOutputFlagValues {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", validOutputFlagValues)
}
