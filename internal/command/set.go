// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	cash "github.com/staranto/cashgo"
	"github.com/staranto/cashgo/internal/differ"
	"github.com/staranto/cashgo/internal/meta"
)

// SetCommandAction stores the value argument under the key argument. With
// --diff the change against the previous value is printed.
func SetCommandAction(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Args().Get(0)
	value, err := ParseValue(cmd.Args().Get(1), cmd.Bool("string"))
	if err != nil {
		return fmt.Errorf("failed to parse value: %w", err)
	}

	return withCache(ctx, cmd, func(ctx context.Context, c *cash.Cache) error {
		var previous []byte
		if cmd.Bool("diff") {
			prev, _, err := c.Get(ctx, key)
			if err != nil {
				return err
			}
			previous = prev
		}

		if _, err := c.Set(ctx, key, value, cash.WithTTL(cmd.Duration("ttl"))); err != nil {
			return err
		}
		log.WithField("key", key).Debug("value set")

		if !cmd.Bool("diff") {
			return nil
		}

		w := Stdout(cmd)
		out, modified, err := differ.Diff(previous, value, colorize(w))
		if err != nil {
			return err
		}
		if modified {
			_, err = fmt.Fprint(w, out)
		}
		return err
	})
}

func SetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "store a value",
		UsageText: "cash set [options] KEY VALUE",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewTTLFlag("set", meta.Config.Source),
			&cli.BoolFlag{
				Name:        "string",
				Aliases:     []string{"s"},
				Usage:       "store VALUE as a string even if it is valid JSON",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "diff",
				Aliases:     []string{"d"},
				Usage:       "print the difference from the previous value",
				HideDefault: true,
			},
		}, NewGlobalFlags("set", meta.Config.Source)...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := ArgCountValidator(ctx, c, 2); err != nil {
				return err
			}
			return SetCommandAction(ctx, c)
		},
	}
}
