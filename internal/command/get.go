// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	cash "github.com/staranto/cashgo"
	"github.com/staranto/cashgo/internal/meta"
	"github.com/staranto/cashgo/internal/output"
)

// GetCommandAction prints the value stored under the key argument, narrowed
// by --path when given. A missing or expired key is an error.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Args().First()

	return withCache(ctx, cmd, func(ctx context.Context, c *cash.Cache) error {
		raw, ok, err := c.Get(ctx, key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: not found", key)
		}

		out, ok := output.Extract(raw, cmd.String("path"))
		if !ok {
			return fmt.Errorf("%s: path %q not found", key, cmd.String("path"))
		}
		_, err = fmt.Fprintln(Stdout(cmd), out)
		return err
	})
}

func GetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "print a cached value",
		UsageText: "cash get [options] KEY",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "gjson path selecting part of the value, e.g. items.0.name",
			},
		}, NewGlobalFlags("get", meta.Config.Source)...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := ArgCountValidator(ctx, c, 1); err != nil {
				return err
			}
			return GetCommandAction(ctx, c)
		},
	}
}
