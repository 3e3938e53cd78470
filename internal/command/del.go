// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	cash "github.com/staranto/cashgo"
	"github.com/staranto/cashgo/internal/meta"
)

// DelCommandAction removes every key given. Absent keys are ignored.
func DelCommandAction(ctx context.Context, cmd *cli.Command) error {
	return withCache(ctx, cmd, func(ctx context.Context, c *cash.Cache) error {
		for _, key := range cmd.Args().Slice() {
			if err := c.Del(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

func DelCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "del",
		Aliases:   []string{"rm"},
		Usage:     "delete keys",
		UsageText: "cash del [options] KEY...",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: NewGlobalFlags("del", meta.Config.Source),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return ArgCountValidator(ctx, c, 1)
			}
			return DelCommandAction(ctx, c)
		},
	}
}
