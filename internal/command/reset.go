// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	cash "github.com/staranto/cashgo"
	"github.com/staranto/cashgo/internal/meta"
)

// ResetCommandAction removes the cache file.
func ResetCommandAction(ctx context.Context, cmd *cli.Command) error {
	return withCache(ctx, cmd, func(ctx context.Context, c *cash.Cache) error {
		return c.Reset(ctx)
	})
}

func ResetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "reset",
		Usage:     "remove every entry and the cache file",
		UsageText: "cash reset [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: NewGlobalFlags("reset", meta.Config.Source),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := ArgCountValidator(ctx, c, 0); err != nil {
				return err
			}
			return ResetCommandAction(ctx, c)
		},
	}
}
