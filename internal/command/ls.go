// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	cash "github.com/staranto/cashgo"
	"github.com/staranto/cashgo/internal/meta"
	"github.com/staranto/cashgo/internal/output"
)

// LsCommandAction lists the entries in the cache. Listing never expires or
// deletes anything; --expired includes entries a get would drop.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	now := time.Now()
	if clock := GetMeta(cmd).Clock; clock != nil {
		now = clock()
	}

	return withCache(ctx, cmd, func(ctx context.Context, c *cash.Cache) error {
		entries, err := c.Entries(ctx)
		if err != nil {
			return err
		}

		w := Stdout(cmd)
		rows := output.Rows(entries, now, cmd.Bool("expired"))
		return output.Spit(w, rows, cmd.String("output"), output.TableOptions{
			Color:  cmd.Bool("color") && colorize(w),
			Titles: cmd.Bool("titles"),
			Now:    now,
		})
	})
}

func LsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "list cached entries",
		UsageText: "cash ls [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "expired",
				Aliases:     []string{"x"},
				Usage:       "include expired entries",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format (text, json, yaml)",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("ls.output", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("output", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: "text",
				Validator: func(value string) error {
					return FlagValidators(value, OutputValidator)
				},
			},
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored text output on a terminal",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("color", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: true,
			},
			&cli.BoolWithInverseFlag{
				Name:    "titles",
				Usage:   "show titles with text output",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("titles", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: true,
			},
		}, NewGlobalFlags("ls", meta.Config.Source)...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := ArgCountValidator(ctx, c, 0); err != nil {
				return err
			}
			return LsCommandAction(ctx, c)
		},
	}
}
