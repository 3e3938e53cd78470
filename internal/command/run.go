// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	cash "github.com/staranto/cashgo"
	"github.com/staranto/cashgo/internal/meta"
)

// runKeyPrefix namespaces memoized command output within the cache.
const runKeyPrefix = "run:"

// RunCommandAction runs the command line after "--" and prints its stdout.
// The output is memoized under the command line, so a repeat within --ttl is
// answered from the cache without running anything.
func RunCommandAction(ctx context.Context, cmd *cli.Command) error {
	argv := cmd.Args().Slice()

	return withCache(ctx, cmd, func(ctx context.Context, c *cash.Cache) error {
		run := cash.Memoize(c, func(ctx context.Context, argv []string) (string, error) {
			log.WithField("argv", argv).Debug("running")
			x := exec.CommandContext(ctx, argv[0], argv[1:]...)
			x.Stderr = os.Stderr
			out, err := x.Output()
			if err != nil {
				return "", fmt.Errorf("%s: %w", argv[0], err)
			}
			return string(out), nil
		}, cash.MemoizeOptions[[]string, string]{
			Serialize: func(argv []string) string {
				return runKeyPrefix + strings.Join(argv, " ")
			},
			TTL: cash.FixedTTL[string](cmd.Duration("ttl")),
		})

		out, err := run(ctx, argv)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(Stdout(cmd), out)
		return err
	})
}

func RunCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run a command, caching its output",
		UsageText: "cash run [options] -- COMMAND [ARGS...]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewTTLFlag("run", meta.Config.Source),
		}, NewGlobalFlags("run", meta.Config.Source)...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return fmt.Errorf("%s: no command given", c.Name)
			}
			return RunCommandAction(ctx, c)
		},
	}
}
