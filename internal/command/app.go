// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cashgo/internal/config"
	"github.com/staranto/cashgo/internal/meta"
)

// InitApp builds the cash command tree for args, writing to the process's
// stdout and stderr.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	// A missing config file is normal; flags fall back to env and defaults.
	cfg, _ := config.Load()

	return NewApp(meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}), nil
}

// NewApp builds the command tree around m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "cash",
		Usage: "persistent key/value cache",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "cash version info",
				HideDefault: true,
			},
		},
		Writer:    m.Stdout,
		ErrWriter: m.Stderr,
	}

	app.Commands = append(app.Commands,
		GetCommandBuilder(app, m),
		SetCommandBuilder(app, m),
		DelCommandBuilder(app, m),
		LsCommandBuilder(app, m),
		ResetCommandBuilder(app, m),
		RunCommandBuilder(app, m),
		CompletionCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
