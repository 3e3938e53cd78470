// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// cash is the command line front end to the cash persistent cache.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/staranto/cashgo/internal/command"
	mylog "github.com/staranto/cashgo/internal/log"
	"github.com/staranto/cashgo/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v, but only ahead of the subcommand so that
	// values passed to set are left alone.
	if a := args[1]; a == "--version" || a == "-v" {
		fmt.Println(version.Version)
		return 0
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log.Debugf("args=%v", args)
	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}
