// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	cash "github.com/staranto/cashgo"
	"github.com/staranto/cashgo/internal/cacheutil"
	"github.com/staranto/cashgo/internal/meta"
	"github.com/staranto/cashgo/internal/output"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// OpenCache builds a cash.Cache from the global flags of cmd. --global wins
// over --file; a relative --file is resolved against the starting directory.
func OpenCache(cmd *cli.Command) (*cash.Cache, error) {
	m := GetMeta(cmd)

	path := cmd.String("file")
	if cmd.Bool("global") {
		p, err := cacheutil.GlobalFile()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if path == "" {
		path = cash.DefaultFilename
	}
	if !filepath.IsAbs(path) && m.StartingDir != "" {
		path = filepath.Join(m.StartingDir, path)
	}

	log.WithFields(log.Fields{
		"file":     path,
		"encoding": cmd.String("encoding"),
		"dev":      cmd.Bool("dev"),
	}).Debug("opening cache")

	c, err := cash.New(cash.Options{
		Filepath: path,
		Encoding: cmd.String("encoding"),
		Dev:      cmd.Bool("dev"),
		Clock:    m.Clock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return c, nil
}

// ParseValue turns a command line argument into the JSON to store. Valid
// JSON is kept as is unless asString is set; anything else is stored as a
// JSON string.
func ParseValue(arg string, asString bool) (json.RawMessage, error) {
	if !asString && json.Valid([]byte(arg)) {
		return json.RawMessage(arg), nil
	}
	b, err := json.Marshal(arg)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// Stdout returns the writer commands print results to.
func Stdout(cmd *cli.Command) io.Writer {
	if w := GetMeta(cmd).Stdout; w != nil {
		return w
	}
	return os.Stdout
}

// colorize reports whether output to w should be colored.
func colorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && output.IsTerminal(f)
}

// withCache opens the cache and hands it to fn.
func withCache(ctx context.Context, cmd *cli.Command, fn func(context.Context, *cash.Cache) error) error {
	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	return fn(ctx, c)
}
