// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cashgo/internal/command"
	"github.com/staranto/cashgo/internal/meta"
)

// Doc generator. Walks the cash command tree and writes, per subcommand:
//   - docs/commands/<cmd>.md
//   - docs/man/share/man1/cash-<cmd>.1 rendered from that markdown

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")

	for _, dir := range []string{commandsDir, manOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating %s: %v", dir, err)
		}
	}

	app := command.NewApp(meta.Meta{})

	var processed int
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}
		md := renderMarkdown(cmd)

		mdPath := filepath.Join(commandsDir, cmd.Name+".md")
		if err := writeFileIfChanged(mdPath, md, writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", cmd.Name, err)
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("cash-%s.1", cmd.Name))
		if err := writeFileIfChanged(manPath, md2man.Render(md), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no commands found")
	}
}

// renderMarkdown produces the md2man flavoured page for one subcommand.
func renderMarkdown(cmd *cli.Command) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "cash-%s 1 \"\" \"cash\" \"User Commands\"\n", cmd.Name)
	b.WriteString("==================================================\n\n")

	b.WriteString("# NAME\n\n")
	fmt.Fprintf(&b, "cash-%s - %s\n\n", cmd.Name, cmd.Usage)

	b.WriteString("# SYNOPSIS\n\n")
	fmt.Fprintf(&b, "`%s`\n\n", cmd.UsageText)

	if len(cmd.Aliases) > 0 {
		b.WriteString("# ALIASES\n\n")
		fmt.Fprintf(&b, "%s\n\n", strings.Join(cmd.Aliases, ", "))
	}

	if len(cmd.Flags) > 0 {
		b.WriteString("# OPTIONS\n\n")
		for _, f := range cmd.Flags {
			var names []string
			for _, n := range f.Names() {
				if len(n) == 1 {
					names = append(names, "-"+n)
				} else {
					names = append(names, "--"+n)
				}
			}
			fmt.Fprintf(&b, "**%s**\n: %s\n\n", strings.Join(names, ", "), flagUsage(f))
		}
	}

	b.WriteString("# SEE ALSO\n\n")
	b.WriteString("More information: https://github.com/staranto/cashgo.\n")

	return []byte(b.String())
}

func flagUsage(f cli.Flag) string {
	if df, ok := f.(cli.DocGenerationFlag); ok {
		return df.GetUsage()
	}
	return ""
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}
