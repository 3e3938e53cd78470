// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewGlobalFlags returns the flags every command accepts. ns is the command
// name, used as the namespace when looking values up in the config file at
// path. Precedence is flag, environment, namespaced config, global config,
// default.
func NewGlobalFlags(ns string, path string) (flags []cli.Flag) {
	flags = []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "cache file. Defaults to .cash in the working directory",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CASH_FILE"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "encoding",
			Aliases: []string{"e"},
			Usage:   "text encoding of the cache file",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CASH_ENCODING"),
			),
			Value: "utf8",
		}),
		&cli.BoolFlag{
			Name:        "global",
			Aliases:     []string{"g"},
			Usage:       "use the per-user cache instead of --file",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:  "dev",
			Usage: "write indented JSON with readable timestamps",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CASH_DEV"),
				yaml.YAML(ns+"."+"dev", altsrc.StringSourcer(path)),
				yaml.YAML("dev", altsrc.StringSourcer(path)),
			),
			HideDefault: true,
		},
	}

	return
}

// NewTTLFlag constructs the --ttl flag, defaulting from the namespaced config
// value when present.
func NewTTLFlag(ns string, path string) *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:    "ttl",
		Aliases: []string{"t"},
		Usage:   "expire the entry after this long, e.g. 90s or 2h. 0 never expires",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"ttl", altsrc.StringSourcer(path)),
		),
		Value: time.Duration(0),
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
