// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cashgo/internal/meta"
)

const bashCompletionScript = `# bash completion for cash
_cash()
{
    local cur cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "get set del ls reset run completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--file -f --global -g --encoding -e --dev"

    case "$cmd" in
        get)
            local opts="$common --path -p"
            ;;
        set)
            local opts="$common --ttl -t --string -s --diff -d"
            ;;
        ls|list)
            local opts="$common --expired -x --output -o --color --no-color --titles --no-titles"
            ;;
        run)
            local opts="$common --ttl -t"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ $cur == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    case "$cmd" in
        get|set|del|rm)
            local keys
            keys=$(cash ls --no-titles --no-color -o json 2>/dev/null | grep -o '"key":"[^"]*"' | cut -d'"' -f4)
            COMPREPLY=( $(compgen -W "$keys" -- "$cur") )
            ;;
    esac
}
complete -F _cash cash
`

const zshCompletionScript = `#compdef cash
_cash() {
  local -a common
  common=(
    '(-f --file)'{-f,--file}'[cache file]:file:_files'
    '(-e --encoding)'{-e,--encoding}'[file encoding]:encoding:(utf8 latin1 ucs2)'
    '--dev[readable file format]'
  )

  _arguments -C '1: :((get\:"print a value" set\:"store a value" del\:"delete keys" ls\:"list entries" reset\:"remove everything" run\:"cache command output" completion\:"shell completion"))' '*:: :->args'

  case $words[1] in
    get)
      _arguments $common '(-p --path)'{-p,--path}'[gjson path]:path:' '1:key:'
      ;;
    set)
      _arguments $common '(-t --ttl)'{-t,--ttl}'[time to live]:ttl:' '(-s --string)'{-s,--string}'[store as string]' '(-d --diff)'{-d,--diff}'[print diff]' '1:key:' '2:value:'
      ;;
    ls|list)
      _arguments $common '(-x --expired)'{-x,--expired}'[include expired]' '(-o --output)'{-o,--output}'[format]:format:(text json yaml)'
      ;;
    run)
      _arguments $common '(-t --ttl)'{-t,--ttl}'[time to live]:ttl:' '*:command:_command_names'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments $common
      ;;
  esac
}

if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _cash cash
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := Stdout(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: cash completion [bash|zsh]")
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "cash completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
