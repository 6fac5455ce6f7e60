// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/pengdash/internal/meta"
)

const bashCompletionScript = `# bash completion for pengdash
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_pengdash()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "show tui schema completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local data="--data -d --species -g --profile --region --endpoint --tldr"
    local charts="--attribute --bins --mass-bins"
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --schema"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --species|-g)
            COMPREPLY=( $(compgen -W "Adelie Chinstrap Gentoo" -- "$cur") )
            return 0
            ;;
        --attribute)
            COMPREPLY=( $(compgen -W "bill_length_mm bill_depth_mm flipper_length_mm body_mass_g" -- "$cur") )
            return 0
            ;;
        --view|-V)
            COMPREPLY=( $(compgen -W "table grid hist mass scatter" -- "$cur") )
            return 0
            ;;
        --panel)
            COMPREPLY=( $(compgen -W "table grid hist scatter" -- "$cur") )
            return 0
            ;;
        --data|-d)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    case "$cmd" in
        show)
            local opts="$data $charts $common --view -V --examples"
            ;;
        tui)
            local opts="$data $charts --panel"
            ;;
        schema)
            local opts="$data"
            ;;
        completion)
            local opts="bash zsh"
            ;;
        *)
            local opts="$data"
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _pengdash pengdash
`

const zshCompletionScript = `#compdef pengdash

_pengdash() {
  local -a cmds
  cmds=(
    'show:render the dashboard views to stdout'
    'tui:interactive dashboard'
    'schema:describe the dataset columns and groups'
    'completion:generate shell completion script'
  )

  local -a data
  data=(
  '(-d --data)'{-d,--data}'[dataset]:dataset:_files'
  '*'{-g,--species}'[species]:species:(Adelie Chinstrap Gentoo)'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  '--endpoint[S3 endpoint]:endpoint'
  '--tldr[show tldr page]'
  )

  local -a charts
  charts=(
  '--attribute[histogram attribute]:attribute:(bill_length_mm bill_depth_mm flipper_length_mm body_mass_g)'
  '--bins[attribute bins]:bins'
  '--mass-bins[mass bins]:bins'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--schema[dump schema]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'pengdash commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    show)
      _arguments -C \
        $data $charts $common \
        '(-V --view)'{-V,--view}'[views]:views:(table grid hist mass scatter)' \
        '--examples[show usage examples]'
      ;;
    tui)
      _arguments -C \
        $data $charts \
        '--panel[first panel]:panel:(table grid hist scatter)'
      ;;
    schema)
      _arguments -C $data
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _pengdash pengdash
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
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
			fmt.Fprintln(os.Stderr, "usage: pengdash completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "pengdash completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
