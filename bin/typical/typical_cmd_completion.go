// Copyright (c) 2026 The Typical Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sietse/typical/diag"
)

type cmdShellCompletion struct {
	g    *globals
	root *cobra.Command
}

func (*cmdShellCompletion) help() *commandHelp {
	return &commandHelp{
		usage:   "shell-completion SHELL",
		summary: "Prints a shell completion script. Supports Bash, Fish, Zsh, and PowerShell.",
		args:    cobra.ExactArgs(1),
	}
}

func (*cmdShellCompletion) flags(*pflag.FlagSet) {}

func (cmd *cmdShellCompletion) run(_ context.Context, argv []string) int {
	shell := argv[0]
	out := cmd.g.stdout
	var err error
	switch strings.ToLower(strings.TrimSpace(shell)) {
	case "bash":
		err = cmd.root.GenBashCompletionV2(out, true)
	case "fish":
		err = cmd.root.GenFishCompletion(out, true)
	case "zsh":
		err = cmd.root.GenZshCompletion(out)
	case "powershell":
		err = cmd.root.GenPowerShellCompletionWithDesc(out)
	default:
		fmt.Fprintln(cmd.g.stderr, errorf(
			"Unknown shell %s. Must be one of Bash, Fish, Zsh, or PowerShell.",
			diag.Code(shell),
		))
		return 1
	}
	if err != nil {
		fmt.Fprintln(cmd.g.stderr, errorf("%v", err))
		return 1
	}
	return 0
}
