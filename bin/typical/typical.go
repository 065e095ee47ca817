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
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const version = "0.1.0"

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
	args    cobra.PositionalArgs
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rc := execute(ctx, newGlobals(), os.Args[1:])
	stop()
	os.Exit(rc)
}

func execute(ctx context.Context, g *globals, args []string) int {
	rc := 0

	typicalCmd := &cobra.Command{
		Use:           "typical [options] COMMAND",
		Short:         "Typical is an interface definition language.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	typicalCmd.SetArgs(args)
	typicalCmd.SetOut(g.stdout)
	typicalCmd.SetErr(g.stderr)
	typicalCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		fmt.Fprint(g.stderr, cmd.UsageString())
		rc = 1
		return nil
	}
	typicalCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return g.setup()
	}
	g.flags(typicalCmd.PersistentFlags())

	commands := []command{
		&cmdCheck{g: g},
		&cmdGenerate{g: g},
		&cmdShellCompletion{g: g, root: typicalCmd},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			Args:  help.args,
			RunE: func(_ *cobra.Command, args []string) error {
				rc = cmd.run(ctx, args)
				return nil
			},
		}
		typicalCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	if _, err := typicalCmd.ExecuteContextC(ctx); err != nil {
		fmt.Fprintln(g.stderr, errorf("%v", err))
		return 1
	}
	return rc
}
