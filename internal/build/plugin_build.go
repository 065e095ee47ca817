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

// Builds a codegen plugin as a WASI reactor module:
//
//	go run ./internal/build --output=typical-codegen-outline.wasm ./bin/typical-codegen-outline
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/pflag"
)

func main() {
	var (
		goBin  string
		output string
		chdir  string
	)
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	flags.StringVar(&goBin, "go", "go", "Go toolchain binary")
	flags.StringVarP(&output, "output", "o", "", "Path of the .wasm file to write")
	flags.StringVar(&chdir, "chdir", "", "Directory to build in")
	flags.Parse(os.Args[1:])

	if output == "" || flags.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s --output=PLUGIN.wasm PACKAGE\n", os.Args[0])
		os.Exit(2)
	}
	pwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	cmd := pluginBuildCommand(goBin, filepath.Join(pwd, output), flags.Args(), os.Environ())
	cmd.Dir = filepath.Join(pwd, chdir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// pluginBuildCommand returns the `go build` invocation for a plugin. The
// reactor build mode keeps the module alive after _initialize so the host
// can call its exports.
func pluginBuildCommand(goBin, output string, packages, environ []string) *exec.Cmd {
	args := []string{"build", "-buildmode=c-shared", "-o=" + output}
	args = append(args, packages...)
	cmd := exec.Command(goBin, args...)
	cmd.Env = append(environ, "GOOS=wasip1", "GOARCH=wasm")
	return cmd
}
