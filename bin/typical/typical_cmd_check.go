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
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sietse/typical/loader"
)

const watchDebounce = 100 * time.Millisecond

type cmdCheck struct {
	g     *globals
	root  string
	watch bool
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check PATH",
		summary: "Checks a schema and everything it imports",
		args:    cobra.ExactArgs(1),
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	flags.StringVar(&cmd.root, "root", "", "Compilation root (default: directory of PATH)")
	flags.BoolVarP(&cmd.watch, "watch", "w", false, "Check again whenever a loaded file changes")
}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	cache, err := loader.NewCache(loader.DefaultCacheSize)
	if err != nil {
		fmt.Fprintln(cmd.g.stderr, errorf("%v", err))
		return 1
	}
	opts := cmd.g.loaderOptions(cmd.root, cache)
	if cmd.watch {
		return cmd.watchLoop(ctx, opts, argv[0])
	}
	_, rc := cmd.check(opts, argv[0])
	return rc
}

func (cmd *cmdCheck) check(opts *loader.Options, path string) (*loader.Graph, int) {
	graph, err := opts.Load(path)
	if err != nil {
		fmt.Fprintln(cmd.g.stderr, err)
		return nil, 1
	}
	cmd.g.log.Info().
		Str("path", path).
		Int("files", graph.Len()).
		Msg("schema is valid")
	return graph, 0
}

// watchLoop checks path, then checks it again each time something changes
// in a directory containing a loaded file. It returns the result of the last
// check once ctx is done.
func (cmd *cmdCheck) watchLoop(ctx context.Context, opts *loader.Options, path string) int {
	log := cmd.g.log

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(cmd.g.stderr, errorf("create watcher: %v", err))
		return 1
	}
	defer watcher.Close()

	entryDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		fmt.Fprintln(cmd.g.stderr, errorf("%v", err))
		return 1
	}

	watched := make(map[string]bool)
	rc := 0
	recheck := func() {
		var graph *loader.Graph
		graph, rc = cmd.check(opts, path)
		dirs := watchDirs(entryDir, graph, watched)
		for dir := range watched {
			if !dirs[dir] {
				_ = watcher.Remove(dir)
				delete(watched, dir)
			}
		}
		for dir := range dirs {
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				log.Warn().Err(err).Str("dir", dir).Msg("cannot watch directory")
				continue
			}
			watched[dir] = true
		}
		log.Info().Int("directories", len(watched)).Msg("watching for changes")
	}
	recheck()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return rc
		case event, ok := <-watcher.Events:
			if !ok {
				return rc
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			log.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("file changed")
			debounce = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return rc
			}
			log.Error().Err(err).Msg("file watcher error")
		case <-debounce:
			debounce = nil
			recheck()
		}
	}
}

// watchDirs returns the directories to watch after a check. When the check
// failed there is no graph, so the previous set is kept: the failing file may
// be one of them.
func watchDirs(entryDir string, graph *loader.Graph, previous map[string]bool) map[string]bool {
	dirs := map[string]bool{entryDir: true}
	if graph == nil {
		for dir := range previous {
			dirs[dir] = true
		}
		return dirs
	}
	for _, path := range graph.Paths() {
		dirs[filepath.Dir(path)] = true
	}
	return dirs
}
