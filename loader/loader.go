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

// Package loader resolves the transitive imports of a schema file into a
// Graph, loading each file at most once.
//
// Resolution is depth-first over a stack of pending files. The imports of
// each file are pushed in sorted order of their import names, so the last
// one (by name) is loaded next. Failures are independent: a file that can't
// be read or parsed is reported and skipped, and the rest of the graph is
// still explored. All diagnostics are returned together, in the order they
// were found, as a diag.List.
package loader

import (
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sietse/typical/diag"
	"github.com/sietse/typical/schema"
)

// Entry is one loaded schema file.
type Entry struct {
	// Path is canonical: absolute, with symlinks resolved.
	Path      string
	Namespace schema.Namespace
	Schema    *schema.Schema
	// Imports maps each import name to the canonical path it resolved to.
	Imports map[schema.Identifier]string
}

// Graph maps canonical paths to loaded schema files. It is read-only once
// returned by Load.
type Graph struct {
	root    string
	entries map[string]*Entry
}

// Root is the canonical compilation root that namespaces are relative to.
func (g *Graph) Root() string {
	return g.root
}

func (g *Graph) Len() int {
	return len(g.entries)
}

func (g *Graph) Lookup(path string) (*Entry, bool) {
	entry, ok := g.entries[path]
	return entry, ok
}

// ImportNamespace returns the namespace assigned to the file that entry
// imports as name.
func (g *Graph) ImportNamespace(entry *Entry, name schema.Identifier) (schema.Namespace, bool) {
	path, ok := entry.Imports[name]
	if !ok {
		return schema.Namespace{}, false
	}
	target, ok := g.entries[path]
	if !ok {
		return schema.Namespace{}, false
	}
	return target.Namespace, true
}

// Paths returns the canonical paths of all entries, sorted.
func (g *Graph) Paths() []string {
	paths := make([]string, 0, len(g.entries))
	for path := range g.entries {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// Entries iterates over all entries in order of their paths.
func (g *Graph) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, path := range g.Paths() {
			if !yield(g.entries[path]) {
				return
			}
		}
	}
}

type Option interface {
	apply(*Options)
}

type option func(*Options)

func (f option) apply(opts *Options) { f(opts) }

type Options struct {
	root     string
	frontend Frontend
	logger   zerolog.Logger
	cache    *Cache
}

// WithRoot sets the compilation root. By default it is the directory of the
// entry file.
func WithRoot(root string) Option {
	return option(func(opts *Options) {
		opts.root = root
	})
}

func WithFrontend(frontend Frontend) Option {
	return option(func(opts *Options) {
		opts.frontend = frontend
	})
}

func WithLogger(logger zerolog.Logger) Option {
	return option(func(opts *Options) {
		opts.logger = logger
	})
}

// WithCache reuses parsed schemas from earlier resolutions.
func WithCache(cache *Cache) Option {
	return option(func(opts *Options) {
		opts.cache = cache
	})
}

func NewOptions(opts ...Option) *Options {
	loadOptions := &Options{
		frontend: DefaultFrontend,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt.apply(loadOptions)
	}
	return loadOptions
}

// Load resolves the schema file at path and everything it imports.
func Load(path string, opts ...Option) (*Graph, error) {
	return NewOptions(opts...).Load(path)
}

func (opts *Options) Load(path string) (*Graph, error) {
	r := &resolver{
		opts:       opts,
		visited:    make(map[string]struct{}),
		namespaces: make(map[string]string),
		graph: &Graph{
			entries: make(map[string]*Entry),
		},
	}
	return r.run(path)
}

type origin struct {
	path    string
	listing string
}

type pending struct {
	path   string
	origin *origin
}

// resolver is the state of one call to Load.
type resolver struct {
	opts       *Options
	stack      []pending
	visited    map[string]struct{}
	namespaces map[string]string
	graph      *Graph
	diags      diag.List
}

// importTarget joins an import path to the directory of the importing file.
// An absolute import path is used as is. The result is not cleaned: ".."
// must be resolved after the symlinks before it.
func importTarget(dir, importPath string) string {
	importPath = filepath.FromSlash(importPath)
	if filepath.IsAbs(importPath) {
		return importPath
	}
	return dir + string(filepath.Separator) + importPath
}

// canonicalize returns the absolute path of an existing file with every
// symlink resolved. Components are resolved left to right, so "link/.."
// is the parent of the link's target rather than the directory holding
// the link.
func canonicalize(path string) (string, error) {
	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		path = wd + string(filepath.Separator) + path
	}
	volume := filepath.VolumeName(path)
	resolved := volume + string(filepath.Separator)
	for _, part := range strings.Split(path[len(volume):], string(filepath.Separator)) {
		switch part {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}
		next, err := filepath.EvalSymlinks(filepath.Join(resolved, part))
		if err != nil {
			return "", err
		}
		resolved = next
	}
	if _, err := os.Stat(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

func (r *resolver) run(entryPath string) (*Graph, error) {
	log := r.opts.logger
	canonical, err := canonicalize(entryPath)
	if err != nil {
		return nil, diag.List{errCanonicalize(entryPath, err)}
	}

	if r.opts.root == "" {
		r.graph.root = filepath.Dir(canonical)
	} else if r.graph.root, err = canonicalize(r.opts.root); err != nil {
		return nil, diag.List{errRootCanonicalize(r.opts.root, err)}
	}
	log.Debug().
		Str("entry", canonical).
		Str("root", r.graph.root).
		Msg("resolving schema")

	r.visited[canonical] = struct{}{}
	r.stack = append(r.stack, pending{path: canonical})
	for len(r.stack) > 0 {
		next := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		r.load(next)
	}

	log.Debug().
		Int("files", r.graph.Len()).
		Int("diagnostics", len(r.diags)).
		Msg("resolution finished")
	if err := r.diags.Err(); err != nil {
		return nil, err
	}
	return r.graph, nil
}

func (r *resolver) report(from *origin, d *diag.Diagnostic) {
	if from != nil {
		d.WithListing(from.path, from.listing)
	}
	r.diags = append(r.diags, d)
}

func (r *resolver) load(item pending) {
	log := r.opts.logger.With().Str("path", item.path).Logger()

	dir := filepath.Dir(item.path)
	if dir == item.path {
		r.report(item.origin, errNoParent(item.path))
		return
	}

	src, err := os.ReadFile(item.path)
	if err != nil {
		r.report(item.origin, errRead(item.path, err))
		return
	}

	parsed, err := r.parse(log, item.path, src)
	if err != nil {
		for _, d := range diag.Collect(err) {
			if d.Path == "" {
				attributed := *d
				attributed.Path = item.path
				d = &attributed
			}
			r.diags = append(r.diags, d)
		}
		return
	}

	ns, err := schema.NamespaceFromPath(r.graph.root, item.path)
	if err != nil {
		r.report(item.origin, errNamespace(item.path, err))
		return
	}
	if other, conflict := r.namespaces[ns.Key()]; conflict {
		r.report(item.origin, errNamespaceCollision(item.path, other, ns))
		return
	}
	r.namespaces[ns.Key()] = item.path
	entry := &Entry{
		Path:      item.path,
		Namespace: ns,
		Schema:    parsed,
		Imports:   make(map[schema.Identifier]string, len(parsed.Imports)),
	}
	r.graph.entries[item.path] = entry
	log.Debug().Stringer("namespace", ns).Msg("loaded schema")

	for _, name := range parsed.ImportNames() {
		imp := parsed.Imports[name]
		from := &origin{
			path:    item.path,
			listing: diag.Listing(string(src), int(imp.Span.Start()), int(imp.Span.End())),
		}
		target := importTarget(dir, imp.Path)
		canonical, err := canonicalize(target)
		if err != nil {
			r.report(from, errCanonicalize(target, err))
			continue
		}
		entry.Imports[name] = canonical
		if _, seen := r.visited[canonical]; seen {
			log.Debug().Str("import", canonical).Msg("import already visited")
			continue
		}
		r.visited[canonical] = struct{}{}
		r.stack = append(r.stack, pending{path: canonical, origin: from})
	}
}

func (r *resolver) parse(log zerolog.Logger, path string, src []byte) (*schema.Schema, error) {
	if r.opts.cache != nil {
		if parsed, ok := r.opts.cache.get(path, src); ok {
			log.Debug().Msg("parse cache hit")
			return parsed, nil
		}
	}
	tokens, err := r.opts.frontend.Tokenize(path, src)
	if err != nil {
		return nil, err
	}
	parsed, err := r.opts.frontend.Parse(path, src, tokens)
	if err != nil {
		return nil, err
	}
	if r.opts.cache != nil {
		r.opts.cache.add(path, src, parsed)
	}
	return parsed, nil
}
