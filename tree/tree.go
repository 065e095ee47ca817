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

// Package tree reshapes a loader.Graph into a hierarchy keyed by namespace
// segments, the form that code generators walk.
package tree

import (
	"fmt"
	"slices"

	"github.com/sietse/typical/loader"
	"github.com/sietse/typical/schema"
)

// Node is one namespace segment. A node has a Schema only if a file maps to
// its namespace; intermediate nodes have children but no schema.
type Node struct {
	children map[schema.Identifier]*Node
	schema   *schema.Schema
	imports  map[schema.Identifier]schema.Namespace
}

// Child is a named child of a Node.
type Child struct {
	Name schema.Identifier
	Node *Node
}

// Entry pairs a namespace with the schema found there.
type Entry struct {
	Namespace schema.Namespace
	Schema    *schema.Schema
}

func New() *Node {
	return &Node{}
}

// Build assembles the tree for every entry of graph.
func Build(graph *loader.Graph) *Node {
	root := New()
	for entry := range graph.Entries() {
		imports := make(map[schema.Identifier]schema.Namespace, len(entry.Imports))
		for name := range entry.Imports {
			if target, ok := graph.ImportNamespace(entry, name); ok {
				imports[name] = target
			}
		}
		root.insert(entry.Namespace, entry.Schema, imports)
	}
	return root
}

// Insert places s at ns, creating intermediate nodes as needed. Inserting
// two schemas at one namespace, or a schema at the root, panics.
func (n *Node) Insert(ns schema.Namespace, s *schema.Schema) {
	n.insert(ns, s, nil)
}

func (n *Node) insert(
	ns schema.Namespace,
	s *schema.Schema,
	imports map[schema.Identifier]schema.Namespace,
) {
	if ns.Len() == 0 {
		panic("tree: insert at empty namespace")
	}
	node := n
	for _, name := range ns.Components() {
		child, ok := node.children[name]
		if !ok {
			if node.children == nil {
				node.children = make(map[schema.Identifier]*Node)
			}
			child = New()
			node.children[name] = child
		}
		node = child
	}
	if node.schema != nil {
		panic(fmt.Sprintf("tree: duplicate schema for namespace %s", ns))
	}
	node.schema = s
	node.imports = imports
}

// Schema returns the schema at this node, or nil.
func (n *Node) Schema() *schema.Schema {
	return n.schema
}

// ImportNamespace returns the namespace of the file that this node's schema
// imports as name. It is only known for trees assembled by Build.
func (n *Node) ImportNamespace(name schema.Identifier) (schema.Namespace, bool) {
	ns, ok := n.imports[name]
	return ns, ok
}

func (n *Node) Child(name schema.Identifier) (*Node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// Lookup follows ns from n.
func (n *Node) Lookup(ns schema.Namespace) (*Node, bool) {
	node := n
	for _, name := range ns.Components() {
		child, ok := node.children[name]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Children returns the children of n, sorted by name.
func (n *Node) Children() []Child {
	children := make([]Child, 0, len(n.children))
	for name, child := range n.children {
		children = append(children, Child{Name: name, Node: child})
	}
	slices.SortFunc(children, func(a, b Child) int {
		return a.Name.Compare(b.Name)
	})
	return children
}

// IsEmpty reports whether n has neither a schema nor children.
func (n *Node) IsEmpty() bool {
	return n.schema == nil && len(n.children) == 0
}

// Depth is the length of the longest namespace below n.
func (n *Node) Depth() int {
	depth := 0
	for _, child := range n.children {
		depth = max(depth, child.Depth()+1)
	}
	return depth
}

// Walk visits n and its descendants depth-first, children in sorted order.
// The namespace of n itself is empty. If fn returns false, the children of
// that node are skipped.
func (n *Node) Walk(fn func(ns schema.Namespace, node *Node) bool) {
	n.walk(schema.Namespace{}, fn)
}

func (n *Node) walk(ns schema.Namespace, fn func(schema.Namespace, *Node) bool) {
	if !fn(ns, n) {
		return
	}
	for _, child := range n.Children() {
		child.Node.walk(ns.Append(child.Name), fn)
	}
}

// Collect returns every schema in the tree with its namespace, in walk
// order.
func (n *Node) Collect() []Entry {
	var entries []Entry
	n.Walk(func(ns schema.Namespace, node *Node) bool {
		if node.schema != nil {
			entries = append(entries, Entry{Namespace: ns, Schema: node.schema})
		}
		return true
	})
	return entries
}
