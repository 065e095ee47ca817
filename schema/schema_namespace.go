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

package schema

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Namespace is the ordered path of identifiers addressing a schema in the
// module hierarchy. It is immutable once constructed.
type Namespace struct {
	components []Identifier
}

func NewNamespace(components ...Identifier) Namespace {
	return Namespace{components: slices.Clone(components)}
}

// Components returns a copy of the namespace's identifiers.
func (ns Namespace) Components() []Identifier {
	return slices.Clone(ns.components)
}

func (ns Namespace) Len() int {
	return len(ns.components)
}

func (ns Namespace) At(index int) Identifier {
	return ns.components[index]
}

func (ns Namespace) Equal(other Namespace) bool {
	return slices.Equal(ns.components, other.components)
}

func (ns Namespace) Compare(other Namespace) int {
	return slices.CompareFunc(ns.components, other.components, Identifier.Compare)
}

// Key returns a string that is equal for two namespaces iff they are Equal,
// suitable for use as a map key.
func (ns Namespace) Key() string {
	var buf strings.Builder
	for ii, component := range ns.components {
		if ii > 0 {
			buf.WriteByte('\x1F')
		}
		buf.WriteString(component.name)
	}
	return buf.String()
}

// Append returns a new namespace with id added as the last component.
func (ns Namespace) Append(id Identifier) Namespace {
	components := make([]Identifier, len(ns.components), len(ns.components)+1)
	copy(components, ns.components)
	return Namespace{components: append(components, id)}
}

func (ns Namespace) String() string {
	parts := make([]string, len(ns.components))
	for ii, component := range ns.components {
		parts[ii] = component.name
	}
	return strings.Join(parts, ".")
}

// NamespaceFromPath derives the namespace of the schema file at path: its
// path relative to root, without extension, one identifier per segment.
func NamespaceFromPath(root, path string) (Namespace, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return Namespace{}, err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Namespace{}, fmt.Errorf("path %q is outside of root %q", path, root)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	if rel == "" || rel == "." {
		return Namespace{}, fmt.Errorf("path %q has no name relative to root %q", path, root)
	}

	var components []Identifier
	for _, segment := range strings.Split(rel, string(filepath.Separator)) {
		id, err := NewIdentifier(segment)
		if err != nil {
			return Namespace{}, fmt.Errorf(
				"path %q is not a valid namespace: %w",
				path, err,
			)
		}
		components = append(components, id)
	}
	return Namespace{components: components}, nil
}
