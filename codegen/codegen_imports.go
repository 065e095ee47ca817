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

package codegen

import (
	"path"
	"strings"

	"github.com/sietse/typical/schema"
)

// resolveImport computes the namespace of the file imported by importPath
// from the file at namespace from. Namespaces mirror directories under the
// compilation root, so this is a lexical walk.
func resolveImport(from schema.Namespace, importPath string) (schema.Namespace, bool) {
	if from.Len() == 0 {
		return schema.Namespace{}, false
	}
	dir := from.Components()[:from.Len()-1]
	segments := strings.Split(path.Clean(importPath), "/")
	for ii, segment := range segments {
		if ii == len(segments)-1 {
			segment = strings.TrimSuffix(segment, path.Ext(segment))
		}
		switch segment {
		case ".":
			continue
		case "..":
			if len(dir) == 0 {
				return schema.Namespace{}, false
			}
			dir = dir[:len(dir)-1]
			continue
		}
		id, err := schema.NewIdentifier(segment)
		if err != nil {
			return schema.Namespace{}, false
		}
		dir = append(dir, id)
	}
	if len(dir) == 0 {
		return schema.Namespace{}, false
	}
	return schema.NewNamespace(dir...), true
}
