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
	"strings"
	"testing"

	"github.com/sietse/typical/internal/testutil"
	"github.com/sietse/typical/schema"
)

func ns(parts ...string) schema.Namespace {
	ids := make([]schema.Identifier, len(parts))
	for ii, part := range parts {
		ids[ii] = schema.MustIdentifier(part)
	}
	return schema.NewNamespace(ids...)
}

func TestResolveImport(t *testing.T) {
	tests := []struct {
		from string
		path string
		want string
		ok   bool
	}{
		{"main", "util.t", "util", true},
		{"main", "./util.t", "util", true},
		{"main", "geo/shapes.t", "geo.shapes", true},
		{"geo.shapes", "../util.t", "util", true},
		{"geo.shapes", "circle.t", "geo.circle", true},
		{"geo.shapes", "./../geo/./circle.t", "geo.circle", true},
		{"main", "../outside.t", "", false},
		{"main", "bad-name.t", "", false},
		{"main", ".", "", false},
	}
	for _, test := range tests {
		var from schema.Namespace
		if test.from != "" {
			from = ns(strings.Split(test.from, ".")...)
		}
		got, ok := resolveImport(from, test.path)
		if ok != test.ok {
			t.Errorf("resolveImport(%s, %q): ok = %v, want %v", test.from, test.path, ok, test.ok)
			continue
		}
		if ok && got.String() != test.want {
			t.Errorf("resolveImport(%s, %q) = %s, want %s", test.from, test.path, got, test.want)
		}
	}
}

func TestResolveImportEmptyNamespace(t *testing.T) {
	_, ok := resolveImport(schema.Namespace{}, "util.t")
	testutil.ExpectFalse(t, ok)
}

func TestResolveImportDoesNotAlias(t *testing.T) {
	from := ns("geo", "shapes")
	first, ok := resolveImport(from, "a.t")
	testutil.AssertTrue(t, ok)
	second, ok := resolveImport(from, "b.t")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, "geo.a", first.String())
	testutil.ExpectEq(t, "geo.b", second.String())
	testutil.ExpectEq(t, "geo.shapes", from.String())
}

func TestRustIdent(t *testing.T) {
	testutil.ExpectEq(t, "r#type", rustIdent("type"))
	testutil.ExpectEq(t, "r#match", rustIdent("match"))
	testutil.ExpectEq(t, "self_", rustIdent("self"))
	testutil.ExpectEq(t, "crate_", rustIdent("crate"))
	testutil.ExpectEq(t, "shapes", rustIdent("shapes"))
}

func TestTypeScriptIdent(t *testing.T) {
	testutil.ExpectEq(t, "default_", typeScriptIdent("default"))
	testutil.ExpectEq(t, "namespace_", typeScriptIdent("namespace"))
	testutil.ExpectEq(t, "shapes", typeScriptIdent("shapes"))
}

