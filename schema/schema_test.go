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

package schema_test

import (
	"path/filepath"
	"testing"

	"github.com/sietse/typical/internal/testutil"
	"github.com/sietse/typical/schema"
)

func TestIdentifierNormalization(t *testing.T) {
	tests := []struct {
		raw    string
		snake  string
		pascal string
		camel  string
	}{
		{"foo", "foo", "Foo", "foo"},
		{"FooBar", "foo_bar", "FooBar", "fooBar"},
		{"fooBar", "foo_bar", "FooBar", "fooBar"},
		{"foo_bar", "foo_bar", "FooBar", "fooBar"},
		{"HTTP2", "http2", "Http2", "http2"},
		{"x2d", "x2d", "X2d", "x2d"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := schema.NewIdentifier(tt.raw)
			testutil.AssertNoError(t, err)
			testutil.ExpectEq(t, tt.snake, id.SnakeCase())
			testutil.ExpectEq(t, tt.pascal, id.PascalCase())
			testutil.ExpectEq(t, tt.camel, id.CamelCase())
		})
	}
}

func TestIdentifierEquality(t *testing.T) {
	a := schema.MustIdentifier("FooBar")
	b := schema.MustIdentifier("foo_bar")
	testutil.ExpectEq(t, a, b)
	testutil.ExpectEq(t, 0, a.Compare(b))

	// Composed and decomposed forms of "é".
	composed := schema.MustIdentifier("caf\u00e9")
	decomposed := schema.MustIdentifier("cafe\u0301")
	testutil.ExpectEq(t, composed, decomposed)
}

func TestInvalidIdentifiers(t *testing.T) {
	for _, raw := range []string{"", "1abc", "_abc", "abc_", "a__b", "a-b", "a.b"} {
		_, err := schema.NewIdentifier(raw)
		if err == nil {
			t.Errorf("NewIdentifier(%q): expected error", raw)
		}
	}
}

func TestNamespace(t *testing.T) {
	ns := schema.NewNamespace(
		schema.MustIdentifier("foo"),
		schema.MustIdentifier("BarBaz"),
	)
	testutil.ExpectEq(t, "foo.bar_baz", ns.String())
	testutil.ExpectEq(t, 2, ns.Len())

	other := schema.NewNamespace(schema.MustIdentifier("foo")).
		Append(schema.MustIdentifier("bar_baz"))
	testutil.ExpectTrue(t, ns.Equal(other))
	testutil.ExpectEq(t, ns.Key(), other.Key())

	shorter := schema.NewNamespace(schema.MustIdentifier("foo"))
	testutil.ExpectFalse(t, ns.Equal(shorter))
	testutil.ExpectEq(t, 1, ns.Compare(shorter))

	components := ns.Components()
	components[0] = schema.MustIdentifier("changed")
	testutil.ExpectEq(t, "foo", ns.At(0).String())
}

func TestNamespaceFromPath(t *testing.T) {
	root := filepath.FromSlash("/schemas")

	ns, err := schema.NamespaceFromPath(root, filepath.FromSlash("/schemas/geo/shapes/Circle.t"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "geo.shapes.circle", ns.String())

	ns, err = schema.NamespaceFromPath(root, filepath.FromSlash("/schemas/main.t"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "main", ns.String())

	_, err = schema.NamespaceFromPath(root, filepath.FromSlash("/other/main.t"))
	testutil.AssertError(t, err)

	_, err = schema.NamespaceFromPath(root, filepath.FromSlash("/schemas/not-valid.t"))
	testutil.AssertError(t, err)
}

func TestSchemaSortedNames(t *testing.T) {
	s := schema.NewSchema()
	s.Imports[schema.MustIdentifier("zeta")] = schema.Import{Path: "zeta.t"}
	s.Imports[schema.MustIdentifier("alpha")] = schema.Import{Path: "alpha.t"}

	names := s.ImportNames()
	testutil.ExpectEq(t, 2, len(names))
	testutil.ExpectEq(t, "alpha", names[0].String())
	testutil.ExpectEq(t, "zeta", names[1].String())
}
