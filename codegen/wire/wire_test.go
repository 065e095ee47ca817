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

package wire_test

import (
	"testing"

	"github.com/sietse/typical/codegen/wire"
	"github.com/sietse/typical/internal/testutil"
	"github.com/sietse/typical/schema"
	"github.com/sietse/typical/syntax"
	"github.com/sietse/typical/tree"
)

func TestNewRequest(t *testing.T) {
	parsed, err := syntax.ParseSource([]byte(`
import '../util.t' as u
struct Circle {
  radius: F64 = 0
  optional tags: [u.Tag] = 1
}
`))
	testutil.AssertNoError(t, err)
	root := tree.New()
	root.Insert(schema.NewNamespace(
		schema.MustIdentifier("geo"),
		schema.MustIdentifier("shapes"),
	), parsed)

	req := wire.NewRequest(root, "1.0.0")
	testutil.ExpectEq(t, "1.0.0", req.Version)
	testutil.ExpectEq(t, "", req.Root.Name)
	testutil.ExpectFalse(t, req.Root.HasSchema)
	testutil.AssertTrue(t, len(req.Root.Children) == 1)

	geo := req.Root.Children[0]
	testutil.ExpectEq(t, "geo", geo.Name)
	testutil.ExpectFalse(t, geo.HasSchema)
	testutil.AssertTrue(t, len(geo.Children) == 1)

	shapes := geo.Children[0]
	testutil.ExpectEq(t, "shapes", shapes.Name)
	testutil.ExpectTrue(t, shapes.HasSchema)
	testutil.AssertTrue(t, len(shapes.Imports) == 1)
	testutil.ExpectEq(t, wire.Import{Name: "u", Path: "../util.t"}, shapes.Imports[0])
	testutil.AssertTrue(t, len(shapes.Declarations) == 1)

	decl := shapes.Declarations[0]
	testutil.ExpectEq(t, "struct", decl.Kind)
	testutil.ExpectEq(t, "circle", decl.Name)
	testutil.AssertTrue(t, len(decl.Fields) == 2)
	testutil.ExpectEq(t, wire.Field{Name: "radius", Type: "F64", Index: 0}, decl.Fields[0])
	testutil.ExpectEq(t, wire.Field{Name: "tags", Optional: true, Type: "[u.Tag]", Index: 1}, decl.Fields[1])
}

func TestRequestEncoding(t *testing.T) {
	req := &wire.Request{
		Version: "1.0.0",
		Root: wire.Module{
			Children: []wire.Module{{Name: "main", HasSchema: true}},
		},
		Options: []string{"flat"},
	}
	buf, err := wire.EncodeRequest(req)
	testutil.AssertNoError(t, err)

	total, err := wire.MessageLen(buf)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, uint64(len(buf)), total)

	decoded, err := wire.DecodeRequest(buf)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "1.0.0", decoded.Version)
	testutil.ExpectSliceEq(t, []string{"flat"}, decoded.Options)
	testutil.AssertTrue(t, len(decoded.Root.Children) == 1)
	testutil.ExpectEq(t, "main", decoded.Root.Children[0].Name)
	testutil.ExpectTrue(t, decoded.Root.Children[0].HasSchema)
}

func TestDecodeTruncated(t *testing.T) {
	buf, err := wire.EncodeResponse(&wire.Response{Error: "boom"})
	testutil.AssertNoError(t, err)

	_, err = wire.DecodeResponse(buf[:len(buf)-1])
	testutil.AssertError(t, err)
	_, err = wire.DecodeResponse(buf[:2])
	testutil.AssertError(t, err)
	_, err = wire.MessageLen(nil)
	testutil.AssertError(t, err)

	resp, err := wire.DecodeResponse(buf)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "boom", resp.Error)
}
