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

package diag_test

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/sietse/typical/diag"
	"github.com/sietse/typical/internal/testutil"
)

func TestMain(m *testing.M) {
	diag.EnableColor(false)
	os.Exit(m.Run())
}

func TestListing(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		start int
		end   int
		want  string
	}{
		{
			name:  "single line",
			src:   "import 'a.t'\nimport 'c.t'\nstruct X {}\n",
			start: 13,
			end:   25,
			want:  "2 │ import 'c.t'\n    ‾‾‾‾‾‾‾‾‾‾‾‾",
		},
		{
			name:  "multiple lines",
			src:   "ab\ncd\n",
			start: 1,
			end:   4,
			want:  "1 │ ab\n     ‾\n2 │ cd\n    ‾",
		},
		{
			name:  "wide characters",
			src:   "名前 x",
			start: 7,
			end:   8,
			want:  "1 │ 名前 x\n         ‾",
		},
		{
			name:  "tabs",
			src:   "\tx",
			start: 1,
			end:   2,
			want:  "1 │     x\n        ‾",
		},
		{
			name:  "empty span at end of input",
			src:   "ab",
			start: 2,
			end:   2,
			want:  "1 │ ab\n      ‾",
		},
		{
			name:  "clamped",
			src:   "ab",
			start: -5,
			end:   100,
			want:  "1 │ ab\n    ‾‾",
		},
		{
			name:  "gutter width",
			src:   "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n",
			start: 16,
			end:   20,
			want:  " 9 │ i\n     ‾\n10 │ j\n     ‾",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.ExpectNoDiff(t, tt.want, diag.Listing(tt.src, tt.start, tt.end))
		})
	}
}

func TestDiagnosticError(t *testing.T) {
	d := diag.New(3001, "Unable to read file x.t.").
		WithPath("a.t").
		WithReason(fs.ErrNotExist)
	testutil.ExpectEq(t, "[Error] [a.t] E3001: Unable to read file x.t.\n\nReason: file does not exist", d.Error())
	testutil.ExpectTrue(t, errors.Is(d, fs.ErrNotExist))

	plain := diag.Newf(0, "Path %s has no parent.", "/")
	testutil.ExpectEq(t, "[Error] Path / has no parent.", plain.Error())
}

func TestListError(t *testing.T) {
	listing := diag.Listing("import 'a.t'\nimport 'c.t'\n", 13, 25)
	list := diag.List{
		diag.New(3001, "Unable to read file c.t.").WithListing("a.t", listing),
		diag.New(3000, "Unable to canonicalize path d.t."),
		diag.New(0, "boom").WithReason(errors.New("io")),
	}

	want := "[Error] [a.t] E3001: Unable to read file c.t.\n" +
		"\n" +
		"2 │ import 'c.t'\n" +
		"    ‾‾‾‾‾‾‾‾‾‾‾‾\n" +
		"[Error] E3000: Unable to canonicalize path d.t.\n" +
		"\n" +
		"[Error] boom\n" +
		"\n" +
		"Reason: io"
	testutil.ExpectNoDiff(t, want, list.Error())
	testutil.ExpectEq(t, list.Error(), list.Error())
}

func TestListErr(t *testing.T) {
	var list diag.List
	testutil.ExpectNoError(t, list.Err())

	list = append(list, diag.New(1, "x"))
	err := list.Err()
	testutil.AssertError(t, err)

	var d *diag.Diagnostic
	testutil.ExpectTrue(t, errors.As(err, &d))
	testutil.ExpectEq(t, uint32(1), d.Code)
}

func TestCollect(t *testing.T) {
	testutil.ExpectEq(t, 0, len(diag.Collect(nil)))

	list := diag.List{diag.New(1, "a"), diag.New(2, "b")}
	testutil.ExpectEq(t, 2, len(diag.Collect(list)))

	single := diag.Collect(diag.New(3, "c"))
	testutil.ExpectEq(t, 1, len(single))
	testutil.ExpectEq(t, uint32(3), single[0].Code)

	other := diag.Collect(errors.New("plain"))
	testutil.ExpectEq(t, "[Error] plain", other.Error())
}
