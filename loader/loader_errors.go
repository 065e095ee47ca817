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

package loader

import (
	"github.com/sietse/typical/diag"
	"github.com/sietse/typical/schema"
)

func errCanonicalize(path string, cause error) *diag.Diagnostic {
	return diag.Newf(3000, "Unable to canonicalize path %s.", diag.Code(path)).
		WithReason(cause)
}

func errRead(path string, cause error) *diag.Diagnostic {
	return diag.Newf(3001, "Unable to read file %s.", diag.Code(path)).
		WithReason(cause)
}

func errNoParent(path string) *diag.Diagnostic {
	return diag.Newf(3002, "Path %s has no parent.", diag.Code(path))
}

func errNamespace(path string, cause error) *diag.Diagnostic {
	return diag.Newf(3003, "Unable to derive a namespace for %s.", diag.Code(path)).
		WithReason(cause)
}

func errRootCanonicalize(root string, cause error) *diag.Diagnostic {
	return diag.Newf(3004, "Unable to canonicalize compilation root %s.", diag.Code(root)).
		WithReason(cause)
}

func errNamespaceCollision(path, other string, ns schema.Namespace) *diag.Diagnostic {
	return diag.Newf(
		3005,
		"Files %s and %s both map to namespace %s.",
		diag.Code(other), diag.Code(path), diag.Code(ns.String()),
	)
}
