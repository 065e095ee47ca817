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
	"errors"

	"github.com/sietse/typical/diag"
	"github.com/sietse/typical/schema"
	"github.com/sietse/typical/syntax"
)

// Frontend turns the contents of one schema file into a Schema. Errors are
// preferably a diag.List; other errors are attributed to the file as a
// whole.
type Frontend interface {
	Tokenize(path string, src []byte) ([]syntax.Token, error)
	Parse(path string, src []byte, tokens []syntax.Token) (*schema.Schema, error)
}

// DefaultFrontend is the schema language front end from package syntax.
var DefaultFrontend Frontend = syntaxFrontend{}

type syntaxFrontend struct{}

func (syntaxFrontend) Tokenize(path string, src []byte) ([]syntax.Token, error) {
	tokens, err := syntax.Tokenize(src)
	if err != nil {
		return nil, syntaxDiagnostics(path, src, err)
	}
	return tokens, nil
}

func (syntaxFrontend) Parse(path string, src []byte, tokens []syntax.Token) (*schema.Schema, error) {
	parsed, err := syntax.Parse(tokens)
	if err != nil {
		return nil, syntaxDiagnostics(path, src, err)
	}
	return parsed, nil
}

func syntaxDiagnostics(path string, src []byte, err error) error {
	var errs syntax.Errors
	if !errors.As(err, &errs) {
		return diag.New(0, err.Error()).WithPath(path)
	}
	list := make(diag.List, 0, len(errs))
	for _, syntaxErr := range errs {
		span := syntaxErr.Span()
		listing := diag.Listing(string(src), int(span.Start()), int(span.End()))
		list = append(list, diag.New(syntaxErr.Code(), syntaxErr.Message()).WithListing(path, listing))
	}
	return list
}
