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
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Identifier is a validated name: a namespace segment or a declaration name.
//
// Identifiers are stored in normalized form (NFC, snake_case), so "FooBar",
// "fooBar" and "foo_bar" are the same identifier. The zero value is not a
// valid identifier.
type Identifier struct {
	name string
}

// NewIdentifier validates and normalizes raw identifier text.
func NewIdentifier(raw string) (Identifier, error) {
	raw = norm.NFC.String(raw)
	if !ValidIdentifier(raw) {
		return Identifier{}, fmt.Errorf("invalid identifier %q", raw)
	}
	return Identifier{name: normalizeIdentifier(raw)}, nil
}

// MustIdentifier is like NewIdentifier but panics on invalid input.
func MustIdentifier(raw string) Identifier {
	id, err := NewIdentifier(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// ValidIdentifier reports whether raw is a well-formed identifier: a letter
// followed by letters, digits, and single underscores, not ending in an
// underscore.
func ValidIdentifier(raw string) bool {
	if raw == "" || !utf8.ValidString(raw) {
		return false
	}
	underscore := false
	for ii, r := range raw {
		if ii == 0 {
			if !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if r == '_' {
			if underscore {
				return false
			}
			underscore = true
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		underscore = false
	}
	return !underscore
}

func normalizeIdentifier(raw string) string {
	var buf strings.Builder
	prevLower := false
	for _, r := range raw {
		if unicode.IsUpper(r) {
			if prevLower {
				buf.WriteByte('_')
			}
			buf.WriteRune(unicode.ToLower(r))
			prevLower = false
			continue
		}
		buf.WriteRune(r)
		prevLower = r != '_'
	}
	return buf.String()
}

func (id Identifier) IsZero() bool {
	return id.name == ""
}

// String returns the normalized snake_case form.
func (id Identifier) String() string {
	return id.name
}

func (id Identifier) SnakeCase() string {
	return id.name
}

func (id Identifier) PascalCase() string {
	var buf strings.Builder
	for _, word := range strings.Split(id.name, "_") {
		r, size := utf8.DecodeRuneInString(word)
		if size == 0 {
			continue
		}
		buf.WriteRune(unicode.ToUpper(r))
		buf.WriteString(word[size:])
	}
	return buf.String()
}

func (id Identifier) CamelCase() string {
	pascal := id.PascalCase()
	r, size := utf8.DecodeRuneInString(pascal)
	if size == 0 {
		return ""
	}
	return string(unicode.ToLower(r)) + pascal[size:]
}

// Compare orders identifiers by their normalized text.
func (id Identifier) Compare(other Identifier) int {
	return strings.Compare(id.name, other.name)
}
