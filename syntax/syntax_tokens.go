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

package syntax

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/sietse/typical/schema"
)

const (
	maxSrcLen = 0x7FFFFFFF // (2**31)-1
)

type TokenKind uint8

const (
	T_EOF TokenKind = iota

	T_COLON
	T_DOT
	T_EQ

	T_OPEN_CURL
	T_CLOSE_CURL
	T_OPEN_SQUARE
	T_CLOSE_SQUARE

	T_INT_LIT
	T_PATH_LIT

	T_IDENT
)

func (k TokenKind) String() string {
	switch k {
	case T_EOF:
		return "EOF"
	case T_COLON:
		return "COLON"
	case T_DOT:
		return "DOT"
	case T_EQ:
		return "EQ"
	case T_OPEN_CURL:
		return "OPEN_CURL"
	case T_CLOSE_CURL:
		return "CLOSE_CURL"
	case T_OPEN_SQUARE:
		return "OPEN_SQUARE"
	case T_CLOSE_SQUARE:
		return "CLOSE_SQUARE"
	case T_INT_LIT:
		return "INT_LIT"
	case T_PATH_LIT:
		return "PATH_LIT"
	case T_IDENT:
		return "IDENT"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// Token is one significant token. Whitespace and comments are not
// represented. For T_PATH_LIT, Text holds the path without quotes.
type Token struct {
	Kind TokenKind
	Text string
	Span schema.Span
}

// Tokenize splits src into tokens, always ending with T_EOF. All lexical
// errors in src are reported, as Errors.
func Tokenize(src []byte) ([]Token, error) {
	if len(src) > maxSrcLen {
		return nil, Errors{errSourceTooLong(len(src))}
	}
	if !utf8.Valid(src) {
		return nil, Errors{errInvalidUtf8(src)}
	}
	t := &tokenizer{src: src}
	t.run()
	if len(t.errs) > 0 {
		return nil, t.errs
	}
	return t.tokens, nil
}

type tokenizer struct {
	src    []byte
	offset int
	tokens []Token
	errs   Errors
}

func spanOf(start, end int) schema.Span {
	start32, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	len32, err := safecast.Conv[uint32](end - start)
	if err != nil {
		panic(fmt.Errorf("span length overflow: %w", err))
	}
	return schema.NewSpan(start32, len32)
}

func (t *tokenizer) emit(kind TokenKind, tokenLen int, text string) {
	t.tokens = append(t.tokens, Token{
		Kind: kind,
		Text: text,
		Span: spanOf(t.offset, t.offset+tokenLen),
	})
	t.offset += tokenLen
}

func (t *tokenizer) run() {
	for t.offset < len(t.src) {
		c := t.src[t.offset]
		switch c {
		case ' ', '\t', '\n':
			t.offset += 1
		case '\r':
			if t.offset+1 < len(t.src) && t.src[t.offset+1] == '\n' {
				t.offset += 2
				continue
			}
			t.errs = append(t.errs, errForbiddenControlCharacter(spanOf(t.offset, t.offset+1), c))
			t.offset += 1
		case '#':
			t.skipComment()
		case ':':
			t.emit(T_COLON, 1, ":")
		case '.':
			t.emit(T_DOT, 1, ".")
		case '=':
			t.emit(T_EQ, 1, "=")
		case '{':
			t.emit(T_OPEN_CURL, 1, "{")
		case '}':
			t.emit(T_CLOSE_CURL, 1, "}")
		case '[':
			t.emit(T_OPEN_SQUARE, 1, "[")
		case ']':
			t.emit(T_CLOSE_SQUARE, 1, "]")
		case '\'':
			t.nextPathLit()
		default:
			t.nextBig()
		}
	}
	t.tokens = append(t.tokens, Token{
		Kind: T_EOF,
		Span: spanOf(len(t.src), len(t.src)),
	})
}

func (t *tokenizer) skipComment() {
	for t.offset < len(t.src) && t.src[t.offset] != '\n' && t.src[t.offset] != '\r' {
		t.offset += 1
	}
}

func (t *tokenizer) nextBig() {
	c := t.src[t.offset]
	if c >= '0' && c <= '9' {
		t.nextIntLit()
		return
	}
	r, size := utf8.DecodeRune(t.src[t.offset:])
	if unicode.IsLetter(r) {
		t.nextIdent()
		return
	}
	span := spanOf(t.offset, t.offset+size)
	if r < 0x20 || r == 0x7F {
		t.errs = append(t.errs, errForbiddenControlCharacter(span, c))
	} else {
		t.errs = append(t.errs, errUnexpectedCharacter(span, r))
	}
	t.offset += size
}

func (t *tokenizer) nextIntLit() {
	end := t.offset
	invalid := false
	for end < len(t.src) {
		c := t.src[end]
		if c >= '0' && c <= '9' {
			end += 1
			continue
		}
		r, size := utf8.DecodeRune(t.src[end:])
		if unicode.IsLetter(r) || r == '_' {
			invalid = true
			end += size
			continue
		}
		break
	}
	text := string(t.src[t.offset:end])
	if invalid || (len(text) > 1 && text[0] == '0') {
		t.errs = append(t.errs, errIntLitInvalid(spanOf(t.offset, end), text))
		t.offset = end
		return
	}
	t.emit(T_INT_LIT, end-t.offset, text)
}

func (t *tokenizer) nextPathLit() {
	end := t.offset + 1
	for end < len(t.src) {
		switch t.src[end] {
		case '\'':
			text := string(t.src[t.offset+1 : end])
			t.emit(T_PATH_LIT, end+1-t.offset, text)
			return
		case '\n', '\r':
			t.errs = append(t.errs, errPathLitUnterminated(spanOf(t.offset, end)))
			t.offset = end
			return
		}
		end += 1
	}
	t.errs = append(t.errs, errPathLitUnterminated(spanOf(t.offset, end)))
	t.offset = end
}

func (t *tokenizer) nextIdent() {
	end := t.offset
	for end < len(t.src) {
		r, size := utf8.DecodeRune(t.src[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.Is(unicode.Mn, r) {
			end += size
			continue
		}
		break
	}
	text := string(t.src[t.offset:end])
	if _, err := schema.NewIdentifier(text); err != nil {
		t.errs = append(t.errs, errIdentInvalid(spanOf(t.offset, end), text))
		t.offset = end
		return
	}
	t.emit(T_IDENT, end-t.offset, text)
}
