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

// Package diag renders diagnostics: messages attributed to a file, with an
// optional source listing and underlying cause.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	pathColor  = color.New(color.Bold)
	codeColor  = color.New(color.FgMagenta)
)

// EnableColor toggles ANSI highlighting for all rendered diagnostics.
func EnableColor(enabled bool) {
	color.NoColor = !enabled
}

// Code highlights a fragment of a message, such as a path or a name.
func Code(s string) string {
	return codeColor.Sprint(s)
}

// Diagnostic is one reportable failure.
type Diagnostic struct {
	// Code is zero for uncoded diagnostics.
	Code    uint32
	Message string
	// Path is the file the diagnostic is attributed to, if any.
	Path    string
	Listing string
	Reason  error
}

var _ error = (*Diagnostic)(nil)

func New(code uint32, message string) *Diagnostic {
	return &Diagnostic{
		Code:    code,
		Message: message,
	}
}

func Newf(code uint32, format string, args ...any) *Diagnostic {
	return New(code, fmt.Sprintf(format, args...))
}

// WithListing attributes the diagnostic to a file and a listing of the
// relevant source.
func (d *Diagnostic) WithListing(path, listing string) *Diagnostic {
	d.Path = path
	d.Listing = listing
	return d
}

func (d *Diagnostic) WithPath(path string) *Diagnostic {
	d.Path = path
	return d
}

func (d *Diagnostic) WithReason(reason error) *Diagnostic {
	d.Reason = reason
	return d
}

func (d *Diagnostic) Unwrap() error {
	return d.Reason
}

func (d *Diagnostic) Error() string {
	var buf strings.Builder
	buf.WriteString(errorColor.Sprint("[Error]"))
	if d.Path != "" {
		buf.WriteString(" ")
		buf.WriteString(pathColor.Sprintf("[%s]", d.Path))
	}
	buf.WriteString(" ")
	if d.Code != 0 {
		fmt.Fprintf(&buf, "E%d: ", d.Code)
	}
	buf.WriteString(d.Message)
	if d.Listing != "" {
		buf.WriteString("\n\n")
		buf.WriteString(d.Listing)
	}
	if d.Reason != nil {
		if d.Listing != "" {
			buf.WriteString("\n")
		} else {
			buf.WriteString("\n\n")
		}
		fmt.Fprintf(&buf, "Reason: %s", d.Reason)
	}
	return buf.String()
}

// List is an ordered collection of diagnostics, rendered as one report.
type List []*Diagnostic

var _ error = List(nil)

// Err returns nil for an empty list, and the list itself otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Unwrap() []error {
	errs := make([]error, len(l))
	for ii, d := range l {
		errs[ii] = d
	}
	return errs
}

// Error joins the diagnostics in order. Consecutive diagnostics are separated
// by a blank line, unless the previous one already ends in a line that looks
// empty (such as the overline row of a listing).
func (l List) Error() string {
	var buf strings.Builder
	for _, d := range l {
		acc := buf.String()
		buf.WriteString("\n")
		if !looksEmpty(acc[strings.LastIndexByte(acc, '\n')+1:]) {
			buf.WriteString("\n")
		}
		buf.WriteString(d.Error())
	}
	return strings.TrimSpace(buf.String())
}

func looksEmpty(line string) bool {
	for _, r := range line {
		if r != ' ' && r != overline {
			return false
		}
	}
	return true
}

// Collect flattens err into a List. Lists are returned as-is, a lone
// Diagnostic becomes a one-element List, and any other error becomes an
// uncoded diagnostic.
func Collect(err error) List {
	if err == nil {
		return nil
	}
	var list List
	if errors.As(err, &list) {
		return list
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return List{d}
	}
	return List{New(0, err.Error())}
}
