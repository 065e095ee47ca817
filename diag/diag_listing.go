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

package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	overline = '‾'
	tabWidth = 4
)

type listingRow struct {
	number int
	line   string
	from   int
	to     int
}

// Listing renders the lines of src touched by the byte range [start, end),
// each followed by a row of overlines under the covered columns. Offsets
// outside of src are clamped. An empty range marks a single column.
func Listing(src string, start, end int) string {
	start = min(max(start, 0), len(src))
	end = min(max(end, start), len(src))

	last := end
	if end > start {
		last = end - 1
	}

	var rows []listingRow
	number := strings.Count(src[:start], "\n") + 1
	pos := strings.LastIndexByte(src[:start], '\n') + 1
	for {
		lineEnd := len(src)
		if idx := strings.IndexByte(src[pos:], '\n'); idx >= 0 {
			lineEnd = pos + idx
		}
		line := strings.TrimSuffix(src[pos:lineEnd], "\r")
		rows = append(rows, listingRow{
			number: number,
			line:   line,
			from:   min(max(start, pos)-pos, len(line)),
			to:     min(min(end, lineEnd)-pos, len(line)),
		})
		if last <= lineEnd || lineEnd == len(src) {
			break
		}
		pos = lineEnd + 1
		number += 1
	}

	gutter := len(strconv.Itoa(rows[len(rows)-1].number))
	var buf strings.Builder
	for ii, row := range rows {
		expanded := expandTabs(row.line)
		fmt.Fprintf(&buf, "%s\n", strings.TrimRight(
			fmt.Sprintf("%*d │ %s", gutter, row.number, expanded),
			" ",
		))

		fromCol := runewidth.StringWidth(expandTabs(row.line[:row.from]))
		toCol := runewidth.StringWidth(expandTabs(row.line[:row.to]))
		count := toCol - fromCol
		if count == 0 && ii == 0 {
			count = 1
		}
		if count > 0 {
			buf.WriteString(strings.Repeat(" ", gutter+3+fromCol))
			buf.WriteString(strings.Repeat(string(overline), count))
			buf.WriteString("\n")
		}
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func expandTabs(line string) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var buf strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			pad := tabWidth - col%tabWidth
			buf.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		buf.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return buf.String()
}
