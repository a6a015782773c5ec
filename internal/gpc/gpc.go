/*
 * Copyright (c) 2026, Ethyca, Inc. (https://ethyca.com).
 *
 * Ethyca, Inc. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package gpc resolves conditional blocks in notice copy based on the Global
// Privacy Control signal. Content authors wrap GPC-specific spans in literal
// text markers; the processor keeps or removes each span depending on whether
// the visitor's browser sent the signal.
package gpc

import "strings"

const (
	gpcStart   = "__GPC_START__"
	gpcEnd     = "__GPC_END__"
	noGpcStart = "__NO_GPC_START__"
	noGpcEnd   = "__NO_GPC_END__"
)

// ProcessConditionals resolves the __GPC_START__/__GPC_END__ and
// __NO_GPC_START__/__NO_GPC_END__ marker pairs in text. When hasGPC is true,
// GPC blocks keep their content and NO_GPC blocks are removed entirely; when
// false the polarity inverts. Block content is preserved verbatim and may
// contain inline markup.
//
// Text with no complete marker pair is returned unchanged, an opening marker
// with no matching close included. When at least one block was substituted,
// runs of whitespace in the result are collapsed to a single space and the
// result is trimmed.
//
// Markers of the same kind must not nest; the scanner pairs each opening
// marker with the nearest close, so nested same-type markers produce
// undefined results.
func ProcessConditionals(text string, hasGPC bool) string {
	if text == "" {
		return ""
	}

	var out strings.Builder
	rest := text
	substituted := false

	for {
		gpcIdx := strings.Index(rest, gpcStart)
		noGpcIdx := strings.Index(rest, noGpcStart)
		if gpcIdx < 0 && noGpcIdx < 0 {
			out.WriteString(rest)
			break
		}

		// Process whichever marker kind opens first.
		start, open, close, keep := gpcIdx, gpcStart, gpcEnd, hasGPC
		if gpcIdx < 0 || (noGpcIdx >= 0 && noGpcIdx < gpcIdx) {
			start, open, close, keep = noGpcIdx, noGpcStart, noGpcEnd, !hasGPC
		}

		endIdx := strings.Index(rest[start+len(open):], close)
		if endIdx < 0 {
			// Unbalanced marker: pass the remainder through literally.
			out.WriteString(rest)
			break
		}

		content := rest[start+len(open) : start+len(open)+endIdx]
		out.WriteString(rest[:start])
		if keep {
			out.WriteString(" ")
			out.WriteString(content)
			out.WriteString(" ")
		} else {
			out.WriteString(" ")
		}
		substituted = true
		rest = rest[start+len(open)+endIdx+len(close):]
	}

	if !substituted {
		return text
	}
	return collapseWhitespace(out.String())
}

// collapseWhitespace reduces runs of two or more whitespace characters to a
// single space and trims the ends. A lone whitespace character is left as the
// author wrote it.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var run []rune
	flush := func() {
		if len(run) == 1 {
			b.WriteRune(run[0])
		} else if len(run) > 1 {
			b.WriteByte(' ')
		}
		run = run[:0]
	}

	for _, r := range s {
		if isSpace(r) {
			run = append(run, r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()

	return strings.TrimSpace(b.String())
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
