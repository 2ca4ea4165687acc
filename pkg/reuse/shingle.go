// Zaparoo Core
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

package reuse

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultSeparator joins the tokens of a shingle into its canonical form.
const DefaultSeparator = " "

// Shingles creates the overlapping n-token windows of a document, each
// joined with sep into its canonical string.
//
// Example:
//
//	Shingles([]string{"a", "b", "c"}, 2, " ") → ["a b", "b c"]
//
// A document with fewer than n tokens has no shingles. n == 1 yields one
// shingle per token.
func Shingles(tokens []string, n int, sep string) ([]string, error) {
	if n <= 0 {
		return nil, configErr("ngram_length", n, "must be at least 1")
	}
	if len(tokens) < n {
		return []string{}, nil
	}

	shingles := make([]string, 0, len(tokens)-n+1)
	for i := range len(tokens) - n + 1 {
		shingles = append(shingles, JoinShingle(tokens[i:i+n], sep))
	}
	return shingles, nil
}

// JoinShingle builds the canonical form of a token window. Ignore lists in
// term mode must use the same form. The form is unique only while no token
// contains sep; the engine rejects such documents before hashing.
func JoinShingle(window []string, sep string) string {
	switch len(window) {
	case 0:
		return ""
	case 1:
		return window[0]
	}

	size := len(sep) * (len(window) - 1)
	for _, t := range window {
		size += len(t)
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(window[0])
	for _, t := range window[1:] {
		b.WriteString(sep)
		b.WriteString(t)
	}
	return b.String()
}

// Terms returns the comparison units for raw-term mode: the tokens
// themselves, no windowing.
func Terms(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}

// normalizeTokens applies NFC so visually identical tokens with different
// code point sequences share a shingle.
func normalizeTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = norm.NFC.String(t)
	}
	return out
}

// SplitDocuments accepts documents supplied as whitespace-joined,
// already tokenized strings. No other normalization is applied.
func SplitDocuments(texts []string) []Document {
	docs := make([]Document, len(texts))
	for i, t := range texts {
		docs[i] = strings.Fields(t)
	}
	return docs
}
