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

// Package corpus moves pre-tokenized documents, pair lists and ignore lists
// between disk and the reuse engine. It does no tokenization of its own:
// document files hold tokens separated by whitespace.
package corpus

import (
	"bufio"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ZaparooProject/textreuse/pkg/reuse"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DocumentExt is the extension of document files inside a corpus directory.
const DocumentExt = ".txt"

// MatchSeparator joins Result.Matches into a single CSV cell.
const MatchSeparator = "|"

type PairEntry struct {
	DocI int `csv:"doc_i"`
	DocJ int `csv:"doc_j"`
}

type ResultEntry struct {
	NameI        string  `csv:"name_i"`
	NameJ        string  `csv:"name_j"`
	Matches      string  `csv:"matches"`
	DocI         int     `csv:"doc_i"`
	DocJ         int     `csv:"doc_j"`
	Intersection int     `csv:"intersection"`
	SizeI        int     `csv:"size_i"`
	SizeJ        int     `csv:"size_j"`
	Dice         float64 `csv:"dice"`
}

// Corpus is a set of documents in the order they were loaded. Names[i] is
// the file name of Documents[i].
type Corpus struct {
	Names     []string
	Documents []reuse.Document
}

type Loader struct {
	fs afero.Fs
}

func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// LoadDocuments reads every *.txt file in dir, sorted by name, one document
// per file.
func (l *Loader) LoadDocuments(dir string) (*Corpus, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), DocumentExt) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	c := &Corpus{
		Names:     names,
		Documents: make([]reuse.Document, len(names)),
	}
	for i, name := range names {
		data, err := afero.ReadFile(l.fs, filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", name, err)
		}
		c.Documents[i] = strings.Fields(string(data))
	}

	log.Debug().
		Str("dir", dir).
		Int("documents", len(names)).
		Msg("loaded corpus")

	return c, nil
}

// LoadPairs reads a CSV pair list with a doc_i,doc_j header. Indices are
// zero-based. Range checks are left to the engine.
func (l *Loader) LoadPairs(path string) ([]reuse.Pair, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pairs file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close pairs file")
		}
	}()

	var entries []*PairEntry
	if err := gocsv.Unmarshal(f, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pairs CSV: %w", err)
	}

	pairs := make([]reuse.Pair, len(entries))
	for i, e := range entries {
		pairs[i] = reuse.Pair{I: e.DocI, J: e.DocJ}
	}
	return pairs, nil
}

// LoadIgnoreList reads one value per line, skipping blank lines and lines
// starting with '#'. Surrounding whitespace is trimmed; inner whitespace is
// kept so multi-token shingles can be listed.
func (l *Loader) LoadIgnoreList(path string) ([]string, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close ignore file")
		}
	}()

	var values []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		values = append(values, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}
	return values, nil
}

// ParseDocIndices converts ignore-list lines into document indices.
func ParseDocIndices(values []string) ([]int, error) {
	out := make([]int, len(values))
	for i, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ignore entry %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// WriteResults dumps results as CSV records. names may be nil.
func (l *Loader) WriteResults(path string, results []reuse.Result, names []string) error {
	entries := make([]*ResultEntry, len(results))
	for i, r := range results {
		entries[i] = &ResultEntry{
			NameI:        nameAt(names, r.DocI),
			NameJ:        nameAt(names, r.DocJ),
			Matches:      strings.Join(r.Matches, MatchSeparator),
			DocI:         r.DocI,
			DocJ:         r.DocJ,
			Intersection: r.Intersection,
			SizeI:        r.SizeI,
			SizeJ:        r.SizeJ,
			Dice:         r.Dice,
		}
	}

	if err := l.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := l.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}

	if err := gocsv.Marshal(entries, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to marshal results CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close results file: %w", err)
	}
	return nil
}

func nameAt(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}
