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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/textreuse/pkg/config"
	"github.com/ZaparooProject/textreuse/pkg/corpus"
	"github.com/ZaparooProject/textreuse/pkg/helpers"
	"github.com/ZaparooProject/textreuse/pkg/reuse"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// development harness: loads a directory of pre-tokenized documents, runs
// every requested comparison and dumps the raw result records as CSV

const defaultOutput = "reuse_results.csv"

type flags struct {
	configDir  *string
	docs       *string
	pairs      *string
	ignore     *string
	ignoreMode *string
	out        *string
	ngram      *int
	workers    *int
	debug      *bool
	version    *bool
}

func setupFlags(fs *flag.FlagSet) *flags {
	return &flags{
		configDir: fs.String(
			"config",
			".",
			"directory holding textreuse.toml",
		),
		docs: fs.String(
			"docs",
			"",
			"directory of *.txt documents, one whitespace-tokenized document per file",
		),
		pairs: fs.String(
			"pairs",
			"",
			"CSV of doc_i,doc_j pairs to compare (default all pairs)",
		),
		ignore: fs.String(
			"ignore",
			"",
			"file with one ignored document index or shingle per line",
		),
		ignoreMode: fs.String(
			"ignore-mode",
			"",
			"what the ignore file lists: none, documents or terms",
		),
		out: fs.String(
			"out",
			"",
			"path of the results CSV",
		),
		ngram: fs.Int(
			"ngram",
			0,
			"shingle length, overrides engine.ngram_length",
		),
		workers: fs.Int(
			"workers",
			0,
			"block comparison workers, overrides engine.workers",
		),
		debug: fs.Bool(
			"debug",
			false,
			"enable debug logging, overrides debug_logging",
		),
		version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

// apply overrides harness config values with any flags given on the
// command line.
func (f *flags) apply(h config.Harness) config.Harness {
	if *f.docs != "" {
		h.DocumentsDir = *f.docs
	}
	if *f.pairs != "" {
		h.PairsFile = *f.pairs
	}
	if *f.ignore != "" {
		h.IgnoreFile = *f.ignore
	}
	if *f.ignoreMode != "" {
		h.IgnoreMode = *f.ignoreMode
	}
	if *f.out != "" {
		h.OutputFile = *f.out
	}
	if h.OutputFile == "" {
		h.OutputFile = defaultOutput
	}
	return h
}

// override copies explicitly passed flags into the loaded config. Engine
// flags apply only when present in set, so an explicit -ngram 0 is
// rejected by the engine rather than ignored.
func (f *flags) override(cfg *config.Instance, set map[string]bool) {
	cfg.SetHarness(f.apply(cfg.Harness()))
	if set["ngram"] {
		cfg.SetNGramLength(*f.ngram)
	}
	if set["workers"] {
		cfg.SetWorkers(*f.workers)
	}
	if set["debug"] {
		cfg.SetDebugLogging(*f.debug)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1) //nolint:gocritic // stop already called
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("reusescan", flag.ContinueOnError)
	f := setupFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.version {
		_, _ = fmt.Fprintf(stdout, "reusescan v%s\n", config.AppVersion)
		return nil
	}

	cfg, err := config.NewConfig(*f.configDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	f.override(cfg, set)
	h := cfg.Harness()

	err = helpers.InitLogging(
		h.LogDir,
		cfg.DebugLogging(),
		[]io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}},
	)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	log.Debug().Str("path", cfg.Path()).Msg("loaded config")

	if h.DocumentsDir == "" {
		return errors.New("no documents directory given")
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}

	loader := corpus.NewLoader(afero.NewOsFs())
	req, names, err := buildRequest(loader, h)
	if err != nil {
		return err
	}

	eng, err := reuse.NewEngine(opts)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	rep, err := eng.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if err := loader.WriteResults(h.OutputFile, rep.Results, names); err != nil {
		return err
	}

	log.Info().
		Str("run_id", rep.Stats.RunID).
		Int("documents", len(names)).
		Int("results", len(rep.Results)).
		Stringer("strategy", rep.Stats.Strategy).
		Dur("elapsed", rep.Stats.Elapsed).
		Str("output", h.OutputFile).
		Msg("wrote results")

	return nil
}

func buildRequest(loader *corpus.Loader, h config.Harness) (reuse.Request, []string, error) {
	var req reuse.Request

	c, err := loader.LoadDocuments(h.DocumentsDir)
	if err != nil {
		return req, nil, err
	}
	req.Documents = c.Documents

	if h.PairsFile != "" {
		req.Pairs, err = loader.LoadPairs(h.PairsFile)
		if err != nil {
			return req, nil, err
		}
	}

	req.IgnoreMode, err = reuse.ParseIgnoreMode(h.IgnoreMode)
	if err != nil {
		return req, nil, err
	}
	if req.IgnoreMode == reuse.IgnoreNone {
		return req, c.Names, nil
	}

	if h.IgnoreFile == "" {
		return req, nil, fmt.Errorf("ignore mode %s needs an ignore file", req.IgnoreMode)
	}
	values, err := loader.LoadIgnoreList(h.IgnoreFile)
	if err != nil {
		return req, nil, err
	}

	if req.IgnoreMode == reuse.IgnoreDocuments {
		req.IgnoreDocs, err = corpus.ParseDocIndices(values)
		if err != nil {
			return req, nil, err
		}
	} else {
		req.IgnoreTerms = values
	}
	return req, c.Names, nil
}
