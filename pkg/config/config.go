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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/textreuse/pkg/helpers/syncutil"
	"github.com/ZaparooProject/textreuse/pkg/reuse"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// AppVersion is replaced at build time with -ldflags.
var AppVersion = "DEVELOPMENT"

const (
	SchemaVersion = 1
	CfgEnv        = "TEXTREUSE_CFG"
	CfgFile       = "textreuse.toml"
)

type Values struct {
	Harness      Harness `toml:"harness,omitempty"`
	Engine       Engine  `toml:"engine"`
	ConfigSchema int     `toml:"config_schema"`
	DebugLogging bool    `toml:"debug_logging"`
}

type Engine struct {
	Separator           string `toml:"separator"`
	Duplicates          string `toml:"duplicates" validate:"omitempty,oneof=set multiset"`
	Granularity         string `toml:"granularity" validate:"omitempty,oneof=shingles terms"`
	Collisions          string `toml:"collisions" validate:"omitempty,oneof=confirm accept"`
	Strategy            string `toml:"strategy" validate:"omitempty,oneof=auto sequential block"`
	NGramLength         int    `toml:"ngram_length" validate:"gte=1"`
	BlockSize           int    `toml:"block_size" validate:"gte=0"`
	Workers             int    `toml:"workers" validate:"gte=0,lte=256"`
	SequentialThreshold int    `toml:"sequential_threshold" validate:"gte=0"`
	ReportMatches       bool   `toml:"report_matches"`
	NormalizeUnicode    bool   `toml:"normalize_unicode"`
}

type Harness struct {
	DocumentsDir string `toml:"documents_dir,omitempty"`
	PairsFile    string `toml:"pairs_file,omitempty"`
	IgnoreFile   string `toml:"ignore_file,omitempty"`
	IgnoreMode   string `toml:"ignore_mode,omitempty" validate:"omitempty,oneof=none documents terms"`
	OutputFile   string `toml:"output_file,omitempty"`
	LogDir       string `toml:"log_dir,omitempty"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Engine: Engine{
		Separator:           reuse.DefaultSeparator,
		Duplicates:          "set",
		Granularity:         "shingles",
		Collisions:          "confirm",
		Strategy:            "auto",
		NGramLength:         reuse.DefaultNGramLength,
		BlockSize:           reuse.DefaultBlockSize,
		Workers:             1,
		SequentialThreshold: reuse.DefaultSequentialThreshold,
	},
	Harness: Harness{
		IgnoreMode: "none",
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads textreuse.toml from configDir, or the file named by
// TEXTREUSE_CFG, writing the defaults to disk first if it does not exist.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := Validate(&newVals); err != nil {
		return err
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func (c *Instance) Harness() Harness {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Harness
}

func (c *Instance) SetHarness(h Harness) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Harness = h
}

func (c *Instance) NGramLength() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Engine.NGramLength
}

func (c *Instance) SetNGramLength(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Engine.NGramLength = n
}

func (c *Instance) SetWorkers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Engine.Workers = n
}

// EngineOptions converts the [engine] table into reuse.Options.
func (c *Instance) EngineOptions() (reuse.Options, error) {
	c.mu.RLock()
	eng := c.vals.Engine
	c.mu.RUnlock()
	return eng.Options()
}

// Options maps the config strings onto the engine's enumerated modes.
func (e Engine) Options() (reuse.Options, error) {
	opts := reuse.DefaultOptions()

	dup, err := reuse.ParseDuplicateMode(e.Duplicates)
	if err != nil {
		return opts, fmt.Errorf("engine config: %w", err)
	}
	gran, err := reuse.ParseGranularity(e.Granularity)
	if err != nil {
		return opts, fmt.Errorf("engine config: %w", err)
	}
	coll, err := reuse.ParseCollisionPolicy(e.Collisions)
	if err != nil {
		return opts, fmt.Errorf("engine config: %w", err)
	}
	strat, err := reuse.ParseStrategy(e.Strategy)
	if err != nil {
		return opts, fmt.Errorf("engine config: %w", err)
	}

	opts.Duplicates = dup
	opts.Granularity = gran
	opts.Collisions = coll
	opts.Strategy = strat
	opts.Separator = e.Separator
	opts.NGramLength = e.NGramLength
	opts.BlockSize = e.BlockSize
	opts.Workers = e.Workers
	opts.SequentialThreshold = e.SequentialThreshold
	opts.ReportMatches = e.ReportMatches
	opts.NormalizeUnicode = e.NormalizeUnicode
	return opts, nil
}
