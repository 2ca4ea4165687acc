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
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is against these; the concrete types below
// carry the offending input.
var (
	ErrConfiguration   = errors.New("invalid configuration")
	ErrIndexOutOfRange = errors.New("document index out of range")
)

// ConfigurationError reports an option or request field that cannot be used.
type ConfigurationError struct {
	Value  any
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
}

func (*ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// IndexError reports a document index outside [0, NumDocs). Position is the
// offset of the offending entry in the list named by Field.
type IndexError struct {
	Field    string
	Position int
	Index    int
	NumDocs  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf(
		"%s[%d]: index %d outside [0, %d)",
		e.Field, e.Position, e.Index, e.NumDocs,
	)
}

func (*IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

func configErr(field string, value any, reason string) error {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}
