/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package database holds the in-memory flight collection and its flat
// JSON snapshot format. A database is an ordered list of records with no
// identity beyond position; duplicate flight ids are permitted.
package database

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/mkalnins/flightdb/pkg/flight"
)

type Database struct {
	Records []flight.Record
}

func New(records []flight.Record) *Database {
	return &Database{Records: records}
}

func (db *Database) Len() int {
	return len(db.Records)
}

// Load reads a JSON snapshot. The top-level document must be an array of
// flight objects; anything else is a precondition failure for the run.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading database snapshot")
	}

	trimmed := bytes.TrimLeftFunc(data, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("database snapshot must be a JSON array of flight objects")
	}

	var records []flight.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "parsing database snapshot")
	}
	return New(records), nil
}

// Save writes the snapshot with two-space indentation. An empty database
// serializes as [] rather than null.
func (db *Database) Save(path string) error {
	records := db.Records
	if records == nil {
		records = []flight.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding database snapshot")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrap(err, "writing database snapshot")
	}
	return nil
}
