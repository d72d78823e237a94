/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package query

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/mkalnins/flightdb/pkg/database"
	"github.com/mkalnins/flightdb/pkg/flight"
)

// Result pairs one spec with its ordered match set. Matches is always a
// JSON array, never null, and preserves database order.
type Result struct {
	Query   Spec            `json:"query"`
	Matches []flight.Record `json:"matches"`
}

// Headers returns the canonical column names for tabular rendering.
func (r Result) Headers() []string {
	return flight.Header
}

// Values returns the matching records as rows in canonical column order.
func (r Result) Values() [][]string {
	rows := make([][]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		rows = append(rows, m.Fields())
	}
	return rows
}

// Run filters the whole database through each spec in submission order.
// Specs are independent: no cross-query state, no deduplication, no
// short-circuit on an empty match set.
func (e *Engine) Run(db *database.Database, specs []Spec) []Result {
	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		matches := []flight.Record{}
		for _, rec := range db.Records {
			if e.Matches(rec, spec) {
				matches = append(matches, rec)
			}
		}
		results = append(results, Result{Query: spec, Matches: matches})
	}
	return results
}

// WriteResults writes the result sequence with two-space indentation.
func WriteResults(path string, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding query results")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrap(err, "writing query results")
	}
	return nil
}
