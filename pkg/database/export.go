/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package database

import (
	"os"

	"github.com/jszwec/csvutil"
	"github.com/pkg/errors"

	"github.com/mkalnins/flightdb/pkg/flight"
)

// ExportCSV writes the database back out as CSV with the canonical header
// row, suitable for re-ingestion.
func (db *Database) ExportCSV(path string) error {
	records := db.Records
	if records == nil {
		records = []flight.Record{}
	}

	data, err := csvutil.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "encoding CSV export")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing CSV export")
	}
	return nil
}
