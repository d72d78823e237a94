/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/mkalnins/flightdb/pkg/flight"
)

// Result accumulates the outcome of one ingestion run: valid records and
// diagnostics, both in file-then-line order.
type Result struct {
	Records     []flight.Record
	Diagnostics []Diagnostic
}

// Reader streams CSV sources through the line classifier and the field
// validator. It is a single-threaded batch reader; each source is consumed
// in one pass.
type Reader struct {
	rules     flight.Rules
	validator *flight.Validator
}

func NewReader(rules flight.Rules) *Reader {
	return &Reader{
		rules:     rules,
		validator: flight.NewValidator(rules),
	}
}

// File ingests a single CSV source. Diagnostics use the bare "Line N" prefix.
func (r *Reader) File(path string) (*Result, error) {
	result := &Result{}
	if err := r.source(path, "", result); err != nil {
		return nil, err
	}
	return result, nil
}

// Directory ingests every file in dir whose lowercased name ends in ".csv"
// (non-recursive), sorted by name for determinism. Each source keeps its own
// header flag and line numbering; diagnostics are prefixed with the source's
// base name. An unreadable directory or an empty candidate set is a fatal
// precondition, reported before any source is processed.
func (r *Reader) Directory(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "enumerating CSV sources")
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, errors.Errorf("no CSV sources found in %s", dir)
	}
	sort.Strings(names)

	result := &Result{}
	for _, name := range names {
		if err := r.source(filepath.Join(dir, name), name, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// source classifies each physical line of one file and appends records and
// diagnostics to result. sourceName is the diagnostic prefix; empty means a
// single-source run.
func (r *Reader) source(path, sourceName string, result *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening source")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	seenHeader := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		// Blank lines are dropped without a diagnostic.
		if strings.TrimSpace(raw) == "" {
			continue
		}

		if strings.HasPrefix(strings.TrimLeftFunc(raw, unicode.IsSpace), "#") {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Source:  sourceName,
				Line:    lineNo,
				Raw:     raw,
				Reasons: []string{"comment line, ignored for data parsing"},
			})
			continue
		}

		row, err := r.splitLine(raw)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Source:  sourceName,
				Line:    lineNo,
				Raw:     raw,
				Reasons: []string{"could not parse CSV line"},
			})
			continue
		}

		// Only the first header occurrence per source is consumed; a later
		// identical header line falls through to validation and is reported
		// like any other invalid row.
		if !seenHeader && r.rules.IsHeader(row) {
			seenHeader = true
			continue
		}

		validation := r.validator.Validate(row)
		if validation.Valid() {
			result.Records = append(result.Records, *validation.Record)
			continue
		}
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Source:  sourceName,
			Line:    lineNo,
			Raw:     raw,
			Reasons: validation.Reasons,
		})
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading source")
	}
	return nil
}

// splitLine performs delimiter-aware splitting of one physical line. Quoted
// fields may contain the delimiter; malformed quoting yields an error that
// the caller converts into a diagnostic.
func (r *Reader) splitLine(raw string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.Comma = r.rules.Delimiter
	reader.FieldsPerRecord = -1
	row, err := reader.Read()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	return row, err
}
