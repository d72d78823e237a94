/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andreyvit/diff"

	"github.com/mkalnins/flightdb/pkg/flight"
)

func writeSource(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func formatDiagnostics(diags []Diagnostic) string {
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}

func TestSingleFile(t *testing.T) {
	contents := strings.Join([]string{
		"flight_id,origin,destination,departure_datetime,arrival_datetime,price",
		"BA2490,LHR,JFK,2025-11-14 10:30,2025-11-14 13:05,489.99",
		"",
		"# seasonal schedule below",
		"W61025,XXX,RIX,2025-11-16 11:00,2025-11-16 13:00,80.00",
		"\"BT101,RIX,TLL,2025-11-17 09:00,2025-11-17 10:00,45.00",
		"BT202,RIX,HEL,2025-11-17 12:00,2025-11-17 13:10,59.50",
	}, "\n") + "\n"

	path := writeSource(t, t.TempDir(), "schedule.csv", contents)

	reader := NewReader(flight.DefaultRules())
	result, err := reader.File(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("wanted 2 valid records, got %d", len(result.Records))
	}
	if result.Records[0].FlightID != "BA2490" || result.Records[1].FlightID != "BT202" {
		t.Errorf("records out of order: %+v", result.Records)
	}

	want := strings.Join([]string{
		"Line 4: # seasonal schedule below → comment line, ignored for data parsing",
		"Line 5: W61025,XXX,RIX,2025-11-16 11:00,2025-11-16 13:00,80.00 → invalid origin code",
		"Line 6: \"BT101,RIX,TLL,2025-11-17 09:00,2025-11-17 10:00,45.00 → could not parse CSV line",
	}, "\n")
	if got := formatDiagnostics(result.Diagnostics); got != want {
		t.Errorf("diagnostics mismatch:\n%s", diff.LineDiff(want, got))
	}
}

func TestBlankLinesAreDroppedSilently(t *testing.T) {
	contents := "\n   \n\t\nBA2490,LHR,JFK,2025-11-14 10:30,2025-11-14 13:05,489.99\n"
	path := writeSource(t, t.TempDir(), "blank.csv", contents)

	reader := NewReader(flight.DefaultRules())
	result, err := reader.File(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Records) != 1 {
		t.Errorf("wanted 1 record, got %d", len(result.Records))
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("blank lines must not produce diagnostics, got %v", result.Diagnostics)
	}
}

func TestQuotedFieldsMayContainTheDelimiter(t *testing.T) {
	contents := "BA2490,LHR,JFK,\"2025-11-14 10:30\",2025-11-14 13:05,489.99\n"
	path := writeSource(t, t.TempDir(), "quoted.csv", contents)

	reader := NewReader(flight.DefaultRules())
	result, err := reader.File(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("wanted 1 record, got %d diagnostics %v", len(result.Records), result.Diagnostics)
	}
}

func TestSecondHeaderFallsThroughToValidation(t *testing.T) {
	header := "flight_id,origin,destination,departure_datetime,arrival_datetime,price"
	contents := strings.Join([]string{
		header,
		"BA2490,LHR,JFK,2025-11-14 10:30,2025-11-14 13:05,489.99",
		header,
	}, "\n") + "\n"
	path := writeSource(t, t.TempDir(), "twice.csv", contents)

	reader := NewReader(flight.DefaultRules())
	result, err := reader.File(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Records) != 1 {
		t.Errorf("wanted 1 record, got %d", len(result.Records))
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("second header occurrence must be reported, got %v", result.Diagnostics)
	}
	if result.Diagnostics[0].Line != 3 {
		t.Errorf("wanted diagnostic on line 3, got line %d", result.Diagnostics[0].Line)
	}
}

func TestDirectoryOrderingAndPrefixes(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.csv", strings.Join([]string{
		"flight_id,origin,destination,departure_datetime,arrival_datetime,price",
		"BT202,RIX,HEL,2025-11-17 12:00,2025-11-17 13:10,59.50",
		"# trailing comment",
	}, "\n")+"\n")
	writeSource(t, dir, "a.csv", strings.Join([]string{
		"flight_id,origin,destination,departure_datetime,arrival_datetime,price",
		"W61025,XXX,RIX,2025-11-16 11:00,2025-11-16 13:00,80.00",
		"BA2490,LHR,JFK,2025-11-14 10:30,2025-11-14 13:05,489.99",
	}, "\n")+"\n")
	writeSource(t, dir, "notes.txt", "not a source\n")

	reader := NewReader(flight.DefaultRules())
	result, err := reader.Directory(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Sources are processed in sorted-name order, records concatenated
	// source by source.
	if len(result.Records) != 2 {
		t.Fatalf("wanted 2 records, got %d", len(result.Records))
	}
	if result.Records[0].FlightID != "BA2490" || result.Records[1].FlightID != "BT202" {
		t.Errorf("records out of source order: %+v", result.Records)
	}

	want := strings.Join([]string{
		"a.csv Line 2: W61025,XXX,RIX,2025-11-16 11:00,2025-11-16 13:00,80.00 → invalid origin code",
		"b.csv Line 3: # trailing comment → comment line, ignored for data parsing",
	}, "\n")
	if got := formatDiagnostics(result.Diagnostics); got != want {
		t.Errorf("diagnostics mismatch:\n%s", diff.LineDiff(want, got))
	}
}

func TestPerSourceHeaderFlagAndLineNumbering(t *testing.T) {
	dir := t.TempDir()
	header := "flight_id,origin,destination,departure_datetime,arrival_datetime,price"
	writeSource(t, dir, "a.csv", header+"\nBA2490,LHR,JFK,2025-11-14 10:30,2025-11-14 13:05,489.99\n")
	writeSource(t, dir, "b.csv", header+"\nBT202,RIX,HEL,2025-11-17 12:00,2025-11-17 13:10,59.50\n")

	reader := NewReader(flight.DefaultRules())
	result, err := reader.Directory(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Each source consumes its own first header; nothing spills over.
	if len(result.Records) != 2 {
		t.Errorf("wanted 2 records, got %d", len(result.Records))
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestEmptyDirectoryIsFatal(t *testing.T) {
	reader := NewReader(flight.DefaultRules())

	if _, err := reader.Directory(t.TempDir()); err == nil {
		t.Error("expected an error for a directory with no CSV sources")
	}
	if _, err := reader.Directory(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestMissingFileIsFatal(t *testing.T) {
	reader := NewReader(flight.DefaultRules())
	if _, err := reader.File(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected an error for a missing source file")
	}
}
