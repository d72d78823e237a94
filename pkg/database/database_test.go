/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package database

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mkalnins/flightdb/pkg/flight"
)

func sampleRecords() []flight.Record {
	return []flight.Record{
		{
			FlightID:          "BA2490",
			Origin:            "LHR",
			Destination:       "JFK",
			DepartureDatetime: "2025-11-14 10:30",
			ArrivalDatetime:   "2025-11-14 13:05",
			Price:             489.99,
		},
		{
			FlightID:          "BT202",
			Origin:            "RIX",
			Destination:       "HEL",
			DepartureDatetime: "2025-11-17 12:00",
			ArrivalDatetime:   "2025-11-17 13:10",
			Price:             59.5,
		},
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	db := New(sampleRecords())
	if err := db.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded.Records, db.Records) {
		t.Errorf("roundtrip changed records:\n%+v\n%+v", db.Records, loaded.Records)
	}
}

func TestSaveEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	if err := New(nil).Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty database must serialize as [], got %q", string(data))
	}
}

func TestLoadRejectsNonArraySnapshots(t *testing.T) {
	dir := t.TempDir()

	for name, contents := range map[string]string{
		"object.json": `{"flight_id": "BA2490"}`,
		"scalar.json": `42`,
		"empty.json":  ``,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected an error for a non-array snapshot", name)
		}
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing snapshot")
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.csv")

	if err := New(sampleRecords()).ExportCSV(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("wanted header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(flight.Header, ",") {
		t.Errorf("wanted canonical header, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "BA2490,LHR,JFK,") {
		t.Errorf("unexpected first row %q", lines[1])
	}
}
