/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package flight

import (
	"strconv"
	"strings"
)

// DatetimeFormat is the fixed timestamp layout used by every datetime field
// in the schema, minute precision.
const DatetimeFormat = "2006-01-02 15:04"

// Header is the canonical CSV column sequence.
var Header = []string{
	"flight_id",
	"origin",
	"destination",
	"departure_datetime",
	"arrival_datetime",
	"price",
}

// Record is one validated flight. Records are constructed only by the
// Validator and never mutated afterwards; queries filter them into
// read-only views.
type Record struct {
	FlightID          string  `json:"flight_id" csv:"flight_id"`
	Origin            string  `json:"origin" csv:"origin"`
	Destination       string  `json:"destination" csv:"destination"`
	DepartureDatetime string  `json:"departure_datetime" csv:"departure_datetime"`
	ArrivalDatetime   string  `json:"arrival_datetime" csv:"arrival_datetime"`
	Price             float64 `json:"price" csv:"price"`
}

// Fields returns the record's values in canonical column order.
func (r Record) Fields() []string {
	return []string{
		r.FlightID,
		r.Origin,
		r.Destination,
		r.DepartureDatetime,
		r.ArrivalDatetime,
		formatPrice(r.Price),
	}
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// Rules holds the schema configuration shared by the validator and the line
// classifier. A Rules value is immutable once constructed; components receive
// it by injection so they stay independently testable.
type Rules struct {
	Header          []string
	Delimiter       rune
	DatetimeFormat  string
	DisallowedCodes map[string]bool
}

// DefaultRules returns the process-wide schema configuration.
func DefaultRules() Rules {
	return Rules{
		Header:         Header,
		Delimiter:      ',',
		DatetimeFormat: DatetimeFormat,
		DisallowedCodes: map[string]bool{
			"XXX": true,
		},
	}
}

// IsHeader reports whether a split row matches the expected header sequence,
// ignoring surrounding whitespace in each cell.
func (r Rules) IsHeader(row []string) bool {
	if len(row) != len(r.Header) {
		return false
	}
	for i, cell := range row {
		if strings.TrimSpace(cell) != r.Header[i] {
			return false
		}
	}
	return true
}
