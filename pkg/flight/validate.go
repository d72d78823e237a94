/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package flight

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Validation is the tagged outcome of validating one row: either a Record
// and no reasons, or no Record and at least one reason. Row-level failures
// are data, not errors; only the caller's I/O can fail.
type Validation struct {
	Record  *Record
	Reasons []string
}

// Valid reports whether the row produced a record.
func (v Validation) Valid() bool {
	return len(v.Reasons) == 0
}

// Validator checks split rows against the schema rules.
type Validator struct {
	rules Rules
}

func NewValidator(rules Rules) *Validator {
	return &Validator{rules: rules}
}

// Validate applies every field rule to a split row and accumulates the
// reasons in rule order. Rules never short-circuit on an earlier failure;
// the only exception is a wrong field count, which stops evaluation since
// no field positions can be trusted.
func (v *Validator) Validate(fields []string) Validation {
	if len(fields) != len(v.rules.Header) {
		return Validation{Reasons: []string{"missing required fields"}}
	}

	trimmed := make([]string, len(fields))
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
	}
	flightID := trimmed[0]
	origin := trimmed[1]
	destination := trimmed[2]
	depStr := trimmed[3]
	arrStr := trimmed[4]
	priceStr := trimmed[5]

	var reasons []string

	// flight_id: 2-8 alphanumeric characters. The length and character
	// checks are independent, so a long id with a symbol collects both.
	if utf8.RuneCountInString(flightID) < 2 || !alphanumeric(flightID) {
		reasons = append(reasons, "invalid flight_id")
	}
	if utf8.RuneCountInString(flightID) > 8 {
		reasons = append(reasons, "flight_id too long (more than 8 characters)")
	}

	if reason := v.airportReason("origin", origin); reason != "" {
		reasons = append(reasons, reason)
	}
	if reason := v.airportReason("destination", destination); reason != "" {
		reasons = append(reasons, reason)
	}

	depTime, depErr := time.Parse(v.rules.DatetimeFormat, depStr)
	arrTime, arrErr := time.Parse(v.rules.DatetimeFormat, arrStr)
	switch {
	case depErr != nil && arrErr != nil:
		reasons = append(reasons, "invalid date format")
	case depErr != nil:
		reasons = append(reasons, "invalid departure datetime")
	case arrErr != nil:
		reasons = append(reasons, "invalid arrival datetime")
	}
	if depErr == nil && arrErr == nil && !arrTime.After(depTime) {
		reasons = append(reasons, "arrival before departure")
	}

	price, priceErr := strconv.ParseFloat(priceStr, 64)
	if priceErr != nil {
		reasons = append(reasons, "invalid price value")
		price = 0
	} else if price <= 0 {
		reasons = append(reasons, "negative price value")
	}

	if len(reasons) > 0 {
		return Validation{Reasons: reasons}
	}

	return Validation{Record: &Record{
		FlightID:          flightID,
		Origin:            origin,
		Destination:       destination,
		DepartureDatetime: depStr,
		ArrivalDatetime:   arrStr,
		Price:             price,
	}}
}

// airportReason returns the single applicable reason for an airport code
// field, or "" when the code is acceptable. Codes from the disallowed set
// report the same reason as a structurally invalid code.
func (v *Validator) airportReason(field, code string) string {
	if code == "" {
		return "missing " + field + " field"
	}
	if utf8.RuneCountInString(code) != 3 || !upperAlpha(code) {
		return "invalid " + field + " code"
	}
	if v.rules.DisallowedCodes[code] {
		return "invalid " + field + " code"
	}
	return ""
}

func alphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func upperAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
