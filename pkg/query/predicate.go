/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package query

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mkalnins/flightdb/pkg/flight"
)

// Engine evaluates specs against records. All constraints are conjunctive;
// evaluation order is immaterial.
type Engine struct {
	rules flight.Rules
}

func NewEngine(rules flight.Rules) *Engine {
	return &Engine{rules: rules}
}

// Matches reports whether a record satisfies every constraint present in the
// spec. Timestamp and price constraints fail closed: if either side of a
// comparison cannot be parsed, the record does not match. That is policy,
// not an error; predicate evaluation never aborts a run.
func (e *Engine) Matches(rec flight.Record, spec Spec) bool {
	exact := map[string]string{
		"flight_id":   rec.FlightID,
		"origin":      rec.Origin,
		"destination": rec.Destination,
	}
	for key, fieldValue := range exact {
		if want, ok := spec[key]; ok {
			if text(want) != fieldValue {
				return false
			}
		}
	}

	// departure_datetime is an inclusive lower bound.
	if want, ok := spec["departure_datetime"]; ok {
		qDep, err := time.Parse(e.rules.DatetimeFormat, text(want))
		if err != nil {
			return false
		}
		dep, err := time.Parse(e.rules.DatetimeFormat, rec.DepartureDatetime)
		if err != nil {
			return false
		}
		if dep.Before(qDep) {
			return false
		}
	}

	// arrival_datetime is an inclusive upper bound.
	if want, ok := spec["arrival_datetime"]; ok {
		qArr, err := time.Parse(e.rules.DatetimeFormat, text(want))
		if err != nil {
			return false
		}
		arr, err := time.Parse(e.rules.DatetimeFormat, rec.ArrivalDatetime)
		if err != nil {
			return false
		}
		if arr.After(qArr) {
			return false
		}
	}

	// price is an inclusive upper bound; the constraint value may be a JSON
	// number or a numeric string.
	if want, ok := spec["price"]; ok {
		limit, err := toFloat(want)
		if err != nil {
			return false
		}
		if rec.Price > limit {
			return false
		}
	}

	return true
}

// text coerces a constraint value to its string form for exact matching and
// timestamp parsing.
func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}
