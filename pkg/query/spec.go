/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package query evaluates declarative filter specifications against the
// flight database. A specification maps recognized field names to constraint
// values; unknown keys impose no constraint and are carried through to the
// result untouched.
package query

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Spec is one declarative filter, decoded straight from its JSON object so
// the result output can echo the query exactly as submitted.
type Spec map[string]any

// LoadSpecs reads a query document: either a single JSON object or an array
// of objects. A bare object is normalized to a one-element sequence. Any
// other shape is a precondition failure.
func LoadSpecs(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading query document")
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing query document")
	}

	switch v := raw.(type) {
	case map[string]any:
		return []Spec{v}, nil
	case []any:
		specs := make([]Spec, 0, len(v))
		for _, elem := range v {
			obj, ok := elem.(map[string]any)
			if !ok {
				return nil, errors.New("query document must be an object or an array of objects")
			}
			specs = append(specs, obj)
		}
		return specs, nil
	}
	return nil, errors.New("query document must be an object or an array of objects")
}
