/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package query

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ResponseFilename builds response_<studentid>_<name>_<lastname>_<YYYYMMDD_HHMM>.json.
// Identity components are sanitized down to alphanumerics, '-' and '_', with
// placeholder defaults for missing values. The timestamp has minute
// precision; collisions within the same minute overwrite.
func ResponseFilename(studentID, name, lastName string, now time.Time) string {
	if studentID == "" {
		studentID = "studentid"
	}
	if name == "" {
		name = "name"
	}
	if lastName == "" {
		lastName = "lastname"
	}

	return fmt.Sprintf("response_%s_%s_%s_%s.json",
		sanitize(studentID),
		sanitize(name),
		sanitize(lastName),
		now.Format("20060102_1504"),
	)
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
