/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Diagnostic reports one input line that was skipped, malformed, or failed
// validation. Entries are append-only and collected in input order.
type Diagnostic struct {
	// Source is the base name of the originating file. It is empty for
	// single-source runs, which use the bare "Line N" prefix.
	Source  string
	Line    int
	Raw     string
	Reasons []string
}

func (d Diagnostic) String() string {
	prefix := fmt.Sprintf("Line %d: ", d.Line)
	if d.Source != "" {
		prefix = fmt.Sprintf("%s Line %d: ", d.Source, d.Line)
	}
	return prefix + d.Raw + " → " + strings.Join(d.Reasons, ", ")
}

// WriteDiagnostics writes one formatted diagnostic per line.
func WriteDiagnostics(path string, diags []Diagnostic) error {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.Wrap(err, "writing diagnostics file")
	}
	return nil
}
