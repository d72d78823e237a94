/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package main

import (
	"github.com/mkalnins/flightdb/cmd/flightdb"
)

func main() {
	flightdb.Execute()
}
