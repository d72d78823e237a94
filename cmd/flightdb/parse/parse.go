/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkalnins/flightdb/pkg/database"
	"github.com/mkalnins/flightdb/pkg/flight"
	"github.com/mkalnins/flightdb/pkg/ingest"
)

var Command = &cobra.Command{
	Use:   "parse",
	Short: "Parse flight schedule CSV sources into a JSON database",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		result := Ingest(log, viper.GetString("parse.input"), viper.GetString("parse.directory"))

		diagPath := viper.GetString("parse.errors")
		if len(result.Diagnostics) > 0 {
			if err := ingest.WriteDiagnostics(diagPath, result.Diagnostics); err != nil {
				log.Fatal().Err(err).Msg("unable to write diagnostics")
			}
			log.Info().
				Str("path", diagPath).
				Msgf("%s invalid lines reported", humanize.Comma(int64(len(result.Diagnostics))))
		}

		db := database.New(result.Records)
		out := viper.GetString("parse.output")
		if err := db.Save(out); err != nil {
			log.Fatal().Err(err).Msg("unable to save database snapshot")
		}
		log.Info().
			Str("path", out).
			Msgf("parsed %s valid flights", humanize.Comma(int64(db.Len())))
	},
}

// Ingest runs the configured CSV sources through the reader. A missing or
// ambiguous source selection and any enumeration failure are fatal
// preconditions, reported before any output artifact is produced.
func Ingest(log zerolog.Logger, input, dir string) *ingest.Result {
	if input == "" && dir == "" {
		log.Fatal().Msg("either --input or --directory is required")
	}
	if input != "" && dir != "" {
		log.Fatal().Msg("--input and --directory are mutually exclusive")
	}

	reader := ingest.NewReader(flight.DefaultRules())

	var result *ingest.Result
	var err error
	if input != "" {
		result, err = reader.File(input)
	} else {
		result, err = reader.Directory(dir)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("unable to ingest flight data")
	}
	return result
}

func init() {
	// Flags for this command
	Command.Flags().StringP("input", "i", "", "Parse a single CSV file")
	Command.Flags().StringP("directory", "d", "", "Parse all .csv files in a folder (non-recursive)")
	Command.Flags().StringP("output", "o", "db.json", "Output path for the valid flights JSON")
	Command.Flags().String("errors", "errors.txt", "Output path for per-line diagnostics")

	// Bind flags to viper
	viper.BindPFlag("parse.input", Command.Flags().Lookup("input"))
	viper.BindPFlag("parse.directory", Command.Flags().Lookup("directory"))
	viper.BindPFlag("parse.output", Command.Flags().Lookup("output"))
	viper.BindPFlag("parse.errors", Command.Flags().Lookup("errors"))
}
