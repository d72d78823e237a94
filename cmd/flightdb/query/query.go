/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package query

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkalnins/flightdb/cmd/flightdb/parse"
	"github.com/mkalnins/flightdb/pkg/database"
	"github.com/mkalnins/flightdb/pkg/flight"
	"github.com/mkalnins/flightdb/pkg/ingest"
	fquery "github.com/mkalnins/flightdb/pkg/query"
)

var Command = &cobra.Command{
	Use:   "query",
	Short: "Run JSON filter queries against a flight database",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		db := loadDatabase(log)

		queryPath := viper.GetString("query.query")
		if queryPath == "" {
			log.Info().Msgf("loaded %s flights", humanize.Comma(int64(db.Len())))
			return
		}

		specs, err := fquery.LoadSpecs(queryPath)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load queries")
		}

		engine := fquery.NewEngine(flight.DefaultRules())
		results := engine.Run(db, specs)

		filename := fquery.ResponseFilename(
			viper.GetString("query.student-id"),
			viper.GetString("query.name"),
			viper.GetString("query.lastname"),
			time.Now(),
		)
		if err := fquery.WriteResults(filename, results); err != nil {
			log.Fatal().Err(err).Msg("unable to write query results")
		}
		log.Info().
			Str("path", filename).
			Msgf("saved results for %s queries", humanize.Comma(int64(len(results))))
	},
}

// loadDatabase builds the database for this invocation: from an existing
// JSON snapshot when --jsondb is given, otherwise by ingesting CSV sources.
// The CSV path also writes the snapshot and diagnostics, mirroring the parse
// command, so a query run leaves the same artifacts behind.
func loadDatabase(log zerolog.Logger) *database.Database {
	jsondb := viper.GetString("query.jsondb")
	input := viper.GetString("query.input")
	dir := viper.GetString("query.directory")

	if conflictingSources(jsondb, input, dir) {
		log.Fatal().Msg("--jsondb and --input/--directory are mutually exclusive")
	}

	if jsondb != "" {
		db, err := database.Load(jsondb)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load database snapshot")
		}
		return db
	}

	result := parse.Ingest(log, input, dir)

	if len(result.Diagnostics) > 0 {
		diagPath := viper.GetString("query.errors")
		if err := ingest.WriteDiagnostics(diagPath, result.Diagnostics); err != nil {
			log.Fatal().Err(err).Msg("unable to write diagnostics")
		}
	}

	db := database.New(result.Records)
	if err := db.Save(viper.GetString("query.output")); err != nil {
		log.Fatal().Err(err).Msg("unable to save database snapshot")
	}
	return db
}

// conflictingSources reports whether a snapshot and a CSV source were both
// selected; the three source flags are mutually exclusive.
func conflictingSources(jsondb, input, dir string) bool {
	return jsondb != "" && (input != "" || dir != "")
}

func init() {
	// Flags for this command
	Command.Flags().StringP("input", "i", "", "Parse a single CSV file")
	Command.Flags().StringP("directory", "d", "", "Parse all .csv files in a folder (non-recursive)")
	Command.Flags().StringP("jsondb", "j", "", "Load an existing JSON database instead of parsing CSVs")
	Command.Flags().StringP("output", "o", "db.json", "Output path for the valid flights JSON")
	Command.Flags().String("errors", "errors.txt", "Output path for per-line diagnostics")
	Command.Flags().StringP("query", "q", "", "Path to the query JSON document")
	Command.Flags().String("student-id", "", "Student ID for naming the response file")
	Command.Flags().String("name", "", "First name for naming the response file")
	Command.Flags().String("lastname", "", "Last name for naming the response file")

	// Bind flags to viper
	viper.BindPFlag("query.input", Command.Flags().Lookup("input"))
	viper.BindPFlag("query.directory", Command.Flags().Lookup("directory"))
	viper.BindPFlag("query.jsondb", Command.Flags().Lookup("jsondb"))
	viper.BindPFlag("query.output", Command.Flags().Lookup("output"))
	viper.BindPFlag("query.errors", Command.Flags().Lookup("errors"))
	viper.BindPFlag("query.query", Command.Flags().Lookup("query"))
	viper.BindPFlag("query.student-id", Command.Flags().Lookup("student-id"))
	viper.BindPFlag("query.name", Command.Flags().Lookup("name"))
	viper.BindPFlag("query.lastname", Command.Flags().Lookup("lastname"))
}
