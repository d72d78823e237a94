/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package export

import (
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkalnins/flightdb/pkg/database"
)

var Command = &cobra.Command{
	Use:   "export",
	Short: "Export a JSON database back to CSV",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		jsondb := viper.GetString("export.jsondb")
		if jsondb == "" {
			log.Fatal().Msg("--jsondb is required")
		}

		db, err := database.Load(jsondb)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load database snapshot")
		}

		out := viper.GetString("export.output")
		if err := db.ExportCSV(out); err != nil {
			log.Fatal().Err(err).Msg("unable to export CSV")
		}
		log.Info().
			Str("path", out).
			Msgf("exported %s flights", humanize.Comma(int64(db.Len())))
	},
}

func init() {
	// Flags for this command
	Command.Flags().StringP("jsondb", "j", "", "Path to the JSON database to export")
	Command.Flags().StringP("output", "o", "flights.csv", "Output path for the CSV export")

	// Bind flags to viper
	viper.BindPFlag("export.jsondb", Command.Flags().Lookup("jsondb"))
	viper.BindPFlag("export.output", Command.Flags().Lookup("output"))
}
