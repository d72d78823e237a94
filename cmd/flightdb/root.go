/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package flightdb

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkalnins/flightdb/cmd/flightdb/export"
	"github.com/mkalnins/flightdb/cmd/flightdb/parse"
	"github.com/mkalnins/flightdb/cmd/flightdb/query"
	"github.com/mkalnins/flightdb/cmd/flightdb/repl"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "flightdb",
		Short: "Flight schedule parser and query tool",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
		},
		Version: Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the flightdb config file (default ./flightdb.toml)")

	// Bind viper config to the root flags
	viper.BindPFlag("flightdb.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("flightdb.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("flightdb version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	// Register commands on the root binary command
	parse.Command.Version = rootCmd.Version
	query.Command.Version = rootCmd.Version
	rootCmd.AddCommand(parse.Command)
	rootCmd.AddCommand(query.Command)
	rootCmd.AddCommand(export.Command)
	rootCmd.AddCommand(repl.Command)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
