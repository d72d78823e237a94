/*
 * Copyright (c) 2025, Martins Kalnins
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkalnins/flightdb/pkg/database"
	"github.com/mkalnins/flightdb/pkg/flight"
	fquery "github.com/mkalnins/flightdb/pkg/query"
	frepl "github.com/mkalnins/flightdb/pkg/repl"
)

var log zerolog.Logger

var Command = &cobra.Command{
	Use:   "repl",
	Short: "Interactive query loop over a flight database",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)
		output := viper.GetString("repl.output")
		if len(filterStringSlice([]string{"csv", "text", "json"}, output)) != 1 {
			log.Fatal().Msg("unsupported output format")
		}

		jsondb := viper.GetString("repl.jsondb")
		if jsondb == "" {
			log.Fatal().Msg("--jsondb is required")
		}

		db, err := database.Load(jsondb)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load database snapshot")
		}
		log.Info().Int("flights", db.Len()).Msg("database loaded")

		readlinePrompt(db, output)
	},
}

func init() {
	log = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).
		With().
		Timestamp().
		Logger()

	// Flags for this command
	Command.Flags().StringP("jsondb", "j", "", "Path to the JSON database to query")
	Command.Flags().StringP("output", "o", "text", "Output format of results [csv, json, text]")

	// Bind flags to viper
	viper.BindPFlag("repl.jsondb", Command.Flags().Lookup("jsondb"))
	viper.BindPFlag("repl.output", Command.Flags().Lookup("output"))
}

func filterStringSlice(s []string, prefix string) []string {
	retList := []string{}
	for i := range s {
		if strings.HasPrefix(s[i], prefix) {
			retList = append(retList, s[i])
		}
	}
	return retList
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// makeFieldOptions offers the recognized constraint keys as completions so a
// query object can be typed without checking the schema.
func makeFieldOptions() []readline.PrefixCompleterInterface {
	ret := []readline.PrefixCompleterInterface{}
	for i := range flight.Header {
		ret = append(ret, readline.PcItem(fmt.Sprintf("{\"%s\":", flight.Header[i])))
	}
	return ret
}

func readlinePrompt(db *database.Database, output string) {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("exit"),
	}
	items = append(items, makeFieldOptions()...)
	completer := readline.NewPrefixCompleter(items...)

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	engine := fquery.NewEngine(flight.DefaultRules())
	writer := frepl.NewOutputWriter(os.Stdout, output)

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}
		line := strings.TrimSpace(ln.Line)
		if line == "" {
			continue
		}

		if strings.ToUpper(line) == "HELP" {
			fmt.Println("enter a query as a JSON object, e.g. {\"origin\": \"RIX\", \"price\": 100}")
			fmt.Println("recognized keys: " + strings.Join(flight.Header, ", "))
			continue
		}
		if strings.ToUpper(line) == "EXIT" {
			os.Exit(0)
		}

		var spec fquery.Spec
		if err := json.Unmarshal([]byte(line), &spec); err != nil {
			log.Error().Err(err).Msg("queries must be JSON objects")
			continue
		}

		result := engine.Run(db, []fquery.Spec{spec})[0]
		writer.Write(result)
	}
}
